package report

import (
	"fmt"
	"os"
	"strconv"

	"github.com/gocarina/gocsv"

	"moneyflow/internal/models"
)

// exportRow is the CSV layout of one exported transaction, with the Italian
// headers the rest of the tooling expects.
type exportRow struct {
	Date        string `csv:"Data"`
	Description string `csv:"Descrizione"`
	Category    string `csv:"Categoria"`
	Amount      string `csv:"Importo"`
}

// ExportCSV writes the given transactions to a CSV file, one row per
// transaction in the given order.
func ExportCSV(path string, transactions []models.Transaction) error {
	rows := make([]*exportRow, 0, len(transactions))
	for _, tx := range transactions {
		rows = append(rows, &exportRow{
			Date:        tx.ParsedDate().Format("2006-01-02"),
			Description: tx.Description,
			Category:    tx.Category,
			Amount:      strconv.FormatFloat(tx.Amount, 'f', 2, 64),
		})
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating export file: %w", err)
	}
	defer func() { _ = file.Close() }()

	if err := gocsv.MarshalFile(&rows, file); err != nil {
		return fmt.Errorf("writing export: %w", err)
	}
	return nil
}
