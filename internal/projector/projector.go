// Package projector applies a resolved import profile to raw spreadsheet
// rows, producing candidate transactions with parsed amounts and dates and
// an auto-assigned category.
package projector

import (
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"

	"moneyflow/internal/amountutils"
	"moneyflow/internal/categorizer"
	"moneyflow/internal/dateutils"
	"moneyflow/internal/logging"
	"moneyflow/internal/models"
)

// Projector converts rows into transactions using a profile's column mapping.
type Projector struct {
	matcher *categorizer.Matcher
	logger  logging.Logger
}

// New creates a Projector.
func New(matcher *categorizer.Matcher, logger logging.Logger) *Projector {
	if logger == nil {
		logger = logging.NewMockLogger()
	}
	return &Projector{matcher: matcher, logger: logger}
}

// Project emits one candidate transaction per usable row, in input order.
// Rows with an empty description or a zero/unparseable amount are dropped
// silently; the aggregate import count is the only feedback. No sorting
// happens here, ordering is a reconciliation concern.
func (p *Projector) Project(rows []map[string]string, profile models.ImportProfile) []models.Transaction {
	transactions := make([]models.Transaction, 0, len(rows))
	dropped := 0

	for i, row := range rows {
		description := strings.TrimSpace(row[profile.DescriptionColumn])

		var amount float64
		if profile.AmountType == models.AmountSplit {
			income := amountutils.ParseCell(row[profile.IncomeColumn])
			expense := amountutils.ParseCell(row[profile.ExpenseColumn])
			if income > 0 {
				amount = income
			} else {
				amount = -math.Abs(expense)
			}
		} else {
			amount = amountutils.ParseCell(row[profile.AmountColumn])
		}

		if description == "" || amount == 0 || math.IsNaN(amount) {
			dropped++
			continue
		}

		date := dateutils.ParseCell(row[profile.DateColumn])

		var bankID string
		if profile.IDColumn != "" {
			bankID = strings.TrimSpace(row[profile.IDColumn])
		}

		transactions = append(transactions, models.Transaction{
			ID:          transactionID(bankID, date.UnixMilli(), i),
			BankID:      bankID,
			Date:        dateutils.ToISO(date),
			Description: description,
			Amount:      amount,
			Category:    p.matcher.Categorize(description),
		})
	}

	p.logger.Info("projected rows into transactions",
		logging.Field{Key: "rows", Value: len(rows)},
		logging.Field{Key: "transactions", Value: len(transactions)},
		logging.Field{Key: "dropped", Value: dropped})

	return transactions
}

// transactionID prefers the bank-provided identifier; otherwise it
// synthesizes a stable-enough id from the timestamp, the row index and a
// random suffix.
func transactionID(bankID string, unixMilli int64, rowIndex int) string {
	if bankID != "" {
		return bankID
	}
	return fmt.Sprintf("%d-%d-%s", unixMilli, rowIndex, uuid.NewString()[:8])
}
