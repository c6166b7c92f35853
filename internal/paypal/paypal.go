// Package paypal enriches imported bank transactions with the richer
// merchant details from a PayPal activity export. Bank statements show only
// an opaque "PayPal" line; the activity file carries the actual counterparty.
package paypal

import (
	"math"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"moneyflow/internal/dateutils"
	"moneyflow/internal/logging"
	"moneyflow/internal/models"
)

// Activity export column names as PayPal writes them for Italian accounts.
const (
	ColumnDate        = "Data"
	ColumnName        = "Nome"
	ColumnType        = "Tipo"
	ColumnStatus      = "Stato"
	ColumnTotal       = "Totale"
	ColumnDescription = "Descrizione"
)

// ignoredTypes are internal money movements, not real income or spending.
// Matched by substring because the export sometimes appends qualifiers.
var ignoredTypes = []string{
	"Versamento generico con carta",
	"Bonifico bancario sul conto PayPal",
	"Trasferimento avviato dall'utente",
}

// ignoredStatuses mark rows that never settled.
var ignoredStatuses = []string{
	"In sospeso",
	"Rimosso",
}

const (
	// dateToleranceDays allows for settlement lag between PayPal and the
	// bank statement.
	dateToleranceDays = 3
	// amountTolerance absorbs rounding differences between the two sides.
	amountTolerance = 0.02
)

// Match pairs a bank transaction with the PayPal activity row that explains
// it. NewDescription is the replacement text proposed for the transaction.
type Match struct {
	TransactionID  string
	Transaction    models.Transaction
	Activity       map[string]string
	NewDescription string
}

// ParseActivityAmount parses a PayPal amount cell. Whitespace is stripped
// and the Italian decimal comma converted. Some exports carry amounts as
// implied cents: a row with no decimal separator and an absolute value of at
// least 100 really means value/100.
func ParseActivityAmount(raw string) float64 {
	cleaned := strings.ReplaceAll(raw, " ", "")
	if cleaned == "" {
		return 0
	}
	hasSeparator := strings.ContainsAny(cleaned, ",.")
	cleaned = strings.Replace(cleaned, ",", ".", 1)

	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return 0
	}
	amount := d.InexactFloat64()
	if !hasSeparator && math.Abs(amount) >= 100 {
		amount /= 100
	}
	return amount
}

// FilterActivity drops rows that cannot explain a bank transaction: internal
// transfers, unsettled rows and zero amounts.
func FilterActivity(rows []map[string]string) []map[string]string {
	var kept []map[string]string
	for _, row := range rows {
		if isIgnoredType(row[ColumnType]) {
			continue
		}
		if isIgnoredStatus(row[ColumnStatus]) {
			continue
		}
		if ParseActivityAmount(row[ColumnTotal]) == 0 {
			continue
		}
		kept = append(kept, row)
	}
	return kept
}

func isIgnoredType(t string) bool {
	for _, ignored := range ignoredTypes {
		if strings.Contains(t, ignored) {
			return true
		}
	}
	return false
}

func isIgnoredStatus(s string) bool {
	for _, ignored := range ignoredStatuses {
		if s == ignored {
			return true
		}
	}
	return false
}

// MatchTransactions pairs bank transactions whose description mentions
// PayPal with filtered activity rows. A pair requires both the date within
// tolerance and the absolute amounts within tolerance; each activity row is
// consumed by at most one transaction, scanned in order.
func MatchTransactions(transactions []models.Transaction, activity []map[string]string, logger logging.Logger) []Match {
	if logger == nil {
		logger = logging.NewMockLogger()
	}

	rows := FilterActivity(activity)
	used := make([]bool, len(rows))
	var matches []Match

	for _, tx := range transactions {
		if !strings.Contains(strings.ToLower(tx.Description), "paypal") {
			continue
		}
		txDate := tx.ParsedDate()

		for i, row := range rows {
			if used[i] {
				continue
			}
			rowDate := dateutils.ParseCell(row[ColumnDate])
			rowAmount := ParseActivityAmount(row[ColumnTotal])

			if !datesMatch(txDate, rowDate) || !amountsMatch(tx.Amount, rowAmount) {
				continue
			}

			matches = append(matches, Match{
				TransactionID:  tx.ID,
				Transaction:    tx,
				Activity:       row,
				NewDescription: buildDescription(row),
			})
			used[i] = true
			break
		}
	}

	logger.Info("matched PayPal activity",
		logging.Field{Key: "transactions", Value: len(transactions)},
		logging.Field{Key: "activity", Value: len(rows)},
		logging.Field{Key: "matches", Value: len(matches)})

	return matches
}

func datesMatch(a, b time.Time) bool {
	diff := a.Sub(b)
	if diff < 0 {
		diff = -diff
	}
	return diff <= dateToleranceDays*24*time.Hour
}

func amountsMatch(a, b float64) bool {
	return math.Abs(math.Abs(a)-math.Abs(b)) <= amountTolerance
}

// buildDescription formats the replacement description as "Name - Details",
// falling back to the activity type when both are empty.
func buildDescription(row map[string]string) string {
	name := strings.TrimSpace(row[ColumnName])
	details := strings.TrimSpace(row[ColumnDescription])

	description := name
	if details != "" {
		if description != "" {
			description += " - " + details
		} else {
			description = details
		}
	}
	if description == "" {
		description = strings.TrimSpace(row[ColumnType])
	}
	return description
}
