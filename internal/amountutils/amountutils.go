// Package amountutils parses raw spreadsheet amount cells into signed float
// values. Bank exports mix plain numbers, Italian-formatted strings
// ("1.234,56") and cells polluted with currency symbols; unparseable input
// degrades to zero and is never an error, since zero-amount rows are dropped
// during projection anyway.
package amountutils

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParseCell converts a spreadsheet cell value into a float amount.
//
// Every character that is not a digit, comma, period or minus sign is
// stripped. A comma marks the European decimal separator: when present, any
// periods are treated as thousands separators and removed. Empty or
// unparseable input returns 0.
func ParseCell(raw string) float64 {
	cleaned := stripNonNumeric(raw)
	if cleaned == "" {
		return 0
	}

	if strings.Contains(cleaned, ",") {
		cleaned = strings.ReplaceAll(cleaned, ".", "")
		cleaned = strings.Replace(cleaned, ",", ".", 1)
	}

	amount, err := decimal.NewFromString(cleaned)
	if err != nil {
		return 0
	}
	return amount.InexactFloat64()
}

func stripNonNumeric(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		switch {
		case r >= '0' && r <= '9', r == ',', r == '.', r == '-':
			b.WriteRune(r)
		}
	}
	return b.String()
}
