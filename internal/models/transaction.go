// Package models defines the canonical data types shared across the import,
// categorization and reconciliation pipelines.
package models

import "time"

// CategoryFallback is the sentinel category assigned when no keyword matches.
const CategoryFallback = "Altro"

// Transaction is the canonical record produced by an import or manual entry.
// Date is stored as an ISO-8601 string truncated to the day of the
// transaction; Amount is signed, positive for inflows. A zero amount never
// survives projection.
type Transaction struct {
	ID          string  `json:"id"`
	BankID      string  `json:"bankId,omitempty"`
	Date        string  `json:"date"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Category    string  `json:"category"`
	Note        string  `json:"note,omitempty"`
}

// ParsedDate returns the transaction date as a time.Time. A malformed date
// sorts as the zero time rather than failing.
func (t Transaction) ParsedDate() time.Time {
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if parsed, err := time.Parse(layout, t.Date); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

// ExactKey returns the deduplication key: the bank-provided identifier when
// available, otherwise the (date, amount, description) triple.
func (t Transaction) ExactKey() string {
	if t.BankID != "" {
		return "bank:" + t.BankID
	}
	return t.TripleKey()
}

// TripleKey returns the (date, amount, description) fallback dedup key.
// It is indexed alongside ExactKey so a re-imported row without a bank
// identifier still collides with its bank-identified twin.
func (t Transaction) TripleKey() string {
	return t.Date + "|" + formatAmount(t.Amount) + "|" + t.Description
}

// PairKey returns the (date, amount) key used for conflict lookup.
func (t Transaction) PairKey() string {
	return t.Date + "|" + formatAmount(t.Amount)
}
