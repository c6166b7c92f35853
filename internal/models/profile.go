package models

import "fmt"

// AmountType selects how an import profile reads amounts: a single signed
// column, or separate income/expense columns.
type AmountType string

const (
	AmountSingle AmountType = "single"
	AmountSplit  AmountType = "split"
)

// ImportProfile describes how to project a spreadsheet's rows into
// transactions. Built-in profiles are immutable; user-defined profiles are
// persisted keyed by a slug of their name.
type ImportProfile struct {
	Name              string     `json:"name"`
	HeaderRow         int        `json:"headerRow"`
	DateColumn        string     `json:"dateColumn"`
	DescriptionColumn string     `json:"descriptionColumn"`
	AmountType        AmountType `json:"amountType"`
	AmountColumn      string     `json:"amountColumn,omitempty"`
	IncomeColumn      string     `json:"incomeColumn,omitempty"`
	ExpenseColumn     string     `json:"expenseColumn,omitempty"`
	IDColumn          string     `json:"idColumn,omitempty"`
}

// Validate checks the structural invariants of a profile.
func (p ImportProfile) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("profile name is required")
	}
	if p.DateColumn == "" {
		return fmt.Errorf("profile %q: date column is required", p.Name)
	}
	if p.DescriptionColumn == "" {
		return fmt.Errorf("profile %q: description column is required", p.Name)
	}
	switch p.AmountType {
	case AmountSingle:
		if p.AmountColumn == "" {
			return fmt.Errorf("profile %q: single amount type requires an amount column", p.Name)
		}
	case AmountSplit:
		if p.IncomeColumn == "" && p.ExpenseColumn == "" {
			return fmt.Errorf("profile %q: split amount type requires an income or expense column", p.Name)
		}
	default:
		return fmt.Errorf("profile %q: unknown amount type %q", p.Name, p.AmountType)
	}
	return nil
}

// Matches reports whether every column the profile requires is present. For
// split profiles one of income/expense suffices.
func (p ImportProfile) Matches(columns []string) bool {
	present := make(map[string]bool, len(columns))
	for _, c := range columns {
		present[c] = true
	}
	if !present[p.DateColumn] || !present[p.DescriptionColumn] {
		return false
	}
	if p.AmountType == AmountSingle {
		return present[p.AmountColumn]
	}
	return present[p.IncomeColumn] || present[p.ExpenseColumn]
}
