package categorizer

import (
	"moneyflow/internal/models"
)

// CategoryConflict records a transaction whose description matched keywords
// from more than one category during a recategorization pass. The default
// longest-keyword choice has already been applied; the conflict only exists
// so the user may override it.
type CategoryConflict struct {
	TransactionID string
	Description   string
	Matches       []Match
	Default       string
}

// RecategorizeResult is the outcome of a full recategorization pass.
type RecategorizeResult struct {
	Transactions []models.Transaction
	Conflicts    []CategoryConflict
}

// Recategorize reruns categorization over every transaction, typically after
// the keyword rules changed. Transactions with a persisted resolution for
// their exact description take that category with no ambiguity raised.
// Multi-match transactions get the default longest-keyword choice applied
// immediately, so the set is never left partially recategorized, and are
// additionally queued as conflicts for optional override. Dismissing the
// queue is not a rollback.
func (m *Matcher) Recategorize(transactions []models.Transaction) RecategorizeResult {
	result := RecategorizeResult{
		Transactions: make([]models.Transaction, len(transactions)),
	}

	for i, tx := range transactions {
		if category, ok := m.resolutions[tx.Description]; ok {
			tx.Category = category
			result.Transactions[i] = tx
			continue
		}

		matches := FindMatching(tx.Description, m.categories)
		switch len(matches) {
		case 0:
			tx.Category = models.CategoryFallback
		case 1:
			tx.Category = matches[0].Category
		default:
			best := pickBest(matches)
			tx.Category = best.Category
			result.Conflicts = append(result.Conflicts, CategoryConflict{
				TransactionID: tx.ID,
				Description:   tx.Description,
				Matches:       matches,
				Default:       best.Category,
			})
		}
		result.Transactions[i] = tx
	}

	return result
}
