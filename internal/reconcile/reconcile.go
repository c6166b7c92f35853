// Package reconcile merges newly projected transactions into the existing
// set: exact duplicates are suppressed, same-date-same-amount rows with a
// differing description become conflicts for user adjudication, and
// everything else is accepted outright. Re-importing an identical file is a
// no-op.
package reconcile

import (
	"sort"

	"moneyflow/internal/logging"
	"moneyflow/internal/models"
)

// Decision is the user's verdict on a single conflict.
type Decision string

const (
	// DecisionSkip keeps the existing transaction and discards the new one.
	DecisionSkip Decision = "skip"
	// DecisionReplace removes the existing transaction and inserts the new
	// one in its place. The existing id is not preserved.
	DecisionReplace Decision = "replace"
	// DecisionAdd keeps both transactions.
	DecisionAdd Decision = "add"
)

// Conflict pairs an existing transaction with a new one sharing (date,
// amount) but differing in description. Conflicts are transient: they are
// resolved synchronously within one import operation.
type Conflict struct {
	Existing models.Transaction
	New      models.Transaction
}

// Result classifies an incoming batch against the existing set. When
// Conflicts is non-empty nothing has been merged yet: the caller must gather
// decisions and call Apply. Unique transactions are held back with the
// conflicts so the existing set stays untouched until resolution.
type Result struct {
	Unique     []models.Transaction
	Conflicts  []Conflict
	Duplicates int
}

// Engine performs the classification and the merge.
type Engine struct {
	logger logging.Logger
}

// NewEngine creates an Engine.
func NewEngine(logger logging.Logger) *Engine {
	if logger == nil {
		logger = logging.NewMockLogger()
	}
	return &Engine{logger: logger}
}

// Reconcile classifies each incoming transaction as an exact duplicate, a
// conflict or unique. Conflict pairing picks the earliest-inserted existing
// transaction with a differing description at that (date, amount) key, which
// keeps three-way collisions deterministic.
func (e *Engine) Reconcile(existing, incoming []models.Transaction) *Result {
	exact := make(map[string]bool, len(existing)*2)
	byPair := make(map[string][]models.Transaction, len(existing))
	for _, tx := range existing {
		exact[tx.ExactKey()] = true
		exact[tx.TripleKey()] = true
		byPair[tx.PairKey()] = append(byPair[tx.PairKey()], tx)
	}

	result := &Result{}
	for _, tx := range incoming {
		if exact[tx.ExactKey()] || exact[tx.TripleKey()] {
			result.Duplicates++
			continue
		}

		if other, ok := firstDiffering(byPair[tx.PairKey()], tx.Description); ok {
			result.Conflicts = append(result.Conflicts, Conflict{Existing: other, New: tx})
			continue
		}

		result.Unique = append(result.Unique, tx)
	}

	e.logger.Info("reconciled import batch",
		logging.Field{Key: "incoming", Value: len(incoming)},
		logging.Field{Key: "unique", Value: len(result.Unique)},
		logging.Field{Key: "conflicts", Value: len(result.Conflicts)},
		logging.Field{Key: "duplicates", Value: result.Duplicates})

	return result
}

func firstDiffering(candidates []models.Transaction, description string) (models.Transaction, bool) {
	for _, c := range candidates {
		if c.Description != description {
			return c, true
		}
	}
	return models.Transaction{}, false
}

// Apply merges a classified batch into the existing set using one decision
// per conflict (missing decisions default to skip) and returns the merged
// set, re-sorted descending by date. The returned count is the number of
// transactions actually written.
func (e *Engine) Apply(existing []models.Transaction, result *Result, decisions []Decision) ([]models.Transaction, int) {
	merged := append([]models.Transaction{}, existing...)
	written := 0

	for i, conflict := range result.Conflicts {
		decision := DecisionSkip
		if i < len(decisions) && decisions[i] != "" {
			decision = decisions[i]
		}
		switch decision {
		case DecisionReplace:
			if idx := indexByID(merged, conflict.Existing.ID); idx >= 0 {
				merged = append(merged[:idx], merged[idx+1:]...)
			}
			merged = append(merged, conflict.New)
			written++
		case DecisionAdd:
			merged = append(merged, conflict.New)
			written++
		case DecisionSkip:
		}
	}

	merged = append(merged, result.Unique...)
	written += len(result.Unique)

	SortDescending(merged)
	return merged, written
}

// SameDecision builds a decision slice applying one verdict to every pending
// conflict, the batch convenience for large conflict lists.
func SameDecision(n int, d Decision) []Decision {
	decisions := make([]Decision, n)
	for i := range decisions {
		decisions[i] = d
	}
	return decisions
}

// SortDescending re-establishes the global ordering invariant: transactions
// sorted strictly descending by date. The sort is stable so same-day
// transactions keep their insertion order.
func SortDescending(transactions []models.Transaction) {
	sort.SliceStable(transactions, func(i, j int) bool {
		return transactions[i].ParsedDate().After(transactions[j].ParsedDate())
	})
}

func indexByID(transactions []models.Transaction, id string) int {
	for i, tx := range transactions {
		if tx.ID == id {
			return i
		}
	}
	return -1
}
