package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"moneyflow/internal/models"
)

func tx(id, date, description string, amount float64) models.Transaction {
	return models.Transaction{ID: id, Date: date, Description: description, Amount: amount}
}

func TestReconcileClassification(t *testing.T) {
	existing := []models.Transaction{
		tx("1", "2023-12-25T00:00:00Z", "CONAD", -23.99),
		tx("2", "2023-12-26T00:00:00Z", "STIPENDIO", 1500),
	}
	incoming := []models.Transaction{
		tx("a", "2023-12-25T00:00:00Z", "CONAD", -23.99),       // exact duplicate
		tx("b", "2023-12-26T00:00:00Z", "SALARY DEC", 1500),    // same date+amount, new description
		tx("c", "2023-12-27T00:00:00Z", "FARMACIA", -12.50),    // unique
	}

	result := NewEngine(nil).Reconcile(existing, incoming)

	assert.Equal(t, 1, result.Duplicates)
	require.Len(t, result.Conflicts, 1)
	assert.Equal(t, "2", result.Conflicts[0].Existing.ID)
	assert.Equal(t, "b", result.Conflicts[0].New.ID)
	require.Len(t, result.Unique, 1)
	assert.Equal(t, "c", result.Unique[0].ID)
}

func TestReconcileIdempotentReimport(t *testing.T) {
	batch := []models.Transaction{
		tx("1", "2023-12-25T00:00:00Z", "CONAD", -23.99),
		tx("2", "2023-12-26T00:00:00Z", "STIPENDIO", 1500),
	}

	result := NewEngine(nil).Reconcile(batch, batch)
	assert.Equal(t, 2, result.Duplicates)
	assert.Empty(t, result.Unique)
	assert.Empty(t, result.Conflicts)
}

func TestReconcileBankIDTwinIsDuplicate(t *testing.T) {
	existing := []models.Transaction{
		{ID: "TX1", BankID: "TX1", Date: "2023-12-25T00:00:00Z", Description: "CONAD", Amount: -23.99},
	}
	// Same movement re-imported through a profile without an id column.
	incoming := []models.Transaction{
		tx("gen-1", "2023-12-25T00:00:00Z", "CONAD", -23.99),
	}

	result := NewEngine(nil).Reconcile(existing, incoming)
	assert.Equal(t, 1, result.Duplicates)
	assert.Empty(t, result.Conflicts)
}

func TestReconcileConflictPairsEarliestInserted(t *testing.T) {
	existing := []models.Transaction{
		tx("1", "2023-12-25T00:00:00Z", "PRIMO", -10),
		tx("2", "2023-12-25T00:00:00Z", "SECONDO", -10),
	}
	incoming := []models.Transaction{
		tx("n", "2023-12-25T00:00:00Z", "NUOVO", -10),
	}

	result := NewEngine(nil).Reconcile(existing, incoming)
	require.Len(t, result.Conflicts, 1)
	assert.Equal(t, "1", result.Conflicts[0].Existing.ID)
}

func TestApplyDecisions(t *testing.T) {
	engine := NewEngine(nil)
	existing := []models.Transaction{
		tx("1", "2023-12-25T00:00:00Z", "VECCHIO", -10),
		tx("2", "2023-12-26T00:00:00Z", "ALTRO", -20),
	}
	incoming := []models.Transaction{
		tx("n1", "2023-12-25T00:00:00Z", "NUOVO", -10),
		tx("n2", "2023-12-26T00:00:00Z", "NUOVO ALTRO", -20),
		tx("n3", "2023-12-27T00:00:00Z", "UNICO", -30),
	}
	result := engine.Reconcile(existing, incoming)
	require.Len(t, result.Conflicts, 2)
	require.Len(t, result.Unique, 1)

	merged, written := engine.Apply(existing, result, []Decision{DecisionReplace, DecisionSkip})
	assert.Equal(t, 2, written, "one replacement plus one unique")
	require.Len(t, merged, 3)

	byID := map[string]models.Transaction{}
	for _, m := range merged {
		byID[m.ID] = m
	}
	assert.NotContains(t, byID, "1", "replaced transaction is gone")
	assert.Contains(t, byID, "n1")
	assert.Contains(t, byID, "2", "skipped conflict keeps the existing row")
	assert.NotContains(t, byID, "n2")
	assert.Contains(t, byID, "n3")
}

func TestApplyAddKeepsBoth(t *testing.T) {
	engine := NewEngine(nil)
	existing := []models.Transaction{tx("1", "2023-12-25T00:00:00Z", "VECCHIO", -10)}
	incoming := []models.Transaction{tx("n1", "2023-12-25T00:00:00Z", "NUOVO", -10)}

	result := engine.Reconcile(existing, incoming)
	merged, written := engine.Apply(existing, result, SameDecision(len(result.Conflicts), DecisionAdd))
	assert.Equal(t, 1, written)
	assert.Len(t, merged, 2)
}

func TestApplyMissingDecisionsDefaultToSkip(t *testing.T) {
	engine := NewEngine(nil)
	existing := []models.Transaction{tx("1", "2023-12-25T00:00:00Z", "VECCHIO", -10)}
	incoming := []models.Transaction{tx("n1", "2023-12-25T00:00:00Z", "NUOVO", -10)}

	result := engine.Reconcile(existing, incoming)
	merged, written := engine.Apply(existing, result, nil)
	assert.Equal(t, 0, written)
	require.Len(t, merged, 1)
	assert.Equal(t, "1", merged[0].ID)
}

func TestApplySortsDescendingByDate(t *testing.T) {
	engine := NewEngine(nil)
	existing := []models.Transaction{
		tx("old", "2023-01-01T00:00:00Z", "GENNAIO", -1),
	}
	incoming := []models.Transaction{
		tx("mid", "2023-06-01T00:00:00Z", "GIUGNO", -2),
		tx("new", "2023-12-01T00:00:00Z", "DICEMBRE", -3),
	}

	result := engine.Reconcile(existing, incoming)
	merged, _ := engine.Apply(existing, result, nil)

	require.Len(t, merged, 3)
	assert.Equal(t, "new", merged[0].ID)
	assert.Equal(t, "mid", merged[1].ID)
	assert.Equal(t, "old", merged[2].ID)
}

func TestSortDescendingIsStableForSameDay(t *testing.T) {
	transactions := []models.Transaction{
		tx("a", "2023-12-25T00:00:00Z", "PRIMO", -1),
		tx("b", "2023-12-25T00:00:00Z", "SECONDO", -2),
		tx("c", "2023-12-26T00:00:00Z", "DOPO", -3),
	}
	SortDescending(transactions)

	assert.Equal(t, "c", transactions[0].ID)
	assert.Equal(t, "a", transactions[1].ID)
	assert.Equal(t, "b", transactions[2].ID)
}
