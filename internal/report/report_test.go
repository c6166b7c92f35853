package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"moneyflow/internal/models"
)

func sampleTransactions() []models.Transaction {
	return []models.Transaction{
		{ID: "1", Date: "2023-01-10T00:00:00Z", Description: "STIPENDIO", Amount: 1500, Category: "Stipendio"},
		{ID: "2", Date: "2023-01-12T00:00:00Z", Description: "CONAD", Amount: -80, Category: "Spesa alimentare"},
		{ID: "3", Date: "2023-01-12T00:00:00Z", Description: "ESSELUNGA", Amount: -40, Category: "Spesa alimentare"},
		{ID: "4", Date: "2023-02-05T00:00:00Z", Description: "TRENITALIA", Amount: -30, Category: "Trasporti"},
		{ID: "5", Date: "2022-11-20T00:00:00Z", Description: "VECCHIO ANNO", Amount: -10, Category: "Altro"},
	}
}

func TestFilterSelect(t *testing.T) {
	transactions := sampleTransactions()

	byYear := Filter{Year: 2023}.Select(transactions)
	assert.Len(t, byYear, 4)

	byMonth := Filter{Year: 2023, Month: 1}.Select(transactions)
	assert.Len(t, byMonth, 3)

	byQuery := Filter{Year: 2023, Query: "conad"}.Select(transactions)
	require.Len(t, byQuery, 1)
	assert.Equal(t, "2", byQuery[0].ID)

	byCategoryQuery := Filter{Year: 2023, Query: "trasporti"}.Select(transactions)
	require.Len(t, byCategoryQuery, 1)
	assert.Equal(t, "4", byCategoryQuery[0].ID)
}

func TestSummarize(t *testing.T) {
	selected := Filter{Year: 2023, Month: 1}.Select(sampleTransactions())
	summary := Summarize(selected)

	assert.InDelta(t, 1500, summary.Income, 1e-9)
	assert.InDelta(t, 120, summary.Expenses, 1e-9)
	assert.InDelta(t, 1380, summary.Balance, 1e-9)
}

func TestByCategorySortsBySpendDescending(t *testing.T) {
	selected := Filter{Year: 2023}.Select(sampleTransactions())
	byCat := ByCategory(selected)

	require.Len(t, byCat, 2, "income categories are excluded")
	assert.Equal(t, "Spesa alimentare", byCat[0].Name)
	assert.InDelta(t, 120, byCat[0].Amount, 1e-9)
	assert.Equal(t, 2, byCat[0].Count)
	assert.Equal(t, "Trasporti", byCat[1].Name)
}

func TestMonthlySeries(t *testing.T) {
	points := MonthlySeries(sampleTransactions(), 2023)
	require.Len(t, points, 12)

	assert.Equal(t, "Gen", points[0].Name)
	assert.InDelta(t, 1500, points[0].Income, 1e-9)
	assert.InDelta(t, 120, points[0].Expenses, 1e-9)
	assert.InDelta(t, 30, points[1].Expenses, 1e-9)
	assert.Zero(t, points[5].Income)
	assert.Zero(t, points[5].Expenses)
}

func TestDailySeriesCumulative(t *testing.T) {
	points := DailySeries(sampleTransactions(), 2023, 1)
	require.Len(t, points, 31)

	assert.InDelta(t, 1500, points[9].Movement, 1e-9)
	assert.InDelta(t, 1500, points[9].Balance, 1e-9)
	assert.InDelta(t, -120, points[11].Movement, 1e-9)
	assert.InDelta(t, 1380, points[11].Balance, 1e-9)
	assert.InDelta(t, 1380, points[30].Balance, 1e-9, "balance carries to the end of the month")
}

func TestDailySeriesFebruaryLength(t *testing.T) {
	assert.Len(t, DailySeries(nil, 2023, 2), 28)
	assert.Len(t, DailySeries(nil, 2024, 2), 29)
}

func TestYearsNewestFirst(t *testing.T) {
	assert.Equal(t, []int{2023, 2022}, Years(sampleTransactions()))
	assert.Empty(t, Years(nil))
}

func TestExportCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "export.csv")
	selected := Filter{Year: 2023, Month: 1}.Select(sampleTransactions())
	require.NoError(t, ExportCSV(path, selected))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "Data,Descrizione,Categoria,Importo", lines[0])
	assert.Contains(t, lines[1], "STIPENDIO")
	assert.Contains(t, lines[1], "1500.00")
}
