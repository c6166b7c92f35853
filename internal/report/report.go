// Package report computes the aggregate views over the transaction set:
// income and expense totals, spending per category, the monthly series for a
// year and the cumulative daily balance for a month.
package report

import (
	"math"
	"sort"
	"strings"
	"time"

	"moneyflow/internal/models"
)

// monthNames are the short Italian month labels used in the monthly series.
var monthNames = []string{
	"Gen", "Feb", "Mar", "Apr", "Mag", "Giu",
	"Lug", "Ago", "Set", "Ott", "Nov", "Dic",
}

// Filter selects the transactions a report is computed over. Year is
// mandatory; Month is 1-12 or 0 for the whole year; Query matches the
// description or the category, case-insensitively.
type Filter struct {
	Year  int
	Month int
	Query string
}

// Select applies the filter, preserving input order.
func (f Filter) Select(transactions []models.Transaction) []models.Transaction {
	query := strings.ToLower(strings.TrimSpace(f.Query))
	var selected []models.Transaction
	for _, tx := range transactions {
		date := tx.ParsedDate()
		if date.Year() != f.Year {
			continue
		}
		if f.Month != 0 && int(date.Month()) != f.Month {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(tx.Description), query) &&
			!strings.Contains(strings.ToLower(tx.Category), query) {
			continue
		}
		selected = append(selected, tx)
	}
	return selected
}

// Summary holds the headline totals. Expenses is reported as a positive
// magnitude.
type Summary struct {
	Income   float64
	Expenses float64
	Balance  float64
}

// Summarize computes the headline totals over the given transactions.
func Summarize(transactions []models.Transaction) Summary {
	var s Summary
	for _, tx := range transactions {
		if tx.Amount > 0 {
			s.Income += tx.Amount
		} else {
			s.Expenses += math.Abs(tx.Amount)
		}
	}
	s.Balance = s.Income - s.Expenses
	return s
}

// CategoryTotal is one category's spending, expenses only.
type CategoryTotal struct {
	Name   string
	Amount float64
	Count  int
}

// ByCategory groups expense transactions by category and sorts the result by
// descending amount.
func ByCategory(transactions []models.Transaction) []CategoryTotal {
	totals := map[string]*CategoryTotal{}
	var order []string
	for _, tx := range transactions {
		if tx.Amount >= 0 {
			continue
		}
		t, ok := totals[tx.Category]
		if !ok {
			t = &CategoryTotal{Name: tx.Category}
			totals[tx.Category] = t
			order = append(order, tx.Category)
		}
		t.Amount += math.Abs(tx.Amount)
		t.Count++
	}

	result := make([]CategoryTotal, 0, len(order))
	for _, name := range order {
		result = append(result, *totals[name])
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Amount > result[j].Amount
	})
	return result
}

// MonthPoint is one month's income and expense totals.
type MonthPoint struct {
	Name     string
	Income   float64
	Expenses float64
}

// MonthlySeries returns twelve points for the given year, zero-filled for
// months without movement. The month filter and query do not apply here:
// the yearly chart always covers the whole year.
func MonthlySeries(transactions []models.Transaction, year int) []MonthPoint {
	points := make([]MonthPoint, 12)
	for i := range points {
		points[i].Name = monthNames[i]
	}
	for _, tx := range transactions {
		date := tx.ParsedDate()
		if date.Year() != year {
			continue
		}
		p := &points[int(date.Month())-1]
		if tx.Amount > 0 {
			p.Income += tx.Amount
		} else {
			p.Expenses += math.Abs(tx.Amount)
		}
	}
	return points
}

// DayPoint is one day of a month: the day's net movement and the running
// balance since the first of the month.
type DayPoint struct {
	Day      int
	Movement float64
	Balance  float64
}

// DailySeries returns one point per calendar day of the given month, with a
// cumulative balance. Transactions outside the month are ignored.
func DailySeries(transactions []models.Transaction, year, month int) []DayPoint {
	daysInMonth := time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()

	byDay := make(map[int]float64)
	for _, tx := range transactions {
		date := tx.ParsedDate()
		if date.Year() != year || int(date.Month()) != month {
			continue
		}
		byDay[date.Day()] += tx.Amount
	}

	points := make([]DayPoint, daysInMonth)
	cumulative := 0.0
	for day := 1; day <= daysInMonth; day++ {
		cumulative += byDay[day]
		points[day-1] = DayPoint{Day: day, Movement: byDay[day], Balance: cumulative}
	}
	return points
}

// Years lists the distinct years with transactions, newest first.
func Years(transactions []models.Transaction) []int {
	seen := map[int]bool{}
	var years []int
	for _, tx := range transactions {
		y := tx.ParsedDate().Year()
		if !seen[y] {
			seen[y] = true
			years = append(years, y)
		}
	}
	sort.Sort(sort.Reverse(sort.IntSlice(years)))
	return years
}
