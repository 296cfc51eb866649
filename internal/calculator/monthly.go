package calculator

import (
	"sort"

	"github.com/mmynk/households/internal/models"
)

// MonthlyTotals groups expenses by the UTC calendar year and month of their
// date and sums the amounts. Dates are stored in UTC, so an expense dated
// 2024-02-01T00:30:00+02:00 counts towards January 2024.
// Results are ordered newest month first.
func MonthlyTotals(expenses []models.Expense) []models.MonthlyTotal {
	type yearMonth struct{ year, month int }

	totals := make(map[yearMonth]*models.MonthlyTotal)
	for _, e := range expenses {
		date := e.Date.UTC()
		key := yearMonth{date.Year(), int(date.Month())}
		t, ok := totals[key]
		if !ok {
			t = &models.MonthlyTotal{Year: key.year, Month: key.month}
			totals[key] = t
		}
		t.TotalSpent = t.TotalSpent.Add(e.Amount)
	}

	result := make([]models.MonthlyTotal, 0, len(totals))
	for _, t := range totals {
		result = append(result, *t)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Year != result[j].Year {
			return result[i].Year > result[j].Year
		}
		return result[i].Month > result[j].Month
	})
	return result
}
