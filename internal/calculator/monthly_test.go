package calculator

import (
	"testing"
	"time"

	"github.com/mmynk/households/internal/models"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
}

func TestMonthlyTotals(t *testing.T) {
	expenses := []models.Expense{
		{Amount: dec("10"), Date: day(2024, time.January, 15)},
		{Amount: dec("5"), Date: day(2024, time.January, 20)},
		{Amount: dec("7"), Date: day(2024, time.February, 1)},
	}

	got := MonthlyTotals(expenses)
	want := []models.MonthlyTotal{
		{Year: 2024, Month: 2, TotalSpent: dec("7")},
		{Year: 2024, Month: 1, TotalSpent: dec("15")},
	}

	if len(got) != len(want) {
		t.Fatalf("got %d months, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].Year != want[i].Year || got[i].Month != want[i].Month || !got[i].TotalSpent.Equal(want[i].TotalSpent) {
			t.Errorf("month %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestMonthlyTotals_OrdersAcrossYears(t *testing.T) {
	expenses := []models.Expense{
		{Amount: dec("1"), Date: day(2023, time.December, 31)},
		{Amount: dec("2"), Date: day(2024, time.March, 3)},
		{Amount: dec("3"), Date: day(2023, time.November, 2)},
		{Amount: dec("4"), Date: day(2024, time.January, 9)},
	}

	got := MonthlyTotals(expenses)
	order := [][2]int{{2024, 3}, {2024, 1}, {2023, 12}, {2023, 11}}
	if len(got) != len(order) {
		t.Fatalf("got %d months, want %d", len(got), len(order))
	}
	for i, ym := range order {
		if got[i].Year != ym[0] || got[i].Month != ym[1] {
			t.Errorf("position %d = %d-%02d, want %d-%02d", i, got[i].Year, got[i].Month, ym[0], ym[1])
		}
	}
}

func TestMonthlyTotals_Empty(t *testing.T) {
	if got := MonthlyTotals(nil); len(got) != 0 {
		t.Errorf("got %d months for no expenses", len(got))
	}
}

func TestMonthlyTotals_GroupsByUTCMonth(t *testing.T) {
	plusTwo := time.FixedZone("UTC+2", 2*60*60)
	expenses := []models.Expense{
		{Amount: dec("10"), Date: time.Date(2024, time.February, 1, 0, 30, 0, 0, plusTwo)},
	}

	got := MonthlyTotals(expenses)
	if len(got) != 1 {
		t.Fatalf("got %d months, want 1", len(got))
	}
	if got[0].Year != 2024 || got[0].Month != 1 {
		t.Errorf("grouped under %d-%02d, want 2024-01", got[0].Year, got[0].Month)
	}
}
