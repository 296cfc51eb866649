package calculator

import (
	"testing"

	"github.com/mmynk/households/internal/models"
)

func TestComputeBalances(t *testing.T) {
	expenses := []models.Expense{
		{ID: "e1", Amount: dec("10.00"), PaidByUserID: "A"},
		{ID: "e2", Amount: dec("6.00"), PaidByUserID: "B"},
	}
	shares := []models.ExpenseShare{
		{ExpenseID: "e1", UserID: "A", Amount: dec("3.34")},
		{ExpenseID: "e1", UserID: "B", Amount: dec("3.33")},
		{ExpenseID: "e1", UserID: "C", Amount: dec("3.33")},
		{ExpenseID: "e2", UserID: "A", Amount: dec("2.00")},
		{ExpenseID: "e2", UserID: "B", Amount: dec("2.00")},
		{ExpenseID: "e2", UserID: "C", Amount: dec("2.00")},
	}

	balances := ComputeBalances(expenses, shares)
	if len(balances) != 3 {
		t.Fatalf("got %d balances, want 3", len(balances))
	}

	want := map[string]struct{ paid, owed, net string }{
		"A": {"10.00", "5.34", "4.66"},
		"B": {"6.00", "5.33", "0.67"},
		"C": {"0", "5.33", "-5.33"},
	}
	totalOwed := dec("0")
	for _, b := range balances {
		w := want[b.UserID]
		if !b.TotalPaid.Equal(dec(w.paid)) {
			t.Errorf("%s paid = %s, want %s", b.UserID, b.TotalPaid, w.paid)
		}
		if !b.TotalOwed.Equal(dec(w.owed)) {
			t.Errorf("%s owed = %s, want %s", b.UserID, b.TotalOwed, w.owed)
		}
		if !b.Balance.Equal(b.TotalPaid.Sub(b.TotalOwed)) || !b.Balance.Equal(dec(w.net)) {
			t.Errorf("%s balance = %s, want %s", b.UserID, b.Balance, w.net)
		}
		totalOwed = totalOwed.Add(b.TotalOwed)
	}

	if !totalOwed.Equal(dec("16.00")) {
		t.Errorf("sum of owed = %s, want 16.00 (sum of expenses)", totalOwed)
	}

	// First-appearance order in shares.
	if balances[0].UserID != "A" || balances[1].UserID != "B" || balances[2].UserID != "C" {
		t.Errorf("unexpected order: %s, %s, %s", balances[0].UserID, balances[1].UserID, balances[2].UserID)
	}
}

func TestComputeBalances_PayerWithoutShareIsOmitted(t *testing.T) {
	expenses := []models.Expense{{ID: "e1", Amount: dec("20"), PaidByUserID: "landlord"}}
	shares := []models.ExpenseShare{
		{ExpenseID: "e1", UserID: "A", Amount: dec("10")},
		{ExpenseID: "e1", UserID: "B", Amount: dec("10")},
	}

	balances := ComputeBalances(expenses, shares)
	if len(balances) != 2 {
		t.Fatalf("got %d balances, want 2", len(balances))
	}
	for _, b := range balances {
		if b.UserID == "landlord" {
			t.Error("payer without a share must not be reported")
		}
		if !b.TotalPaid.IsZero() {
			t.Errorf("%s paid = %s, want 0", b.UserID, b.TotalPaid)
		}
	}
}

func TestComputeBalances_Empty(t *testing.T) {
	if got := ComputeBalances(nil, nil); len(got) != 0 {
		t.Errorf("got %d balances for empty input", len(got))
	}
}

func TestSettleUp(t *testing.T) {
	tests := []struct {
		name     string
		balances []models.MemberBalance
		want     []models.Transfer
	}{
		{
			name: "one creditor two debtors",
			balances: []models.MemberBalance{
				{UserID: "A", Balance: dec("6.66")},
				{UserID: "B", Balance: dec("-3.33")},
				{UserID: "C", Balance: dec("-3.33")},
			},
			want: []models.Transfer{
				{FromUserID: "B", ToUserID: "A", Amount: dec("3.33")},
				{FromUserID: "C", ToUserID: "A", Amount: dec("3.33")},
			},
		},
		{
			name: "largest debtor pays largest creditor first",
			balances: []models.MemberBalance{
				{UserID: "A", Balance: dec("5")},
				{UserID: "B", Balance: dec("10")},
				{UserID: "C", Balance: dec("-12")},
				{UserID: "D", Balance: dec("-3")},
			},
			want: []models.Transfer{
				{FromUserID: "C", ToUserID: "B", Amount: dec("10")},
				{FromUserID: "C", ToUserID: "A", Amount: dec("2")},
				{FromUserID: "D", ToUserID: "A", Amount: dec("3")},
			},
		},
		{
			name: "all settled",
			balances: []models.MemberBalance{
				{UserID: "A", Balance: dec("0")},
				{UserID: "B", Balance: dec("0")},
			},
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SettleUp(tt.balances)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d transfers, want %d: %+v", len(got), len(tt.want), got)
			}
			for i := range got {
				if got[i].FromUserID != tt.want[i].FromUserID ||
					got[i].ToUserID != tt.want[i].ToUserID ||
					!got[i].Amount.Equal(tt.want[i].Amount) {
					t.Errorf("transfer %d = %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}
