package ledger

import (
	"context"

	"github.com/mmynk/households/internal/calculator"
	"github.com/mmynk/households/internal/models"
)

// BalanceDetail is a member balance with a resolved display name.
type BalanceDetail struct {
	models.MemberBalance
	DisplayName string
}

// GetBalances computes each share holder's paid, owed and net totals for a
// household. Payers that hold no share are not reported.
func (l *Ledger) GetBalances(ctx context.Context, householdID string) ([]BalanceDetail, error) {
	expenses, shares, err := l.loadHousehold(ctx, householdID)
	if err != nil {
		return nil, err
	}

	balances := calculator.ComputeBalances(expenses, shares)

	names := l.newNameCache()
	details := make([]BalanceDetail, len(balances))
	for i, b := range balances {
		details[i] = BalanceDetail{MemberBalance: b, DisplayName: names.labelOrID(ctx, b.UserID)}
	}
	return details, nil
}

// GetMonthlySummary totals a household's spending per calendar month, newest first.
func (l *Ledger) GetMonthlySummary(ctx context.Context, householdID string) ([]models.MonthlyTotal, error) {
	if err := l.requireHousehold(ctx, householdID); err != nil {
		return nil, err
	}

	expenses, err := l.store.ListExpenses(ctx, householdID)
	if err != nil {
		return nil, err
	}
	return calculator.MonthlyTotals(expenses), nil
}

// GetSettlementPlan suggests the transfers that would zero every balance.
func (l *Ledger) GetSettlementPlan(ctx context.Context, householdID string) ([]models.Transfer, error) {
	expenses, shares, err := l.loadHousehold(ctx, householdID)
	if err != nil {
		return nil, err
	}
	return calculator.SettleUp(calculator.ComputeBalances(expenses, shares)), nil
}
