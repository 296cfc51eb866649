package calculator

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/mmynk/households/internal/models"
)

// ComputeBalances aggregates a household's expenses and shares into per-user totals.
//
//   - TotalPaid: sum of expense amounts where the user is the payer
//   - TotalOwed: sum of share amounts allocated to the user
//   - Balance:   TotalPaid - TotalOwed
//
// Only users that hold at least one share are reported, in order of first
// appearance in shares. A payer with no share in any expense is left out.
func ComputeBalances(expenses []models.Expense, shares []models.ExpenseShare) []models.MemberBalance {
	paid := make(map[string]decimal.Decimal)
	for _, e := range expenses {
		paid[e.PaidByUserID] = paid[e.PaidByUserID].Add(e.Amount)
	}

	owed := make(map[string]decimal.Decimal)
	var order []string
	for _, s := range shares {
		if _, seen := owed[s.UserID]; !seen {
			order = append(order, s.UserID)
		}
		owed[s.UserID] = owed[s.UserID].Add(s.Amount)
	}

	balances := make([]models.MemberBalance, 0, len(order))
	for _, userID := range order {
		totalPaid := paid[userID]
		totalOwed := owed[userID]
		balances = append(balances, models.MemberBalance{
			UserID:    userID,
			TotalPaid: totalPaid,
			TotalOwed: totalOwed,
			Balance:   totalPaid.Sub(totalOwed),
		})
	}
	return balances
}

// SettleUp suggests transfers that bring every balance to zero.
//
// Debtors are matched with creditors greedily, largest amounts first. Ties are
// broken by user ID so the plan is deterministic. When balances do not net to
// zero (unbalanced custom shares), the unmatched rest is left out of the plan.
func SettleUp(balances []models.MemberBalance) []models.Transfer {
	type position struct {
		userID string
		amount decimal.Decimal // always positive
	}

	var creditors, debtors []position
	for _, b := range balances {
		switch {
		case b.Balance.IsPositive():
			creditors = append(creditors, position{b.UserID, b.Balance})
		case b.Balance.IsNegative():
			debtors = append(debtors, position{b.UserID, b.Balance.Neg()})
		}
	}

	byAmount := func(ps []position) func(i, j int) bool {
		return func(i, j int) bool {
			if c := ps[i].amount.Cmp(ps[j].amount); c != 0 {
				return c > 0
			}
			return ps[i].userID < ps[j].userID
		}
	}
	sort.Slice(creditors, byAmount(creditors))
	sort.Slice(debtors, byAmount(debtors))

	var transfers []models.Transfer
	i, j := 0, 0
	for i < len(debtors) && j < len(creditors) {
		amount := decimal.Min(debtors[i].amount, creditors[j].amount)
		transfers = append(transfers, models.Transfer{
			FromUserID: debtors[i].userID,
			ToUserID:   creditors[j].userID,
			Amount:     amount,
		})

		debtors[i].amount = debtors[i].amount.Sub(amount)
		creditors[j].amount = creditors[j].amount.Sub(amount)

		if debtors[i].amount.IsZero() {
			i++
		}
		if creditors[j].amount.IsZero() {
			j++
		}
	}
	return transfers
}
