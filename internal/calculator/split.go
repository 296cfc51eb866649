package calculator

import (
	"errors"

	"github.com/shopspring/decimal"
)

// ErrNoMembers is returned when an equal split has nobody to split among.
var ErrNoMembers = errors.New("household has no members")

// SplitMode selects how an expense amount is divided.
type SplitMode int

const (
	// EqualSplit divides the amount evenly among all household members.
	EqualSplit SplitMode = iota
	// CustomSplit uses caller-supplied per-user amounts as-is.
	CustomSplit
)

func (m SplitMode) String() string {
	switch m {
	case EqualSplit:
		return "equal"
	case CustomSplit:
		return "custom"
	default:
		return "unknown"
	}
}

// currencyPlaces is the number of fractional digits amounts are rounded to.
const currencyPlaces = 2

// Share is one user's portion of an expense.
type Share struct {
	UserID string
	Amount decimal.Decimal
}

// ComputeShares produces the per-user shares to persist for a new expense.
//
// EqualSplit: per = round(total / n, 2) goes to every member, and the first
// member in memberIDs order also absorbs remainder = total - per*n, so the
// shares always sum to total exactly. The remainder may be negative.
//
// CustomSplit: explicit is returned unchanged. Its sum and its user IDs are not
// checked here. A CustomSplit with no explicit shares falls back to EqualSplit.
func ComputeShares(total decimal.Decimal, memberIDs []string, mode SplitMode, explicit []Share) ([]Share, error) {
	if mode == CustomSplit && len(explicit) > 0 {
		shares := make([]Share, len(explicit))
		copy(shares, explicit)
		return shares, nil
	}

	if len(memberIDs) == 0 {
		return nil, ErrNoMembers
	}

	n := decimal.NewFromInt(int64(len(memberIDs)))
	per := total.Div(n).Round(currencyPlaces)
	remainder := total.Sub(per.Mul(n))

	shares := make([]Share, len(memberIDs))
	for i, userID := range memberIDs {
		amount := per
		if i == 0 {
			amount = per.Add(remainder)
		}
		shares[i] = Share{UserID: userID, Amount: amount}
	}
	return shares, nil
}

// SumShares returns the total of all share amounts.
func SumShares(shares []Share) decimal.Decimal {
	sum := decimal.Zero
	for _, s := range shares {
		sum = sum.Add(s.Amount)
	}
	return sum
}
