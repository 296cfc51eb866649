package models

import "github.com/shopspring/decimal"

// MemberBalance is one user's aggregate position within a household.
type MemberBalance struct {
	UserID    string
	TotalPaid decimal.Decimal
	TotalOwed decimal.Decimal

	// Balance is TotalPaid - TotalOwed. Positive = owed money, negative = owes money.
	Balance decimal.Decimal
}

// MonthlyTotal is the sum of a household's expense amounts in one calendar month.
type MonthlyTotal struct {
	Year       int
	Month      int // 1-12
	TotalSpent decimal.Decimal
}

// Transfer is one payment that moves a debtor towards a zero balance.
type Transfer struct {
	FromUserID string // Person who owes
	ToUserID   string // Person who is owed
	Amount     decimal.Decimal
}
