package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense is a single spending event paid by one user on behalf of a household.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string

	// HouseholdID is the household this expense belongs to.
	HouseholdID string

	// Amount is the total spent, at currency precision (2 fractional digits).
	Amount decimal.Decimal

	// Date is when the money was spent. Stored with second precision in UTC.
	Date time.Time

	// Description is a free-form label (e.g., "lunch").
	Description string

	// PaidByUserID is the user who paid. Expected, but not required, to be a member.
	PaidByUserID string

	// CreatedAt is the Unix timestamp when the expense was recorded.
	CreatedAt int64
}

// ExpenseShare is the portion of an expense attributed to one user as owed.
// An (ExpenseID, UserID) pair is unique.
type ExpenseShare struct {
	ExpenseID string
	UserID    string
	Amount    decimal.Decimal
}
