package api

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the layout of Expense.Date in responses. Requests may also
// send a bare date ("2024-01-15").
const DateLayout = time.RFC3339

type Share struct {
	UserId      string          `json:"userId"`
	DisplayName string          `json:"displayName,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
}

type Expense struct {
	Id           string          `json:"id"`
	HouseholdId  string          `json:"householdId"`
	Amount       decimal.Decimal `json:"amount"`
	Date         string          `json:"date"`
	Description  string          `json:"description"`
	PaidByUserId string          `json:"paidByUserId"`
	PaidByName   string          `json:"paidByName"`
	CreatedAt    int64           `json:"createdAt"`
	Shares       []*Share        `json:"shares"`
}

type CreateExpenseRequest struct {
	HouseholdId string          `json:"householdId"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description,omitempty"`

	// Date is RFC 3339 or YYYY-MM-DD. Empty means now.
	Date string `json:"date,omitempty"`

	// PaidByUserId defaults to the caller.
	PaidByUserId string `json:"paidByUserId,omitempty"`

	// SplitEqually defaults to true when omitted; Shares are then ignored.
	// Send false to use Shares as a custom split.
	SplitEqually *bool    `json:"splitEqually,omitempty"`
	Shares       []*Share `json:"shares,omitempty"`
}

// SplitEquallyOrDefault returns SplitEqually, or true when it is unset.
func (r *CreateExpenseRequest) SplitEquallyOrDefault() bool {
	if r.SplitEqually == nil {
		return true
	}
	return *r.SplitEqually
}

type CreateExpenseResponse struct {
	Expense *Expense `json:"expense"`
}

type ListExpensesRequest struct {
	HouseholdId string `json:"householdId"`
}

type ListExpensesResponse struct {
	Expenses []*Expense `json:"expenses"`
}
