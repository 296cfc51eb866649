package api

import "github.com/shopspring/decimal"

type MemberBalance struct {
	UserId      string          `json:"userId"`
	DisplayName string          `json:"displayName"`
	TotalPaid   decimal.Decimal `json:"totalPaid"`
	TotalOwed   decimal.Decimal `json:"totalOwed"`
	Balance     decimal.Decimal `json:"balance"`
}

type MonthlyTotal struct {
	Year       int             `json:"year"`
	Month      int             `json:"month"`
	TotalSpent decimal.Decimal `json:"totalSpent"`
}

type Transfer struct {
	FromUserId string          `json:"fromUserId"`
	ToUserId   string          `json:"toUserId"`
	Amount     decimal.Decimal `json:"amount"`
}

type GetBalancesRequest struct {
	HouseholdId string `json:"householdId"`
}

type GetBalancesResponse struct {
	Balances []*MemberBalance `json:"balances"`
}

type GetMonthlySummaryRequest struct {
	HouseholdId string `json:"householdId"`
}

type GetMonthlySummaryResponse struct {
	Months []*MonthlyTotal `json:"months"`
}

type GetSettlementPlanRequest struct {
	HouseholdId string `json:"householdId"`
}

type GetSettlementPlanResponse struct {
	Transfers []*Transfer `json:"transfers"`
}
