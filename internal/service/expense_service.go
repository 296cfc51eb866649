package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/households/internal/ledger"
	api "github.com/mmynk/households/pkg/api"
	"github.com/mmynk/households/pkg/api/apiconnect"
)

// ExpenseService implements the Connect ExpenseService
type ExpenseService struct {
	apiconnect.UnimplementedExpenseServiceHandler
	ledger *ledger.Ledger
}

// NewExpenseService creates a new ExpenseService backed by the given ledger.
func NewExpenseService(l *ledger.Ledger) *ExpenseService {
	return &ExpenseService{ledger: l}
}

// CreateExpense records an expense paid in a household the caller belongs to.
func (s *ExpenseService) CreateExpense(ctx context.Context, req *connect.Request[api.CreateExpenseRequest]) (*connect.Response[api.CreateExpenseResponse], error) {
	actor, err := actorFrom(ctx)
	if err != nil {
		return nil, err
	}
	if err := requireID("household_id", req.Msg.HouseholdId); err != nil {
		return nil, err
	}
	slog.DebugContext(ctx, "CreateExpense request received",
		"household_id", req.Msg.HouseholdId,
		"amount", req.Msg.Amount.String(),
		"split_equally", req.Msg.SplitEquallyOrDefault(),
		"shares_count", len(req.Msg.Shares),
	)

	date, err := parseDate(req.Msg.Date)
	if err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}

	in := ledger.CreateExpenseInput{
		HouseholdID:  req.Msg.HouseholdId,
		Amount:       req.Msg.Amount,
		Description:  req.Msg.Description,
		Date:         date,
		PaidByUserID: req.Msg.PaidByUserId,
		SplitEqually: req.Msg.SplitEquallyOrDefault(),
	}
	for _, sh := range req.Msg.Shares {
		if sh == nil {
			continue
		}
		in.Shares = append(in.Shares, ledger.ShareInput{UserID: sh.UserId, Amount: sh.Amount})
	}

	detail, err := s.ledger.CreateExpense(ctx, actor, in)
	if err != nil {
		return nil, toConnectError(ctx, "CreateExpense", err)
	}

	return connect.NewResponse(&api.CreateExpenseResponse{Expense: expenseToAPI(detail)}), nil
}

// ListExpenses lists a household's expenses, newest first.
func (s *ExpenseService) ListExpenses(ctx context.Context, req *connect.Request[api.ListExpensesRequest]) (*connect.Response[api.ListExpensesResponse], error) {
	if err := requireID("household_id", req.Msg.HouseholdId); err != nil {
		return nil, err
	}

	details, err := s.ledger.ListExpenses(ctx, req.Msg.HouseholdId)
	if err != nil {
		return nil, toConnectError(ctx, "ListExpenses", err)
	}

	expenses := make([]*api.Expense, len(details))
	for i := range details {
		expenses[i] = expenseToAPI(&details[i])
	}

	return connect.NewResponse(&api.ListExpensesResponse{Expenses: expenses}), nil
}

// GetBalances reports paid, owed and net totals for each share holder.
func (s *ExpenseService) GetBalances(ctx context.Context, req *connect.Request[api.GetBalancesRequest]) (*connect.Response[api.GetBalancesResponse], error) {
	if err := requireID("household_id", req.Msg.HouseholdId); err != nil {
		return nil, err
	}

	details, err := s.ledger.GetBalances(ctx, req.Msg.HouseholdId)
	if err != nil {
		return nil, toConnectError(ctx, "GetBalances", err)
	}

	balances := make([]*api.MemberBalance, len(details))
	for i, b := range details {
		balances[i] = &api.MemberBalance{
			UserId:      b.UserID,
			DisplayName: b.DisplayName,
			TotalPaid:   b.TotalPaid,
			TotalOwed:   b.TotalOwed,
			Balance:     b.Balance,
		}
	}

	return connect.NewResponse(&api.GetBalancesResponse{Balances: balances}), nil
}

// GetMonthlySummary totals spending per calendar month, newest first.
func (s *ExpenseService) GetMonthlySummary(ctx context.Context, req *connect.Request[api.GetMonthlySummaryRequest]) (*connect.Response[api.GetMonthlySummaryResponse], error) {
	if err := requireID("household_id", req.Msg.HouseholdId); err != nil {
		return nil, err
	}

	totals, err := s.ledger.GetMonthlySummary(ctx, req.Msg.HouseholdId)
	if err != nil {
		return nil, toConnectError(ctx, "GetMonthlySummary", err)
	}

	months := make([]*api.MonthlyTotal, len(totals))
	for i, m := range totals {
		months[i] = &api.MonthlyTotal{Year: m.Year, Month: m.Month, TotalSpent: m.TotalSpent}
	}

	return connect.NewResponse(&api.GetMonthlySummaryResponse{Months: months}), nil
}

// GetSettlementPlan suggests transfers that settle every balance.
func (s *ExpenseService) GetSettlementPlan(ctx context.Context, req *connect.Request[api.GetSettlementPlanRequest]) (*connect.Response[api.GetSettlementPlanResponse], error) {
	if err := requireID("household_id", req.Msg.HouseholdId); err != nil {
		return nil, err
	}

	plan, err := s.ledger.GetSettlementPlan(ctx, req.Msg.HouseholdId)
	if err != nil {
		return nil, toConnectError(ctx, "GetSettlementPlan", err)
	}

	transfers := make([]*api.Transfer, len(plan))
	for i, t := range plan {
		transfers[i] = &api.Transfer{FromUserId: t.FromUserID, ToUserId: t.ToUserID, Amount: t.Amount}
	}

	return connect.NewResponse(&api.GetSettlementPlanResponse{Transfers: transfers}), nil
}

// parseDate accepts RFC 3339 timestamps and bare dates. Empty means "now",
// which the ledger fills in.
func parseDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse(time.DateOnly, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: want RFC 3339 or YYYY-MM-DD", value)
	}
	return t, nil
}

func expenseToAPI(d *ledger.ExpenseDetail) *api.Expense {
	shares := make([]*api.Share, len(d.Shares))
	for i, s := range d.Shares {
		shares[i] = &api.Share{UserId: s.UserID, DisplayName: s.DisplayName, Amount: s.Amount}
	}
	return &api.Expense{
		Id:           d.ID,
		HouseholdId:  d.HouseholdID,
		Amount:       d.Amount,
		Date:         d.Date.UTC().Format(api.DateLayout),
		Description:  d.Description,
		PaidByUserId: d.PaidByUserID,
		PaidByName:   d.PaidByName,
		CreatedAt:    d.CreatedAt,
		Shares:       shares,
	}
}
