package apiconnect

import (
	"context"
	"errors"
	"net/http"

	"connectrpc.com/connect"

	api "github.com/mmynk/households/pkg/api"
)

const (
	// ExpenseServiceName is the fully-qualified name of the ExpenseService service.
	ExpenseServiceName = "households.v1.ExpenseService"
)

const (
	ExpenseServiceCreateExpenseProcedure     = "/households.v1.ExpenseService/CreateExpense"
	ExpenseServiceListExpensesProcedure      = "/households.v1.ExpenseService/ListExpenses"
	ExpenseServiceGetBalancesProcedure       = "/households.v1.ExpenseService/GetBalances"
	ExpenseServiceGetMonthlySummaryProcedure = "/households.v1.ExpenseService/GetMonthlySummary"
	ExpenseServiceGetSettlementPlanProcedure = "/households.v1.ExpenseService/GetSettlementPlan"
)

// ExpenseServiceClient is a client for the households.v1.ExpenseService service.
type ExpenseServiceClient interface {
	CreateExpense(context.Context, *connect.Request[api.CreateExpenseRequest]) (*connect.Response[api.CreateExpenseResponse], error)
	ListExpenses(context.Context, *connect.Request[api.ListExpensesRequest]) (*connect.Response[api.ListExpensesResponse], error)
	GetBalances(context.Context, *connect.Request[api.GetBalancesRequest]) (*connect.Response[api.GetBalancesResponse], error)
	GetMonthlySummary(context.Context, *connect.Request[api.GetMonthlySummaryRequest]) (*connect.Response[api.GetMonthlySummaryResponse], error)
	GetSettlementPlan(context.Context, *connect.Request[api.GetSettlementPlanRequest]) (*connect.Response[api.GetSettlementPlanResponse], error)
}

// NewExpenseServiceClient constructs a client for the households.v1.ExpenseService service.
func NewExpenseServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) ExpenseServiceClient {
	opts = append([]connect.ClientOption{api.WithJSON()}, opts...)
	return &expenseServiceClient{
		createExpense: connect.NewClient[api.CreateExpenseRequest, api.CreateExpenseResponse](
			httpClient, baseURL+ExpenseServiceCreateExpenseProcedure, opts...,
		),
		listExpenses: connect.NewClient[api.ListExpensesRequest, api.ListExpensesResponse](
			httpClient, baseURL+ExpenseServiceListExpensesProcedure, opts...,
		),
		getBalances: connect.NewClient[api.GetBalancesRequest, api.GetBalancesResponse](
			httpClient, baseURL+ExpenseServiceGetBalancesProcedure, opts...,
		),
		getMonthlySummary: connect.NewClient[api.GetMonthlySummaryRequest, api.GetMonthlySummaryResponse](
			httpClient, baseURL+ExpenseServiceGetMonthlySummaryProcedure, opts...,
		),
		getSettlementPlan: connect.NewClient[api.GetSettlementPlanRequest, api.GetSettlementPlanResponse](
			httpClient, baseURL+ExpenseServiceGetSettlementPlanProcedure, opts...,
		),
	}
}

type expenseServiceClient struct {
	createExpense     *connect.Client[api.CreateExpenseRequest, api.CreateExpenseResponse]
	listExpenses      *connect.Client[api.ListExpensesRequest, api.ListExpensesResponse]
	getBalances       *connect.Client[api.GetBalancesRequest, api.GetBalancesResponse]
	getMonthlySummary *connect.Client[api.GetMonthlySummaryRequest, api.GetMonthlySummaryResponse]
	getSettlementPlan *connect.Client[api.GetSettlementPlanRequest, api.GetSettlementPlanResponse]
}

func (c *expenseServiceClient) CreateExpense(ctx context.Context, req *connect.Request[api.CreateExpenseRequest]) (*connect.Response[api.CreateExpenseResponse], error) {
	return c.createExpense.CallUnary(ctx, req)
}

func (c *expenseServiceClient) ListExpenses(ctx context.Context, req *connect.Request[api.ListExpensesRequest]) (*connect.Response[api.ListExpensesResponse], error) {
	return c.listExpenses.CallUnary(ctx, req)
}

func (c *expenseServiceClient) GetBalances(ctx context.Context, req *connect.Request[api.GetBalancesRequest]) (*connect.Response[api.GetBalancesResponse], error) {
	return c.getBalances.CallUnary(ctx, req)
}

func (c *expenseServiceClient) GetMonthlySummary(ctx context.Context, req *connect.Request[api.GetMonthlySummaryRequest]) (*connect.Response[api.GetMonthlySummaryResponse], error) {
	return c.getMonthlySummary.CallUnary(ctx, req)
}

func (c *expenseServiceClient) GetSettlementPlan(ctx context.Context, req *connect.Request[api.GetSettlementPlanRequest]) (*connect.Response[api.GetSettlementPlanResponse], error) {
	return c.getSettlementPlan.CallUnary(ctx, req)
}

// ExpenseServiceHandler is an implementation of the households.v1.ExpenseService service.
type ExpenseServiceHandler interface {
	CreateExpense(context.Context, *connect.Request[api.CreateExpenseRequest]) (*connect.Response[api.CreateExpenseResponse], error)
	ListExpenses(context.Context, *connect.Request[api.ListExpensesRequest]) (*connect.Response[api.ListExpensesResponse], error)
	GetBalances(context.Context, *connect.Request[api.GetBalancesRequest]) (*connect.Response[api.GetBalancesResponse], error)
	GetMonthlySummary(context.Context, *connect.Request[api.GetMonthlySummaryRequest]) (*connect.Response[api.GetMonthlySummaryResponse], error)
	GetSettlementPlan(context.Context, *connect.Request[api.GetSettlementPlanRequest]) (*connect.Response[api.GetSettlementPlanResponse], error)
}

// NewExpenseServiceHandler builds an HTTP handler from the service implementation.
// It returns the path on which to mount the handler and the handler itself.
func NewExpenseServiceHandler(svc ExpenseServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{api.WithJSON()}, opts...)
	createExpense := connect.NewUnaryHandler(ExpenseServiceCreateExpenseProcedure, svc.CreateExpense, opts...)
	listExpenses := connect.NewUnaryHandler(ExpenseServiceListExpensesProcedure, svc.ListExpenses, opts...)
	getBalances := connect.NewUnaryHandler(ExpenseServiceGetBalancesProcedure, svc.GetBalances, opts...)
	getMonthlySummary := connect.NewUnaryHandler(ExpenseServiceGetMonthlySummaryProcedure, svc.GetMonthlySummary, opts...)
	getSettlementPlan := connect.NewUnaryHandler(ExpenseServiceGetSettlementPlanProcedure, svc.GetSettlementPlan, opts...)
	return "/" + ExpenseServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case ExpenseServiceCreateExpenseProcedure:
			createExpense.ServeHTTP(w, r)
		case ExpenseServiceListExpensesProcedure:
			listExpenses.ServeHTTP(w, r)
		case ExpenseServiceGetBalancesProcedure:
			getBalances.ServeHTTP(w, r)
		case ExpenseServiceGetMonthlySummaryProcedure:
			getMonthlySummary.ServeHTTP(w, r)
		case ExpenseServiceGetSettlementPlanProcedure:
			getSettlementPlan.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// UnimplementedExpenseServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedExpenseServiceHandler struct{}

func (UnimplementedExpenseServiceHandler) CreateExpense(context.Context, *connect.Request[api.CreateExpenseRequest]) (*connect.Response[api.CreateExpenseResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("households.v1.ExpenseService.CreateExpense is not implemented"))
}

func (UnimplementedExpenseServiceHandler) ListExpenses(context.Context, *connect.Request[api.ListExpensesRequest]) (*connect.Response[api.ListExpensesResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("households.v1.ExpenseService.ListExpenses is not implemented"))
}

func (UnimplementedExpenseServiceHandler) GetBalances(context.Context, *connect.Request[api.GetBalancesRequest]) (*connect.Response[api.GetBalancesResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("households.v1.ExpenseService.GetBalances is not implemented"))
}

func (UnimplementedExpenseServiceHandler) GetMonthlySummary(context.Context, *connect.Request[api.GetMonthlySummaryRequest]) (*connect.Response[api.GetMonthlySummaryResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("households.v1.ExpenseService.GetMonthlySummary is not implemented"))
}

func (UnimplementedExpenseServiceHandler) GetSettlementPlan(context.Context, *connect.Request[api.GetSettlementPlanRequest]) (*connect.Response[api.GetSettlementPlanResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("households.v1.ExpenseService.GetSettlementPlan is not implemented"))
}
