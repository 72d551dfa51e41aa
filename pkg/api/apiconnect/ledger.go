package apiconnect

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/khushthecoder/Expense-Splitter/pkg/api"
)

// LedgerServiceName is the fully-qualified name of the LedgerService.
const LedgerServiceName = "splitter.v1.LedgerService"

// Procedure paths, as used in Spec().Procedure and URL routing.
const (
	LedgerServiceCreateExpenseProcedure        = "/splitter.v1.LedgerService/CreateExpense"
	LedgerServiceGetExpenseProcedure           = "/splitter.v1.LedgerService/GetExpense"
	LedgerServiceDeleteExpenseProcedure        = "/splitter.v1.LedgerService/DeleteExpense"
	LedgerServiceListGroupExpensesProcedure    = "/splitter.v1.LedgerService/ListGroupExpenses"
	LedgerServiceCreateSettlementProcedure     = "/splitter.v1.LedgerService/CreateSettlement"
	LedgerServiceDeleteSettlementProcedure     = "/splitter.v1.LedgerService/DeleteSettlement"
	LedgerServiceListGroupSettlementsProcedure = "/splitter.v1.LedgerService/ListGroupSettlements"
	LedgerServiceListUserSettlementsProcedure  = "/splitter.v1.LedgerService/ListUserSettlements"
	LedgerServiceGetGroupBalancesProcedure     = "/splitter.v1.LedgerService/GetGroupBalances"
	LedgerServiceGetPersonalBalancesProcedure  = "/splitter.v1.LedgerService/GetPersonalBalances"
	LedgerServiceGetActivityProcedure          = "/splitter.v1.LedgerService/GetActivity"
)

// LedgerServiceHandler is implemented by the server side of LedgerService.
// LedgerService records expenses and settlements and serves balances
// and activity.
type LedgerServiceHandler interface {
	CreateExpense(context.Context, *connect.Request[api.CreateExpenseRequest]) (*connect.Response[api.CreateExpenseResponse], error)
	GetExpense(context.Context, *connect.Request[api.GetExpenseRequest]) (*connect.Response[api.GetExpenseResponse], error)
	DeleteExpense(context.Context, *connect.Request[api.DeleteExpenseRequest]) (*connect.Response[api.DeleteExpenseResponse], error)
	ListGroupExpenses(context.Context, *connect.Request[api.ListGroupExpensesRequest]) (*connect.Response[api.ListGroupExpensesResponse], error)
	CreateSettlement(context.Context, *connect.Request[api.CreateSettlementRequest]) (*connect.Response[api.CreateSettlementResponse], error)
	DeleteSettlement(context.Context, *connect.Request[api.DeleteSettlementRequest]) (*connect.Response[api.DeleteSettlementResponse], error)
	ListGroupSettlements(context.Context, *connect.Request[api.ListGroupSettlementsRequest]) (*connect.Response[api.ListGroupSettlementsResponse], error)
	ListUserSettlements(context.Context, *connect.Request[api.ListUserSettlementsRequest]) (*connect.Response[api.ListUserSettlementsResponse], error)
	GetGroupBalances(context.Context, *connect.Request[api.GetGroupBalancesRequest]) (*connect.Response[api.GetGroupBalancesResponse], error)
	GetPersonalBalances(context.Context, *connect.Request[api.GetPersonalBalancesRequest]) (*connect.Response[api.GetPersonalBalancesResponse], error)
	GetActivity(context.Context, *connect.Request[api.GetActivityRequest]) (*connect.Response[api.GetActivityResponse], error)
}

// NewLedgerServiceHandler builds an HTTP handler serving every LedgerService procedure.
// It returns the path prefix to mount the handler on.
func NewLedgerServiceHandler(svc LedgerServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(JSONCodec{})}, opts...)

	createExpenseHandler := connect.NewUnaryHandler(LedgerServiceCreateExpenseProcedure, svc.CreateExpense, opts...)
	getExpenseHandler := connect.NewUnaryHandler(LedgerServiceGetExpenseProcedure, svc.GetExpense, opts...)
	deleteExpenseHandler := connect.NewUnaryHandler(LedgerServiceDeleteExpenseProcedure, svc.DeleteExpense, opts...)
	listGroupExpensesHandler := connect.NewUnaryHandler(LedgerServiceListGroupExpensesProcedure, svc.ListGroupExpenses, opts...)
	createSettlementHandler := connect.NewUnaryHandler(LedgerServiceCreateSettlementProcedure, svc.CreateSettlement, opts...)
	deleteSettlementHandler := connect.NewUnaryHandler(LedgerServiceDeleteSettlementProcedure, svc.DeleteSettlement, opts...)
	listGroupSettlementsHandler := connect.NewUnaryHandler(LedgerServiceListGroupSettlementsProcedure, svc.ListGroupSettlements, opts...)
	listUserSettlementsHandler := connect.NewUnaryHandler(LedgerServiceListUserSettlementsProcedure, svc.ListUserSettlements, opts...)
	getGroupBalancesHandler := connect.NewUnaryHandler(LedgerServiceGetGroupBalancesProcedure, svc.GetGroupBalances, opts...)
	getPersonalBalancesHandler := connect.NewUnaryHandler(LedgerServiceGetPersonalBalancesProcedure, svc.GetPersonalBalances, opts...)
	getActivityHandler := connect.NewUnaryHandler(LedgerServiceGetActivityProcedure, svc.GetActivity, opts...)

	return "/" + LedgerServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case LedgerServiceCreateExpenseProcedure:
			createExpenseHandler.ServeHTTP(w, r)
		case LedgerServiceGetExpenseProcedure:
			getExpenseHandler.ServeHTTP(w, r)
		case LedgerServiceDeleteExpenseProcedure:
			deleteExpenseHandler.ServeHTTP(w, r)
		case LedgerServiceListGroupExpensesProcedure:
			listGroupExpensesHandler.ServeHTTP(w, r)
		case LedgerServiceCreateSettlementProcedure:
			createSettlementHandler.ServeHTTP(w, r)
		case LedgerServiceDeleteSettlementProcedure:
			deleteSettlementHandler.ServeHTTP(w, r)
		case LedgerServiceListGroupSettlementsProcedure:
			listGroupSettlementsHandler.ServeHTTP(w, r)
		case LedgerServiceListUserSettlementsProcedure:
			listUserSettlementsHandler.ServeHTTP(w, r)
		case LedgerServiceGetGroupBalancesProcedure:
			getGroupBalancesHandler.ServeHTTP(w, r)
		case LedgerServiceGetPersonalBalancesProcedure:
			getPersonalBalancesHandler.ServeHTTP(w, r)
		case LedgerServiceGetActivityProcedure:
			getActivityHandler.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// LedgerServiceClient is a client for LedgerService.
type LedgerServiceClient interface {
	CreateExpense(context.Context, *connect.Request[api.CreateExpenseRequest]) (*connect.Response[api.CreateExpenseResponse], error)
	GetExpense(context.Context, *connect.Request[api.GetExpenseRequest]) (*connect.Response[api.GetExpenseResponse], error)
	DeleteExpense(context.Context, *connect.Request[api.DeleteExpenseRequest]) (*connect.Response[api.DeleteExpenseResponse], error)
	ListGroupExpenses(context.Context, *connect.Request[api.ListGroupExpensesRequest]) (*connect.Response[api.ListGroupExpensesResponse], error)
	CreateSettlement(context.Context, *connect.Request[api.CreateSettlementRequest]) (*connect.Response[api.CreateSettlementResponse], error)
	DeleteSettlement(context.Context, *connect.Request[api.DeleteSettlementRequest]) (*connect.Response[api.DeleteSettlementResponse], error)
	ListGroupSettlements(context.Context, *connect.Request[api.ListGroupSettlementsRequest]) (*connect.Response[api.ListGroupSettlementsResponse], error)
	ListUserSettlements(context.Context, *connect.Request[api.ListUserSettlementsRequest]) (*connect.Response[api.ListUserSettlementsResponse], error)
	GetGroupBalances(context.Context, *connect.Request[api.GetGroupBalancesRequest]) (*connect.Response[api.GetGroupBalancesResponse], error)
	GetPersonalBalances(context.Context, *connect.Request[api.GetPersonalBalancesRequest]) (*connect.Response[api.GetPersonalBalancesResponse], error)
	GetActivity(context.Context, *connect.Request[api.GetActivityRequest]) (*connect.Response[api.GetActivityResponse], error)
}

type ledgerServiceClient struct {
	createExpense        *connect.Client[api.CreateExpenseRequest, api.CreateExpenseResponse]
	getExpense           *connect.Client[api.GetExpenseRequest, api.GetExpenseResponse]
	deleteExpense        *connect.Client[api.DeleteExpenseRequest, api.DeleteExpenseResponse]
	listGroupExpenses    *connect.Client[api.ListGroupExpensesRequest, api.ListGroupExpensesResponse]
	createSettlement     *connect.Client[api.CreateSettlementRequest, api.CreateSettlementResponse]
	deleteSettlement     *connect.Client[api.DeleteSettlementRequest, api.DeleteSettlementResponse]
	listGroupSettlements *connect.Client[api.ListGroupSettlementsRequest, api.ListGroupSettlementsResponse]
	listUserSettlements  *connect.Client[api.ListUserSettlementsRequest, api.ListUserSettlementsResponse]
	getGroupBalances     *connect.Client[api.GetGroupBalancesRequest, api.GetGroupBalancesResponse]
	getPersonalBalances  *connect.Client[api.GetPersonalBalancesRequest, api.GetPersonalBalancesResponse]
	getActivity          *connect.Client[api.GetActivityRequest, api.GetActivityResponse]
}

// NewLedgerServiceClient creates a client for the LedgerService served at baseURL
// (e.g., http://localhost:8080).
func NewLedgerServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) LedgerServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{connect.WithCodec(JSONCodec{})}, opts...)
	return &ledgerServiceClient{
		createExpense:        connect.NewClient[api.CreateExpenseRequest, api.CreateExpenseResponse](httpClient, baseURL+LedgerServiceCreateExpenseProcedure, opts...),
		getExpense:           connect.NewClient[api.GetExpenseRequest, api.GetExpenseResponse](httpClient, baseURL+LedgerServiceGetExpenseProcedure, opts...),
		deleteExpense:        connect.NewClient[api.DeleteExpenseRequest, api.DeleteExpenseResponse](httpClient, baseURL+LedgerServiceDeleteExpenseProcedure, opts...),
		listGroupExpenses:    connect.NewClient[api.ListGroupExpensesRequest, api.ListGroupExpensesResponse](httpClient, baseURL+LedgerServiceListGroupExpensesProcedure, opts...),
		createSettlement:     connect.NewClient[api.CreateSettlementRequest, api.CreateSettlementResponse](httpClient, baseURL+LedgerServiceCreateSettlementProcedure, opts...),
		deleteSettlement:     connect.NewClient[api.DeleteSettlementRequest, api.DeleteSettlementResponse](httpClient, baseURL+LedgerServiceDeleteSettlementProcedure, opts...),
		listGroupSettlements: connect.NewClient[api.ListGroupSettlementsRequest, api.ListGroupSettlementsResponse](httpClient, baseURL+LedgerServiceListGroupSettlementsProcedure, opts...),
		listUserSettlements:  connect.NewClient[api.ListUserSettlementsRequest, api.ListUserSettlementsResponse](httpClient, baseURL+LedgerServiceListUserSettlementsProcedure, opts...),
		getGroupBalances:     connect.NewClient[api.GetGroupBalancesRequest, api.GetGroupBalancesResponse](httpClient, baseURL+LedgerServiceGetGroupBalancesProcedure, opts...),
		getPersonalBalances:  connect.NewClient[api.GetPersonalBalancesRequest, api.GetPersonalBalancesResponse](httpClient, baseURL+LedgerServiceGetPersonalBalancesProcedure, opts...),
		getActivity:          connect.NewClient[api.GetActivityRequest, api.GetActivityResponse](httpClient, baseURL+LedgerServiceGetActivityProcedure, opts...),
	}
}

func (c *ledgerServiceClient) CreateExpense(ctx context.Context, req *connect.Request[api.CreateExpenseRequest]) (*connect.Response[api.CreateExpenseResponse], error) {
	return c.createExpense.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) GetExpense(ctx context.Context, req *connect.Request[api.GetExpenseRequest]) (*connect.Response[api.GetExpenseResponse], error) {
	return c.getExpense.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) DeleteExpense(ctx context.Context, req *connect.Request[api.DeleteExpenseRequest]) (*connect.Response[api.DeleteExpenseResponse], error) {
	return c.deleteExpense.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) ListGroupExpenses(ctx context.Context, req *connect.Request[api.ListGroupExpensesRequest]) (*connect.Response[api.ListGroupExpensesResponse], error) {
	return c.listGroupExpenses.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) CreateSettlement(ctx context.Context, req *connect.Request[api.CreateSettlementRequest]) (*connect.Response[api.CreateSettlementResponse], error) {
	return c.createSettlement.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) DeleteSettlement(ctx context.Context, req *connect.Request[api.DeleteSettlementRequest]) (*connect.Response[api.DeleteSettlementResponse], error) {
	return c.deleteSettlement.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) ListGroupSettlements(ctx context.Context, req *connect.Request[api.ListGroupSettlementsRequest]) (*connect.Response[api.ListGroupSettlementsResponse], error) {
	return c.listGroupSettlements.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) ListUserSettlements(ctx context.Context, req *connect.Request[api.ListUserSettlementsRequest]) (*connect.Response[api.ListUserSettlementsResponse], error) {
	return c.listUserSettlements.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) GetGroupBalances(ctx context.Context, req *connect.Request[api.GetGroupBalancesRequest]) (*connect.Response[api.GetGroupBalancesResponse], error) {
	return c.getGroupBalances.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) GetPersonalBalances(ctx context.Context, req *connect.Request[api.GetPersonalBalancesRequest]) (*connect.Response[api.GetPersonalBalancesResponse], error) {
	return c.getPersonalBalances.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) GetActivity(ctx context.Context, req *connect.Request[api.GetActivityRequest]) (*connect.Response[api.GetActivityResponse], error) {
	return c.getActivity.CallUnary(ctx, req)
}
