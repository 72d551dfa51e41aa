package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/khushthecoder/Expense-Splitter/internal/events"
	"github.com/khushthecoder/Expense-Splitter/internal/ledger"
	"github.com/khushthecoder/Expense-Splitter/internal/models"
	"github.com/khushthecoder/Expense-Splitter/pkg/api"
	"github.com/khushthecoder/Expense-Splitter/pkg/api/apiconnect"
)

// Ensure LedgerService implements the Connect handler interface
var _ apiconnect.LedgerServiceHandler = (*LedgerService)(nil)

// LedgerService implements the Connect LedgerService
type LedgerService struct {
	manager   *ledger.Manager
	publisher events.Publisher
}

// NewLedgerService creates a new LedgerService. A nil publisher discards events.
func NewLedgerService(manager *ledger.Manager, publisher events.Publisher) *LedgerService {
	if publisher == nil {
		publisher = events.Nop{}
	}
	return &LedgerService{manager: manager, publisher: publisher}
}

// CreateExpense records an expense after resolving its split mode into
// exact shares.
func (s *LedgerService) CreateExpense(ctx context.Context, req *connect.Request[api.CreateExpenseRequest]) (*connect.Response[api.CreateExpenseResponse], error) {
	slog.InfoContext(ctx, "CreateExpense request received",
		"paid_by", req.Msg.PaidBy,
		"amount", req.Msg.Amount.String(),
		"split_mode", req.Msg.SplitMode,
		"splits_count", len(req.Msg.Splits),
	)

	splits, err := resolveSplits(req.Msg.SplitMode, req.Msg.Amount, req.Msg.Splits)
	if err != nil {
		return nil, fail(ctx, "CreateExpense", err)
	}

	expense, err := s.manager.CreateExpense(ctx, ledger.ExpenseInput{
		GroupID:     req.Msg.GroupID,
		PaidBy:      req.Msg.PaidBy,
		Amount:      req.Msg.Amount,
		Description: req.Msg.Description,
		Splits:      splits,
	})
	if err != nil {
		return nil, fail(ctx, "CreateExpense", err)
	}

	slog.InfoContext(ctx, "Expense created", "expense_id", expense.ID)
	publish(ctx, s.publisher, events.New(events.ExpenseCreated, expense.GroupID, expense.ID))

	out, err := s.expensesWithNames(ctx, expense)
	if err != nil {
		return nil, fail(ctx, "CreateExpense", err)
	}
	return connect.NewResponse(&api.CreateExpenseResponse{Expense: out[0]}), nil
}

// GetExpense retrieves an expense with its splits.
func (s *LedgerService) GetExpense(ctx context.Context, req *connect.Request[api.GetExpenseRequest]) (*connect.Response[api.GetExpenseResponse], error) {
	expense, err := s.manager.GetExpense(ctx, req.Msg.ExpenseID)
	if err != nil {
		return nil, fail(ctx, "GetExpense", err, "expense_id", req.Msg.ExpenseID)
	}
	out, err := s.expensesWithNames(ctx, expense)
	if err != nil {
		return nil, fail(ctx, "GetExpense", err, "expense_id", req.Msg.ExpenseID)
	}
	return connect.NewResponse(&api.GetExpenseResponse{Expense: out[0]}), nil
}

// DeleteExpense removes an expense and its splits.
func (s *LedgerService) DeleteExpense(ctx context.Context, req *connect.Request[api.DeleteExpenseRequest]) (*connect.Response[api.DeleteExpenseResponse], error) {
	slog.InfoContext(ctx, "DeleteExpense request received", "expense_id", req.Msg.ExpenseID)

	expense, err := s.manager.DeleteExpense(ctx, req.Msg.ExpenseID)
	if err != nil {
		return nil, fail(ctx, "DeleteExpense", err, "expense_id", req.Msg.ExpenseID)
	}
	publish(ctx, s.publisher, events.New(events.ExpenseDeleted, expense.GroupID, expense.ID))

	return connect.NewResponse(&api.DeleteExpenseResponse{}), nil
}

// ListGroupExpenses lists a group's expenses, newest first.
func (s *LedgerService) ListGroupExpenses(ctx context.Context, req *connect.Request[api.ListGroupExpensesRequest]) (*connect.Response[api.ListGroupExpensesResponse], error) {
	slog.InfoContext(ctx, "ListGroupExpenses request received", "group_id", req.Msg.GroupID)

	expenses, err := s.manager.ListGroupExpenses(ctx, req.Msg.GroupID)
	if err != nil {
		return nil, fail(ctx, "ListGroupExpenses", err, "group_id", req.Msg.GroupID)
	}
	out, err := s.expensesWithNames(ctx, expenses...)
	if err != nil {
		return nil, fail(ctx, "ListGroupExpenses", err, "group_id", req.Msg.GroupID)
	}

	slog.InfoContext(ctx, "ListGroupExpenses successful", "count", len(out))

	return connect.NewResponse(&api.ListGroupExpensesResponse{Expenses: out}), nil
}

// CreateSettlement records a payment between two group members.
func (s *LedgerService) CreateSettlement(ctx context.Context, req *connect.Request[api.CreateSettlementRequest]) (*connect.Response[api.CreateSettlementResponse], error) {
	slog.InfoContext(ctx, "CreateSettlement request received",
		"group_id", req.Msg.GroupID,
		"paid_by", req.Msg.PaidBy,
		"paid_to", req.Msg.PaidTo,
		"amount", req.Msg.Amount.String(),
	)

	settlement, err := s.manager.CreateSettlement(ctx, ledger.SettlementInput{
		GroupID: req.Msg.GroupID,
		PaidBy:  req.Msg.PaidBy,
		PaidTo:  req.Msg.PaidTo,
		Amount:  req.Msg.Amount,
	})
	if err != nil {
		return nil, fail(ctx, "CreateSettlement", err)
	}

	slog.InfoContext(ctx, "Settlement created", "settlement_id", settlement.ID)
	publish(ctx, s.publisher, events.New(events.SettlementCreated, &settlement.GroupID, settlement.ID))

	return connect.NewResponse(&api.CreateSettlementResponse{Settlement: toAPISettlement(settlement)}), nil
}

// DeleteSettlement removes a settlement.
func (s *LedgerService) DeleteSettlement(ctx context.Context, req *connect.Request[api.DeleteSettlementRequest]) (*connect.Response[api.DeleteSettlementResponse], error) {
	slog.InfoContext(ctx, "DeleteSettlement request received", "settlement_id", req.Msg.SettlementID)

	settlement, err := s.manager.DeleteSettlement(ctx, req.Msg.SettlementID)
	if err != nil {
		return nil, fail(ctx, "DeleteSettlement", err, "settlement_id", req.Msg.SettlementID)
	}
	publish(ctx, s.publisher, events.New(events.SettlementDeleted, &settlement.GroupID, settlement.ID))

	return connect.NewResponse(&api.DeleteSettlementResponse{}), nil
}

// ListGroupSettlements lists a group's settlements, newest first.
func (s *LedgerService) ListGroupSettlements(ctx context.Context, req *connect.Request[api.ListGroupSettlementsRequest]) (*connect.Response[api.ListGroupSettlementsResponse], error) {
	settlements, err := s.manager.ListGroupSettlements(ctx, req.Msg.GroupID)
	if err != nil {
		return nil, fail(ctx, "ListGroupSettlements", err, "group_id", req.Msg.GroupID)
	}
	return connect.NewResponse(&api.ListGroupSettlementsResponse{Settlements: toAPISettlements(settlements)}), nil
}

// ListUserSettlements lists the settlements a user paid and received.
func (s *LedgerService) ListUserSettlements(ctx context.Context, req *connect.Request[api.ListUserSettlementsRequest]) (*connect.Response[api.ListUserSettlementsResponse], error) {
	us, err := s.manager.UserSettlements(ctx, req.Msg.UserID)
	if err != nil {
		return nil, fail(ctx, "ListUserSettlements", err, "user_id", req.Msg.UserID)
	}
	return connect.NewResponse(&api.ListUserSettlementsResponse{
		Paid:     toAPISettlements(us.Paid),
		Received: toAPISettlements(us.Received),
	}), nil
}

// GetGroupBalances computes the net balance of everyone in a group.
func (s *LedgerService) GetGroupBalances(ctx context.Context, req *connect.Request[api.GetGroupBalancesRequest]) (*connect.Response[api.GetGroupBalancesResponse], error) {
	slog.InfoContext(ctx, "GetGroupBalances request received", "group_id", req.Msg.GroupID)

	sheet, err := s.manager.GroupBalances(ctx, req.Msg.GroupID)
	if err != nil {
		return nil, fail(ctx, "GetGroupBalances", err, "group_id", req.Msg.GroupID)
	}
	balances, err := s.balancesWithNames(ctx, sheet)
	if err != nil {
		return nil, fail(ctx, "GetGroupBalances", err, "group_id", req.Msg.GroupID)
	}
	return connect.NewResponse(&api.GetGroupBalancesResponse{Balances: balances}), nil
}

// GetPersonalBalances computes balances over a user's personal expenses.
func (s *LedgerService) GetPersonalBalances(ctx context.Context, req *connect.Request[api.GetPersonalBalancesRequest]) (*connect.Response[api.GetPersonalBalancesResponse], error) {
	sheet, err := s.manager.PersonalBalances(ctx, req.Msg.UserID)
	if err != nil {
		return nil, fail(ctx, "GetPersonalBalances", err, "user_id", req.Msg.UserID)
	}
	balances, err := s.balancesWithNames(ctx, sheet)
	if err != nil {
		return nil, fail(ctx, "GetPersonalBalances", err, "user_id", req.Msg.UserID)
	}
	return connect.NewResponse(&api.GetPersonalBalancesResponse{Balances: balances}), nil
}

// GetActivity returns a user's merged activity feed, newest first.
func (s *LedgerService) GetActivity(ctx context.Context, req *connect.Request[api.GetActivityRequest]) (*connect.Response[api.GetActivityResponse], error) {
	items, err := s.manager.Activity(ctx, req.Msg.UserID)
	if err != nil {
		return nil, fail(ctx, "GetActivity", err, "user_id", req.Msg.UserID)
	}
	return connect.NewResponse(&api.GetActivityResponse{Items: toAPIActivity(items)}), nil
}

func (s *LedgerService) expensesWithNames(ctx context.Context, expenses ...*models.Expense) ([]*api.Expense, error) {
	users, err := s.manager.Users(ctx, expenseUserIDs(expenses...))
	if err != nil {
		return nil, err
	}
	out := make([]*api.Expense, len(expenses))
	for i, e := range expenses {
		out[i] = toAPIExpense(e, users)
	}
	return out, nil
}

func (s *LedgerService) balancesWithNames(ctx context.Context, sheet *ledger.BalanceSheet) ([]*api.MemberBalance, error) {
	ids := make([]int64, len(sheet.Breakdown))
	for i, b := range sheet.Breakdown {
		ids[i] = b.UserID
	}
	users, err := s.manager.Users(ctx, ids)
	if err != nil {
		return nil, err
	}
	return toAPIBalances(sheet.Breakdown, users), nil
}
