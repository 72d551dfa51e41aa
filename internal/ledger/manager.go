// Package ledger validates and applies ledger mutations and serves the
// derived views built from them: balances and the activity feed.
//
// Every mutation is validated in full before anything is written. Writes go
// through storage.Store, which applies each one in a single transaction.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/khushthecoder/Expense-Splitter/internal/calculator"
	"github.com/khushthecoder/Expense-Splitter/internal/metrics"
	"github.com/khushthecoder/Expense-Splitter/internal/models"
	"github.com/khushthecoder/Expense-Splitter/internal/storage"
)

const tracerName = "github.com/khushthecoder/Expense-Splitter/internal/ledger"

// Manager applies create and delete operations to the ledger.
type Manager struct {
	store       storage.Store
	memberships *Memberships
	strict      bool
	metrics     *metrics.Metrics
	tracer      trace.Tracer
}

// Option configures a Manager.
type Option func(*Manager)

// WithStrictSplits makes CreateExpense require at least one split and split
// shares that add up to the expense amount exactly.
func WithStrictSplits(strict bool) Option {
	return func(m *Manager) { m.strict = strict }
}

// WithMetrics records mutation outcomes and balance sizes.
func WithMetrics(mt *metrics.Metrics) Option {
	return func(m *Manager) { m.metrics = mt }
}

// WithTracer overrides the tracer taken from the global provider.
func WithTracer(t trace.Tracer) Option {
	return func(m *Manager) { m.tracer = t }
}

// NewManager creates a Manager over the given record store.
func NewManager(store storage.Store, opts ...Option) *Manager {
	m := &Manager{
		store:       store,
		memberships: NewMemberships(store),
		tracer:      otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Memberships returns the membership store the manager validates against.
func (m *Manager) Memberships() *Memberships {
	return m.memberships
}

// StrictSplits reports whether strict split validation is enabled.
func (m *Manager) StrictSplits() bool {
	return m.strict
}

// SplitInput is one user's share of a new expense.
type SplitInput struct {
	UserID int64
	Share  decimal.Decimal
}

// ExpenseInput describes an expense to record. A nil GroupID records a
// personal expense outside any group.
type ExpenseInput struct {
	GroupID     *int64
	PaidBy      int64
	Amount      decimal.Decimal
	Description string
	Splits      []SplitInput
}

// SettlementInput describes a payment from PaidBy to PaidTo within a group.
type SettlementInput struct {
	GroupID int64
	PaidBy  int64
	PaidTo  int64
	Amount  decimal.Decimal
}

// UserInput describes a user to register.
type UserInput struct {
	Name  string
	Email string
	Phone string
}

// GroupInput describes a group to create. MemberIDs are added alongside the
// creator; duplicates and the creator itself are ignored.
type GroupInput struct {
	Name        string
	Description string
	CreatedBy   int64
	MemberIDs   []int64
}

// CreateExpense validates and records an expense with its splits.
//
// Split shares must not be negative. By default they are not required to
// add up to the amount; see WithStrictSplits.
func (m *Manager) CreateExpense(ctx context.Context, in ExpenseInput) (_ *models.Expense, err error) {
	ctx, span := m.start(ctx, "CreateExpense", attribute.Int64("ledger.paid_by", in.PaidBy))
	defer func() { m.finish(span, "create_expense", err) }()

	if err := m.validateExpense(ctx, in); err != nil {
		return nil, err
	}

	expense := &models.Expense{
		GroupID:     in.GroupID,
		PaidBy:      in.PaidBy,
		Amount:      in.Amount,
		Description: strings.TrimSpace(in.Description),
		Splits:      make([]models.Split, len(in.Splits)),
	}
	for i, s := range in.Splits {
		expense.Splits[i] = models.Split{UserID: s.UserID, Share: s.Share}
	}

	if err := m.store.CreateExpense(ctx, expense); err != nil {
		return nil, fromStorage(err, "expense references a missing user or group")
	}
	return expense, nil
}

func (m *Manager) validateExpense(ctx context.Context, in ExpenseInput) error {
	if !in.Amount.IsPositive() {
		return newError(KindInvalidAmount, "amount must be greater than zero, got %s", in.Amount)
	}
	for _, s := range in.Splits {
		if s.Share.IsNegative() {
			return newError(KindInvalidAmount, "share for user %d must not be negative, got %s", s.UserID, s.Share)
		}
	}
	if m.strict {
		if len(in.Splits) == 0 {
			return newError(KindSplitMismatch, "at least one split is required")
		}
		total := decimal.Zero
		for _, s := range in.Splits {
			total = total.Add(s.Share)
		}
		if !total.Equal(in.Amount) {
			return newError(KindSplitMismatch, "splits add up to %s, expected %s", total, in.Amount)
		}
	}

	if _, err := m.store.GetUser(ctx, in.PaidBy); err != nil {
		return fromStorage(err, fmt.Sprintf("payer %d not found", in.PaidBy))
	}

	participants := make([]int64, 0, len(in.Splits)+1)
	participants = append(participants, in.PaidBy)
	for _, s := range in.Splits {
		participants = append(participants, s.UserID)
	}

	users, err := m.store.UsersByIDs(ctx, participants)
	if err != nil {
		return fromStorage(err, "user lookup failed")
	}
	for _, s := range in.Splits {
		if _, ok := users[s.UserID]; !ok {
			return notFound("split user %d not found", s.UserID)
		}
	}

	if in.GroupID == nil {
		return nil
	}
	if _, err := m.store.GetGroup(ctx, *in.GroupID); err != nil {
		return fromStorage(err, fmt.Sprintf("group %d not found", *in.GroupID))
	}
	// Membership is checked by the store inside the write transaction.
	return nil
}

// DeleteExpense removes an expense and its splits. Settlements are never
// touched. The removed expense is returned.
func (m *Manager) DeleteExpense(ctx context.Context, expenseID int64) (_ *models.Expense, err error) {
	ctx, span := m.start(ctx, "DeleteExpense", attribute.Int64("ledger.expense_id", expenseID))
	defer func() { m.finish(span, "delete_expense", err) }()

	msg := fmt.Sprintf("expense %d not found", expenseID)
	expense, err := m.store.GetExpense(ctx, expenseID)
	if err != nil {
		return nil, fromStorage(err, msg)
	}
	if err := m.store.DeleteExpense(ctx, expenseID); err != nil {
		return nil, fromStorage(err, msg)
	}
	return expense, nil
}

// GetExpense returns an expense with its splits.
func (m *Manager) GetExpense(ctx context.Context, expenseID int64) (*models.Expense, error) {
	expense, err := m.store.GetExpense(ctx, expenseID)
	if err != nil {
		return nil, fromStorage(err, fmt.Sprintf("expense %d not found", expenseID))
	}
	return expense, nil
}

// ListGroupExpenses returns a group's expenses, newest first.
func (m *Manager) ListGroupExpenses(ctx context.Context, groupID int64) ([]*models.Expense, error) {
	if _, err := m.GetGroup(ctx, groupID); err != nil {
		return nil, err
	}
	expenses, err := m.store.ListExpensesByGroup(ctx, groupID)
	if err != nil {
		return nil, fromStorage(err, "listing expenses failed")
	}
	return expenses, nil
}

// CreateSettlement validates and records a payment between two members.
func (m *Manager) CreateSettlement(ctx context.Context, in SettlementInput) (_ *models.Settlement, err error) {
	ctx, span := m.start(ctx, "CreateSettlement",
		attribute.Int64("ledger.group_id", in.GroupID),
		attribute.Int64("ledger.paid_by", in.PaidBy),
		attribute.Int64("ledger.paid_to", in.PaidTo),
	)
	defer func() { m.finish(span, "create_settlement", err) }()

	if !in.Amount.IsPositive() {
		return nil, newError(KindInvalidAmount, "amount must be greater than zero, got %s", in.Amount)
	}
	if in.PaidBy == in.PaidTo {
		return nil, newError(KindSameParty, "payer and receiver must be different users")
	}
	if _, err := m.store.GetGroup(ctx, in.GroupID); err != nil {
		return nil, fromStorage(err, fmt.Sprintf("group %d not found", in.GroupID))
	}
	if _, err := m.store.GetUser(ctx, in.PaidBy); err != nil {
		return nil, fromStorage(err, fmt.Sprintf("payer %d not found", in.PaidBy))
	}
	if _, err := m.store.GetUser(ctx, in.PaidTo); err != nil {
		return nil, fromStorage(err, fmt.Sprintf("receiver %d not found", in.PaidTo))
	}

	settlement := &models.Settlement{
		GroupID: in.GroupID,
		PaidBy:  in.PaidBy,
		PaidTo:  in.PaidTo,
		Amount:  in.Amount,
	}
	if err := m.store.CreateSettlement(ctx, settlement); err != nil {
		return nil, fromStorage(err, "settlement references a missing user or group")
	}
	return settlement, nil
}

// DeleteSettlement removes a settlement and returns it.
func (m *Manager) DeleteSettlement(ctx context.Context, settlementID int64) (_ *models.Settlement, err error) {
	ctx, span := m.start(ctx, "DeleteSettlement", attribute.Int64("ledger.settlement_id", settlementID))
	defer func() { m.finish(span, "delete_settlement", err) }()

	msg := fmt.Sprintf("settlement %d not found", settlementID)
	settlement, err := m.store.GetSettlement(ctx, settlementID)
	if err != nil {
		return nil, fromStorage(err, msg)
	}
	if err := m.store.DeleteSettlement(ctx, settlementID); err != nil {
		return nil, fromStorage(err, msg)
	}
	return settlement, nil
}

// ListGroupSettlements returns a group's settlements, newest first.
func (m *Manager) ListGroupSettlements(ctx context.Context, groupID int64) ([]*models.Settlement, error) {
	if _, err := m.GetGroup(ctx, groupID); err != nil {
		return nil, err
	}
	settlements, err := m.store.ListSettlementsByGroup(ctx, groupID)
	if err != nil {
		return nil, fromStorage(err, "listing settlements failed")
	}
	return settlements, nil
}

// UserSettlements holds the settlements a user took part in, split by
// direction.
type UserSettlements struct {
	Paid     []*models.Settlement
	Received []*models.Settlement
}

// UserSettlements returns every settlement the user paid or received.
func (m *Manager) UserSettlements(ctx context.Context, userID int64) (*UserSettlements, error) {
	if _, err := m.GetUser(ctx, userID); err != nil {
		return nil, err
	}
	paid, err := m.store.ListSettlementsPaidBy(ctx, userID)
	if err != nil {
		return nil, fromStorage(err, "listing settlements failed")
	}
	received, err := m.store.ListSettlementsReceivedBy(ctx, userID)
	if err != nil {
		return nil, fromStorage(err, "listing settlements failed")
	}
	return &UserSettlements{Paid: paid, Received: received}, nil
}

// BalanceSheet is a balance snapshot of one scope.
type BalanceSheet struct {
	Balances calculator.Balances

	// Breakdown holds the per-user totals behind Balances, ordered by user ID.
	Breakdown []calculator.MemberBalance
}

// GroupBalances computes the net balance of every user in a group's ledger.
// Current members with no entries are listed at zero; former members with
// entries keep their balances.
func (m *Manager) GroupBalances(ctx context.Context, groupID int64) (_ *BalanceSheet, err error) {
	ctx, span := m.start(ctx, "GroupBalances", attribute.Int64("ledger.group_id", groupID))
	defer func() { m.finishRead(span, err) }()

	snapshot, err := m.store.GroupLedger(ctx, groupID)
	if err != nil {
		return nil, fromStorage(err, fmt.Sprintf("group %d not found", groupID))
	}
	return m.balanceSheet(snapshot), nil
}

// PersonalBalances computes balances over the user's expenses that belong to
// no group.
func (m *Manager) PersonalBalances(ctx context.Context, userID int64) (_ *BalanceSheet, err error) {
	ctx, span := m.start(ctx, "PersonalBalances", attribute.Int64("ledger.user_id", userID))
	defer func() { m.finishRead(span, err) }()

	if _, err := m.GetUser(ctx, userID); err != nil {
		return nil, err
	}
	snapshot, err := m.store.PersonalLedger(ctx, userID)
	if err != nil {
		return nil, fromStorage(err, "reading personal ledger failed")
	}
	return m.balanceSheet(snapshot), nil
}

func (m *Manager) balanceSheet(snapshot *storage.Ledger) *BalanceSheet {
	expenses := make([]calculator.ExpenseForBalance, len(snapshot.Expenses))
	for i, e := range snapshot.Expenses {
		splits := make([]calculator.SplitForBalance, len(e.Splits))
		for j, s := range e.Splits {
			splits[j] = calculator.SplitForBalance{UserID: s.UserID, Share: s.Share}
		}
		expenses[i] = calculator.ExpenseForBalance{PaidBy: e.PaidBy, Amount: e.Amount, Splits: splits}
	}
	settlements := make([]calculator.SettlementForBalance, len(snapshot.Settlements))
	for i, s := range snapshot.Settlements {
		settlements[i] = calculator.SettlementForBalance{PaidBy: s.PaidBy, PaidTo: s.PaidTo, Amount: s.Amount}
	}
	m.metrics.ObserveBalanceEntries(len(expenses) + len(settlements))

	breakdown := calculator.Summarize(expenses, settlements)
	balances := make(calculator.Balances, len(breakdown))
	for _, b := range breakdown {
		balances[b.UserID] = b.NetBalance
	}
	for _, id := range snapshot.MemberIDs {
		if _, ok := balances[id]; ok {
			continue
		}
		breakdown = append(breakdown, calculator.MemberBalance{UserID: id})
	}
	balances.Seed(snapshot.MemberIDs...)
	sort.Slice(breakdown, func(i, j int) bool { return breakdown[i].UserID < breakdown[j].UserID })

	return &BalanceSheet{Balances: balances, Breakdown: breakdown}
}

// CreateUser registers a user. Emails are compared case-insensitively.
func (m *Manager) CreateUser(ctx context.Context, in UserInput) (_ *models.User, err error) {
	ctx, span := m.start(ctx, "CreateUser")
	defer func() { m.finish(span, "create_user", err) }()

	user, err := in.normalize()
	if err != nil {
		return nil, err
	}
	if err := m.store.CreateUser(ctx, user); err != nil {
		if errors.Is(err, storage.ErrConflict) {
			return nil, &Error{Kind: KindDuplicateEmail, Message: fmt.Sprintf("email %s is already registered", user.Email), Err: err}
		}
		return nil, fromStorage(err, "")
	}
	return user, nil
}

// normalize trims the input, lowercases the email and checks both required
// fields.
func (in UserInput) normalize() (*models.User, error) {
	name := strings.TrimSpace(in.Name)
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if name == "" {
		return nil, invalidArgument("name is required")
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return nil, invalidArgument("invalid email %q", in.Email)
	}
	return &models.User{Name: name, Email: email, Phone: strings.TrimSpace(in.Phone)}, nil
}

// GetUser returns a user by ID.
func (m *Manager) GetUser(ctx context.Context, userID int64) (*models.User, error) {
	user, err := m.store.GetUser(ctx, userID)
	if err != nil {
		return nil, fromStorage(err, fmt.Sprintf("user %d not found", userID))
	}
	return user, nil
}

// Users looks up users by ID for read-side joins. Unknown IDs are omitted.
func (m *Manager) Users(ctx context.Context, ids []int64) (map[int64]*models.User, error) {
	users, err := m.store.UsersByIDs(ctx, ids)
	if err != nil {
		return nil, fromStorage(err, "user lookup failed")
	}
	return users, nil
}

// CreateGroup creates a group with its creator as the first member and the
// extra members after it, all in one write.
func (m *Manager) CreateGroup(ctx context.Context, in GroupInput) (_ *models.Group, err error) {
	ctx, span := m.start(ctx, "CreateGroup", attribute.Int64("ledger.created_by", in.CreatedBy))
	defer func() { m.finish(span, "create_group", err) }()

	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, invalidArgument("group name is required")
	}
	if _, err := m.GetUser(ctx, in.CreatedBy); err != nil {
		return nil, err
	}

	extra := dedupe(in.MemberIDs, in.CreatedBy)
	if len(extra) > 0 {
		users, err := m.Users(ctx, extra)
		if err != nil {
			return nil, err
		}
		for _, id := range extra {
			if _, ok := users[id]; !ok {
				return nil, notFound("member user %d not found", id)
			}
		}
	}

	group := &models.Group{
		Name:        name,
		Description: strings.TrimSpace(in.Description),
		CreatedBy:   in.CreatedBy,
	}
	if err := m.store.CreateGroup(ctx, group, extra...); err != nil {
		return nil, fromStorage(err, "group creator or member not found")
	}
	return group, nil
}

// GetGroup returns a group by ID.
func (m *Manager) GetGroup(ctx context.Context, groupID int64) (*models.Group, error) {
	group, err := m.store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, fromStorage(err, fmt.Sprintf("group %d not found", groupID))
	}
	return group, nil
}

// ListUserGroups returns the groups a user belongs to, newest first.
func (m *Manager) ListUserGroups(ctx context.Context, userID int64) ([]*models.Group, error) {
	if _, err := m.GetUser(ctx, userID); err != nil {
		return nil, err
	}
	groups, err := m.store.ListGroupsByUser(ctx, userID)
	if err != nil {
		return nil, fromStorage(err, "listing groups failed")
	}
	return groups, nil
}

// dedupe returns ids in order without duplicates or skip.
func dedupe(ids []int64, skip int64) []int64 {
	seen := map[int64]bool{skip: true}
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

func (m *Manager) start(ctx context.Context, op string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return m.tracer.Start(ctx, "ledger."+op, trace.WithAttributes(attrs...))
}

// finish ends a mutation span and counts the outcome.
func (m *Manager) finish(span trace.Span, operation string, err error) {
	outcome := metrics.OutcomeOK
	if err != nil {
		outcome = string(KindOf(err))
	}
	m.metrics.ObserveMutation(operation, outcome)
	m.finishRead(span, err)
}

func (m *Manager) finishRead(span trace.Span, err error) {
	if err != nil {
		span.SetAttributes(attribute.String("ledger.error_kind", string(KindOf(err))))
		span.SetStatus(codes.Error, err.Error())
		span.RecordError(err)
	}
	span.End()
}
