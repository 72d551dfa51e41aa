package ledger

import (
	"context"
	"fmt"
	"sort"

	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	"github.com/khushthecoder/Expense-Splitter/internal/models"
)

const (
	personalGroupName = "Personal"
	unknownUserName   = "friend"
)

// Activity returns the user's feed: expenses they paid, their shares of
// expenses others paid, and settlements in both directions. Items are
// ordered newest first.
func (m *Manager) Activity(ctx context.Context, userID int64) (_ []models.ActivityItem, err error) {
	ctx, span := m.start(ctx, "Activity", attribute.Int64("ledger.user_id", userID))
	defer func() { m.finishRead(span, err) }()

	if _, err := m.GetUser(ctx, userID); err != nil {
		return nil, err
	}

	var (
		paid     []*models.Expense
		shares   []models.ExpenseShare
		sent     []*models.Settlement
		received []*models.Settlement
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		paid, err = m.store.ListExpensesPaidBy(gctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		shares, err = m.store.ListSharesOwedBy(gctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		sent, err = m.store.ListSettlementsPaidBy(gctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		received, err = m.store.ListSettlementsReceivedBy(gctx, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fromStorage(err, "reading activity failed")
	}

	names, err := m.activityNames(ctx, paid, shares, sent, received)
	if err != nil {
		return nil, err
	}

	items := make([]models.ActivityItem, 0, len(paid)+len(shares)+len(sent)+len(received))
	for _, e := range paid {
		items = append(items, models.ActivityItem{
			Key:       fmt.Sprintf("expense-%d", e.ID),
			Kind:      models.ActivityExpense,
			Title:     orDefault(e.Description, "Expense"),
			Amount:    e.Amount,
			Flow:      models.FlowOut,
			GroupID:   e.GroupID,
			GroupName: names.group(e.GroupID),
			Details:   "Paid by you",
			Timestamp: e.CreatedAt,
			EntryID:   e.ID,
		})
	}
	for _, s := range shares {
		items = append(items, models.ActivityItem{
			Key:       fmt.Sprintf("share-%d", s.Split.ID),
			Kind:      models.ActivityShare,
			Title:     orDefault(s.Expense.Description, "Expense share"),
			Amount:    s.Split.Share,
			Flow:      models.FlowOut,
			GroupID:   s.Expense.GroupID,
			GroupName: names.group(s.Expense.GroupID),
			Details:   "Paid by " + names.user(s.Expense.PaidBy),
			Timestamp: s.Expense.CreatedAt,
			EntryID:   s.Split.ID,
		})
	}
	for _, s := range sent {
		groupID := s.GroupID
		items = append(items, models.ActivityItem{
			Key:       fmt.Sprintf("settlement-%d", s.ID),
			Kind:      models.ActivitySettlement,
			Title:     "Settled with " + names.user(s.PaidTo),
			Amount:    s.Amount,
			Flow:      models.FlowOut,
			GroupID:   &groupID,
			GroupName: names.group(&groupID),
			Details:   "Paid to " + names.user(s.PaidTo),
			Timestamp: s.CreatedAt,
			EntryID:   s.ID,
		})
	}
	for _, s := range received {
		groupID := s.GroupID
		items = append(items, models.ActivityItem{
			Key:       fmt.Sprintf("settlement-%d", s.ID),
			Kind:      models.ActivitySettlement,
			Title:     "Settled with " + names.user(s.PaidBy),
			Amount:    s.Amount,
			Flow:      models.FlowIn,
			GroupID:   &groupID,
			GroupName: names.group(&groupID),
			Details:   "Received from " + names.user(s.PaidBy),
			Timestamp: s.CreatedAt,
			EntryID:   s.ID,
		})
	}

	sort.SliceStable(items, func(i, j int) bool {
		if !items[i].Timestamp.Equal(items[j].Timestamp) {
			return items[i].Timestamp.After(items[j].Timestamp)
		}
		if items[i].EntryID != items[j].EntryID {
			return items[i].EntryID > items[j].EntryID
		}
		return items[i].Key < items[j].Key
	})
	return items, nil
}

// feedNames resolves display names for the users and groups an activity
// feed refers to.
type feedNames struct {
	users  map[int64]*models.User
	groups map[int64]*models.Group
}

func (n feedNames) user(id int64) string {
	if u, ok := n.users[id]; ok && u.Name != "" {
		return u.Name
	}
	return unknownUserName
}

func (n feedNames) group(id *int64) string {
	if id == nil {
		return personalGroupName
	}
	if g, ok := n.groups[*id]; ok {
		return g.Name
	}
	return personalGroupName
}

func (m *Manager) activityNames(ctx context.Context, paid []*models.Expense, shares []models.ExpenseShare, sent, received []*models.Settlement) (feedNames, error) {
	userSet := make(map[int64]struct{})
	groupSet := make(map[int64]struct{})
	addGroup := func(id *int64) {
		if id != nil {
			groupSet[*id] = struct{}{}
		}
	}

	for _, e := range paid {
		addGroup(e.GroupID)
	}
	for _, s := range shares {
		userSet[s.Expense.PaidBy] = struct{}{}
		addGroup(s.Expense.GroupID)
	}
	for _, s := range sent {
		userSet[s.PaidTo] = struct{}{}
		groupSet[s.GroupID] = struct{}{}
	}
	for _, s := range received {
		userSet[s.PaidBy] = struct{}{}
		groupSet[s.GroupID] = struct{}{}
	}

	users, err := m.store.UsersByIDs(ctx, keys(userSet))
	if err != nil {
		return feedNames{}, fromStorage(err, "user lookup failed")
	}
	groups, err := m.store.GroupsByIDs(ctx, keys(groupSet))
	if err != nil {
		return feedNames{}, fromStorage(err, "group lookup failed")
	}
	return feedNames{users: users, groups: groups}, nil
}

func keys(set map[int64]struct{}) []int64 {
	out := make([]int64, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	return out
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
