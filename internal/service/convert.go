package service

import (
	"github.com/khushthecoder/Expense-Splitter/internal/calculator"
	"github.com/khushthecoder/Expense-Splitter/internal/models"
	"github.com/khushthecoder/Expense-Splitter/pkg/api"
)

func toAPIUser(u *models.User) *api.User {
	return &api.User{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Phone:     u.Phone,
		CreatedAt: u.CreatedAt,
	}
}

func toAPIGroup(g *models.Group, memberIDs []int64) *api.Group {
	if memberIDs == nil {
		memberIDs = []int64{}
	}
	return &api.Group{
		ID:          g.ID,
		Name:        g.Name,
		Description: g.Description,
		CreatedBy:   g.CreatedBy,
		MemberIDs:   memberIDs,
		CreatedAt:   g.CreatedAt,
	}
}

func toAPIExpense(e *models.Expense, users map[int64]*models.User) *api.Expense {
	splits := make([]api.Split, len(e.Splits))
	for i, s := range e.Splits {
		splits[i] = api.Split{ID: s.ID, UserID: s.UserID, Share: s.Share}
	}
	out := &api.Expense{
		ID:          e.ID,
		GroupID:     e.GroupID,
		PaidBy:      e.PaidBy,
		Amount:      e.Amount,
		Description: e.Description,
		Splits:      splits,
		CreatedAt:   e.CreatedAt,
	}
	if u, ok := users[e.PaidBy]; ok {
		out.PaidByName = u.Name
	}
	return out
}

func toAPISettlement(s *models.Settlement) *api.Settlement {
	return &api.Settlement{
		ID:        s.ID,
		GroupID:   s.GroupID,
		PaidBy:    s.PaidBy,
		PaidTo:    s.PaidTo,
		Amount:    s.Amount,
		CreatedAt: s.CreatedAt,
	}
}

func toAPISettlements(settlements []*models.Settlement) []*api.Settlement {
	out := make([]*api.Settlement, len(settlements))
	for i, s := range settlements {
		out[i] = toAPISettlement(s)
	}
	return out
}

func toAPIBalances(breakdown []calculator.MemberBalance, users map[int64]*models.User) []*api.MemberBalance {
	out := make([]*api.MemberBalance, len(breakdown))
	for i, b := range breakdown {
		mb := &api.MemberBalance{
			UserID:     b.UserID,
			NetBalance: b.NetBalance,
			TotalPaid:  b.TotalPaid,
			TotalOwed:  b.TotalOwed,
			SettledOut: b.SettledOut,
			SettledIn:  b.SettledIn,
		}
		if u, ok := users[b.UserID]; ok {
			mb.Name = u.Name
		}
		out[i] = mb
	}
	return out
}

func toAPIActivity(items []models.ActivityItem) []*api.ActivityItem {
	out := make([]*api.ActivityItem, len(items))
	for i, it := range items {
		out[i] = &api.ActivityItem{
			ID:      it.Key,
			Type:    string(it.Kind),
			Title:   it.Title,
			Amount:  it.Amount,
			Flow:    string(it.Flow),
			GroupID: it.GroupID,
			Group:   it.GroupName,
			Details: it.Details,
			Date:    it.Timestamp,
		}
	}
	return out
}

// expenseUserIDs lists the payers of the given expenses.
func expenseUserIDs(expenses ...*models.Expense) []int64 {
	ids := make([]int64, 0, len(expenses))
	for _, e := range expenses {
		ids = append(ids, e.PaidBy)
	}
	return ids
}

func toAPIUsers(users []*models.User) []*api.User {
	out := make([]*api.User, len(users))
	for i, u := range users {
		out[i] = toAPIUser(u)
	}
	return out
}

func toAPISettings(st *models.UserSettings) *api.UserSettings {
	out := &api.UserSettings{
		UserID:               st.UserID,
		Theme:                st.Theme,
		Language:             st.Language,
		Currency:             st.Currency,
		Timezone:             st.Timezone,
		EmailNotifications:   st.EmailNotifications,
		PushNotifications:    st.PushNotifications,
		DefaultSplitMode:     st.DefaultSplitMode,
		DefaultCategory:      st.DefaultCategory,
		DefaultPaymentMethod: st.DefaultPaymentMethod,
	}
	if !st.UpdatedAt.IsZero() {
		updated := st.UpdatedAt
		out.UpdatedAt = &updated
	}
	return out
}
