package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/khushthecoder/Expense-Splitter/internal/models"
	"github.com/khushthecoder/Expense-Splitter/internal/storage"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	store, err := New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func mustUser(t *testing.T, store *SQLiteStore, name string) *models.User {
	t.Helper()

	user := &models.User{Name: name, Email: name + "@example.com"}
	if err := store.CreateUser(context.Background(), user); err != nil {
		t.Fatalf("CreateUser(%s) failed: %v", name, err)
	}
	return user
}

func mustGroup(t *testing.T, store *SQLiteStore, name string, creator int64, members ...int64) *models.Group {
	t.Helper()

	ctx := context.Background()
	group := &models.Group{Name: name, CreatedBy: creator}
	if err := store.CreateGroup(ctx, group, members...); err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}
	return group
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestUsers(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t.Run("CreateUser assigns ID and CreatedAt", func(t *testing.T) {
		user := mustUser(t, store, "alice")
		if user.ID == 0 {
			t.Error("Expected user ID to be assigned")
		}
		if user.CreatedAt.IsZero() {
			t.Error("Expected CreatedAt to be set")
		}

		got, err := store.GetUser(ctx, user.ID)
		if err != nil {
			t.Fatalf("GetUser failed: %v", err)
		}
		if got.Name != "alice" || got.Email != "alice@example.com" {
			t.Errorf("Unexpected user: %+v", got)
		}
		if !got.CreatedAt.Equal(user.CreatedAt) {
			t.Errorf("CreatedAt mismatch: got %v, want %v", got.CreatedAt, user.CreatedAt)
		}
	})

	t.Run("CreateUser rejects duplicate email", func(t *testing.T) {
		mustUser(t, store, "bob")
		err := store.CreateUser(ctx, &models.User{Name: "Bobby", Email: "bob@example.com"})
		if !errors.Is(err, storage.ErrConflict) {
			t.Errorf("Expected ErrConflict, got %v", err)
		}
	})

	t.Run("GetUser returns ErrNotFound", func(t *testing.T) {
		_, err := store.GetUser(ctx, 9999)
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})

	t.Run("UsersByIDs omits missing users", func(t *testing.T) {
		carol := mustUser(t, store, "carol")
		users, err := store.UsersByIDs(ctx, []int64{carol.ID, 9999})
		if err != nil {
			t.Fatalf("UsersByIDs failed: %v", err)
		}
		if len(users) != 1 || users[carol.ID] == nil {
			t.Errorf("Expected only carol, got %v", users)
		}
	})
}

func TestUpdateAndListUsers(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	alice := mustUser(t, store, "alice")
	bob := mustUser(t, store, "bob")

	t.Run("UpdateUser reloads the stored row", func(t *testing.T) {
		update := &models.User{ID: alice.ID, Name: "Alice A.", Email: "alice.a@example.com", Phone: "555"}
		if err := store.UpdateUser(ctx, update); err != nil {
			t.Fatalf("UpdateUser failed: %v", err)
		}
		if !update.CreatedAt.Equal(alice.CreatedAt) {
			t.Errorf("CreatedAt changed: got %v, want %v", update.CreatedAt, alice.CreatedAt)
		}
		got, err := store.GetUser(ctx, alice.ID)
		if err != nil {
			t.Fatalf("GetUser failed: %v", err)
		}
		if got.Name != "Alice A." || got.Email != "alice.a@example.com" || got.Phone != "555" {
			t.Errorf("Unexpected user: %+v", got)
		}
	})

	t.Run("UpdateUser rejects a taken email", func(t *testing.T) {
		err := store.UpdateUser(ctx, &models.User{ID: alice.ID, Name: "Alice", Email: "bob@example.com"})
		if !errors.Is(err, storage.ErrConflict) {
			t.Errorf("Expected ErrConflict, got %v", err)
		}
	})

	t.Run("UpdateUser of unknown user", func(t *testing.T) {
		err := store.UpdateUser(ctx, &models.User{ID: 9999, Name: "Ghost", Email: "ghost@example.com"})
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})

	t.Run("ListUsers orders by ID", func(t *testing.T) {
		users, err := store.ListUsers(ctx)
		if err != nil {
			t.Fatalf("ListUsers failed: %v", err)
		}
		if len(users) != 2 || users[0].ID != alice.ID || users[1].ID != bob.ID {
			t.Errorf("Unexpected users: %+v", users)
		}
	})
}

func TestFriends(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	alice := mustUser(t, store, "alice")
	bob := mustUser(t, store, "bob")
	carol := mustUser(t, store, "carol")

	friendIDs := func(userID int64) []int64 {
		t.Helper()
		friends, err := store.ListFriends(ctx, userID)
		if err != nil {
			t.Fatalf("ListFriends failed: %v", err)
		}
		ids := make([]int64, len(friends))
		for i, f := range friends {
			ids[i] = f.ID
		}
		return ids
	}

	if _, err := store.AddFriend(ctx, bob.ID, alice.ID); err != nil {
		t.Fatalf("AddFriend failed: %v", err)
	}
	if _, err := store.AddFriend(ctx, bob.ID, carol.ID); err != nil {
		t.Fatalf("AddFriend failed: %v", err)
	}

	t.Run("Friendship is symmetric", func(t *testing.T) {
		if got := friendIDs(alice.ID); len(got) != 1 || got[0] != bob.ID {
			t.Errorf("alice's friends: got %v, want [%d]", got, bob.ID)
		}
		if got := friendIDs(bob.ID); len(got) != 2 || got[0] != alice.ID || got[1] != carol.ID {
			t.Errorf("bob's friends: got %v", got)
		}
	})

	t.Run("AddFriend rejects the reverse pair", func(t *testing.T) {
		_, err := store.AddFriend(ctx, alice.ID, bob.ID)
		if !errors.Is(err, storage.ErrConflict) {
			t.Errorf("Expected ErrConflict, got %v", err)
		}
	})

	t.Run("AddFriend with unknown user", func(t *testing.T) {
		_, err := store.AddFriend(ctx, alice.ID, 9999)
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})

	t.Run("RemoveFriend from either side is idempotent", func(t *testing.T) {
		for i := 0; i < 2; i++ {
			if err := store.RemoveFriend(ctx, alice.ID, bob.ID); err != nil {
				t.Fatalf("RemoveFriend #%d failed: %v", i+1, err)
			}
		}
		if got := friendIDs(alice.ID); len(got) != 0 {
			t.Errorf("Expected alice to have no friends, got %v", got)
		}
		if got := friendIDs(bob.ID); len(got) != 1 || got[0] != carol.ID {
			t.Errorf("Expected bob to keep carol, got %v", got)
		}
	})
}

func TestSettings(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	alice := mustUser(t, store, "alice")

	if _, err := store.GetSettings(ctx, alice.ID); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound before saving, got %v", err)
	}

	st := &models.UserSettings{
		UserID: alice.ID, Theme: "dark", Language: "en", Currency: "INR", Timezone: "Asia/Kolkata",
		EmailNotifications: false, PushNotifications: true, DefaultSplitMode: "equal",
	}
	if err := store.SaveSettings(ctx, st); err != nil {
		t.Fatalf("SaveSettings failed: %v", err)
	}
	st.Currency = "EUR"
	if err := store.SaveSettings(ctx, st); err != nil {
		t.Fatalf("SaveSettings (update) failed: %v", err)
	}

	got, err := store.GetSettings(ctx, alice.ID)
	if err != nil {
		t.Fatalf("GetSettings failed: %v", err)
	}
	if got.Theme != "dark" || got.Currency != "EUR" || got.EmailNotifications || !got.PushNotifications {
		t.Errorf("Unexpected settings: %+v", got)
	}
	if got.UpdatedAt.IsZero() {
		t.Error("Expected UpdatedAt to be set")
	}

	err = store.SaveSettings(ctx, &models.UserSettings{UserID: 9999, Theme: "light"})
	if !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Expected ErrNotFound for unknown user, got %v", err)
	}
}

func TestGroupsAndMembers(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	alice := mustUser(t, store, "alice")
	bob := mustUser(t, store, "bob")

	t.Run("CreateGroup adds the creator as member", func(t *testing.T) {
		group := mustGroup(t, store, "Trip", alice.ID)

		ok, err := store.IsMember(ctx, group.ID, alice.ID)
		if err != nil {
			t.Fatalf("IsMember failed: %v", err)
		}
		if !ok {
			t.Error("Expected creator to be a member")
		}
	})

	t.Run("CreateGroup with unknown creator fails", func(t *testing.T) {
		err := store.CreateGroup(ctx, &models.Group{Name: "Ghost", CreatedBy: 9999})
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})

	t.Run("CreateGroup with an unknown member writes nothing", func(t *testing.T) {
		err := store.CreateGroup(ctx, &models.Group{Name: "Broken", CreatedBy: alice.ID}, bob.ID, 9999)
		if !errors.Is(err, storage.ErrNotFound) {
			t.Fatalf("Expected ErrNotFound, got %v", err)
		}

		var groups, memberships int
		if err := store.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM groups WHERE name = 'Broken'").Scan(&groups); err != nil {
			t.Fatalf("count groups: %v", err)
		}
		if err := store.db.QueryRowContext(ctx,
			"SELECT COUNT(*) FROM group_members m LEFT JOIN groups g ON g.id = m.group_id WHERE g.id IS NULL",
		).Scan(&memberships); err != nil {
			t.Fatalf("count memberships: %v", err)
		}
		if groups != 0 || memberships != 0 {
			t.Errorf("Expected no partial group, found %d groups and %d orphan memberships", groups, memberships)
		}
	})

	t.Run("CreateGroup ignores repeated members", func(t *testing.T) {
		group := mustGroup(t, store, "Band", alice.ID, bob.ID, alice.ID, bob.ID)
		members, err := store.ListMembers(ctx, group.ID)
		if err != nil {
			t.Fatalf("ListMembers failed: %v", err)
		}
		if len(members) != 2 {
			t.Errorf("Expected 2 members, got %d", len(members))
		}
	})

	t.Run("AddMember rejects duplicates", func(t *testing.T) {
		group := mustGroup(t, store, "Flat", alice.ID, bob.ID)

		_, err := store.AddMember(ctx, group.ID, bob.ID)
		if !errors.Is(err, storage.ErrConflict) {
			t.Errorf("Expected ErrConflict, got %v", err)
		}

		members, err := store.ListMembers(ctx, group.ID)
		if err != nil {
			t.Fatalf("ListMembers failed: %v", err)
		}
		if len(members) != 2 {
			t.Errorf("Expected 2 members, got %d", len(members))
		}
	})

	t.Run("AddMember with unknown user fails", func(t *testing.T) {
		group := mustGroup(t, store, "Office", alice.ID)
		_, err := store.AddMember(ctx, group.ID, 9999)
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})

	t.Run("RemoveMember is idempotent", func(t *testing.T) {
		group := mustGroup(t, store, "Club", alice.ID, bob.ID)

		for i := 0; i < 2; i++ {
			if err := store.RemoveMember(ctx, group.ID, bob.ID); err != nil {
				t.Fatalf("RemoveMember #%d failed: %v", i+1, err)
			}
		}
		ok, err := store.IsMember(ctx, group.ID, bob.ID)
		if err != nil {
			t.Fatalf("IsMember failed: %v", err)
		}
		if ok {
			t.Error("Expected bob to be removed")
		}
	})

	t.Run("ListGroupsByUser", func(t *testing.T) {
		carol := mustUser(t, store, "carol")
		g1 := mustGroup(t, store, "One", carol.ID)
		g2 := mustGroup(t, store, "Two", alice.ID, carol.ID)

		groups, err := store.ListGroupsByUser(ctx, carol.ID)
		if err != nil {
			t.Fatalf("ListGroupsByUser failed: %v", err)
		}
		if len(groups) != 2 {
			t.Fatalf("Expected 2 groups, got %d", len(groups))
		}
		ids := map[int64]bool{groups[0].ID: true, groups[1].ID: true}
		if !ids[g1.ID] || !ids[g2.ID] {
			t.Errorf("Unexpected groups: %v", ids)
		}
	})
}

func TestExpenses(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	alice := mustUser(t, store, "alice")
	bob := mustUser(t, store, "bob")
	carol := mustUser(t, store, "carol")
	group := mustGroup(t, store, "Dinner club", alice.ID, bob.ID, carol.ID)

	newExpense := func(amount string, paidBy int64, shares map[int64]string) *models.Expense {
		expense := &models.Expense{
			GroupID:     &group.ID,
			PaidBy:      paidBy,
			Amount:      dec(amount),
			Description: "Dinner",
		}
		for _, id := range []int64{alice.ID, bob.ID, carol.ID} {
			if s, ok := shares[id]; ok {
				expense.Splits = append(expense.Splits, models.Split{UserID: id, Share: dec(s)})
			}
		}
		return expense
	}

	t.Run("CreateExpense stores splits", func(t *testing.T) {
		expense := newExpense("90", alice.ID, map[int64]string{alice.ID: "30", bob.ID: "30", carol.ID: "30"})
		if err := store.CreateExpense(ctx, expense); err != nil {
			t.Fatalf("CreateExpense failed: %v", err)
		}
		if expense.ID == 0 {
			t.Fatal("Expected expense ID to be assigned")
		}
		for _, s := range expense.Splits {
			if s.ID == 0 || s.ExpenseID != expense.ID {
				t.Errorf("Split not populated: %+v", s)
			}
		}

		got, err := store.GetExpense(ctx, expense.ID)
		if err != nil {
			t.Fatalf("GetExpense failed: %v", err)
		}
		if !got.Amount.Equal(dec("90")) {
			t.Errorf("Amount mismatch: got %s, want 90", got.Amount)
		}
		if !got.InGroup(group.ID) {
			t.Errorf("Expected expense in group %d", group.ID)
		}
		if len(got.Splits) != 3 {
			t.Fatalf("Expected 3 splits, got %d", len(got.Splits))
		}
		if !got.SplitTotal().Equal(dec("90")) {
			t.Errorf("Split total mismatch: got %s", got.SplitTotal())
		}
	})

	t.Run("Amounts keep exact decimal precision", func(t *testing.T) {
		expense := newExpense("0.3", bob.ID, map[int64]string{alice.ID: "0.1", bob.ID: "0.1", carol.ID: "0.1"})
		if err := store.CreateExpense(ctx, expense); err != nil {
			t.Fatalf("CreateExpense failed: %v", err)
		}
		got, err := store.GetExpense(ctx, expense.ID)
		if err != nil {
			t.Fatalf("GetExpense failed: %v", err)
		}
		if !got.SplitTotal().Equal(got.Amount) {
			t.Errorf("Expected splits %s to equal amount %s", got.SplitTotal(), got.Amount)
		}
	})

	t.Run("CreateExpense with unknown split user writes nothing", func(t *testing.T) {
		before, err := store.ListExpensesByGroup(ctx, group.ID)
		if err != nil {
			t.Fatalf("ListExpensesByGroup failed: %v", err)
		}

		expense := newExpense("10", alice.ID, map[int64]string{alice.ID: "5"})
		expense.Splits = append(expense.Splits, models.Split{UserID: 9999, Share: dec("5")})
		err = store.CreateExpense(ctx, expense)
		if !errors.Is(err, storage.ErrNotFound) {
			t.Fatalf("Expected ErrNotFound, got %v", err)
		}

		after, err := store.ListExpensesByGroup(ctx, group.ID)
		if err != nil {
			t.Fatalf("ListExpensesByGroup failed: %v", err)
		}
		if len(after) != len(before) {
			t.Errorf("Expected no partial write: before %d, after %d", len(before), len(after))
		}
	})

	t.Run("CreateExpense with a non-member writes nothing", func(t *testing.T) {
		dave := mustUser(t, store, "dave")
		before, err := store.ListExpensesByGroup(ctx, group.ID)
		if err != nil {
			t.Fatalf("ListExpensesByGroup failed: %v", err)
		}

		expense := newExpense("10", alice.ID, map[int64]string{alice.ID: "5"})
		expense.Splits = append(expense.Splits, models.Split{UserID: dave.ID, Share: dec("5")})
		err = store.CreateExpense(ctx, expense)
		if !errors.Is(err, storage.ErrNotAMember) {
			t.Fatalf("Expected ErrNotAMember, got %v", err)
		}
		var nm *storage.NotAMemberError
		if !errors.As(err, &nm) || nm.UserID != dave.ID || nm.GroupID != group.ID {
			t.Errorf("Expected dave to be reported, got %v", err)
		}
		if expense.ID != 0 {
			t.Errorf("Expected no ID on a rejected expense, got %d", expense.ID)
		}

		after, err := store.ListExpensesByGroup(ctx, group.ID)
		if err != nil {
			t.Fatalf("ListExpensesByGroup failed: %v", err)
		}
		if len(after) != len(before) {
			t.Errorf("Expected no partial write: before %d, after %d", len(before), len(after))
		}
		var splits int
		if err := store.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM expense_splits WHERE user_id = ?", dave.ID).Scan(&splits); err != nil {
			t.Fatalf("count splits: %v", err)
		}
		if splits != 0 {
			t.Errorf("Expected no splits for dave, found %d", splits)
		}
	})

	t.Run("DeleteExpense removes splits", func(t *testing.T) {
		expense := newExpense("20", carol.ID, map[int64]string{bob.ID: "20"})
		if err := store.CreateExpense(ctx, expense); err != nil {
			t.Fatalf("CreateExpense failed: %v", err)
		}
		if err := store.DeleteExpense(ctx, expense.ID); err != nil {
			t.Fatalf("DeleteExpense failed: %v", err)
		}
		if _, err := store.GetExpense(ctx, expense.ID); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound after delete, got %v", err)
		}

		var orphans int
		if err := store.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM expense_splits WHERE expense_id = ?", expense.ID).Scan(&orphans); err != nil {
			t.Fatalf("count splits: %v", err)
		}
		if orphans != 0 {
			t.Errorf("Expected splits to be deleted, found %d", orphans)
		}

		if err := store.DeleteExpense(ctx, expense.ID); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound on second delete, got %v", err)
		}
	})

	t.Run("ListSharesOwedBy excludes own expenses", func(t *testing.T) {
		shares, err := store.ListSharesOwedBy(ctx, alice.ID)
		if err != nil {
			t.Fatalf("ListSharesOwedBy failed: %v", err)
		}
		for _, s := range shares {
			if s.Expense.PaidBy == alice.ID {
				t.Errorf("Share on alice's own expense returned: %+v", s)
			}
			if s.Split.UserID != alice.ID {
				t.Errorf("Share for another user returned: %+v", s)
			}
		}
		// bob's 0.3 expense
		if len(shares) != 1 {
			t.Errorf("Expected 1 share, got %d", len(shares))
		}
	})

	t.Run("ListExpensesPaidBy", func(t *testing.T) {
		expenses, err := store.ListExpensesPaidBy(ctx, alice.ID)
		if err != nil {
			t.Fatalf("ListExpensesPaidBy failed: %v", err)
		}
		if len(expenses) != 1 {
			t.Errorf("Expected 1 expense, got %d", len(expenses))
		}
	})
}

func TestSettlements(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	alice := mustUser(t, store, "alice")
	bob := mustUser(t, store, "bob")
	group := mustGroup(t, store, "Flat", alice.ID, bob.ID)

	settlement := &models.Settlement{GroupID: group.ID, PaidBy: bob.ID, PaidTo: alice.ID, Amount: dec("25.50")}
	if err := store.CreateSettlement(ctx, settlement); err != nil {
		t.Fatalf("CreateSettlement failed: %v", err)
	}

	t.Run("GetSettlement", func(t *testing.T) {
		got, err := store.GetSettlement(ctx, settlement.ID)
		if err != nil {
			t.Fatalf("GetSettlement failed: %v", err)
		}
		if !got.Amount.Equal(dec("25.5")) || got.PaidBy != bob.ID || got.PaidTo != alice.ID {
			t.Errorf("Unexpected settlement: %+v", got)
		}
	})

	t.Run("Paid and received listings", func(t *testing.T) {
		paid, err := store.ListSettlementsPaidBy(ctx, bob.ID)
		if err != nil {
			t.Fatalf("ListSettlementsPaidBy failed: %v", err)
		}
		received, err := store.ListSettlementsReceivedBy(ctx, alice.ID)
		if err != nil {
			t.Fatalf("ListSettlementsReceivedBy failed: %v", err)
		}
		if len(paid) != 1 || len(received) != 1 {
			t.Errorf("Expected 1 paid and 1 received, got %d and %d", len(paid), len(received))
		}

		none, err := store.ListSettlementsPaidBy(ctx, alice.ID)
		if err != nil {
			t.Fatalf("ListSettlementsPaidBy failed: %v", err)
		}
		if len(none) != 0 {
			t.Errorf("Expected alice to have paid nothing, got %d", len(none))
		}
	})

	t.Run("Self settlement violates constraint", func(t *testing.T) {
		err := store.CreateSettlement(ctx, &models.Settlement{GroupID: group.ID, PaidBy: bob.ID, PaidTo: bob.ID, Amount: dec("1")})
		if err == nil {
			t.Error("Expected error for self settlement")
		}
	})

	t.Run("Settlement with a non-member writes nothing", func(t *testing.T) {
		carol := mustUser(t, store, "carol")
		rejected := &models.Settlement{GroupID: group.ID, PaidBy: carol.ID, PaidTo: alice.ID, Amount: dec("5")}
		err := store.CreateSettlement(ctx, rejected)
		if !errors.Is(err, storage.ErrNotAMember) {
			t.Fatalf("Expected ErrNotAMember, got %v", err)
		}
		if rejected.ID != 0 {
			t.Errorf("Expected no ID on a rejected settlement, got %d", rejected.ID)
		}

		received, err := store.ListSettlementsReceivedBy(ctx, alice.ID)
		if err != nil {
			t.Fatalf("ListSettlementsReceivedBy failed: %v", err)
		}
		if len(received) != 1 {
			t.Errorf("Expected alice to still have 1 received settlement, got %d", len(received))
		}
	})

	t.Run("DeleteSettlement", func(t *testing.T) {
		if err := store.DeleteSettlement(ctx, settlement.ID); err != nil {
			t.Fatalf("DeleteSettlement failed: %v", err)
		}
		if _, err := store.GetSettlement(ctx, settlement.ID); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
		if err := store.DeleteSettlement(ctx, settlement.ID); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound on second delete, got %v", err)
		}
	})
}

func TestLedgers(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	alice := mustUser(t, store, "alice")
	bob := mustUser(t, store, "bob")
	carol := mustUser(t, store, "carol")
	group := mustGroup(t, store, "Trip", alice.ID, bob.ID, carol.ID)

	groupExpense := &models.Expense{
		GroupID: &group.ID, PaidBy: alice.ID, Amount: dec("60"),
		Splits: []models.Split{{UserID: alice.ID, Share: dec("30")}, {UserID: bob.ID, Share: dec("30")}},
	}
	personal := &models.Expense{
		PaidBy: bob.ID, Amount: dec("12"),
		Splits: []models.Split{{UserID: alice.ID, Share: dec("12")}},
	}
	for _, e := range []*models.Expense{groupExpense, personal} {
		if err := store.CreateExpense(ctx, e); err != nil {
			t.Fatalf("CreateExpense failed: %v", err)
		}
	}
	if err := store.CreateSettlement(ctx, &models.Settlement{GroupID: group.ID, PaidBy: bob.ID, PaidTo: alice.ID, Amount: dec("10")}); err != nil {
		t.Fatalf("CreateSettlement failed: %v", err)
	}

	t.Run("GroupLedger", func(t *testing.T) {
		ledger, err := store.GroupLedger(ctx, group.ID)
		if err != nil {
			t.Fatalf("GroupLedger failed: %v", err)
		}
		if len(ledger.Expenses) != 1 || ledger.Expenses[0].ID != groupExpense.ID {
			t.Errorf("Expected only the group expense, got %d expenses", len(ledger.Expenses))
		}
		if len(ledger.Expenses[0].Splits) != 2 {
			t.Errorf("Expected splits to be loaded, got %d", len(ledger.Expenses[0].Splits))
		}
		if len(ledger.Settlements) != 1 {
			t.Errorf("Expected 1 settlement, got %d", len(ledger.Settlements))
		}
		want := []int64{alice.ID, bob.ID, carol.ID}
		if len(ledger.MemberIDs) != len(want) {
			t.Fatalf("MemberIDs: got %v, want %v", ledger.MemberIDs, want)
		}
		for i := range want {
			if ledger.MemberIDs[i] != want[i] {
				t.Errorf("MemberIDs: got %v, want %v", ledger.MemberIDs, want)
				break
			}
		}
	})

	t.Run("GroupLedger of unknown group", func(t *testing.T) {
		_, err := store.GroupLedger(ctx, 9999)
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})

	t.Run("PersonalLedger", func(t *testing.T) {
		for _, userID := range []int64{alice.ID, bob.ID} {
			ledger, err := store.PersonalLedger(ctx, userID)
			if err != nil {
				t.Fatalf("PersonalLedger failed: %v", err)
			}
			if len(ledger.Expenses) != 1 || ledger.Expenses[0].ID != personal.ID {
				t.Errorf("user %d: expected only the personal expense, got %d", userID, len(ledger.Expenses))
			}
			if len(ledger.Settlements) != 0 {
				t.Errorf("user %d: expected no settlements", userID)
			}
		}

		ledger, err := store.PersonalLedger(ctx, carol.ID)
		if err != nil {
			t.Fatalf("PersonalLedger failed: %v", err)
		}
		if len(ledger.Expenses) != 0 {
			t.Errorf("Expected carol to have no personal expenses, got %d", len(ledger.Expenses))
		}
	})
}

func TestCancelMidTransactionRollsBack(t *testing.T) {
	store := newTestStore(t)
	alice := mustUser(t, store, "alice")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	err := store.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO expenses (group_id, paid_by, amount, description, created_at) VALUES (NULL, ?, '10', 'Taxi', 0)",
			alice.ID,
		); err != nil {
			return err
		}
		cancel()
		return nil
	})
	if err == nil {
		t.Fatal("Expected commit to fail after cancellation")
	}

	var count int
	if err := store.db.QueryRowContext(context.Background(), "SELECT COUNT(*) FROM expenses").Scan(&count); err != nil {
		t.Fatalf("count expenses: %v", err)
	}
	if count != 0 {
		t.Errorf("Expected the insert to be rolled back, found %d expenses", count)
	}
}

func TestNewCreatesMissingDirectory(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "data", "nested", "ledger.db")

	store, err := New(dbPath)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); err != nil {
		t.Errorf("Expected database file at %s: %v", dbPath, err)
	}
}

func TestPlaceholders(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{0, ""},
		{1, "?"},
		{3, "?, ?, ?"},
	}

	for _, tt := range tests {
		if got := placeholders(tt.n); got != tt.want {
			t.Errorf("placeholders(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}
