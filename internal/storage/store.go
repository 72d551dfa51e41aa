// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/khushthecoder/Expense-Splitter/internal/models"
)

var (
	// ErrNotFound is returned when a referenced record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrConflict is returned when a write violates a uniqueness constraint.
	ErrConflict = errors.New("record already exists")

	// ErrNotAMember is matched by NotAMemberError.
	ErrNotAMember = errors.New("user is not a group member")
)

// NotAMemberError is returned by writes that require their participants to
// belong to a group, naming the first participant that does not.
type NotAMemberError struct {
	GroupID int64
	UserID  int64
}

func (e *NotAMemberError) Error() string {
	return fmt.Sprintf("user %d is not a member of group %d", e.UserID, e.GroupID)
}

// Is reports whether target is ErrNotAMember.
func (e *NotAMemberError) Is(target error) bool {
	return target == ErrNotAMember
}

// Ledger is a consistent snapshot of one scope's entries, read in a single
// transaction.
type Ledger struct {
	Expenses    []*models.Expense
	Settlements []*models.Settlement

	// MemberIDs lists the scope's current group members, in ascending order.
	// Empty for personal scopes.
	MemberIDs []int64
}

// Store defines the interface for ledger storage operations.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the ledger or service layers.
//
// Methods that create records populate ID and CreatedAt on the passed model.
type Store interface {
	// CreateUser persists a new user. Returns ErrConflict if the email is taken.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUser retrieves a user by ID. Returns ErrNotFound if absent.
	GetUser(ctx context.Context, userID int64) (*models.User, error)

	// UsersByIDs retrieves users by ID. Missing users are omitted.
	UsersByIDs(ctx context.Context, ids []int64) (map[int64]*models.User, error)

	// ListUsers lists every user ordered by ID.
	ListUsers(ctx context.Context) ([]*models.User, error)

	// UpdateUser overwrites the name, email and phone of user.ID and reloads
	// the stored record into user. Returns ErrNotFound if absent and
	// ErrConflict if the email is taken.
	UpdateUser(ctx context.Context, user *models.User) error

	// AddFriend links two users. Returns ErrConflict if they are already
	// friends, in either direction, and ErrNotFound if either user is absent.
	AddFriend(ctx context.Context, userID, friendID int64) (*models.Friendship, error)

	// RemoveFriend unlinks two users in both directions. Absent friendships
	// are not an error.
	RemoveFriend(ctx context.Context, userID, friendID int64) error

	// ListFriends lists a user's friends ordered by ID.
	ListFriends(ctx context.Context, userID int64) ([]*models.User, error)

	// GetSettings retrieves a user's saved settings. Returns ErrNotFound if
	// none were saved.
	GetSettings(ctx context.Context, userID int64) (*models.UserSettings, error)

	// SaveSettings inserts or replaces a user's settings and stamps
	// UpdatedAt. Returns ErrNotFound if the user is absent.
	SaveSettings(ctx context.Context, settings *models.UserSettings) error

	// CreateGroup persists a new group and adds its creator and memberIDs as
	// members in the same transaction. Returns ErrNotFound, and writes
	// nothing, if the creator or any member does not exist.
	CreateGroup(ctx context.Context, group *models.Group, memberIDs ...int64) error

	// GetGroup retrieves a group by ID. Returns ErrNotFound if absent.
	GetGroup(ctx context.Context, groupID int64) (*models.Group, error)

	// GroupsByIDs retrieves groups by ID. Missing groups are omitted.
	GroupsByIDs(ctx context.Context, ids []int64) (map[int64]*models.Group, error)

	// ListGroupsByUser lists the groups a user belongs to, newest first.
	ListGroupsByUser(ctx context.Context, userID int64) ([]*models.Group, error)

	// AddMember inserts a membership. Returns ErrConflict if it already
	// exists and ErrNotFound if the group or user does not exist.
	AddMember(ctx context.Context, groupID, userID int64) (*models.Membership, error)

	// RemoveMember deletes a membership. Absent memberships are not an error.
	RemoveMember(ctx context.Context, groupID, userID int64) error

	// IsMember reports whether the user belongs to the group.
	IsMember(ctx context.Context, groupID, userID int64) (bool, error)

	// ListMembers lists a group's memberships ordered by user ID.
	ListMembers(ctx context.Context, groupID int64) ([]models.Membership, error)

	// CreateExpense persists an expense and all of its splits atomically.
	// For a group expense the payer and every split user must be members
	// when the write commits, otherwise a *NotAMemberError is returned and
	// nothing is written.
	CreateExpense(ctx context.Context, expense *models.Expense) error

	// GetExpense retrieves an expense with its splits. Returns ErrNotFound if absent.
	GetExpense(ctx context.Context, expenseID int64) (*models.Expense, error)

	// DeleteExpense removes an expense and its splits atomically.
	// Returns ErrNotFound if absent.
	DeleteExpense(ctx context.Context, expenseID int64) error

	// ListExpensesByGroup lists a group's expenses with splits, newest first.
	ListExpensesByGroup(ctx context.Context, groupID int64) ([]*models.Expense, error)

	// ListExpensesPaidBy lists every expense the user paid, in any scope.
	ListExpensesPaidBy(ctx context.Context, userID int64) ([]*models.Expense, error)

	// ListSharesOwedBy lists the user's splits on expenses paid by someone else.
	ListSharesOwedBy(ctx context.Context, userID int64) ([]models.ExpenseShare, error)

	// CreateSettlement persists a new settlement. Both parties must be
	// members of the group when the write commits, otherwise a
	// *NotAMemberError is returned and nothing is written.
	CreateSettlement(ctx context.Context, settlement *models.Settlement) error

	// GetSettlement retrieves a settlement by ID. Returns ErrNotFound if absent.
	GetSettlement(ctx context.Context, settlementID int64) (*models.Settlement, error)

	// DeleteSettlement removes a settlement. Returns ErrNotFound if absent.
	DeleteSettlement(ctx context.Context, settlementID int64) error

	// ListSettlementsByGroup lists a group's settlements, newest first.
	ListSettlementsByGroup(ctx context.Context, groupID int64) ([]*models.Settlement, error)

	// ListSettlementsPaidBy lists settlements the user paid, newest first.
	ListSettlementsPaidBy(ctx context.Context, userID int64) ([]*models.Settlement, error)

	// ListSettlementsReceivedBy lists settlements the user received, newest first.
	ListSettlementsReceivedBy(ctx context.Context, userID int64) ([]*models.Settlement, error)

	// GroupLedger reads a group's expenses, settlements and members as one
	// snapshot. Returns ErrNotFound if the group does not exist.
	GroupLedger(ctx context.Context, groupID int64) (*Ledger, error)

	// PersonalLedger reads the group-less expenses the user paid or has a
	// split on, as one snapshot.
	PersonalLedger(ctx context.Context, userID int64) (*Ledger, error)

	// Close releases any resources held by the store.
	Close() error
}
