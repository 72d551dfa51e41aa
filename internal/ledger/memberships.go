package ledger

import (
	"context"
	"errors"
	"fmt"

	"github.com/khushthecoder/Expense-Splitter/internal/models"
	"github.com/khushthecoder/Expense-Splitter/internal/storage"
)

// Memberships gates which users take part in a group's entries.
//
// Membership changes never rewrite history: a removed member's past splits
// and settlements stay in the ledger and keep counting toward balances.
type Memberships struct {
	store storage.Store
}

// NewMemberships creates a membership store over the given record store.
func NewMemberships(store storage.Store) *Memberships {
	return &Memberships{store: store}
}

// IsMember reports whether the user belongs to the group.
func (ms *Memberships) IsMember(ctx context.Context, groupID, userID int64) (bool, error) {
	ok, err := ms.store.IsMember(ctx, groupID, userID)
	if err != nil {
		return false, fromStorage(err, "membership lookup failed")
	}
	return ok, nil
}

// AddMember adds the user to the group.
func (ms *Memberships) AddMember(ctx context.Context, groupID, userID int64) (*models.Membership, error) {
	if _, err := ms.store.GetGroup(ctx, groupID); err != nil {
		return nil, fromStorage(err, fmt.Sprintf("group %d not found", groupID))
	}
	if _, err := ms.store.GetUser(ctx, userID); err != nil {
		return nil, fromStorage(err, fmt.Sprintf("user %d not found", userID))
	}

	membership, err := ms.store.AddMember(ctx, groupID, userID)
	if errors.Is(err, storage.ErrConflict) {
		return nil, &Error{
			Kind:    KindDuplicateMembership,
			Message: fmt.Sprintf("user %d is already a member of group %d", userID, groupID),
			Err:     err,
		}
	}
	if err != nil {
		return nil, fromStorage(err, fmt.Sprintf("group %d or user %d not found", groupID, userID))
	}
	return membership, nil
}

// RemoveMember removes the user from the group. Removing a user who is not a
// member is not an error.
func (ms *Memberships) RemoveMember(ctx context.Context, groupID, userID int64) error {
	if err := ms.store.RemoveMember(ctx, groupID, userID); err != nil {
		return fromStorage(err, "membership removal failed")
	}
	return nil
}

// Members returns the IDs of a group's members in ascending order.
func (ms *Memberships) Members(ctx context.Context, groupID int64) ([]int64, error) {
	if _, err := ms.store.GetGroup(ctx, groupID); err != nil {
		return nil, fromStorage(err, fmt.Sprintf("group %d not found", groupID))
	}
	members, err := ms.store.ListMembers(ctx, groupID)
	if err != nil {
		return nil, fromStorage(err, "listing members failed")
	}
	ids := make([]int64, len(members))
	for i, m := range members {
		ids[i] = m.UserID
	}
	return ids, nil
}
