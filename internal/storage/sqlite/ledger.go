package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/khushthecoder/Expense-Splitter/internal/storage"
)

// GroupLedger reads a group's entries and members inside one transaction so
// the three reads observe the same state.
func (s *SQLiteStore) GroupLedger(ctx context.Context, groupID int64) (*storage.Ledger, error) {
	var ledger storage.Ledger
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := getGroup(ctx, tx, groupID); err != nil {
			return err
		}

		expenses, err := listGroupExpenses(ctx, tx, groupID)
		if err != nil {
			return err
		}
		settlements, err := listGroupSettlements(ctx, tx, groupID)
		if err != nil {
			return err
		}
		members, err := listMembers(ctx, tx, groupID)
		if err != nil {
			return err
		}

		ledger.Expenses = expenses
		ledger.Settlements = settlements
		ledger.MemberIDs = make([]int64, len(members))
		for i, m := range members {
			ledger.MemberIDs[i] = m.UserID
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("group ledger %d: %w", groupID, err)
	}
	return &ledger, nil
}

// PersonalLedger reads the user's group-less expenses as one snapshot.
// Settlements always belong to a group, so the personal scope has none.
func (s *SQLiteStore) PersonalLedger(ctx context.Context, userID int64) (*storage.Ledger, error) {
	var ledger storage.Ledger
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		expenses, err := personalExpenses(ctx, tx, userID)
		if err != nil {
			return err
		}
		ledger.Expenses = expenses
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("personal ledger %d: %w", userID, err)
	}
	return &ledger, nil
}
