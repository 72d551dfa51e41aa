package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/khushthecoder/Expense-Splitter/internal/models"
	"github.com/khushthecoder/Expense-Splitter/internal/storage"
)

const expenseColumns = "e.id, e.group_id, e.paid_by, e.amount, e.description, e.created_at"

// CreateExpense persists a new expense and its splits in one transaction.
// Group expenses are rejected unless every participant is a member.
func (s *SQLiteStore) CreateExpense(ctx context.Context, expense *models.Expense) error {
	if expense.CreatedAt.IsZero() {
		expense.CreatedAt = now()
	}

	return s.inTx(ctx, func(tx *sql.Tx) error {
		// Insert expense
		res, err := tx.ExecContext(ctx,
			"INSERT INTO expenses (group_id, paid_by, amount, description, created_at) VALUES (?, ?, ?, ?, ?)",
			nullableID(expense.GroupID), expense.PaidBy, expense.Amount.String(), expense.Description, toMillis(expense.CreatedAt),
		)
		if err != nil {
			if isForeignKeyViolation(err) {
				return fmt.Errorf("expense references: %w", storage.ErrNotFound)
			}
			return fmt.Errorf("failed to insert expense: %w", err)
		}
		expenseID, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to read expense id: %w", err)
		}

		// Insert splits
		for i := range expense.Splits {
			split := &expense.Splits[i]
			res, err := tx.ExecContext(ctx,
				"INSERT INTO expense_splits (expense_id, user_id, share) VALUES (?, ?, ?)",
				expenseID, split.UserID, split.Share.String(),
			)
			if err != nil {
				if isForeignKeyViolation(err) {
					return fmt.Errorf("split user %d: %w", split.UserID, storage.ErrNotFound)
				}
				return fmt.Errorf("failed to insert split: %w", err)
			}
			if split.ID, err = res.LastInsertId(); err != nil {
				return fmt.Errorf("failed to read split id: %w", err)
			}
			split.ExpenseID = expenseID
		}

		// The inserts above hold the write lock, so no membership change can
		// commit between this check and the commit below.
		if expense.GroupID != nil {
			participants := make([]int64, 0, len(expense.Splits)+1)
			participants = append(participants, expense.PaidBy)
			for _, split := range expense.Splits {
				participants = append(participants, split.UserID)
			}
			if err := requireMembers(ctx, tx, *expense.GroupID, participants...); err != nil {
				return err
			}
		}

		expense.ID = expenseID
		return nil
	})
}

// GetExpense retrieves an expense by ID, including its splits.
func (s *SQLiteStore) GetExpense(ctx context.Context, expenseID int64) (*models.Expense, error) {
	expenses, err := queryExpenses(ctx, s.db,
		"SELECT "+expenseColumns+" FROM expenses e WHERE e.id = ?",
		expenseID,
	)
	if err != nil {
		return nil, err
	}
	if len(expenses) == 0 {
		return nil, fmt.Errorf("expense %d: %w", expenseID, storage.ErrNotFound)
	}
	return expenses[0], nil
}

// DeleteExpense removes an expense; its splits cascade in the same transaction.
func (s *SQLiteStore) DeleteExpense(ctx context.Context, expenseID int64) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		// Splits are removed explicitly as well so the delete does not
		// depend on the foreign_keys pragma being active.
		if _, err := tx.ExecContext(ctx, "DELETE FROM expense_splits WHERE expense_id = ?", expenseID); err != nil {
			return fmt.Errorf("failed to delete splits: %w", err)
		}

		res, err := tx.ExecContext(ctx, "DELETE FROM expenses WHERE id = ?", expenseID)
		if err != nil {
			return fmt.Errorf("failed to delete expense: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to check deleted rows: %w", err)
		}
		if n == 0 {
			return fmt.Errorf("expense %d: %w", expenseID, storage.ErrNotFound)
		}
		return nil
	})
}

// ListExpensesByGroup retrieves all expenses for a group, newest first.
func (s *SQLiteStore) ListExpensesByGroup(ctx context.Context, groupID int64) ([]*models.Expense, error) {
	return listGroupExpenses(ctx, s.db, groupID)
}

func listGroupExpenses(ctx context.Context, q querier, groupID int64) ([]*models.Expense, error) {
	return queryExpenses(ctx, q,
		"SELECT "+expenseColumns+" FROM expenses e WHERE e.group_id = ? ORDER BY e.created_at DESC, e.id DESC",
		groupID,
	)
}

// ListExpensesPaidBy retrieves every expense the user paid.
func (s *SQLiteStore) ListExpensesPaidBy(ctx context.Context, userID int64) ([]*models.Expense, error) {
	return queryExpenses(ctx, s.db,
		"SELECT "+expenseColumns+" FROM expenses e WHERE e.paid_by = ? ORDER BY e.created_at DESC, e.id DESC",
		userID,
	)
}

// ListSharesOwedBy retrieves the user's splits on expenses paid by others.
// The attached expenses carry no splits of their own.
func (s *SQLiteStore) ListSharesOwedBy(ctx context.Context, userID int64) ([]models.ExpenseShare, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT s.id, s.expense_id, s.user_id, s.share, `+expenseColumns+`
		 FROM expense_splits s
		 JOIN expenses e ON e.id = s.expense_id
		 WHERE s.user_id = ? AND e.paid_by <> ?
		 ORDER BY e.created_at DESC, s.id DESC`,
		userID, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list shares: %w", err)
	}
	defer rows.Close()

	var shares []models.ExpenseShare
	for rows.Next() {
		var share models.ExpenseShare
		var groupID sql.NullInt64
		var createdAt int64
		if err := rows.Scan(
			&share.Split.ID, &share.Split.ExpenseID, &share.Split.UserID, &share.Split.Share,
			&share.Expense.ID, &groupID, &share.Expense.PaidBy, &share.Expense.Amount,
			&share.Expense.Description, &createdAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan share: %w", err)
		}
		share.Expense.GroupID = idPtr(groupID)
		share.Expense.CreatedAt = fromMillis(createdAt)
		shares = append(shares, share)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate shares: %w", err)
	}
	return shares, nil
}

// queryExpenses runs an expense query and then loads the splits of every
// returned expense with a single IN query. The expense rows are fully read
// before the split query starts.
func queryExpenses(ctx context.Context, q querier, query string, args ...any) ([]*models.Expense, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}

	var expenses []*models.Expense
	byID := make(map[int64]*models.Expense)
	for rows.Next() {
		expense := &models.Expense{}
		var groupID sql.NullInt64
		var createdAt int64
		if err := rows.Scan(&expense.ID, &groupID, &expense.PaidBy, &expense.Amount, &expense.Description, &createdAt); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expense.GroupID = idPtr(groupID)
		expense.CreatedAt = fromMillis(createdAt)
		expenses = append(expenses, expense)
		byID[expense.ID] = expense
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}

	if len(expenses) == 0 {
		return expenses, nil
	}

	ids := make([]int64, len(expenses))
	for i, e := range expenses {
		ids[i] = e.ID
	}
	splitRows, err := q.QueryContext(ctx,
		"SELECT id, expense_id, user_id, share FROM expense_splits WHERE expense_id IN ("+placeholders(len(ids))+") ORDER BY id",
		int64Args(ids)...,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get splits: %w", err)
	}
	defer splitRows.Close()

	for splitRows.Next() {
		var split models.Split
		if err := splitRows.Scan(&split.ID, &split.ExpenseID, &split.UserID, &split.Share); err != nil {
			return nil, fmt.Errorf("failed to scan split: %w", err)
		}
		if e, ok := byID[split.ExpenseID]; ok {
			e.Splits = append(e.Splits, split)
		}
	}
	if err := splitRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate splits: %w", err)
	}

	return expenses, nil
}

// personalExpenses lists group-less expenses the user paid or has a split on.
func personalExpenses(ctx context.Context, q querier, userID int64) ([]*models.Expense, error) {
	return queryExpenses(ctx, q,
		`SELECT `+expenseColumns+`
		 FROM expenses e
		 WHERE e.group_id IS NULL
		   AND (e.paid_by = ? OR EXISTS (
		        SELECT 1 FROM expense_splits s WHERE s.expense_id = e.id AND s.user_id = ?))
		 ORDER BY e.created_at DESC, e.id DESC`,
		userID, userID,
	)
}
