package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/khushthecoder/Expense-Splitter/internal/models"
	"github.com/khushthecoder/Expense-Splitter/internal/storage"
)

const settlementColumns = "id, group_id, paid_by, paid_to, amount, created_at"

// CreateSettlement inserts a new settlement, provided both parties are
// members of its group.
func (s *SQLiteStore) CreateSettlement(ctx context.Context, settlement *models.Settlement) error {
	if settlement.CreatedAt.IsZero() {
		settlement.CreatedAt = now()
	}

	return s.inTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx,
			"INSERT INTO settlements (group_id, paid_by, paid_to, amount, created_at) VALUES (?, ?, ?, ?, ?)",
			settlement.GroupID, settlement.PaidBy, settlement.PaidTo, settlement.Amount.String(), toMillis(settlement.CreatedAt),
		)
		if err != nil {
			if isForeignKeyViolation(err) {
				return fmt.Errorf("settlement references: %w", storage.ErrNotFound)
			}
			return fmt.Errorf("failed to create settlement: %w", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to read settlement id: %w", err)
		}

		if err := requireMembers(ctx, tx, settlement.GroupID, settlement.PaidBy, settlement.PaidTo); err != nil {
			return err
		}
		settlement.ID = id
		return nil
	})
}

// GetSettlement retrieves a settlement by ID.
func (s *SQLiteStore) GetSettlement(ctx context.Context, settlementID int64) (*models.Settlement, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+settlementColumns+" FROM settlements WHERE id = ?", settlementID)
	settlement, err := scanSettlement(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("settlement %d: %w", settlementID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get settlement: %w", err)
	}
	return settlement, nil
}

// DeleteSettlement removes a settlement by ID.
func (s *SQLiteStore) DeleteSettlement(ctx context.Context, settlementID int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM settlements WHERE id = ?", settlementID)
	if err != nil {
		return fmt.Errorf("failed to delete settlement: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("settlement %d: %w", settlementID, storage.ErrNotFound)
	}
	return nil
}

// ListSettlementsByGroup retrieves all settlements for a group, newest first.
func (s *SQLiteStore) ListSettlementsByGroup(ctx context.Context, groupID int64) ([]*models.Settlement, error) {
	return listGroupSettlements(ctx, s.db, groupID)
}

func listGroupSettlements(ctx context.Context, q querier, groupID int64) ([]*models.Settlement, error) {
	return querySettlements(ctx, q,
		"SELECT "+settlementColumns+" FROM settlements WHERE group_id = ? ORDER BY created_at DESC, id DESC",
		groupID,
	)
}

// ListSettlementsPaidBy retrieves settlements the user paid, newest first.
func (s *SQLiteStore) ListSettlementsPaidBy(ctx context.Context, userID int64) ([]*models.Settlement, error) {
	return querySettlements(ctx, s.db,
		"SELECT "+settlementColumns+" FROM settlements WHERE paid_by = ? ORDER BY created_at DESC, id DESC",
		userID,
	)
}

// ListSettlementsReceivedBy retrieves settlements the user received, newest first.
func (s *SQLiteStore) ListSettlementsReceivedBy(ctx context.Context, userID int64) ([]*models.Settlement, error) {
	return querySettlements(ctx, s.db,
		"SELECT "+settlementColumns+" FROM settlements WHERE paid_to = ? ORDER BY created_at DESC, id DESC",
		userID,
	)
}

func querySettlements(ctx context.Context, q querier, query string, args ...any) ([]*models.Settlement, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list settlements: %w", err)
	}
	defer rows.Close()

	var settlements []*models.Settlement
	for rows.Next() {
		settlement, err := scanSettlement(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan settlement: %w", err)
		}
		settlements = append(settlements, settlement)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate settlements: %w", err)
	}
	return settlements, nil
}

func scanSettlement(row scanner) (*models.Settlement, error) {
	var settlement models.Settlement
	var createdAt int64
	if err := row.Scan(
		&settlement.ID, &settlement.GroupID, &settlement.PaidBy, &settlement.PaidTo,
		&settlement.Amount, &createdAt,
	); err != nil {
		return nil, err
	}
	settlement.CreatedAt = fromMillis(createdAt)
	return &settlement, nil
}
