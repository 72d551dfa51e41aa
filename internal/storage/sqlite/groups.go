package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/khushthecoder/Expense-Splitter/internal/models"
	"github.com/khushthecoder/Expense-Splitter/internal/storage"
)

const groupColumns = "g.id, g.name, g.description, g.created_by, g.created_at"

// CreateGroup persists a new group and makes its creator, then each of
// memberIDs, a member.
func (s *SQLiteStore) CreateGroup(ctx context.Context, group *models.Group, memberIDs ...int64) error {
	if group.CreatedAt.IsZero() {
		group.CreatedAt = now()
	}

	return s.inTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx,
			"INSERT INTO groups (name, description, created_by, created_at) VALUES (?, ?, ?, ?)",
			group.Name, group.Description, group.CreatedBy, toMillis(group.CreatedAt),
		)
		if err != nil {
			if isForeignKeyViolation(err) {
				return fmt.Errorf("creator %d: %w", group.CreatedBy, storage.ErrNotFound)
			}
			return fmt.Errorf("failed to insert group: %w", err)
		}

		group.ID, err = res.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to read group id: %w", err)
		}

		seen := make(map[int64]bool, len(memberIDs)+1)
		for _, userID := range append([]int64{group.CreatedBy}, memberIDs...) {
			if seen[userID] {
				continue
			}
			seen[userID] = true

			_, err = tx.ExecContext(ctx,
				"INSERT INTO group_members (group_id, user_id, joined_at) VALUES (?, ?, ?)",
				group.ID, userID, toMillis(group.CreatedAt),
			)
			if err != nil {
				if isForeignKeyViolation(err) {
					return fmt.Errorf("member %d: %w", userID, storage.ErrNotFound)
				}
				return fmt.Errorf("failed to insert membership: %w", err)
			}
		}
		return nil
	})
}

// GetGroup retrieves a group by ID.
func (s *SQLiteStore) GetGroup(ctx context.Context, groupID int64) (*models.Group, error) {
	return getGroup(ctx, s.db, groupID)
}

func getGroup(ctx context.Context, q querier, groupID int64) (*models.Group, error) {
	row := q.QueryRowContext(ctx, "SELECT "+groupColumns+" FROM groups g WHERE g.id = ?", groupID)
	group, err := scanGroup(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("group %d: %w", groupID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get group: %w", err)
	}
	return group, nil
}

// GroupsByIDs retrieves multiple groups by their IDs.
func (s *SQLiteStore) GroupsByIDs(ctx context.Context, ids []int64) (map[int64]*models.Group, error) {
	groups := make(map[int64]*models.Group, len(ids))
	if len(ids) == 0 {
		return groups, nil
	}

	list, err := queryGroups(ctx, s.db,
		"SELECT "+groupColumns+" FROM groups g WHERE g.id IN ("+placeholders(len(ids))+")",
		int64Args(ids)...,
	)
	if err != nil {
		return nil, err
	}
	for _, g := range list {
		groups[g.ID] = g
	}
	return groups, nil
}

// ListGroupsByUser lists the groups a user belongs to, newest first.
func (s *SQLiteStore) ListGroupsByUser(ctx context.Context, userID int64) ([]*models.Group, error) {
	return queryGroups(ctx, s.db,
		`SELECT `+groupColumns+`
		 FROM groups g
		 JOIN group_members m ON m.group_id = g.id
		 WHERE m.user_id = ?
		 ORDER BY g.created_at DESC, g.id DESC`,
		userID,
	)
}

func queryGroups(ctx context.Context, q querier, query string, args ...any) ([]*models.Group, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}
	defer rows.Close()

	var groups []*models.Group
	for rows.Next() {
		group, err := scanGroup(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan group: %w", err)
		}
		groups = append(groups, group)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate groups: %w", err)
	}
	return groups, nil
}

func scanGroup(row scanner) (*models.Group, error) {
	group := &models.Group{}
	var createdAt int64
	if err := row.Scan(&group.ID, &group.Name, &group.Description, &group.CreatedBy, &createdAt); err != nil {
		return nil, err
	}
	group.CreatedAt = fromMillis(createdAt)
	return group, nil
}

// AddMember inserts a membership row.
func (s *SQLiteStore) AddMember(ctx context.Context, groupID, userID int64) (*models.Membership, error) {
	membership := &models.Membership{GroupID: groupID, UserID: userID, JoinedAt: now()}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO group_members (group_id, user_id, joined_at) VALUES (?, ?, ?)",
		groupID, userID, toMillis(membership.JoinedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("membership %d/%d: %w", groupID, userID, storage.ErrConflict)
		}
		if isForeignKeyViolation(err) {
			return nil, fmt.Errorf("group %d or user %d: %w", groupID, userID, storage.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to add member: %w", err)
	}
	return membership, nil
}

// RemoveMember deletes a membership row if present.
func (s *SQLiteStore) RemoveMember(ctx context.Context, groupID, userID int64) error {
	_, err := s.db.ExecContext(ctx,
		"DELETE FROM group_members WHERE group_id = ? AND user_id = ?",
		groupID, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to remove member: %w", err)
	}
	return nil
}

// IsMember reports whether the user belongs to the group.
func (s *SQLiteStore) IsMember(ctx context.Context, groupID, userID int64) (bool, error) {
	var exists int
	err := s.db.QueryRowContext(ctx,
		"SELECT 1 FROM group_members WHERE group_id = ? AND user_id = ?",
		groupID, userID,
	).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check membership: %w", err)
	}
	return true, nil
}

// ListMembers lists a group's memberships ordered by user ID.
func (s *SQLiteStore) ListMembers(ctx context.Context, groupID int64) ([]models.Membership, error) {
	return listMembers(ctx, s.db, groupID)
}

func listMembers(ctx context.Context, q querier, groupID int64) ([]models.Membership, error) {
	rows, err := q.QueryContext(ctx,
		"SELECT group_id, user_id, joined_at FROM group_members WHERE group_id = ? ORDER BY user_id",
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	defer rows.Close()

	var members []models.Membership
	for rows.Next() {
		var m models.Membership
		var joinedAt int64
		if err := rows.Scan(&m.GroupID, &m.UserID, &joinedAt); err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		m.JoinedAt = fromMillis(joinedAt)
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate members: %w", err)
	}
	return members, nil
}

// requireMembers returns a *storage.NotAMemberError for the first of userIDs,
// in order, that does not belong to the group as seen by q.
func requireMembers(ctx context.Context, q querier, groupID int64, userIDs ...int64) error {
	if len(userIDs) == 0 {
		return nil
	}
	rows, err := q.QueryContext(ctx,
		"SELECT user_id FROM group_members WHERE group_id = ? AND user_id IN ("+placeholders(len(userIDs))+")",
		append([]any{groupID}, int64Args(userIDs)...)...,
	)
	if err != nil {
		return fmt.Errorf("failed to check membership: %w", err)
	}
	defer rows.Close()

	members := make(map[int64]bool, len(userIDs))
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return fmt.Errorf("failed to scan member: %w", err)
		}
		members[id] = true
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate members: %w", err)
	}

	for _, id := range userIDs {
		if !members[id] {
			return &storage.NotAMemberError{GroupID: groupID, UserID: id}
		}
	}
	return nil
}
