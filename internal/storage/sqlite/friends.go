package sqlite

import (
	"context"
	"fmt"

	"github.com/khushthecoder/Expense-Splitter/internal/models"
	"github.com/khushthecoder/Expense-Splitter/internal/storage"
)

// orderedPair returns a and b with the lower ID first.
func orderedPair(a, b int64) (int64, int64) {
	if a > b {
		return b, a
	}
	return a, b
}

// AddFriend records a friendship between two distinct users.
func (s *SQLiteStore) AddFriend(ctx context.Context, userID, friendID int64) (*models.Friendship, error) {
	lo, hi := orderedPair(userID, friendID)
	friendship := &models.Friendship{UserID: lo, FriendID: hi, CreatedAt: now()}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO friendships (user_id, friend_id, created_at) VALUES (?, ?, ?)",
		lo, hi, toMillis(friendship.CreatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("friendship %d/%d: %w", lo, hi, storage.ErrConflict)
		}
		if isForeignKeyViolation(err) {
			return nil, fmt.Errorf("user %d or %d: %w", lo, hi, storage.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to add friend: %w", err)
	}
	return friendship, nil
}

// RemoveFriend deletes the friendship between two users, whichever of them
// added it. Absent friendships are not an error.
func (s *SQLiteStore) RemoveFriend(ctx context.Context, userID, friendID int64) error {
	lo, hi := orderedPair(userID, friendID)
	_, err := s.db.ExecContext(ctx,
		"DELETE FROM friendships WHERE user_id = ? AND friend_id = ?",
		lo, hi,
	)
	if err != nil {
		return fmt.Errorf("failed to remove friend: %w", err)
	}
	return nil
}

// ListFriends lists the users befriended with userID, ordered by ID.
func (s *SQLiteStore) ListFriends(ctx context.Context, userID int64) ([]*models.User, error) {
	return queryUsers(ctx, s.db,
		`SELECT u.id, u.name, u.email, u.phone, u.created_at
		 FROM friendships f
		 JOIN users u ON u.id = CASE WHEN f.user_id = ? THEN f.friend_id ELSE f.user_id END
		 WHERE f.user_id = ? OR f.friend_id = ?
		 ORDER BY u.id`,
		userID, userID, userID,
	)
}
