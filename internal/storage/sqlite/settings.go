package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/khushthecoder/Expense-Splitter/internal/models"
	"github.com/khushthecoder/Expense-Splitter/internal/storage"
)

const settingsColumns = `user_id, theme, language, currency, timezone, email_notifications,
	push_notifications, default_split_mode, default_category, default_payment_method, updated_at`

// GetSettings retrieves a user's saved settings.
func (s *SQLiteStore) GetSettings(ctx context.Context, userID int64) (*models.UserSettings, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+settingsColumns+" FROM user_settings WHERE user_id = ?", userID)

	st := &models.UserSettings{}
	var updatedAt int64
	err := row.Scan(&st.UserID, &st.Theme, &st.Language, &st.Currency, &st.Timezone,
		&st.EmailNotifications, &st.PushNotifications,
		&st.DefaultSplitMode, &st.DefaultCategory, &st.DefaultPaymentMethod, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("settings for user %d: %w", userID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}
	st.UpdatedAt = fromMillis(updatedAt)
	return st, nil
}

// SaveSettings inserts or replaces a user's settings.
func (s *SQLiteStore) SaveSettings(ctx context.Context, st *models.UserSettings) error {
	st.UpdatedAt = now()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO user_settings (`+settingsColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (user_id) DO UPDATE SET
			theme = excluded.theme,
			language = excluded.language,
			currency = excluded.currency,
			timezone = excluded.timezone,
			email_notifications = excluded.email_notifications,
			push_notifications = excluded.push_notifications,
			default_split_mode = excluded.default_split_mode,
			default_category = excluded.default_category,
			default_payment_method = excluded.default_payment_method,
			updated_at = excluded.updated_at`,
		st.UserID, st.Theme, st.Language, st.Currency, st.Timezone,
		st.EmailNotifications, st.PushNotifications,
		st.DefaultSplitMode, st.DefaultCategory, st.DefaultPaymentMethod, toMillis(st.UpdatedAt),
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("user %d: %w", st.UserID, storage.ErrNotFound)
		}
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}
