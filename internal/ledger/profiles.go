package ledger

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/khushthecoder/Expense-Splitter/internal/models"
	"github.com/khushthecoder/Expense-Splitter/internal/storage"
)

// Split modes a user may pick as their default.
var splitModes = map[string]bool{"exact": true, "equal": true, "weights": true, "percent": true}

var themes = map[string]bool{"light": true, "dark": true}

// DefaultSettings returns the settings of a user who never saved any.
func DefaultSettings(userID int64) *models.UserSettings {
	return &models.UserSettings{
		UserID:             userID,
		Theme:              "light",
		Language:           "en",
		Currency:           "USD",
		Timezone:           "UTC",
		EmailNotifications: true,
		PushNotifications:  true,
		DefaultSplitMode:   "equal",
	}
}

// SettingsInput is a partial settings update. Nil fields keep their current
// value.
type SettingsInput struct {
	Theme                *string
	Language             *string
	Currency             *string
	Timezone             *string
	EmailNotifications   *bool
	PushNotifications    *bool
	DefaultSplitMode     *string
	DefaultCategory      *string
	DefaultPaymentMethod *string
}

// ListUsers returns every registered user ordered by ID.
func (m *Manager) ListUsers(ctx context.Context) ([]*models.User, error) {
	users, err := m.store.ListUsers(ctx)
	if err != nil {
		return nil, fromStorage(err, "listing users failed")
	}
	return users, nil
}

// UpdateUser replaces a user's profile. The input is checked the same way
// as on registration.
func (m *Manager) UpdateUser(ctx context.Context, userID int64, in UserInput) (_ *models.User, err error) {
	ctx, span := m.start(ctx, "UpdateUser", attribute.Int64("ledger.user_id", userID))
	defer func() { m.finish(span, "update_user", err) }()

	user, err := in.normalize()
	if err != nil {
		return nil, err
	}
	user.ID = userID
	if err := m.store.UpdateUser(ctx, user); err != nil {
		if errors.Is(err, storage.ErrConflict) {
			return nil, &Error{Kind: KindDuplicateEmail, Message: fmt.Sprintf("email %s is already registered", user.Email), Err: err}
		}
		return nil, fromStorage(err, fmt.Sprintf("user %d not found", userID))
	}
	return user, nil
}

// AddFriend makes two users friends of each other and returns the friend.
func (m *Manager) AddFriend(ctx context.Context, userID, friendID int64) (_ *models.User, err error) {
	ctx, span := m.start(ctx, "AddFriend",
		attribute.Int64("ledger.user_id", userID),
		attribute.Int64("ledger.friend_id", friendID),
	)
	defer func() { m.finish(span, "add_friend", err) }()

	if userID == friendID {
		return nil, newError(KindSameParty, "users cannot befriend themselves")
	}
	if _, err := m.GetUser(ctx, userID); err != nil {
		return nil, err
	}
	friend, err := m.GetUser(ctx, friendID)
	if err != nil {
		return nil, err
	}

	if _, err := m.store.AddFriend(ctx, userID, friendID); err != nil {
		if errors.Is(err, storage.ErrConflict) {
			return nil, &Error{
				Kind:    KindDuplicateFriend,
				Message: fmt.Sprintf("users %d and %d are already friends", userID, friendID),
				Err:     err,
			}
		}
		return nil, fromStorage(err, fmt.Sprintf("user %d or %d not found", userID, friendID))
	}
	return friend, nil
}

// RemoveFriend ends a friendship, whichever side added it. Removing users
// who are not friends is not an error.
func (m *Manager) RemoveFriend(ctx context.Context, userID, friendID int64) (err error) {
	ctx, span := m.start(ctx, "RemoveFriend",
		attribute.Int64("ledger.user_id", userID),
		attribute.Int64("ledger.friend_id", friendID),
	)
	defer func() { m.finish(span, "remove_friend", err) }()

	if err := m.store.RemoveFriend(ctx, userID, friendID); err != nil {
		return fromStorage(err, "friend removal failed")
	}
	return nil
}

// Friends returns a user's friends ordered by ID.
func (m *Manager) Friends(ctx context.Context, userID int64) ([]*models.User, error) {
	if _, err := m.GetUser(ctx, userID); err != nil {
		return nil, err
	}
	friends, err := m.store.ListFriends(ctx, userID)
	if err != nil {
		return nil, fromStorage(err, "listing friends failed")
	}
	return friends, nil
}

// Settings returns a user's settings, or the defaults if none were saved.
func (m *Manager) Settings(ctx context.Context, userID int64) (*models.UserSettings, error) {
	if _, err := m.GetUser(ctx, userID); err != nil {
		return nil, err
	}
	st, err := m.store.GetSettings(ctx, userID)
	if errors.Is(err, storage.ErrNotFound) {
		return DefaultSettings(userID), nil
	}
	if err != nil {
		return nil, fromStorage(err, "reading settings failed")
	}
	return st, nil
}

// UpdateSettings applies a partial update on top of the user's current
// settings and saves the result.
func (m *Manager) UpdateSettings(ctx context.Context, userID int64, in SettingsInput) (_ *models.UserSettings, err error) {
	ctx, span := m.start(ctx, "UpdateSettings", attribute.Int64("ledger.user_id", userID))
	defer func() { m.finish(span, "update_settings", err) }()

	st, err := m.Settings(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := in.apply(st); err != nil {
		return nil, err
	}
	if err := m.store.SaveSettings(ctx, st); err != nil {
		return nil, fromStorage(err, fmt.Sprintf("user %d not found", userID))
	}
	return st, nil
}

func (in SettingsInput) apply(st *models.UserSettings) error {
	if in.Theme != nil {
		theme := strings.ToLower(strings.TrimSpace(*in.Theme))
		if !themes[theme] {
			return invalidArgument("unknown theme %q", *in.Theme)
		}
		st.Theme = theme
	}
	if in.Language != nil {
		lang := strings.TrimSpace(*in.Language)
		if lang == "" {
			return invalidArgument("language is required")
		}
		st.Language = lang
	}
	if in.Currency != nil {
		cur := strings.ToUpper(strings.TrimSpace(*in.Currency))
		if len(cur) != 3 || strings.Trim(cur, "ABCDEFGHIJKLMNOPQRSTUVWXYZ") != "" {
			return invalidArgument("invalid currency code %q", *in.Currency)
		}
		st.Currency = cur
	}
	if in.Timezone != nil {
		tz := strings.TrimSpace(*in.Timezone)
		if _, err := time.LoadLocation(tz); err != nil || tz == "" {
			return invalidArgument("unknown timezone %q", *in.Timezone)
		}
		st.Timezone = tz
	}
	if in.EmailNotifications != nil {
		st.EmailNotifications = *in.EmailNotifications
	}
	if in.PushNotifications != nil {
		st.PushNotifications = *in.PushNotifications
	}
	if in.DefaultSplitMode != nil {
		mode := strings.ToLower(strings.TrimSpace(*in.DefaultSplitMode))
		if !splitModes[mode] {
			return invalidArgument("unknown split mode %q", *in.DefaultSplitMode)
		}
		st.DefaultSplitMode = mode
	}
	if in.DefaultCategory != nil {
		st.DefaultCategory = strings.TrimSpace(*in.DefaultCategory)
	}
	if in.DefaultPaymentMethod != nil {
		st.DefaultPaymentMethod = strings.TrimSpace(*in.DefaultPaymentMethod)
	}
	return nil
}
