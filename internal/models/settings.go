package models

import "time"

// UserSettings holds a user's display and notification preferences.
type UserSettings struct {
	UserID int64

	// Theme is "light" or "dark".
	Theme string

	Language string

	// Currency is an ISO 4217 code such as "USD".
	Currency string

	// Timezone is an IANA zone name such as "Asia/Kolkata".
	Timezone string

	EmailNotifications bool
	PushNotifications  bool

	// DefaultSplitMode preselects how new expenses are split.
	DefaultSplitMode string

	DefaultCategory      string
	DefaultPaymentMethod string

	// UpdatedAt is zero for settings that were never saved.
	UpdatedAt time.Time
}
