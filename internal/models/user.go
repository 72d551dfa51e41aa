package models

import "time"

// User represents a registered person who can join groups and take part in
// expenses and settlements.
type User struct {
	// ID is assigned by the store on creation.
	ID int64

	// Name is the display name of the user.
	Name string

	// Email is unique across all users.
	Email string

	// Phone is an optional contact number.
	Phone string

	// CreatedAt is when the user was registered.
	CreatedAt time.Time
}
