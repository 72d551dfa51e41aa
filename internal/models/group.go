package models

import "time"

// Group is a set of users sharing expenses.
type Group struct {
	// ID is assigned by the store on creation.
	ID int64

	// Name is the display name of the group (e.g., "Roommates", "Trip to Goa").
	Name string

	// Description is free text shown alongside the name.
	Description string

	// CreatedBy is the ID of the user who created the group.
	// The creator is added as the first member.
	CreatedBy int64

	// CreatedAt is when the group was created.
	CreatedAt time.Time
}

// Membership links a user to a group. A (GroupID, UserID) pair is unique.
type Membership struct {
	GroupID  int64
	UserID   int64
	JoinedAt time.Time
}
