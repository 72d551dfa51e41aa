package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ActivityKind distinguishes the entry types merged into an activity feed.
type ActivityKind string

const (
	ActivityExpense    ActivityKind = "expense"
	ActivityShare      ActivityKind = "share"
	ActivitySettlement ActivityKind = "settlement"
)

// Flow is the direction money moved from the viewing user's perspective.
type Flow string

const (
	FlowIn  Flow = "in"
	FlowOut Flow = "out"
)

// ActivityItem is one row of a user's activity feed. It is a derived view
// over expenses, splits and settlements and is never stored.
type ActivityItem struct {
	// Key is unique within one feed (e.g., "expense-12", "share-40").
	Key string

	Kind      ActivityKind
	Title     string
	Amount    decimal.Decimal
	Flow      Flow
	GroupID   *int64
	GroupName string
	Details   string
	Timestamp time.Time

	// EntryID is the ID of the underlying expense, split or settlement.
	EntryID int64
}
