package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense records that one user paid an amount on behalf of others.
type Expense struct {
	// ID is assigned by the store on creation.
	ID int64

	// GroupID is the group the expense belongs to.
	// Nil marks a personal expense between individual users.
	GroupID *int64

	// PaidBy is the ID of the user who paid.
	PaidBy int64

	// Amount is the total paid. Always positive.
	Amount decimal.Decimal

	// Description is free text (e.g., "Dinner").
	Description string

	// CreatedAt is when the expense was recorded.
	CreatedAt time.Time

	// Splits attribute portions of Amount to the users who owe them.
	// Shares are expected, but not required, to sum to Amount.
	Splits []Split
}

// Split is the share of one expense owed by one user.
type Split struct {
	ID        int64
	ExpenseID int64
	UserID    int64
	Share     decimal.Decimal
}

// InGroup reports whether the expense belongs to the given group.
func (e *Expense) InGroup(groupID int64) bool {
	return e.GroupID != nil && *e.GroupID == groupID
}

// SplitTotal returns the sum of all split shares.
func (e *Expense) SplitTotal() decimal.Decimal {
	total := decimal.Zero
	for _, s := range e.Splits {
		total = total.Add(s.Share)
	}
	return total
}

// ExpenseShare is one user's split together with the expense it belongs to.
// Used by read-side projections such as the activity feed.
type ExpenseShare struct {
	Split   Split
	Expense Expense
}
