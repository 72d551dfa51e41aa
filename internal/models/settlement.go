package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Settlement represents a payment between group members to clear debts.
type Settlement struct {
	// ID is assigned by the store on creation.
	ID int64

	// GroupID is the group this settlement belongs to.
	GroupID int64

	// PaidBy is the user who paid (debtor settling up).
	PaidBy int64

	// PaidTo is the user who received payment (creditor being paid).
	// Never equal to PaidBy.
	PaidTo int64

	// Amount is the payment amount. Always positive.
	Amount decimal.Decimal

	// CreatedAt is when the settlement was recorded.
	CreatedAt time.Time
}
