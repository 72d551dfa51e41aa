package calculator

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	ErrNonPositiveAmount = errors.New("amount must be greater than zero")
	ErrNoParticipants    = errors.New("must have at least one participant")
	ErrNegativeWeight    = errors.New("weights cannot be negative")
	ErrZeroWeight        = errors.New("weights must not all be zero")
	ErrPercentTotal      = errors.New("percentages must add up to 100")
)

var (
	cent       = decimal.New(1, -2)
	oneHundred = decimal.NewFromInt(100)
)

// Weight assigns a relative portion of an amount to a user.
type Weight struct {
	UserID int64
	Weight decimal.Decimal
}

// Share is the computed portion of an amount owed by a user.
type Share struct {
	UserID int64
	Amount decimal.Decimal
}

// SplitEqually divides amount evenly among participants.
func SplitEqually(amount decimal.Decimal, participants []int64) ([]Share, error) {
	weights := make([]Weight, len(participants))
	for i, p := range participants {
		weights[i] = Weight{UserID: p, Weight: decimal.NewFromInt(1)}
	}
	return SplitByWeights(amount, weights)
}

// SplitByPercent divides amount by percentages that must add up to 100.
func SplitByPercent(amount decimal.Decimal, percents []Weight) ([]Share, error) {
	total := decimal.Zero
	for _, p := range percents {
		total = total.Add(p.Weight)
	}
	if len(percents) > 0 && !total.Equal(oneHundred) {
		return nil, fmt.Errorf("%w: got %s", ErrPercentTotal, total)
	}
	return SplitByWeights(amount, percents)
}

// SplitByWeights divides amount proportionally to the given weights.
//
// Each share is rounded down to the cent, then the leftover cents are handed
// out one at a time in input order, so the shares always add up to amount
// exactly.
func SplitByWeights(amount decimal.Decimal, weights []Weight) ([]Share, error) {
	if !amount.IsPositive() {
		return nil, ErrNonPositiveAmount
	}
	if len(weights) == 0 {
		return nil, ErrNoParticipants
	}

	totalWeight := decimal.Zero
	for _, w := range weights {
		if w.Weight.IsNegative() {
			return nil, ErrNegativeWeight
		}
		totalWeight = totalWeight.Add(w.Weight)
	}
	if totalWeight.IsZero() {
		return nil, ErrZeroWeight
	}

	shares := make([]Share, len(weights))
	allocated := decimal.Zero
	for i, w := range weights {
		portion := amount.Mul(w.Weight).DivRound(totalWeight, 8).RoundDown(2)
		shares[i] = Share{UserID: w.UserID, Amount: portion}
		allocated = allocated.Add(portion)
	}

	remainder := amount.Sub(allocated)
	for i := 0; remainder.GreaterThanOrEqual(cent); i = (i + 1) % len(shares) {
		if weights[i].Weight.IsZero() {
			continue
		}
		shares[i].Amount = shares[i].Amount.Add(cent)
		remainder = remainder.Sub(cent)
	}
	// Sub-cent leftovers only occur when amount itself has more than two
	// decimal places.
	if !remainder.IsZero() {
		for i := range shares {
			if !weights[i].Weight.IsZero() {
				shares[i].Amount = shares[i].Amount.Add(remainder)
				break
			}
		}
	}

	return shares, nil
}
