package calculator

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sumShares(shares []Share) decimal.Decimal {
	total := decimal.Zero
	for _, s := range shares {
		total = total.Add(s.Amount)
	}
	return total
}

func TestSplitEqually(t *testing.T) {
	tests := []struct {
		name         string
		amount       string
		participants []int64
		want         []string
		wantErr      error
	}{
		{
			name:         "even split",
			amount:       "90",
			participants: []int64{alice, bob, carol},
			want:         []string{"30", "30", "30"},
		},
		{
			name:         "leftover cent goes to the first participant",
			amount:       "100",
			participants: []int64{alice, bob, carol},
			want:         []string{"33.34", "33.33", "33.33"},
		},
		{
			name:         "two leftover cents",
			amount:       "0.05",
			participants: []int64{alice, bob, carol},
			want:         []string{"0.02", "0.02", "0.01"},
		},
		{
			name:         "single participant takes everything",
			amount:       "12.99",
			participants: []int64{dave},
			want:         []string{"12.99"},
		},
		{
			name:         "no participants",
			amount:       "10",
			participants: nil,
			wantErr:      ErrNoParticipants,
		},
		{
			name:         "zero amount",
			amount:       "0",
			participants: []int64{alice},
			wantErr:      ErrNonPositiveAmount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shares, err := SplitEqually(dec(tt.amount), tt.participants)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Len(t, shares, len(tt.want))
			for i, w := range tt.want {
				assert.Equal(t, tt.participants[i], shares[i].UserID)
				assert.True(t, dec(w).Equal(shares[i].Amount), "share %d: want %s, got %s", i, w, shares[i].Amount)
			}
			assert.True(t, sumShares(shares).Equal(dec(tt.amount)))
		})
	}
}

func TestSplitByWeights(t *testing.T) {
	shares, err := SplitByWeights(dec("100"), []Weight{
		{UserID: alice, Weight: dec("2")},
		{UserID: bob, Weight: dec("1")},
		{UserID: carol, Weight: dec("0")},
	})
	require.NoError(t, err)
	require.Len(t, shares, 3)

	assert.True(t, dec("66.67").Equal(shares[0].Amount), "alice got %s", shares[0].Amount)
	assert.True(t, dec("33.33").Equal(shares[1].Amount), "bob got %s", shares[1].Amount)
	assert.True(t, shares[2].Amount.IsZero(), "zero weight must get nothing, got %s", shares[2].Amount)
	assert.True(t, sumShares(shares).Equal(dec("100")))

	_, err = SplitByWeights(dec("10"), []Weight{{UserID: alice, Weight: dec("-1")}})
	assert.ErrorIs(t, err, ErrNegativeWeight)

	_, err = SplitByWeights(dec("10"), []Weight{{UserID: alice, Weight: decimal.Zero}})
	assert.ErrorIs(t, err, ErrZeroWeight)
}

func TestSplitByPercent(t *testing.T) {
	shares, err := SplitByPercent(dec("80"), []Weight{
		{UserID: alice, Weight: dec("50")},
		{UserID: bob, Weight: dec("25")},
		{UserID: carol, Weight: dec("25")},
	})
	require.NoError(t, err)
	assert.True(t, dec("40").Equal(shares[0].Amount))
	assert.True(t, dec("20").Equal(shares[1].Amount))
	assert.True(t, dec("20").Equal(shares[2].Amount))

	_, err = SplitByPercent(dec("80"), []Weight{
		{UserID: alice, Weight: dec("50")},
		{UserID: bob, Weight: dec("40")},
	})
	assert.ErrorIs(t, err, ErrPercentTotal)
}

func TestSplitByWeights_SubCentAmount(t *testing.T) {
	shares, err := SplitEqually(dec("10.005"), []int64{alice, bob})
	require.NoError(t, err)
	assert.True(t, sumShares(shares).Equal(dec("10.005")), "sum = %s", sumShares(shares))
}
