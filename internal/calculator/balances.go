package calculator

import (
	"sort"

	"github.com/shopspring/decimal"
)

// ExpenseForBalance represents an expense with the minimal information needed for balance calculations.
type ExpenseForBalance struct {
	PaidBy int64
	Amount decimal.Decimal
	Splits []SplitForBalance
}

// SplitForBalance is one user's share of an expense.
type SplitForBalance struct {
	UserID int64
	Share  decimal.Decimal
}

// SettlementForBalance represents a settlement with the minimal information needed for balance calculations.
type SettlementForBalance struct {
	PaidBy int64 // Who paid (debtor settling up)
	PaidTo int64 // Who received (creditor being paid)
	Amount decimal.Decimal
}

// Balances maps user ID to net balance.
// Positive = owed money, Negative = owes money, Zero = settled.
type Balances map[int64]decimal.Decimal

// MemberBalance represents the balance breakdown for one user.
type MemberBalance struct {
	UserID     int64
	NetBalance decimal.Decimal // Positive = owed money, Negative = owes money
	TotalPaid  decimal.Decimal // Sum of expense amounts this user paid
	TotalOwed  decimal.Decimal // Sum of split shares attributed to this user
	SettledOut decimal.Decimal // Settlements this user paid
	SettledIn  decimal.Decimal // Settlements this user received
}

// ComputeBalances folds expenses and settlements into net balances.
//
// Algorithm:
//   - Every payer, split user, settlement payer and receiver starts at zero
//   - For each expense: payer +amount, each split user -share
//   - For each settlement: payer +amount, receiver -amount
//
// The fold is order independent and never fails. It does not check that
// splits sum to the expense amount, nor that amounts are positive.
func ComputeBalances(expenses []ExpenseForBalance, settlements []SettlementForBalance) Balances {
	balances := make(Balances)
	for _, m := range Summarize(expenses, settlements) {
		balances[m.UserID] = m.NetBalance
	}
	return balances
}

// Summarize computes the per-user breakdown behind ComputeBalances.
// Results are ordered by user ID.
func Summarize(expenses []ExpenseForBalance, settlements []SettlementForBalance) []MemberBalance {
	members := make(map[int64]*MemberBalance)
	get := func(userID int64) *MemberBalance {
		m, ok := members[userID]
		if !ok {
			m = &MemberBalance{UserID: userID}
			members[userID] = m
		}
		return m
	}

	for _, e := range expenses {
		payer := get(e.PaidBy)
		payer.TotalPaid = payer.TotalPaid.Add(e.Amount)

		// Duplicate split users accumulate.
		for _, s := range e.Splits {
			debtor := get(s.UserID)
			debtor.TotalOwed = debtor.TotalOwed.Add(s.Share)
		}
	}

	for _, s := range settlements {
		payer := get(s.PaidBy)
		payer.SettledOut = payer.SettledOut.Add(s.Amount)

		receiver := get(s.PaidTo)
		receiver.SettledIn = receiver.SettledIn.Add(s.Amount)
	}

	result := make([]MemberBalance, 0, len(members))
	for _, m := range members {
		// Paying a settlement raises the payer toward zero: B at -30 who pays
		// A 30 ends at 0, and A drops from 60 to 30.
		m.NetBalance = m.TotalPaid.Sub(m.TotalOwed).Add(m.SettledOut).Sub(m.SettledIn)
		result = append(result, *m)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].UserID < result[j].UserID })
	return result
}

// Seed adds a zero entry for each user not already present.
// Group balance views list every member, including those with no entries.
func (b Balances) Seed(userIDs ...int64) Balances {
	for _, id := range userIDs {
		if _, ok := b[id]; !ok {
			b[id] = decimal.Zero
		}
	}
	return b
}

// Get returns the balance of a user, or zero when absent.
func (b Balances) Get(userID int64) decimal.Decimal {
	if v, ok := b[userID]; ok {
		return v
	}
	return decimal.Zero
}

// Sum returns the total of all balances. For ledgers whose splits sum to
// their expense amounts, this is zero.
func (b Balances) Sum() decimal.Decimal {
	total := decimal.Zero
	for _, v := range b {
		total = total.Add(v)
	}
	return total
}

// UserIDs returns the users in the map in ascending order.
func (b Balances) UserIDs() []int64 {
	ids := make([]int64, 0, len(b))
	for id := range b {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Total returns the sum of the balances of the given users.
func (b Balances) Total(userIDs ...int64) decimal.Decimal {
	total := decimal.Zero
	for _, id := range userIDs {
		total = total.Add(b.Get(id))
	}
	return total
}
