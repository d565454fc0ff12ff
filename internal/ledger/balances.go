// Package ledger computes member balances from recorded expenses.
//
// All functions are pure folds over a group snapshot: no state, no mutation of
// the input, cheap enough to run on every render. Sign convention: a positive
// balance means the member owes money into the group, a negative balance means
// the group owes them (they over-paid), zero means settled.
package ledger

import (
	"math"

	"splitbook/internal/models"
)

// UserTotalsResult aggregates one member's net position across all groups.
type UserTotalsResult struct {
	// TotalOwed is the sum of the user's positive balances (what they owe).
	TotalOwed float64 `json:"totalOwed"`

	// TotalReceived is the sum of the absolute values of the user's negative
	// balances (what they are owed).
	TotalReceived float64 `json:"totalReceived"`
}

// GroupBalances computes each member's signed net balance for one group.
//
// The result has exactly one entry per member. Expenses are folded in recorded
// order, though the result is order-independent since addition commutes:
//
//   - equal split: every member is charged amount/len(members); the payer is
//     additionally credited the full amount they fronted.
//   - custom split: each listed member is charged their assigned share; the
//     payer is charged share - amount. Members absent from the mapping are
//     unaffected, and entries naming non-members are skipped.
//
// The fold trusts stored data but never fails on it: custom splits that do not
// sum to the amount are consumed as-is (no re-normalization), and a payer who
// is not in the member list simply receives no credit entry.
func GroupBalances(group *models.Group) map[string]float64 {
	balances := make(map[string]float64, len(group.Members))
	for _, member := range group.Members {
		balances[member] = 0
	}

	for _, exp := range group.Expenses {
		switch exp.SplitType {
		case models.SplitEqual:
			if len(group.Members) == 0 {
				continue
			}
			share := exp.Amount / float64(len(group.Members))
			for _, member := range group.Members {
				if member == exp.Payer {
					balances[member] += share - exp.Amount
				} else {
					balances[member] += share
				}
			}
		case models.SplitCustom:
			for member, assigned := range exp.CustomSplit {
				if _, ok := balances[member]; !ok {
					continue
				}
				if member == exp.Payer {
					balances[member] += assigned - exp.Amount
				} else {
					balances[member] += assigned
				}
			}
		}
	}

	return balances
}

// UserTotals sums userName's net position across all groups. Positive group
// balances accumulate into TotalOwed, negative ones (as absolute values) into
// TotalReceived. Groups that do not list userName contribute nothing. Both
// totals are rounded to 2 decimal places once at the end, not per group, so
// per-group rounding error cannot compound.
func UserTotals(groups []models.Group, userName string) UserTotalsResult {
	var owed, received float64

	for i := range groups {
		balance, ok := GroupBalances(&groups[i])[userName]
		if !ok {
			continue
		}
		if balance > 0 {
			owed += balance
		} else if balance < 0 {
			received += -balance
		}
	}

	return UserTotalsResult{
		TotalOwed:     round2(owed),
		TotalReceived: round2(received),
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
