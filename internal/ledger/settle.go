package ledger

import "sort"

// Transfer represents a suggested payment from one member to another.
type Transfer struct {
	// From is the member who owes.
	From string `json:"from"`

	// To is the member who is owed.
	To string `json:"to"`

	// Amount is the suggested payment amount.
	Amount float64 `json:"amount"`
}

// SuggestSettlements turns a balance mapping into a small list of transfers
// that would settle the group. Debtors (positive balances) are greedily
// matched against creditors (negative balances), largest unsettled pair first
// by name order, so the output is deterministic for a given input. Transfers
// below one cent are dropped as floating point noise.
//
// The suggestions are display-only: nothing is recorded, and the underlying
// balances are not modified.
func SuggestSettlements(balances map[string]float64) []Transfer {
	var debtors, creditors []string
	owes := make(map[string]float64)
	owed := make(map[string]float64)

	for member, balance := range balances {
		if balance > 0 {
			debtors = append(debtors, member)
			owes[member] = balance
		} else if balance < 0 {
			creditors = append(creditors, member)
			owed[member] = -balance
		}
	}
	sort.Strings(debtors)
	sort.Strings(creditors)

	var transfers []Transfer
	i, j := 0, 0
	for i < len(debtors) && j < len(creditors) {
		debtor, creditor := debtors[i], creditors[j]

		amount := owes[debtor]
		if owed[creditor] < amount {
			amount = owed[creditor]
		}

		if amount > 0.01 {
			transfers = append(transfers, Transfer{
				From:   debtor,
				To:     creditor,
				Amount: amount,
			})
		}

		owes[debtor] -= amount
		owed[creditor] -= amount

		if owes[debtor] < 0.01 {
			i++
		}
		if owed[creditor] < 0.01 {
			j++
		}
	}

	return transfers
}
