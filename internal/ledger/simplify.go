package ledger

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/fkhayef/splitcore/internal/money"
)

// party is one entry in a simplification queue
type party struct {
	userID    string
	remaining decimal.Decimal
}

// Simplify computes a minimal list of directed payments that, if all made,
// would bring every user's net balance in one currency to exactly zero.
//
// Greedy largest-pair matching: repeatedly pair the largest creditor with the
// largest debtor and settle min(creditor, debtor) between them. Emits at most
// n-1 payments for n users with nonzero balance. Ties are broken by user id
// ascending so identical input always produces the same ordered output.
//
// Input balances that do not sum to zero indicate an upstream bug, never a
// condition to paper over, so they fail fast.
func Simplify(balances map[string]decimal.Decimal, currency money.Currency) ([]SimplifiedDebt, error) {
	sum := decimal.Zero
	var creditors, debtors []party
	for id, net := range balances {
		sum = sum.Add(net)
		switch {
		case net.IsPositive():
			creditors = append(creditors, party{userID: id, remaining: net})
		case net.IsNegative():
			debtors = append(debtors, party{userID: id, remaining: net.Neg()})
		}
	}
	if !sum.IsZero() {
		return nil, fmt.Errorf("%w: %s balances sum to %s", ErrConservationViolated, currency, sum)
	}

	var debts []SimplifiedDebt
	for len(creditors) > 0 && len(debtors) > 0 {
		sortQueue(creditors)
		sortQueue(debtors)

		creditor, debtor := &creditors[0], &debtors[0]
		payment := decimal.Min(creditor.remaining, debtor.remaining)
		debts = append(debts, SimplifiedDebt{
			FromUserID: debtor.userID,
			ToUserID:   creditor.userID,
			Amount:     payment,
			Currency:   currency,
		})

		creditor.remaining = creditor.remaining.Sub(payment)
		debtor.remaining = debtor.remaining.Sub(payment)
		if creditor.remaining.IsZero() {
			creditors = creditors[1:]
		}
		if debtor.remaining.IsZero() {
			debtors = debtors[1:]
		}
	}

	return debts, nil
}

// sortQueue orders a queue by remaining amount descending, then user id
// ascending
func sortQueue(q []party) {
	sort.Slice(q, func(i, j int) bool {
		if !q[i].remaining.Equal(q[j].remaining) {
			return q[i].remaining.GreaterThan(q[j].remaining)
		}
		return q[i].userID < q[j].userID
	})
}
