package ledger

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/fkhayef/splitcore/internal/expense"
	"github.com/fkhayef/splitcore/internal/money"
	"github.com/fkhayef/splitcore/internal/settlement"
)

// pairwise is one currency's debt table: debtor -> creditor -> amount
type pairwise map[string]map[string]decimal.Decimal

func (p pairwise) add(debtor, creditor string, amount decimal.Decimal) {
	if p[debtor] == nil {
		p[debtor] = make(map[string]decimal.Decimal)
	}
	p[debtor][creditor] = p[debtor][creditor].Add(amount)
}

// Reduce replays all expenses and settlements for a group into per-currency,
// per-user balance tables. Soft-deleted expenses are skipped. Group members
// with no activity in a currency still get an all-zero row so callers can
// show them as settled up; a currency with no activity at all is omitted.
func Reduce(expenses []*expense.Expense, settlements []*settlement.Settlement, memberIDs []string) (Balances, error) {
	tables := make(map[money.Currency]pairwise)
	table := func(c money.Currency) pairwise {
		if tables[c] == nil {
			tables[c] = make(pairwise)
		}
		return tables[c]
	}

	for _, e := range expenses {
		if e.IsDeleted() {
			continue
		}
		// Re-check the split engine's creation-time guarantee; the reducer
		// never silently drops money
		if !e.SplitSum().Equal(e.Amount) {
			return nil, fmt.Errorf("%w: expense %s sums to %s of %s",
				ErrDataIntegrity, e.ID, e.Currency.Format(e.SplitSum()), e.Currency.Format(e.Amount))
		}
		t := table(e.Currency)
		for _, s := range e.Splits {
			if s.UserID == e.PayerID {
				continue
			}
			t.add(s.UserID, e.PayerID, s.Amount)
		}
	}

	for _, s := range settlements {
		// A settlement reduces what the payer owes the payee. Overpayment
		// flips the pairwise sign; clamping at zero would break conservation
		// across the group.
		table(s.Currency).add(s.PayerID, s.PayeeID, s.Amount.Neg())
	}

	balances := make(Balances, len(tables))
	for currency, t := range tables {
		balances[currency] = aggregate(netPairs(t), memberIDs)
	}
	return balances, nil
}

// netPairs collapses mutual debts into a single directed entry per pair, in
// whichever direction the larger amount points. Entries driven negative by a
// settlement overpayment come out flipped.
func netPairs(t pairwise) pairwise {
	out := make(pairwise)
	done := make(map[[2]string]bool)
	for debtor, row := range t {
		for creditor := range row {
			a, b := debtor, creditor
			if a > b {
				a, b = b, a
			}
			key := [2]string{a, b}
			if done[key] {
				continue
			}
			done[key] = true

			net := t[a][b].Sub(t[b][a])
			switch {
			case net.IsPositive():
				out.add(a, b, net)
			case net.IsNegative():
				out.add(b, a, net.Neg())
			}
		}
	}
	return out
}

// aggregate derives the per-user view of a netted debt table
func aggregate(t pairwise, memberIDs []string) map[string]*UserBalance {
	users := make(map[string]*UserBalance)
	get := func(id string) *UserBalance {
		if users[id] == nil {
			users[id] = &UserBalance{
				UserID: id,
				Owes:   make(map[string]decimal.Decimal),
				OwedBy: make(map[string]decimal.Decimal),
				Net:    decimal.Zero,
			}
		}
		return users[id]
	}

	for _, id := range memberIDs {
		get(id)
	}

	for debtor, row := range t {
		for creditor, amount := range row {
			if amount.IsZero() {
				continue
			}
			get(debtor).Owes[creditor] = amount
			get(creditor).OwedBy[debtor] = amount
		}
	}

	for _, ub := range users {
		net := decimal.Zero
		for _, amount := range ub.OwedBy {
			net = net.Add(amount)
		}
		for _, amount := range ub.Owes {
			net = net.Sub(amount)
		}
		ub.Net = net
	}
	return users
}
