package ledger

import (
	"errors"

	"github.com/shopspring/decimal"

	"github.com/fkhayef/splitcore/internal/money"
)

// Common errors
var (
	ErrDataIntegrity        = errors.New("expense splits do not sum to its total")
	ErrConservationViolated = errors.New("net balances do not sum to zero")
)

// UserBalance is the per-user view of one currency's net-balance table
type UserBalance struct {
	UserID string
	Owes   map[string]decimal.Decimal // amount this user owes to each other user
	OwedBy map[string]decimal.Decimal // amount owed to this user by each other user
	Net    decimal.Decimal            // sum(OwedBy) - sum(Owes)
}

// SimplifiedDebt is one suggested payment that reduces the number of
// outstanding payment relationships in a group
type SimplifiedDebt struct {
	FromUserID string
	ToUserID   string
	Amount     decimal.Decimal
	Currency   money.Currency
}

// Balances maps currency -> user -> balance. Currencies are never combined;
// each entry is an independent ledger.
type Balances map[money.Currency]map[string]*UserBalance

// NetAmounts extracts the per-user net balances for one currency, the input
// the debt simplifier consumes
func (b Balances) NetAmounts(currency money.Currency) map[string]decimal.Decimal {
	users := b[currency]
	nets := make(map[string]decimal.Decimal, len(users))
	for id, ub := range users {
		nets[id] = ub.Net
	}
	return nets
}
