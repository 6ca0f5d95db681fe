package balance

import (
	"context"
	"log/slog"

	"github.com/fkhayef/splitcore/internal/expense"
	"github.com/fkhayef/splitcore/internal/ledger"
	"github.com/fkhayef/splitcore/internal/money"
	"github.com/fkhayef/splitcore/internal/settlement"
)

// SnapshotSource provides the current snapshot of a group's records. The
// persistence layer behind it is a collaborator concern; the service only
// needs a consistent read of non-deleted state at call time.
type SnapshotSource interface {
	Expenses(ctx context.Context, groupID string) ([]*expense.Expense, error)
	Settlements(ctx context.Context, groupID string) ([]*settlement.Settlement, error)
	Members(ctx context.Context, groupID string) ([]string, error)
}

// CurrencyBalances holds one currency's computed state for a group
type CurrencyBalances struct {
	Users           map[string]*ledger.UserBalance
	SimplifiedDebts []ledger.SimplifiedDebt
}

// GroupBalances is the full per-currency result for one group
type GroupBalances struct {
	GroupID    string
	Currencies map[money.Currency]*CurrencyBalances
}

// Service composes the ledger reducer and the debt simplifier into the
// "group balances" pipeline the rest of the application consumes
type Service struct {
	source SnapshotSource
	log    *slog.Logger
}

// NewService creates a new balance service with the snapshot source injected
func NewService(source SnapshotSource) *Service {
	return &Service{
		source: source,
		log:    slog.Default(),
	}
}

// GroupBalances fetches the group's snapshot, replays it into per-currency
// balances and computes simplified debts for every currency present. Each
// call is a pure function of the snapshot it reads; concurrent calls are safe
// and independent.
func (s *Service) GroupBalances(ctx context.Context, groupID string) (*GroupBalances, error) {
	expenses, err := s.source.Expenses(ctx, groupID)
	if err != nil {
		return nil, err
	}
	settlements, err := s.source.Settlements(ctx, groupID)
	if err != nil {
		return nil, err
	}
	members, err := s.source.Members(ctx, groupID)
	if err != nil {
		return nil, err
	}

	balances, err := ledger.Reduce(expenses, settlements, members)
	if err != nil {
		s.log.Error("ledger replay failed", "group_id", groupID, "error", err)
		return nil, err
	}

	result := &GroupBalances{
		GroupID:    groupID,
		Currencies: make(map[money.Currency]*CurrencyBalances, len(balances)),
	}
	for currency, users := range balances {
		debts, err := ledger.Simplify(balances.NetAmounts(currency), currency)
		if err != nil {
			s.log.Error("debt simplification failed", "group_id", groupID, "currency", currency, "error", err)
			return nil, err
		}
		result.Currencies[currency] = &CurrencyBalances{
			Users:           users,
			SimplifiedDebts: debts,
		}
	}

	s.log.Debug("computed group balances",
		"group_id", groupID,
		"expenses", len(expenses),
		"settlements", len(settlements),
		"currencies", len(result.Currencies),
	)
	return result, nil
}
