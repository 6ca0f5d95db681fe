package split

import (
	"github.com/shopspring/decimal"

	"github.com/fkhayef/splitcore/internal/money"
)

// =============================================================================
// EQUAL SPLIT STRATEGY
// Divides the expense equally among all participants
// =============================================================================

// EqualStrategy implements the Strategy interface for equal splits
type EqualStrategy struct{}

// Type returns the split type identifier
func (s *EqualStrategy) Type() SplitType {
	return SplitTypeEqual
}

// Validate checks if the inputs are valid for an equal split
func (s *EqualStrategy) Validate(total decimal.Decimal, currency money.Currency, participants []Participant) error {
	return validateCommon(total, currency, participants)
}

// Calculate divides the total equally among all participants. Every share is
// the floored per-head amount at the currency's precision; the remainder is
// handed out one minor unit at a time to the first participants in order, so
// the shares sum exactly to the total and differ by at most one minor unit.
func (s *EqualStrategy) Calculate(total decimal.Decimal, currency money.Currency, participants []Participant) ([]Share, error) {
	if err := s.Validate(total, currency, participants); err != nil {
		return nil, err
	}

	n := decimal.NewFromInt(int64(len(participants)))
	base := currency.Floor(total.Div(n))
	remainder := total.Sub(base.Mul(n))
	unit := currency.MinorUnit()

	shares := make([]Share, len(participants))
	for i, p := range participants {
		amount := base
		if remainder.IsPositive() {
			amount = amount.Add(unit)
			remainder = remainder.Sub(unit)
		}
		shares[i] = Share{UserID: p.UserID, Amount: amount}
	}

	return shares, nil
}
