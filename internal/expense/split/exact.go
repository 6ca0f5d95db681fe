package split

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/fkhayef/splitcore/internal/money"
)

// =============================================================================
// EXACT SPLIT STRATEGY
// Each participant owes a specific exact amount (must sum to total)
// =============================================================================

// ExactStrategy implements the Strategy interface for exact amount splits
type ExactStrategy struct{}

// Type returns the split type identifier
func (s *ExactStrategy) Type() SplitType {
	return SplitTypeExact
}

// Validate checks if the inputs are valid for an exact split
func (s *ExactStrategy) Validate(total decimal.Decimal, currency money.Currency, participants []Participant) error {
	if err := validateCommon(total, currency, participants); err != nil {
		return err
	}

	sum := decimal.Zero
	for _, p := range participants {
		if p.Amount == nil {
			return fmt.Errorf("%w: user %s", ErrMissingAmount, p.UserID)
		}
		if p.Amount.IsNegative() {
			return fmt.Errorf("%w: negative share for user %s", ErrInvalidAmount, p.UserID)
		}
		if !currency.Round(*p.Amount).Equal(*p.Amount) {
			return fmt.Errorf("%w: %s has more precision than %s allows", ErrInvalidAmount, p.Amount, currency)
		}
		sum = sum.Add(*p.Amount)
	}

	if !sum.Equal(total) {
		return fmt.Errorf("%w: amounts sum to %s, expected %s", ErrSplitMismatch, currency.Format(sum), currency.Format(total))
	}

	return nil
}

// Calculate returns the caller-specified amounts unchanged. Exactness is
// enforced by validation, not by adjustment.
func (s *ExactStrategy) Calculate(total decimal.Decimal, currency money.Currency, participants []Participant) ([]Share, error) {
	if err := s.Validate(total, currency, participants); err != nil {
		return nil, err
	}

	shares := make([]Share, len(participants))
	for i, p := range participants {
		shares[i] = Share{UserID: p.UserID, Amount: *p.Amount}
	}

	return shares, nil
}
