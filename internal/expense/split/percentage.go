package split

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/fkhayef/splitcore/internal/money"
)

// =============================================================================
// PERCENTAGE SPLIT STRATEGY
// Divides the expense based on specified percentages for each participant
// =============================================================================

// percentTolerance allows for rounding in caller-supplied percentages
// (99.99 to 100.01 is accepted)
var percentTolerance = decimal.New(1, -2)

var oneHundred = decimal.NewFromInt(100)

// PercentageStrategy implements the Strategy interface for percentage-based splits
type PercentageStrategy struct{}

// Type returns the split type identifier
func (s *PercentageStrategy) Type() SplitType {
	return SplitTypePercentage
}

// Validate checks if the inputs are valid for a percentage split
func (s *PercentageStrategy) Validate(total decimal.Decimal, currency money.Currency, participants []Participant) error {
	if err := validateCommon(total, currency, participants); err != nil {
		return err
	}

	sum := decimal.Zero
	for _, p := range participants {
		if p.Percentage == nil {
			return fmt.Errorf("%w: user %s", ErrMissingPercentage, p.UserID)
		}
		if p.Percentage.IsNegative() || p.Percentage.GreaterThan(oneHundred) {
			return fmt.Errorf("%w: percentage %s for user %s out of range", ErrSplitMismatch, p.Percentage, p.UserID)
		}
		sum = sum.Add(*p.Percentage)
	}

	if sum.Sub(oneHundred).Abs().GreaterThan(percentTolerance) {
		return fmt.Errorf("%w: percentages sum to %s, expected 100", ErrSplitMismatch, sum)
	}

	return nil
}

// Calculate divides the total by each participant's percentage, rounding at
// the currency's precision. Rounding drift is corrected one minor unit at a
// time against the largest share so the shares sum exactly to the total.
func (s *PercentageStrategy) Calculate(total decimal.Decimal, currency money.Currency, participants []Participant) ([]Share, error) {
	if err := s.Validate(total, currency, participants); err != nil {
		return nil, err
	}

	shares := make([]Share, len(participants))
	sum := decimal.Zero
	for i, p := range participants {
		amount := currency.Round(total.Mul(*p.Percentage).Div(oneHundred))
		shares[i] = Share{UserID: p.UserID, Amount: amount, Percentage: p.Percentage}
		sum = sum.Add(amount)
	}

	// Drift is a whole number of minor units because the total and every
	// share are at currency precision
	unit := currency.MinorUnit()
	diff := total.Sub(sum)
	for !diff.IsZero() {
		step := unit
		if diff.IsNegative() {
			step = unit.Neg()
		}
		idx := largestShare(shares)
		shares[idx].Amount = shares[idx].Amount.Add(step)
		diff = diff.Sub(step)
	}

	return shares, nil
}

// largestShare returns the index of the largest share, taking the first on ties
func largestShare(shares []Share) int {
	idx := 0
	for i, s := range shares {
		if s.Amount.GreaterThan(shares[idx].Amount) {
			idx = i
		}
	}
	return idx
}
