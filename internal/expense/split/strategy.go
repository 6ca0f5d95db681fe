package split

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/fkhayef/splitcore/internal/money"
)

// SplitType defines the type of split strategy
type SplitType string

const (
	SplitTypeEqual      SplitType = "equal"
	SplitTypeExact      SplitType = "exact"
	SplitTypePercentage SplitType = "percentage"
)

// Participant represents one member of a split with optional values
type Participant struct {
	UserID     string
	Amount     *decimal.Decimal // For exact split
	Percentage *decimal.Decimal // For percentage split
}

// Share represents the calculated split for a single participant
type Share struct {
	UserID     string
	Amount     decimal.Decimal
	Percentage *decimal.Decimal // Set for percentage splits only
}

// Strategy is the interface that all split strategies must implement
type Strategy interface {
	// Calculate computes the share amounts for all participants.
	// The returned shares always sum exactly to the total.
	Calculate(total decimal.Decimal, currency money.Currency, participants []Participant) ([]Share, error)

	// Type returns the type identifier for this strategy
	Type() SplitType

	// Validate checks if the inputs are valid for this strategy
	Validate(total decimal.Decimal, currency money.Currency, participants []Participant) error
}

// Factory creates split strategies based on the requested type
type Factory struct{}

// NewSplitStrategyFactory creates a new factory instance
func NewSplitStrategyFactory() *Factory {
	return &Factory{}
}

// Create returns the appropriate strategy implementation based on the type
func (f *Factory) Create(splitType SplitType) (Strategy, error) {
	switch splitType {
	case SplitTypeEqual:
		return &EqualStrategy{}, nil
	case SplitTypeExact:
		return &ExactStrategy{}, nil
	case SplitTypePercentage:
		return &PercentageStrategy{}, nil
	default:
		return nil, fmt.Errorf("unknown split type: %s", splitType)
	}
}

// CreateFromString creates a strategy from a string type (useful for wire input)
func (f *Factory) CreateFromString(splitType string) (Strategy, error) {
	return f.Create(SplitType(splitType))
}

// Compute calculates shares for the given total and split type in one call.
// This is the entry point the expense layer uses at creation time.
func Compute(total decimal.Decimal, currency money.Currency, splitType SplitType, participants []Participant) ([]Share, error) {
	strategy, err := NewSplitStrategyFactory().Create(splitType)
	if err != nil {
		return nil, err
	}
	return strategy.Calculate(total, currency, participants)
}

var (
	ErrInvalidAmount       = errors.New("total amount must be positive at currency precision")
	ErrInvalidParticipants = errors.New("participant list is empty or contains duplicates")
	ErrSplitMismatch       = errors.New("splits do not reconcile to the total")
	ErrMissingAmount       = errors.New("exact amount required for all participants")
	ErrMissingPercentage   = errors.New("percentage value required for all participants")
)

// validateCommon checks the invariants shared by every split type: a positive
// total representable at the currency's precision, and a non-empty participant
// list free of duplicates
func validateCommon(total decimal.Decimal, currency money.Currency, participants []Participant) error {
	if !total.IsPositive() {
		return ErrInvalidAmount
	}
	if !currency.Round(total).Equal(total) {
		return fmt.Errorf("%w: %s has more precision than %s allows", ErrInvalidAmount, total, currency)
	}
	if len(participants) == 0 {
		return ErrInvalidParticipants
	}
	seen := make(map[string]bool, len(participants))
	for _, p := range participants {
		if seen[p.UserID] {
			return fmt.Errorf("%w: duplicate user %s", ErrInvalidParticipants, p.UserID)
		}
		seen[p.UserID] = true
	}
	return nil
}
