package settlement

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fkhayef/splitcore/internal/money"
)

// Common errors
var (
	ErrInvalidAmount    = errors.New("settlement amount must be positive at currency precision")
	ErrCannotSettleSelf = errors.New("cannot create settlement with yourself")
)

// Settlement represents a direct payment from one user to another to reduce
// an existing debt. Settlements are never split.
type Settlement struct {
	ID        string          `json:"id"`
	GroupID   string          `json:"group_id"`
	PayerID   string          `json:"payer_id"`
	PayeeID   string          `json:"payee_id"`
	Amount    decimal.Decimal `json:"amount"`
	Currency  money.Currency  `json:"currency"`
	Date      time.Time       `json:"date"`
	Note      string          `json:"note,omitempty"`
	CreatedBy string          `json:"created_by"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// CreateInput carries everything needed to record a new settlement
type CreateInput struct {
	GroupID   string
	PayerID   string
	PayeeID   string
	Amount    decimal.Decimal
	Currency  money.Currency
	Date      time.Time
	Note      string
	CreatedBy string
}

// New validates the input and returns the assembled settlement
func New(in CreateInput, now time.Time) (*Settlement, error) {
	if !in.Currency.Valid() {
		return nil, fmt.Errorf("%w: %q", money.ErrInvalidCurrency, in.Currency)
	}
	if in.PayerID == in.PayeeID {
		return nil, ErrCannotSettleSelf
	}
	if !in.Amount.IsPositive() || !in.Currency.Round(in.Amount).Equal(in.Amount) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidAmount, in.Amount)
	}

	return &Settlement{
		ID:        uuid.NewString(),
		GroupID:   in.GroupID,
		PayerID:   in.PayerID,
		PayeeID:   in.PayeeID,
		Amount:    in.Amount,
		Currency:  in.Currency,
		Date:      in.Date,
		Note:      in.Note,
		CreatedBy: in.CreatedBy,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}
