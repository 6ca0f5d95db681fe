package expense

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fkhayef/splitcore/internal/expense/split"
	"github.com/fkhayef/splitcore/internal/money"
)

// Common errors
var (
	ErrNotGroupMember = errors.New("participant is not a group member")
)

// Expense represents a shared cost in a group. The Splits are derived at
// creation time and always sum exactly to Amount.
type Expense struct {
	ID           string          `json:"id"`
	GroupID      string          `json:"group_id"`
	PayerID      string          `json:"payer_id"`
	Description  string          `json:"description"`
	Amount       decimal.Decimal `json:"amount"`
	Currency     money.Currency  `json:"currency"`
	SplitType    split.SplitType `json:"split_type"`
	Participants []string        `json:"participants"`
	Splits       []split.Share   `json:"splits"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
	DeletedAt    *time.Time      `json:"deleted_at,omitempty"`
	DeletedBy    string          `json:"deleted_by,omitempty"`
}

// CreateInput carries everything needed to record a new expense
type CreateInput struct {
	GroupID      string
	PayerID      string
	Description  string
	Amount       decimal.Decimal
	Currency     money.Currency
	SplitType    split.SplitType
	Participants []split.Participant
}

// New validates the input against the group's membership, derives the splits
// through the split engine and returns the assembled expense. The split-sum
// invariant is guaranteed here; downstream consumers only re-check it
// defensively.
func New(in CreateInput, memberIDs []string, now time.Time) (*Expense, error) {
	if !in.Currency.Valid() {
		return nil, fmt.Errorf("%w: %q", money.ErrInvalidCurrency, in.Currency)
	}

	members := make(map[string]bool, len(memberIDs))
	for _, id := range memberIDs {
		members[id] = true
	}
	if !members[in.PayerID] {
		return nil, fmt.Errorf("%w: payer %s", ErrNotGroupMember, in.PayerID)
	}
	for _, p := range in.Participants {
		if !members[p.UserID] {
			return nil, fmt.Errorf("%w: %s", ErrNotGroupMember, p.UserID)
		}
	}

	shares, err := split.Compute(in.Amount, in.Currency, in.SplitType, in.Participants)
	if err != nil {
		return nil, err
	}

	participantIDs := make([]string, len(in.Participants))
	for i, p := range in.Participants {
		participantIDs[i] = p.UserID
	}

	return &Expense{
		ID:           uuid.NewString(),
		GroupID:      in.GroupID,
		PayerID:      in.PayerID,
		Description:  in.Description,
		Amount:       in.Amount,
		Currency:     in.Currency,
		SplitType:    in.SplitType,
		Participants: participantIDs,
		Splits:       shares,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// MarkDeleted soft-deletes the expense. The record stays for audit but is
// excluded from all balance computation.
func (e *Expense) MarkDeleted(userID string, at time.Time) {
	e.DeletedAt = &at
	e.DeletedBy = userID
	e.UpdatedAt = at
}

// IsDeleted reports whether the expense has been soft-deleted
func (e *Expense) IsDeleted() bool {
	return e.DeletedAt != nil
}

// SplitSum returns the sum of all share amounts
func (e *Expense) SplitSum() decimal.Decimal {
	sum := decimal.Zero
	for _, s := range e.Splits {
		sum = sum.Add(s.Amount)
	}
	return sum
}
