// Package snapshot decodes a group's expense/settlement records from their
// JSON wire form. Money crosses this boundary as decimal strings and is
// parsed strictly before any computation sees it.
package snapshot

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fkhayef/splitcore/internal/expense"
	"github.com/fkhayef/splitcore/internal/expense/split"
	"github.com/fkhayef/splitcore/internal/money"
	"github.com/fkhayef/splitcore/internal/settlement"
)

type splitRecord struct {
	UserID     string  `json:"user_id"`
	Amount     string  `json:"amount"`
	Percentage *string `json:"percentage,omitempty"`
}

type expenseRecord struct {
	ID           string        `json:"id"`
	GroupID      string        `json:"group_id"`
	PayerID      string        `json:"payer_id"`
	Description  string        `json:"description"`
	Amount       string        `json:"amount"`
	Currency     string        `json:"currency"`
	SplitType    string        `json:"split_type"`
	Participants []string      `json:"participants"`
	Splits       []splitRecord `json:"splits"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
	DeletedAt    *time.Time    `json:"deleted_at,omitempty"`
	DeletedBy    string        `json:"deleted_by,omitempty"`
}

type settlementRecord struct {
	ID        string    `json:"id"`
	GroupID   string    `json:"group_id"`
	PayerID   string    `json:"payer_id"`
	PayeeID   string    `json:"payee_id"`
	Amount    string    `json:"amount"`
	Currency  string    `json:"currency"`
	Date      time.Time `json:"date"`
	Note      string    `json:"note,omitempty"`
	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type document struct {
	GroupID     string             `json:"group_id"`
	Members     []string           `json:"members"`
	Expenses    []expenseRecord    `json:"expenses"`
	Settlements []settlementRecord `json:"settlements"`
}

// Snapshot is a decoded group snapshot. It satisfies the balance service's
// SnapshotSource so a decoded file can drive the pipeline directly.
type Snapshot struct {
	groupID     string
	members     []string
	expenses    []*expense.Expense
	settlements []*settlement.Settlement
}

// Decode reads a JSON snapshot and converts every record to its domain form,
// rejecting malformed amounts and currency codes up front
func Decode(r io.Reader) (*Snapshot, error) {
	var doc document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}

	snap := &Snapshot{
		groupID: doc.GroupID,
		members: doc.Members,
	}
	for _, rec := range doc.Expenses {
		e, err := decodeExpense(rec)
		if err != nil {
			return nil, fmt.Errorf("expense %s: %w", rec.ID, err)
		}
		snap.expenses = append(snap.expenses, e)
	}
	for _, rec := range doc.Settlements {
		s, err := decodeSettlement(rec)
		if err != nil {
			return nil, fmt.Errorf("settlement %s: %w", rec.ID, err)
		}
		snap.settlements = append(snap.settlements, s)
	}
	return snap, nil
}

// GroupID returns the id of the group the snapshot was taken for
func (s *Snapshot) GroupID() string {
	return s.groupID
}

// Expenses returns the snapshot's expense records for the group
func (s *Snapshot) Expenses(_ context.Context, groupID string) ([]*expense.Expense, error) {
	if groupID != s.groupID {
		return nil, nil
	}
	return s.expenses, nil
}

// Settlements returns the snapshot's settlement records for the group
func (s *Snapshot) Settlements(_ context.Context, groupID string) ([]*settlement.Settlement, error) {
	if groupID != s.groupID {
		return nil, nil
	}
	return s.settlements, nil
}

// Members returns the group's member ids
func (s *Snapshot) Members(_ context.Context, groupID string) ([]string, error) {
	if groupID != s.groupID {
		return nil, nil
	}
	return s.members, nil
}

func decodeExpense(rec expenseRecord) (*expense.Expense, error) {
	currency := money.Currency(rec.Currency)
	if !currency.Valid() {
		return nil, fmt.Errorf("%w: %q", money.ErrInvalidCurrency, rec.Currency)
	}
	amount, err := money.Parse(rec.Amount)
	if err != nil {
		return nil, err
	}

	shares := make([]split.Share, len(rec.Splits))
	for i, sr := range rec.Splits {
		shareAmount, err := money.Parse(sr.Amount)
		if err != nil {
			return nil, fmt.Errorf("split for %s: %w", sr.UserID, err)
		}
		shares[i] = split.Share{UserID: sr.UserID, Amount: shareAmount}
		if sr.Percentage != nil {
			pct, err := decimal.NewFromString(*sr.Percentage)
			if err != nil {
				return nil, fmt.Errorf("split percentage for %s: %w", sr.UserID, err)
			}
			shares[i].Percentage = &pct
		}
	}

	return &expense.Expense{
		ID:           rec.ID,
		GroupID:      rec.GroupID,
		PayerID:      rec.PayerID,
		Description:  rec.Description,
		Amount:       amount,
		Currency:     currency,
		SplitType:    split.SplitType(rec.SplitType),
		Participants: rec.Participants,
		Splits:       shares,
		CreatedAt:    rec.CreatedAt,
		UpdatedAt:    rec.UpdatedAt,
		DeletedAt:    rec.DeletedAt,
		DeletedBy:    rec.DeletedBy,
	}, nil
}

func decodeSettlement(rec settlementRecord) (*settlement.Settlement, error) {
	currency := money.Currency(rec.Currency)
	if !currency.Valid() {
		return nil, fmt.Errorf("%w: %q", money.ErrInvalidCurrency, rec.Currency)
	}
	amount, err := money.Parse(rec.Amount)
	if err != nil {
		return nil, err
	}

	return &settlement.Settlement{
		ID:        rec.ID,
		GroupID:   rec.GroupID,
		PayerID:   rec.PayerID,
		PayeeID:   rec.PayeeID,
		Amount:    amount,
		Currency:  currency,
		Date:      rec.Date,
		Note:      rec.Note,
		CreatedBy: rec.CreatedBy,
		CreatedAt: rec.CreatedAt,
		UpdatedAt: rec.UpdatedAt,
	}, nil
}
