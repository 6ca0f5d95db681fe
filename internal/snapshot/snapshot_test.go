package snapshot

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/fkhayef/splitcore/internal/money"
)

const sampleDoc = `{
  "group_id": "g1",
  "members": ["a", "b", "c"],
  "expenses": [
    {
      "id": "e1",
      "group_id": "g1",
      "payer_id": "a",
      "description": "dinner",
      "amount": "90.00",
      "currency": "USD",
      "split_type": "equal",
      "participants": ["a", "b", "c"],
      "splits": [
        {"user_id": "a", "amount": "30.00"},
        {"user_id": "b", "amount": "30.00"},
        {"user_id": "c", "amount": "30.00"}
      ],
      "created_at": "2025-06-01T12:00:00Z",
      "updated_at": "2025-06-01T12:00:00Z"
    }
  ],
  "settlements": [
    {
      "id": "s1",
      "group_id": "g1",
      "payer_id": "b",
      "payee_id": "a",
      "amount": "30.00",
      "currency": "USD",
      "date": "2025-06-02T09:00:00Z",
      "created_by": "b",
      "created_at": "2025-06-02T09:00:00Z",
      "updated_at": "2025-06-02T09:00:00Z"
    }
  ]
}`

func TestDecode(t *testing.T) {
	snap, err := Decode(strings.NewReader(sampleDoc))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if snap.GroupID() != "g1" {
		t.Errorf("group id = %s, want g1", snap.GroupID())
	}

	ctx := context.Background()
	members, err := snap.Members(ctx, "g1")
	if err != nil || len(members) != 3 {
		t.Fatalf("Members() = %v, %v, want 3 members", members, err)
	}

	expenses, err := snap.Expenses(ctx, "g1")
	if err != nil || len(expenses) != 1 {
		t.Fatalf("Expenses() = %v, %v, want 1 expense", expenses, err)
	}
	e := expenses[0]
	if !e.Amount.Equal(decimal.RequireFromString("90.00")) {
		t.Errorf("amount = %s, want 90.00", e.Amount)
	}
	if e.Currency != "USD" || len(e.Splits) != 3 {
		t.Errorf("currency = %s splits = %d, want USD with 3 splits", e.Currency, len(e.Splits))
	}
	if !e.SplitSum().Equal(e.Amount) {
		t.Errorf("splits sum to %s, want %s", e.SplitSum(), e.Amount)
	}

	settlements, err := snap.Settlements(ctx, "g1")
	if err != nil || len(settlements) != 1 {
		t.Fatalf("Settlements() = %v, %v, want 1 settlement", settlements, err)
	}
	if settlements[0].PayerID != "b" || settlements[0].PayeeID != "a" {
		t.Errorf("settlement direction = %s -> %s, want b -> a",
			settlements[0].PayerID, settlements[0].PayeeID)
	}
}

func TestDecodeForeignGroupReturnsNothing(t *testing.T) {
	snap, err := Decode(strings.NewReader(sampleDoc))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	expenses, err := snap.Expenses(context.Background(), "other-group")
	if err != nil || expenses != nil {
		t.Errorf("Expenses(other-group) = %v, %v, want nothing", expenses, err)
	}
}

func TestDecodeRejectsMalformedAmount(t *testing.T) {
	doc := strings.Replace(sampleDoc, `"amount": "90.00"`, `"amount": "9e1"`, 1)
	_, err := Decode(strings.NewReader(doc))
	if !errors.Is(err, money.ErrMalformedAmount) {
		t.Fatalf("Decode() error = %v, want %v", err, money.ErrMalformedAmount)
	}
}

func TestDecodeRejectsBadCurrency(t *testing.T) {
	doc := strings.ReplaceAll(sampleDoc, `"currency": "USD"`, `"currency": "dollars"`)
	_, err := Decode(strings.NewReader(doc))
	if !errors.Is(err, money.ErrInvalidCurrency) {
		t.Fatalf("Decode() error = %v, want %v", err, money.ErrInvalidCurrency)
	}
}

func TestDecodeRejectsInvalidJSON(t *testing.T) {
	if _, err := Decode(strings.NewReader("{not json")); err == nil {
		t.Fatal("expected error for invalid JSON")
	}
}
