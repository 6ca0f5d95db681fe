package balance

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fkhayef/splitcore/internal/expense"
	"github.com/fkhayef/splitcore/internal/expense/split"
	"github.com/fkhayef/splitcore/internal/settlement"
)

var testTime = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

// stubSource serves a fixed snapshot, standing in for the persistence layer
type stubSource struct {
	expenses    []*expense.Expense
	settlements []*settlement.Settlement
	members     []string
	err         error
}

func (s *stubSource) Expenses(context.Context, string) ([]*expense.Expense, error) {
	return s.expenses, s.err
}

func (s *stubSource) Settlements(context.Context, string) ([]*settlement.Settlement, error) {
	return s.settlements, s.err
}

func (s *stubSource) Members(context.Context, string) ([]string, error) {
	return s.members, s.err
}

func TestGroupBalances(t *testing.T) {
	members := []string{"a", "b", "c"}
	e, err := expense.New(expense.CreateInput{
		GroupID:     "g1",
		PayerID:     "a",
		Description: "dinner",
		Amount:      decimal.RequireFromString("90.00"),
		Currency:    "USD",
		SplitType:   split.SplitTypeEqual,
		Participants: []split.Participant{
			{UserID: "a"}, {UserID: "b"}, {UserID: "c"},
		},
	}, members, testTime)
	if err != nil {
		t.Fatalf("expense.New() error = %v", err)
	}
	s, err := settlement.New(settlement.CreateInput{
		GroupID:   "g1",
		PayerID:   "b",
		PayeeID:   "a",
		Amount:    decimal.RequireFromString("30.00"),
		Currency:  "USD",
		Date:      testTime,
		CreatedBy: "b",
	}, testTime)
	if err != nil {
		t.Fatalf("settlement.New() error = %v", err)
	}

	source := &stubSource{
		expenses:    []*expense.Expense{e},
		settlements: []*settlement.Settlement{s},
		members:     members,
	}
	result, err := NewService(source).GroupBalances(context.Background(), "g1")
	if err != nil {
		t.Fatalf("GroupBalances() error = %v", err)
	}

	usd := result.Currencies["USD"]
	if usd == nil {
		t.Fatal("no USD balances")
	}
	if got := usd.Users["a"].Net; !got.Equal(decimal.RequireFromString("30.00")) {
		t.Errorf("a net = %s, want 30.00", got)
	}
	if got := usd.Users["b"].Net; !got.IsZero() {
		t.Errorf("b net = %s, want 0", got)
	}

	// b settled up, so a single payment from c clears the group
	if len(usd.SimplifiedDebts) != 1 {
		t.Fatalf("got %d simplified debts, want 1", len(usd.SimplifiedDebts))
	}
	d := usd.SimplifiedDebts[0]
	if d.FromUserID != "c" || d.ToUserID != "a" || !d.Amount.Equal(decimal.RequireFromString("30.00")) {
		t.Errorf("debt = %s -> %s %s, want c -> a 30.00", d.FromUserID, d.ToUserID, d.Amount)
	}
}

func TestGroupBalancesSourceError(t *testing.T) {
	wantErr := errors.New("store unavailable")
	_, err := NewService(&stubSource{err: wantErr}).GroupBalances(context.Background(), "g1")
	if !errors.Is(err, wantErr) {
		t.Fatalf("GroupBalances() error = %v, want %v", err, wantErr)
	}
}

func TestToResponseFormatsAmounts(t *testing.T) {
	members := []string{"a", "b"}
	e, err := expense.New(expense.CreateInput{
		GroupID:      "g1",
		PayerID:      "a",
		Description:  "coffee",
		Amount:       decimal.RequireFromString("7.00"),
		Currency:     "USD",
		SplitType:    split.SplitTypeEqual,
		Participants: []split.Participant{{UserID: "a"}, {UserID: "b"}},
	}, members, testTime)
	if err != nil {
		t.Fatalf("expense.New() error = %v", err)
	}

	result, err := NewService(&stubSource{
		expenses: []*expense.Expense{e},
		members:  members,
	}).GroupBalances(context.Background(), "g1")
	if err != nil {
		t.Fatalf("GroupBalances() error = %v", err)
	}

	resp := result.ToResponse()
	usd := resp.Currencies["USD"]
	if usd == nil {
		t.Fatal("no USD currency in response")
	}
	if got := usd.Users["b"].NetBalance; got != "-3.50" {
		t.Errorf("b net balance = %q, want \"-3.50\"", got)
	}
	if got := usd.Users["b"].Owes["a"]; got != "3.50" {
		t.Errorf("b owes a %q, want \"3.50\"", got)
	}
	if len(usd.SimplifiedDebts) != 1 || usd.SimplifiedDebts[0].Amount != "3.50" {
		t.Fatalf("simplified debts = %+v, want one payment of 3.50", usd.SimplifiedDebts)
	}
}
