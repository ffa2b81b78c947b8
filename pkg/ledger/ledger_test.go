package ledger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pwinckles/matrix-firefly-bot/pkg/command"
	"github.com/pwinckles/matrix-firefly-bot/pkg/firefly"
	"github.com/shopspring/decimal"
	"github.com/vmkteam/embedlog"
)

type fakeGateway struct {
	created    []firefly.Transaction
	createErr  error
	categories []string
	listErr    error
}

func (f *fakeGateway) CreateTransaction(_ context.Context, txn firefly.Transaction) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, txn)
	return nil
}

func (f *fakeGateway) ListCategories(_ context.Context) ([]string, error) {
	return f.categories, f.listErr
}

func TestNewWithdrawal(t *testing.T) {
	req := command.AddRequest{
		Category: "Food",
		Amount:   decimal.RequireFromString("12.5"),
		Note:     "lunch",
		Tags:     []string{"work"},
	}
	ts := time.Date(2024, 3, 14, 12, 30, 0, 0, time.UTC)

	txn := NewWithdrawal(req, "alice", ts, 42, GeneralExpense)

	if txn.Type != "withdrawal" {
		t.Errorf("type = %q, expected withdrawal", txn.Type)
	}
	if txn.Description != "Food by alice" {
		t.Errorf("description = %q, expected \"Food by alice\"", txn.Description)
	}
	if txn.CategoryName != "Food" {
		t.Errorf("category = %q, expected Food", txn.CategoryName)
	}
	if txn.SourceID != 42 {
		t.Errorf("source id = %d, expected 42", txn.SourceID)
	}
	if txn.DestinationName != GeneralExpense {
		t.Errorf("destination = %q, expected %q", txn.DestinationName, GeneralExpense)
	}
	if txn.Notes != "lunch" {
		t.Errorf("notes = %q, expected lunch", txn.Notes)
	}
	if len(txn.Tags) != 2 || txn.Tags[0] != "work" || txn.Tags[1] != "alice" {
		t.Errorf("tags = %v, expected [work alice]", txn.Tags)
	}
	if !txn.Date.Equal(ts) {
		t.Errorf("date = %v, expected same instant as %v", txn.Date, ts)
	}
}

// The sender tag is appended unconditionally, even when it already
// appears in the request tags.
func TestNewWithdrawalDuplicateSenderTag(t *testing.T) {
	req := command.AddRequest{
		Category: "Food",
		Amount:   decimal.RequireFromString("1"),
		Tags:     []string{"alice"},
	}

	txn := NewWithdrawal(req, "alice", time.Now(), 1, GeneralExpense)

	if len(txn.Tags) != 2 || txn.Tags[0] != "alice" || txn.Tags[1] != "alice" {
		t.Errorf("tags = %v, expected [alice alice]", txn.Tags)
	}
}

func TestNewWithdrawalDoesNotMutateRequestTags(t *testing.T) {
	tags := []string{"work"}
	req := command.AddRequest{
		Category: "Food",
		Amount:   decimal.RequireFromString("1"),
		Tags:     tags,
	}

	_ = NewWithdrawal(req, "alice", time.Now(), 1, GeneralExpense)

	if len(tags) != 1 || tags[0] != "work" {
		t.Errorf("request tags mutated: %v", tags)
	}
}

func TestAddExpense(t *testing.T) {
	gw := &fakeGateway{}
	m := NewManager(gw, 42, embedlog.Logger{})

	req := command.AddRequest{Category: "Food", Amount: decimal.RequireFromString("12.5")}
	if err := m.AddExpense(context.Background(), req, "alice", time.Now()); err != nil {
		t.Fatalf("AddExpense returned error: %v", err)
	}

	if len(gw.created) != 1 {
		t.Fatalf("expected 1 created transaction, got %d", len(gw.created))
	}
	if gw.created[0].Description != "Food by alice" {
		t.Errorf("description = %q", gw.created[0].Description)
	}
}

func TestAddExpenseGatewayFailure(t *testing.T) {
	gw := &fakeGateway{createErr: errors.New("boom")}
	m := NewManager(gw, 42, embedlog.Logger{})

	req := command.AddRequest{Category: "Food", Amount: decimal.RequireFromString("1")}
	if err := m.AddExpense(context.Background(), req, "alice", time.Now()); err == nil {
		t.Fatal("expected error from failing gateway")
	}
}

func TestCategories(t *testing.T) {
	gw := &fakeGateway{categories: []string{"Food", "Transport"}}
	m := NewManager(gw, 42, embedlog.Logger{})

	categories, err := m.Categories(context.Background())
	if err != nil {
		t.Fatalf("Categories returned error: %v", err)
	}
	if len(categories) != 2 || categories[0] != "Food" {
		t.Errorf("categories = %v", categories)
	}
}
