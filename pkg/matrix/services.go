package matrix

import (
	"context"
	"time"

	"github.com/pwinckles/matrix-firefly-bot/pkg/command"
	"github.com/vmkteam/embedlog"
	"maunium.net/go/mautrix/id"
)

// Accountant handles ledger operations for parsed commands.
// *ledger.Manager implements it.
type Accountant interface {
	AddExpense(ctx context.Context, req command.AddRequest, sender string, ts time.Time) error
	Categories(ctx context.Context) ([]string, error)
}

// Messenger sends replies and reactions into a room. *Bot implements
// it over the Matrix client.
type Messenger interface {
	SendText(ctx context.Context, roomID id.RoomID, text string) error
	SendReaction(ctx context.Context, roomID id.RoomID, eventID id.EventID, key string) error
}

// MockAccountant is a mock implementation of Accountant for tests.
type MockAccountant struct {
	logger embedlog.Logger

	AddErr        error
	CategoriesErr error
	CategoryNames []string

	Added []command.AddRequest
}

// NewMockAccountant creates a new mock accountant
func NewMockAccountant(logger embedlog.Logger) *MockAccountant {
	return &MockAccountant{logger: logger}
}

func (m *MockAccountant) AddExpense(ctx context.Context, req command.AddRequest, sender string, _ time.Time) error {
	m.logger.Print(ctx, "mock add expense", "category", req.Category, "sender", sender)
	if m.AddErr != nil {
		return m.AddErr
	}
	m.Added = append(m.Added, req)
	return nil
}

func (m *MockAccountant) Categories(ctx context.Context) ([]string, error) {
	m.logger.Print(ctx, "mock list categories")
	return m.CategoryNames, m.CategoriesErr
}
