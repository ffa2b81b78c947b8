package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/pwinckles/matrix-firefly-bot/pkg/command"
	"github.com/pwinckles/matrix-firefly-bot/pkg/firefly"
	"github.com/vmkteam/embedlog"
)

// Gateway is the Firefly III surface the manager needs. *firefly.Client
// implements it; tests substitute a fake.
type Gateway interface {
	CreateTransaction(ctx context.Context, txn firefly.Transaction) error
	ListCategories(ctx context.Context) ([]string, error)
}

// Manager turns parsed add requests into stored ledger transactions.
// It holds no state beyond configuration and is safe for concurrent use.
type Manager struct {
	gw          Gateway
	sourceID    int64
	destination string
	log         embedlog.Logger
}

func NewManager(gw Gateway, sourceID int64, log embedlog.Logger) *Manager {
	return &Manager{
		gw:          gw,
		sourceID:    sourceID,
		destination: GeneralExpense,
		log:         log,
	}
}

// AddExpense synthesizes a withdrawal from the request and the message
// metadata and stores it in the ledger.
func (m *Manager) AddExpense(ctx context.Context, req command.AddRequest, sender string, ts time.Time) error {
	txn := NewWithdrawal(req, sender, ts, m.sourceID, m.destination)

	if err := m.gw.CreateTransaction(ctx, txn); err != nil {
		return fmt.Errorf("failed to add expense: %w", err)
	}

	m.log.Print(ctx, "expense created",
		"category", req.Category,
		"amount", req.Amount,
		"sender", sender,
	)

	return nil
}

// Categories returns all ledger category names in backend order.
func (m *Manager) Categories(ctx context.Context) ([]string, error) {
	categories, err := m.gw.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get categories: %w", err)
	}

	return categories, nil
}
