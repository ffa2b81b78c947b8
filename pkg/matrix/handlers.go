package matrix

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pwinckles/matrix-firefly-bot/pkg/command"
)

const (
	successReaction = "✅"
	failureReaction = "❌"
)

var helpText = fmt.Sprintf(
	"Available commands:\n - %s\n - %s\n - %s\n - %s",
	command.AddUsage, command.CategoriesCmd, command.HelpCmd, command.PingCmd,
)

// route dispatches a parsed command to its handler.
func (d *Dispatcher) route(ctx context.Context, msg Message, cmd command.Command) {
	switch cmd.Kind {
	case command.KindPing:
		d.reply(ctx, msg, "pong")
	case command.KindHelp:
		d.reply(ctx, msg, helpText)
	case command.KindCategories:
		d.handleCategories(ctx, msg)
	case command.KindAdd:
		d.handleAdd(ctx, msg, *cmd.Add)
	}
}

// handleCategories replies with a bulleted list of ledger categories.
// Backend failures are logged in full; the user only sees a generic
// failure sentence.
func (d *Dispatcher) handleCategories(ctx context.Context, msg Message) {
	start := time.Now()
	categories, err := d.ledger.Categories(ctx)
	ledgerRequestDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		errorsTotal.WithLabelValues("list_categories").Inc()
		d.log.Error(ctx, "failed to list categories", "err", err)
		d.reply(ctx, msg, "Failed to list categories")
		return
	}

	var b strings.Builder
	b.WriteString("Categories:")
	if len(categories) > 0 {
		b.WriteString("\n - ")
		b.WriteString(strings.Join(categories, "\n - "))
	}

	d.reply(ctx, msg, b.String())
}

// handleAdd stores a withdrawal and reacts to the triggering message.
// The error detail never reaches the room, only the logs.
func (d *Dispatcher) handleAdd(ctx context.Context, msg Message, req command.AddRequest) {
	start := time.Now()
	err := d.ledger.AddExpense(ctx, req, msg.Sender, msg.Timestamp)
	ledgerRequestDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		errorsTotal.WithLabelValues("add_transaction").Inc()
		d.log.Error(ctx, "failed to add expense", "err", err, "sender", msg.Sender)
		d.react(ctx, msg, failureReaction)
		return
	}

	transactionsCreated.Inc()
	d.react(ctx, msg, successReaction)
}

// reply posts a plain-text message into the triggering room. Send
// failures are logged and not retried.
func (d *Dispatcher) reply(ctx context.Context, msg Message, text string) {
	if err := d.messenger.SendText(ctx, msg.RoomID, text); err != nil {
		errorsTotal.WithLabelValues("send_message").Inc()
		d.log.Error(ctx, "failed to send message", "err", err, "room_id", msg.RoomID)
	}
}

// react attaches a reaction to the triggering message.
func (d *Dispatcher) react(ctx context.Context, msg Message, key string) {
	if err := d.messenger.SendReaction(ctx, msg.RoomID, msg.EventID, key); err != nil {
		errorsTotal.WithLabelValues("send_reaction").Inc()
		d.log.Error(ctx, "failed to send reaction", "err", err, "event_id", msg.EventID)
	}
}
