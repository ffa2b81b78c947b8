package matrix

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/pwinckles/matrix-firefly-bot/pkg/command"
	"github.com/vmkteam/embedlog"
	"golang.org/x/sync/semaphore"
	"maunium.net/go/mautrix/id"
)

const defaultMaxInFlight = 16

// Message is one inbound text event after transport filtering: the
// sender's localpart, the raw body, and the server timestamp already
// converted to a time.Time.
type Message struct {
	Sender    string
	Body      string
	Timestamp time.Time
	RoomID    id.RoomID
	EventID   id.EventID
}

// Dispatcher consumes the inbound message stream, parses commands in
// receipt order, and routes each one to its handler in a separate
// goroutine so a slow ledger round trip never stalls ingestion. The
// semaphore bounds the number of in-flight handlers.
type Dispatcher struct {
	messenger Messenger
	ledger    Accountant
	log       embedlog.Logger
	sem       *semaphore.Weighted
	wg        sync.WaitGroup
}

func NewDispatcher(messenger Messenger, ledger Accountant, log embedlog.Logger) *Dispatcher {
	return &Dispatcher{
		messenger: messenger,
		ledger:    ledger,
		log:       log,
		sem:       semaphore.NewWeighted(defaultMaxInFlight),
	}
}

// Run consumes messages until the channel is closed or the context is
// canceled, then waits for in-flight handlers to finish.
func (d *Dispatcher) Run(ctx context.Context, events <-chan Message) {
	defer d.wg.Wait()

	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-events:
			if !ok {
				return
			}
			d.process(ctx, msg)
		}
	}
}

// process parses one message and hands it to a handler goroutine.
// Each message ends in exactly one terminal state: ignored, replied,
// or reacted. No retries.
func (d *Dispatcher) process(ctx context.Context, msg Message) {
	if !strings.HasPrefix(msg.Body, "!") {
		return
	}

	cmd, err := command.Parse(msg.Body)
	if err != nil {
		parseFailures.Inc()
		d.log.Print(ctx, "failed to parse command", "text", msg.Body, "err", err)
		d.spawn(ctx, msg, func(ctx context.Context) {
			d.reply(ctx, msg, err.Error())
		})
		return
	}

	commandsProcessed.WithLabelValues(commandLabel(cmd.Kind)).Inc()
	d.log.Print(ctx, "received command", "command", commandLabel(cmd.Kind), "sender", msg.Sender)

	d.spawn(ctx, msg, func(ctx context.Context) {
		d.route(ctx, msg, cmd)
	})
}

// spawn runs fn in a goroutine gated by the in-flight semaphore.
func (d *Dispatcher) spawn(ctx context.Context, msg Message, fn func(context.Context)) {
	if err := d.sem.Acquire(ctx, 1); err != nil {
		d.log.Error(ctx, "dropping message, dispatcher shutting down", "event_id", msg.EventID)
		return
	}

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		defer d.sem.Release(1)
		fn(ctx)
	}()
}

func commandLabel(kind command.Kind) string {
	switch kind {
	case command.KindPing:
		return "ping"
	case command.KindHelp:
		return "help"
	case command.KindCategories:
		return "categories"
	case command.KindAdd:
		return "add"
	default:
		return "unknown"
	}
}
