package matrix

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/vmkteam/embedlog"
	"maunium.net/go/mautrix"
	"maunium.net/go/mautrix/event"
	"maunium.net/go/mautrix/id"
)

const (
	botName         = "firefly bot"
	eventBufferSize = 32
)

type Config struct {
	HomeserverURL string
	Username      string
	Password      string
	RoomID        string
	Debug         bool
}

// Bot maintains the Matrix session and feeds qualifying room events
// into the dispatcher's message channel. The blocking channel send is
// the backpressure point between the sync loop and command handling.
type Bot struct {
	client     *mautrix.Client
	cfg        Config
	roomID     id.RoomID
	debug      bool
	logger     embedlog.Logger
	dispatcher *Dispatcher
	events     chan Message
	startTime  time.Time
}

// New creates a new Matrix bot instance
func New(cfg Config, ledger Accountant, logger embedlog.Logger) (*Bot, error) {
	if cfg.HomeserverURL == "" {
		return nil, errors.New("matrix homeserver url is required")
	}
	if cfg.RoomID == "" {
		return nil, errors.New("matrix room id is required")
	}

	client, err := mautrix.NewClient(cfg.HomeserverURL, "", "")
	if err != nil {
		return nil, fmt.Errorf("failed to create matrix client: %w", err)
	}

	b := &Bot{
		client: client,
		cfg:    cfg,
		roomID: id.RoomID(cfg.RoomID),
		debug:  cfg.Debug,
		logger: logger,
		events: make(chan Message, eventBufferSize),
	}
	b.dispatcher = NewDispatcher(b, ledger, logger)

	syncer := client.Syncer.(*mautrix.DefaultSyncer)
	syncer.OnEventType(event.EventMessage, b.onRoomMessage)

	return b, nil
}

// Start logs in and runs the sync loop until the context is canceled.
// It returns once all in-flight message handlers have finished.
func (b *Bot) Start(ctx context.Context) error {
	_, err := b.client.Login(ctx, &mautrix.ReqLogin{
		Type: mautrix.AuthTypePassword,
		Identifier: mautrix.UserIdentifier{
			Type: mautrix.IdentifierTypeUser,
			User: b.cfg.Username,
		},
		Password:                 b.cfg.Password,
		InitialDeviceDisplayName: botName,
		StoreCredentials:         true,
	})
	if err != nil {
		return fmt.Errorf("failed to log in: %w", err)
	}

	b.startTime = time.Now()
	b.logger.Print(ctx, "listening for messages", "user_id", b.client.UserID, "room_id", b.roomID)

	done := make(chan struct{})
	go func() {
		defer close(done)
		b.dispatcher.Run(ctx, b.events)
	}()

	syncErr := b.client.SyncWithContext(ctx)

	close(b.events)
	<-done

	if syncErr != nil && !errors.Is(syncErr, context.Canceled) {
		return fmt.Errorf("sync failed: %w", syncErr)
	}
	return nil
}

// Stop gracefully stops the sync loop
func (b *Bot) Stop(ctx context.Context) {
	b.logger.Print(ctx, "stopping matrix bot")
	b.client.StopSync()
}

// onRoomMessage filters one sync event down to a dispatchable Message.
// Filtered-out events produce no observable output.
func (b *Bot) onRoomMessage(ctx context.Context, evt *event.Event) {
	if b.debug {
		b.logger.Print(ctx, "received event", "event_id", evt.ID, "room_id", evt.RoomID, "sender", evt.Sender)
	}

	if evt.RoomID != b.roomID || evt.Sender == b.client.UserID {
		return
	}
	// skip backlog replayed by the initial sync
	if time.UnixMilli(evt.Timestamp).Before(b.startTime) {
		return
	}

	content := evt.Content.AsMessage()
	if content == nil || content.MsgType != event.MsgText {
		return
	}

	msg := Message{
		Sender:    evt.Sender.Localpart(),
		Body:      content.Body,
		Timestamp: time.UnixMilli(evt.Timestamp),
		RoomID:    evt.RoomID,
		EventID:   evt.ID,
	}

	select {
	case b.events <- msg:
	case <-ctx.Done():
	}
}

// SendText posts a plain-text message into a room.
func (b *Bot) SendText(ctx context.Context, roomID id.RoomID, text string) error {
	_, err := b.client.SendText(ctx, roomID, text)
	return err
}

// SendReaction attaches a reaction to a prior event in a room.
func (b *Bot) SendReaction(ctx context.Context, roomID id.RoomID, eventID id.EventID, key string) error {
	_, err := b.client.SendReaction(ctx, roomID, eventID, key)
	return err
}
