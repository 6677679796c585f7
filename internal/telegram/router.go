package telegram

import (
	"context"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/ykvlv/relay-bot/internal/domain"
)

// EventHandler consumes classified user events. relay.Relay implements this.
type EventHandler interface {
	OnEvent(ctx context.Context, ev domain.Event)
}

// Welcomer answers /start.
type Welcomer interface {
	SendWelcome(ctx context.Context, chatID int64) error
}

// Router wires Telegram updates to the relay.
type Router struct {
	events   EventHandler
	welcomer Welcomer
	log      *zap.Logger
	timeout  time.Duration
}

// NewRouter creates a new Telegram router. timeout bounds replies sent by
// the router itself.
func NewRouter(events EventHandler, welcomer Welcomer, log *zap.Logger, timeout time.Duration) *Router {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Router{
		events:   events,
		welcomer: welcomer,
		log:      log,
		timeout:  timeout,
	}
}

// HandleUpdate routes a single update. Only new messages with a known
// sender are relayed; edits, callbacks and channel posts are ignored.
func (r *Router) HandleUpdate(ctx context.Context, upd tgbotapi.Update) {
	msg := upd.Message
	if msg == nil || msg.From == nil {
		return
	}

	if msg.IsCommand() && msg.Command() == "start" {
		r.handleStart(ctx, msg)
		return
	}

	r.events.OnEvent(ctx, domain.Event{
		User:       UserFromTelegram(msg.From),
		Payload:    PayloadFromMessage(msg),
		ReceivedAt: msg.Time(),
	})
}

func (r *Router) handleStart(ctx context.Context, msg *tgbotapi.Message) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	chatID := msg.From.ID
	if msg.Chat != nil {
		chatID = msg.Chat.ID
	}
	if err := r.welcomer.SendWelcome(ctx, chatID); err != nil {
		r.log.Error("welcome failed", zap.Error(err), zap.Int64("chatID", chatID))
	}
}
