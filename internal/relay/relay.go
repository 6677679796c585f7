package relay

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/ykvlv/relay-bot/internal/domain"
)

const defaultTimeout = 10 * time.Second

// Operator is the outbound channel to the single operator chat.
type Operator interface {
	SendToOperator(ctx context.Context, html string) error
	ForwardToOperator(ctx context.Context, fromChatID int64, messageID int) error
}

// Activity receives a signal for every inbound event.
// scheduler.Scheduler implements this.
type Activity interface {
	Notify(user domain.UserID)
}

// Journal records relayed messages. Optional.
type Journal interface {
	RecordMessage(ctx context.Context, m *domain.MessageRecord) error
}

// Relay forwards user messages to the operator and reports activity.
type Relay struct {
	op       Operator
	activity Activity
	journal  Journal
	log      *zap.Logger
	timeout  time.Duration
}

// Option customizes a Relay.
type Option func(*Relay)

// WithJournal records every event after the forward attempt.
func WithJournal(j Journal) Option {
	return func(r *Relay) { r.journal = j }
}

// WithTimeout bounds the operator-side calls for one event.
func WithTimeout(d time.Duration) Option {
	return func(r *Relay) {
		if d > 0 {
			r.timeout = d
		}
	}
}

// New creates a Relay.
func New(op Operator, activity Activity, log *zap.Logger, opts ...Option) *Relay {
	r := &Relay{op: op, activity: activity, log: log, timeout: defaultTimeout}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// OnEvent forwards ev to the operator and then notifies activity.
// Transport and journal failures are logged and never stop the notify.
func (r *Relay) OnEvent(ctx context.Context, ev domain.Event) {
	defer r.activity.Notify(ev.User.ID)

	fctx, cancel := context.WithTimeout(ctx, r.timeout)
	err := r.forward(fctx, ev)
	cancel()
	if err != nil {
		r.log.Error("forward to operator failed",
			zap.Error(err),
			zap.Int64("userID", int64(ev.User.ID)),
			zap.String("kind", string(ev.Payload.Kind)),
		)
	}

	if r.journal == nil {
		return
	}
	rec := &domain.MessageRecord{
		UserID:     ev.User.ID,
		ChatID:     ev.Payload.ChatID,
		MessageID:  ev.Payload.MessageID,
		Kind:       ev.Payload.Kind,
		Forwarded:  err == nil,
		ReceivedAt: ev.ReceivedAt.UTC(),
	}
	if err != nil {
		rec.Error = err.Error()
	}
	if jerr := r.journal.RecordMessage(ctx, rec); jerr != nil {
		r.log.Warn("journal message failed", zap.Error(jerr), zap.Int64("userID", int64(ev.User.ID)))
	}
}

func (r *Relay) forward(ctx context.Context, ev domain.Event) error {
	p := ev.Payload
	if !p.Kind.IsMedia() {
		return r.op.SendToOperator(ctx, TextNotice(ev.User, p.Text))
	}
	if err := r.op.SendToOperator(ctx, MediaNotice(ev.User, p.Kind)); err != nil {
		return fmt.Errorf("media notice: %w", err)
	}
	if err := r.op.ForwardToOperator(ctx, p.ChatID, p.MessageID); err != nil {
		return fmt.Errorf("forward %s: %w", p.Kind, err)
	}
	return nil
}
