package app

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/ykvlv/relay-bot/internal/domain"
	"github.com/ykvlv/relay-bot/internal/scheduler"
)

// AckRecorder is the journal side of acknowledgment sending.
type AckRecorder interface {
	RecordAck(ctx context.Context, a *domain.AckRecord) error
}

// journaledSender records every acknowledgment attempt after sending it.
type journaledSender struct {
	next    scheduler.Sender
	journal AckRecorder
	log     *zap.Logger
}

func (j *journaledSender) SendAck(ctx context.Context, user domain.UserID) error {
	err := j.next.SendAck(ctx, user)

	rec := &domain.AckRecord{UserID: user, Sent: err == nil, SentAt: time.Now().UTC()}
	if err != nil {
		rec.Error = err.Error()
	}
	// The send may have used up ctx; the journal write still goes through.
	if jerr := j.journal.RecordAck(context.WithoutCancel(ctx), rec); jerr != nil {
		j.log.Warn("journal ack failed", zap.Error(jerr), zap.Int64("userID", int64(user)))
	}
	return err
}
