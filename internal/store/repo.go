package store

import (
	"context"

	"github.com/ykvlv/relay-bot/internal/domain"
)

// Repo is the delivery journal. It never holds scheduling state.
type Repo interface {
	RecordMessage(ctx context.Context, m *domain.MessageRecord) error
	RecordAck(ctx context.Context, a *domain.AckRecord) error
	Summary(ctx context.Context) (domain.Summary, error)
	Close() error
}
