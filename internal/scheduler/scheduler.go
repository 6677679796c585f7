package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ykvlv/relay-bot/internal/domain"
)

const defaultSendTimeout = 10 * time.Second

// Sender delivers the "received" acknowledgment to a user.
// telegram.Client implements this (method: SendAck).
type Sender interface {
	SendAck(ctx context.Context, user domain.UserID) error
}

// action is one pending acknowledgment. Identity is the pointer itself.
type action struct {
	id        uuid.UUID
	user      domain.UserID
	timer     Timer
	createdAt time.Time
	fireAt    time.Time
}

// Scheduler keeps at most one pending acknowledgment per user. Every Notify
// for a user replaces the previous one; an action that is left alone for the
// full delay fires once and removes itself.
type Scheduler struct {
	delay       time.Duration
	sendTimeout time.Duration
	sender      Sender
	log         *zap.Logger
	clock       Clock

	mu      sync.Mutex
	pending map[domain.UserID]*action
	closed  bool

	inflight sync.WaitGroup
	ctx      context.Context
	cancel   context.CancelFunc
}

// Option customizes a Scheduler.
type Option func(*Scheduler)

// WithClock replaces the wall clock (tests use a manual one).
func WithClock(c Clock) Option {
	return func(s *Scheduler) { s.clock = c }
}

// WithSendTimeout bounds each acknowledgment send.
func WithSendTimeout(d time.Duration) Option {
	return func(s *Scheduler) {
		if d > 0 {
			s.sendTimeout = d
		}
	}
}

// New creates a Scheduler firing acknowledgments delay after the last Notify.
func New(delay time.Duration, sender Sender, log *zap.Logger, opts ...Option) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	s := &Scheduler{
		delay:       delay,
		sendTimeout: defaultSendTimeout,
		sender:      sender,
		log:         log,
		clock:       realClock{},
		pending:     make(map[domain.UserID]*action),
		ctx:         ctx,
		cancel:      cancel,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Notify records activity for user: any pending acknowledgment is cancelled
// and a fresh one is armed. Safe for concurrent use.
func (s *Scheduler) Notify(user domain.UserID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}

	if old, ok := s.pending[user]; ok {
		// A false return means old is already firing; fire() sees it was
		// replaced and backs off.
		old.timer.Stop()
	}

	now := s.clock.Now()
	a := &action{
		id:        uuid.New(),
		user:      user,
		createdAt: now,
		fireAt:    now.Add(s.delay),
	}
	a.timer = s.clock.AfterFunc(s.delay, func() { s.fire(a) })
	s.pending[user] = a

	s.log.Debug("ack armed",
		zap.Int64("userID", int64(user)),
		zap.String("action", a.id.String()),
		zap.Time("fireAt", a.fireAt),
	)
}

// fire runs on the timer goroutine.
func (s *Scheduler) fire(a *action) {
	s.mu.Lock()
	if cur, ok := s.pending[a.user]; !ok || cur != a {
		s.mu.Unlock()
		s.log.Debug("ack superseded",
			zap.Int64("userID", int64(a.user)),
			zap.String("action", a.id.String()),
		)
		return
	}
	delete(s.pending, a.user)
	s.inflight.Add(1)
	s.mu.Unlock()
	defer s.inflight.Done()

	ctx, cancel := context.WithTimeout(s.ctx, s.sendTimeout)
	defer cancel()

	if err := s.sender.SendAck(ctx, a.user); err != nil {
		s.log.Error("ack send failed",
			zap.Error(err),
			zap.Int64("userID", int64(a.user)),
			zap.String("action", a.id.String()),
		)
		return
	}
	s.log.Info("ack sent",
		zap.Int64("userID", int64(a.user)),
		zap.Duration("quiet", s.clock.Now().Sub(a.createdAt)),
	)
}

// Pending returns the number of armed acknowledgments.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

// IsPending reports whether user has an armed acknowledgment.
func (s *Scheduler) IsPending(user domain.UserID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.pending[user]
	return ok
}

// Close disarms every pending acknowledgment, rejects further Notify calls
// and waits for sends already in progress until ctx is done.
// Disarmed acknowledgments are dropped.
func (s *Scheduler) Close(ctx context.Context) error {
	s.mu.Lock()
	s.closed = true
	dropped := len(s.pending)
	for user, a := range s.pending {
		a.timer.Stop()
		delete(s.pending, user)
	}
	s.mu.Unlock()

	if dropped > 0 {
		s.log.Info("scheduler stopping", zap.Int("dropped", dropped))
	}

	done := make(chan struct{})
	go func() {
		s.inflight.Wait()
		close(done)
	}()

	defer s.cancel()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
