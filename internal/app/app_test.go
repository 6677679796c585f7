package app

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"

	"github.com/ykvlv/relay-bot/internal/domain"
)

type stubSender struct{ err error }

func (s stubSender) SendAck(context.Context, domain.UserID) error { return s.err }

type memJournal struct {
	acks    []domain.AckRecord
	err     error
	summary domain.Summary
}

func (m *memJournal) RecordAck(ctx context.Context, a *domain.AckRecord) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}
	m.acks = append(m.acks, *a)
	return m.err
}

func (m *memJournal) Summary(context.Context) (domain.Summary, error) {
	return m.summary, m.err
}

func TestJournaledSender_RecordsSuccess(t *testing.T) {
	j := &memJournal{}
	s := &journaledSender{next: stubSender{}, journal: j, log: zaptest.NewLogger(t)}

	if err := s.SendAck(context.Background(), 4); err != nil {
		t.Fatalf("send: %v", err)
	}
	if len(j.acks) != 1 || !j.acks[0].Sent || j.acks[0].UserID != 4 {
		t.Fatalf("unexpected journal: %+v", j.acks)
	}
}

func TestJournaledSender_RecordsFailureEvenAfterTimeout(t *testing.T) {
	j := &memJournal{}
	cause := errors.New("blocked")
	s := &journaledSender{next: stubSender{err: cause}, journal: j, log: zaptest.NewLogger(t)}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := s.SendAck(ctx, 4); !errors.Is(err, cause) {
		t.Fatalf("want cause, got %v", err)
	}
	if len(j.acks) != 1 || j.acks[0].Sent || j.acks[0].Error != "blocked" {
		t.Fatalf("unexpected journal: %+v", j.acks)
	}
}

func TestJournaledSender_JournalErrorIsLogged(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	s := &journaledSender{next: stubSender{}, journal: &memJournal{err: errors.New("disk")}, log: zap.New(core)}

	if err := s.SendAck(context.Background(), 1); err != nil {
		t.Fatalf("journal failure must not fail the send: %v", err)
	}
	if logs.FilterMessage("journal ack failed").Len() != 1 {
		t.Fatal("want journal failure logged")
	}
}

func TestStatusz(t *testing.T) {
	j := &memJournal{summary: domain.Summary{Messages: 3, Users: 2, Acks: 1}}
	srv := httptest.NewServer(newMux(func() int { return 5 }, j, zaptest.NewLogger(t)))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/statusz")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("want 200, got %d", resp.StatusCode)
	}
	var got statusResponse
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.PendingAcks != 5 || got.Journal != j.summary {
		t.Fatalf("unexpected status: %+v", got)
	}
}

func TestStatusz_JournalDown(t *testing.T) {
	j := &memJournal{err: errors.New("closed")}
	srv := httptest.NewServer(newMux(func() int { return 0 }, j, zap.NewNop()))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/statusz")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("want 503, got %d", resp.StatusCode)
	}
}

func TestHealthz(t *testing.T) {
	srv := httptest.NewServer(newMux(func() int { return 0 }, &memJournal{}, zap.NewNop()))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("want 200, got %d", resp.StatusCode)
	}
}

func TestWaitGroup(t *testing.T) {
	var wg sync.WaitGroup
	wg.Add(1)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if err := waitGroup(ctx, &wg); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("want deadline exceeded, got %v", err)
	}

	wg.Done()
	if err := waitGroup(context.Background(), &wg); err != nil {
		t.Fatalf("want nil, got %v", err)
	}
}
