package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	// Registers the "sqlite" driver (pure Go).
	_ "modernc.org/sqlite"

	"github.com/ykvlv/relay-bot/internal/domain"
)

// SQLiteRepo implements Repo using an embedded SQLite database.
type SQLiteRepo struct{ db *sql.DB }

// OpenSQLite opens (or creates) the SQLite database at the given path,
// applies recommended PRAGMAs, runs SQL migrations, and returns a repository.
func OpenSQLite(ctx context.Context, path string) (*SQLiteRepo, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// SQLite is a single-writer engine.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := applyPragmas(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}
	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrations: %w", err)
	}

	return &SQLiteRepo{db: db}, nil
}

func applyPragmas(ctx context.Context, db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

// Close releases the underlying database resources.
func (r *SQLiteRepo) Close() error {
	return r.db.Close()
}

// RecordMessage appends one relayed message to the journal.
func (r *SQLiteRepo) RecordMessage(ctx context.Context, m *domain.MessageRecord) error {
	if m == nil {
		return errors.New("nil message record")
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO messages (user_id, chat_id, message_id, kind, forwarded, error, received_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		int64(m.UserID), m.ChatID, m.MessageID, string(m.Kind),
		boolToInt(m.Forwarded), toNullString(m.Error), toUnix(m.ReceivedAt),
	)
	return err
}

// RecordAck appends one acknowledgment attempt to the journal.
func (r *SQLiteRepo) RecordAck(ctx context.Context, a *domain.AckRecord) error {
	if a == nil {
		return errors.New("nil ack record")
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO acknowledgments (user_id, sent, error, sent_at)
		VALUES (?, ?, ?, ?)`,
		int64(a.UserID), boolToInt(a.Sent), toNullString(a.Error), toUnix(a.SentAt),
	)
	return err
}

// Summary returns journal totals.
func (r *SQLiteRepo) Summary(ctx context.Context) (domain.Summary, error) {
	var s domain.Summary
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*),
		       COALESCE(SUM(CASE WHEN forwarded = 0 THEN 1 ELSE 0 END), 0),
		       COUNT(DISTINCT user_id)
		FROM messages`,
	).Scan(&s.Messages, &s.Failed, &s.Users)
	if err != nil {
		return s, fmt.Errorf("messages summary: %w", err)
	}

	err = r.db.QueryRowContext(ctx, `
		SELECT COUNT(*),
		       COALESCE(SUM(CASE WHEN sent = 0 THEN 1 ELSE 0 END), 0)
		FROM acknowledgments`,
	).Scan(&s.Acks, &s.FailedAcks)
	if err != nil {
		return s, fmt.Errorf("acks summary: %w", err)
	}
	return s, nil
}
