package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite" // driver: sqlite

	"github.com/aliskhannn/isg-quiz-bot/internal/domain/entities"
	"github.com/aliskhannn/isg-quiz-bot/internal/repository"
)

const schema = `
CREATE TABLE IF NOT EXISTS quiz_sessions (
	key        TEXT PRIMARY KEY,
	payload    TEXT NOT NULL,
	updated_at INTEGER NOT NULL DEFAULT (strftime('%s', 'now'))
);`

// Open opens the database at path and ensures the schema exists.
func Open(ctx context.Context, path string) (*sql.DB, error) {
	if path == "" {
		path = "file:isg-quiz.db?cache=shared&mode=rwc&_pragma=busy_timeout(5000)"
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	return db, nil
}

// SessionStore keeps session snapshots in a SQLite table.
type SessionStore struct {
	db *sql.DB
}

// NewSessionStore creates a new SessionStore over db.
func NewSessionStore(db *sql.DB) *SessionStore {
	return &SessionStore{db: db}
}

// Load retrieves the snapshot stored under key.
func (s *SessionStore) Load(ctx context.Context, key string) (*entities.PersistedSession, error) {
	var payload string
	err := s.db.QueryRowContext(ctx, `SELECT payload FROM quiz_sessions WHERE key = ?`, key).Scan(&payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrSessionNotFound
		}
		return nil, fmt.Errorf("load session: %w", err)
	}

	return repository.DecodeSession([]byte(payload))
}

// Save upserts the snapshot under key.
func (s *SessionStore) Save(ctx context.Context, key string, session *entities.PersistedSession) error {
	payload, err := repository.EncodeSession(session)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO quiz_sessions (key, payload, updated_at)
		VALUES (?, ?, strftime('%s', 'now'))
		ON CONFLICT (key) DO UPDATE
		SET payload = excluded.payload, updated_at = excluded.updated_at
	`

	if _, err := s.db.ExecContext(ctx, query, key, string(payload)); err != nil {
		return fmt.Errorf("save session: %w", err)
	}

	return nil
}
