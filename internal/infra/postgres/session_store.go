package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/aliskhannn/isg-quiz-bot/internal/domain/entities"
	"github.com/aliskhannn/isg-quiz-bot/internal/repository"
)

// DBTX is satisfied by *pgxpool.Pool, *pgx.Conn and pgx.Tx.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const schema = `
CREATE TABLE IF NOT EXISTS quiz_sessions (
	key        TEXT PRIMARY KEY,
	payload    JSONB NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

// SessionStore keeps session snapshots in PostgreSQL.
type SessionStore struct {
	db DBTX
}

// NewSessionStore creates a new SessionStore with the provided database handle.
func NewSessionStore(db DBTX) *SessionStore {
	return &SessionStore{db: db}
}

// Migrate creates the sessions table if it does not exist.
func (s *SessionStore) Migrate(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("migrate quiz_sessions: %w", err)
	}
	return nil
}

// Load retrieves the snapshot stored under key.
func (s *SessionStore) Load(ctx context.Context, key string) (*entities.PersistedSession, error) {
	query := `
		SELECT payload
		FROM quiz_sessions
		WHERE key = $1
	`

	var payload []byte
	err := s.db.QueryRow(ctx, query, key).Scan(&payload)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrSessionNotFound
		}
		return nil, fmt.Errorf("load session: %w", err)
	}

	return repository.DecodeSession(payload)
}

// Save upserts the snapshot under key.
func (s *SessionStore) Save(ctx context.Context, key string, session *entities.PersistedSession) error {
	payload, err := repository.EncodeSession(session)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO quiz_sessions (key, payload, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE
		SET payload = EXCLUDED.payload, updated_at = EXCLUDED.updated_at
	`

	if _, err := s.db.Exec(ctx, query, key, payload); err != nil {
		return fmt.Errorf("save session: %w", err)
	}

	return nil
}
