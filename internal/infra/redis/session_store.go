package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/aliskhannn/isg-quiz-bot/internal/domain/entities"
	"github.com/aliskhannn/isg-quiz-bot/internal/repository"
)

// Config holds connection settings for the Redis session store.
type Config struct {
	Addr     string
	Password string
	DB       int
}

// Client is the subset of the go-redis client used by SessionStore.
type Client interface {
	Get(ctx context.Context, key string) *goredis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *goredis.StatusCmd
}

// NewClient connects to Redis and verifies the connection.
func NewClient(ctx context.Context, cfg Config) (*goredis.Client, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return client, nil
}

// SessionStore keeps session snapshots as plain Redis strings without expiry.
type SessionStore struct {
	client Client
}

// NewSessionStore creates a new SessionStore over client.
func NewSessionStore(client Client) *SessionStore {
	return &SessionStore{client: client}
}

// Load retrieves the snapshot stored under key.
func (s *SessionStore) Load(ctx context.Context, key string) (*entities.PersistedSession, error) {
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, repository.ErrSessionNotFound
		}
		return nil, fmt.Errorf("load session: %w", err)
	}

	return repository.DecodeSession(data)
}

// Save stores the snapshot under key, replacing any previous value.
func (s *SessionStore) Save(ctx context.Context, key string, session *entities.PersistedSession) error {
	data, err := repository.EncodeSession(session)
	if err != nil {
		return err
	}

	if err := s.client.Set(ctx, key, data, 0).Err(); err != nil {
		return fmt.Errorf("save session: %w", err)
	}

	return nil
}
