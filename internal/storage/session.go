package storage

import (
	"context"
	"sync"

	"github.com/aliskhannn/isg-quiz-bot/internal/domain/entities"
	"github.com/aliskhannn/isg-quiz-bot/internal/repository"
)

// SessionStorage provides in-memory storage for session snapshots by key.
// Snapshots are kept encoded so callers never share memory with the store.
type SessionStorage struct {
	mu       sync.RWMutex
	sessions map[string][]byte
}

// NewSessionStorage creates a new SessionStorage.
func NewSessionStorage() *SessionStorage {
	return &SessionStorage{
		sessions: make(map[string][]byte),
	}
}

// Save stores a snapshot under key.
func (s *SessionStorage) Save(_ context.Context, key string, session *entities.PersistedSession) error {
	data, err := repository.EncodeSession(session)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[key] = data
	return nil
}

// Load retrieves the snapshot stored under key.
func (s *SessionStorage) Load(_ context.Context, key string) (*entities.PersistedSession, error) {
	s.mu.RLock()
	data, ok := s.sessions[key]
	s.mu.RUnlock()

	if !ok {
		return nil, repository.ErrSessionNotFound
	}
	return repository.DecodeSession(data)
}
