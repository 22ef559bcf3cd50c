package service_test

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"

	"github.com/aliskhannn/isg-quiz-bot/internal/domain/entities"
	"github.com/aliskhannn/isg-quiz-bot/internal/repository"
	"github.com/aliskhannn/isg-quiz-bot/internal/service"
	"github.com/aliskhannn/isg-quiz-bot/internal/storage"
	"go.uber.org/zap"
)

func intPtr(n int) *int { return &n }

func question(number *int, text string, correct int) entities.Question {
	return entities.NewQuestion(number, text, []string{"A) a", "B) b", "C) c", "D) d"}, correct)
}

// numberedBank returns a bank whose questions are numbered from..to, in reverse order.
func numberedBank(id string, from, to int) *entities.Bank {
	bank := &entities.Bank{ID: id}
	for n := to; n >= from; n-- {
		bank.Questions = append(bank.Questions, question(intPtr(n), fmt.Sprintf("%d. Soru", n), n%4))
	}
	return bank
}

func newSessionService(store service.SessionStore) *service.SessionService {
	return service.NewSessionService(store, service.NewShufflerWithSource(rand.NewSource(42)), zap.NewNop())
}

// countingStore wraps the in-memory storage and counts saves. Raw records
// put under a key shadow the wrapped storage until the next save.
type countingStore struct {
	*storage.SessionStorage
	mu      sync.Mutex
	saves   int
	raw     map[string][]byte
	saveErr error
	loadErr error
}

func newCountingStore() *countingStore {
	return &countingStore{
		SessionStorage: storage.NewSessionStorage(),
		raw:            make(map[string][]byte),
	}
}

func (s *countingStore) Put(key string, data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.raw[key] = data
}

func (s *countingStore) Save(ctx context.Context, key string, p *entities.PersistedSession) error {
	s.mu.Lock()
	s.saves++
	err := s.saveErr
	if err == nil {
		delete(s.raw, key)
	}
	s.mu.Unlock()
	if err != nil {
		return err
	}
	return s.SessionStorage.Save(ctx, key, p)
}

func (s *countingStore) Load(ctx context.Context, key string) (*entities.PersistedSession, error) {
	if s.loadErr != nil {
		return nil, s.loadErr
	}

	s.mu.Lock()
	data, ok := s.raw[key]
	s.mu.Unlock()
	if ok {
		return repository.DecodeSession(data)
	}

	return s.SessionStorage.Load(ctx, key)
}

func (s *countingStore) Saves() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves
}

var errUnavailable = errors.New("store unavailable")
