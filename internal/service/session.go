package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/aliskhannn/isg-quiz-bot/internal/domain/entities"
	"github.com/aliskhannn/isg-quiz-bot/internal/repository"
)

var (
	ErrEmptyBank   = errors.New("bank has no questions")
	ErrEmptySubset = errors.New("no questions in the requested range")
)

// ResumeFunc decides whether a saved session should replace a fresh one.
type ResumeFunc func(saved *entities.PersistedSession) bool

// ResumeAlways resumes any valid saved session.
func ResumeAlways(*entities.PersistedSession) bool { return true }

// ResumeNever always starts fresh.
func ResumeNever(*entities.PersistedSession) bool { return false }

// SessionService owns the active traversal over a bank and persists it
// after every change.
type SessionService struct {
	store    SessionStore
	shuffler *Shuffler
	logger   *zap.Logger

	mu      sync.Mutex
	session *entities.Session
}

// NewSessionService creates a new SessionService in the Empty state.
func NewSessionService(store SessionStore, shuffler *Shuffler, logger *zap.Logger) *SessionService {
	return &SessionService{
		store:    store,
		shuffler: shuffler,
		logger:   logger,
	}
}

// Saved returns the stored session for a bank, or nil if there is none.
// A corrupt record is reported as absent.
func (s *SessionService) Saved(ctx context.Context, bankID string) (*entities.PersistedSession, error) {
	key := repository.SessionKey(bankID)

	saved, err := s.store.Load(ctx, key)
	switch {
	case err == nil:
		return saved, nil
	case errors.Is(err, repository.ErrSessionNotFound):
		return nil, nil
	case errors.Is(err, repository.ErrCorruptSession):
		s.logger.Warn("ignoring corrupt saved session",
			zap.String("key", key),
			zap.Error(err),
		)
		return nil, nil
	default:
		return nil, fmt.Errorf("load saved session: %w", err)
	}
}

// StartSequential starts a session over bank ordered by question number.
// If a saved session exists and resume accepts it, the saved order and cursor
// are used instead. It reports whether the saved session was resumed.
func (s *SessionService) StartSequential(ctx context.Context, bank *entities.Bank, resume ResumeFunc) (bool, error) {
	if bank == nil {
		return false, ErrEmptyBank
	}

	saved, err := s.Saved(ctx, bank.ID)
	if err != nil {
		return false, err
	}

	if saved != nil && resume != nil && resume(saved) {
		s.mu.Lock()
		s.session = saved.Restore(bank.ID)
		s.mu.Unlock()

		s.logger.Info("session resumed",
			zap.String("bank", bank.ID),
			zap.Int("cursor", saved.CurrentIndex),
			zap.Int("total", len(saved.ShuffledQuestions)),
		)
		return true, nil
	}

	session := entities.NewSession(bank.ID, sortedByNumber(bank.Questions))

	s.mu.Lock()
	defer s.mu.Unlock()

	s.session = session
	s.logger.Info("sequential session started",
		zap.String("bank", bank.ID),
		zap.Int("total", len(session.Order)),
	)

	return false, s.persistLocked(ctx)
}

// StartShuffled starts a session over a random permutation of bank. When r is
// non-nil and r.Start <= r.End only questions numbered within r are used.
// On error the previous session is left untouched.
func (s *SessionService) StartShuffled(ctx context.Context, bank *entities.Bank, r *entities.Range) error {
	if bank.Empty() {
		return ErrEmptyBank
	}

	pool := bank.Questions
	if r != nil && r.Start <= r.End {
		pool = filterRange(bank.Questions, *r)
		if len(pool) == 0 {
			return fmt.Errorf("%w: %d-%d", ErrEmptySubset, r.Start, r.End)
		}
	}

	session := entities.NewSession(bank.ID, s.shuffler.Shuffled(pool))

	s.mu.Lock()
	defer s.mu.Unlock()

	s.session = session
	s.logger.Info("shuffled session started",
		zap.String("bank", bank.ID),
		zap.Int("total", len(session.Order)),
	)

	return s.persistLocked(ctx)
}

// Current returns the question under the cursor, or false in the Empty state.
func (s *SessionService) Current() (entities.Question, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session.Current()
}

// View returns the current question with its progress and cursor, all read
// under one lock so they always describe the same question.
func (s *SessionService) View() (entities.View, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session.View()
}

// Reset drops the active session. Stored sessions are kept.
func (s *SessionService) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session != nil {
		s.logger.Info("session closed", zap.String("bank", s.session.BankID))
	}
	s.session = nil
}

// Cursor returns the 0-based cursor of the active session.
func (s *SessionService) Cursor() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session.Empty() {
		return 0
	}
	return s.session.Cursor
}

// BankID returns the bank of the active session, or "" in the Empty state.
func (s *SessionService) BankID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session == nil {
		return ""
	}
	return s.session.BankID
}

// Advance moves to the next question. It returns false when the session is
// complete, leaving the cursor on the last question.
func (s *SessionService) Advance(ctx context.Context) (bool, error) {
	return s.move(ctx, (*entities.Session).Advance)
}

// Retreat moves to the previous question. It returns false at the first question.
func (s *SessionService) Retreat(ctx context.Context) (bool, error) {
	return s.move(ctx, (*entities.Session).Retreat)
}

// JumpToNumber moves to the first question numbered n. It returns false if
// there is no such question, leaving the cursor unchanged.
func (s *SessionService) JumpToNumber(ctx context.Context, n int) (bool, error) {
	return s.move(ctx, func(session *entities.Session) bool {
		return session.JumpToNumber(n)
	})
}

// ViewedCount returns the progress through the active session.
func (s *SessionService) ViewedCount() entities.Progress {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session.Progress()
}

func (s *SessionService) move(ctx context.Context, step func(*entities.Session) bool) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session.Empty() || !step(s.session) {
		return false, nil
	}

	return true, s.persistLocked(ctx)
}

// persistLocked saves the active session. Empty sessions are not stored.
func (s *SessionService) persistLocked(ctx context.Context) error {
	if s.session.Empty() {
		return nil
	}

	key := repository.SessionKey(s.session.BankID)
	if err := s.store.Save(ctx, key, s.session.Snapshot()); err != nil {
		s.logger.Error("failed to persist session",
			zap.String("key", key),
			zap.Int("cursor", s.session.Cursor),
			zap.Error(err),
		)
		return fmt.Errorf("persist session: %w", err)
	}

	return nil
}
