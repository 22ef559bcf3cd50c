package entities

import (
	"errors"
	"fmt"
)

var (
	ErrNoQuestions       = errors.New("persisted session has no questions")
	ErrCursorOutOfBounds = errors.New("persisted cursor is out of bounds")
	ErrMalformedQuestion = errors.New("persisted question is malformed")
)

// Session is a traversal over a bank or a filtered subset of it.
// Cursor is always a valid index into Order while Order is non-empty.
type Session struct {
	BankID string
	Order  []Question
	Cursor int
}

// NewSession creates a session positioned at the first question of order.
func NewSession(bankID string, order []Question) *Session {
	return &Session{
		BankID: bankID,
		Order:  order,
		Cursor: 0,
	}
}

// Empty reports whether the session has nothing to traverse.
func (s *Session) Empty() bool {
	return s == nil || len(s.Order) == 0
}

// Current returns the question under the cursor.
func (s *Session) Current() (Question, bool) {
	if s.Empty() {
		return Question{}, false
	}
	return s.Order[s.Cursor], true
}

// Advance moves to the next question. It returns false at the last question.
func (s *Session) Advance() bool {
	if s.Empty() || s.Cursor >= len(s.Order)-1 {
		return false
	}
	s.Cursor++
	return true
}

// Retreat moves to the previous question. It returns false at the first question.
func (s *Session) Retreat() bool {
	if s.Empty() || s.Cursor <= 0 {
		return false
	}
	s.Cursor--
	return true
}

// JumpToNumber moves the cursor to the first question with number n.
func (s *Session) JumpToNumber(n int) bool {
	if s.Empty() {
		return false
	}
	for i, q := range s.Order {
		if q.HasNumber(n) {
			s.Cursor = i
			return true
		}
	}
	return false
}

// Progress returns how far the cursor has travelled through the order.
func (s *Session) Progress() Progress {
	if s.Empty() {
		return Progress{}
	}
	return Progress{Viewed: s.Cursor + 1, Total: len(s.Order)}
}

// View is the current question together with its position.
type View struct {
	Question Question
	Progress Progress
	Cursor   int
}

// View returns the current question and its position, or false when empty.
func (s *Session) View() (View, bool) {
	q, ok := s.Current()
	if !ok {
		return View{}, false
	}
	return View{Question: q, Progress: s.Progress(), Cursor: s.Cursor}, true
}

// Snapshot returns a durable copy of the session.
func (s *Session) Snapshot() *PersistedSession {
	order := make([]Question, 0, len(s.Order))
	for _, q := range s.Order {
		order = append(order, q.Clone())
	}
	return &PersistedSession{
		ShuffledQuestions: order,
		CurrentIndex:      s.Cursor,
	}
}

// PersistedSession is the durable form of a Session.
type PersistedSession struct {
	ShuffledQuestions []Question `json:"shuffledQuestions"`
	CurrentIndex      int        `json:"currentIndex"`
}

// Validate checks the shape and bounds of a stored session.
func (p *PersistedSession) Validate() error {
	if p == nil || len(p.ShuffledQuestions) == 0 {
		return ErrNoQuestions
	}
	if p.CurrentIndex < 0 || p.CurrentIndex >= len(p.ShuffledQuestions) {
		return fmt.Errorf("%w: %d of %d", ErrCursorOutOfBounds, p.CurrentIndex, len(p.ShuffledQuestions))
	}
	for i, q := range p.ShuffledQuestions {
		if !q.Valid() {
			return fmt.Errorf("%w: position %d", ErrMalformedQuestion, i)
		}
	}
	return nil
}

// Restore builds a session from a validated snapshot.
func (p *PersistedSession) Restore(bankID string) *Session {
	order := make([]Question, 0, len(p.ShuffledQuestions))
	for _, q := range p.ShuffledQuestions {
		order = append(order, q.Clone())
	}
	return &Session{
		BankID: bankID,
		Order:  order,
		Cursor: p.CurrentIndex,
	}
}
