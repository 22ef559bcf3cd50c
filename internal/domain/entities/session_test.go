package entities_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aliskhannn/isg-quiz-bot/internal/domain/entities"
)

func intPtr(n int) *int { return &n }

func choices() []string { return []string{"A) a", "B) b", "C) c", "D) d"} }

func sessionOf(numbers ...int) *entities.Session {
	order := make([]entities.Question, 0, len(numbers))
	for _, n := range numbers {
		order = append(order, entities.NewQuestion(intPtr(n), "soru", choices(), 0))
	}
	return entities.NewSession("isg.txt", order)
}

func TestSession_Navigation(t *testing.T) {
	s := sessionOf(1, 2, 3)

	assert.False(t, s.Retreat())
	assert.Equal(t, 0, s.Cursor)

	assert.True(t, s.Advance())
	assert.True(t, s.Advance())
	assert.False(t, s.Advance())
	assert.Equal(t, 2, s.Cursor)
	assert.Equal(t, entities.Progress{Viewed: 3, Total: 3}, s.Progress())
	assert.True(t, s.Progress().Complete())

	assert.True(t, s.Retreat())
	q, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, 2, *q.Number)
}

func TestSession_Empty(t *testing.T) {
	var s *entities.Session
	assert.True(t, s.Empty())

	_, ok := s.Current()
	assert.False(t, ok)
	assert.False(t, s.Advance())
	assert.False(t, s.Retreat())
	assert.False(t, s.JumpToNumber(1))
	assert.Equal(t, entities.Progress{}, s.Progress())
	assert.False(t, s.Progress().Complete())

	_, ok = s.View()
	assert.False(t, ok)
}

func TestSession_View(t *testing.T) {
	s := sessionOf(4, 5, 6)
	require.True(t, s.Advance())

	view, ok := s.View()
	require.True(t, ok)
	assert.Equal(t, 5, *view.Question.Number)
	assert.Equal(t, 1, view.Cursor)
	assert.Equal(t, entities.Progress{Viewed: 2, Total: 3}, view.Progress)
}

func TestSession_JumpToNumber(t *testing.T) {
	s := sessionOf(5, 7, 7, 9)

	assert.True(t, s.JumpToNumber(7))
	assert.Equal(t, 1, s.Cursor)

	assert.False(t, s.JumpToNumber(8))
	assert.Equal(t, 1, s.Cursor)
}

func TestSession_SnapshotRestore(t *testing.T) {
	s := sessionOf(3, 1, 2)
	s.Advance()

	snap := s.Snapshot()
	require.NoError(t, snap.Validate())
	assert.Equal(t, 1, snap.CurrentIndex)

	*snap.ShuffledQuestions[0].Number = 99
	assert.Equal(t, 3, *s.Order[0].Number, "snapshot must not share memory")

	restored := snap.Restore("isg.txt")
	assert.Equal(t, "isg.txt", restored.BankID)
	assert.Equal(t, 1, restored.Cursor)
	assert.Equal(t, 99, *restored.Order[0].Number)
}

func TestPersistedSession_Validate(t *testing.T) {
	valid := entities.NewQuestion(nil, "soru", choices(), 3)

	tests := []struct {
		name    string
		session *entities.PersistedSession
		wantErr error
	}{
		{name: "nil", session: nil, wantErr: entities.ErrNoQuestions},
		{name: "no questions", session: &entities.PersistedSession{}, wantErr: entities.ErrNoQuestions},
		{
			name:    "cursor past end",
			session: &entities.PersistedSession{ShuffledQuestions: []entities.Question{valid}, CurrentIndex: 1},
			wantErr: entities.ErrCursorOutOfBounds,
		},
		{
			name:    "negative cursor",
			session: &entities.PersistedSession{ShuffledQuestions: []entities.Question{valid}, CurrentIndex: -1},
			wantErr: entities.ErrCursorOutOfBounds,
		},
		{
			name: "three choices",
			session: &entities.PersistedSession{ShuffledQuestions: []entities.Question{
				entities.NewQuestion(nil, "soru", choices()[:3], 0),
			}},
			wantErr: entities.ErrMalformedQuestion,
		},
		{
			name: "answer out of range",
			session: &entities.PersistedSession{ShuffledQuestions: []entities.Question{
				entities.NewQuestion(nil, "soru", choices(), 4),
			}},
			wantErr: entities.ErrMalformedQuestion,
		},
		{
			name:    "valid",
			session: &entities.PersistedSession{ShuffledQuestions: []entities.Question{valid}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.session.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestRange_Contains(t *testing.T) {
	r := entities.Range{Start: 10, End: 20}

	assert.True(t, r.Contains(entities.NewQuestion(intPtr(10), "a", choices(), 0)))
	assert.True(t, r.Contains(entities.NewQuestion(intPtr(20), "a", choices(), 0)))
	assert.False(t, r.Contains(entities.NewQuestion(intPtr(21), "a", choices(), 0)))
	assert.False(t, r.Contains(entities.NewQuestion(nil, "a", choices(), 0)))
}

func TestClampRate(t *testing.T) {
	assert.Equal(t, 0.5, entities.ClampRate(0))
	assert.Equal(t, 3.0, entities.ClampRate(4))
	assert.Equal(t, 1.25, entities.ClampRate(1.25))
}
