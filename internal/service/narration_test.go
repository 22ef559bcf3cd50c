package service_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/aliskhannn/isg-quiz-bot/internal/domain/entities"
	"github.com/aliskhannn/isg-quiz-bot/internal/service"
)

// fakeNarrator records utterances. When block is set, Speak waits for
// cancellation and signals started first.
type fakeNarrator struct {
	mu      sync.Mutex
	spoken  []service.Utterance
	block   bool
	started chan struct{}
}

func (n *fakeNarrator) Speak(ctx context.Context, u service.Utterance) error {
	n.mu.Lock()
	n.spoken = append(n.spoken, u)
	block, started := n.block, n.started
	n.mu.Unlock()

	if !block {
		return nil
	}
	if started != nil {
		select {
		case started <- struct{}{}:
		default:
		}
	}
	<-ctx.Done()
	return ctx.Err()
}

func (n *fakeNarrator) Spoken() []service.Utterance {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]service.Utterance(nil), n.spoken...)
}

func newNarration(n service.Narrator) *service.NarrationService {
	return service.NewNarrationService(n, service.NewSettingsService(entities.Settings{}), zap.NewNop())
}

func TestNewUtterance(t *testing.T) {
	q := entities.NewQuestion(intPtr(501), "501. İş kazası nedir?",
		[]string{"A) Planlı", "B) Kasıtlı", "C) Beklenmeyen olay", "D) Hiçbiri"}, 2)

	u := service.NewUtterance(q, entities.Settings{Language: "tr-TR", Rate: 9})

	assert.Equal(t, "501. İş kazası nedir?. Doğru cevap: C) Beklenmeyen olay.", u.Text)
	assert.Equal(t, "tr-TR", u.Language)
	assert.Equal(t, 3.0, u.Rate)
}

func TestNarrationService_ReadAllToEnd(t *testing.T) {
	ctx := context.Background()
	sessions := newSessionService(newCountingStore())
	_, err := sessions.StartSequential(ctx, numberedBank("isg.txt", 1, 4), service.ResumeNever)
	require.NoError(t, err)

	narrator := &fakeNarrator{}
	require.NoError(t, newNarration(narrator).ReadAll(ctx, sessions))

	spoken := narrator.Spoken()
	require.Len(t, spoken, 4)
	assert.Contains(t, spoken[0].Text, "1. Soru")
	assert.Contains(t, spoken[3].Text, "4. Soru")
	assert.Equal(t, 3, sessions.Cursor())
}

func TestNarrationService_ReadAllEmpty(t *testing.T) {
	err := newNarration(&fakeNarrator{}).ReadAll(context.Background(), newSessionService(newCountingStore()))
	assert.ErrorIs(t, err, service.ErrEmptyBank)
}

func TestNarrationService_StopKeepsCursor(t *testing.T) {
	ctx := context.Background()
	sessions := newSessionService(newCountingStore())
	_, err := sessions.StartSequential(ctx, numberedBank("isg.txt", 1, 4), service.ResumeNever)
	require.NoError(t, err)
	_, err = sessions.JumpToNumber(ctx, 2)
	require.NoError(t, err)

	narrator := &fakeNarrator{block: true, started: make(chan struct{}, 1)}
	narration := newNarration(narrator)

	done := make(chan error, 1)
	require.NoError(t, narration.Start(ctx, sessions, func(err error) { done <- err }))
	assert.True(t, narration.Running())

	select {
	case <-narrator.started:
	case <-time.After(time.Second):
		t.Fatal("narration did not start speaking")
	}

	narration.Stop()
	narration.Stop()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("narration did not finish")
	}

	assert.False(t, narration.Running())
	assert.Equal(t, 2, currentNumber(t, sessions))
	assert.Len(t, narrator.Spoken(), 1)
}

func TestNarrationService_StartWhileRunning(t *testing.T) {
	ctx := context.Background()
	sessions := newSessionService(newCountingStore())
	_, err := sessions.StartSequential(ctx, numberedBank("isg.txt", 1, 2), service.ResumeNever)
	require.NoError(t, err)

	narration := newNarration(&fakeNarrator{block: true})
	require.NoError(t, narration.Start(ctx, sessions, nil))
	defer narration.Stop()

	assert.ErrorIs(t, narration.Start(ctx, sessions, nil), service.ErrNarrationRunning)
}

func TestNarrationService_StopWhenIdle(t *testing.T) {
	narration := newNarration(&fakeNarrator{})
	narration.Stop()
	assert.False(t, narration.Running())
}
