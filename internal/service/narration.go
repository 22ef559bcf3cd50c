package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/aliskhannn/isg-quiz-bot/internal/domain/entities"
)

var ErrNarrationRunning = errors.New("narration already running")

// Utterance is what the speech collaborator is asked to say.
type Utterance struct {
	Text     string
	Language string
	Rate     float64
}

// NewUtterance builds the read-aloud text for a question and its answer.
func NewUtterance(q entities.Question, settings entities.Settings) Utterance {
	return Utterance{
		Text:     fmt.Sprintf("%s. Doğru cevap: %s.", q.Text, q.CorrectChoice()),
		Language: settings.Language,
		Rate:     entities.ClampRate(settings.Rate),
	}
}

// Navigator is the part of SessionService the read-aloud task drives.
type Navigator interface {
	Current() (entities.Question, bool)
	Advance(ctx context.Context) (bool, error)
}

// NarrationService reads the session aloud question by question.
// Only one read-aloud task runs at a time.
type NarrationService struct {
	narrator Narrator
	settings *SettingsService
	logger   *zap.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewNarrationService creates a new NarrationService.
func NewNarrationService(narrator Narrator, settings *SettingsService, logger *zap.Logger) *NarrationService {
	return &NarrationService{
		narrator: narrator,
		settings: settings,
		logger:   logger,
	}
}

// ReadAll speaks the current question and its answer, waits for the speech
// to finish, then advances, until the session is complete or ctx is
// cancelled. A cancelled utterance never moves the cursor.
func (n *NarrationService) ReadAll(ctx context.Context, nav Navigator) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		q, ok := nav.Current()
		if !ok {
			return ErrEmptyBank
		}

		if err := n.narrator.Speak(ctx, NewUtterance(q, n.settings.Get())); err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			return fmt.Errorf("speak: %w", err)
		}

		// Stop requested while the last words were spoken.
		if err := ctx.Err(); err != nil {
			return err
		}

		// The save must not be cut short by a stop arriving mid-write.
		more, err := nav.Advance(context.WithoutCancel(ctx))
		if err != nil {
			return err
		}
		if !more {
			return nil
		}
	}
}

// Start runs ReadAll in the background. onDone receives nil when the session
// was read to the end and context.Canceled when stopped.
func (n *NarrationService) Start(ctx context.Context, nav Navigator, onDone func(error)) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.cancel != nil {
		return ErrNarrationRunning
	}

	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	n.cancel = cancel
	n.done = done

	go func() {
		defer close(done)

		err := n.ReadAll(ctx, nav)

		n.mu.Lock()
		if n.done == done {
			n.cancel = nil
			n.done = nil
		}
		n.mu.Unlock()
		cancel()

		if err != nil && !errors.Is(err, context.Canceled) {
			n.logger.Error("narration failed", zap.Error(err))
		}
		if onDone != nil {
			onDone(err)
		}
	}()

	return nil
}

// Stop cancels the running read-aloud task and waits for it to exit.
// Calling Stop when nothing is running is a no-op.
func (n *NarrationService) Stop() {
	n.mu.Lock()
	cancel, done := n.cancel, n.done
	n.cancel = nil
	n.done = nil
	n.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

// Running reports whether a read-aloud task is active.
func (n *NarrationService) Running() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.cancel != nil
}
