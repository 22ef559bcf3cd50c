package telegram

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/aliskhannn/isg-quiz-bot/internal/service"
)

const defaultWordsPerSecond = 2.5

// Narrator delivers utterances to the owner chat as text and holds each
// one for as long as it takes to read it aloud at the configured rate.
type Narrator struct {
	bot            Bot
	chatID         int64
	wordsPerSecond float64
	logger         *zap.Logger

	wait func(ctx context.Context, d time.Duration) error
}

// NewNarrator creates a new Narrator for chatID.
func NewNarrator(bot Bot, chatID int64, wordsPerSecond float64, logger *zap.Logger) *Narrator {
	if wordsPerSecond <= 0 {
		wordsPerSecond = defaultWordsPerSecond
	}
	return &Narrator{
		bot:            bot,
		chatID:         chatID,
		wordsPerSecond: wordsPerSecond,
		logger:         logger,
		wait:           sleepContext,
	}
}

// Speak sends the utterance and returns once its reading time has passed
// or ctx is cancelled.
func (n *Narrator) Speak(ctx context.Context, u service.Utterance) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if _, err := n.bot.Send(newPlainMessage(n.chatID, "🔊 "+u.Text)); err != nil {
		return err
	}

	d := n.duration(u)
	n.logger.Debug("speaking",
		zap.String("language", u.Language),
		zap.Float64("rate", u.Rate),
		zap.Duration("duration", d),
	)

	return n.wait(ctx, d)
}

// duration estimates how long the utterance takes to say.
func (n *Narrator) duration(u service.Utterance) time.Duration {
	rate := u.Rate
	if rate <= 0 {
		rate = 1
	}

	words := len(strings.Fields(u.Text))
	seconds := float64(words) / (n.wordsPerSecond * rate)
	return time.Duration(seconds * float64(time.Second))
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
