package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/aliskhannn/isg-quiz-bot/internal/domain/entities"
)

var ErrNoActiveSession = errors.New("no active session")

// ReminderService periodically nudges the owner to continue the active session.
type ReminderService struct {
	sessions ProgressSource
	notifier ReminderNotifier
	schedule string
	location *time.Location
	logger   *zap.Logger
}

// NewReminderService creates a new reminder service. An empty schedule disables reminders.
func NewReminderService(sessions ProgressSource, schedule string, location *time.Location, logger *zap.Logger) *ReminderService {
	if location == nil {
		location = time.UTC
	}
	return &ReminderService{
		sessions: sessions,
		schedule: schedule,
		location: location,
		logger:   logger,
	}
}

// SetNotifier sets the notifier (called after handler is created).
func (s *ReminderService) SetNotifier(notifier ReminderNotifier) {
	s.notifier = notifier
}

// Start runs the cron scheduler until ctx is done.
func (s *ReminderService) Start(ctx context.Context) error {
	if s.schedule == "" {
		s.logger.Info("reminders disabled")
		return nil
	}

	c := cron.New(cron.WithLocation(s.location))

	_, err := c.AddFunc(s.schedule, func() {
		s.logger.Debug("cron triggered: sending study reminder")
		if err := s.SendReminder(ctx); err != nil && !errors.Is(err, ErrNoActiveSession) {
			s.logger.Error("failed to send study reminder", zap.Error(err))
		}
	})
	if err != nil {
		return fmt.Errorf("add cron job %q: %w", s.schedule, err)
	}

	c.Start()
	s.logger.Info("reminder scheduler started", zap.String("schedule", s.schedule))

	<-ctx.Done()

	<-c.Stop().Done()
	s.logger.Info("reminder scheduler stopped")
	return nil
}

// SendReminder sends the current progress of the active session.
func (s *ReminderService) SendReminder(ctx context.Context) error {
	progress := s.sessions.ViewedCount()
	if progress.Total == 0 {
		return ErrNoActiveSession
	}

	if s.notifier == nil {
		return fmt.Errorf("notifier not initialized")
	}

	payload := entities.ReminderPayload{
		BankID:   s.sessions.BankID(),
		Progress: progress,
	}
	if err := s.notifier.SendReminder(ctx, payload); err != nil {
		return fmt.Errorf("send notification: %w", err)
	}

	s.logger.Info("study reminder sent",
		zap.String("bank", payload.BankID),
		zap.Int("viewed", progress.Viewed),
		zap.Int("total", progress.Total),
	)
	return nil
}
