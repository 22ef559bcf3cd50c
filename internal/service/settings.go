package service

import (
	"fmt"
	"sync"

	"golang.org/x/text/language"

	"github.com/aliskhannn/isg-quiz-bot/internal/domain/entities"
)

// SettingsService holds the owner's read-aloud and display preferences.
type SettingsService struct {
	mu       sync.RWMutex
	settings entities.Settings
}

// NewSettingsService creates a new SettingsService starting from defaults.
func NewSettingsService(defaults entities.Settings) *SettingsService {
	if defaults.Language == "" {
		defaults.Language = entities.DefaultLanguage
	}
	if defaults.Rate == 0 {
		defaults.Rate = entities.DefaultRate
	}
	defaults.Rate = entities.ClampRate(defaults.Rate)

	return &SettingsService{settings: defaults}
}

// Get returns a copy of the current settings.
func (s *SettingsService) Get() entities.Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

// SetLanguage sets the narration language. The tag is canonicalized.
func (s *SettingsService) SetLanguage(lang string) (string, error) {
	tag, err := language.Parse(lang)
	if err != nil {
		return "", fmt.Errorf("invalid language %q: %w", lang, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings.Language = tag.String()
	return s.settings.Language, nil
}

// SetRate sets the narration rate, clamped to the supported range.
func (s *SettingsService) SetRate(rate float64) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings.Rate = entities.ClampRate(rate)
	return s.settings.Rate
}

// ToggleShowAnswer flips the always-show-answer mode and returns the new value.
func (s *SettingsService) ToggleShowAnswer() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings.ShowAnswer = !s.settings.ShowAnswer
	return s.settings.ShowAnswer
}
