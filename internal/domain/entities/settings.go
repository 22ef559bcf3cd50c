package entities

const (
	DefaultLanguage = "tr-TR"
	DefaultRate     = 1.0
	MinRate         = 0.5
	MaxRate         = 3.0
)

// Settings stores the owner's read-aloud and display preferences.
type Settings struct {
	Language   string  // BCP 47 tag passed to the speech collaborator
	Rate       float64 // speech rate, clamped to [MinRate, MaxRate]
	ShowAnswer bool    // always mark the correct choice
}

// NewSettings creates settings with default values.
func NewSettings() *Settings {
	return &Settings{
		Language: DefaultLanguage,
		Rate:     DefaultRate,
	}
}

// ClampRate limits a speech rate to the supported range.
func ClampRate(rate float64) float64 {
	return min(max(rate, MinRate), MaxRate)
}
