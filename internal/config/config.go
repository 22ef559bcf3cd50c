package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/aliskhannn/isg-quiz-bot/internal/domain/entities"
)

var (
	ErrMissingEnvironmentVariables = errors.New("missing required environment variables")
	ErrUnknownStorageDriver        = errors.New("unknown storage driver")
)

// Storage drivers.
const (
	DriverFile     = "file"
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
	DriverSQLite   = "sqlite"
)

// Config holds application configuration loaded from files and environment variables.
type Config struct {
	Env              string    `mapstructure:"env"`           // current application environment (local, dev, production etc)
	TelegramAPIToken string    `mapstructure:"-"`             // Telegram API token loaded from environment
	OwnerChatID      int64     `mapstructure:"owner_chat_id"` // the only chat the bot answers
	Debug            bool      `mapstructure:"debug"`         // verbose Telegram API logging
	Bank             Bank      `mapstructure:"bank"`
	Storage          Storage   `mapstructure:"storage"`
	DB               DB        `mapstructure:"database"`
	Narration        Narration `mapstructure:"narration"`
	Reminder         Reminder  `mapstructure:"reminder"`
}

// Bank lists the selectable question banks.
type Bank struct {
	Files         []BankFile `mapstructure:"files"`          // in selection order
	DefaultChoice int        `mapstructure:"default_choice"` // 1-based position used for invalid choices
	ParseMode     string     `mapstructure:"parse_mode"`     // strict or resync
}

// BankFile is one configured bank.
type BankFile struct {
	ID    string `mapstructure:"id"`
	Title string `mapstructure:"title"`
	Path  string `mapstructure:"path"`
}

// Storage selects where sessions are persisted.
type Storage struct {
	Driver     string `mapstructure:"driver"`      // file, memory, postgres, redis or sqlite
	Dir        string `mapstructure:"dir"`         // directory for the file driver
	SQLitePath string `mapstructure:"sqlite_path"` // database file for the sqlite driver
	Redis      Redis  `mapstructure:"redis"`
}

// Redis contains redis connection parameters.
type Redis struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"-"` // loaded from environment
	DB       int    `mapstructure:"db"`
}

// DB contains database-related configuration parameters.
type DB struct {
	URL             string        `mapstructure:"-"`                 // database connection string loaded from environment
	MaxConnections  int           `mapstructure:"max_connections"`   // maximum number of open connections in the pool
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"` // maximum lifetime of a single connection
}

// Narration holds read-aloud defaults.
type Narration struct {
	Language       string  `mapstructure:"language"`
	Rate           float64 `mapstructure:"rate"`
	WordsPerSecond float64 `mapstructure:"words_per_second"` // reading speed at rate 1
}

// Reminder configures the study nudge.
type Reminder struct {
	Schedule string `mapstructure:"schedule"` // cron spec, empty disables reminders
	Timezone string `mapstructure:"timezone"`
}

// DSN returns the database connection string if it is configured.
func (db DB) DSN() (string, error) {
	if db.URL == "" {
		return "", ErrMissingEnvironmentVariables
	}
	return db.URL, nil
}

// BankSources converts the configured bank files.
func (b Bank) BankSources() []entities.BankSource {
	sources := make([]entities.BankSource, 0, len(b.Files))
	for _, f := range b.Files {
		sources = append(sources, entities.BankSource{
			ID:    f.ID,
			Title: f.Title,
			Path:  f.Path,
		})
	}
	return sources
}

// Location returns the reminder time zone.
func (r Reminder) Location() (*time.Location, error) {
	if r.Timezone == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(r.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", r.Timezone, err)
	}
	return loc, nil
}

// Load reads configuration from config files and environment variables.
func Load() (*Config, error) {
	return LoadFrom("./config")
}

// LoadFrom reads configuration from the given directory and environment variables.
func LoadFrom(dir string) (*Config, error) {
	// A missing .env file is fine; real environment variables still apply.
	_ = godotenv.Load()

	// Initialize Viper instance and base config options.
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)

	// Set default values for configuration keys.
	v.SetDefault("env", "local")
	v.SetDefault("debug", false)
	v.SetDefault("bank.files", []map[string]any{
		{"id": "isg.txt", "title": "İSG 1", "path": "assets/banks/isg.txt"},
		{"id": "isg2.txt", "title": "İSG 2", "path": "assets/banks/isg2.txt"},
		{"id": "isg3.txt", "title": "Eksiltilmiş sorular", "path": "assets/banks/isg3.txt"},
	})
	v.SetDefault("bank.default_choice", 2)
	v.SetDefault("bank.parse_mode", "strict")
	v.SetDefault("storage.driver", DriverFile)
	v.SetDefault("storage.dir", "data/sessions")
	v.SetDefault("storage.sqlite_path", "data/sessions.db")
	v.SetDefault("storage.redis.addr", "localhost:6379")
	v.SetDefault("storage.redis.db", 0)
	v.SetDefault("database.max_connections", 5)
	v.SetDefault("database.max_conn_lifetime", "30m")
	v.SetDefault("narration.language", entities.DefaultLanguage)
	v.SetDefault("narration.rate", entities.DefaultRate)
	v.SetDefault("narration.words_per_second", 2.5)
	v.SetDefault("reminder.schedule", "0 20 * * *")
	v.SetDefault("reminder.timezone", "Europe/Istanbul")

	// Configure environment variable handling and key mapping.
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_")) // map nested keys to ENV style names
	v.AutomaticEnv()

	// Bind explicit environment variables to configuration keys.
	_ = v.BindEnv("telegram_api_token", "TELEGRAM_API_TOKEN")
	_ = v.BindEnv("database_url", "DATABASE_URL")
	_ = v.BindEnv("redis_password", "REDIS_PASSWORD")
	_ = v.BindEnv("owner_chat_id", "OWNER_CHAT_ID")
	_ = v.BindEnv("env", "APP_ENV")

	// Try to read configuration file if present.
	if err := v.ReadInConfig(); err != nil {
		var fileLookupErr viper.ConfigFileNotFoundError
		if !errors.As(err, &fileLookupErr) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	// Unmarshal configuration into strongly typed struct.
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	// Load sensitive values from environment variables.
	cfg.TelegramAPIToken = v.GetString("telegram_api_token")
	if cfg.TelegramAPIToken == "" {
		return nil, fmt.Errorf("%w: TELEGRAM_API_TOKEN", ErrMissingEnvironmentVariables)
	}

	cfg.DB.URL = v.GetString("database_url")
	cfg.Storage.Redis.Password = v.GetString("redis_password")

	switch cfg.Storage.Driver {
	case DriverFile, DriverMemory, DriverRedis, DriverSQLite:
	case DriverPostgres:
		if cfg.DB.URL == "" {
			return nil, fmt.Errorf("%w: DATABASE_URL", ErrMissingEnvironmentVariables)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStorageDriver, cfg.Storage.Driver)
	}

	return &cfg, nil
}
