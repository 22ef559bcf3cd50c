package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/isg-quiz-bot/internal/config"
	"github.com/aliskhannn/isg-quiz-bot/internal/delivery/telegram"
	"github.com/aliskhannn/isg-quiz-bot/internal/domain/entities"
	"github.com/aliskhannn/isg-quiz-bot/internal/infra/postgres"
	"github.com/aliskhannn/isg-quiz-bot/internal/infra/redis"
	"github.com/aliskhannn/isg-quiz-bot/internal/infra/sqlite"
	"github.com/aliskhannn/isg-quiz-bot/internal/logger"
	"github.com/aliskhannn/isg-quiz-bot/internal/parser"
	"github.com/aliskhannn/isg-quiz-bot/internal/repository"
	"github.com/aliskhannn/isg-quiz-bot/internal/service"
	"github.com/aliskhannn/isg-quiz-bot/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	lg, err := logger.New(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = lg.Sync() }()

	if err := run(cfg, lg); err != nil && !errors.Is(err, context.Canceled) {
		lg.Fatal("bot stopped", zap.Error(err))
	}
	lg.Info("shutdown complete")
}

func run(cfg *config.Config, lg *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	bot, err := tgbotapi.NewBotAPI(cfg.TelegramAPIToken)
	if err != nil {
		return fmt.Errorf("create bot: %w", err)
	}
	bot.Debug = cfg.Debug
	lg.Info("authorized", zap.String("account", bot.Self.UserName))

	if _, err := bot.Request(tgbotapi.NewSetMyCommands(telegram.Commands()...)); err != nil {
		lg.Warn("failed to set bot commands", zap.Error(err))
	}

	if cfg.OwnerChatID == 0 {
		lg.Warn("owner_chat_id is not set; the bot will only reply with the caller's chat id")
	}

	store, closeStore, err := openStore(ctx, cfg, lg)
	if err != nil {
		return err
	}
	defer closeStore()

	p, err := parser.New(parser.Mode(cfg.Bank.ParseMode))
	if err != nil {
		return err
	}

	sources := cfg.Bank.BankSources()
	bankService := service.NewBankService(repository.NewBankRepository(sources), p, cfg.Bank.DefaultChoice, lg)
	sessionService := service.NewSessionService(store, service.NewShuffler(), lg)
	settingsService := service.NewSettingsService(entities.Settings{
		Language: cfg.Narration.Language,
		Rate:     cfg.Narration.Rate,
	})

	narrator := telegram.NewNarrator(bot, cfg.OwnerChatID, cfg.Narration.WordsPerSecond, lg)
	narrationService := service.NewNarrationService(narrator, settingsService, lg)

	location, err := cfg.Reminder.Location()
	if err != nil {
		return err
	}
	reminderService := service.NewReminderService(sessionService, cfg.Reminder.Schedule, location, lg)
	reminderService.SetNotifier(telegram.NewNotifier(bot, cfg.OwnerChatID, storage.NewReminderStorage(), sources, lg))

	go func() {
		if err := reminderService.Start(ctx); err != nil {
			lg.Error("reminder scheduler failed", zap.Error(err))
		}
	}()

	handler := telegram.NewHandler(
		bot,
		lg,
		cfg.OwnerChatID,
		sessionService,
		bankService,
		narrationService,
		settingsService,
		service.NewAnswerEvaluator(),
	)

	err = handler.Run(ctx)
	bot.StopReceivingUpdates()
	lg.Info("shutdown signal received")
	return err
}

// openStore connects the configured session store. The returned func releases it.
func openStore(ctx context.Context, cfg *config.Config, lg *zap.Logger) (service.SessionStore, func(), error) {
	lg.Info("opening session store", zap.String("driver", cfg.Storage.Driver))

	switch cfg.Storage.Driver {
	case config.DriverMemory:
		return storage.NewSessionStorage(), func() {}, nil

	case config.DriverPostgres:
		dsn, err := cfg.DB.DSN()
		if err != nil {
			return nil, nil, err
		}
		pool, err := postgres.NewPool(ctx, dsn, postgres.PoolConfig{
			MaxConns:        int32(cfg.DB.MaxConnections),
			MaxConnLifetime: cfg.DB.MaxConnLifetime,
		})
		if err != nil {
			return nil, nil, err
		}
		store := postgres.NewSessionStore(pool)
		if err := store.Migrate(ctx); err != nil {
			pool.Close()
			return nil, nil, err
		}
		return store, pool.Close, nil

	case config.DriverRedis:
		client, err := redis.NewClient(ctx, redis.Config{
			Addr:     cfg.Storage.Redis.Addr,
			Password: cfg.Storage.Redis.Password,
			DB:       cfg.Storage.Redis.DB,
		})
		if err != nil {
			return nil, nil, err
		}
		return redis.NewSessionStore(client), func() {
			if err := client.Close(); err != nil {
				lg.Warn("failed to close redis client", zap.Error(err))
			}
		}, nil

	case config.DriverSQLite:
		db, err := sqlite.Open(ctx, cfg.Storage.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return sqlite.NewSessionStore(db), func() {
			if err := db.Close(); err != nil {
				lg.Warn("failed to close sqlite database", zap.Error(err))
			}
		}, nil

	default:
		store, err := repository.NewFileSessionRepository(cfg.Storage.Dir)
		if err != nil {
			return nil, nil, err
		}
		return store, func() {}, nil
	}
}
