package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/example/dorm-duty-bot/internal/config"
	"github.com/example/dorm-duty-bot/internal/conversation"
	"github.com/example/dorm-duty-bot/internal/holiday"
	"github.com/example/dorm-duty-bot/internal/persistence/sqlite"
	"github.com/example/dorm-duty-bot/internal/render"
	"github.com/example/dorm-duty-bot/internal/transport"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// A .env file is optional; the environment always wins.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	pool, err := sqlite.Open(cfg.SQLiteDSN)
	if err != nil {
		logger.Error("failed to open storage", "error", err)
		os.Exit(1)
	}
	defer func() {
		if cerr := pool.Close(); cerr != nil {
			logger.Error("failed to close storage", "error", cerr)
		}
	}()
	if err := pool.Ping(context.Background()); err != nil {
		logger.Error("storage is unreachable", "error", err)
		os.Exit(1)
	}

	store := sqlite.NewSessionStore(pool, nil)
	if err := store.Migrate(context.Background()); err != nil {
		logger.Error("failed to apply migrations", "error", err)
		os.Exit(1)
	}

	idGenerator := uuid.NewString
	renderer := render.NewLaTeXRenderer(cfg.OutputDir, idGenerator, nil)

	engine := conversation.NewEngine(store, renderer, holiday.Ukrainian(), conversation.Options{
		Catalog:           conversation.CatalogFor(cfg.Locale),
		DefaultHorizon:    cfg.DefaultHorizon,
		HolidayPolicy:     cfg.HolidayPolicy,
		StartDateMode:     conversation.StartDateMode(cfg.StartDateMode),
		EnforceRoomBounds: cfg.EnforceRoomBounds,
		ShowResidents:     cfg.ShowResidents,
		IndexPrefix:       cfg.IndexPrefix,
	}, nil, logger)

	client := transport.NewTelegramClient(transport.TelegramConfig{
		Token:       cfg.BotToken,
		PollTimeout: cfg.PollTimeout,
	}, logger)

	dispatcher := transport.NewDispatcher(engine, client, logger)

	logger.Info("duty bot polling", "locale", cfg.Locale, "holiday_policy", cfg.HolidayPolicy)
	err = client.Poll(ctx, dispatcher.Dispatch)
	dispatcher.Wait()
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("polling stopped", "error", err)
		os.Exit(1)
	}
	logger.Info("duty bot stopped")
}
