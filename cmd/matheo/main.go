package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"matheo/internal/amqp"
	"matheo/internal/config"
	"matheo/internal/core"
	applog "matheo/internal/log"
	"matheo/internal/services"
	"matheo/internal/storage"
	"matheo/internal/telegram"
)

func main() {
	_ = godotenv.Load()

	logger := applog.New(applog.DefaultConfig())
	slog.SetDefault(logger.Logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var repo core.ExpenseRepository
	switch cfg.DataBackend {
	case "sqlite":
		sqlRepo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
		if err != nil {
			logger.Error("Failed to open SQLite database", "error", err, "path", cfg.SQLiteDBPath)
			os.Exit(1)
		}
		repo = sqlRepo
	default:
		repo = storage.NewMemoryRepository()
	}
	logger.Info("Initialized storage backend", "backend", cfg.DataBackend)

	var events *amqp.Client
	if cfg.AMQPURL != "" {
		client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Error("Failed to connect to AMQP", "error", err)
			os.Exit(1)
		}
		events = client
		logger.Info("Connected to AMQP", "exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
	}

	svc := services.NewExpenseService(repo, events)
	defer func() {
		if err := svc.Close(); err != nil {
			logger.Error("Cleanup error", "error", err)
		}
	}()

	botClient := telegram.NewClient(cfg.TelegramAPI, cfg.BotToken)
	handler := telegram.NewHandler(svc, botClient, cfg.DefaultCurrency, logger)

	g, gctx := errgroup.WithContext(ctx)

	switch cfg.Mode {
	case config.ModeWebhook:
		if cfg.WebhookURL != "" {
			if err := botClient.SetWebhook(ctx, cfg.WebhookURL, cfg.WebhookSecret); err != nil {
				logger.Error("Failed to register webhook", "error", err, "url", cfg.WebhookURL)
				os.Exit(1)
			}
			logger.Info("Webhook registered", "url", cfg.WebhookURL)
		}
		srv := telegram.NewServer(":"+cfg.Port, handler, cfg.WebhookSecret, logger)
		g.Go(func() error {
			logger.Info("Starting webhook server", "port", cfg.Port)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
		g.Go(func() error {
			<-gctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		})
	default:
		g.Go(func() error {
			// Polling and webhooks are mutually exclusive on the Bot API.
			if err := botClient.DeleteWebhook(gctx); err != nil {
				logger.Warn("Failed to delete webhook", "error", err)
			}
			return telegram.NewPoller(botClient, handler, logger).Run(gctx)
		})
	}

	if err := g.Wait(); err != nil {
		logger.Error("Bot stopped with error", "error", err)
		os.Exit(1)
	}
	logger.Info("Bot stopped gracefully")
}
