package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"appecon/internal/amqp"
	"appecon/internal/config"
	applog "appecon/internal/log"
)

// appecon-worker consumes ledger events and writes an audit trail. It is
// the attachment point for downstream automation (notifications, exports)
// without coupling those concerns to the API server.
func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	logger := applog.Setup()
	logger.Info("Starting appecon-worker")

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}
	if cfg.AMQPURL == "" {
		logger.Error("AMQP_URL is required for the worker")
		os.Exit(1)
	}

	client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", "error", err)
		os.Exit(1)
	}
	defer client.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	err = client.ConsumeLedgerEvents(ctx, func(msg *amqp.LedgerEventMessage) error {
		logger.Info("Ledger event received",
			applog.FieldAction, msg.Action,
			applog.FieldEntryID, msg.EntryID,
			applog.FieldSource, msg.Source,
			"timestamp", msg.Timestamp)
		return nil
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Message consumption failed", "error", err)
		os.Exit(1)
	}

	logger.Info("Worker stopped gracefully")
}
