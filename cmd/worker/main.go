package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/ghuser/invoicing/pkg/app"
	"github.com/ghuser/invoicing/pkg/cache"
	"github.com/ghuser/invoicing/pkg/config"
	"github.com/ghuser/invoicing/pkg/database"
	"github.com/ghuser/invoicing/pkg/events"
	"github.com/ghuser/invoicing/pkg/logger"
	"github.com/ghuser/invoicing/pkg/telemetry"
	clientEvents "github.com/ghuser/invoicing/services/client/domain/events"
	invoiceSvcs "github.com/ghuser/invoicing/services/invoice/application/services"
	invoiceEvents "github.com/ghuser/invoicing/services/invoice/domain/events"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if err := config.ValidateForProduction(cfg); err != nil {
		slog.Error("production config validation failed", "error", err)
		os.Exit(1)
	}

	log := logger.New(cfg).With("process", "worker")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	otelProviders, err := telemetry.Setup(ctx, cfg)
	if err != nil {
		log.Error("failed to setup otel", "error", err)
		os.Exit(1)
	}
	defer otelProviders.Shutdown(context.Background()) //nolint:errcheck

	if err := telemetry.SetupSentry(cfg); err != nil {
		log.Warn("failed to setup sentry, continuing without crash reporting", "error", err)
	}
	defer telemetry.SentryFlush()

	pool, err := database.NewPool(ctx, cfg.DatabaseURL, database.PoolOptions{
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxLifetime: cfg.DBConnMaxLifetime,
	}, log)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer pool.Close() //nolint:errcheck
	log.Info("database pool connected")

	eventBus, err := events.NewEventBus(cfg.DatabaseURL, cfg.ServiceName, log)
	if err != nil {
		log.Error("failed to setup event bus", "error", err)
		os.Exit(1)
	}
	defer eventBus.Close() //nolint:errcheck

	redisClient, err := cache.NewRedisClient(ctx, cfg)
	if err != nil {
		log.Error("failed to connect to redis", "error", err)
		os.Exit(1)
	}
	defer redisClient.Close() //nolint:errcheck
	log.Info("redis connected")

	appConfig := &app.Application{
		Db:             pool,
		Logger:         log,
		EventBus:       eventBus,
		Redis:          redisClient,
		Metrics:        otelProviders.Billing,
		CurrencySymbol: cfg.CurrencySymbol,
		IsProduction:   cfg.IsProduction(),
	}

	if err := registerSubscribers(ctx, appConfig); err != nil {
		log.Error("failed to register subscribers", "error", err)
		os.Exit(1)
	}

	<-ctx.Done()
	log.Info("shutting down worker...")

	// EventBus.Close() (via defer) waits up to 30s for in-flight handlers.
	log.Info("worker stopped")
}

// registerSubscribers wires all domain event handlers.
// Add new topics here as more services publish events.
func registerSubscribers(ctx context.Context, a *app.Application) error {
	invoices := invoiceSvcs.New(a).Invoice

	subs := []struct {
		topic   string
		handler events.Handler
	}{
		{invoiceEvents.TopicInvoiceCreated, handleInvoiceCreated(a, invoices)},
		{invoiceEvents.TopicInvoiceDeleted, handleInvoiceDeleted(a, invoices)},
		{clientEvents.TopicClientCreated, handleClientCreated(a)},
	}

	topics := make([]string, 0, len(subs))
	for _, s := range subs {
		errCh, err := a.EventBus.Subscribe(ctx, s.topic, s.handler)
		if err != nil {
			return err
		}
		go drainErrors(ctx, a.Logger, s.topic, errCh)
		topics = append(topics, s.topic)
	}

	a.Logger.Info("event subscribers registered", "topics", topics)
	return nil
}

// drainErrors logs subscriber failures so the channel never blocks.
func drainErrors(ctx context.Context, log logger.Logger, topic string, errCh <-chan error) {
	for err := range errCh {
		log.ErrorContext(ctx, "subscriber error", "topic", topic, "error", err)
	}
}

// handleInvoiceCreated warms the invoice read cache so the first GET and the
// download are served from Redis. Warming is idempotent.
func handleInvoiceCreated(a *app.Application, svc *invoiceSvcs.InvoiceService) events.Handler {
	return func(ctx context.Context, msg *message.Message) error {
		var evt invoiceEvents.InvoiceCreatedEvent
		if err := json.Unmarshal(msg.Payload, &evt); err != nil {
			a.Logger.ErrorContext(ctx, "dropping malformed invoice.created", "error", err)
			return nil
		}
		if err := svc.WarmCache(ctx, evt.InvoiceID); err != nil {
			return fmt.Errorf("invoice %d: %w", evt.InvoiceID, err)
		}
		a.Logger.InfoContext(ctx, "cache warmed",
			"invoice_id", evt.InvoiceID,
			"invoice_number", evt.InvoiceNumber,
		)
		return nil
	}
}

// handleInvoiceDeleted tombstones a deleted invoice in the cache. The API
// does this too; the event retries it when the API's attempt failed.
func handleInvoiceDeleted(a *app.Application, svc *invoiceSvcs.InvoiceService) events.Handler {
	return func(ctx context.Context, msg *message.Message) error {
		var evt invoiceEvents.InvoiceDeletedEvent
		if err := json.Unmarshal(msg.Payload, &evt); err != nil {
			a.Logger.ErrorContext(ctx, "dropping malformed invoice.deleted", "error", err)
			return nil
		}
		if err := svc.EvictCache(ctx, evt.InvoiceID); err != nil {
			return fmt.Errorf("invoice %d: %w", evt.InvoiceID, err)
		}
		return nil
	}
}

// handleClientCreated writes the audit line for a new client.
func handleClientCreated(a *app.Application) events.Handler {
	return func(ctx context.Context, msg *message.Message) error {
		var evt clientEvents.ClientCreatedEvent
		if err := json.Unmarshal(msg.Payload, &evt); err != nil {
			a.Logger.ErrorContext(ctx, "dropping malformed client.created", "error", err)
			return nil
		}
		a.Logger.InfoContext(ctx, "audit: client created",
			"client_id", evt.ClientID,
			"name", evt.Name,
			"event_id", evt.EventID,
			"occurred_at", evt.OccurredAt,
		)
		return nil
	}
}
