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

	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	_ "github.com/ghuser/invoicing/docs/swagger"
	"github.com/ghuser/invoicing/pkg/app"
	"github.com/ghuser/invoicing/pkg/cache"
	"github.com/ghuser/invoicing/pkg/config"
	"github.com/ghuser/invoicing/pkg/database"
	"github.com/ghuser/invoicing/pkg/events"
	"github.com/ghuser/invoicing/pkg/httpx"
	"github.com/ghuser/invoicing/pkg/logger"
	"github.com/ghuser/invoicing/pkg/telemetry"
	clientApi "github.com/ghuser/invoicing/services/client/application/api"
	invoiceApi "github.com/ghuser/invoicing/services/invoice/application/api"
)

// @title			Invoicing API
// @version		1.0
// @description	Clients, invoices with GST line items, and plain-text invoice export.
// @license.name	MIT
// @license.url	https://opensource.org/licenses/MIT
// @host			localhost:8080
// @BasePath		/api
// @schemes		http https
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

	log := logger.New(cfg)

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
		os.Exit(1)
	}
	defer pool.Close() //nolint:errcheck
	log.Info("database pool connected")

	eventBus, err := events.NewEventBusWithForwarder(cfg.DatabaseURL, cfg.ServiceName, log)
	if err != nil {
		log.Error("failed to setup event bus", "error", err)
		os.Exit(1)
	}
	defer eventBus.Close() //nolint:errcheck

	if err := eventBus.StartForwarder(ctx); err != nil {
		log.Error("failed to start event forwarder", "error", err)
		os.Exit(1)
	}

	appConfig := &app.Application{
		Db:             pool,
		Logger:         log,
		EventBus:       eventBus,
		Metrics:        otelProviders.Billing,
		CurrencySymbol: cfg.CurrencySymbol,
		IsProduction:   cfg.IsProduction(),
	}

	checks := []httpx.HealthCheck{
		{Name: "database", Checker: pool},
		{Name: "event_bus", Checker: eventBus},
	}

	// The invoice cache is optional: reads fall back to Postgres without it.
	redisClient, err := cache.NewRedisClient(ctx, cfg)
	if err != nil {
		log.Warn("redis unavailable, invoice cache disabled", "error", err)
	} else {
		defer redisClient.Close() //nolint:errcheck
		appConfig.Redis = redisClient
		checks = append(checks, httpx.HealthCheck{Name: "redis", Checker: redisClient})
		log.Info("redis connected")
	}

	r := httpx.NewRouter(
		httpx.ServerConfig{
			ServiceName:        cfg.ServiceName,
			IsDevelopment:      cfg.Environment == config.EnvDevelopment,
			CORSAllowedOrigins: cfg.CORSAllowedOrigins,
			RateLimitPerMinute: cfg.RateLimitPerMinute,
		},
		httpx.Middlewares{
			Logger:   logger.Middleware(log),
			Recovery: logger.Recovery(log),
			Sentry:   telemetry.SentryMiddleware(),
			Otel:     otelhttp.NewMiddleware(cfg.ServiceName),
		},
	)

	r.Get("/health", httpx.HealthHandler(checks...))
	r.Get("/metrics", otelProviders.MetricsHandler.ServeHTTP)
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))
	r.Route("/api", func(r chi.Router) {
		registerRoutes(r, appConfig)
	})

	srv := httpx.NewServer(cfg.HTTPAddr, r)

	serverErr := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", srv.Addr, "env", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case <-ctx.Done():
	case err := <-serverErr:
		log.Error("server error", "error", err)
	}

	log.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("forced shutdown", "error", err)
	}
	log.Info("server stopped")
}

// registerRoutes mounts all service routes under /api.
// Add each new service's route function here.
func registerRoutes(r chi.Router, a *app.Application) {
	clientApi.ClientRoutes(r, a)
	invoiceApi.InvoiceRoutes(r, a)
}
