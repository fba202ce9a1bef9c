package app

import (
	"github.com/ghuser/invoicing/pkg/cache"
	"github.com/ghuser/invoicing/pkg/database"
	"github.com/ghuser/invoicing/pkg/events"
	"github.com/ghuser/invoicing/pkg/logger"
	"github.com/ghuser/invoicing/pkg/telemetry"
)

// Application holds shared infrastructure dependencies for all services.
// Pass it to each service's Routes function during server initialization.
//
// Logging: app.Logger is backed by a trace-aware handler. Use the context
// methods so trace_id, span_id and request_id are attached:
//
//	app.Logger.InfoContext(ctx, "invoice created", "invoice_id", id)
//
// Use app.Logger.Info/Error (no context) only for startup and shutdown messages.
type Application struct {
	Db       *database.Database
	Logger   logger.Logger
	EventBus *events.EventBus
	Redis    *cache.RedisClient // nil disables the invoice cache
	Metrics  *telemetry.BillingMetrics

	// CurrencySymbol prefixes every amount in the text export.
	CurrencySymbol string
	IsProduction   bool
}
