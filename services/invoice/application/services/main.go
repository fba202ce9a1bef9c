package services

import (
	"github.com/ghuser/invoicing/pkg/app"
	"github.com/ghuser/invoicing/pkg/cache"
	"github.com/ghuser/invoicing/services/invoice/infrastructure/persistence/postgres"
)

// Services is the application-layer service container for this bounded context.
type Services struct {
	Invoice *InvoiceService
}

// New wires the invoice application services with infrastructure from the Application container.
func New(a *app.Application) *Services {
	var bus postgres.Publisher
	if a.EventBus != nil {
		bus = a.EventBus
	}
	opts := Options{
		Metrics:        a.Metrics,
		CurrencySymbol: a.CurrencySymbol,
		Logger:         a.Logger,
	}
	if a.Redis != nil {
		opts.Cache = cache.NewInvoiceCache(a.Redis)
	}
	return &Services{
		Invoice: NewInvoiceService(postgres.NewInvoiceRepository(a.Db, bus), opts),
	}
}
