package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/ghuser/invoicing/pkg/app"
	"github.com/ghuser/invoicing/pkg/errhttp"
	"github.com/ghuser/invoicing/services/invoice/application/handlers"
	appsvcs "github.com/ghuser/invoicing/services/invoice/application/services"
)

// InvoiceRoutes registers invoice endpoints on the provided chi router.
func InvoiceRoutes(r chi.Router, a *app.Application) {
	Register(r, appsvcs.New(a), errhttp.NewWriter(a.Logger, a.IsProduction))
}

// Register mounts /invoices with already wired services.
func Register(r chi.Router, svcs *appsvcs.Services, errs *errhttp.Writer) {
	r.Route("/invoices", func(r chi.Router) {
		r.Get("/", handlers.NewGetInvoicesHandler(svcs, errs).Execute)
		r.Post("/", handlers.NewPostInvoiceHandler(svcs, errs).Execute)
		r.Get("/{id}", handlers.NewGetInvoiceHandler(svcs, errs).Execute)
		r.Delete("/{id}", handlers.NewDeleteInvoiceHandler(svcs, errs).Execute)
		r.Get("/{id}/download", handlers.NewDownloadInvoiceHandler(svcs, errs).Execute)
	})
}
