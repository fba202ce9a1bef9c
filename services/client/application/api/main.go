package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/ghuser/invoicing/pkg/app"
	"github.com/ghuser/invoicing/pkg/errhttp"
	"github.com/ghuser/invoicing/services/client/application/handlers"
	appsvcs "github.com/ghuser/invoicing/services/client/application/services"
)

// ClientRoutes registers client endpoints on the provided chi router.
func ClientRoutes(r chi.Router, a *app.Application) {
	Register(r, appsvcs.New(a), errhttp.NewWriter(a.Logger, a.IsProduction))
}

// Register mounts /clients with already wired services.
func Register(r chi.Router, svcs *appsvcs.Services, errs *errhttp.Writer) {
	r.Route("/clients", func(r chi.Router) {
		r.Get("/", handlers.NewGetClientsHandler(svcs, errs).Execute)
		r.Post("/", handlers.NewPostClientHandler(svcs, errs).Execute)
	})
}
