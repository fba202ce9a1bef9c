package services

import (
	"github.com/ghuser/invoicing/pkg/app"
	"github.com/ghuser/invoicing/services/client/infrastructure/persistence/postgres"
)

// Services is the application-layer service container for this bounded context.
type Services struct {
	Client *ClientService
}

// New wires the client application services with infrastructure from the Application container.
func New(a *app.Application) *Services {
	var bus postgres.Publisher
	if a.EventBus != nil {
		bus = a.EventBus
	}
	repo := postgres.NewClientRepository(a.Db, bus)
	return &Services{
		Client: NewClientService(repo, a.Metrics),
	}
}
