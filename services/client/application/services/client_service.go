package services

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/ghuser/invoicing/pkg/telemetry"
	"github.com/ghuser/invoicing/services/client/domain/models"
	"github.com/ghuser/invoicing/services/client/domain/repositories"
)

var tracer = otel.Tracer("github.com/ghuser/invoicing/services/client")

// ClientService orchestrates creation and listing of Clients.
// Event publishing is handled by the repository layer (outbox pattern).
type ClientService struct {
	repo    repositories.ClientRepository
	metrics *telemetry.BillingMetrics
}

// NewClientService returns a ClientService. metrics may be nil.
func NewClientService(repo repositories.ClientRepository, metrics *telemetry.BillingMetrics) *ClientService {
	return &ClientService{repo: repo, metrics: metrics}
}

// Create trims and validates name, then persists a new client.
func (s *ClientService) Create(ctx context.Context, name string) (*models.Client, error) {
	ctx, span := tracer.Start(ctx, "ClientService.Create")
	defer span.End()

	clientName, err := models.NewClientName(name)
	if err != nil {
		return nil, err
	}

	client := models.NewClient(clientName)
	if err := s.repo.Save(ctx, client); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "save client")
		return nil, fmt.Errorf("save client: %w", err)
	}

	span.SetAttributes(attribute.Int64("client.id", client.ID))
	s.metrics.ClientCreated(ctx)
	return client, nil
}

// List returns all clients ordered by name.
func (s *ClientService) List(ctx context.Context) ([]*models.Client, error) {
	ctx, span := tracer.Start(ctx, "ClientService.List")
	defer span.End()

	clients, err := s.repo.List(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "list clients")
		return nil, fmt.Errorf("list clients: %w", err)
	}
	return clients, nil
}
