package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ghuser/invoicing/pkg/database"
	clientdomain "github.com/ghuser/invoicing/services/client/domain"
	domainevents "github.com/ghuser/invoicing/services/client/domain/events"
	"github.com/ghuser/invoicing/services/client/domain/models"
)

// Publisher writes an event into the outbox inside tx. *events.EventBus implements it.
type Publisher interface {
	PublishJSON(ctx context.Context, tx *sql.Tx, topic string, eventID uuid.UUID, version int, payload any) error
}

// ClientRepository implements repositories.ClientRepository against PostgreSQL.
type ClientRepository struct {
	db  *database.Database
	bus Publisher
}

// NewClientRepository returns a ClientRepository. bus may be nil, in which
// case no client.created event is written.
func NewClientRepository(db *database.Database, bus Publisher) *ClientRepository {
	return &ClientRepository{db: db, bus: bus}
}

// Save inserts the client and publishes ClientCreatedEvent in one transaction.
// The pre-check gives the common case a clean error; the unique index on
// LOWER(name) catches concurrent inserts.
func (r *ClientRepository) Save(ctx context.Context, client *models.Client) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		exists, err := nameExists(ctx, tx, client.Name.String())
		if err != nil {
			return fmt.Errorf("check client name: %w", err)
		}
		if exists {
			return clientdomain.ErrClientAlreadyExists
		}

		id, err := insertClientRow(ctx, tx, client.Name.String())
		if err != nil {
			if database.IsConstraintViolation(err, database.CodeUniqueViolation) {
				return clientdomain.ErrClientAlreadyExists
			}
			return fmt.Errorf("insert client: %w", err)
		}
		client.ID = id

		if r.bus != nil {
			evt := domainevents.ClientCreatedEvent{
				EventID:    uuid.New(),
				Version:    1,
				ClientID:   client.ID,
				Name:       client.Name.String(),
				OccurredAt: time.Now().UTC(),
			}
			if err := r.bus.PublishJSON(ctx, tx, domainevents.TopicClientCreated, evt.EventID, evt.Version, evt); err != nil {
				return fmt.Errorf("publish client created: %w", err)
			}
		}
		return nil
	})
}

// List returns all clients ordered by name.
func (r *ClientRepository) List(ctx context.Context) ([]*models.Client, error) {
	rows, err := queryClients(ctx, r.db.DB())
	if err != nil {
		return nil, fmt.Errorf("query clients: %w", err)
	}
	clients := make([]*models.Client, len(rows))
	for i, row := range rows {
		clients[i] = rowToClient(row)
	}
	return clients, nil
}

func rowToClient(row clientRow) *models.Client {
	return &models.Client{
		ID:      row.ID,
		Name:    models.ClientName(row.Name),
		Address: nullString(row.Address),
		Email:   nullString(row.Email),
	}
}

func nullString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	return &ns.String
}
