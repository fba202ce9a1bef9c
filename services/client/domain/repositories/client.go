package repositories

import (
	"context"

	"github.com/ghuser/invoicing/services/client/domain/models"
)

// ClientRepository is the persistence interface for the Client aggregate.
// The domain layer owns this interface; infrastructure implements it.
type ClientRepository interface {
	// Save inserts client and sets its ID. Returns ErrClientAlreadyExists
	// when a client with the same name, ignoring case, exists.
	Save(ctx context.Context, client *models.Client) error

	// List returns every client ordered by name.
	List(ctx context.Context) ([]*models.Client, error)
}
