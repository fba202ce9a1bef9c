package repositories

import (
	"context"

	"github.com/ghuser/invoicing/services/invoice/domain/models"
)

// InvoiceRepository is the persistence interface for the Invoice aggregate.
// The domain layer owns this interface; infrastructure implements it.
type InvoiceRepository interface {
	// ClientExists reports whether clientID references a client.
	ClientExists(ctx context.Context, clientID int64) (bool, error)

	// Save inserts the header, the number and then the items in their given
	// order, all in one transaction. ID, Number and item IDs are assigned on
	// commit. Returns ErrClientNotFound if inv.ClientID does not reference a
	// client at write time.
	Save(ctx context.Context, inv *models.Invoice) error

	// GetByID returns the invoice with client name and items ordered by item
	// id, or ErrInvoiceNotFound.
	GetByID(ctx context.Context, id int64) (*models.Invoice, error)

	// List returns every invoice with client name, ordered by id, without items.
	List(ctx context.Context) ([]*models.Invoice, error)

	// Delete removes the items then the header in one transaction and
	// reports whether an invoice row was removed.
	Delete(ctx context.Context, id int64) (bool, error)
}
