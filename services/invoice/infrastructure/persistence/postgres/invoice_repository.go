package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ghuser/invoicing/pkg/database"
	invoicedomain "github.com/ghuser/invoicing/services/invoice/domain"
	domainevents "github.com/ghuser/invoicing/services/invoice/domain/events"
	"github.com/ghuser/invoicing/services/invoice/domain/models"
	domainsvcs "github.com/ghuser/invoicing/services/invoice/domain/services"
)

// Publisher writes an event into the outbox inside tx. *events.EventBus implements it.
type Publisher interface {
	PublishJSON(ctx context.Context, tx *sql.Tx, topic string, eventID uuid.UUID, version int, payload any) error
}

// InvoiceRepository implements repositories.InvoiceRepository against PostgreSQL.
type InvoiceRepository struct {
	db  *database.Database
	bus Publisher
}

// NewInvoiceRepository returns an InvoiceRepository. bus may be nil, in which
// case no events are written.
func NewInvoiceRepository(db *database.Database, bus Publisher) *InvoiceRepository {
	return &InvoiceRepository{db: db, bus: bus}
}

// ClientExists reports whether clientID references a client.
func (r *InvoiceRepository) ClientExists(ctx context.Context, clientID int64) (bool, error) {
	var exists bool
	if err := r.db.DB().QueryRowContext(ctx, clientExists, clientID).Scan(&exists); err != nil {
		return false, fmt.Errorf("check client: %w", err)
	}
	return exists, nil
}

// Save writes the header, backfills the invoice number, inserts the items and
// publishes InvoiceCreatedEvent. Any failure rolls the whole invoice back.
// inv's ID, Number and item IDs are set only once the transaction commits.
func (r *InvoiceRepository) Save(ctx context.Context, inv *models.Invoice) error {
	var (
		id      int64
		number  string
		itemIDs = make([]int64, len(inv.Items))
	)
	err := r.db.WithTx(ctx, func(tx *sql.Tx) error {
		var exists bool
		if err := tx.QueryRowContext(ctx, clientExists, inv.ClientID).Scan(&exists); err != nil {
			return fmt.Errorf("check client: %w", err)
		}
		if !exists {
			return invoicedomain.ErrClientNotFound
		}

		err := tx.QueryRowContext(ctx, insertInvoice,
			inv.ClientID, inv.InvoiceDate, inv.DueDate, inv.Status, inv.BillingAddress,
			inv.CustomerEmail, inv.Notes,
			inv.Totals.Subtotal, inv.Totals.TaxTotal, inv.Totals.GrandTotal,
		).Scan(&id)
		if err != nil {
			if database.IsConstraintViolation(err, database.CodeForeignKeyViolation) {
				return invoicedomain.ErrClientNotFound
			}
			return fmt.Errorf("insert invoice: %w", err)
		}

		number = domainsvcs.InvoiceNumber(id)
		if _, err := tx.ExecContext(ctx, setInvoiceNumber, number, id); err != nil {
			return fmt.Errorf("set invoice number: %w", err)
		}

		for i, it := range inv.Items {
			if err := tx.QueryRowContext(ctx, insertInvoiceItem,
				id, it.Description, it.Quantity, it.UnitPrice, it.GSTPercentage,
			).Scan(&itemIDs[i]); err != nil {
				return fmt.Errorf("insert invoice item %d: %w", i+1, err)
			}
		}

		if r.bus != nil {
			evt := domainevents.InvoiceCreatedEvent{
				EventID:       uuid.New(),
				Version:       1,
				InvoiceID:     id,
				InvoiceNumber: number,
				ClientID:      inv.ClientID,
				ItemCount:     len(inv.Items),
				GrandTotal:    inv.Totals.GrandTotal,
				OccurredAt:    time.Now().UTC(),
			}
			if err := r.bus.PublishJSON(ctx, tx, domainevents.TopicInvoiceCreated, evt.EventID, evt.Version, evt); err != nil {
				return fmt.Errorf("publish invoice created: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	inv.ID = id
	inv.Number = number
	for i := range inv.Items {
		inv.Items[i].ID = itemIDs[i]
	}
	return nil
}

// GetByID returns the full invoice or ErrInvoiceNotFound.
func (r *InvoiceRepository) GetByID(ctx context.Context, id int64) (*models.Invoice, error) {
	row, err := queryInvoice(ctx, r.db.DB(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, invoicedomain.ErrInvoiceNotFound
		}
		return nil, fmt.Errorf("query invoice: %w", err)
	}

	items, err := queryItems(ctx, r.db.DB(), id)
	if err != nil {
		return nil, fmt.Errorf("query invoice items: %w", err)
	}

	inv := rowToInvoice(row)
	inv.Items = make([]models.Item, len(items))
	for i, it := range items {
		inv.Items[i] = models.Item{
			ID:            it.ID,
			Description:   it.Description,
			Quantity:      it.Quantity,
			UnitPrice:     it.UnitPrice,
			GSTPercentage: it.GSTPercentage,
		}
	}
	return inv, nil
}

// List returns invoice summaries ordered by id.
func (r *InvoiceRepository) List(ctx context.Context) ([]*models.Invoice, error) {
	rows, err := queryInvoices(ctx, r.db.DB())
	if err != nil {
		return nil, fmt.Errorf("query invoices: %w", err)
	}
	out := make([]*models.Invoice, len(rows))
	for i, row := range rows {
		out[i] = rowToInvoice(row)
	}
	return out, nil
}

// Delete removes items then header and publishes InvoiceDeletedEvent when
// a header row was removed. Deleting a missing id is not an error.
func (r *InvoiceRepository) Delete(ctx context.Context, id int64) (bool, error) {
	var deleted bool
	err := r.db.WithTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, deleteInvoiceItems, id); err != nil {
			return fmt.Errorf("delete invoice items: %w", err)
		}
		res, err := tx.ExecContext(ctx, deleteInvoice, id)
		if err != nil {
			return fmt.Errorf("delete invoice: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("delete invoice rows affected: %w", err)
		}
		deleted = n > 0

		if deleted && r.bus != nil {
			evt := domainevents.InvoiceDeletedEvent{
				EventID:    uuid.New(),
				Version:    1,
				InvoiceID:  id,
				OccurredAt: time.Now().UTC(),
			}
			if err := r.bus.PublishJSON(ctx, tx, domainevents.TopicInvoiceDeleted, evt.EventID, evt.Version, evt); err != nil {
				return fmt.Errorf("publish invoice deleted: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	return deleted, nil
}

func rowToInvoice(row invoiceRow) *models.Invoice {
	return &models.Invoice{
		ID:             row.ID,
		Number:         row.Number,
		ClientID:       row.ClientID,
		ClientName:     row.ClientName,
		InvoiceDate:    row.InvoiceDate,
		DueDate:        row.DueDate,
		Status:         row.Status,
		BillingAddress: row.BillingAddress,
		CustomerEmail:  nullString(row.CustomerEmail),
		Notes:          nullString(row.Notes),
		Totals: models.Totals{
			Subtotal:   row.Subtotal,
			TaxTotal:   row.TaxTotal,
			GrandTotal: row.GrandTotal,
		},
	}
}

func nullString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	return &ns.String
}
