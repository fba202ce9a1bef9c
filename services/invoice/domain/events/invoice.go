package events

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Watermill topics published by the invoice repository.
const (
	TopicInvoiceCreated = "invoice.created"
	TopicInvoiceDeleted = "invoice.deleted"
)

// InvoiceCreatedEvent is published in the same transaction as the invoice rows.
// The worker uses it to warm the invoice read cache.
type InvoiceCreatedEvent struct {
	EventID       uuid.UUID       `json:"event_id"`
	Version       int             `json:"version"`
	InvoiceID     int64           `json:"invoice_id"`
	InvoiceNumber string          `json:"invoice_number"`
	ClientID      int64           `json:"client_id"`
	ItemCount     int             `json:"item_count"`
	GrandTotal    decimal.Decimal `json:"grand_total"`
	OccurredAt    time.Time       `json:"occurred_at"`
}

// InvoiceDeletedEvent is published only when a delete removed a row.
type InvoiceDeletedEvent struct {
	EventID    uuid.UUID `json:"event_id"`
	Version    int       `json:"version"`
	InvoiceID  int64     `json:"invoice_id"`
	OccurredAt time.Time `json:"occurred_at"`
}
