package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the wire and storage format of invoice dates.
const DateLayout = "2006-01-02"

// DefaultStatus is assigned when a new invoice has no status.
const DefaultStatus = "Draft"

// Invoice is the aggregate root of the invoice context. Number, totals and
// items are fixed at creation; an invoice is only ever inserted or deleted.
type Invoice struct {
	ID             int64
	Number         string
	ClientID       int64
	ClientName     string // read side only
	InvoiceDate    time.Time
	DueDate        time.Time
	Status         string
	BillingAddress string
	CustomerEmail  *string
	Notes          *string
	Totals         Totals
	Items          []Item // nil in list results
}

// Item is one invoice line.
type Item struct {
	ID            int64
	Description   string
	Quantity      decimal.Decimal
	UnitPrice     decimal.Decimal
	GSTPercentage decimal.Decimal
}

// LineAmount is quantity × unit price.
func (i Item) LineAmount() decimal.Decimal {
	return i.Quantity.Mul(i.UnitPrice)
}

// GSTAmount is the line amount × gst percentage / 100.
func (i Item) GSTAmount() decimal.Decimal {
	return i.LineAmount().Mul(i.GSTPercentage).Shift(-2)
}

// Totals are derived from the items when the invoice is created.
// GrandTotal always equals Subtotal + TaxTotal.
type Totals struct {
	Subtotal   decimal.Decimal
	TaxTotal   decimal.Decimal
	GrandTotal decimal.Decimal
}
