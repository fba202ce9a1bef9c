package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	invoicedomain "github.com/ghuser/invoicing/services/invoice/domain"
	"github.com/ghuser/invoicing/services/invoice/domain/models"
)

// InvoiceSummary is one row of GET /invoices. Amounts are decimal strings.
type InvoiceSummary struct {
	ID            int64           `json:"id"             example:"7"`
	InvoiceNumber string          `json:"invoice_number" example:"INV-00007"`
	ClientID      int64           `json:"client_id"      example:"3"`
	ClientName    string          `json:"client_name"    example:"Acme Corp"`
	InvoiceDate   string          `json:"invoice_date"   example:"2026-01-15"`
	DueDate       string          `json:"due_date"       example:"2026-02-14"`
	Status        string          `json:"status"         example:"Draft"`
	Subtotal      decimal.Decimal `json:"subtotal"       swaggertype:"string" example:"200"`
	TaxTotal      decimal.Decimal `json:"tax_total"      swaggertype:"string" example:"36"`
	GrandTotal    decimal.Decimal `json:"grand_total"    swaggertype:"string" example:"236"`
} // @name InvoiceSummary

// InvoiceItemResponse is one line of an invoice detail.
type InvoiceItemResponse struct {
	ID            int64           `json:"id"             example:"11"`
	Description   string          `json:"description"    example:"Widget"`
	Quantity      decimal.Decimal `json:"quantity"       swaggertype:"string" example:"2"`
	UnitPrice     decimal.Decimal `json:"unit_price"     swaggertype:"string" example:"100"`
	GSTPercentage decimal.Decimal `json:"gst_percentage" swaggertype:"string" example:"18"`
} // @name InvoiceItemResponse

// InvoiceDetail is the full invoice returned by GET /invoices/{id}.
type InvoiceDetail struct {
	InvoiceSummary
	BillingAddress string                `json:"billing_address" example:"12 MG Road, Bengaluru"`
	CustomerEmail  *string               `json:"customer_email"  example:"ap@acme.example"`
	Notes          *string               `json:"notes"           example:"Net 30"`
	Items          []InvoiceItemResponse `json:"items"`
} // @name InvoiceDetail

func toSummary(inv *models.Invoice) InvoiceSummary {
	return InvoiceSummary{
		ID:            inv.ID,
		InvoiceNumber: inv.Number,
		ClientID:      inv.ClientID,
		ClientName:    inv.ClientName,
		InvoiceDate:   inv.InvoiceDate.Format(models.DateLayout),
		DueDate:       inv.DueDate.Format(models.DateLayout),
		Status:        inv.Status,
		Subtotal:      inv.Totals.Subtotal,
		TaxTotal:      inv.Totals.TaxTotal,
		GrandTotal:    inv.Totals.GrandTotal,
	}
}

func toDetail(inv *models.Invoice) InvoiceDetail {
	items := make([]InvoiceItemResponse, len(inv.Items))
	for i, it := range inv.Items {
		items[i] = InvoiceItemResponse{
			ID:            it.ID,
			Description:   it.Description,
			Quantity:      it.Quantity,
			UnitPrice:     it.UnitPrice,
			GSTPercentage: it.GSTPercentage,
		}
	}
	return InvoiceDetail{
		InvoiceSummary: toSummary(inv),
		BillingAddress: inv.BillingAddress,
		CustomerEmail:  inv.CustomerEmail,
		Notes:          inv.Notes,
		Items:          items,
	}
}

// invoiceID parses the {id} path segment. Anything that is not a positive
// integer cannot name an invoice and is reported as not found.
func invoiceID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, invoicedomain.ErrInvoiceNotFound
	}
	return id, nil
}

// scalarText returns a JSON scalar as text: strings are unquoted, numbers
// keep their literal form, null or absent is empty.
func scalarText(raw json.RawMessage) string {
	s := strings.TrimSpace(string(raw))
	if s == "" || s == "null" {
		return ""
	}
	if s[0] == '"' {
		var v string
		if err := json.Unmarshal(raw, &v); err != nil {
			return ""
		}
		return v
	}
	return s
}
