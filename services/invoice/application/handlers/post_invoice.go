package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/ghuser/invoicing/pkg/errhttp"
	"github.com/ghuser/invoicing/pkg/httpx"
	pkgvalidator "github.com/ghuser/invoicing/pkg/validator"
	appsvcs "github.com/ghuser/invoicing/services/invoice/application/services"
	domainsvcs "github.com/ghuser/invoicing/services/invoice/domain/services"
)

// CreateInvoiceItemRequest is one requested line. Numeric fields accept a
// JSON number or a numeric string.
type CreateInvoiceItemRequest struct {
	Description   string          `json:"description"    example:"Widget"`
	Quantity      json.RawMessage `json:"quantity"       swaggertype:"number" example:"2"`
	UnitPrice     json.RawMessage `json:"unit_price"     swaggertype:"number" example:"100"`
	GSTPercentage json.RawMessage `json:"gst_percentage" swaggertype:"number" example:"18"`
} // @name CreateInvoiceItemRequest

// CreateInvoiceRequest is the request body for POST /invoices.
// Field rules live in the domain so that failures are reported in a fixed
// order; dates are raw scalars for the same reason.
type CreateInvoiceRequest struct {
	ClientID       json.RawMessage            `json:"client_id"       swaggertype:"integer" example:"3"`
	Items          []CreateInvoiceItemRequest `json:"items"`
	InvoiceDate    json.RawMessage            `json:"invoice_date"    swaggertype:"string" example:"2026-01-15"`
	DueDate        json.RawMessage            `json:"due_date"        swaggertype:"string" example:"2026-02-14"`
	Status         string                     `json:"status"          example:"Draft"`
	BillingAddress string                     `json:"billing_address" example:"12 MG Road, Bengaluru"`
	CustomerEmail  string                     `json:"customer_email"  example:"ap@acme.example"`
	Notes          string                     `json:"notes"           example:"Net 30"`
} // @name CreateInvoiceRequest

// CreateInvoiceResponse is returned on successful invoice creation.
type CreateInvoiceResponse struct {
	Success       bool            `json:"success"        example:"true"`
	Message       string          `json:"message"        example:"Invoice created successfully"`
	InvoiceID     int64           `json:"invoice_id"     example:"7"`
	InvoiceNumber string          `json:"invoice_number" example:"INV-00007"`
	Subtotal      decimal.Decimal `json:"subtotal"       swaggertype:"string" example:"200"`
	TaxTotal      decimal.Decimal `json:"tax_total"      swaggertype:"string" example:"36"`
	GrandTotal    decimal.Decimal `json:"grand_total"    swaggertype:"string" example:"236"`
} // @name CreateInvoiceResponse

// PostInvoiceHandler handles POST /invoices requests.
type PostInvoiceHandler struct {
	svc  *appsvcs.Services
	errs *errhttp.Writer
}

// NewPostInvoiceHandler returns a PostInvoiceHandler backed by the given services.
func NewPostInvoiceHandler(svc *appsvcs.Services, errs *errhttp.Writer) *PostInvoiceHandler {
	return &PostInvoiceHandler{svc: svc, errs: errs}
}

// Execute creates an invoice with its items.
//
//	@Summary		Create invoice
//	@Description	Validates the request, computes totals and stores the invoice and its items in one transaction
//	@Tags			invoices
//	@Accept			json
//	@Produce		json
//	@Param			request	body		CreateInvoiceRequest	true	"Invoice creation request"
//	@Success		201		{object}	CreateInvoiceResponse
//	@Failure		400		{object}	httpx.ErrorBody
//	@Router			/invoices [post]
func (h *PostInvoiceHandler) Execute(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[CreateInvoiceRequest](w, r)
	if !ok {
		return
	}

	inv, err := h.svc.Invoice.Create(r.Context(), req.draft())
	if err != nil {
		h.errs.WriteError(w, r, err)
		return
	}

	httpx.JSON(w, http.StatusCreated, CreateInvoiceResponse{
		Success:       true,
		Message:       "Invoice created successfully",
		InvoiceID:     inv.ID,
		InvoiceNumber: inv.Number,
		Subtotal:      inv.Totals.Subtotal,
		TaxTotal:      inv.Totals.TaxTotal,
		GrandTotal:    inv.Totals.GrandTotal,
	})
}

func (req *CreateInvoiceRequest) draft() domainsvcs.DraftInput {
	items := make([]domainsvcs.DraftItem, len(req.Items))
	for i, it := range req.Items {
		items[i] = domainsvcs.DraftItem{
			Description:   it.Description,
			Quantity:      scalarText(it.Quantity),
			UnitPrice:     scalarText(it.UnitPrice),
			GSTPercentage: scalarText(it.GSTPercentage),
		}
	}
	return domainsvcs.DraftInput{
		ClientID:       scalarText(req.ClientID),
		Items:          items,
		InvoiceDate:    scalarText(req.InvoiceDate),
		DueDate:        scalarText(req.DueDate),
		Status:         req.Status,
		BillingAddress: req.BillingAddress,
		CustomerEmail:  optional(req.CustomerEmail),
		Notes:          optional(req.Notes),
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
