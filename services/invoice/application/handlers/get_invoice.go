package handlers

import (
	"net/http"

	"github.com/ghuser/invoicing/pkg/errhttp"
	"github.com/ghuser/invoicing/pkg/httpx"
	appsvcs "github.com/ghuser/invoicing/services/invoice/application/services"
)

// GetInvoiceResponse is returned by GET /invoices/{id}.
type GetInvoiceResponse struct {
	Success bool          `json:"success" example:"true"`
	Invoice InvoiceDetail `json:"invoice"`
} // @name GetInvoiceResponse

// GetInvoiceHandler handles GET /invoices/{id} requests.
type GetInvoiceHandler struct {
	svc  *appsvcs.Services
	errs *errhttp.Writer
}

// NewGetInvoiceHandler returns a GetInvoiceHandler backed by the given services.
func NewGetInvoiceHandler(svc *appsvcs.Services, errs *errhttp.Writer) *GetInvoiceHandler {
	return &GetInvoiceHandler{svc: svc, errs: errs}
}

// Execute returns one invoice with its items.
//
//	@Summary		Get invoice
//	@Description	Returns the invoice, its client name and its items ordered by item id
//	@Tags			invoices
//	@Produce		json
//	@Param			id	path		int	true	"Invoice ID"
//	@Success		200	{object}	GetInvoiceResponse
//	@Failure		404	{object}	httpx.ErrorBody
//	@Router			/invoices/{id} [get]
func (h *GetInvoiceHandler) Execute(w http.ResponseWriter, r *http.Request) {
	id, err := invoiceID(r)
	if err != nil {
		h.errs.WriteError(w, r, err)
		return
	}

	inv, err := h.svc.Invoice.GetByID(r.Context(), id)
	if err != nil {
		h.errs.WriteError(w, r, err)
		return
	}

	httpx.JSON(w, http.StatusOK, GetInvoiceResponse{Success: true, Invoice: toDetail(inv)})
}
