package handlers

import (
	"net/http"

	"github.com/ghuser/invoicing/pkg/errhttp"
	"github.com/ghuser/invoicing/pkg/httpx"
	appsvcs "github.com/ghuser/invoicing/services/invoice/application/services"
)

// DeleteInvoiceResponse is returned by DELETE /invoices/{id}.
type DeleteInvoiceResponse struct {
	Success bool   `json:"success" example:"true"`
	Message string `json:"message" example:"Invoice deleted successfully"`
} // @name DeleteInvoiceResponse

// DeleteInvoiceHandler handles DELETE /invoices/{id} requests.
type DeleteInvoiceHandler struct {
	svc  *appsvcs.Services
	errs *errhttp.Writer
}

// NewDeleteInvoiceHandler returns a DeleteInvoiceHandler backed by the given services.
func NewDeleteInvoiceHandler(svc *appsvcs.Services, errs *errhttp.Writer) *DeleteInvoiceHandler {
	return &DeleteInvoiceHandler{svc: svc, errs: errs}
}

// Execute deletes an invoice and its items. Missing invoices succeed.
//
//	@Summary		Delete invoice
//	@Description	Deletes the invoice and all its items. Deleting a missing invoice succeeds.
//	@Tags			invoices
//	@Produce		json
//	@Param			id	path		int	true	"Invoice ID"
//	@Success		200	{object}	DeleteInvoiceResponse
//	@Failure		404	{object}	httpx.ErrorBody
//	@Failure		500	{object}	httpx.ErrorBody
//	@Router			/invoices/{id} [delete]
func (h *DeleteInvoiceHandler) Execute(w http.ResponseWriter, r *http.Request) {
	id, err := invoiceID(r)
	if err != nil {
		h.errs.WriteError(w, r, err)
		return
	}

	if err := h.svc.Invoice.Delete(r.Context(), id); err != nil {
		h.errs.WriteError(w, r, err)
		return
	}

	httpx.JSON(w, http.StatusOK, DeleteInvoiceResponse{Success: true, Message: "Invoice deleted successfully"})
}
