package handlers

import (
	"net/http"

	"github.com/ghuser/invoicing/pkg/errhttp"
	"github.com/ghuser/invoicing/pkg/httpx"
	appsvcs "github.com/ghuser/invoicing/services/invoice/application/services"
)

// DownloadInvoiceHandler handles GET /invoices/{id}/download requests.
type DownloadInvoiceHandler struct {
	svc  *appsvcs.Services
	errs *errhttp.Writer
}

// NewDownloadInvoiceHandler returns a DownloadInvoiceHandler backed by the given services.
func NewDownloadInvoiceHandler(svc *appsvcs.Services, errs *errhttp.Writer) *DownloadInvoiceHandler {
	return &DownloadInvoiceHandler{svc: svc, errs: errs}
}

// Execute streams the invoice as a plain-text attachment.
//
//	@Summary		Download invoice
//	@Description	Plain-text export named {invoice_number}.txt
//	@Tags			invoices
//	@Produce		plain
//	@Param			id	path		int		true	"Invoice ID"
//	@Success		200	{string}	string	"Invoice text"
//	@Failure		404	{object}	httpx.ErrorBody
//	@Router			/invoices/{id}/download [get]
func (h *DownloadInvoiceHandler) Execute(w http.ResponseWriter, r *http.Request) {
	id, err := invoiceID(r)
	if err != nil {
		h.errs.WriteError(w, r, err)
		return
	}

	filename, body, err := h.svc.Invoice.Export(r.Context(), id)
	if err != nil {
		h.errs.WriteError(w, r, err)
		return
	}

	httpx.Attachment(w, filename, body)
}
