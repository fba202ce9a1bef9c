package handlers

import (
	"net/http"

	"github.com/ghuser/invoicing/pkg/errhttp"
	"github.com/ghuser/invoicing/pkg/httpx"
	appsvcs "github.com/ghuser/invoicing/services/invoice/application/services"
)

// ListInvoicesResponse is returned by GET /invoices.
type ListInvoicesResponse struct {
	Success  bool             `json:"success" example:"true"`
	Invoices []InvoiceSummary `json:"invoices"`
} // @name ListInvoicesResponse

// GetInvoicesHandler handles GET /invoices requests.
type GetInvoicesHandler struct {
	svc  *appsvcs.Services
	errs *errhttp.Writer
}

// NewGetInvoicesHandler returns a GetInvoicesHandler backed by the given services.
func NewGetInvoicesHandler(svc *appsvcs.Services, errs *errhttp.Writer) *GetInvoicesHandler {
	return &GetInvoicesHandler{svc: svc, errs: errs}
}

// Execute lists invoices without their items.
//
//	@Summary		List invoices
//	@Description	Returns every invoice with its client name, ordered by id
//	@Tags			invoices
//	@Produce		json
//	@Success		200	{object}	ListInvoicesResponse
//	@Failure		500	{object}	httpx.ErrorBody
//	@Router			/invoices [get]
func (h *GetInvoicesHandler) Execute(w http.ResponseWriter, r *http.Request) {
	invoices, err := h.svc.Invoice.List(r.Context())
	if err != nil {
		h.errs.WriteError(w, r, err)
		return
	}

	out := make([]InvoiceSummary, len(invoices))
	for i, inv := range invoices {
		out[i] = toSummary(inv)
	}
	httpx.JSON(w, http.StatusOK, ListInvoicesResponse{Success: true, Invoices: out})
}
