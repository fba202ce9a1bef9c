package handlers

import (
	"net/http"

	"github.com/ghuser/invoicing/pkg/errhttp"
	"github.com/ghuser/invoicing/pkg/httpx"
	appsvcs "github.com/ghuser/invoicing/services/client/application/services"
)

// ListClientsResponse is returned by GET /clients.
type ListClientsResponse struct {
	Success bool             `json:"success" example:"true"`
	Clients []ClientResponse `json:"clients"`
} // @name ListClientsResponse

// GetClientsHandler handles GET /clients requests.
type GetClientsHandler struct {
	svc  *appsvcs.Services
	errs *errhttp.Writer
}

// NewGetClientsHandler returns a GetClientsHandler backed by the given services.
func NewGetClientsHandler(svc *appsvcs.Services, errs *errhttp.Writer) *GetClientsHandler {
	return &GetClientsHandler{svc: svc, errs: errs}
}

// Execute lists all clients.
//
//	@Summary		List clients
//	@Description	Returns every client ordered by name
//	@Tags			clients
//	@Produce		json
//	@Success		200	{object}	ListClientsResponse
//	@Failure		500	{object}	httpx.ErrorBody
//	@Router			/clients [get]
func (h *GetClientsHandler) Execute(w http.ResponseWriter, r *http.Request) {
	clients, err := h.svc.Client.List(r.Context())
	if err != nil {
		h.errs.WriteError(w, r, err)
		return
	}

	out := make([]ClientResponse, len(clients))
	for i, c := range clients {
		out[i] = toClientResponse(c)
	}
	httpx.JSON(w, http.StatusOK, ListClientsResponse{Success: true, Clients: out})
}
