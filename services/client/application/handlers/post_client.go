package handlers

import (
	"net/http"

	"github.com/ghuser/invoicing/pkg/errhttp"
	"github.com/ghuser/invoicing/pkg/httpx"
	pkgvalidator "github.com/ghuser/invoicing/pkg/validator"
	appsvcs "github.com/ghuser/invoicing/services/client/application/services"
)

// CreateClientRequest is the request body for POST /clients.
// Length rules are applied after trimming by the domain.
type CreateClientRequest struct {
	Name string `json:"name" validate:"max=1024" example:"Acme Corp"`
} // @name CreateClientRequest

// CreatedClient is the client echoed back after creation.
type CreatedClient struct {
	ID   int64  `json:"id"   example:"1"`
	Name string `json:"name" example:"Acme Corp"`
} // @name CreatedClient

// CreateClientResponse is returned on successful client creation.
type CreateClientResponse struct {
	Success  bool          `json:"success"   example:"true"`
	Message  string        `json:"message"   example:"Client added successfully"`
	ClientID int64         `json:"client_id" example:"1"`
	Client   CreatedClient `json:"client"`
} // @name CreateClientResponse

// PostClientHandler handles POST /clients requests.
type PostClientHandler struct {
	svc  *appsvcs.Services
	errs *errhttp.Writer
}

// NewPostClientHandler returns a PostClientHandler backed by the given services.
func NewPostClientHandler(svc *appsvcs.Services, errs *errhttp.Writer) *PostClientHandler {
	return &PostClientHandler{svc: svc, errs: errs}
}

// Execute creates a new client.
//
//	@Summary		Create client
//	@Description	Creates a client. Names are trimmed and unique ignoring case.
//	@Tags			clients
//	@Accept			json
//	@Produce		json
//	@Param			request	body		CreateClientRequest	true	"Client creation request"
//	@Success		201		{object}	CreateClientResponse
//	@Failure		400		{object}	httpx.ErrorBody
//	@Failure		409		{object}	httpx.ErrorBody
//	@Router			/clients [post]
func (h *PostClientHandler) Execute(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[CreateClientRequest](w, r)
	if !ok {
		return
	}

	client, err := h.svc.Client.Create(r.Context(), req.Name)
	if err != nil {
		h.errs.WriteError(w, r, err)
		return
	}

	httpx.JSON(w, http.StatusCreated, CreateClientResponse{
		Success:  true,
		Message:  "Client added successfully",
		ClientID: client.ID,
		Client:   CreatedClient{ID: client.ID, Name: client.Name.String()},
	})
}
