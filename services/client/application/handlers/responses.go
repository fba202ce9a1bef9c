package handlers

import "github.com/ghuser/invoicing/services/client/domain/models"

// ClientResponse is one client as returned by the API.
type ClientResponse struct {
	ID      int64   `json:"id"      example:"1"`
	Name    string  `json:"name"    example:"Acme Corp"`
	Address *string `json:"address" example:"12 MG Road, Bengaluru"`
	Email   *string `json:"email"   example:"billing@acme.example"`
} // @name ClientResponse

func toClientResponse(c *models.Client) ClientResponse {
	return ClientResponse{
		ID:      c.ID,
		Name:    c.Name.String(),
		Address: c.Address,
		Email:   c.Email,
	}
}
