package models

// Client is a billable customer. Clients are created once and never updated
// or deleted; Address and Email are only ever set outside this service.
type Client struct {
	ID      int64
	Name    ClientName
	Address *string
	Email   *string
}

// NewClient returns an unsaved Client. ID is assigned by the store.
func NewClient(name ClientName) *Client {
	return &Client{Name: name}
}
