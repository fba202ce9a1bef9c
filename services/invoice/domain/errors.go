package domain

import "errors"

// Sentinel errors for the invoice domain. Use errors.Is() to check these.
// Creation checks run in the order they are declared here.
var (
	ErrInvalidClientID = errors.New("invalid client id")
	ErrNoItems         = errors.New("at least one item required")
	ErrInvalidDate     = errors.New("invalid date format")
	ErrInvalidAmount   = errors.New("invalid quantity or price")

	// ErrClientNotFound is a validation failure: the referenced client does not exist.
	ErrClientNotFound = errors.New("client not found")

	// ErrFieldTooLong is reported only after every check above has passed.
	ErrFieldTooLong = errors.New("field exceeds maximum length")

	// ErrInvoiceNotFound indicates the requested invoice does not exist.
	ErrInvoiceNotFound = errors.New("invoice not found")
)
