package domain

import "errors"

// Sentinel errors for the client domain. Use errors.Is() to check these.
var (
	// ErrClientNameTooShort indicates the trimmed name has fewer than 2 characters.
	ErrClientNameTooShort = errors.New("client name must be at least 2 characters")

	// ErrClientNameTooLong indicates the trimmed name exceeds 255 characters.
	ErrClientNameTooLong = errors.New("client name must not exceed 255 characters")

	// ErrClientAlreadyExists indicates a client with the same name, ignoring case, exists.
	ErrClientAlreadyExists = errors.New("client already exists")
)
