package models

import (
	"strings"
	"unicode/utf8"

	"github.com/ghuser/invoicing/services/client/domain"
)

// ClientName is a value object holding a trimmed client name of 2 to 255
// characters. Uniqueness is case-insensitive and enforced by the store.
type ClientName string

const (
	minClientNameLength = 2
	maxClientNameLength = 255
)

// NewClientName trims s and checks its length in runes.
func NewClientName(s string) (ClientName, error) {
	s = strings.TrimSpace(s)
	n := utf8.RuneCountInString(s)
	if n < minClientNameLength {
		return "", domain.ErrClientNameTooShort
	}
	if n > maxClientNameLength {
		return "", domain.ErrClientNameTooLong
	}
	return ClientName(s), nil
}

// String returns the underlying string value.
func (n ClientName) String() string {
	return string(n)
}
