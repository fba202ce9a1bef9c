// Package errhttp maps domain sentinel errors to HTTP status codes.
// Add a rule to statusRules for each new domain sentinel error.
package errhttp

import (
	"errors"
	"net/http"

	"github.com/ghuser/invoicing/pkg/httpx"
	"github.com/ghuser/invoicing/pkg/logger"
	"github.com/ghuser/invoicing/pkg/telemetry"
	clientdomain "github.com/ghuser/invoicing/services/client/domain"
	invoicedomain "github.com/ghuser/invoicing/services/invoice/domain"
)

type statusRule struct {
	target error
	status int
}

// First match wins. Matched errors answer with the sentinel's own message so
// wrapping context never reaches the client.
var statusRules = []statusRule{
	{clientdomain.ErrClientNameTooShort, http.StatusBadRequest},
	{clientdomain.ErrClientNameTooLong, http.StatusBadRequest},
	{clientdomain.ErrClientAlreadyExists, http.StatusConflict},

	{invoicedomain.ErrInvalidClientID, http.StatusBadRequest},
	{invoicedomain.ErrNoItems, http.StatusBadRequest},
	{invoicedomain.ErrInvalidDate, http.StatusBadRequest},
	{invoicedomain.ErrInvalidAmount, http.StatusBadRequest},
	{invoicedomain.ErrClientNotFound, http.StatusBadRequest},
	{invoicedomain.ErrFieldTooLong, http.StatusBadRequest},
	{invoicedomain.ErrInvoiceNotFound, http.StatusNotFound},
}

// Classify returns the status code and client-facing message for err.
// Unrecognized errors are 500 with err's own message.
func Classify(err error) (int, string) {
	for _, rule := range statusRules {
		if errors.Is(err, rule.target) {
			return rule.status, rule.target.Error()
		}
	}
	return http.StatusInternalServerError, err.Error()
}

// Writer writes error responses in the standard envelope. 5xx errors are
// logged with the request context and reported to Sentry; in production their
// message is replaced by the generic status text.
type Writer struct {
	log          logger.Logger
	isProduction bool
}

// NewWriter returns a Writer.
func NewWriter(log logger.Logger, isProduction bool) *Writer {
	return &Writer{log: log, isProduction: isProduction}
}

// WriteError classifies err and writes the JSON error response.
func (e *Writer) WriteError(w http.ResponseWriter, r *http.Request, err error) {
	status, msg := Classify(err)
	if status >= http.StatusInternalServerError {
		e.log.ErrorContext(r.Context(), "request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"status", status,
			"error", err,
		)
		telemetry.CaptureError(r, err)
		msg = httpx.SafeError(err, status, e.isProduction)
	}
	httpx.JSONError(w, status, msg)
}
