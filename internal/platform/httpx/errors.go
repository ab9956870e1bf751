// Package httpx provides HTTP response utilities.
package httpx

import (
	"errors"
	"net/http"
)

// Sentinel errors for domain layer.
var (
	ErrNotFound   = errors.New("resource not found")
	ErrValidation = errors.New("validation failed")
	// ErrLastItem is returned when removal would leave an invoice
	// without any line items.
	ErrLastItem = errors.New("cannot remove the last line item")
	// ErrPayloadTooLarge reports an email attachment exceeding the
	// transport ceiling, so callers can suggest shrinking the logo or
	// downloading the file instead.
	ErrPayloadTooLarge = errors.New("attachment exceeds transport size limit")
	// ErrTransport reports a generic delivery failure from the email relay.
	ErrTransport = errors.New("transport failure")
)

// RespondError maps domain errors to HTTP responses using RFC7807.
func RespondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		Problem(w, http.StatusNotFound, "Not Found", err.Error())
	case errors.Is(err, ErrLastItem):
		Problem(w, http.StatusConflict, "Last Item", err.Error())
	case errors.Is(err, ErrValidation):
		Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
	case errors.Is(err, ErrPayloadTooLarge):
		Problem(w, http.StatusRequestEntityTooLarge, "Payload Too Large", err.Error())
	case errors.Is(err, ErrTransport):
		Problem(w, http.StatusBadGateway, "Send Failed", err.Error())
	default:
		Problem(w, http.StatusInternalServerError, "Internal Error", "")
	}
}
