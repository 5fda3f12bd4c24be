package catalog

import (
	"errors"
	"fmt"
	"net/http"
)

// Domain errors for catalog operations.
var (
	ErrValidation        = errors.New("validation error")
	ErrNoFile            = fmt.Errorf("%w: no file part", ErrValidation)
	ErrMissingCategory   = fmt.Errorf("%w: missing category", ErrValidation)
	ErrNotFound          = errors.New("document not found")
	ErrQuotationNotFound = errors.New("quotation not found")
	ErrEmptyGroup        = errors.New("no quotations found for this group")
	ErrFileNotStored     = errors.New("document file not stored")
)

// MapHTTPStatus maps catalog domain errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound),
		errors.Is(err, ErrQuotationNotFound),
		errors.Is(err, ErrEmptyGroup),
		errors.Is(err, ErrFileNotStored):
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

var publicMessages = []struct {
	err error
	msg string
}{
	{ErrNoFile, "No file part"},
	{ErrMissingCategory, "Missing category"},
	{ErrNotFound, "Document not found"},
	{ErrQuotationNotFound, "Quotation not found"},
	{ErrEmptyGroup, "No quotations found for this group"},
	{ErrFileNotStored, "Document file not stored"},
}

// PublicMessage is the text reported to API callers for err.
func PublicMessage(err error) string {
	for _, m := range publicMessages {
		if errors.Is(err, m.err) {
			return m.msg
		}
	}
	return "Database error: " + err.Error()
}
