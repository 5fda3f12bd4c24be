package client

import (
	"errors"
	"fmt"
	"net/http"
)

// Failure classes. An *APIError always carries exactly one of them as Kind.
var (
	ErrValidation = errors.New("validation error")
	ErrTransport  = errors.New("transport error")
	ErrNotFound   = errors.New("not found")
)

var genericMessages = map[error]string{
	ErrValidation: "Request was rejected as invalid",
	ErrTransport:  "No response from server. Check if the catalog service is running.",
	ErrNotFound:   "Document not found",
}

// APIError describes a failed catalog call.
type APIError struct {
	Kind    error
	Op      string
	Status  int    // HTTP status, 0 when no response was received
	Message string // server-provided explanation, may be empty
	Err     error  // underlying cause, may be nil
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if msg == "" {
		msg = e.Kind.Error()
	}
	if e.Status != 0 {
		return fmt.Sprintf("%s: %s (status %d)", e.Op, msg, e.Status)
	}
	return fmt.Sprintf("%s: %s", e.Op, msg)
}

func (e *APIError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// Message returns the text to show to a user for err: the server-supplied
// explanation when present, a generic description of the failure class
// otherwise.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		if apiErr.Message != "" {
			return apiErr.Message
		}
		if errors.Is(apiErr.Kind, ErrTransport) && apiErr.Status != 0 {
			return fmt.Sprintf("Server error: unexpected status %d", apiErr.Status)
		}
		if m, ok := genericMessages[apiErr.Kind]; ok {
			return m
		}
	}
	for kind, m := range genericMessages {
		if errors.Is(err, kind) {
			return m
		}
	}
	return err.Error()
}

// kindForStatus maps a non-success HTTP status to a failure class.
func kindForStatus(op string, status int) error {
	switch {
	case status == http.StatusNotFound:
		if op == opList || op == opUpload || op == opPing {
			return ErrTransport
		}
		return ErrNotFound
	case status == http.StatusBadRequest || status == http.StatusUnprocessableEntity:
		if op == opUpload {
			return ErrValidation
		}
		return ErrTransport
	case status == http.StatusRequestEntityTooLarge && op == opUpload:
		return ErrValidation
	default:
		return ErrTransport
	}
}
