package rag

import (
	"errors"
	"net/http"
)

// Kind classifies the failures recovered at the request boundary. Every
// kind maps to a structured response; none propagates as an unhandled fault.
type Kind string

const (
	KindMissingCredential Kind = "missing_credential"
	KindInvalidInput      Kind = "invalid_input"
	KindExtractionFailure Kind = "extraction_failure"
	KindNoContentLoaded   Kind = "no_content_loaded"
	KindOutOfDomain       Kind = "out_of_domain"
	KindNoMatchFound      Kind = "no_match_found"
	KindUpstreamFailure   Kind = "upstream_failure"
)

// Error is a tagged service error carrying a human-readable message.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// E builds a tagged error.
func E(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap builds a tagged error around an underlying cause.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf extracts the Kind from an error chain; unknown errors report as
// upstream failures since that is the only unclassified source of faults.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUpstreamFailure
}

// Message extracts the user-facing message from an error chain.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return "internal error"
}

// HTTPStatus maps an error kind to a response status code.
func (k Kind) HTTPStatus() int {
	switch k {
	case KindInvalidInput, KindExtractionFailure:
		return http.StatusBadRequest
	case KindMissingCredential:
		return http.StatusUnauthorized
	case KindNoContentLoaded, KindOutOfDomain, KindNoMatchFound:
		return http.StatusUnprocessableEntity
	case KindUpstreamFailure:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
