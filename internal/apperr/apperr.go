// Package apperr defines the error taxonomy shared by all services and the
// mapping from each kind to its HTTP status.
package apperr

import (
	"errors"
	"net/http"
)

// Kind classifies a service-level failure.
type Kind int

const (
	KindValidation Kind = iota // missing or malformed input
	KindConflict               // duplicate unique field
	KindNotFound               // entity absent
	KindUnauthorized           // bad credentials
	KindForbidden              // role mismatch
)

// Error is a service failure carrying a client-facing message. Anything that
// is not an *Error is a store fault and surfaces as a generic 500; the
// underlying error is only logged.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string { return e.Message }

// Status maps the kind to its HTTP status code.
func (e *Error) Status() int {
	switch e.Kind {
	case KindNotFound:
		return http.StatusNotFound
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	default:
		return http.StatusBadRequest
	}
}

func Validation(msg string) error   { return &Error{Kind: KindValidation, Message: msg} }
func Conflict(msg string) error     { return &Error{Kind: KindConflict, Message: msg} }
func NotFound(msg string) error     { return &Error{Kind: KindNotFound, Message: msg} }
func Unauthorized(msg string) error { return &Error{Kind: KindUnauthorized, Message: msg} }
func Forbidden(msg string) error    { return &Error{Kind: KindForbidden, Message: msg} }

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var ae *Error
	return errors.As(err, &ae) && ae.Kind == kind
}
