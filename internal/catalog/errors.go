package catalog

import "errors"

// Kind is a stable error category surfaced to HTTP callers. Failures are
// never retried or compensated; the first error wins and propagates as-is.
type Kind string

const (
	KindUnauthorized Kind = "unauthorized"
	KindForbidden    Kind = "forbidden"
	KindNotFound     Kind = "not_found"
	KindValidation   Kind = "validation_error"
	KindConflict     Kind = "conflict"
	KindInternal     Kind = "internal_error"
)

// Error carries a kind alongside a caller-facing message.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// NotFound reports an absent record of the named resource type.
func NotFound(resource string) *Error {
	return &Error{Kind: KindNotFound, Message: resource + " not found"}
}

// SlugConflict reports a slug uniqueness violation within a resource type.
func SlugConflict(resource string) *Error {
	return &Error{Kind: KindConflict, Message: resource + " with this slug already exists"}
}

// MissingField reports the first absent required field of a payload.
func MissingField(field string) *Error {
	return &Error{Kind: KindValidation, Message: "Missing required field: " + field}
}

// Invalid reports a malformed payload with a caller-facing message.
func Invalid(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

// Unauthorized reports a missing or invalid session.
func Unauthorized(message string) *Error {
	return &Error{Kind: KindUnauthorized, Message: message}
}

// Forbidden reports a valid session whose user lacks the admin role.
func Forbidden() *Error {
	return &Error{Kind: KindForbidden, Message: "admin role required"}
}

// Internal wraps an unexpected store failure.
func Internal(err error) *Error {
	return &Error{Kind: KindInternal, Message: err.Error()}
}

// KindOf classifies any error, defaulting to internal_error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}
