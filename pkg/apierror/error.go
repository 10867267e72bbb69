package apierror

import (
	"encoding/json"
	"errors"
	"net/http"
)

// Kind classifies a failure. Each kind maps to exactly one HTTP status.
type Kind string

const (
	KindUnauthorized     Kind = "UNAUTHORIZED"
	KindBadRequest       Kind = "BAD_REQUEST"
	KindNotFound         Kind = "NOT_FOUND"
	KindMethodNotAllowed Kind = "METHOD_NOT_ALLOWED"
	KindConfiguration    Kind = "CONFIGURATION_ERROR"
	KindUpstream         Kind = "UPSTREAM_UNAVAILABLE"
	KindMalformedOutput  Kind = "MALFORMED_OUTPUT"
	KindSchemaViolation  Kind = "SCHEMA_VIOLATION"
	KindAssetPipeline    Kind = "ASSET_PIPELINE_FAILURE"
	KindPersistence      Kind = "PERSISTENCE_ERROR"
	KindServiceDown      Kind = "SERVICE_UNAVAILABLE"
	KindInternal         Kind = "INTERNAL_ERROR"
)

// Error represents a structured API error.
type Error struct {
	Kind    Kind
	Message string
	cause   error
}

// Error implements the error interface. The message is what the caller sees.
func (e *Error) Error() string {
	return e.Message
}

// Unwrap exposes the underlying cause for errors.Is and errors.As.
func (e *Error) Unwrap() error {
	return e.cause
}

// StatusCode returns the HTTP status for the error kind.
func (e *Error) StatusCode() int {
	switch e.Kind {
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindBadRequest:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindMethodNotAllowed:
		return http.StatusMethodNotAllowed
	case KindServiceDown:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// ToJSON converts the error to the wire envelope {"error": ..., "code": ...}.
func (e *Error) ToJSON() []byte {
	data, _ := json.Marshal(map[string]string{
		"error": e.Message,
		"code":  string(e.Kind),
	})
	return data
}

// As extracts an *Error from err's chain.
func As(err error) (*Error, bool) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	apiErr, ok := As(err)
	return ok && apiErr.Kind == kind
}

// withCause builds an error whose message is prefix + the cause's text.
func withCause(kind Kind, prefix string, cause error) *Error {
	msg := prefix
	if cause != nil {
		msg = prefix + cause.Error()
	}
	return &Error{Kind: kind, Message: msg, cause: cause}
}

// Unauthorized creates a 401 error.
func Unauthorized(message string) *Error {
	if message == "" {
		message = "Unauthorized"
	}
	return &Error{Kind: KindUnauthorized, Message: message}
}

// BadRequest creates a 400 error.
func BadRequest(message string) *Error {
	return &Error{Kind: KindBadRequest, Message: message}
}

// NotFound creates a 404 error.
func NotFound(message string) *Error {
	if message == "" {
		message = "Resource not found"
	}
	return &Error{Kind: KindNotFound, Message: message}
}

// NotFoundCause creates a 404 error whose message ends with the storage error text.
func NotFoundCause(prefix string, cause error) *Error {
	return withCause(KindNotFound, prefix, cause)
}

// MethodNotAllowed creates a 405 error.
func MethodNotAllowed() *Error {
	return &Error{Kind: KindMethodNotAllowed, Message: "method not allowed"}
}

// Configuration creates a 500 error for a missing upstream credential.
func Configuration(message string) *Error {
	return &Error{Kind: KindConfiguration, Message: message}
}

// Upstream creates a 500 error for a failed call to a model provider.
func Upstream(prefix string, cause error) *Error {
	return withCause(KindUpstream, prefix, cause)
}

// MalformedOutput creates a 500 error for a model response that is not JSON.
func MalformedOutput(prefix string, cause error) *Error {
	return withCause(KindMalformedOutput, prefix, cause)
}

// SchemaViolation creates a 500 error for JSON missing required fields.
func SchemaViolation(prefix string, cause error) *Error {
	return withCause(KindSchemaViolation, prefix, cause)
}

// AssetPipeline creates an error for the flyer step. It is absorbed, never rendered.
func AssetPipeline(prefix string, cause error) *Error {
	return withCause(KindAssetPipeline, prefix, cause)
}

// Persistence creates a 500 error for a failed write.
func Persistence(prefix string, cause error) *Error {
	return withCause(KindPersistence, prefix, cause)
}

// ServiceUnavailable creates a 503 error.
func ServiceUnavailable(message string) *Error {
	if message == "" {
		message = "Service temporarily unavailable"
	}
	return &Error{Kind: KindServiceDown, Message: message}
}

// Internal creates a 500 error.
func Internal(prefix string, cause error) *Error {
	if prefix == "" && cause == nil {
		prefix = "An unexpected error occurred"
	}
	return withCause(KindInternal, prefix, cause)
}
