package apiclient

import "errors"

var (
	// ErrUnauthorized is returned for any HTTP 401 on a protected call,
	// regardless of payload content. Resolved by re-login; never retried
	// automatically.
	ErrUnauthorized = errors.New("session is not authorized")
	// ErrServiceUnavailable covers transport failures (timeout, DNS,
	// connection refused) and unexpected server statuses. The user may
	// retry the same action later.
	ErrServiceUnavailable = errors.New("service unavailable")
	// ErrMalformedResponse is returned when the server answers with a
	// success status but the body does not meet the endpoint contract.
	// Treated as a service fault.
	ErrMalformedResponse = errors.New("malformed response")
)

// ValidationError is a user-correctable rejection: either the server refused
// the payload with a structured validation message, or a success response
// failed to parse. Cause carries the underlying classification when present.
type ValidationError struct {
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return e.Message
}

// Unwrap exposes the underlying cause for errors.Is checks.
func (e *ValidationError) Unwrap() error {
	return e.Cause
}
