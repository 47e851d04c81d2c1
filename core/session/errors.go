package session

import "errors"

var (
	// ErrInvalidCredentials is returned when the identity endpoint rejects
	// the supplied username/password pair (HTTP 401). User-correctable.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrMalformedResponse is returned when the identity endpoint answers
	// with a success status but the response carries no bearer token.
	ErrMalformedResponse = errors.New("login response did not contain a token")
	// ErrServiceUnavailable is returned when the identity endpoint cannot be
	// reached or fails with an unexpected status. The user may retry later.
	ErrServiceUnavailable = errors.New("login service unavailable")
)
