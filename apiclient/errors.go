package apiclient

import "fmt"

// The four failure classes every component boundary converts into a
// user-visible, non-fatal notice. AuthError additionally sends the caller
// back to the login flow.

// ValidationError is a missing or malformed local input; nothing was sent
// to the API.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// AuthError is a missing or rejected credential.
type AuthError struct {
	Msg string
}

func (e *AuthError) Error() string { return e.Msg }

// NotFoundError means the remote record does not exist.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("transaction %s not found", e.ID)
}

// TransportError wraps a network or backend failure. Retryable from the
// caller's point of view.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }
