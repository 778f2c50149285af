package apperr

import "errors"

// ErrInvalid is returned when the input fails domain validation (HTTP 400).
var ErrInvalid = errors.New("invalid input")

// ErrUnauthenticated indicates a missing, malformed or expired credential (HTTP 401).
var ErrUnauthenticated = errors.New("unauthorized")

// ErrForbidden indicates a role mismatch or a non-owner access (HTTP 403).
var ErrForbidden = errors.New("forbidden")

// ErrNotFound indicates that the requested resource does not exist.
var ErrNotFound = errors.New("not found")

// ErrConflict indicates a uniqueness or state conflict (HTTP 409).
var ErrConflict = errors.New("conflict")

// Error carries a client-safe message on top of one of the sentinel kinds.
type Error struct {
	Kind error
	Msg  string
}

// New returns an error that matches kind with errors.Is and exposes msg to clients.
func New(kind error, msg string) error {
	return &Error{Kind: kind, Msg: msg}
}

func (e *Error) Error() string {
	if e.Msg == "" {
		return e.Kind.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Kind }

// Message returns the client-safe text of err, falling back to fallback
// when err carries no message of its own.
func Message(err error, fallback string) string {
	var e *Error
	if errors.As(err, &e) && e.Msg != "" {
		return e.Msg
	}
	return fallback
}
