// Package apperr defines the error kinds surfaced to API callers.
package apperr

import "errors"

// Kinds. Match with errors.Is.
var (
	ErrValidation     = errors.New("validation error")
	ErrConflict       = errors.New("conflict")
	ErrNotFound       = errors.New("not found or access denied")
	ErrAuthentication = errors.New("authentication failed")
	ErrImport         = errors.New("import failed")
)

// Error carries a caller-facing message together with its kind and optional cause.
type Error struct {
	Kind    error
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Kind.Error()
}

// Unwrap exposes both the kind and the cause to errors.Is / errors.As.
func (e *Error) Unwrap() []error {
	out := make([]error, 0, 2)
	if e.Kind != nil {
		out = append(out, e.Kind)
	}
	if e.Err != nil {
		out = append(out, e.Err)
	}
	return out
}

func Validation(msg string) error { return &Error{Kind: ErrValidation, Message: msg} }

func Conflict(msg string) error { return &Error{Kind: ErrConflict, Message: msg} }

func NotFound(msg string) error { return &Error{Kind: ErrNotFound, Message: msg} }

func Authentication(msg string) error { return &Error{Kind: ErrAuthentication, Message: msg} }

// Import wraps a pipeline-level fault.
func Import(msg string, cause error) error {
	return &Error{Kind: ErrImport, Message: msg, Err: cause}
}

// Message returns the caller-facing text for err, or fallback when err carries none.
func Message(err error, fallback string) string {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Error()
	}
	return fallback
}
