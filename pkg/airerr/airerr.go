// Package airerr defines the error taxonomy shared by the mapping engine and
// the remote API client. Errors are immutable values carrying a kind, an
// optional actionable suggestion and a list of context frames that are
// rendered into a single breadcrumb sentence.
package airerr

import (
	"fmt"
	"strings"
)

// Kind classifies an error for programmatic handling.
type Kind int

const (
	// KindUnknown marks errors that did not originate in this library.
	KindUnknown Kind = iota
	// KindSchemaValidation covers value/shape/arity mismatches, read-only
	// violations and invalid dates.
	KindSchemaValidation
	// KindNotFound covers missing tables, fields and records.
	KindNotFound
	// KindInvalidParameter covers missing required call arguments.
	KindInvalidParameter
	// KindAPI covers transport-level failures (non-2xx responses).
	KindAPI
)

func (k Kind) String() string {
	switch k {
	case KindSchemaValidation:
		return "schema validation"
	case KindNotFound:
		return "not found"
	case KindInvalidParameter:
		return "invalid parameter"
	case KindAPI:
		return "api"
	}
	return "unknown"
}

// Error is an immutable taxonomy error. Frames are ordered outermost first.
type Error struct {
	Kind       Kind
	Msg        string
	Suggestion string
	Frames     []string
	Status     int // HTTP status for KindAPI, zero otherwise
	cause      error
}

func (e *Error) Error() string {
	var b strings.Builder
	for _, f := range e.Frames {
		b.WriteString(f)
		b.WriteString(": ")
	}
	b.WriteString(e.Msg)
	if e.Suggestion != "" {
		b.WriteString(". ")
		b.WriteString(e.Suggestion)
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.cause }

// New creates a taxonomy error.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// Validation is shorthand for a KindSchemaValidation error.
func Validation(format string, args ...any) *Error {
	return New(KindSchemaValidation, format, args...)
}

// NotFound is shorthand for a KindNotFound error.
func NotFound(format string, args ...any) *Error {
	return New(KindNotFound, format, args...)
}

// InvalidParameter is shorthand for a KindInvalidParameter error.
func InvalidParameter(format string, args ...any) *Error {
	return New(KindInvalidParameter, format, args...)
}

// API builds a transport error carrying the HTTP status.
func API(status int, format string, args ...any) *Error {
	return &Error{Kind: KindAPI, Msg: fmt.Sprintf(format, args...), Status: status}
}

// WithSuggestion returns a copy with an actionable suggestion appended to the
// rendered message.
func (e *Error) WithSuggestion(s string) *Error {
	c := *e
	c.Suggestion = s
	return &c
}

// WithCause returns a copy wrapping the underlying error.
func (e *Error) WithCause(err error) *Error {
	c := *e
	c.cause = err
	return &c
}

// KindOf reports the taxonomy kind of err, or KindUnknown for foreign errors.
func KindOf(err error) Kind {
	if e, ok := err.(*Error); ok {
		return e.Kind
	}
	return KindUnknown
}

// Is lets errors.Is match on kind when the target is a bare kinded error.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind && (t.Msg == "" || t.Msg == e.Msg)
}

// Wrap prepends a context frame to err if it is a SchemaValidation error.
// Other kinds, and foreign errors, pass through untouched so unexpected
// failures keep their original identity.
func Wrap(err error, frame string) error {
	e, ok := err.(*Error)
	if !ok || e.Kind != KindSchemaValidation {
		return err
	}
	c := *e
	c.Frames = append([]string{frame}, e.Frames...)
	return &c
}
