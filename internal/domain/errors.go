package domain

import (
	"errors"
	"fmt"
)

// Kind is a machine-readable error category surfaced to callers.
type Kind string

// Error kinds.
const (
	KindInvalidQuery     Kind = "invalid_query"
	KindInvalidGeometry  Kind = "invalid_geometry"
	KindStoreUnavailable Kind = "store_unavailable"
	KindStoreTimeout     Kind = "store_timeout"
	KindPipeline         Kind = "pipeline_error"
	KindNotFound         Kind = "not_found"
	KindCanceled         Kind = "canceled"
)

var (
	// ErrInvalidQuery signals a query that constrains nothing or is malformed.
	ErrInvalidQuery = errors.New("invalid query")
	// ErrInvalidGeometry signals non-finite or out-of-range coordinates.
	ErrInvalidGeometry = errors.New("invalid geometry")
	// ErrStoreUnavailable signals a failing or unreachable store.
	ErrStoreUnavailable = errors.New("store unavailable")
	// ErrStoreTimeout signals that the per-request store deadline expired.
	ErrStoreTimeout = errors.New("store timeout")
	// ErrPipeline signals a malformed pipeline (programming defect, not retryable).
	ErrPipeline = errors.New("pipeline error")
	// ErrNotFound signals a missing restaurant.
	ErrNotFound = errors.New("not found")
	// ErrCanceled signals that the caller abandoned the request.
	ErrCanceled = errors.New("canceled")
)

var sentinels = map[Kind]error{
	KindInvalidQuery:     ErrInvalidQuery,
	KindInvalidGeometry:  ErrInvalidGeometry,
	KindStoreUnavailable: ErrStoreUnavailable,
	KindStoreTimeout:     ErrStoreTimeout,
	KindPipeline:         ErrPipeline,
	KindNotFound:         ErrNotFound,
	KindCanceled:         ErrCanceled,
}

// Error carries a Kind, a human-readable message and an optional cause.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches the sentinel registered for the error's kind.
func (e *Error) Is(target error) bool {
	s, ok := sentinels[e.Kind]
	return ok && s == target
}

// Retryable reports whether a caller may retry the request.
func (e *Error) Retryable() bool {
	return e.Kind == KindStoreUnavailable || e.Kind == KindStoreTimeout
}

// Errorf builds an *Error of the given kind without a cause.
func Errorf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap builds an *Error of the given kind around err.
func Wrap(kind Kind, err error, message string) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf returns the Kind of the first *Error in err's chain, or "" if none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}
