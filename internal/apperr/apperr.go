// Package apperr carries the failure kinds the core surfaces to callers.
// Services return these; the HTTP layer maps kinds to status codes.
package apperr

import (
	"errors"
	"fmt"
)

type Kind string

const (
	KindValidation         Kind = "validation"
	KindPreconditionFailed Kind = "precondition_failed"
	KindOutOfRange         Kind = "out_of_range"
	KindNotFound           Kind = "not_found"
	KindInvalidArgument    Kind = "invalid_argument"
	KindUnsupported        Kind = "unsupported"
)

type Error struct {
	Kind   Kind
	Reason string
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Reason)
}

func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Reason: fmt.Sprintf(format, args...)}
}

func Validation(format string, args ...any) *Error {
	return New(KindValidation, format, args...)
}

func PreconditionFailed(format string, args ...any) *Error {
	return New(KindPreconditionFailed, format, args...)
}

func OutOfRange(format string, args ...any) *Error {
	return New(KindOutOfRange, format, args...)
}

func NotFound(format string, args ...any) *Error {
	return New(KindNotFound, format, args...)
}

func InvalidArgument(format string, args ...any) *Error {
	return New(KindInvalidArgument, format, args...)
}

func Unsupported(format string, args ...any) *Error {
	return New(KindUnsupported, format, args...)
}

// KindOf extracts the failure kind from an error chain, or "" when the
// error is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
