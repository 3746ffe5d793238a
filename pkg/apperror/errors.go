package apperror

import (
	"errors"
	"fmt"
)

// Kind classifies an application error for the transport layer.
type Kind string

const (
	KindInternal        Kind = "internal"
	KindNotFound        Kind = "not_found"
	KindValidation      Kind = "validation"
	KindConflict        Kind = "conflict"
	KindForbidden       Kind = "forbidden"
	KindUnauthenticated Kind = "unauthenticated"
)

// Error is a classified failure carrying a user-facing message.
type Error struct {
	Kind    Kind
	Message string
	Details map[string]string
	Err     error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return string(e.Kind)
}

func (e *Error) Unwrap() error { return e.Err }

// WithDetails attaches per-field details (validation failures).
func (e *Error) WithDetails(details map[string]string) *Error {
	e.Details = details
	return e
}

// Wrap keeps the underlying cause for logging while preserving the message.
func (e *Error) Wrap(err error) *Error {
	e.Err = err
	return e
}

func newError(kind Kind, format string, args ...any) *Error {
	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}
	return &Error{Kind: kind, Message: msg}
}

func NotFound(format string, args ...any) *Error {
	return newError(KindNotFound, format, args...)
}

func Validation(format string, args ...any) *Error {
	return newError(KindValidation, format, args...)
}

func Conflict(format string, args ...any) *Error {
	return newError(KindConflict, format, args...)
}

func Forbidden(format string, args ...any) *Error {
	return newError(KindForbidden, format, args...)
}

func Unauthenticated(format string, args ...any) *Error {
	return newError(KindUnauthenticated, format, args...)
}

// KindOf returns the kind of the first *Error in err's chain, or KindInternal.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindInternal
}

// Is reports whether err is classified as kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// As extracts the *Error from err's chain.
func As(err error) (*Error, bool) {
	var ae *Error
	ok := errors.As(err, &ae)
	return ae, ok
}
