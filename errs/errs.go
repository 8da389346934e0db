// Package errs defines the error kinds shared by the l5x accessors.
//
// Every error returned by the library wraps exactly one of the sentinel
// kinds below, so callers classify failures with errors.Is:
//
//	if errors.Is(err, errs.ErrValue) { ... }
//
// Capability errors are reported as type errors and match both
// ErrCapability and ErrType.
package errs

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound   = errors.New("not found")
	ErrCapability = errors.New("not supported")
	ErrType       = errors.New("type error")
	ErrValue      = errors.New("value error")
	ErrIndex      = errors.New("index out of range")
	ErrReadOnly   = errors.New("read only")
	ErrConfig     = errors.New("configuration error")
)

// Error carries the kind of failure together with the operand or element
// identity it concerns.
type Error struct {
	Kind    error
	Operand string
	Msg     string
}

func (e *Error) Error() string {
	if e.Operand != "" {
		return fmt.Sprintf("%s: %s: %s", e.Kind, e.Operand, e.Msg)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error {
	return e.Kind
}

func (e *Error) Is(target error) bool {
	if e.Kind == ErrCapability && target == ErrType {
		return true
	}
	return false
}

func newf(kind error, operand, format string, args ...any) *Error {
	return &Error{Kind: kind, Operand: operand, Msg: fmt.Sprintf(format, args...)}
}

func NotFound(operand, format string, args ...any) error {
	return newf(ErrNotFound, operand, format, args...)
}

func Capability(operand, format string, args ...any) error {
	return newf(ErrCapability, operand, format, args...)
}

func Type(operand, format string, args ...any) error {
	return newf(ErrType, operand, format, args...)
}

func Value(operand, format string, args ...any) error {
	return newf(ErrValue, operand, format, args...)
}

func Index(operand, format string, args ...any) error {
	return newf(ErrIndex, operand, format, args...)
}

func ReadOnly(operand, format string, args ...any) error {
	return newf(ErrReadOnly, operand, format, args...)
}

func Config(operand, format string, args ...any) error {
	return newf(ErrConfig, operand, format, args...)
}
