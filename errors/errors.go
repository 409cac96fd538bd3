// Package errors defines the error taxonomy shared by every layer of the
// filesystem core: a low-level DriverError that carries a POSIX errno for
// the mount bridge to hand back to the kernel, and a higher-level DiskoError
// for structural failures that have no single errno equivalent.
package errors

import (
	"fmt"
	"syscall"
)

// DriverError wraps a system errno code with an optional descriptive
// message. The mount bridge maps these directly onto the error it returns
// to the kernel (e.g. ENOENT, EIO).
type DriverError struct {
	ErrnoCode syscall.Errno
	message   string
}

func (e *DriverError) Error() string {
	if e.message != "" {
		return e.message
	}
	return e.ErrnoCode.Error()
}

func (e *DriverError) Unwrap() error {
	return e.ErrnoCode
}

// NewDriverError creates a DriverError with a default message derived from
// the errno code.
func NewDriverError(errnoCode syscall.Errno) *DriverError {
	return &DriverError{ErrnoCode: errnoCode, message: errnoCode.Error()}
}

// NewDriverErrorWithMessage creates a DriverError from an errno code with a
// custom message.
func NewDriverErrorWithMessage(errnoCode syscall.Errno, message string) *DriverError {
	return &DriverError{
		ErrnoCode: errnoCode,
		message:   fmt.Sprintf("%s: %s", errnoCode.Error(), message),
	}
}

// DiskoError is a sentinel error type for structural failures specific to
// this filesystem core that don't map onto a single POSIX errno (geometry
// validation, chain corruption, entry-set reduction failures).
type DiskoError string

func (e DiskoError) Error() string {
	return string(e)
}

func (e DiskoError) WithMessage(message string) error {
	return &wrappedDiskoError{message: fmt.Sprintf("%s: %s", string(e), message), sentinel: e}
}

func (e DiskoError) WrapError(err error) error {
	return &wrappedDiskoError{message: fmt.Sprintf("%s: %s", string(e), err.Error()), sentinel: e, cause: err}
}

// wrappedDiskoError carries both the DiskoError sentinel it was raised
// against (for errors.Is(err, ErrXxx) checks) and, when built via
// WrapError, the lower-level error that triggered it.
type wrappedDiskoError struct {
	message  string
	sentinel DiskoError
	cause    error
}

func (e *wrappedDiskoError) Error() string {
	return e.message
}

func (e *wrappedDiskoError) Is(target error) bool {
	return e.sentinel == target
}

func (e *wrappedDiskoError) Unwrap() error {
	return e.cause
}
