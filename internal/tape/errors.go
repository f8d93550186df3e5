package tape

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes tape and sort failures.
type ErrorCode string

const (
	// ErrCodeOutOfRange indicates a write at the before-begin position.
	ErrCodeOutOfRange ErrorCode = "OUT_OF_RANGE"

	// ErrCodeResourceUnavailable indicates backing storage could not be
	// allocated, opened, or accessed.
	ErrCodeResourceUnavailable ErrorCode = "RESOURCE_UNAVAILABLE"

	// ErrCodeConfiguration indicates malformed or incomplete configuration.
	ErrCodeConfiguration ErrorCode = "CONFIGURATION_ERROR"
)

// Error is a categorized failure raised by a tape, an allocator, or the
// configuration that feeds them.
type Error struct {
	// Code identifies the error category.
	Code ErrorCode

	// Op names the operation that failed ("write", "create", "parse", ...).
	Op string

	// Message is a human-readable description.
	Message string

	// Err is the underlying cause, if any.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Code, e.Message)
	if e.Op != "" {
		msg = fmt.Sprintf("%s: %s: %s", e.Code, e.Op, e.Message)
	}
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// NewOutOfRangeError creates an OUT_OF_RANGE error for op.
func NewOutOfRangeError(op, message string) *Error {
	return &Error{Code: ErrCodeOutOfRange, Op: op, Message: message}
}

// NewResourceError creates a RESOURCE_UNAVAILABLE error wrapping err.
func NewResourceError(op, message string, err error) *Error {
	return &Error{Code: ErrCodeResourceUnavailable, Op: op, Message: message, Err: err}
}

// NewConfigurationError creates a CONFIGURATION_ERROR.
func NewConfigurationError(message string, err error) *Error {
	return &Error{Code: ErrCodeConfiguration, Message: message, Err: err}
}

// IsOutOfRange reports whether err is (or wraps) an OUT_OF_RANGE error.
func IsOutOfRange(err error) bool {
	return hasCode(err, ErrCodeOutOfRange)
}

// IsResourceUnavailable reports whether err is (or wraps) a
// RESOURCE_UNAVAILABLE error.
func IsResourceUnavailable(err error) bool {
	return hasCode(err, ErrCodeResourceUnavailable)
}

// IsConfigurationError reports whether err is (or wraps) a
// CONFIGURATION_ERROR.
func IsConfigurationError(err error) bool {
	return hasCode(err, ErrCodeConfiguration)
}

// CodeOf returns the code of the first *Error in err's chain.
func CodeOf(err error) (ErrorCode, bool) {
	var te *Error
	if errors.As(err, &te) {
		return te.Code, true
	}
	return "", false
}

func hasCode(err error, code ErrorCode) bool {
	c, ok := CodeOf(err)
	return ok && c == code
}

const msgWriteBeforeBegin = "writing to the before-begin position is prohibited"
