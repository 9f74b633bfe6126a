package errors

import (
	stderrors "errors"
	"fmt"
)

// Error is a structured domain failure carrying a machine-readable code.
type Error struct {
	Code    Code
	Message string
	Err     error
}

// Error renders the human-readable message.
func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Message != "" {
		return e.Message
	}
	return string(e.Code)
}

// Unwrap exposes the wrapped cause for errors.Is/As chains.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// New builds a structured Error with a formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap builds a structured Error around a cause.
func Wrap(code Code, err error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Err: err}
}

// CodeOf extracts the structured code from an error chain.
func CodeOf(err error) Code {
	if err == nil {
		return ""
	}
	var structured *Error
	if stderrors.As(err, &structured) {
		return structured.Code
	}
	return CodeUnknown
}

// HTTPStatusOf maps any error to an HTTP status code.
func HTTPStatusOf(err error) int {
	return CodeOf(err).HTTPStatus()
}
