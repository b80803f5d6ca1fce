package sitechat

import (
	"errors"
	"fmt"
)

// Application error codes.
//
// These codes classify errors for callers: the HTTP/CLI layer maps them to
// exit codes or status codes, and tests assert on them. Any error without a
// code is treated as an internal error and its message is not shown to users.
const (
	ECONFLICT    = "conflict"      // action conflicts with current state
	EEMPTY       = "empty_content" // nothing indexable was produced
	EINTERNAL    = "internal"      // unexpected internal failure
	EINVALID     = "invalid"       // validation failed
	ENOTFOUND    = "not_found"     // entity does not exist
	EUNAVAILABLE = "unavailable"   // required backend is unreachable
)

// Error represents an application error with a machine-readable code and a
// human-readable message.
type Error struct {
	// Code is one of the application error codes above.
	Code string

	// Message is a human-readable description safe to show to end users.
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("sitechat error: code=%s message=%s", e.Code, e.Message)
}

// Errorf is a helper for constructing an *Error with a formatted message.
func Errorf(code string, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// ErrorCode returns the code of the error, if available.
// Returns EINTERNAL for non-application errors and "" for a nil error.
func ErrorCode(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Code
	}
	return EINTERNAL
}

// ErrorMessage returns the human-readable message of the error, if
// available. Non-application error messages are masked behind a generic
// internal error message.
func ErrorMessage(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Message
	}
	return "Internal error."
}
