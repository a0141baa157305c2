package apperr

import (
	"errors"
	"fmt"
)

type Code int

const (
	CodeInvalidArgument Code = iota
	CodeFailedPrecondition
	CodeNotFound
	CodeConflict
)

func (c Code) String() string {
	switch c {
	case CodeInvalidArgument:
		return "INVALID_ARGUMENT"
	case CodeFailedPrecondition:
		return "FAILED_PRECONDITION"
	case CodeNotFound:
		return "NOT_FOUND"
	case CodeConflict:
		return "CONFLICT"
	default:
		return "UNKNOWN"
	}
}

// Error is a domain failure the caller can act on. Anything else reaching a
// handler is treated as internal.
type Error struct {
	Code    Code
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func InvalidArgument(message string) *Error {
	return &Error{Code: CodeInvalidArgument, Message: message}
}

func InvalidArgumentf(format string, args ...interface{}) *Error {
	return &Error{Code: CodeInvalidArgument, Message: fmt.Sprintf(format, args...)}
}

func FailedPrecondition(message string) *Error {
	return &Error{Code: CodeFailedPrecondition, Message: message}
}

func FailedPreconditionf(format string, args ...interface{}) *Error {
	return &Error{Code: CodeFailedPrecondition, Message: fmt.Sprintf(format, args...)}
}

func NotFound(message string) *Error {
	return &Error{Code: CodeNotFound, Message: message}
}

func Conflict(message string) *Error {
	return &Error{Code: CodeConflict, Message: message}
}

// CodeOf reports the code of the first *Error in err's chain.
func CodeOf(err error) (Code, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Code, true
	}
	return 0, false
}
