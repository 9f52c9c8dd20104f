package errors

import (
	stdErrors "errors"
	"fmt"
	"net/http"
)

// Code identifies a class of failure across the service.
type Code string

const (
	CodeUnknown               Code = "UNKNOWN"
	CodeUpstreamFailure       Code = "UPSTREAM_FAILURE"
	CodeUpstreamMalformed     Code = "UPSTREAM_MALFORMED"
	CodeTimeout               Code = "TIMEOUT"
	CodeInitializationFailure Code = "INITIALIZATION_FAILURE"
)

// Attributes are the defaults attached to a code.
type Attributes struct {
	Message string
	Status  int
}

var registry = map[Code]Attributes{
	CodeUnknown: {
		Message: "unknown error",
		Status:  http.StatusInternalServerError,
	},
	CodeUpstreamFailure: {
		Message: "upstream request failed",
		Status:  http.StatusBadGateway,
	},
	CodeUpstreamMalformed: {
		Message: "upstream returned an unexpected response",
		Status:  http.StatusBadGateway,
	},
	CodeTimeout: {
		Message: "upstream request timed out",
		Status:  http.StatusGatewayTimeout,
	},
	CodeInitializationFailure: {
		Message: "service not initialized",
		Status:  http.StatusInternalServerError,
	},
}

// AttributesOf returns the attributes of code, falling back to UNKNOWN.
func AttributesOf(code Code) Attributes {
	if attr, ok := registry[code]; ok {
		return attr
	}
	return registry[CodeUnknown]
}

// Error is the service-wide error type.
type Error struct {
	code    Code
	message string
	cause   error
	exposed bool
}

// Option customises an Error.
type Option func(*Error)

// WithExposed marks the message as safe to hand back to the caller verbatim.
func WithExposed() Option {
	return func(e *Error) {
		e.exposed = true
	}
}

// New creates an Error. An empty message takes the code's default.
func New(code Code, message string, opts ...Option) *Error {
	if message == "" {
		message = AttributesOf(code).Message
	}
	e := &Error{code: code, message: message}
	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}
	return e
}

// Wrap creates an Error around cause.
func Wrap(code Code, cause error, message string, opts ...Option) *Error {
	e := New(code, message, opts...)
	e.cause = cause
	return e
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.code, e.message, e.cause)
	}
	return fmt.Sprintf("[%s] %s", e.code, e.message)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.cause
}

// Is reports whether target is an *Error with the same code.
func (e *Error) Is(target error) bool {
	if e == nil || target == nil {
		return false
	}
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.code == t.code
}

func (e *Error) Code() Code {
	if e == nil {
		return CodeUnknown
	}
	return e.code
}

func (e *Error) Message() string {
	if e == nil {
		return ""
	}
	return e.message
}

// Exposed reports whether Message is meant for the client.
func (e *Error) Exposed() bool {
	return e != nil && e.exposed
}

// Status returns the HTTP status registered for the code.
func (e *Error) Status() int {
	return AttributesOf(e.Code()).Status
}

// From extracts an *Error from err's chain.
func From(err error) (*Error, bool) {
	if err == nil {
		return nil, false
	}
	var target *Error
	if stdErrors.As(err, &target) {
		return target, true
	}
	return nil, false
}

// CodeOf returns the code of err, or UNKNOWN.
func CodeOf(err error) Code {
	if e, ok := From(err); ok {
		return e.Code()
	}
	return CodeUnknown
}

// StatusOf returns the HTTP status for err.
func StatusOf(err error) int {
	if e, ok := From(err); ok {
		return e.Status()
	}
	return AttributesOf(CodeUnknown).Status
}
