package errors

import (
	"fmt"
	"net/http"
)

// Error is an error carrying a code, on top of its message and its cause.
type Error interface {
	error

	Code() int
	Message() string
	Cause() error
}

// DefaultCode is the code of errors created without one.
var DefaultCode = http.StatusInternalServerError

type codedError struct {
	code  int
	msg   string
	cause error
}

func (e *codedError) Error() string {
	if e.cause == nil {
		return e.msg
	}
	return fmt.Sprintf("%s: %v", e.msg, e.cause)
}

func (e *codedError) Code() int       { return e.code }
func (e *codedError) Message() string { return e.msg }
func (e *codedError) Cause() error    { return e.cause }
func (e *codedError) Unwrap() error   { return e.cause }

// ErrorEnricher decorates an error. Enrichers return nil for a nil error.
type ErrorEnricher func(error) error

func WithCode(code int) ErrorEnricher {
	return func(err error) error {
		if err == nil {
			return nil
		}

		e := asCoded(err)
		e.code = code
		return e
	}
}

// WithCause sets the cause of the error. An error still holding DefaultCode
// takes the code of its cause.
func WithCause(cause error) ErrorEnricher {
	return func(err error) error {
		if err == nil {
			return nil
		}

		e := asCoded(err)
		e.cause = cause
		if e.code == DefaultCode && cause != nil {
			e.code = Code(cause)
		}
		return e
	}
}

// asCoded returns err itself when it was created by this package, a coded
// copy of its message otherwise.
func asCoded(err error) *codedError {
	if e, ok := err.(*codedError); ok {
		return e
	}
	return &codedError{code: DefaultCode, msg: err.Error()}
}

func New(msg string, enrichers ...ErrorEnricher) error {
	var err error = &codedError{code: DefaultCode, msg: msg}
	for _, enrich := range enrichers {
		err = enrich(err)
	}
	return err
}
