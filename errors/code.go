package errors

import (
	stderrors "errors"
	"net/http"
)

// The codes follow HTTP semantics so that a transport layer can forward them
// as they are.
const (
	CodeValidation  = http.StatusBadRequest
	CodePermission  = http.StatusForbidden
	CodeNotFound    = http.StatusNotFound
	CodeUnsupported = http.StatusUnprocessableEntity
	CodeUnavailable = http.StatusServiceUnavailable
)

func BadRequest() ErrorEnricher  { return WithCode(CodeValidation) }
func Forbidden() ErrorEnricher   { return WithCode(CodePermission) }
func NotFound() ErrorEnricher    { return WithCode(CodeNotFound) }
func Unsupported() ErrorEnricher { return WithCode(CodeUnsupported) }
func Unavailable() ErrorEnricher { return WithCode(CodeUnavailable) }

// Code returns the code carried by err or one of the errors it wraps,
// DefaultCode otherwise. A nil error has code 0.
func Code(err error) int {
	if err == nil {
		return 0
	}

	var e Error
	if stderrors.As(err, &e) {
		return e.Code()
	}
	return DefaultCode
}

func IsValidation(err error) bool  { return Code(err) == CodeValidation }
func IsPermission(err error) bool  { return Code(err) == CodePermission }
func IsNotFound(err error) bool    { return Code(err) == CodeNotFound }
func IsUnsupported(err error) bool { return Code(err) == CodeUnsupported }
func IsUnavailable(err error) bool { return Code(err) == CodeUnavailable }
