// internal/pkg/apperrors/errors.go
package apperrors

import (
	"errors"
	"net/http"
)

// Code classifies an error for transport mapping
type Code string

const (
	CodeValidation   Code = "VALIDATION_ERROR"
	CodeUnauthorized Code = "UNAUTHORIZED"
	CodeForbidden    Code = "FORBIDDEN"
	CodeNotFound     Code = "NOT_FOUND"
	CodeConflict     Code = "CONFLICT"
	CodeGateway      Code = "GATEWAY_ERROR"
	CodePersistence  Code = "PERSISTENCE_ERROR"
)

// statusByCode maps error codes to HTTP status codes
var statusByCode = map[Code]int{
	CodeValidation:   http.StatusBadRequest,
	CodeUnauthorized: http.StatusUnauthorized,
	CodeForbidden:    http.StatusForbidden,
	CodeNotFound:     http.StatusNotFound,
	CodeConflict:     http.StatusConflict,
	CodeGateway:      http.StatusBadGateway,
	CodePersistence:  http.StatusInternalServerError,
}

// Error is a classified application error
type Error struct {
	Code    Code
	Message string
	Err     error
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *Error) Unwrap() error {
	return e.Err
}

// New creates a new classified error
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Wrap wraps an underlying error with a code and message
func Wrap(code Code, err error, message string) *Error {
	return &Error{Code: code, Message: message, Err: err}
}

// Convenience constructors for the common cases

func Validation(message string) *Error   { return New(CodeValidation, message) }
func Unauthorized(message string) *Error { return New(CodeUnauthorized, message) }
func Forbidden(message string) *Error    { return New(CodeForbidden, message) }
func NotFound(message string) *Error     { return New(CodeNotFound, message) }
func Conflict(message string) *Error     { return New(CodeConflict, message) }

// Gateway wraps a payment gateway failure
func Gateway(err error, message string) *Error {
	return Wrap(CodeGateway, err, message)
}

// Persistence wraps a store failure
func Persistence(err error, message string) *Error {
	return Wrap(CodePersistence, err, message)
}

// CodeOf extracts the code from an error chain, defaulting to persistence
func CodeOf(err error) Code {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return CodePersistence
}

// IsCode reports whether the error carries the given code
func IsCode(err error, code Code) bool {
	return CodeOf(err) == code
}

// HTTPStatus returns the HTTP status for an error
func HTTPStatus(err error) int {
	if status, ok := statusByCode[CodeOf(err)]; ok {
		return status
	}
	return http.StatusInternalServerError
}
