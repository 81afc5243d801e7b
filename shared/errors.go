package shared

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError carries the HTTP status and client-facing message for a failure.
// Err keeps the underlying cause for logs and is never rendered.
type AppError struct {
	StatusCode int
	Message    string
	Data       interface{}
	Err        error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Err }

func newAppError(status int, err error, message string) *AppError {
	return &AppError{StatusCode: status, Message: message, Err: err}
}

func NewBadRequestError(err error, message string) *AppError {
	return newAppError(http.StatusBadRequest, err, message)
}

// NewValidationError is a 400 whose Data lists the offending fields.
func NewValidationError(message string, data interface{}) *AppError {
	return &AppError{StatusCode: http.StatusBadRequest, Message: message, Data: data}
}

func NewUnauthorizedError(err error, message string) *AppError {
	return newAppError(http.StatusUnauthorized, err, message)
}

func NewForbiddenError(err error, message string) *AppError {
	return newAppError(http.StatusForbidden, err, message)
}

func NewNotFoundError(err error, message string) *AppError {
	return newAppError(http.StatusNotFound, err, message)
}

func NewConflictError(err error, message string) *AppError {
	return newAppError(http.StatusConflict, err, message)
}

func NewPaymentRequiredError(err error, message string) *AppError {
	return newAppError(http.StatusPaymentRequired, err, message)
}

func NewServiceUnavailableError(err error, message string) *AppError {
	return newAppError(http.StatusServiceUnavailable, err, message)
}

func NewInternalError(err error, message string) *AppError {
	return newAppError(http.StatusInternalServerError, err, message)
}

// GetAppError unwraps err to an *AppError, if it holds one.
func GetAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
