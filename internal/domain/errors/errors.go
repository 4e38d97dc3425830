package errors

import (
	"errors"
	"net/http"
)

// Domain errors
var (
	ErrNotFound           = errors.New("resource not found")
	ErrAlreadyExists      = errors.New("resource already exists")
	ErrInvalidInput       = errors.New("invalid input")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrInactiveUser       = errors.New("inactive user")
	ErrResellerNotFound   = errors.New("reseller cpf not registered")
	ErrValueOverflow      = errors.New("value exceeds storage precision")
	ErrUpstream           = errors.New("upstream service failure")
)

// Stable error codes returned to clients.
const (
	CodeNotFound           = "ERR_NOT_FOUND"
	CodeConflict           = "ERR_CONFLICT"
	CodeValidation         = "ERR_VALIDATION"
	CodeUnauthorized       = "ERR_UNAUTHORIZED"
	CodeForbidden          = "ERR_FORBIDDEN"
	CodeInvalidCredentials = "ERR_INVALID_CREDENTIALS"
	CodeUpstream           = "ERR_UPSTREAM"
	CodeInternal           = "ERR_INTERNAL"
)

// AppError represents an application error with an HTTP status and a
// stable machine-readable code.
type AppError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new app error
func NewAppError(status int, code, message string, err error) *AppError {
	return &AppError{
		Status:  status,
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Common error constructors
func NotFound(message string) *AppError {
	return NewAppError(http.StatusNotFound, CodeNotFound, message, ErrNotFound)
}

func Conflict(message string) *AppError {
	return NewAppError(http.StatusConflict, CodeConflict, message, ErrAlreadyExists)
}

func Validation(message string) *AppError {
	return NewAppError(http.StatusUnprocessableEntity, CodeValidation, message, ErrInvalidInput)
}

func BadRequest(message string) *AppError {
	return NewAppError(http.StatusBadRequest, CodeValidation, message, ErrInvalidInput)
}

func Unauthorized(message string) *AppError {
	return NewAppError(http.StatusUnauthorized, CodeUnauthorized, message, ErrUnauthorized)
}

func Forbidden(message string) *AppError {
	return NewAppError(http.StatusForbidden, CodeForbidden, message, ErrForbidden)
}

func Upstream(message string, err error) *AppError {
	return NewAppError(http.StatusInternalServerError, CodeUpstream, message, err)
}

func InternalError(err error) *AppError {
	return NewAppError(http.StatusInternalServerError, CodeInternal, "internal server error", err)
}
