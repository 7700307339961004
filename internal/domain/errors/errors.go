package errors

import (
	"errors"
	"net/http"
)

// Domain errors
var (
	ErrNotFound              = errors.New("resource not found")
	ErrAlreadyExists         = errors.New("resource already exists")
	ErrInvalidInput          = errors.New("invalid input")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrForbidden             = errors.New("forbidden")
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrAccountInactive       = errors.New("account is inactive")
	ErrAccountLocked         = errors.New("account is locked")
	ErrInvalidRefreshToken   = errors.New("invalid or expired refresh token")
	ErrUnsupportedMediaType  = errors.New("unsupported media type")
	ErrPayloadTooLarge       = errors.New("payload too large")
	ErrInvalidAccountManager = errors.New("invalid account manager")
	ErrInvalidTransition     = errors.New("invalid onboarding transition")
)

// Error codes returned in response envelopes
const (
	CodeValidation           = "ERR_VALIDATION"
	CodeNotFound             = "ERR_NOT_FOUND"
	CodeUnauthorized         = "ERR_UNAUTHORIZED"
	CodeForbidden            = "ERR_FORBIDDEN"
	CodeConflict             = "ERR_CONFLICT"
	CodeInvalidCredentials   = "ERR_INVALID_CREDENTIALS"
	CodePayloadTooLarge      = "ERR_PAYLOAD_TOO_LARGE"
	CodeUnsupportedMediaType = "ERR_UNSUPPORTED_MEDIA_TYPE"
	CodeInternal             = "ERR_INTERNAL"
)

// AppError carries an HTTP status and a stable machine code alongside the
// human-readable message. The wrapped error never reaches the response body.
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

// Common constructors

func NotFound(message string) *AppError {
	return NewAppError(http.StatusNotFound, CodeNotFound, message, ErrNotFound)
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

func Conflict(message string) *AppError {
	return NewAppError(http.StatusConflict, CodeConflict, message, ErrAlreadyExists)
}

func PayloadTooLarge(message string) *AppError {
	return NewAppError(http.StatusRequestEntityTooLarge, CodePayloadTooLarge, message, ErrPayloadTooLarge)
}

func UnsupportedMediaType(message string) *AppError {
	return NewAppError(http.StatusUnsupportedMediaType, CodeUnsupportedMediaType, message, ErrUnsupportedMediaType)
}

func InternalError(err error) *AppError {
	return NewAppError(http.StatusInternalServerError, CodeInternal, "internal server error", err)
}
