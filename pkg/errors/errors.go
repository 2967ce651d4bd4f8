package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorCode identifies a class of application error.
type ErrorCode string

const (
	ErrNotFound           ErrorCode = "NOT_FOUND"
	ErrBadRequest         ErrorCode = "BAD_REQUEST"
	ErrUnauthorized       ErrorCode = "UNAUTHORIZED"
	ErrForbidden          ErrorCode = "FORBIDDEN"
	ErrInternal           ErrorCode = "INTERNAL"
	ErrConflict           ErrorCode = "CONFLICT"
	ErrInvalidCode        ErrorCode = "INVALID_CODE"
	ErrCodeExpired        ErrorCode = "CODE_EXPIRED"
	ErrUsageLimitReached  ErrorCode = "USAGE_LIMIT_REACHED"
	ErrAlreadyRedeemed    ErrorCode = "ALREADY_REDEEMED"
	ErrMissingPatientID   ErrorCode = "MISSING_PATIENT_ID"
	ErrAccessCodeRequired ErrorCode = "ACCESS_CODE_REQUIRED"
)

// AppError represents an application error
type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Err     error     `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// StatusCode maps the error code to an HTTP status.
func (e *AppError) StatusCode() int {
	switch e.Code {
	case ErrNotFound:
		return http.StatusNotFound
	case ErrBadRequest, ErrInvalidCode, ErrCodeExpired, ErrUsageLimitReached,
		ErrAlreadyRedeemed, ErrMissingPatientID:
		return http.StatusBadRequest
	case ErrUnauthorized:
		return http.StatusUnauthorized
	case ErrForbidden, ErrAccessCodeRequired:
		return http.StatusForbidden
	case ErrConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// AsAppError extracts an *AppError from an error chain.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// Is reports whether err carries the given code.
func Is(err error, code ErrorCode) bool {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Code == code
	}
	return false
}

// Error constructors
func New(code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

func NotFound(resource string, err error) *AppError {
	return &AppError{
		Code:    ErrNotFound,
		Message: fmt.Sprintf("%s not found", resource),
		Err:     err,
	}
}

func BadRequest(message string, err error) *AppError {
	return &AppError{
		Code:    ErrBadRequest,
		Message: message,
		Err:     err,
	}
}

func Internal(err error) *AppError {
	return &AppError{
		Code:    ErrInternal,
		Message: "internal server error",
		Err:     err,
	}
}

func Unauthorized(err error) *AppError {
	return &AppError{
		Code:    ErrUnauthorized,
		Message: "unauthorized",
		Err:     err,
	}
}

func Forbidden(message string) *AppError {
	return &AppError{
		Code:    ErrForbidden,
		Message: message,
	}
}

func InvalidCode() *AppError {
	return &AppError{Code: ErrInvalidCode, Message: "invalid access code"}
}

func CodeExpired() *AppError {
	return &AppError{Code: ErrCodeExpired, Message: "access code has expired"}
}

func UsageLimitReached() *AppError {
	return &AppError{Code: ErrUsageLimitReached, Message: "access code usage limit reached"}
}

func AlreadyRedeemed() *AppError {
	return &AppError{Code: ErrAlreadyRedeemed, Message: "access code already redeemed by this user"}
}

func MissingPatientID() *AppError {
	return &AppError{Code: ErrMissingPatientID, Message: "patient id is required"}
}

func AccessCodeRequired() *AppError {
	return &AppError{Code: ErrAccessCodeRequired, Message: "an access code is required to activate this account"}
}
