package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

type ErrorCode string

const (
	CodeInternal        ErrorCode = "INTERNAL_ERROR"
	CodeBadRequest      ErrorCode = "BAD_REQUEST"
	CodeUnauthorized    ErrorCode = "UNAUTHORIZED"
	CodeForbidden       ErrorCode = "FORBIDDEN"
	CodeNotFound        ErrorCode = "NOT_FOUND"
	CodeTooManyRequests ErrorCode = "TOO_MANY_REQUESTS"
	CodeValidation      ErrorCode = "VALIDATION_ERROR"
	CodeUpstream        ErrorCode = "UPSTREAM_ERROR"

	CodeEmptyCheckout ErrorCode = "EMPTY_CHECKOUT"
	CodePartialOrder  ErrorCode = "PARTIAL_ORDER"
	CodeUnavailable   ErrorCode = "VARIANT_UNAVAILABLE"
)

type AppError struct {
	Code     ErrorCode `json:"code"`
	Message  string    `json:"message"`
	Redirect string    `json:"redirect,omitempty"`
	Data     any       `json:"data,omitempty"`
	Err      error     `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func (e *AppError) HTTPStatusCode() int {
	switch e.Code {
	case CodeBadRequest, CodeValidation:
		return http.StatusBadRequest
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeForbidden:
		return http.StatusForbidden
	case CodeNotFound:
		return http.StatusNotFound
	case CodeEmptyCheckout:
		return http.StatusConflict
	case CodeUnavailable:
		return http.StatusUnprocessableEntity
	case CodeTooManyRequests:
		return http.StatusTooManyRequests
	case CodeUpstream, CodePartialOrder:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// WithRedirect tells the client where to navigate instead of rendering an error.
func (e *AppError) WithRedirect(path string) *AppError {
	e.Redirect = path
	return e
}

func (e *AppError) WithData(data any) *AppError {
	e.Data = data
	return e
}

func New(code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

func Wrap(err error, code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func BadRequest(message string) *AppError {
	return New(CodeBadRequest, message)
}

func Validation(message string) *AppError {
	return New(CodeValidation, message)
}

func Unauthorized(message string) *AppError {
	return New(CodeUnauthorized, message)
}

func Forbidden(message string) *AppError {
	return New(CodeForbidden, message)
}

func NotFound(message string) *AppError {
	return New(CodeNotFound, message)
}

func Internal(message string) *AppError {
	return New(CodeInternal, message)
}

func Is(err error, code ErrorCode) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

func As(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
