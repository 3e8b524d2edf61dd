package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

type Code string

const (
	CodeInvalidInput        Code = "INVALID_INPUT"
	CodeUserNotFound        Code = "USER_NOT_FOUND"
	CodeMenuNotFound        Code = "MENU_NOT_FOUND"
	CodeOrderNotFound       Code = "ORDER_NOT_FOUND"
	CodeDuplicateUser       Code = "DUPLICATE_USER"
	CodeInsufficientBalance Code = "INSUFFICIENT_BALANCE"
	CodeConcurrencyConflict Code = "CONCURRENCY_CONFLICT"
	CodeUnauthorized        Code = "UNAUTHORIZED"
	CodeInternal            Code = "INTERNAL_SERVER_ERROR"
)

// Error is the service-boundary error: a stable machine-readable code plus
// a message safe to show the caller. The wrapped cause stays server-side.
type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

func New(code Code, msg string) *Error { return &Error{Code: code, Message: msg} }

func Wrap(code Code, msg string, err error) *Error {
	return &Error{Code: code, Message: msg, Err: err}
}

// CodeOf extracts the code from err; anything untyped is an internal error.
func CodeOf(err error) Code {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Code
	}
	return CodeInternal
}

// MessageOf returns the caller-safe message for err. Untyped errors get a
// generic message so storage detail never leaks.
func MessageOf(err error) string {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Message
	}
	return "internal server error"
}

func HTTPStatus(code Code) int {
	switch code {
	case CodeInvalidInput, CodeInsufficientBalance:
		return http.StatusBadRequest
	case CodeUserNotFound, CodeMenuNotFound, CodeOrderNotFound:
		return http.StatusNotFound
	case CodeConcurrencyConflict, CodeDuplicateUser:
		return http.StatusConflict
	case CodeUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
