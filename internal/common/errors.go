package common

import (
	"errors"
	"fmt"
)

// Error codes raised while sweeping the remote catalog. All of them abort the run.
const (
	CodeCatalogTransport = "CATALOG_TRANSPORT"
	CodeCatalogStatus    = "CATALOG_STATUS"
	CodeCatalogDecode    = "CATALOG_DECODE"
	CodeConfigInvalid    = "CONFIG_INVALID"
)

// AppError represents an error with an attached code and, for upstream failures,
// the HTTP status and catalog page that produced it.
type AppError struct {
	Code       string
	Message    string
	HTTPStatus int
	Page       int
	Err        error
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e == nil {
		return ""
	}
	msg := e.Message
	if e.Page > 0 {
		msg = fmt.Sprintf("%s (page %d)", msg, e.Page)
	}
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

// Unwrap allows errors.Is/As to inspect the underlying error.
func (e *AppError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// NewAppError constructs an AppError.
func NewAppError(code, message string, status int, err error) *AppError {
	return &AppError{Code: code, Message: message, HTTPStatus: status, Err: err}
}

// WithPage records the catalog page the error belongs to.
func (e *AppError) WithPage(page int) *AppError {
	if e == nil {
		return nil
	}
	e.Page = page
	return e
}

// IsAppError checks whether the error is an AppError.
func IsAppError(err error) bool {
	var target *AppError
	return errors.As(err, &target)
}

// ErrorCode extracts the AppError code from err, or "" when err carries none.
func ErrorCode(err error) string {
	var target *AppError
	if errors.As(err, &target) {
		return target.Code
	}
	return ""
}
