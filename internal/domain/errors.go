package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorCode is a stable error category surfaced to API callers so they
// can distinguish user error from system error.
type ErrorCode string

const (
	CodeUnauthenticated ErrorCode = "UNAUTHENTICATED"
	CodeValidation      ErrorCode = "VALIDATION"
	CodeUnknownProvider ErrorCode = "UNKNOWN_PROVIDER"
	CodeAccessDenied    ErrorCode = "ACCESS_DENIED"
	CodeNotFound        ErrorCode = "NOT_FOUND"
	CodeConflict        ErrorCode = "CONFLICT"
	CodeProviderFailure ErrorCode = "PROVIDER_FAILURE"
	CodeStorageFailure  ErrorCode = "STORAGE_FAILURE"
	CodeInternal        ErrorCode = "INTERNAL"
)

// AppError is a categorized application error. Message is safe to show
// to the caller; Cause carries the underlying detail for logs only.
type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Status  int       `json:"-"`
	Cause   error     `json:"-"`
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// IsCode reports whether err is an AppError with the given code.
func IsCode(err error, code ErrorCode) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == code
}

func NewUnauthenticated(message string) *AppError {
	return &AppError{Code: CodeUnauthenticated, Message: message, Status: http.StatusUnauthorized}
}

func NewValidation(message string) *AppError {
	return &AppError{Code: CodeValidation, Message: message, Status: http.StatusBadRequest}
}

func NewUnknownProvider(name string) *AppError {
	return &AppError{
		Code:    CodeUnknownProvider,
		Message: fmt.Sprintf("unknown provider: %s", name),
		Status:  http.StatusBadRequest,
	}
}

func NewAccessDenied(message string) *AppError {
	return &AppError{Code: CodeAccessDenied, Message: message, Status: http.StatusForbidden}
}

func NewNotFound(message string) *AppError {
	return &AppError{Code: CodeNotFound, Message: message, Status: http.StatusNotFound}
}

func NewConflict(message string) *AppError {
	return &AppError{Code: CodeConflict, Message: message, Status: http.StatusConflict}
}

// NewProviderFailure wraps an upstream vendor failure. The vendor's
// detail stays in Cause and is never returned verbatim to the caller.
func NewProviderFailure(cause error) *AppError {
	return &AppError{
		Code:    CodeProviderFailure,
		Message: "AI provider request failed",
		Status:  http.StatusBadGateway,
		Cause:   cause,
	}
}

// NewStorageFailure wraps a durable-store failure. A failed append is
// never silently dropped; the originating request fails with this error.
func NewStorageFailure(operation string, cause error) *AppError {
	return &AppError{
		Code:    CodeStorageFailure,
		Message: fmt.Sprintf("storage operation failed: %s", operation),
		Status:  http.StatusInternalServerError,
		Cause:   cause,
	}
}

// NewInternal wraps an in-process failure such as hashing or token
// signing, which is neither a store nor a vendor problem.
func NewInternal(operation string, cause error) *AppError {
	return &AppError{
		Code:    CodeInternal,
		Message: fmt.Sprintf("internal operation failed: %s", operation),
		Status:  http.StatusInternalServerError,
		Cause:   cause,
	}
}
