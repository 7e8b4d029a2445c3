// Package apperrors provides the classified error types the core returns.
// Every operation either fully succeeds or fails with one of these kinds;
// collaborators translate them into user-facing messages, and internal
// details are never exposed past the Message field.
package apperrors

import "net/http"

// AppError represents a structured application error with an error code,
// human-readable message, HTTP status code, and optional internal error.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Wrap creates a new AppError with the same code/message/status but wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// Validation errors: the input never reached storage, nothing to roll back.
var (
	ErrInvalidInput = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrKindMismatch = &AppError{Code: "CATEGORY_KIND_MISMATCH", Message: "Transaction kind does not match the category kind", StatusCode: http.StatusBadRequest}
)

// Not-found errors: the referenced id does not exist.
var (
	ErrCategoryNotFound    = &AppError{Code: "CATEGORY_NOT_FOUND", Message: "Category not found", StatusCode: http.StatusNotFound}
	ErrEventNotFound       = &AppError{Code: "EVENT_NOT_FOUND", Message: "Event not found", StatusCode: http.StatusNotFound}
	ErrTransactionNotFound = &AppError{Code: "TRANSACTION_NOT_FOUND", Message: "Transaction not found", StatusCode: http.StatusNotFound}
)

// Referential conflicts: the write is blocked by existing records.
var (
	ErrCategoryInUse     = &AppError{Code: "CATEGORY_IN_USE", Message: "Category is used by existing transactions", StatusCode: http.StatusConflict}
	ErrDuplicateCategory = &AppError{Code: "DUPLICATE_CATEGORY", Message: "A category with this name and kind already exists", StatusCode: http.StatusConflict}
)

// Storage failures: the durable-storage operation itself failed.
var (
	ErrStorage = &AppError{Code: "STORAGE_ERROR", Message: "A storage error occurred", StatusCode: http.StatusInternalServerError}
)
