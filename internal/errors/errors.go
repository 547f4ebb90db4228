// Package errors provides custom error types for Kopilka.
// All service-layer errors use AppError so that boundaries (bot replies,
// admin API responses) stay consistent and never leak internal details.
package errors

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
	}
}

// Validation errors. These are caller-recoverable: the bot turns them into
// a targeted retry prompt without logging a stack trace.
var (
	ErrInvalidAmount     = &AppError{Code: "INVALID_AMOUNT", Message: "Amount must be a positive number", StatusCode: http.StatusBadRequest}
	ErrEmptyCategory     = &AppError{Code: "EMPTY_CATEGORY", Message: "Category must not be empty", StatusCode: http.StatusBadRequest}
	ErrEmptyInput        = &AppError{Code: "EMPTY_INPUT", Message: "Input text is empty", StatusCode: http.StatusBadRequest}
	ErrInvalidUser       = &AppError{Code: "INVALID_USER", Message: "User ID must be positive", StatusCode: http.StatusBadRequest}
	ErrDuplicateCategory = &AppError{Code: "DUPLICATE_CATEGORY", Message: "A category with this name or trigger already exists", StatusCode: http.StatusConflict}
	ErrInvalidInput      = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
)

// Provider errors. Logged with full context at the boundary; the end user
// only ever sees a generic "try again later" message.
var (
	ErrProviderUnavailable   = &AppError{Code: "PROVIDER_UNAVAILABLE", Message: "AI provider request failed", StatusCode: http.StatusBadGateway}
	ErrEmptyProviderResponse = &AppError{Code: "EMPTY_PROVIDER_RESPONSE", Message: "AI provider returned an empty response", StatusCode: http.StatusBadGateway}
	ErrMalformedExtraction   = &AppError{Code: "MALFORMED_EXTRACTION", Message: "AI provider returned an unparseable response", StatusCode: http.StatusBadGateway}
	ErrTranscriptionFailed   = &AppError{Code: "TRANSCRIPTION_FAILED", Message: "Voice transcription failed", StatusCode: http.StatusBadGateway}
)

// Persistence and general errors.
var (
	ErrPersistence    = &AppError{Code: "PERSISTENCE_ERROR", Message: "A storage error occurred", StatusCode: http.StatusInternalServerError}
	ErrNotFound       = &AppError{Code: "NOT_FOUND", Message: "Resource not found", StatusCode: http.StatusNotFound}
	ErrUnauthorized   = &AppError{Code: "UNAUTHORIZED", Message: "Authentication required", StatusCode: http.StatusUnauthorized}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
)
