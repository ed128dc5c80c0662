// Package errors provides standardized error handling for the intake service.
package errors

import (
	"fmt"
	"net/http"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeSessionNotFound       ErrorCode = "SESSION_NOT_FOUND"
	ErrCodeSessionLoadFailed     ErrorCode = "SESSION_LOAD_FAILED"
	ErrCodeSessionSaveFailed     ErrorCode = "SESSION_SAVE_FAILED"
	ErrCodeStepValidationFailed  ErrorCode = "STEP_VALIDATION_FAILED"
	ErrCodeInvalidStepIndex      ErrorCode = "INVALID_STEP_INDEX"
	ErrCodeSubmissionFailed      ErrorCode = "SUBMISSION_FAILED"
	ErrCodeSubmissionRejected    ErrorCode = "SUBMISSION_REJECTED"
	ErrCodeDatabaseInsertFailed  ErrorCode = "DATABASE_INSERT_FAILED"
	ErrCodeSuggestionUnavailable ErrorCode = "SUGGESTION_UNAVAILABLE"
	ErrCodeSuggestionInFlight    ErrorCode = "SUGGESTION_IN_FLIGHT"
	ErrCodeInvalidRequest        ErrorCode = "INVALID_REQUEST"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// ==========================
// 2. Error Constructors
// ==========================

// NewSessionNotFoundError creates a non-retryable missing-session error.
func NewSessionNotFoundError(sessionID string) *StandardError {
	return &StandardError{
		Code:      ErrCodeSessionNotFound,
		Message:   "Form session not found",
		Details:   fmt.Sprintf("sessionId: %s", sessionID),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewSessionLoadFailedError creates a retryable store read error.
func NewSessionLoadFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeSessionLoadFailed,
		Message:   "Failed to load form session",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewSessionSaveFailedError creates a retryable store write error.
func NewSessionSaveFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeSessionSaveFailed,
		Message:   "Failed to persist form session",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewStepValidationFailedError creates a non-retryable validation error.
func NewStepValidationFailedError(step int, errorCount int) *StandardError {
	return &StandardError{
		Code:      ErrCodeStepValidationFailed,
		Message:   "Step data failed validation",
		Details:   fmt.Sprintf("step: %d, errors: %d", step, errorCount),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewInvalidStepIndexError creates a non-retryable navigation error.
func NewInvalidStepIndexError(step int) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidStepIndex,
		Message:   "Step index out of range",
		Details:   fmt.Sprintf("step: %d", step),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewSubmissionFailedError creates a retryable submission error. The draft
// is never touched on this path.
func NewSubmissionFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeSubmissionFailed,
		Message:   "Application submission failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewSubmissionRejectedError creates a non-retryable final-gate error.
func NewSubmissionRejectedError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeSubmissionRejected,
		Message:   "Application data rejected at submission",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewDatabaseInsertFailedError creates a retryable database insert error.
func NewDatabaseInsertFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeDatabaseInsertFailed,
		Message:   "Database insert operation failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewSuggestionUnavailableError creates a retryable AI-service error.
func NewSuggestionUnavailableError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeSuggestionUnavailable,
		Message:   "Suggestion service unavailable",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewSuggestionInFlightError signals a second request for a field that
// already has a round-trip pending.
func NewSuggestionInFlightError(field string) *StandardError {
	return &StandardError{
		Code:      ErrCodeSuggestionInFlight,
		Message:   "A suggestion is already being generated for this field",
		Details:   fmt.Sprintf("field: %s", field),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewInvalidRequestError creates a non-retryable malformed-request error.
func NewInvalidRequestError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidRequest,
		Message:   "Invalid request",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// 3. HTTP Mapping
// ==========================

// HTTPStatusMapping maps internal error codes to HTTP status codes.
var HTTPStatusMapping = map[ErrorCode]int{
	ErrCodeSessionNotFound:       http.StatusNotFound,
	ErrCodeSessionLoadFailed:     http.StatusServiceUnavailable,
	ErrCodeSessionSaveFailed:     http.StatusServiceUnavailable,
	ErrCodeStepValidationFailed:  http.StatusUnprocessableEntity,
	ErrCodeInvalidStepIndex:      http.StatusConflict,
	ErrCodeSubmissionFailed:      http.StatusBadGateway,
	ErrCodeSubmissionRejected:    http.StatusUnprocessableEntity,
	ErrCodeDatabaseInsertFailed:  http.StatusBadGateway,
	ErrCodeSuggestionUnavailable: http.StatusBadGateway,
	ErrCodeSuggestionInFlight:    http.StatusConflict,
	ErrCodeInvalidRequest:        http.StatusBadRequest,
}

// HTTPStatus returns the HTTP status for a StandardError.
func HTTPStatus(err *StandardError) int {
	if status, ok := HTTPStatusMapping[err.Code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// IsRetryable reports whether an error is worth retrying client-side.
func IsRetryable(err error) bool {
	if stdErr, ok := err.(*StandardError); ok {
		return stdErr.Retryable
	}
	return false
}
