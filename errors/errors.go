package errors

import (
	stdErrors "errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// AppError is the error type surfaced to callers of the analysis core
type AppError struct {
	Raw       error
	HTTPCode  int
	Code      ErrorCode
	Message   string
	Reasons   []string
	Details   map[string]string
	Timestamp time.Time
}

// Error implements error interface
func (e AppError) Error() string {
	msg := e.Message
	if len(e.Reasons) > 0 {
		msg = fmt.Sprintf("%s (%s)", msg, strings.Join(e.Reasons, "; "))
	}
	if e.Raw != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code.String(), msg, e.Raw)
	}
	return fmt.Sprintf("[%s] %s", e.Code.String(), msg)
}

// Unwrap exposes the underlying error
func (e AppError) Unwrap() error {
	return e.Raw
}

// Is matches another AppError by code
func (e AppError) Is(target error) bool {
	t, ok := target.(AppError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// WithDetail adds a detail to the error
func (e AppError) WithDetail(key, value string) AppError {
	details := make(map[string]string, len(e.Details)+1)
	for k, v := range e.Details {
		details[k] = v
	}
	details[key] = value
	e.Details = details
	return e
}

// AsAppError extracts an AppError from an error chain
func AsAppError(err error) (AppError, bool) {
	var appErr AppError
	if stdErrors.As(err, &appErr) {
		return appErr, true
	}
	return AppError{}, false
}

// IsCode reports whether err carries an AppError with the given code
func IsCode(err error, code ErrorCode) bool {
	appErr, ok := AsAppError(err)
	return ok && appErr.Code == code
}

// General Errors
func ErrInternal(err error) AppError {
	return AppError{
		Raw:       err,
		HTTPCode:  http.StatusInternalServerError,
		Code:      ErrorCode_INTERNAL,
		Message:   "Internal error",
		Timestamp: time.Now(),
	}
}

func ErrInvalidArgument(message string) AppError {
	return AppError{
		HTTPCode:  http.StatusBadRequest,
		Code:      ErrorCode_INVALID_ARGUMENT,
		Message:   message,
		Timestamp: time.Now(),
	}
}

// Transcript Errors

// ErrValidationFailed carries the validator's rejection reasons verbatim
func ErrValidationFailed(reasons []string) AppError {
	return AppError{
		HTTPCode:  http.StatusUnprocessableEntity,
		Code:      ErrorCode_TRANSCRIPT_VALIDATION_FAILED,
		Message:   "Transcript validation failed",
		Reasons:   append([]string(nil), reasons...),
		Timestamp: time.Now(),
	}
}

func ErrParseFailed() AppError {
	return AppError{
		HTTPCode:  http.StatusUnprocessableEntity,
		Code:      ErrorCode_TRANSCRIPT_PARSE_FAILED,
		Message:   "Failed to parse transcript. Please check the format.",
		Timestamp: time.Now(),
	}
}

// Analysis Errors
func ErrAnalysisFailed(err error) AppError {
	return AppError{
		Raw:       err,
		HTTPCode:  http.StatusInternalServerError,
		Code:      ErrorCode_ANALYSIS_FAILED,
		Message:   "Meeting analysis failed",
		Timestamp: time.Now(),
	}
}

// Meeting Errors
func ErrMeetingNotFound(meetingID string) AppError {
	return AppError{
		HTTPCode:  http.StatusNotFound,
		Code:      ErrorCode_MEETING_NOT_FOUND,
		Message:   "Meeting not found",
		Timestamp: time.Now(),
	}.WithDetail("meeting_id", meetingID)
}

func ErrMeetingNotAnalyzed(meetingID string) AppError {
	return AppError{
		HTTPCode:  http.StatusConflict,
		Code:      ErrorCode_MEETING_NOT_ANALYZED,
		Message:   "Meeting has no analysis aggregates",
		Timestamp: time.Now(),
	}.WithDetail("meeting_id", meetingID)
}

func ErrSpeakerNotFound(name string) AppError {
	return AppError{
		HTTPCode:  http.StatusNotFound,
		Code:      ErrorCode_SPEAKER_NOT_FOUND,
		Message:   "Speaker not found",
		Timestamp: time.Now(),
	}.WithDetail("speaker", name)
}

// Integration Errors
func ErrCacheFailed(operation string, err error) AppError {
	return AppError{
		Raw:       err,
		HTTPCode:  http.StatusInternalServerError,
		Code:      ErrorCode_INTEGRATION_CACHE_FAILED,
		Message:   fmt.Sprintf("Cache operation failed: %s", operation),
		Timestamp: time.Now(),
	}
}

// Database Errors
func ErrDBConnectionFailed(err error) AppError {
	return AppError{
		Raw:       err,
		HTTPCode:  http.StatusInternalServerError,
		Code:      ErrorCode_DB_CONNECTION_FAILED,
		Message:   "Database connection failed",
		Timestamp: time.Now(),
	}
}

func ErrDBQueryFailed(query string, err error) AppError {
	return AppError{
		Raw:       err,
		HTTPCode:  http.StatusInternalServerError,
		Code:      ErrorCode_DB_QUERY_FAILED,
		Message:   "Database query failed",
		Timestamp: time.Now(),
	}.WithDetail("query", query)
}

func ErrDBTransactionFailed(err error) AppError {
	return AppError{
		Raw:       err,
		HTTPCode:  http.StatusInternalServerError,
		Code:      ErrorCode_DB_TRANSACTION_FAILED,
		Message:   "Database transaction failed",
		Timestamp: time.Now(),
	}
}

func ErrDBMigrationFailed(err error) AppError {
	return AppError{
		Raw:       err,
		HTTPCode:  http.StatusInternalServerError,
		Code:      ErrorCode_DB_MIGRATION_FAILED,
		Message:   "Database migration failed",
		Timestamp: time.Now(),
	}
}
