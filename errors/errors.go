package errors

import (
	"fmt"
	"net/http"
)

// AppError is the custom error type for the application
type AppError struct {
	Raw      error
	HTTPCode int
	Code     ErrorCode
	Message  string
	Details  map[string]string
}

// Error implements error interface
func (e AppError) Error() string {
	if e.Raw != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code.String(), e.Message, e.Raw)
	}
	return fmt.Sprintf("[%s] %s", e.Code.String(), e.Message)
}

// Unwrap exposes the wrapped cause to errors.Is/As
func (e AppError) Unwrap() error {
	return e.Raw
}

// WithDetail adds a detail to the error
func (e AppError) WithDetail(key, value string) AppError {
	if e.Details == nil {
		e.Details = make(map[string]string)
	}
	e.Details[key] = value
	return e
}

// General errors

func ErrInternal(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_INTERNAL,
		Message:  "Internal server error",
	}
}

func ErrInvalidArgument(message string) AppError {
	return AppError{
		HTTPCode: http.StatusBadRequest,
		Code:     ErrorCode_INVALID_ARGUMENT,
		Message:  message,
	}
}

func ErrInvalidPayload() AppError {
	return AppError{
		HTTPCode: http.StatusBadRequest,
		Code:     ErrorCode_INVALID_PAYLOAD,
		Message:  "Invalid request payload",
	}
}

func ErrNotFound(resource string) AppError {
	return AppError{
		HTTPCode: http.StatusNotFound,
		Code:     ErrorCode_NOT_FOUND,
		Message:  fmt.Sprintf("%s not found", resource),
	}
}

func ErrPermissionDenied(action string) AppError {
	return AppError{
		HTTPCode: http.StatusForbidden,
		Code:     ErrorCode_PERMISSION_DENIED,
		Message:  fmt.Sprintf("Permission denied: %s", action),
	}
}

func ErrUnauthenticated() AppError {
	return AppError{
		HTTPCode: http.StatusUnauthorized,
		Code:     ErrorCode_UNAUTHENTICATED,
		Message:  "Authentication required",
	}
}

// Authentication errors

func ErrInvalidToken() AppError {
	return AppError{
		HTTPCode: http.StatusUnauthorized,
		Code:     ErrorCode_AUTH_INVALID_TOKEN,
		Message:  "Invalid authentication token",
	}
}

func ErrTokenExpired() AppError {
	return AppError{
		HTTPCode: http.StatusUnauthorized,
		Code:     ErrorCode_AUTH_TOKEN_EXPIRED,
		Message:  "Authentication token has expired",
	}
}

// Meeting errors

func ErrMeetingNotFound(meetingID string) AppError {
	return AppError{
		HTTPCode: http.StatusNotFound,
		Code:     ErrorCode_MEETING_NOT_FOUND,
		Message:  "Meeting not found",
	}.WithDetail("meeting_id", meetingID)
}

func ErrMeetingEmptySource() AppError {
	return AppError{
		HTTPCode: http.StatusBadRequest,
		Code:     ErrorCode_MEETING_EMPTY_SOURCE,
		Message:  "Meeting requires a transcript or a recording URL",
	}
}

func ErrMeetingUploadFailed(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_MEETING_UPLOAD_FAILED,
		Message:  "Failed to upload meeting audio",
	}
}

func ErrInvalidAudio(reason string) AppError {
	return AppError{
		HTTPCode: http.StatusBadRequest,
		Code:     ErrorCode_MEETING_INVALID_AUDIO,
		Message:  "Invalid audio upload",
	}.WithDetail("reason", reason)
}

func ErrExtractionQueueFull() AppError {
	return AppError{
		HTTPCode: http.StatusServiceUnavailable,
		Code:     ErrorCode_MEETING_QUEUE_FULL,
		Message:  "Extraction queue is full, try again later",
	}
}

// Goal & category errors

func ErrGoalNotFound(goalID string) AppError {
	return AppError{
		HTTPCode: http.StatusNotFound,
		Code:     ErrorCode_GOAL_NOT_FOUND,
		Message:  "Goal not found",
	}.WithDetail("goal_id", goalID)
}

func ErrGoalInvalidParent() AppError {
	return AppError{
		HTTPCode: http.StatusBadRequest,
		Code:     ErrorCode_GOAL_INVALID_PARENT,
		Message:  "Only quarterly goals may have a yearly parent",
	}
}

func ErrCategoryNotFound(categoryID string) AppError {
	return AppError{
		HTTPCode: http.StatusNotFound,
		Code:     ErrorCode_CATEGORY_NOT_FOUND,
		Message:  "Category not found",
	}.WithDetail("category_id", categoryID)
}

// Contact errors

func ErrContactNotFound(contactID string) AppError {
	return AppError{
		HTTPCode: http.StatusNotFound,
		Code:     ErrorCode_CONTACT_NOT_FOUND,
		Message:  "Contact not found",
	}.WithDetail("contact_id", contactID)
}

// Task errors

func ErrTaskNotFound(taskID string) AppError {
	return AppError{
		HTTPCode: http.StatusNotFound,
		Code:     ErrorCode_TASK_NOT_FOUND,
		Message:  "Task not found",
	}.WithDetail("task_id", taskID)
}

// Extraction errors

func ErrExtractionFailed(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_EXTRACTION_FAILED,
		Message:  "Extraction failed",
	}
}

// Infrastructure errors

func ErrDBQuery(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_DB_QUERY_FAILED,
		Message:  "Database query failed",
	}
}

func ErrDBTransaction(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_DB_TRANSACTION_FAILED,
		Message:  "Database transaction failed",
	}
}

func ErrStorage(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_STORAGE_FAILED,
		Message:  "Object storage operation failed",
	}
}
