package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// As is a convenience re-export of the standard library errors.As
func As(err error, target any) bool {
	return stderrors.As(err, target)
}

// Is is a convenience re-export of the standard library errors.Is
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// AppError represents an application error with HTTP status code and error code
type AppError struct {
	StatusCode int    `json:"-"`
	Code       string `json:"code"`
	Message    string `json:"message"`
	Details    any    `json:"details,omitempty"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// WithDetails adds details to the error
func (e *AppError) WithDetails(details any) *AppError {
	e.Details = details
	return e
}

// New creates a new application error
func New(statusCode int, code string, message string) *AppError {
	return &AppError{
		StatusCode: statusCode,
		Code:       code,
		Message:    message,
	}
}

// NewBadRequestError creates a 400 Bad Request error
func NewBadRequestError(code string, message string) *AppError {
	return New(http.StatusBadRequest, code, message)
}

// NewUnauthorizedError creates a 401 Unauthorized error
func NewUnauthorizedError(code string, message string) *AppError {
	return New(http.StatusUnauthorized, code, message)
}

// NewNotFoundError creates a 404 Not Found error
func NewNotFoundError(code string, message string) *AppError {
	return New(http.StatusNotFound, code, message)
}

// NewConflictError creates a 409 Conflict error
func NewConflictError(code string, message string) *AppError {
	return New(http.StatusConflict, code, message)
}

// NewInternalServerError creates a 500 Internal Server Error
func NewInternalServerError(code string, message string) *AppError {
	return New(http.StatusInternalServerError, code, message)
}

// Entity-not-found constructors. Missing entities are always surfaced as
// 404, never as a generic 500 (infrastructure failures keep 500).
func NewUserNotFound(id uint) *AppError {
	return NewNotFoundError("USER_NOT_FOUND", fmt.Sprintf("User not found with ID: %d", id))
}

func NewConversationNotFound(id uint) *AppError {
	return NewNotFoundError("CONVERSATION_NOT_FOUND", fmt.Sprintf("Conversation not found with ID: %d", id))
}

// FromError converts a standard error to an AppError.
// If the error is already an AppError, it is returned as-is.
// Otherwise it is wrapped as an internal server error.
func FromError(err error) *AppError {
	if err == nil {
		return nil
	}

	var appErr *AppError
	if As(err, &appErr) {
		return appErr
	}

	return NewInternalServerError("INTERNAL_ERROR", err.Error())
}

// GetStatusCode extracts the HTTP status code from an error, 500 if not an AppError
func GetStatusCode(err error) int {
	var appErr *AppError
	if As(err, &appErr) {
		return appErr.StatusCode
	}
	return http.StatusInternalServerError
}

// IsNotFound reports whether err is a 404 AppError
func IsNotFound(err error) bool {
	var appErr *AppError
	if As(err, &appErr) {
		return appErr.StatusCode == http.StatusNotFound
	}
	return false
}
