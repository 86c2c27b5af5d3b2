package error

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorCode represents a unique error code
type ErrorCode string

// Error codes for different categories
const (
	// Authentication Errors (1xxx)
	ErrCodeInvalidCredentials ErrorCode = "AUTH_1001"
	ErrCodeMissingToken       ErrorCode = "AUTH_1002"
	ErrCodeInvalidToken       ErrorCode = "AUTH_1003"
	ErrCodeInsufficientRole   ErrorCode = "AUTH_1004"
	ErrCodeAccountUnavailable ErrorCode = "AUTH_1005"

	// User Errors (2xxx)
	ErrCodeDuplicateEmail ErrorCode = "USER_2001"
	ErrCodeUserNotFound   ErrorCode = "USER_2002"

	// Validation Errors (3xxx)
	ErrCodeInvalidRequest ErrorCode = "VALID_3001"

	// Resource Errors (4xxx)
	ErrCodeResourceNotFound  ErrorCode = "RESOURCE_4001"
	ErrCodeResourceForbidden ErrorCode = "RESOURCE_4002"

	// Server Errors (5xxx)
	ErrCodeInternalServerError ErrorCode = "SERVER_5001"
	ErrCodeConfigurationError  ErrorCode = "SERVER_5002"
)

var statusByCode = map[ErrorCode]int{
	ErrCodeInvalidCredentials:  http.StatusUnauthorized,
	ErrCodeMissingToken:        http.StatusUnauthorized,
	ErrCodeInvalidToken:        http.StatusForbidden,
	ErrCodeInsufficientRole:    http.StatusForbidden,
	ErrCodeAccountUnavailable:  http.StatusUnauthorized,
	ErrCodeDuplicateEmail:      http.StatusConflict,
	ErrCodeUserNotFound:        http.StatusNotFound,
	ErrCodeInvalidRequest:      http.StatusBadRequest,
	ErrCodeResourceNotFound:    http.StatusNotFound,
	ErrCodeResourceForbidden:   http.StatusForbidden,
	ErrCodeInternalServerError: http.StatusInternalServerError,
	ErrCodeConfigurationError:  http.StatusInternalServerError,
}

// AppError represents a structured application error.
// Details and Cause are for logs only and never reach a client.
type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Details string    `json:"-"`
	Cause   error     `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the cause error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is matches another *AppError by code, so errors.Is works against the constructors below.
func (e *AppError) Is(target error) bool {
	var t *AppError
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

// NewAppError creates a new application error
func NewAppError(code ErrorCode, message string, details string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Details: details,
		Cause:   cause,
	}
}

// Authentication errors
func ErrInvalidCredentials(details string) *AppError {
	return NewAppError(ErrCodeInvalidCredentials, "Invalid email or password", details, nil)
}

func ErrMissingToken() *AppError {
	return NewAppError(ErrCodeMissingToken, "Authentication token required", "", nil)
}

// ErrInvalidToken carries no detail in the message: every token failure looks the same to the client.
func ErrInvalidToken(cause error) *AppError {
	return NewAppError(ErrCodeInvalidToken, "Invalid or expired token", "", cause)
}

func ErrInsufficientRole(role string) *AppError {
	return NewAppError(ErrCodeInsufficientRole, "Insufficient permissions", fmt.Sprintf("Role: %s", role), nil)
}

// ErrAccountUnavailable is returned when a valid token names a user that no longer exists
func ErrAccountUnavailable(userID string) *AppError {
	return NewAppError(ErrCodeAccountUnavailable, "Account no longer available", fmt.Sprintf("User ID: %s", userID), nil)
}

// User errors
func ErrDuplicateEmail(email string) *AppError {
	return NewAppError(ErrCodeDuplicateEmail, "Email already registered", fmt.Sprintf("Email: %s", email), nil)
}

func ErrUserNotFound(userID string) *AppError {
	return NewAppError(ErrCodeUserNotFound, "User not found", fmt.Sprintf("User ID: %s", userID), nil)
}

// Validation errors
func ErrInvalidRequest(message string) *AppError {
	return NewAppError(ErrCodeInvalidRequest, message, "", nil)
}

func ErrMissingField(field string) *AppError {
	return NewAppError(ErrCodeInvalidRequest, fmt.Sprintf("%s is required", field), "", nil)
}

// Resource errors
func ErrNotFound(resource, id string) *AppError {
	return NewAppError(ErrCodeResourceNotFound, fmt.Sprintf("%s not found", resource), fmt.Sprintf("ID: %s", id), nil)
}

func ErrForbidden(resource, id string) *AppError {
	return NewAppError(ErrCodeResourceForbidden, fmt.Sprintf("Access to %s denied", resource), fmt.Sprintf("ID: %s", id), nil)
}

// Server errors
func ErrInternalServerError(details string, cause error) *AppError {
	return NewAppError(ErrCodeInternalServerError, "Internal server error", details, cause)
}

func ErrConfigurationError(config string, cause error) *AppError {
	return NewAppError(ErrCodeConfigurationError, "Configuration error", fmt.Sprintf("Config: %s", config), cause)
}

// HTTPStatus maps an error to its HTTP status code. Anything that is not an
// *AppError is treated as an internal error.
func HTTPStatus(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		if status, ok := statusByCode[appErr.Code]; ok {
			return status
		}
	}
	return http.StatusInternalServerError
}

// AsAppError returns err as an *AppError, wrapping unknown errors as internal.
func AsAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return ErrInternalServerError("unexpected error", err)
}
