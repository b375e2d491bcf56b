package errors

import (
	"errors"
	"fmt"
)

// NewConfigError creates a new configuration error
func NewConfigError(message string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeConfig,
		Message: message,
		Code:    "CONFIG_INVALID",
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// NewMissingConfigError creates a configuration error naming every missing variable
func NewMissingConfigError(variables []string) *AppError {
	return &AppError{
		Type:    ErrorTypeConfig,
		Message: fmt.Sprintf("missing required environment variables: %v", variables),
		Code:    "CONFIG_MISSING",
		Context: map[string]interface{}{
			"variables": variables,
		},
	}
}

// NewRemoteError creates a new remote-call error carrying the backend name
// and, when available, the HTTP status of the failed call.
func NewRemoteError(backend string, operation string, status int, cause error) *AppError {
	message := fmt.Sprintf("%s call failed: %s", backend, operation)
	if status > 0 {
		message = fmt.Sprintf("%s call failed: %s (HTTP %d)", backend, operation, status)
	}
	return &AppError{
		Type:    ErrorTypeRemote,
		Message: message,
		Code:    "REMOTE_CALL_FAILED",
		Cause:   cause,
		Context: map[string]interface{}{
			"backend":   backend,
			"operation": operation,
			"status":    status,
		},
	}
}

// NewValidationError creates a new validation error
func NewValidationError(message string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeValidation,
		Message: message,
		Code:    "VALIDATION_FAILED",
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(resource string, identifier string) *AppError {
	return &AppError{
		Type:    ErrorTypeNotFound,
		Message: fmt.Sprintf("%s not found: %s", resource, identifier),
		Code:    "NOT_FOUND",
		Context: map[string]interface{}{
			"resource":   resource,
			"identifier": identifier,
		},
	}
}

// NewStateError creates a new state-store error
func NewStateError(operation string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeState,
		Message: fmt.Sprintf("state store operation failed: %s", operation),
		Code:    "STATE_ERROR",
		Cause:   cause,
		Context: map[string]interface{}{
			"operation": operation,
		},
	}
}

// WrapError wraps an existing error with additional context
func WrapError(err error, errorType ErrorType, message string) *AppError {
	return &AppError{
		Type:    errorType,
		Message: message,
		Code:    errorType.String(),
		Cause:   err,
		Context: make(map[string]interface{}),
	}
}

// IsAppError checks if the error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// AsAppError converts an error to an AppError if possible
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsErrorType checks if the error is of the specified type
func IsErrorType(err error, errorType ErrorType) bool {
	if appErr, ok := AsAppError(err); ok {
		return appErr.IsType(errorType)
	}
	return false
}

// Backend returns the backend name carried by a remote-call error, if any.
func Backend(err error) string {
	if appErr, ok := AsAppError(err); ok {
		if backend, exists := appErr.GetContext("backend"); exists {
			if name, ok := backend.(string); ok {
				return name
			}
		}
	}
	return ""
}

// GetUserMessage returns a user-friendly error message
func GetUserMessage(err error) string {
	if appErr, ok := AsAppError(err); ok {
		switch appErr.Type {
		case ErrorTypeValidation:
			return appErr.Message
		case ErrorTypeNotFound:
			return appErr.Message
		case ErrorTypeConfig:
			return appErr.Message
		case ErrorTypeRemote:
			return appErr.Message
		case ErrorTypeState:
			return "Could not access the local state file. Please try again."
		default:
			return "An unexpected error occurred. Please try again."
		}
	}
	return err.Error()
}

// GetErrorCode returns the error code for the error
func GetErrorCode(err error) string {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Code
	}
	return "UNKNOWN_ERROR"
}

// ShouldLogError determines if an error should be logged based on its type
func ShouldLogError(err error) bool {
	if appErr, ok := AsAppError(err); ok {
		switch appErr.Type {
		case ErrorTypeValidation, ErrorTypeNotFound:
			return false // These are user errors, not system errors
		case ErrorTypeConfig, ErrorTypeRemote, ErrorTypeState:
			return true
		default:
			return true
		}
	}
	return true // Unknown errors should be logged
}
