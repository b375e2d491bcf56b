package cli

import (
	"fmt"
	"log/slog"

	"synk/internal/errors"
	"synk/internal/validation"
)

// ErrorHandler provides centralized error handling for command handlers
type ErrorHandler struct {
	logger *slog.Logger
}

// NewErrorHandler creates a new error handler
func NewErrorHandler() *ErrorHandler {
	return &ErrorHandler{logger: slog.Default()}
}

// NewErrorHandlerWithLogger creates an error handler logging through the
// given logger.
func NewErrorHandlerWithLogger(logger *slog.Logger) *ErrorHandler {
	return &ErrorHandler{logger: logger}
}

// Handle provides user-friendly error messages for validation and other errors
func (eh *ErrorHandler) Handle(operation string, err error) error {
	eh.log(operation, err)

	if validationErr, ok := err.(*validation.ValidationError); ok {
		return fmt.Errorf("failed to %s: %s", operation, validationErr.GetUserFriendlyMessage())
	}

	if errors.IsAppError(err) {
		return fmt.Errorf("failed to %s: %s", operation, errors.GetUserMessage(err))
	}

	return fmt.Errorf("failed to %s: %w", operation, err)
}

// HandleSimple provides user-friendly error messages without operation context
func (eh *ErrorHandler) HandleSimple(err error) error {
	if validationErr, ok := err.(*validation.ValidationError); ok {
		return fmt.Errorf("%s", validationErr.GetUserFriendlyMessage())
	}

	if errors.IsAppError(err) {
		return fmt.Errorf("%s", errors.GetUserMessage(err))
	}

	return err
}

// log records system errors with their code and backend. User errors
// (validation, not-found) stay out of the log.
func (eh *ErrorHandler) log(operation string, err error) {
	if validation.IsValidationError(err) || !errors.ShouldLogError(err) {
		return
	}

	attrs := []any{"operation", operation, "code", errors.GetErrorCode(err), "error", err}
	if backend := errors.Backend(err); backend != "" {
		attrs = append(attrs, "backend", backend)
	}
	eh.logger.Error("operation failed", attrs...)
}
