package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// ErrorType defines the category of the error
type ErrorType string

const (
	ErrorTypeValidation        ErrorType = "VALIDATION_ERROR"
	ErrorTypeConfiguration     ErrorType = "CONFIGURATION_ERROR"
	ErrorTypeTransport         ErrorType = "TRANSPORT_ERROR"
	ErrorTypeEmptyResponse     ErrorType = "EMPTY_RESPONSE_ERROR"
	ErrorTypeMalformedResponse ErrorType = "MALFORMED_RESPONSE_ERROR"
	ErrorTypeChatUnavailable   ErrorType = "CHAT_UNAVAILABLE_ERROR"
	ErrorTypeRemoteStore       ErrorType = "REMOTE_STORE_ERROR"
	ErrorTypeSuperseded        ErrorType = "SUPERSEDED_ERROR"
	ErrorTypeNotFound          ErrorType = "NOT_FOUND_ERROR"
	ErrorTypeInternal          ErrorType = "INTERNAL_ERROR"
)

// AppError represents a structured error for the application
type AppError struct {
	Type          ErrorType `json:"type"`
	Message       string    `json:"message"`
	StatusCode    int       `json:"statusCode"`
	ErrorCode     string    `json:"errorCode"`
	IsOperational bool      `json:"isOperational"`
	Recovery      string    `json:"recoverySuggestion,omitempty"`
	Err           error     `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap exposes the underlying cause to errors.Is and errors.As.
func (e *AppError) Unwrap() error {
	return e.Err
}

// Code returns the application-specific error code
func (e *AppError) Code() string {
	return e.ErrorCode
}

// RecoverySuggestion returns the suggestion on how to recover from the error
func (e *AppError) RecoverySuggestion() string {
	return e.Recovery
}

// Detail returns the underlying message, or the error's own message when
// nothing is wrapped. It is what callers attach for display.
func (e *AppError) Detail() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

// TypeOf returns the ErrorType of the first AppError in err's chain, or
// ErrorTypeInternal when there is none.
func TypeOf(err error) ErrorType {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Type
	}
	return ErrorTypeInternal
}

// Is reports whether err carries an AppError of the given type.
func Is(err error, t ErrorType) bool {
	var appErr *AppError
	return stderrors.As(err, &appErr) && appErr.Type == t
}

// As returns the first AppError in err's chain, wrapping anything else as
// an internal error.
func As(err error) *AppError {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr
	}
	return NewInternalError("internal error", "INTERNAL", err)
}

// NewValidationError creates a new validation error (400)
func NewValidationError(message string, errorCode string, suggestion string) *AppError {
	return &AppError{
		Type:          ErrorTypeValidation,
		Message:       message,
		StatusCode:    http.StatusBadRequest,
		ErrorCode:     errorCode,
		IsOperational: true,
		Recovery:      suggestion,
	}
}

// NewNotFoundError creates a new not found error (404)
func NewNotFoundError(message string, errorCode string, suggestion string) *AppError {
	return &AppError{
		Type:          ErrorTypeNotFound,
		Message:       message,
		StatusCode:    http.StatusNotFound,
		ErrorCode:     errorCode,
		IsOperational: true,
		Recovery:      suggestion,
	}
}

// NewConfigurationError creates an error for a missing credential or
// setting (503). Raised before any network activity.
func NewConfigurationError(message string, errorCode string) *AppError {
	return &AppError{
		Type:          ErrorTypeConfiguration,
		Message:       message,
		StatusCode:    http.StatusServiceUnavailable,
		ErrorCode:     errorCode,
		IsOperational: true,
		Recovery:      "Set the missing credential in the environment and restart the service.",
	}
}

// NewTransportError creates an error for a failed call to a provider (502)
func NewTransportError(message string, errorCode string, err error) *AppError {
	return &AppError{
		Type:          ErrorTypeTransport,
		Message:       message,
		StatusCode:    http.StatusBadGateway,
		ErrorCode:     errorCode,
		IsOperational: true,
		Recovery:      "Check connectivity to the provider and try again.",
		Err:           err,
	}
}

// NewEmptyResponseError creates an error for a provider reply with no content (502)
func NewEmptyResponseError(message string, errorCode string) *AppError {
	return &AppError{
		Type:          ErrorTypeEmptyResponse,
		Message:       message,
		StatusCode:    http.StatusBadGateway,
		ErrorCode:     errorCode,
		IsOperational: true,
		Recovery:      "Try again with different input.",
	}
}

// NewMalformedResponseError creates an error for a provider reply that
// could not be interpreted (502)
func NewMalformedResponseError(message string, errorCode string, err error) *AppError {
	return &AppError{
		Type:          ErrorTypeMalformedResponse,
		Message:       message,
		StatusCode:    http.StatusBadGateway,
		ErrorCode:     errorCode,
		IsOperational: true,
		Recovery:      "Try again with different input.",
		Err:           err,
	}
}

// NewChatUnavailableError creates the single terminal chat failure (502)
func NewChatUnavailableError(err error) *AppError {
	return &AppError{
		Type:          ErrorTypeChatUnavailable,
		Message:       "chat unavailable",
		StatusCode:    http.StatusBadGateway,
		ErrorCode:     "CHAT_UNAVAILABLE",
		IsOperational: true,
		Err:           err,
	}
}

// NewRemoteStoreError creates an error for a per-user history store failure.
// These are logged and never returned to clients.
func NewRemoteStoreError(message string, errorCode string, err error) *AppError {
	return &AppError{
		Type:          ErrorTypeRemoteStore,
		Message:       message,
		StatusCode:    http.StatusInternalServerError,
		ErrorCode:     errorCode,
		IsOperational: true,
		Err:           err,
	}
}

// NewSupersededError reports a result discarded because a newer request
// from the same device started after it (409)
func NewSupersededError() *AppError {
	return &AppError{
		Type:          ErrorTypeSuperseded,
		Message:       "superseded by a newer request",
		StatusCode:    http.StatusConflict,
		ErrorCode:     "SUPERSEDED",
		IsOperational: true,
	}
}

// NewInternalError creates a new internal error (500)
func NewInternalError(message string, errorCode string, err error) *AppError {
	return &AppError{
		Type:       ErrorTypeInternal,
		Message:    message,
		StatusCode: http.StatusInternalServerError,
		ErrorCode:  errorCode,
		Err:        err,
	}
}
