package internal

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

type ErrorType string

const (
	ErrorTypeValidation ErrorType = "VALIDATION_ERROR"
	ErrorTypeNotFound   ErrorType = "NOT_FOUND"
	ErrorTypeRemote     ErrorType = "REMOTE_FAILURE"
	ErrorTypeInternal   ErrorType = "INTERNAL_ERROR"
)

type ErrorCode string

const (
	ErrCodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	ErrCodeEmptyName        ErrorCode = "EMPTY_NAME"
	ErrCodeEmptyCategory    ErrorCode = "EMPTY_CATEGORY"
	ErrCodeInvalidAmount    ErrorCode = "INVALID_AMOUNT"
	ErrCodeInvalidMonth     ErrorCode = "INVALID_MONTH"

	ErrCodeRecordNotFound ErrorCode = "RECORD_NOT_FOUND"
	ErrCodeNoSession      ErrorCode = "NO_SESSION"

	ErrCodeRemoteLoad   ErrorCode = "REMOTE_LOAD_FAILED"
	ErrCodeRemoteCreate ErrorCode = "REMOTE_CREATE_FAILED"
	ErrCodeRemoteUpdate ErrorCode = "REMOTE_UPDATE_FAILED"
	ErrCodeRemoteDelete ErrorCode = "REMOTE_DELETE_FAILED"
)

type AppError struct {
	Type       ErrorType   `json:"type"`
	Code       ErrorCode   `json:"code"`
	Message    string      `json:"message"`
	Details    interface{} `json:"details,omitempty"`
	StatusCode int         `json:"-"`
	Cause      error       `json:"-"`
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func (e *AppError) WithCause(cause error) *AppError {
	clone := *e
	clone.Cause = cause
	return &clone
}

func NewValidationError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeValidation,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusBadRequest,
	}
}

func NewNotFoundError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeNotFound,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusNotFound,
	}
}

// NewRemoteError wraps a failed remote ledger call. The message is what the
// UI shell shows; the cause keeps the transport detail for logs.
func NewRemoteError(message string, code ErrorCode, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeRemote,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusBadGateway,
		Cause:      cause,
	}
}

func NewInternalError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeInternal,
		Code:       "INTERNAL_ERROR",
		Message:    message,
		StatusCode: http.StatusInternalServerError,
		Cause:      cause,
	}
}

var (
	ErrEmptyName     = NewValidationError("expense name must not be empty", ErrCodeEmptyName)
	ErrEmptyCategory = NewValidationError("a category must be selected", ErrCodeEmptyCategory)
	ErrInvalidAmount = NewValidationError("amount must be a number greater than 0", ErrCodeInvalidAmount)
	ErrInvalidMonth  = NewValidationError("month must be between 1 and 12", ErrCodeInvalidMonth)

	ErrRecordNotFound = NewNotFoundError("expense not found", ErrCodeRecordNotFound)
	ErrNoSession      = NewNotFoundError("no active session for user", ErrCodeNoSession)
)

func IsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

type Response struct {
	Error *AppError `json:"error"`
}

func (e *AppError) ToHTTPResponse() (int, interface{}) {
	return e.StatusCode, Response{Error: e}
}

func (e *AppError) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type    ErrorType   `json:"type"`
		Code    ErrorCode   `json:"code"`
		Message string      `json:"message"`
		Details interface{} `json:"details,omitempty"`
	}{
		Type:    e.Type,
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
	})
}
