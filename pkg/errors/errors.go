package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"
	ErrNotFound     ErrorCode = "NOT_FOUND"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"

	// Path errors
	ErrInvalidPath ErrorCode = "INVALID_PATH"

	// Template errors
	ErrTemplateParse  ErrorCode = "TEMPLATE_PARSE"
	ErrTemplateRender ErrorCode = "TEMPLATE_RENDER"

	// Expansion errors
	ErrDestExists ErrorCode = "DEST_EXISTS"

	// FileSystem errors
	ErrFileAccess ErrorCode = "FILE_ACCESS"
	ErrFileWrite  ErrorCode = "FILE_WRITE"
	ErrDirCreate  ErrorCode = "DIR_CREATE"
)

// AnvilError represents a structured error with code and details
type AnvilError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *AnvilError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *AnvilError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *AnvilError) Is(target error) bool {
	var targetErr *AnvilError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new AnvilError with the given code and message
func New(code ErrorCode, message string) *AnvilError {
	return &AnvilError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new AnvilError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *AnvilError {
	return &AnvilError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with an AnvilError
func Wrap(err error, code ErrorCode, message string) *AnvilError {
	if err == nil {
		return nil
	}
	return &AnvilError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *AnvilError {
	if err == nil {
		return nil
	}
	return &AnvilError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *AnvilError) WithDetail(key string, value interface{}) *AnvilError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var anvilErr *AnvilError
	if errors.As(err, &anvilErr) {
		return anvilErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not an AnvilError
func GetErrorCode(err error) ErrorCode {
	var anvilErr *AnvilError
	if errors.As(err, &anvilErr) {
		return anvilErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not an AnvilError
func GetErrorDetails(err error) map[string]interface{} {
	var anvilErr *AnvilError
	if errors.As(err, &anvilErr) {
		return anvilErr.Details
	}
	return nil
}
