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

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"
	ErrConfigValid ErrorCode = "CONFIG_INVALID"

	// Project manifest errors
	ErrProjectLoad    ErrorCode = "PROJECT_LOAD"
	ErrProjectInvalid ErrorCode = "PROJECT_INVALID"

	// Template errors
	ErrTemplateRead  ErrorCode = "TEMPLATE_READ"
	ErrTemplateParse ErrorCode = "TEMPLATE_PARSE"
	ErrTemplateWrite ErrorCode = "TEMPLATE_WRITE"
)

// NexpatchError represents a structured error with code and details
type NexpatchError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *NexpatchError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *NexpatchError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *NexpatchError) Is(target error) bool {
	var targetErr *NexpatchError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new NexpatchError with the given code and message
func New(code ErrorCode, message string) *NexpatchError {
	return &NexpatchError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new NexpatchError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *NexpatchError {
	return &NexpatchError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a NexpatchError
func Wrap(err error, code ErrorCode, message string) *NexpatchError {
	if err == nil {
		return nil
	}
	return &NexpatchError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *NexpatchError {
	if err == nil {
		return nil
	}
	return &NexpatchError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *NexpatchError) WithDetail(key string, value interface{}) *NexpatchError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var nexErr *NexpatchError
	if errors.As(err, &nexErr) {
		return nexErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a NexpatchError
func GetErrorCode(err error) ErrorCode {
	var nexErr *NexpatchError
	if errors.As(err, &nexErr) {
		return nexErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a NexpatchError
func GetErrorDetails(err error) map[string]interface{} {
	var nexErr *NexpatchError
	if errors.As(err, &nexErr) {
		return nexErr.Details
	}
	return nil
}
