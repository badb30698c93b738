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
	ErrUnknown       ErrorCode = "UNKNOWN"
	ErrInternal      ErrorCode = "INTERNAL"
	ErrInvalidInput  ErrorCode = "INVALID_INPUT"
	ErrNotFound      ErrorCode = "NOT_FOUND"
	ErrAlreadyExists ErrorCode = "ALREADY_EXISTS"
	ErrCancelled     ErrorCode = "CANCELLED"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"
	ErrConfigValid ErrorCode = "CONFIG_INVALID"
	ErrWorkdir     ErrorCode = "WORKDIR"

	// FileSystem errors
	ErrFileAccess    ErrorCode = "FILE_ACCESS"
	ErrFileWrite     ErrorCode = "FILE_WRITE"
	ErrDirCreate     ErrorCode = "DIR_CREATE"
	ErrSymlinkCreate ErrorCode = "SYMLINK_CREATE"

	// Pipeline errors
	ErrStageFailed ErrorCode = "STAGE_FAILED"
)

// RetemplateError represents a structured error with code and details
type RetemplateError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *RetemplateError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *RetemplateError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *RetemplateError) Is(target error) bool {
	var targetErr *RetemplateError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new RetemplateError with the given code and message
func New(code ErrorCode, message string) *RetemplateError {
	return &RetemplateError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new RetemplateError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *RetemplateError {
	return &RetemplateError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a RetemplateError
func Wrap(err error, code ErrorCode, message string) *RetemplateError {
	if err == nil {
		return nil
	}
	return &RetemplateError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *RetemplateError {
	if err == nil {
		return nil
	}
	return &RetemplateError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *RetemplateError) WithDetail(key string, value interface{}) *RetemplateError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var rtErr *RetemplateError
	if errors.As(err, &rtErr) {
		return rtErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a RetemplateError
func GetErrorCode(err error) ErrorCode {
	var rtErr *RetemplateError
	if errors.As(err, &rtErr) {
		return rtErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a RetemplateError
func GetErrorDetails(err error) map[string]interface{} {
	var rtErr *RetemplateError
	if errors.As(err, &rtErr) {
		return rtErr.Details
	}
	return nil
}

// ExitCode maps an error to the process exit status.
// Configuration problems exit with 2 and strict-mode aborts with 3; everything
// else, including an existing target directory, exits with 1.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	switch GetErrorCode(err) {
	case ErrConfigLoad, ErrConfigParse, ErrConfigValid, ErrWorkdir:
		return 2
	case ErrStageFailed:
		return 3
	default:
		return 1
	}
}
