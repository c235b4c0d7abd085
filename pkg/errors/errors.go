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
	ErrConfigSave  ErrorCode = "CONFIG_SAVE"

	// Environment adapter errors
	ErrUnreachable     ErrorCode = "UNREACHABLE"
	ErrTransferFailure ErrorCode = "TRANSFER_FAILURE"
	ErrUnknownEnvType  ErrorCode = "UNKNOWN_ENV_TYPE"

	// Staging errors
	ErrStagingCreate ErrorCode = "STAGING_CREATE"
	ErrStagingCopy   ErrorCode = "STAGING_COPY"
	ErrSymlinkCreate ErrorCode = "SYMLINK_CREATE"

	// Content errors
	ErrDecodeFailure ErrorCode = "DECODE_FAILURE"

	// Git errors
	ErrGitCommand ErrorCode = "GIT_COMMAND"
	ErrGitPush    ErrorCode = "GIT_PUSH"
	ErrGitPull    ErrorCode = "GIT_PULL"
)

// KsyncError represents a structured error with code and details
type KsyncError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *KsyncError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *KsyncError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *KsyncError) Is(target error) bool {
	var targetErr *KsyncError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new KsyncError with the given code and message
func New(code ErrorCode, message string) *KsyncError {
	return &KsyncError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new KsyncError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *KsyncError {
	return &KsyncError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a KsyncError
func Wrap(err error, code ErrorCode, message string) *KsyncError {
	if err == nil {
		return nil
	}
	return &KsyncError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *KsyncError {
	if err == nil {
		return nil
	}
	return &KsyncError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *KsyncError) WithDetail(key string, value interface{}) *KsyncError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var ksyncErr *KsyncError
	if errors.As(err, &ksyncErr) {
		return ksyncErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a KsyncError
func GetErrorCode(err error) ErrorCode {
	var ksyncErr *KsyncError
	if errors.As(err, &ksyncErr) {
		return ksyncErr.Code
	}
	return ErrUnknown
}
