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
	ErrUnsupported   ErrorCode = "UNSUPPORTED"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"
	ErrConfigValid ErrorCode = "CONFIG_INVALID"

	// FileSystem errors
	ErrFileNotFound ErrorCode = "FILE_NOT_FOUND"
	ErrFileAccess   ErrorCode = "FILE_ACCESS"
	ErrFileCreate   ErrorCode = "FILE_CREATE"
	ErrDirCreate    ErrorCode = "DIR_CREATE"

	// Archive errors
	ErrArchiveOpen      ErrorCode = "ARCHIVE_OPEN"
	ErrArchiveInvalid   ErrorCode = "ARCHIVE_INVALID"
	ErrNoArchiveSupport ErrorCode = "NO_ARCHIVE_SUPPORT"
	ErrImageInvalid     ErrorCode = "IMAGE_INVALID"

	// Module errors
	ErrDescriptorInvalid ErrorCode = "DESCRIPTOR_INVALID"
	ErrModuleNameInvalid ErrorCode = "MODULE_NAME_INVALID"
	ErrPatternInvalid    ErrorCode = "PATTERN_INVALID"
)

// PathfinderError represents a structured error with code and details
type PathfinderError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *PathfinderError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *PathfinderError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *PathfinderError) Is(target error) bool {
	var targetErr *PathfinderError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new PathfinderError with the given code and message
func New(code ErrorCode, message string) *PathfinderError {
	return &PathfinderError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new PathfinderError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *PathfinderError {
	return &PathfinderError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a PathfinderError
func Wrap(err error, code ErrorCode, message string) *PathfinderError {
	if err == nil {
		return nil
	}
	return &PathfinderError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *PathfinderError {
	if err == nil {
		return nil
	}
	return &PathfinderError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *PathfinderError) WithDetail(key string, value interface{}) *PathfinderError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// WithPath records the offending path. Every I/O failure surfaced by the
// resolution engine carries one.
func (e *PathfinderError) WithPath(path string) *PathfinderError {
	return e.WithDetail("path", path)
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var pfErr *PathfinderError
	if errors.As(err, &pfErr) {
		return pfErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a PathfinderError
func GetErrorCode(err error) ErrorCode {
	var pfErr *PathfinderError
	if errors.As(err, &pfErr) {
		return pfErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a PathfinderError
func GetErrorDetails(err error) map[string]interface{} {
	var pfErr *PathfinderError
	if errors.As(err, &pfErr) {
		return pfErr.Details
	}
	return nil
}

// PathOf returns the path detail recorded on err, if any.
func PathOf(err error) string {
	if p, ok := GetErrorDetails(err)["path"].(string); ok {
		return p
	}
	return ""
}
