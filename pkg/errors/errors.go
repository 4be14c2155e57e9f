// Package errors provides coded, structured errors for limo.
//
// Every error carries an ErrorCode so tests and callers can branch on the
// failure category without matching message text.
package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

const (
	// General errors
	ErrUnknown       ErrorCode = "UNKNOWN"
	ErrInternal      ErrorCode = "INTERNAL"
	ErrInvalidInput  ErrorCode = "INVALID_INPUT"
	ErrNotFound      ErrorCode = "NOT_FOUND"
	ErrAlreadyExists ErrorCode = "ALREADY_EXISTS"

	// Configuration errors
	ErrConfigLoad    ErrorCode = "CONFIG_LOAD"
	ErrConfigParse   ErrorCode = "CONFIG_PARSE"
	ErrConfigInvalid ErrorCode = "CONFIG_INVALID"

	// External application files
	ErrConfigMissing ErrorCode = "CONFIG_MISSING"
	ErrFileRead      ErrorCode = "FILE_READ"
	ErrFileWrite     ErrorCode = "FILE_WRITE"

	// Load order state
	ErrStateCorrupt ErrorCode = "STATE_CORRUPT"
	ErrStaleHandle  ErrorCode = "STALE_HANDLE"

	// Profiles
	ErrProfileNotFound ErrorCode = "PROFILE_NOT_FOUND"
	ErrProfileActive   ErrorCode = "PROFILE_ACTIVE"

	// Dialects
	ErrDialectNotFound ErrorCode = "DIALECT_NOT_FOUND"
	ErrDialectInvalid  ErrorCode = "DIALECT_INVALID"
)

// LimoError represents a structured error with code and details
type LimoError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

func (e *LimoError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *LimoError) Unwrap() error {
	return e.Wrapped
}

// Is reports whether target is a LimoError with the same code.
func (e *LimoError) Is(target error) bool {
	var targetErr *LimoError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new LimoError with the given code and message
func New(code ErrorCode, message string) *LimoError {
	return &LimoError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new LimoError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *LimoError {
	return New(code, fmt.Sprintf(format, args...))
}

// Wrap wraps err with a code and message. A nil err yields nil.
func Wrap(err error, code ErrorCode, message string) *LimoError {
	if err == nil {
		return nil
	}
	e := New(code, message)
	e.Wrapped = err
	return e
}

// Wrapf is Wrap with a formatted message.
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *LimoError {
	if err == nil {
		return nil
	}
	return Wrap(err, code, fmt.Sprintf(format, args...))
}

// WithDetail adds a detail to the error
func (e *LimoError) WithDetail(key string, value interface{}) *LimoError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var limoErr *LimoError
	if errors.As(err, &limoErr) {
		return limoErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a LimoError
func GetErrorCode(err error) ErrorCode {
	var limoErr *LimoError
	if errors.As(err, &limoErr) {
		return limoErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a LimoError
func GetErrorDetails(err error) map[string]interface{} {
	var limoErr *LimoError
	if errors.As(err, &limoErr) {
		return limoErr.Details
	}
	return nil
}
