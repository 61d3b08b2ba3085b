package errors

import (
	"encoding/json"
	"fmt"
)

// ErrorCode represents a specific error condition
type ErrorCode string

const (
	// Watchlist operation errors
	ErrCodeMissingID     ErrorCode = "MISSING_ID"
	ErrCodeItemNotFound  ErrorCode = "ITEM_NOT_FOUND"
	ErrCodeInvalidAction ErrorCode = "INVALID_ACTION"

	// Persistence errors
	ErrCodeStoreAccess ErrorCode = "STORE_ACCESS"

	// Configuration errors
	ErrCodeConfigNotFound   ErrorCode = "CONFIG_NOT_FOUND"
	ErrCodeConfigInvalid    ErrorCode = "CONFIG_INVALID"
	ErrCodeConfigValidation ErrorCode = "CONFIG_VALIDATION"

	// General errors
	ErrCodeInternal     ErrorCode = "INTERNAL_ERROR"
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
)

// WatchlistError represents a structured error with context
type WatchlistError struct {
	Code    ErrorCode              `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
	Cause   error                  `json:"-"`
}

// Error implements the error interface
func (e *WatchlistError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *WatchlistError) Unwrap() error {
	return e.Cause
}

// WithDetail adds a detail to the error
func (e *WatchlistError) WithDetail(key string, value interface{}) *WatchlistError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// ToJSON converts the error to JSON
func (e *WatchlistError) ToJSON() string {
	data, _ := json.MarshalIndent(e, "", "  ")
	return string(data)
}

// New creates a new WatchlistError
func New(code ErrorCode, message string) *WatchlistError {
	return &WatchlistError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an existing error with a WatchlistError
func Wrap(err error, code ErrorCode, message string) *WatchlistError {
	return &WatchlistError{
		Code:    code,
		Message: message,
		Cause:   err,
	}
}

// Is checks if an error is a specific WatchlistError code
func Is(err error, code ErrorCode) bool {
	if err == nil {
		return false
	}

	wlErr, ok := err.(*WatchlistError)
	if !ok {
		// Try to unwrap
		if unwrapper, ok := err.(interface{ Unwrap() error }); ok {
			return Is(unwrapper.Unwrap(), code)
		}
		return false
	}

	return wlErr.Code == code
}

// GetCode extracts the error code from an error
func GetCode(err error) ErrorCode {
	if err == nil {
		return ""
	}

	wlErr, ok := err.(*WatchlistError)
	if !ok {
		// Try to unwrap
		if unwrapper, ok := err.(interface{ Unwrap() error }); ok {
			return GetCode(unwrapper.Unwrap())
		}
		return ""
	}

	return wlErr.Code
}
