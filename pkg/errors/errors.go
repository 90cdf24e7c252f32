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
	ErrPermission   ErrorCode = "PERMISSION"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"
	ErrConfigValid ErrorCode = "CONFIG_INVALID"

	// Conflict scan and backup errors
	ErrProbe      ErrorCode = "PROBE"
	ErrBackupCopy ErrorCode = "BACKUP_COPY"
	ErrRemoval    ErrorCode = "REMOVAL"
	ErrDirCreate  ErrorCode = "DIR_CREATE"

	// Linking errors
	ErrLinkGroup   ErrorCode = "LINK_GROUP"
	ErrLinkVerify  ErrorCode = "LINK_VERIFY"
	ErrUnlinkGroup ErrorCode = "UNLINK_GROUP"

	// Restore errors
	ErrSelection ErrorCode = "SELECTION"
	ErrRestore   ErrorCode = "RESTORE"

	// External collaborator errors
	ErrCommand        ErrorCode = "COMMAND"
	ErrPackageInstall ErrorCode = "PACKAGE_INSTALL"
	ErrShellChange    ErrorCode = "SHELL_CHANGE"
	ErrFontInstall    ErrorCode = "FONT_INSTALL"
	ErrPromptInstall  ErrorCode = "PROMPT_INSTALL"
)

// DetailRemediation is the detail key holding a command the user can run
// to fix the problem by hand.
const DetailRemediation = "remediation"

// DotstowError represents a structured error with code and details
type DotstowError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *DotstowError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *DotstowError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *DotstowError) Is(target error) bool {
	var targetErr *DotstowError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new DotstowError with the given code and message
func New(code ErrorCode, message string) *DotstowError {
	return &DotstowError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new DotstowError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *DotstowError {
	return &DotstowError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a DotstowError
func Wrap(err error, code ErrorCode, message string) *DotstowError {
	if err == nil {
		return nil
	}
	return &DotstowError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *DotstowError {
	if err == nil {
		return nil
	}
	return &DotstowError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *DotstowError) WithDetail(key string, value interface{}) *DotstowError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// WithRemediation records the command a user can run to fix the problem manually.
func (e *DotstowError) WithRemediation(command string) *DotstowError {
	return e.WithDetail(DetailRemediation, command)
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var dsErr *DotstowError
	if errors.As(err, &dsErr) {
		return dsErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a DotstowError
func GetErrorCode(err error) ErrorCode {
	var dsErr *DotstowError
	if errors.As(err, &dsErr) {
		return dsErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a DotstowError
func GetErrorDetails(err error) map[string]interface{} {
	var dsErr *DotstowError
	if errors.As(err, &dsErr) {
		return dsErr.Details
	}
	return nil
}

// Remediation returns the manual fix command attached to err or to any
// DotstowError it wraps, outermost first.
func Remediation(err error) string {
	for err != nil {
		var dsErr *DotstowError
		if !errors.As(err, &dsErr) {
			return ""
		}
		if cmd, ok := dsErr.Details[DetailRemediation].(string); ok && cmd != "" {
			return cmd
		}
		err = dsErr.Wrapped
	}
	return ""
}
