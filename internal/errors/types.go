// Package errors provides the structured error taxonomy shared by the scanner,
// session, output resolver, and conversion orchestrator.
//
// Every failure that crosses a package boundary is an *S2LError carrying a
// Type (broad category) and a Code (specific kind). Callers branch on the
// code through the Is* predicates or GetErrorCode rather than on message text.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorType represents different categories of errors.
type ErrorType string

const (
	ErrorTypeValidation ErrorType = "validation"
	ErrorTypeIO         ErrorType = "io"
	ErrorTypeConfig     ErrorType = "config"
	ErrorTypeInternal   ErrorType = "internal"
)

// Error codes.
const (
	CodeDirectoryRead   = "ERR_DIRECTORY_READ"
	CodeSourceMissing   = "ERR_SOURCE_MISSING"
	CodeIO              = "ERR_IO"
	CodeCollisionLimit  = "ERR_COLLISION_LIMIT"
	CodeNoSelection     = "ERR_NO_SELECTION"
	CodeInvalidViewBox  = "ERR_INVALID_VIEWBOX"
	CodeNotFound        = "ERR_NOT_FOUND"
	CodeConfigInvalid   = "ERR_CONFIG_INVALID"
	CodeManifestInvalid = "ERR_MANIFEST_INVALID"
	CodeCancelled       = "ERR_CANCELLED"
	CodeInvalidPrefix   = "ERR_INVALID_PREFIX"
	CodeInvalidFill     = "ERR_INVALID_FILL"
	CodeInvalidPattern  = "ERR_INVALID_PATTERN"
)

// S2LError is a structured error type with context.
type S2LError struct {
	Type    ErrorType
	Code    string
	Message string
	Cause   error
	Path    string
	Context map[string]interface{}
}

// Error implements the error interface.
func (e *S2LError) Error() string {
	var parts []string

	if e.Code != "" {
		parts = append(parts, fmt.Sprintf("[%s]", e.Code))
	}

	if e.Path != "" {
		parts = append(parts, e.Path)
	}

	parts = append(parts, e.Message)

	result := strings.Join(parts, " ")

	if e.Cause != nil {
		result += fmt.Sprintf(": %v", e.Cause)
	}

	return result
}

// Unwrap returns the underlying cause error.
func (e *S2LError) Unwrap() error {
	return e.Cause
}

// Is reports whether target is an *S2LError with the same type and code.
func (e *S2LError) Is(target error) bool {
	var t *S2LError
	if errors.As(target, &t) {
		return e.Type == t.Type && e.Code == t.Code
	}

	return false
}

// WithContext adds context information to the error.
func (e *S2LError) WithContext(key string, value interface{}) *S2LError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value

	return e
}

// WithPath records the filesystem path the error concerns.
func (e *S2LError) WithPath(path string) *S2LError {
	e.Path = path

	return e
}

// Human returns the message and cause without the code and path decoration.
// It is what the progress view prints after "Error: ".
func (e *S2LError) Human() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}

	return e.Message
}

// NewDirectoryReadError reports that a directory could not be listed.
func NewDirectoryReadError(path string, cause error) *S2LError {
	return &S2LError{
		Type:    ErrorTypeIO,
		Code:    CodeDirectoryRead,
		Message: "error reading directory contents",
		Cause:   cause,
		Path:    path,
	}
}

// NewSourceMissingError reports that a source file vanished between scan and
// conversion.
func NewSourceMissingError(path string) *S2LError {
	return &S2LError{
		Type:    ErrorTypeIO,
		Code:    CodeSourceMissing,
		Message: "file does not exist at path: " + path,
		Path:    path,
	}
}

// NewIOError wraps a read, write, or mkdir failure.
func NewIOError(op, path string, cause error) *S2LError {
	return &S2LError{
		Type:    ErrorTypeIO,
		Code:    CodeIO,
		Message: op + " " + path,
		Cause:   cause,
		Path:    path,
	}
}

// NewCollisionLimitError reports that no free output name was found within
// the configured number of attempts.
func NewCollisionLimitError(dir, base string, attempts int) *S2LError {
	return &S2LError{
		Type:    ErrorTypeIO,
		Code:    CodeCollisionLimit,
		Message: fmt.Sprintf("no free output name for %s after %d attempts", base, attempts),
		Path:    dir,
	}
}

// NewCancelledError reports a file skipped because its batch was cancelled.
func NewCancelledError(path string, cause error) *S2LError {
	return &S2LError{
		Type:    ErrorTypeInternal,
		Code:    CodeCancelled,
		Message: "conversion cancelled for " + path,
		Cause:   cause,
		Path:    path,
	}
}

// NewValidationError creates a validation error.
func NewValidationError(code, message string) *S2LError {
	return &S2LError{
		Type:    ErrorTypeValidation,
		Code:    code,
		Message: message,
	}
}

// NewConfigError creates a configuration error.
func NewConfigError(message string, cause error) *S2LError {
	return &S2LError{
		Type:    ErrorTypeConfig,
		Code:    CodeConfigInvalid,
		Message: message,
		Cause:   cause,
	}
}

// ErrNoSelection is returned when a bulk edit targets an empty selection.
var ErrNoSelection = NewValidationError(CodeNoSelection, "please select files to edit")

// ErrNotFound creates an error for an unknown descriptor id.
func ErrNotFound(id string) *S2LError {
	return NewValidationError(CodeNotFound, "no file with id "+id)
}

// GetErrorCode extracts the code of the first *S2LError in err's chain, or
// "" if there is none. Use the Is* predicates to test joined errors.
func GetErrorCode(err error) string {
	var se *S2LError
	if errors.As(err, &se) {
		return se.Code
	}

	return ""
}

// hasCode reports whether any *S2LError in err's tree carries code. Joined
// errors are searched branch by branch.
func hasCode(err error, code string) bool {
	switch e := err.(type) {
	case nil:
		return false
	case *S2LError:
		if e == nil {
			return false
		}
		return e.Code == code || hasCode(e.Cause, code)
	case interface{ Unwrap() []error }:
		for _, inner := range e.Unwrap() {
			if hasCode(inner, code) {
				return true
			}
		}
		return false
	case interface{ Unwrap() error }:
		return hasCode(e.Unwrap(), code)
	default:
		return false
	}
}

// IsDirectoryRead reports whether err is a directory listing failure.
func IsDirectoryRead(err error) bool { return hasCode(err, CodeDirectoryRead) }

// IsSourceMissing reports whether err is a missing source file.
func IsSourceMissing(err error) bool { return hasCode(err, CodeSourceMissing) }

// IsIO reports whether err is a read/write/mkdir failure.
func IsIO(err error) bool { return hasCode(err, CodeIO) }

// IsCollisionLimit reports whether err is an exhausted output name search.
func IsCollisionLimit(err error) bool { return hasCode(err, CodeCollisionLimit) }

// IsCancelled reports whether err is a file skipped by cancellation.
func IsCancelled(err error) bool { return hasCode(err, CodeCancelled) }

// IsNoSelection reports whether err is a bulk edit with nothing selected.
func IsNoSelection(err error) bool { return hasCode(err, CodeNoSelection) }

// Human renders err for a progress line. Structured errors drop the code and
// path decoration; anything else falls back to err.Error().
func Human(err error) string {
	if err == nil {
		return ""
	}
	var se *S2LError
	if errors.As(err, &se) {
		return se.Human()
	}

	return err.Error()
}
