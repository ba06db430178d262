// Package apperr defines the sentinel error categories used across perturbopy.
//
// Error taxonomy
//
//	ConfigurationError – the input handed to a constructor is invalid as a
//	                     whole (wrong calculation-mode tag, unknown unit name,
//	                     array length disagreeing with the declared k-point
//	                     count). Construction is aborted outright.
//
//	MissingKeyError    – an expected key is absent from a result mapping.
//	                     Signals a malformed or incompatible output-file
//	                     version. Carries the dotted path of the missing key.
//
//	UserError          – caused by missing or invalid command-line input
//	                     (wrong flag, bad value, …). The CLI prints only the
//	                     message; usage help is NOT repeated. Exit code: 1.
//
//	ErrCancelled       – the user deliberately aborted an interactive flow.
//	                     Exit code: 0 (not a failure).
//
// Everything else is a plain Go error (I/O, YAML decoding, …) and is
// propagated with fmt.Errorf("context: %w", err) wrapping.
package apperr

import (
	"errors"
	"fmt"
)

// ErrCancelled is returned when the user explicitly aborts an interactive
// operation.  The CLI should exit 0 rather than 1 when it sees this error.
var ErrCancelled = errors.New("operation cancelled")

// ConfigurationError reports input that is structurally present but invalid:
// a results mapping from a different calculation mode, a unit name the
// registry does not know, or an array whose length contradicts the metadata.
type ConfigurationError struct {
	Message string
}

func (e *ConfigurationError) Error() string { return e.Message }

// Config creates a ConfigurationError with the given message.
func Config(msg string) error { return &ConfigurationError{Message: msg} }

// Configf creates a formatted ConfigurationError.
func Configf(format string, args ...any) error {
	return &ConfigurationError{Message: fmt.Sprintf(format, args...)}
}

// IsConfig reports whether err is (or wraps) a *ConfigurationError.
func IsConfig(err error) bool {
	var c *ConfigurationError
	return errors.As(err, &c)
}

// MissingKeyError reports an expected key that was absent from a nested
// result mapping. Path is dotted, e.g. "configuration index.2.temperature".
type MissingKeyError struct {
	Path string
}

func (e *MissingKeyError) Error() string {
	return fmt.Sprintf("key %q not found in results", e.Path)
}

// MissingKey creates a MissingKeyError for the given dotted path.
func MissingKey(path string) error { return &MissingKeyError{Path: path} }

// IsMissingKey reports whether err is (or wraps) a *MissingKeyError.
func IsMissingKey(err error) bool {
	var m *MissingKeyError
	return errors.As(err, &m)
}

// UserError represents an error caused by invalid or missing user input.
// Cobra command handlers return this instead of a bare fmt.Errorf so that
// the root command can suppress repeated usage output and format the message
// in a user-friendly way.
type UserError struct {
	Message string
}

func (e *UserError) Error() string { return e.Message }

// User creates a UserError with the given message.
func User(msg string) error { return &UserError{Message: msg} }

// Userf creates a formatted UserError.
func Userf(format string, args ...any) error {
	return &UserError{Message: fmt.Sprintf(format, args...)}
}

// IsUser reports whether err is (or wraps) a *UserError.
func IsUser(err error) bool {
	var u *UserError
	return errors.As(err, &u)
}
