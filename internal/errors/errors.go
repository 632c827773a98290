package apperrors

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Process exit codes.
const (
	ExitSuccess       = 0   // Every scenario succeeded, or the user declined.
	ExitErrorGeneric  = 1   // A scenario failed.
	ExitErrorTimeout  = 2   // The run exceeded --timeout.
	ExitErrorConfig   = 4   // Bad flags, environment or study file.
	ExitErrorInput    = 5   // A prompt answer was neither "y" nor "n".
	ExitErrorCanceled = 130 // SIGINT, SIGTERM or quitting the dashboard.
)

// ConfigError reports a flag, environment variable or study file the run
// cannot start with.
type ConfigError struct {
	Message string
}

func (e ConfigError) Error() string { return e.Message }

// NewConfigError formats a ConfigError.
//
// Parameters:
//   - format: A format string (see fmt.Sprintf).
//   - a: Arguments to be formatted into the string.
//
// Returns:
//   - error: A ConfigError holding the formatted message.
func NewConfigError(format string, a ...any) error {
	return ConfigError{Message: fmt.Sprintf(format, a...)}
}

// InputError is returned when an interactive answer cannot be interpreted.
// The message is shown verbatim to the user before the process exits.
type InputError struct {
	// Answer is the raw text the user typed.
	Answer string
	// Message is the user-facing explanation.
	Message string
}

func (e InputError) Error() string { return e.Message }

// FitError is a failure while fitting one model. It names the method and the
// polynomial degree and keeps the cause for errors.Is and errors.As.
type FitError struct {
	Method string
	Degree int
	Cause  error
}

func (e FitError) Error() string {
	return fmt.Sprintf("%s fit at degree %d: %v", e.Method, e.Degree, e.Cause)
}

func (e FitError) Unwrap() error { return e.Cause }

// TimeoutError reports that Operation did not finish within Limit. It
// unwraps to context.DeadlineExceeded.
type TimeoutError struct {
	Operation string
	Limit     time.Duration
}

func (e TimeoutError) Error() string {
	return fmt.Sprintf("%s timed out after %s", e.Operation, e.Limit)
}

func (e TimeoutError) Unwrap() error { return context.DeadlineExceeded }

// ValidationError is a parameter outside its domain, such as a negative
// noise level or a test fraction of 1.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// WrapError prefixes err with a formatted message, keeping it unwrappable.
// A nil err stays nil.
func WrapError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// IsContextError reports whether err stems from a cancelled or expired
// context.
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// ExitCode maps an error to the process exit status. Input and
// configuration errors take priority over context errors found deeper in
// the chain.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var (
		inputErr  InputError
		configErr ConfigError
		validErr  ValidationError
	)
	switch {
	case errors.As(err, &inputErr):
		return ExitErrorInput
	case errors.As(err, &configErr), errors.As(err, &validErr):
		return ExitErrorConfig
	case errors.Is(err, context.DeadlineExceeded):
		return ExitErrorTimeout
	case errors.Is(err, context.Canceled):
		return ExitErrorCanceled
	}
	return ExitErrorGeneric
}
