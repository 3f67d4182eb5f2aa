// Package errors provides standardized error handling for fabriconv. It
// includes error classification, standard error variables, and helpers for
// consistent error wrapping across the conversion pipeline.
//
// Classification follows the converter's three-tier posture: fatal errors
// abort a whole compilation (unparsable syntax, empty input, failed memory
// pre-flight); invalid errors describe a single rejected item and normally
// surface as SkippedItem records rather than returned errors; transient is
// reserved for collaborators (file streaming, upload) that may retry.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorClass represents the classification of errors for handling purposes.
type ErrorClass int

const (
	// ErrorTransient represents temporary errors that may be retried.
	ErrorTransient ErrorClass = iota
	// ErrorInvalid represents errors due to invalid input for a single item.
	ErrorInvalid
	// ErrorFatal represents unrecoverable errors that abort the compilation.
	ErrorFatal
)

// String returns the string representation of ErrorClass.
func (ec ErrorClass) String() string {
	switch ec {
	case ErrorTransient:
		return "transient"
	case ErrorInvalid:
		return "invalid"
	case ErrorFatal:
		return "fatal"
	default:
		return "unknown"
	}
}

// Standard error variables for common conditions.
var (
	// Document-level errors (fatal tier).
	ErrEmptyInput         = errors.New("empty input document")
	ErrParsingFailed      = errors.New("parsing failed")
	ErrUnsupportedFormat  = errors.New("unsupported serialization format")
	ErrInsufficientMemory = errors.New("insufficient memory for input size")
	ErrNoTriples          = errors.New("no triples found in input")

	// Item-level errors (recorded as skipped items by converters).
	ErrUnresolvedReference = errors.New("unresolved type reference")
	ErrMissingSchema       = errors.New("missing required schema element")
	ErrMissingTarget       = errors.New("relationship target missing")
	ErrMissingDomainRange  = errors.New("missing domain or range")

	// Configuration errors.
	ErrInvalidConfig = errors.New("invalid configuration")
	ErrMissingConfig = errors.New("missing required configuration")
)

// ClassifiedError wraps an error with its classification.
type ClassifiedError struct {
	Class     ErrorClass
	Err       error
	Message   string
	Component string
	Operation string
}

// Error implements the error interface.
func (ce *ClassifiedError) Error() string {
	if ce.Message != "" {
		return ce.Message
	}
	return ce.Err.Error()
}

// Unwrap returns the underlying error.
func (ce *ClassifiedError) Unwrap() error {
	return ce.Err
}

// IsFatal checks if an error should abort the whole compilation.
func IsFatal(err error) bool {
	if err == nil {
		return false
	}

	var ce *ClassifiedError
	if errors.As(err, &ce) {
		return ce.Class == ErrorFatal
	}

	if errors.Is(err, ErrEmptyInput) ||
		errors.Is(err, ErrParsingFailed) ||
		errors.Is(err, ErrUnsupportedFormat) ||
		errors.Is(err, ErrInsufficientMemory) ||
		errors.Is(err, ErrNoTriples) ||
		errors.Is(err, ErrInvalidConfig) ||
		errors.Is(err, ErrMissingConfig) {
		return true
	}

	errStr := strings.ToLower(err.Error())
	for _, pattern := range []string{"fatal", "panic", "out of memory", "syntax error"} {
		if strings.Contains(errStr, pattern) {
			return true
		}
	}
	return false
}

// IsInvalid checks if an error describes a single rejected item.
func IsInvalid(err error) bool {
	if err == nil {
		return false
	}

	var ce *ClassifiedError
	if errors.As(err, &ce) {
		return ce.Class == ErrorInvalid
	}

	return errors.Is(err, ErrUnresolvedReference) ||
		errors.Is(err, ErrMissingSchema) ||
		errors.Is(err, ErrMissingTarget) ||
		errors.Is(err, ErrMissingDomainRange)
}

// IsTransient checks if an error is temporary and may be retried by a
// collaborator. Nothing in the conversion core itself is transient.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}

	var ce *ClassifiedError
	if errors.As(err, &ce) {
		return ce.Class == ErrorTransient
	}
	return false
}

// Classify returns the error class for an error. Unknown errors default to
// invalid: a converter records them against the offending item and moves on.
func Classify(err error) ErrorClass {
	switch {
	case IsFatal(err):
		return ErrorFatal
	case IsTransient(err):
		return ErrorTransient
	default:
		return ErrorInvalid
	}
}

// newClassified creates a new classified error.
// Internal helper - use WrapFatal(), WrapInvalid() or WrapTransient().
func newClassified(class ErrorClass, err error, component, operation, message string) *ClassifiedError {
	return &ClassifiedError{
		Class:     class,
		Err:       err,
		Message:   message,
		Component: component,
		Operation: operation,
	}
}

// Wrap creates a standardized error with context following the pattern:
// "component.method: action failed: %w"
func Wrap(err error, component, method, action string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s.%s: %s failed: %w", component, method, action, err)
}

// WrapFatal wraps an error as fatal with context.
func WrapFatal(err error, component, method, action string) error {
	if err == nil {
		return nil
	}
	wrappedErr := Wrap(err, component, method, action)
	return newClassified(ErrorFatal, wrappedErr, component, method, wrappedErr.Error())
}

// WrapInvalid wraps an error as invalid with context.
func WrapInvalid(err error, component, method, action string) error {
	if err == nil {
		return nil
	}
	wrappedErr := Wrap(err, component, method, action)
	return newClassified(ErrorInvalid, wrappedErr, component, method, wrappedErr.Error())
}

// WrapTransient wraps an error as transient with context.
func WrapTransient(err error, component, method, action string) error {
	if err == nil {
		return nil
	}
	wrappedErr := Wrap(err, component, method, action)
	return newClassified(ErrorTransient, wrappedErr, component, method, wrappedErr.Error())
}

// Is, As and New re-export the stdlib helpers so callers need a single
// errors import.
var (
	Is  = errors.Is
	As  = errors.As
	New = errors.New
)
