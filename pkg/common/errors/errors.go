package errors

import (
	"errors"
	"fmt"
)

// Common error types used across the timerqueue module

var (
	// ErrClosed indicates that an operation was attempted on a closed queue
	ErrClosed = errors.New("resource is closed")

	// ErrInvalidConfiguration indicates invalid configuration parameters
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrInvalidArgument indicates a nil or out-of-range call argument
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrWorkerStart indicates that the background worker could not be started
	ErrWorkerStart = errors.New("worker failed to start")

	// ErrNotScheduled indicates that an event is not linked into the queue
	ErrNotScheduled = errors.New("event is not scheduled")

	// ErrEventBusy indicates that an event still held extra references at teardown
	ErrEventBusy = errors.New("event is still referenced")
)

// ValidationError describes a rejected configuration value or call argument.
type ValidationError struct {
	Module string
	Field  string
	Value  interface{}
	Reason string
	Hint   string

	// Kind is the sentinel returned by Unwrap. Defaults to ErrInvalidConfiguration.
	Kind error
}

func (e *ValidationError) Error() string {
	msg := fmt.Sprintf("%s: invalid %s=%v (%s)", e.Module, e.Field, e.Value, e.Reason)
	if e.Hint != "" {
		msg += " - " + e.Hint
	}
	return msg
}

func (e *ValidationError) Unwrap() error {
	if e.Kind != nil {
		return e.Kind
	}
	return ErrInvalidConfiguration
}

// NewValidationError creates a configuration ValidationError.
func NewValidationError(module, field string, value interface{}, reason string) *ValidationError {
	return &ValidationError{
		Module: module,
		Field:  field,
		Value:  value,
		Reason: reason,
	}
}

// NewArgumentError creates a ValidationError for a bad call argument.
// It unwraps to ErrInvalidArgument.
func NewArgumentError(module, field string, value interface{}, reason string) *ValidationError {
	err := NewValidationError(module, field, value, reason)
	err.Kind = ErrInvalidArgument
	return err
}

// WithHint attaches a remediation hint and returns the same error for chaining.
func (e *ValidationError) WithHint(hint string) *ValidationError {
	e.Hint = hint
	return e
}

// OperationError wraps the cause of a failed operation.
type OperationError struct {
	Module    string
	Operation string
	Cause     error
	Context   string
}

func (e *OperationError) Error() string {
	msg := fmt.Sprintf("%s.%s failed: %v", e.Module, e.Operation, e.Cause)
	if e.Context != "" {
		msg += " (" + e.Context + ")"
	}
	return msg
}

func (e *OperationError) Unwrap() error {
	return e.Cause
}

// NewOperationError creates an OperationError for the given module and operation.
func NewOperationError(module, operation string, cause error) *OperationError {
	return &OperationError{
		Module:    module,
		Operation: operation,
		Cause:     cause,
	}
}

// WithContext attaches extra detail and returns the same error for chaining.
func (e *OperationError) WithContext(context string) *OperationError {
	e.Context = context
	return e
}

// IsValidationError reports whether err is or wraps a ValidationError.
func IsValidationError(err error) bool {
	var verr *ValidationError
	return errors.As(err, &verr)
}

// IsInvalidArgument reports whether err was caused by a bad call argument.
func IsInvalidArgument(err error) bool {
	return errors.Is(err, ErrInvalidArgument)
}
