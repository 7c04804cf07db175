// Package validation provides common validation utilities for the timerqueue module.
package validation

import (
	"reflect"
	"time"

	tqerrors "github.com/vnykmshr/timerqueue/pkg/common/errors"
)

// ValidatePositive validates that an integer value is positive (> 0).
// Returns a ValidationError if the value is not positive.
func ValidatePositive(module, field string, value int) error {
	if value <= 0 {
		return tqerrors.NewValidationError(module, field, value, "must be positive").
			WithHint("value must be greater than 0")
	}
	return nil
}

// ValidatePositiveDuration validates that a duration is positive (> 0).
func ValidatePositiveDuration(module, field string, value time.Duration) error {
	if value <= 0 {
		return tqerrors.NewValidationError(module, field, value, "must be positive").
			WithHint("value must be greater than 0")
	}
	return nil
}

// ValidateNonNegativeDuration validates that a duration is non-negative (>= 0).
func ValidateNonNegativeDuration(module, field string, value time.Duration) error {
	if value < 0 {
		return tqerrors.NewValidationError(module, field, value, "cannot be negative").
			WithHint("use 0 or a positive value")
	}
	return nil
}

// ValidateNotNil validates that a value is not nil. Typed nils held in an
// interface (a nil func, pointer, map, chan or slice) are treated as nil.
func ValidateNotNil(module, field string, value interface{}) error {
	if isNil(value) {
		return tqerrors.NewValidationError(module, field, nil, "cannot be nil").
			WithHint("provide a valid " + field)
	}
	return nil
}

// ValidateNotEmpty validates that a string value is not empty.
// Returns a ValidationError if the string is empty.
func ValidateNotEmpty(module, field string, value string) error {
	if value == "" {
		return tqerrors.NewValidationError(module, field, value, "cannot be empty").
			WithHint("provide a non-empty " + field)
	}
	return nil
}

// AsArgument re-tags a ValidationError so it unwraps to ErrInvalidArgument.
// Any other error, including nil, is returned unchanged.
func AsArgument(err error) error {
	if verr, ok := err.(*tqerrors.ValidationError); ok {
		verr.Kind = tqerrors.ErrInvalidArgument
	}
	return err
}

func isNil(value interface{}) bool {
	if value == nil {
		return true
	}
	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Func, reflect.Ptr, reflect.Map, reflect.Chan, reflect.Slice, reflect.Interface:
		return v.IsNil()
	}
	return false
}
