package validation

import (
	"testing"
	"time"

	"github.com/vnykmshr/timerqueue/pkg/common/errors"
)

func TestValidatePositive(t *testing.T) {
	tests := []struct {
		name      string
		value     int
		wantError bool
	}{
		{"positive value", 10, false},
		{"positive value 1", 1, false},
		{"zero value", 0, true},
		{"negative value", -1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePositive("test", "count", tt.value)

			if tt.wantError {
				if err == nil {
					t.Error("expected error, got nil")
				}
				if !errors.IsValidationError(err) {
					t.Errorf("expected ValidationError, got %T", err)
				}
			} else if err != nil {
				t.Errorf("expected no error, got %v", err)
			}
		})
	}
}

func TestValidateDurations(t *testing.T) {
	tests := []struct {
		name        string
		value       time.Duration
		positiveErr bool
		nonNegErr   bool
	}{
		{"one second", time.Second, false, false},
		{"one nanosecond", time.Nanosecond, false, false},
		{"zero", 0, true, false},
		{"negative", -time.Millisecond, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePositiveDuration("timerqueue", "max_wait", tt.value)
			if (err != nil) != tt.positiveErr {
				t.Errorf("ValidatePositiveDuration(%v) error = %v, want error %v", tt.value, err, tt.positiveErr)
			}

			err = ValidateNonNegativeDuration("timerqueue", "timeout", tt.value)
			if (err != nil) != tt.nonNegErr {
				t.Errorf("ValidateNonNegativeDuration(%v) error = %v, want error %v", tt.value, err, tt.nonNegErr)
			}
		})
	}
}

func TestValidateNotNil(t *testing.T) {
	var nilFunc func(any)
	var nilPtr *int
	one := 1

	tests := []struct {
		name      string
		value     interface{}
		wantError bool
	}{
		{"untyped nil", nil, true},
		{"typed nil func", nilFunc, true},
		{"typed nil pointer", nilPtr, true},
		{"func", func(any) {}, false},
		{"pointer", &one, false},
		{"int zero", 0, false},
		{"empty string", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateNotNil("timerqueue", "callback", tt.value)

			if tt.wantError {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if !errors.IsValidationError(err) {
					t.Errorf("expected ValidationError, got %T", err)
				}
			} else if err != nil {
				t.Errorf("expected no error, got %v", err)
			}
		})
	}
}

func TestValidateNotEmpty(t *testing.T) {
	tests := []struct {
		name      string
		value     string
		wantError bool
	}{
		{"non-empty string", "@every 1s", false},
		{"whitespace", " ", false}, // Whitespace is not empty
		{"empty string", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateNotEmpty("timerqueue", "cron", tt.value)

			if tt.wantError {
				if err == nil {
					t.Error("expected error, got nil")
				}
				if !errors.IsValidationError(err) {
					t.Errorf("expected ValidationError, got %T", err)
				}
			} else if err != nil {
				t.Errorf("expected no error, got %v", err)
			}
		})
	}
}

func TestValidationErrorDetails(t *testing.T) {
	err := ValidatePositiveDuration("timerqueue", "max_wait", -5*time.Second)
	if err == nil {
		t.Fatal("expected error")
	}

	valErr, ok := err.(*errors.ValidationError)
	if !ok {
		t.Fatal("could not cast to ValidationError")
	}

	if valErr.Module != "timerqueue" {
		t.Errorf("Module = %q, want %q", valErr.Module, "timerqueue")
	}
	if valErr.Field != "max_wait" {
		t.Errorf("Field = %q, want %q", valErr.Field, "max_wait")
	}
	if valErr.Value != -5*time.Second {
		t.Errorf("Value = %v, want %v", valErr.Value, -5*time.Second)
	}
	if valErr.Hint != "value must be greater than 0" {
		t.Errorf("Hint = %q, want %q", valErr.Hint, "value must be greater than 0")
	}
}

func TestValidationErrorWrapping(t *testing.T) {
	testCases := []struct {
		name string
		err  error
	}{
		{"ValidatePositive", ValidatePositive("test", "field", -1)},
		{"ValidatePositiveDuration", ValidatePositiveDuration("test", "field", 0)},
		{"ValidateNonNegativeDuration", ValidateNonNegativeDuration("test", "field", -1)},
		{"ValidateNotNil", ValidateNotNil("test", "field", nil)},
		{"ValidateNotEmpty", ValidateNotEmpty("test", "field", "")},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if tc.err == nil {
				t.Fatal("expected error")
			}
			valErr, ok := tc.err.(*errors.ValidationError)
			if !ok {
				t.Fatalf("expected *ValidationError, got %T", tc.err)
			}
			if wrapped := valErr.Unwrap(); wrapped != errors.ErrInvalidConfiguration {
				t.Errorf("should unwrap to ErrInvalidConfiguration, got %v", wrapped)
			}

			arg := AsArgument(tc.err)
			if !errors.IsInvalidArgument(arg) {
				t.Errorf("AsArgument should unwrap to ErrInvalidArgument, got %v", arg)
			}
		})
	}
}

func TestAsArgumentPassthrough(t *testing.T) {
	if AsArgument(nil) != nil {
		t.Error("AsArgument(nil) should be nil")
	}
	if got := AsArgument(errors.ErrClosed); got != errors.ErrClosed {
		t.Errorf("AsArgument should leave other errors alone, got %v", got)
	}
}
