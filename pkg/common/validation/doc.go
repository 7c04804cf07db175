// Package validation provides common validation utilities for configuration
// parameters and call arguments across the timerqueue module.
//
// This package offers reusable validation functions that help ensure
// consistent error messages and reduce boilerplate code in constructors
// and public operations.
package validation
