package snappeg

import "errors"

// Common errors used throughout the snappeg package
var (
	// ErrConfigValidation is returned when configuration validation fails.
	ErrConfigValidation = errors.New("configuration validation failed")
	// ErrUnknownCalcMode is returned for a calc.mode other than int or decimal.
	ErrUnknownCalcMode = errors.New("unknown calc mode")
)
