package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Input validation errors
	ErrEmptyInput    = errors.New("empty input")
	ErrInvalidWindow = errors.New("invalid window size")
	ErrInvalidAlpha  = errors.New("alpha out of range (0,1]")

	// Registry lookup errors
	ErrUnknownDomain = errors.New("unknown feature domain")
	ErrUnknownModel  = errors.New("unknown risk model")

	// Feature validation errors
	ErrInvalidFeature = errors.New("non-finite feature value")
)

// Error constructors with context
func NewEmptyInputError(operation string) error {
	return fmt.Errorf("%w: %s requires at least one value", ErrEmptyInput, operation)
}

func NewInvalidWindowError(window, length int) error {
	return fmt.Errorf("%w: window %d for series of length %d", ErrInvalidWindow, window, length)
}

func NewInvalidAlphaError(alpha float64) error {
	return fmt.Errorf("%w: got %g", ErrInvalidAlpha, alpha)
}

func NewUnknownDomainError(domain string) error {
	return fmt.Errorf("%w: %q", ErrUnknownDomain, domain)
}

func NewUnknownModelError(model string) error {
	return fmt.Errorf("%w: %q", ErrUnknownModel, model)
}

func NewInvalidFeatureError(name string, value float64) error {
	return fmt.Errorf("%w: %s=%v", ErrInvalidFeature, name, value)
}

// Error checking helpers
func IsInputError(err error) bool {
	return errors.Is(err, ErrEmptyInput) ||
		errors.Is(err, ErrInvalidWindow) ||
		errors.Is(err, ErrInvalidAlpha)
}

func IsLookupError(err error) bool {
	return errors.Is(err, ErrUnknownDomain) ||
		errors.Is(err, ErrUnknownModel)
}
