package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation indicates a domain value failed its invariants
	// (empty name, non-positive estimate, unknown enum string, ...).
	ErrValidation = errors.New("validation error")

	// ErrDependency indicates a required external dependency is missing
	// or misconfigured (absent credential, unreachable service).
	ErrDependency = errors.New("dependency error")

	// ErrSlotting indicates no calendar window can accommodate a task.
	ErrSlotting = errors.New("slotting error")
)

// Validationf wraps a formatted message in ErrValidation.
func Validationf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// Dependencyf wraps a formatted message in ErrDependency.
func Dependencyf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrDependency, fmt.Sprintf(format, args...))
}

// Slottingf wraps a formatted message in ErrSlotting.
func Slottingf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrSlotting, fmt.Sprintf(format, args...))
}
