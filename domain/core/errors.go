package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Argument errors
	ErrInvalidArgument = errors.New("invalid argument")
	ErrUnknownTail     = fmt.Errorf("%w: unrecognized tail", ErrInvalidArgument)
	ErrAmbiguousInput  = fmt.Errorf("%w: ambiguous input specification", ErrInvalidArgument)

	// Configuration not supported by the test
	ErrNotImplemented = errors.New("not implemented")

	// Precondition errors (the statistic would be undefined)
	ErrPrecondition      = errors.New("precondition violated")
	ErrEmptySample       = fmt.Errorf("%w: empty sample", ErrPrecondition)
	ErrDegreesOfFreedom  = fmt.Errorf("%w: degrees of freedom must be positive", ErrPrecondition)
	ErrNonPositiveSpread = fmt.Errorf("%w: variance must be positive", ErrPrecondition)

	// Lookup errors
	ErrNotFound       = errors.New("resource not found")
	ErrColumnNotFound = fmt.Errorf("%w: column", ErrNotFound)
)

// Error constructors with context
func NewArgumentError(field string, reason string) error {
	return fmt.Errorf("%w: %s: %s", ErrInvalidArgument, field, reason)
}

func NewTailError(keyword string) error {
	return fmt.Errorf("%w %q", ErrUnknownTail, keyword)
}

func NewPreconditionError(reason string) error {
	return fmt.Errorf("%w: %s", ErrPrecondition, reason)
}

func NewColumnNotFoundError(name string) error {
	return fmt.Errorf("%w %q", ErrColumnNotFound, name)
}

// Error checking helpers
func IsInvalidArgument(err error) bool {
	return errors.Is(err, ErrInvalidArgument)
}

func IsNotImplemented(err error) bool {
	return errors.Is(err, ErrNotImplemented)
}

func IsPrecondition(err error) bool {
	return errors.Is(err, ErrPrecondition)
}

func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}
