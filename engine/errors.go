package engine

import (
	"errors"
	"fmt"
)

var (
	// ErrNoStoredModels is returned when an operation requires a retained
	// model ensemble and none exists.
	ErrNoStoredModels = errors.New("no stored model state")

	// ErrModelNotFitted is returned when replay reaches an ensemble slot
	// that was never fitted during the originating run.
	ErrModelNotFitted = errors.New("model slot was never fitted")
)

// ErrInvalidConfig indicates an unrecognized or inconsistent configuration
// value. It is always detected before any round executes.
type ErrInvalidConfig struct {
	Param string
	Value string
}

func (e *ErrInvalidConfig) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Param, e.Value)
}

// ErrDimensionMismatch indicates a shape mismatch between an input and the
// stored or expected column count.
type ErrDimensionMismatch struct {
	Expected int
	Actual   int
}

func (e *ErrDimensionMismatch) Error() string {
	return fmt.Sprintf("dimension mismatch: expected %d columns, got %d", e.Expected, e.Actual)
}
