package imputego

import (
	"errors"
	"fmt"

	"github.com/hupe1980/imputego/engine"
	"github.com/hupe1980/imputego/fill"
)

var (
	// ErrConfiguration covers unknown strategies, invalid modes, and mode
	// mismatches (e.g. row completion over a PMM-trained state).
	ErrConfiguration = errors.New("imputego: invalid configuration")

	// ErrDimension covers shape mismatches between inputs and the stored
	// or expected column count.
	ErrDimension = errors.New("imputego: dimension mismatch")

	// ErrState covers operations that require prior persisted state that
	// is absent or incomplete.
	ErrState = errors.New("imputego: missing stored state")

	// ErrInput covers non-tabular input and fully-missing rows or columns.
	ErrInput = errors.New("imputego: invalid input")
)

// translateError normalizes subpackage errors to the public taxonomy. The
// original underlying error stays reachable via errors.Unwrap / errors.As.
func translateError(err error) error {
	if err == nil {
		return nil
	}

	// Configuration.
	var ic *engine.ErrInvalidConfig
	if errors.As(err, &ic) {
		return fmt.Errorf("%w: %w", ErrConfiguration, err)
	}
	var um *fill.ErrUnknownMethod
	if errors.As(err, &um) {
		return fmt.Errorf("%w: %w", ErrConfiguration, err)
	}

	// Dimensions.
	var dm *engine.ErrDimensionMismatch
	if errors.As(err, &dm) {
		return fmt.Errorf("%w: %w", ErrDimension, err)
	}

	// Stored state.
	if errors.Is(err, engine.ErrNoStoredModels) || errors.Is(err, engine.ErrModelNotFitted) {
		return fmt.Errorf("%w: %w", ErrState, err)
	}

	// Input.
	if errors.Is(err, fill.ErrNotTabular) {
		return fmt.Errorf("%w: %w", ErrInput, err)
	}
	var amr *fill.ErrAllMissingRow
	if errors.As(err, &amr) {
		return fmt.Errorf("%w: %w", ErrInput, err)
	}
	var amc *fill.ErrAllMissingColumn
	if errors.As(err, &amc) {
		return fmt.Errorf("%w: %w", ErrInput, err)
	}

	return err
}
