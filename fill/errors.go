package fill

import (
	"errors"
	"fmt"
)

// ErrNotTabular is returned when the input is empty or ragged.
var ErrNotTabular = errors.New("input is not a rectangular matrix")

// ErrUnknownMethod indicates an unrecognized fill method.
type ErrUnknownMethod struct {
	Value string
}

func (e *ErrUnknownMethod) Error() string {
	return fmt.Sprintf("unknown fill method: %q", e.Value)
}

// ErrAllMissingRow indicates a row with no observed values.
type ErrAllMissingRow struct {
	Row int
}

func (e *ErrAllMissingRow) Error() string {
	return fmt.Sprintf("row %d contains no observed values", e.Row)
}

// ErrAllMissingColumn indicates a column with no observed values.
type ErrAllMissingColumn struct {
	Column int
}

func (e *ErrAllMissingColumn) Error() string {
	return fmt.Sprintf("column %d contains no observed values", e.Column)
}
