package grid

import (
	"errors"
	"fmt"
)

// ErrOutOfBounds indicates a position outside the grid was queried.
var ErrOutOfBounds = errors.New("grid: position out of bounds")

// BoundsError carries the offending position and the grid dimensions.
type BoundsError struct {
	Pos   Position
	Depth int
	Width int
}

func (e *BoundsError) Error() string {
	return fmt.Sprintf("%v: %v not in %dx%d", ErrOutOfBounds, e.Pos, e.Depth, e.Width)
}

func (e *BoundsError) Unwrap() error {
	return ErrOutOfBounds
}
