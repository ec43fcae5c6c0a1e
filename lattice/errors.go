package lattice

import (
	"errors"
	"fmt"
)

// ErrInvalidParams is returned when run parameters cannot describe a lattice.
var ErrInvalidParams = errors.New("invalid lattice parameters")

// ErrRowShape is returned when a packed row does not hold a full lattice row.
var ErrRowShape = errors.New("row shape mismatch")

// ErrZeroDensity marks a fluid cell whose density is zero or not finite, which
// leaves its macroscopic velocity undefined.
var ErrZeroDensity = errors.New("zero local density")

// DensityError reports the cell at which ErrZeroDensity happened.
type DensityError struct {
	Row, Col int
	Density  float32
}

func (e *DensityError) Error() string {
	return fmt.Sprintf(
		"cell (row %d, col %d): density %g: %s",
		e.Row, e.Col, e.Density, ErrZeroDensity)
}

// Unwrap returns ErrZeroDensity.
func (e *DensityError) Unwrap() error {
	return ErrZeroDensity
}
