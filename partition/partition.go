// Package partition splits the rows of the lattice into contiguous blocks, one
// per rank.
package partition

import (
	"errors"
	"fmt"
)

// ErrTooManyWorkers is returned when there are more ranks than rows, which
// would leave a rank without any row.
var ErrTooManyWorkers = errors.New("more workers than rows")

// ErrInvalidShape is returned for non-positive sizes and out-of-range ranks.
var ErrInvalidShape = errors.New("invalid partition shape")

// RowRange covers the global rows [Start, End).
type RowRange struct {
	Start int
	End   int
}

// Rows returns the number of rows in the range.
func (r RowRange) Rows() int {
	return r.End - r.Start
}

// Last returns the last row of the range.
func (r RowRange) Last() int {
	return r.End - 1
}

// Contains tells if a global row is inside the range.
func (r RowRange) Contains(row int) bool {
	return row >= r.Start && row < r.End
}

func (r RowRange) String() string {
	return fmt.Sprintf("[%d, %d)", r.Start, r.End)
}

func shapeMustBeValid(ny, p int) error {
	if ny <= 0 || p <= 0 {
		return fmt.Errorf("%w: %d rows over %d workers", ErrInvalidShape, ny, p)
	}

	if p > ny {
		return fmt.Errorf("%w: %d workers for %d rows", ErrTooManyWorkers, p, ny)
	}

	return nil
}

// RangeOf returns the rows of one rank. The first ny mod p ranks take one row
// more than the others, and ranges follow each other in rank order. The
// result only depends on the arguments, so every rank can compute the range
// of every other rank locally.
func RangeOf(ny, p, rank int) (RowRange, error) {
	if err := shapeMustBeValid(ny, p); err != nil {
		return RowRange{}, err
	}

	if rank < 0 || rank >= p {
		return RowRange{}, fmt.Errorf("%w: rank %d of %d", ErrInvalidShape, rank, p)
	}

	base := ny / p
	extra := ny % p

	start := rank*base + min(rank, extra)
	rows := base
	if rank < extra {
		rows++
	}

	return RowRange{Start: start, End: start + rows}, nil
}

// Split returns the ranges of all ranks.
func Split(ny, p int) ([]RowRange, error) {
	if err := shapeMustBeValid(ny, p); err != nil {
		return nil, err
	}

	ranges := make([]RowRange, p)
	for rank := range ranges {
		r, err := RangeOf(ny, p, rank)
		if err != nil {
			return nil, err
		}

		ranges[rank] = r
	}

	return ranges, nil
}

// OwnerOf returns the rank that owns a global row. Rows outside [0, ny) wrap
// around periodically.
func OwnerOf(ny, p, row int) (int, error) {
	if err := shapeMustBeValid(ny, p); err != nil {
		return 0, err
	}

	row = ((row % ny) + ny) % ny

	base := ny / p
	extra := ny % p
	bigRows := extra * (base + 1)

	if row < bigRows {
		return row / (base + 1), nil
	}

	return extra + (row-bigRows)/base, nil
}

// Neighbors returns the ranks owning the row just below (south) and just
// above (north) the rows of a rank, with periodic wrap-around. Together the
// ranks form a ring.
func Neighbors(ny, p, rank int) (south, north int, err error) {
	r, err := RangeOf(ny, p, rank)
	if err != nil {
		return 0, 0, err
	}

	south, err = OwnerOf(ny, p, r.Start-1)
	if err != nil {
		return 0, 0, err
	}

	north, err = OwnerOf(ny, p, r.End)
	if err != nil {
		return 0, 0, err
	}

	return south, north, nil
}
