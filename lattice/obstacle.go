package lattice

import "fmt"

// Coord addresses a lattice site by column (X) and row (Y).
type Coord struct {
	X, Y int
}

// ObstacleMask marks the blocked sites of the lattice. It is set once while
// loading and never changes afterwards.
type ObstacleMask struct {
	NX, NY  int
	Blocked []bool
}

// NewObstacleMask creates a mask with the given blocked sites.
func NewObstacleMask(nx, ny int, blocked []Coord) (*ObstacleMask, error) {
	if nx <= 0 || ny <= 0 {
		return nil, fmt.Errorf("%w: obstacle mask %dx%d", ErrInvalidParams, nx, ny)
	}

	m := &ObstacleMask{
		NX:      nx,
		NY:      ny,
		Blocked: make([]bool, nx*ny),
	}

	for _, c := range blocked {
		if c.X < 0 || c.X >= nx || c.Y < 0 || c.Y >= ny {
			return nil, fmt.Errorf("%w: obstacle (%d, %d) outside %dx%d grid",
				ErrInvalidParams, c.X, c.Y, nx, ny)
		}

		m.Blocked[c.Y*nx+c.X] = true
	}

	return m, nil
}

// IsBlocked tells if the site at (row, col) is an obstacle.
func (m *ObstacleMask) IsBlocked(row, col int) bool {
	return m.Blocked[row*m.NX+col]
}

// NumFluidCells counts the sites that are not blocked.
func (m *ObstacleMask) NumFluidCells() int {
	n := 0
	for _, b := range m.Blocked {
		if !b {
			n++
		}
	}

	return n
}
