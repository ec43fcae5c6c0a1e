package lattice

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// cSq is the square of the lattice speed of sound.
const cSq = 1.0 / 3.0

// Grid is the full lattice in row-major order.
type Grid struct {
	NX, NY int
	Cells  []Cell
}

// NewGrid creates a grid with every site at the rest equilibrium of the
// reference density.
func NewGrid(p Params) (*Grid, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	g := &Grid{
		NX:    p.NX,
		NY:    p.NY,
		Cells: make([]Cell, p.NX*p.NY),
	}

	rest := RestCell(p.Density)
	for i := range g.Cells {
		g.Cells[i] = rest
	}

	return g, nil
}

// At returns the cell at (row, col).
func (g *Grid) At(row, col int) *Cell {
	return &g.Cells[row*g.NX+col]
}

// Row returns the cells of one row.
func (g *Grid) Row(row int) []Cell {
	return g.Cells[row*g.NX : (row+1)*g.NX]
}

// TotalDensity sums every speed of every cell. Without forcing the value is
// conserved by streaming, rebound and collision.
func (g *Grid) TotalDensity() float64 {
	rowSums := make([]float64, g.NY)
	for r := 0; r < g.NY; r++ {
		var sum float64
		for _, c := range g.Row(r) {
			sum += float64(c.Density())
		}
		rowSums[r] = sum
	}

	return floats.Sum(rowSums)
}

// CellRecord is the macroscopic view of one site of the final state.
type CellRecord struct {
	Row, Col   int
	UX, UY     float64
	Pressure   float64
	IsObstacle bool
}

// Records converts the grid into one record per site, in row-major order.
// Obstacle sites report zero velocity and the pressure of the reference
// density.
func (g *Grid) Records(p Params, mask *ObstacleMask) ([]CellRecord, error) {
	if mask.NX != g.NX || mask.NY != g.NY {
		return nil, fmt.Errorf("%w: mask %dx%d does not match grid %dx%d",
			ErrInvalidParams, mask.NX, mask.NY, g.NX, g.NY)
	}

	records := make([]CellRecord, 0, len(g.Cells))
	for row := 0; row < g.NY; row++ {
		for col := 0; col < g.NX; col++ {
			rec := CellRecord{Row: row, Col: col}

			if mask.IsBlocked(row, col) {
				rec.IsObstacle = true
				rec.Pressure = float64(p.Density * cSq)
				records = append(records, rec)

				continue
			}

			c := g.At(row, col)
			rho := c.Density()
			if !densityIsUsable(rho) {
				return nil, &DensityError{Row: row, Col: col, Density: rho}
			}

			ux, uy := c.Velocity(rho)
			rec.UX = float64(ux)
			rec.UY = float64(uy)
			rec.Pressure = float64(rho * cSq)
			records = append(records, rec)
		}
	}

	return records, nil
}

// AverageVelocity returns the mean x velocity over the fluid sites, computed
// on the whole grid at once.
func (g *Grid) AverageVelocity(mask *ObstacleMask) (float64, error) {
	rows := make([]Partial, g.NY)

	for row := 0; row < g.NY; row++ {
		p, err := partialOfRow(g.Row(row), mask.Blocked[row*g.NX:(row+1)*g.NX], row)
		if err != nil {
			return 0, err
		}

		rows[row] = p
	}

	return SumPartials(rows).Average(), nil
}
