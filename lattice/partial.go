package lattice

import "gonum.org/v1/gonum/floats"

// Partial is the contribution of a set of fluid cells to the average x
// velocity.
type Partial struct {
	SumUX float64
	Cells int
}

// Add combines two partials.
func (p Partial) Add(o Partial) Partial {
	return Partial{
		SumUX: p.SumUX + o.SumUX,
		Cells: p.Cells + o.Cells,
	}
}

// Average returns the mean x velocity. A partial with no fluid cell averages
// to zero.
func (p Partial) Average() float64 {
	if p.Cells == 0 {
		return 0
	}

	return p.SumUX / float64(p.Cells)
}

func partialOfRow(cells []Cell, blocked []bool, globalRow int) (Partial, error) {
	var p Partial

	for col := range cells {
		if blocked[col] {
			continue
		}

		rho := cells[col].Density()
		if !densityIsUsable(rho) {
			return Partial{}, &DensityError{Row: globalRow, Col: col, Density: rho}
		}

		ux, _ := cells[col].Velocity(rho)
		p.SumUX += float64(ux)
		p.Cells++
	}

	return p, nil
}

// SumPartials combines per-row partials given in global row order. The
// result depends only on the row values, not on how rows were grouped.
func SumPartials(rows []Partial) Partial {
	sums := make([]float64, len(rows))
	cells := 0

	for i, r := range rows {
		sums[i] = r.SumUX
		cells += r.Cells
	}

	return Partial{SumUX: floats.Sum(sums), Cells: cells}
}
