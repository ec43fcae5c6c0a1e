package lattice

import "math"

// A Cell holds the distribution of one lattice site, indexed by speed.
type Cell [NumSpeeds]float32

// RestCell returns the equilibrium distribution of a fluid at rest.
func RestCell(density float32) Cell {
	var c Cell
	for d := range Directions {
		c[d] = density * Directions[d].Weight
	}

	return c
}

// Density returns the sum of all speeds.
func (c *Cell) Density() float32 {
	var rho float32
	for d := 0; d < NumSpeeds; d++ {
		rho += c[d]
	}

	return rho
}

// Velocity returns the macroscopic velocity given the cell density.
func (c *Cell) Velocity(rho float32) (ux, uy float32) {
	for d := 1; d < NumSpeeds; d++ {
		switch Directions[d].DX {
		case 1:
			ux += c[d]
		case -1:
			ux -= c[d]
		}

		switch Directions[d].DY {
		case 1:
			uy += c[d]
		case -1:
			uy -= c[d]
		}
	}

	return ux / rho, uy / rho
}

// Equilibrium returns the BGK equilibrium distribution for the given density
// and velocity.
func Equilibrium(rho, ux, uy float32) Cell {
	var eq Cell

	uSq := 1.5 * (ux*ux + uy*uy)
	for d, dir := range Directions {
		eu := float32(dir.DX)*ux + float32(dir.DY)*uy
		eq[d] = dir.Weight * rho * (1 + 3*eu + 4.5*eu*eu - uSq)
	}

	return eq
}

// Relax moves every speed of c towards eq by omega.
func (c *Cell) Relax(eq *Cell, omega float32) {
	for d := 0; d < NumSpeeds; d++ {
		c[d] += omega * (eq[d] - c[d])
	}
}

// Bounced returns the distribution with every moving speed swapped with its
// opposite. The rest speed is kept.
func (c *Cell) Bounced() Cell {
	var out Cell

	out[Rest] = c[Rest]
	for d := 1; d < NumSpeeds; d++ {
		out[d] = c[Directions[d].Opposite]
	}

	return out
}

func densityIsUsable(rho float32) bool {
	f := float64(rho)
	return rho != 0 && !math.IsNaN(f) && !math.IsInf(f, 0)
}
