// Package lattice holds the D2Q9 lattice state and the per-cell steps that
// advance it: inlet forcing, streaming, rebound and BGK collision.
package lattice

// NumSpeeds is the number of discrete velocities of the D2Q9 stencil.
const NumSpeeds = 9

// Indices of the discrete velocities.
//
//	6 2 5
//	 \|/
//	3-0-1
//	 /|\
//	7 4 8
const (
	Rest = iota
	East
	North
	West
	South
	NorthEast
	NorthWest
	SouthWest
	SouthEast
)

// Direction describes one discrete velocity of the stencil.
type Direction struct {
	Name     string
	DX, DY   int
	Weight   float32
	Opposite int
}

// Directions is the D2Q9 stencil table, indexed by speed.
var Directions = [NumSpeeds]Direction{
	Rest:      {Name: "rest", DX: 0, DY: 0, Weight: 4.0 / 9.0, Opposite: Rest},
	East:      {Name: "e", DX: 1, DY: 0, Weight: 1.0 / 9.0, Opposite: West},
	North:     {Name: "n", DX: 0, DY: 1, Weight: 1.0 / 9.0, Opposite: South},
	West:      {Name: "w", DX: -1, DY: 0, Weight: 1.0 / 9.0, Opposite: East},
	South:     {Name: "s", DX: 0, DY: -1, Weight: 1.0 / 9.0, Opposite: North},
	NorthEast: {Name: "ne", DX: 1, DY: 1, Weight: 1.0 / 36.0, Opposite: SouthWest},
	NorthWest: {Name: "nw", DX: -1, DY: 1, Weight: 1.0 / 36.0, Opposite: SouthEast},
	SouthWest: {Name: "sw", DX: -1, DY: -1, Weight: 1.0 / 36.0, Opposite: NorthEast},
	SouthEast: {Name: "se", DX: 1, DY: -1, Weight: 1.0 / 36.0, Opposite: NorthWest},
}
