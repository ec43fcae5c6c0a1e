package lattice

import (
	"fmt"
	"math"
)

// Params is the immutable configuration of one run.
type Params struct {
	NX          int
	NY          int
	MaxIters    int
	ReynoldsDim int
	Density     float32
	Accel       float32
	Omega       float32

	// InletRow is the global row that receives the inflow forcing.
	InletRow int
}

// Validate checks that the parameters describe a lattice that can be
// allocated and stepped.
func (p Params) Validate() error {
	if p.NX <= 0 || p.NY <= 0 {
		return fmt.Errorf("%w: grid %dx%d", ErrInvalidParams, p.NX, p.NY)
	}

	if p.NX > math.MaxInt32/NumSpeeds || p.NY > math.MaxInt32/p.NX {
		return fmt.Errorf("%w: grid %dx%d too large", ErrInvalidParams, p.NX, p.NY)
	}

	if p.MaxIters < 0 {
		return fmt.Errorf("%w: maxIters %d", ErrInvalidParams, p.MaxIters)
	}

	if p.Density <= 0 {
		return fmt.Errorf("%w: density %g", ErrInvalidParams, p.Density)
	}

	if p.InletRow < 0 || p.InletRow >= p.NY {
		return fmt.Errorf("%w: inlet row %d outside [0, %d)",
			ErrInvalidParams, p.InletRow, p.NY)
	}

	if p.Omega <= 0 || p.Omega >= 2 {
		return fmt.Errorf("%w: omega %g outside (0, 2)", ErrInvalidParams, p.Omega)
	}

	return nil
}

// ForcingWeights returns the amounts moved from the west-side speeds to the
// east-side speeds on the inlet row.
func (p Params) ForcingWeights() (w1, w2 float32) {
	w1 = p.Density * p.Accel / 9.0
	w2 = p.Density * p.Accel / 36.0

	return w1, w2
}

// Viscosity returns the kinematic viscosity implied by omega.
func (p Params) Viscosity() float64 {
	return 1.0 / 6.0 * (2.0/float64(p.Omega) - 1.0)
}

// Reynolds returns the Reynolds number for a given average velocity.
func (p Params) Reynolds(avVelocity float64) float64 {
	return avVelocity * float64(p.ReynoldsDim) / p.Viscosity()
}
