// Package worker runs one rank of the solver: it owns a row block, keeps its
// halo rows fresh, steps the lattice and takes part in the reductions.
package worker

import (
	"fmt"

	"github.com/sarchlab/d2q9/lattice"
	"github.com/sarchlab/d2q9/partition"
)

// RankContext is everything a rank knows about its place in the run. It is
// computed locally from the parameters, without any communication.
type RankContext struct {
	Rank   int
	Size   int
	Params lattice.Params
	Range  partition.RowRange

	// South and North are the ranks owning the rows just below and just above
	// the range, with wraparound.
	South int
	North int

	// InletOwner is the rank that owns the inlet row.
	InletOwner int
}

// NewRankContext computes the context of one rank.
func NewRankContext(p lattice.Params, size, rank int) (RankContext, error) {
	if err := p.Validate(); err != nil {
		return RankContext{}, err
	}

	r, err := partition.RangeOf(p.NY, size, rank)
	if err != nil {
		return RankContext{}, err
	}

	south, north, err := partition.Neighbors(p.NY, size, rank)
	if err != nil {
		return RankContext{}, err
	}

	inletOwner, err := partition.OwnerOf(p.NY, size, p.InletRow)
	if err != nil {
		return RankContext{}, err
	}

	ctx := RankContext{
		Rank:       rank,
		Size:       size,
		Params:     p,
		Range:      r,
		South:      south,
		North:      north,
		InletOwner: inletOwner,
	}

	return ctx, nil
}

// IsRoot tells if the rank collects reductions and the final state.
func (c RankContext) IsRoot() bool {
	return c.Rank == 0
}

// OwnsInlet tells if the rank owns the inlet row.
func (c RankContext) OwnsInlet() bool {
	return c.Rank == c.InletOwner
}

func (c RankContext) String() string {
	return fmt.Sprintf("rank %d/%d rows %s", c.Rank, c.Size, c.Range)
}
