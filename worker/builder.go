package worker

import (
	"fmt"

	"github.com/sarchlab/d2q9/comm"
	"github.com/sarchlab/d2q9/halo"
	"github.com/sarchlab/d2q9/lattice"
)

// Builder can build workers.
type Builder struct {
	params  lattice.Params
	grid    *lattice.Grid
	mask    *lattice.ObstacleMask
	ep      *comm.Endpoint
	threads int
	gate    Gate
	log     *VelocityLog
}

// MakeBuilder creates a builder with default parameters.
func MakeBuilder() Builder {
	return Builder{
		threads: 1,
	}
}

// WithParams sets the run parameters.
func (b Builder) WithParams(p lattice.Params) Builder {
	b.params = p
	return b
}

// WithInitialState sets the initial grid and the obstacles. The worker copies
// the rows it needs.
func (b Builder) WithInitialState(
	g *lattice.Grid,
	mask *lattice.ObstacleMask,
) Builder {
	b.grid = g
	b.mask = mask

	return b
}

// WithEndpoint sets the endpoint the worker talks through. Its rank is the
// rank of the worker.
func (b Builder) WithEndpoint(ep *comm.Endpoint) Builder {
	b.ep = ep
	return b
}

// WithThreads sets how many goroutines step the rows of the block.
func (b Builder) WithThreads(n int) Builder {
	b.threads = n
	return b
}

// WithGate sets the gate passed at the start of every iteration.
func (b Builder) WithGate(g Gate) Builder {
	b.gate = g
	return b
}

// WithVelocityLog sets the log the root appends averages to.
func (b Builder) WithVelocityLog(log *VelocityLog) Builder {
	b.log = log
	return b
}

// Build creates a worker.
func (b Builder) Build(name string) (*Worker, error) {
	b.mustBeComplete()

	rc, err := NewRankContext(b.params, b.ep.Size(), b.ep.Rank())
	if err != nil {
		return nil, err
	}

	if b.grid.NX != b.params.NX || b.grid.NY != b.params.NY {
		return nil, fmt.Errorf("%w: grid %dx%d does not match parameters %dx%d",
			lattice.ErrInvalidParams, b.grid.NX, b.grid.NY,
			b.params.NX, b.params.NY)
	}

	block, err := lattice.NewBlock(b.grid, b.mask, rc.Range.Start, rc.Range.Rows())
	if err != nil {
		return nil, err
	}

	log := b.log
	if rc.IsRoot() && log == nil {
		log = NewVelocityLog(b.params.MaxIters)
	}

	w := &Worker{
		name:      name,
		rc:        rc,
		block:     block,
		ep:        b.ep,
		exchanger: halo.NewExchanger(b.ep, block, rc.South, rc.North),
		reducer:   NewReducer(b.ep, b.params.NY, log),
		log:       log,
		threads:   max(b.threads, 1),
		gate:      b.gate,
		inletRows: block.LocalRowsOf(b.params.InletRow),
	}
	w.w1, w.w2 = b.params.ForcingWeights()

	return w, nil
}

func (b Builder) mustBeComplete() {
	if b.ep == nil {
		panic("worker needs an endpoint")
	}

	if b.grid == nil || b.mask == nil {
		panic("worker needs an initial state")
	}
}
