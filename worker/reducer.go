package worker

import (
	"context"
	"fmt"

	"github.com/sarchlab/d2q9/comm"
	"github.com/sarchlab/d2q9/lattice"
)

// A Reducer combines the per-row velocity partials of every rank into one
// average per iteration on the root rank.
type Reducer struct {
	ep   *comm.Endpoint
	root int
	ny   int
	log  *VelocityLog

	rows []lattice.Partial
}

// NewReducer creates a reducer. Only the root rank needs a log.
func NewReducer(ep *comm.Endpoint, ny int, log *VelocityLog) *Reducer {
	r := &Reducer{
		ep:   ep,
		root: 0,
		ny:   ny,
		log:  log,
	}

	if ep.Rank() == r.root {
		r.rows = make([]lattice.Partial, ny)
	}

	return r
}

// Reduce contributes the partials of the rows starting at global row
// firstRow. Non-root ranks return once their contribution is sent. The root
// waits for every rank, in rank order, and logs the average.
func (r *Reducer) Reduce(
	ctx context.Context,
	iteration, firstRow int,
	rows []lattice.Partial,
) error {
	if r.ep.Rank() != r.root {
		msg := newPartialMsg(iteration, firstRow, rows)
		return r.ep.Send(ctx, r.root, comm.TagReduce, msg)
	}

	if err := r.place(firstRow, rows, r.root); err != nil {
		return err
	}

	for rank := 0; rank < r.ep.Size(); rank++ {
		if rank == r.root {
			continue
		}

		if err := r.receive(ctx, iteration, rank); err != nil {
			return err
		}
	}

	r.log.Append(lattice.SumPartials(r.rows).Average())

	return nil
}

func (r *Reducer) receive(ctx context.Context, iteration, rank int) error {
	msg, err := r.ep.Recv(ctx, rank, comm.TagReduce)
	if err != nil {
		return err
	}

	pm, ok := msg.(*PartialMsg)
	if !ok {
		return fmt.Errorf("%w: reduction message of type %T from rank %d",
			comm.ErrProtocol, msg, rank)
	}

	if pm.Iteration != iteration {
		return fmt.Errorf("%w: partial of iteration %d from rank %d, "+
			"expecting iteration %d",
			comm.ErrProtocol, pm.Iteration, rank, iteration)
	}

	return r.place(pm.FirstRow, pm.Rows, rank)
}

func (r *Reducer) place(firstRow int, rows []lattice.Partial, rank int) error {
	if firstRow < 0 || firstRow+len(rows) > r.ny {
		return fmt.Errorf("%w: rank %d sent rows [%d, %d) of %d",
			comm.ErrBufferSize, rank, firstRow, firstRow+len(rows), r.ny)
	}

	copy(r.rows[firstRow:], rows)

	return nil
}
