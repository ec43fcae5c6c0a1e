package worker

import (
	"context"
	"fmt"

	"github.com/sarchlab/d2q9/comm"
	"github.com/sarchlab/d2q9/lattice"
	"github.com/sarchlab/d2q9/partition"
)

// gather collects the owned rows of every rank on the root. The root gets the
// assembled grid; the other ranks get nil.
func (w *Worker) gather(ctx context.Context) (*lattice.Grid, error) {
	b := w.block
	msg := newBlockMsg(b.Start, b.OwnedCells())

	msgs, err := w.ep.Gather(ctx, 0, comm.TagGather, msg)
	if err != nil || !w.rc.IsRoot() {
		return nil, err
	}

	p := w.rc.Params
	grid := &lattice.Grid{
		NX:    p.NX,
		NY:    p.NY,
		Cells: make([]lattice.Cell, p.NX*p.NY),
	}

	for rank, m := range msgs {
		if err := w.install(grid, rank, m); err != nil {
			return nil, err
		}
	}

	return grid, nil
}

func (w *Worker) install(grid *lattice.Grid, rank int, m comm.Msg) error {
	bm, ok := m.(*BlockMsg)
	if !ok {
		return fmt.Errorf("%w: gather message of type %T from rank %d",
			comm.ErrProtocol, m, rank)
	}

	want, err := partition.RangeOf(grid.NY, w.rc.Size, rank)
	if err != nil {
		return err
	}

	if bm.FirstRow != want.Start || len(bm.Cells) != want.Rows()*grid.NX {
		return fmt.Errorf("%w: rank %d sent %d cells from row %d, "+
			"expecting rows %s",
			comm.ErrBufferSize, rank, len(bm.Cells), bm.FirstRow, want)
	}

	copy(grid.Cells[want.Start*grid.NX:], bm.Cells)

	return nil
}
