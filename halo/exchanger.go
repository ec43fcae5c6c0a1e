// Package halo keeps the halo rows of a block in sync with the neighbouring
// ranks.
package halo

import (
	"context"
	"fmt"

	"github.com/sarchlab/d2q9/comm"
	"github.com/sarchlab/d2q9/lattice"
)

// An Exchanger swaps boundary rows between a block and its two neighbours.
// The northernmost owned row travels north and becomes the south halo of the
// north neighbour; the southernmost owned row travels south and becomes the
// north halo of the south neighbour.
type Exchanger struct {
	ep    *comm.Endpoint
	block *lattice.Block
	south int
	north int
	buf   []float32
}

// NewExchanger creates an exchanger for a block.
func NewExchanger(
	ep *comm.Endpoint,
	block *lattice.Block,
	south, north int,
) *Exchanger {
	return &Exchanger{
		ep:    ep,
		block: block,
		south: south,
		north: north,
		buf:   make([]float32, 0, lattice.NumSpeeds*block.NX),
	}
}

// South returns the rank below the block.
func (x *Exchanger) South() int {
	return x.south
}

// North returns the rank above the block.
func (x *Exchanger) North() int {
	return x.north
}

// An Exchange is a halo swap in flight.
type Exchange struct {
	x         *Exchanger
	iteration int
	fromSouth *comm.Request
	fromNorth *comm.Request
}

// Start sends the boundary rows of the given iteration and posts the
// receives of the halo rows. The block's halo rows must not be read until
// Wait returns.
func (x *Exchanger) Start(ctx context.Context, iteration int) (*Exchange, error) {
	b := x.block

	x.buf = b.PackRow(b.LastOwned(), x.buf)
	toNorth := comm.Float32MsgBuilder{}.
		WithTrafficClass("halo").
		WithIteration(iteration).
		WithData(x.buf).
		Build()
	if err := x.ep.Send(ctx, x.north, comm.TagNorthbound, toNorth); err != nil {
		return nil, err
	}

	x.buf = b.PackRow(b.FirstOwned(), x.buf)
	toSouth := comm.Float32MsgBuilder{}.
		WithTrafficClass("halo").
		WithIteration(iteration).
		WithData(x.buf).
		Build()
	if err := x.ep.Send(ctx, x.south, comm.TagSouthbound, toSouth); err != nil {
		return nil, err
	}

	e := &Exchange{
		x:         x,
		iteration: iteration,
		fromSouth: x.ep.Irecv(x.south, comm.TagNorthbound),
		fromNorth: x.ep.Irecv(x.north, comm.TagSouthbound),
	}

	return e, nil
}

// Wait blocks until both halo rows arrive and installs them into the block.
func (e *Exchange) Wait(ctx context.Context) error {
	b := e.x.block

	if err := e.install(ctx, e.fromSouth, b.SouthHalo()); err != nil {
		return err
	}

	return e.install(ctx, e.fromNorth, b.NorthHalo())
}

func (e *Exchange) install(
	ctx context.Context,
	req *comm.Request,
	local int,
) error {
	msg, err := req.Wait(ctx)
	if err != nil {
		return err
	}

	row, ok := msg.(*comm.Float32Msg)
	if !ok {
		return fmt.Errorf("%w: halo message of type %T", comm.ErrProtocol, msg)
	}

	if row.Iteration != e.iteration {
		return fmt.Errorf("%w: halo row of iteration %d from rank %d, "+
			"expecting iteration %d",
			comm.ErrProtocol, row.Iteration, row.Src, e.iteration)
	}

	want := lattice.NumSpeeds * e.x.block.NX
	if len(row.Data) != want {
		return fmt.Errorf("%w: halo row from rank %d holds %d values, want %d",
			comm.ErrBufferSize, row.Src, len(row.Data), want)
	}

	return e.x.block.UnpackRow(local, row.Data)
}

// Run is Start followed by Wait.
func (x *Exchanger) Run(ctx context.Context, iteration int) error {
	e, err := x.Start(ctx, iteration)
	if err != nil {
		return err
	}

	return e.Wait(ctx)
}
