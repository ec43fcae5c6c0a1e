package worker

import (
	"context"
	"fmt"
	"strconv"
	"sync/atomic"

	"github.com/sarchlab/d2q9/comm"
	"github.com/sarchlab/d2q9/halo"
	"github.com/sarchlab/d2q9/hooking"
	"github.com/sarchlab/d2q9/id"
	"github.com/sarchlab/d2q9/lattice"
	"github.com/sarchlab/d2q9/tracing"
)

// HookPosIterationEnd marks that a worker completed an iteration. The hook
// item is the number of completed iterations.
var HookPosIterationEnd = &hooking.HookPos{Name: "Iteration End"}

// A Gate is passed by every worker at the start of every iteration.
type Gate interface {
	Wait(ctx context.Context) error
}

// A Worker is one rank of the solver.
type Worker struct {
	hooking.HookableBase

	name      string
	rc        RankContext
	block     *lattice.Block
	ep        *comm.Endpoint
	exchanger *halo.Exchanger
	reducer   *Reducer
	log       *VelocityLog
	threads   int
	gate      Gate

	inletRows []int
	w1, w2    float32

	iteration atomic.Int64
	final     *lattice.Grid
}

// Name returns the name of the worker.
func (w *Worker) Name() string {
	return w.name
}

// Context returns the rank context of the worker.
func (w *Worker) Context() RankContext {
	return w.rc
}

// Block returns the block the worker steps.
func (w *Worker) Block() *lattice.Block {
	return w.block
}

// VelocityLog returns the average velocity log. It is nil on non-root
// ranks.
func (w *Worker) VelocityLog() *VelocityLog {
	return w.log
}

// Iteration returns the number of completed iterations.
func (w *Worker) Iteration() int {
	return int(w.iteration.Load())
}

// FinalGrid returns the assembled final state. It is only set on the root,
// after Run returns.
func (w *Worker) FinalGrid() *lattice.Grid {
	return w.final
}

// Run steps the block for all iterations and gathers the final state on the
// root.
func (w *Worker) Run(ctx context.Context) error {
	for iter := 0; iter < w.rc.Params.MaxIters; iter++ {
		if err := w.Step(ctx, iter); err != nil {
			return fmt.Errorf("%s: iteration %d: %w", w.name, iter, err)
		}
	}

	grid, err := w.gather(ctx)
	if err != nil {
		return fmt.Errorf("%s: gathering final state: %w", w.name, err)
	}

	w.final = grid

	return nil
}

// Step runs one timestep: halo exchange, inlet forcing and streaming,
// rebound, collision and the average velocity reduction.
func (w *Worker) Step(ctx context.Context, iter int) error {
	if w.gate != nil {
		if err := w.gate.Wait(ctx); err != nil {
			return err
		}
	}

	iterTask := w.startTask("", "iteration", strconv.Itoa(iter))

	phases := []struct {
		kind string
		run  func(ctx context.Context, iter int) error
	}{
		{"halo", w.exchangeHalo},
		{"stream", w.stream},
		{"rebound", w.rebound},
		{"collide", w.collide},
		{"reduce", w.reduce},
	}

	for _, phase := range phases {
		task := w.startTask(iterTask, phase.kind, strconv.Itoa(iter))

		if err := phase.run(ctx, iter); err != nil {
			return err
		}

		w.endTask(task)
	}

	w.endTask(iterTask)

	done := w.iteration.Add(1)
	w.InvokeHook(hooking.HookCtx{
		Domain: w,
		Pos:    HookPosIterationEnd,
		Item:   int(done),
	})

	return nil
}

func (w *Worker) exchangeHalo(ctx context.Context, iter int) error {
	exchange, err := w.exchanger.Start(ctx, iter)
	if err != nil {
		return err
	}

	return exchange.Wait(ctx)
}

func (w *Worker) stream(_ context.Context, _ int) error {
	for _, local := range w.inletRows {
		w.block.Accelerate(local, w.w1, w.w2)
	}

	return forEachChunk(w.threads, 0, w.block.LocalRows(),
		func(lo, hi int) error {
			w.block.StreamRows(lo, hi)
			return nil
		})
}

func (w *Worker) rebound(_ context.Context, _ int) error {
	return w.ownedChunks(func(lo, hi int) error {
		w.block.ReboundRows(lo, hi)
		return nil
	})
}

func (w *Worker) collide(_ context.Context, _ int) error {
	omega := w.rc.Params.Omega

	return w.ownedChunks(func(lo, hi int) error {
		return w.block.CollideRows(lo, hi, omega)
	})
}

func (w *Worker) reduce(ctx context.Context, iter int) error {
	b := w.block
	rows := make([]lattice.Partial, b.Rows)

	err := w.ownedChunks(func(lo, hi int) error {
		for local := lo; local < hi; local++ {
			p, err := b.RowPartial(local)
			if err != nil {
				return err
			}

			rows[local-b.FirstOwned()] = p
		}

		return nil
	})
	if err != nil {
		return err
	}

	return w.reducer.Reduce(ctx, iter, b.Start, rows)
}

func (w *Worker) ownedChunks(fn func(lo, hi int) error) error {
	return forEachChunk(w.threads,
		w.block.FirstOwned(), w.block.LastOwned()+1, fn)
}

func (w *Worker) startTask(parentID, kind, what string) string {
	if w.NumHooks() == 0 {
		return ""
	}

	taskID := id.Generate()
	tracing.StartTask(taskID, parentID, w, kind, what, nil)

	return taskID
}

func (w *Worker) endTask(taskID string) {
	if taskID == "" {
		return
	}

	tracing.EndTask(taskID, w)
}

// Status is a snapshot of a worker for inspection.
type Status struct {
	Name       string
	Rank       int
	Size       int
	FirstRow   int
	Rows       int
	Iteration  int
	MaxIters   int
	OwnsInlet  bool
	South      int
	North      int
	InletLocal []int
}

// Status returns a snapshot of the worker.
func (w *Worker) Status() any {
	return &Status{
		Name:       w.name,
		Rank:       w.rc.Rank,
		Size:       w.rc.Size,
		FirstRow:   w.rc.Range.Start,
		Rows:       w.rc.Range.Rows(),
		Iteration:  w.Iteration(),
		MaxIters:   w.rc.Params.MaxIters,
		OwnsInlet:  w.rc.OwnsInlet(),
		South:      w.rc.South,
		North:      w.rc.North,
		InletLocal: append([]int(nil), w.inletRows...),
	}
}
