// Package simulation assembles the ranks of a run, drives them to completion
// and collects the result.
package simulation

import (
	"context"
	"errors"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/sarchlab/d2q9/comm"
	"github.com/sarchlab/d2q9/datarecording"
	"github.com/sarchlab/d2q9/hooking"
	"github.com/sarchlab/d2q9/lattice"
	"github.com/sarchlab/d2q9/monitoring"
	"github.com/sarchlab/d2q9/worker"
)

// ErrAlreadyRun is returned when a simulation is run a second time.
var ErrAlreadyRun = errors.New("simulation already run")

// A Simulation is a ready-to-run set of ranks connected by a network.
type Simulation struct {
	id   string
	name string

	params      lattice.Params
	mask        *lattice.ObstacleMask
	initialGrid *lattice.Grid

	network     *comm.Network
	workers     []*worker.Worker
	gate        *Gate
	velocityLog *worker.VelocityLog

	monitor      *monitoring.Monitor
	dataRecorder datarecording.DataRecorder

	started bool
}

// ID returns the unique ID of the run.
func (s *Simulation) ID() string {
	return s.id
}

// Name returns the name of the simulation.
func (s *Simulation) Name() string {
	return s.name
}

// Params returns the run parameters.
func (s *Simulation) Params() lattice.Params {
	return s.params
}

// Workers returns the workers in rank order.
func (s *Simulation) Workers() []*worker.Worker {
	return s.workers
}

// Network returns the network connecting the workers.
func (s *Simulation) Network() *comm.Network {
	return s.network
}

// Gate returns the gate that pauses and continues the run.
func (s *Simulation) Gate() *Gate {
	return s.gate
}

// VelocityLog returns the average velocity log filled by the root rank.
func (s *Simulation) VelocityLog() *worker.VelocityLog {
	return s.velocityLog
}

// GetMonitor returns the monitor used in the simulation.
func (s *Simulation) GetMonitor() *monitoring.Monitor {
	return s.monitor
}

// GetDataRecorder returns the data recorder used in the simulation.
func (s *Simulation) GetDataRecorder() datarecording.DataRecorder {
	return s.dataRecorder
}

func (s *Simulation) registerWithMonitor() {
	s.monitor.RegisterController(s.gate)
	s.monitor.RegisterVelocitySource(s.velocityLog)

	for _, w := range s.workers {
		s.monitor.RegisterWorker(w)
	}
}

// Run steps every rank until all iterations are done and returns the
// assembled result. The first error of any rank stops all the others.
func (s *Simulation) Run(ctx context.Context) (*Result, error) {
	if s.started {
		return nil, ErrAlreadyRun
	}

	s.started = true
	start := time.Now()

	if s.monitor != nil {
		bar := s.monitor.CreateProgressBar(s.name+" iterations",
			uint64(s.params.MaxIters))
		defer s.monitor.CompleteProgressBar(bar)

		s.workers[0].AcceptHook(hooking.HookFunc(func(ctx hooking.HookCtx) {
			if ctx.Pos == worker.HookPosIterationEnd {
				bar.IncrementFinished(1)
			}
		}))
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, w := range s.workers {
		w := w
		g.Go(func() error {
			err := w.Run(gctx)
			if err != nil {
				s.network.Abort(err)
			}

			return err
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	result, err := newResult(s, s.workers[0].FinalGrid(), time.Since(start))
	if err != nil {
		return nil, err
	}

	if s.dataRecorder != nil {
		result.Record(s.dataRecorder)
	}

	return result, nil
}
