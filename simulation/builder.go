package simulation

import (
	"fmt"
	"runtime"

	"github.com/sarchlab/d2q9/comm"
	"github.com/sarchlab/d2q9/datarecording"
	"github.com/sarchlab/d2q9/hooking"
	"github.com/sarchlab/d2q9/id"
	"github.com/sarchlab/d2q9/lattice"
	"github.com/sarchlab/d2q9/monitoring"
	"github.com/sarchlab/d2q9/partition"
	"github.com/sarchlab/d2q9/tracing"
	"github.com/sarchlab/d2q9/worker"
)

// Builder can be used to build a simulation.
type Builder struct {
	params        lattice.Params
	mask          *lattice.ObstacleMask
	workers       int
	threads       int
	monitor       *monitoring.Monitor
	dataRecorder  datarecording.DataRecorder
	tracers       []tracing.Tracer
	endpointHooks []hooking.Hook
}

// MakeBuilder creates a new builder.
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

// WithObstacles sets the obstacle mask. Without it the lattice has no
// obstacle.
func (b Builder) WithObstacles(mask *lattice.ObstacleMask) Builder {
	b.mask = mask
	return b
}

// WithWorkers sets the number of ranks. Zero uses one rank per CPU, capped
// by the number of rows.
func (b Builder) WithWorkers(n int) Builder {
	b.workers = n
	return b
}

// WithThreads sets the number of goroutines each rank steps its rows with.
func (b Builder) WithThreads(n int) Builder {
	b.threads = n
	return b
}

// WithMonitor attaches a monitor. The monitor server is not started.
func (b Builder) WithMonitor(m *monitoring.Monitor) Builder {
	b.monitor = m
	return b
}

// WithDataRecorder sets where the results are recorded.
func (b Builder) WithDataRecorder(r datarecording.DataRecorder) Builder {
	b.dataRecorder = r
	return b
}

// WithTracer adds a tracer that collects the tasks of every worker.
func (b Builder) WithTracer(t tracing.Tracer) Builder {
	b.tracers = append(b.tracers[:len(b.tracers):len(b.tracers)], t)
	return b
}

// WithEndpointHook adds a hook to every endpoint of the network.
func (b Builder) WithEndpointHook(h hooking.Hook) Builder {
	b.endpointHooks = append(
		b.endpointHooks[:len(b.endpointHooks):len(b.endpointHooks)], h)
	return b
}

func (b Builder) numWorkers() int {
	if b.workers > 0 {
		return b.workers
	}

	return max(1, min(runtime.GOMAXPROCS(0), b.params.NY))
}

// Build builds the simulation.
func (b Builder) Build(name string) (*Simulation, error) {
	if err := b.params.Validate(); err != nil {
		return nil, err
	}

	size := b.numWorkers()
	if _, err := partition.Split(b.params.NY, size); err != nil {
		return nil, err
	}

	mask, err := b.obstacles()
	if err != nil {
		return nil, err
	}

	grid, err := lattice.NewGrid(b.params)
	if err != nil {
		return nil, err
	}

	s := &Simulation{
		id:           id.RunID(),
		name:         name,
		params:       b.params,
		mask:         mask,
		initialGrid:  grid,
		gate:         NewGate(),
		velocityLog:  worker.NewVelocityLog(b.params.MaxIters),
		monitor:      b.monitor,
		dataRecorder: b.dataRecorder,
	}

	s.network = comm.MakeBuilder().
		WithSize(size).
		Build(name + ".Network")

	for _, ep := range s.network.Endpoints() {
		for _, h := range b.endpointHooks {
			ep.AcceptHook(h)
		}
	}

	if err := b.buildWorkers(s); err != nil {
		return nil, err
	}

	if b.monitor != nil {
		s.registerWithMonitor()
	}

	return s, nil
}

func (b Builder) obstacles() (*lattice.ObstacleMask, error) {
	if b.mask == nil {
		return lattice.NewObstacleMask(b.params.NX, b.params.NY, nil)
	}

	if b.mask.NX != b.params.NX || b.mask.NY != b.params.NY {
		return nil, fmt.Errorf("%w: obstacles %dx%d do not match grid %dx%d",
			lattice.ErrInvalidParams, b.mask.NX, b.mask.NY,
			b.params.NX, b.params.NY)
	}

	return b.mask, nil
}

func (b Builder) buildWorkers(s *Simulation) error {
	wb := worker.MakeBuilder().
		WithParams(b.params).
		WithInitialState(s.initialGrid, s.mask).
		WithThreads(b.threads).
		WithGate(s.gate).
		WithVelocityLog(s.velocityLog)

	for rank, ep := range s.network.Endpoints() {
		w, err := wb.
			WithEndpoint(ep).
			Build(fmt.Sprintf("%s.Worker[%d]", s.name, rank))
		if err != nil {
			return err
		}

		for _, t := range b.tracers {
			tracing.CollectTrace(w, t)
		}

		s.workers = append(s.workers, w)
	}

	return nil
}
