package simulation

import (
	"time"

	"github.com/sarchlab/d2q9/datarecording"
	"github.com/sarchlab/d2q9/lattice"
)

// A Result is the outcome of a completed run as seen by the root rank.
type Result struct {
	Params  lattice.Params
	Workers int
	Elapsed time.Duration

	grid    *lattice.Grid
	mask    *lattice.ObstacleMask
	avVels  []float64
	records []lattice.CellRecord
}

func newResult(
	s *Simulation,
	grid *lattice.Grid,
	elapsed time.Duration,
) (*Result, error) {
	records, err := grid.Records(s.params, s.mask)
	if err != nil {
		return nil, err
	}

	r := &Result{
		Params:  s.params,
		Workers: len(s.workers),
		Elapsed: elapsed,
		grid:    grid,
		mask:    s.mask,
		avVels:  s.velocityLog.Values(),
		records: records,
	}

	return r, nil
}

// AverageVelocities returns the average velocity of every iteration.
func (r *Result) AverageVelocities() []float64 {
	return append([]float64(nil), r.avVels...)
}

// FinalCells returns the macroscopic view of every site, in row-major order.
func (r *Result) FinalCells() []lattice.CellRecord {
	return append([]lattice.CellRecord(nil), r.records...)
}

// Grid returns the final lattice.
func (r *Result) Grid() *lattice.Grid {
	return r.grid
}

// Obstacles returns the obstacle mask of the run.
func (r *Result) Obstacles() *lattice.ObstacleMask {
	return r.mask
}

// FinalAverageVelocity returns the average velocity of the final state.
func (r *Result) FinalAverageVelocity() (float64, error) {
	if len(r.avVels) > 0 {
		return r.avVels[len(r.avVels)-1], nil
	}

	return r.grid.AverageVelocity(r.mask)
}

// Reynolds returns the Reynolds number of the final state.
func (r *Result) Reynolds() (float64, error) {
	av, err := r.FinalAverageVelocity()
	if err != nil {
		return 0, err
	}

	return r.Params.Reynolds(av), nil
}

// TotalDensity returns the sum of all speeds of the final state.
func (r *Result) TotalDensity() float64 {
	return r.grid.TotalDensity()
}

type avVelsEntry struct {
	Iteration  int
	AvVelocity float64
}

type finalStateEntry struct {
	Row      int
	Col      int
	UX       float64
	UY       float64
	Pressure float64
	Obstacle bool
}

type summaryEntry struct {
	NX           int
	NY           int
	MaxIters     int
	Workers      int
	Reynolds     float64
	TotalDensity float64
	ElapsedSec   float64
}

// Record writes the result into the av_vels, final_state and summary
// tables.
func (r *Result) Record(recorder datarecording.DataRecorder) {
	recorder.CreateTable("av_vels", avVelsEntry{})
	for i, v := range r.avVels {
		recorder.InsertData("av_vels", avVelsEntry{Iteration: i, AvVelocity: v})
	}

	recorder.CreateTable("final_state", finalStateEntry{})
	for _, c := range r.records {
		recorder.InsertData("final_state", finalStateEntry{
			Row:      c.Row,
			Col:      c.Col,
			UX:       c.UX,
			UY:       c.UY,
			Pressure: c.Pressure,
			Obstacle: c.IsObstacle,
		})
	}

	reynolds, _ := r.Reynolds()

	recorder.CreateTable("summary", summaryEntry{})
	recorder.InsertData("summary", summaryEntry{
		NX:           r.Params.NX,
		NY:           r.Params.NY,
		MaxIters:     r.Params.MaxIters,
		Workers:      r.Workers,
		Reynolds:     reynolds,
		TotalDensity: r.TotalDensity(),
		ElapsedSec:   r.Elapsed.Seconds(),
	})

	recorder.Flush()
}
