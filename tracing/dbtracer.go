package tracing

import (
	"sync"

	"github.com/sarchlab/d2q9/datarecording"
	"github.com/tebeka/atexit"
)

const traceTable = "trace"

type taskTableEntry struct {
	ID        string
	ParentID  string
	Kind      string
	What      string
	Location  string
	StartTime float64
	EndTime   float64
	Duration  float64
}

// DBTracer writes every finished task as one row of the trace table.
type DBTracer struct {
	clock    TimeTeller
	recorder datarecording.DataRecorder

	mu   sync.Mutex
	open map[string]Task
}

// NewDBTracer creates the trace table in recorder and returns a tracer that
// fills it. Buffered rows are flushed at exit.
func NewDBTracer(
	clock TimeTeller,
	recorder datarecording.DataRecorder,
) *DBTracer {
	recorder.CreateTable(traceTable, taskTableEntry{})

	t := &DBTracer{
		clock:    clock,
		recorder: recorder,
		open:     make(map[string]Task),
	}

	atexit.Register(t.Terminate)

	return t
}

// StartTask opens a task. Tasks without an ID, kind, what or location panic.
func (t *DBTracer) StartTask(task Task) {
	mustBeSet("task ID", task.ID)
	mustBeSet("task kind", task.Kind)
	mustBeSet("task what", task.What)
	mustBeSet("task location", task.Where)

	task.StartTime = t.clock.CurrentTime()

	t.mu.Lock()
	t.open[task.ID] = task
	t.mu.Unlock()
}

// EndTask closes a task and hands it to the recorder.
func (t *DBTracer) EndTask(task Task) {
	end := t.clock.CurrentTime()

	t.mu.Lock()
	defer t.mu.Unlock()

	started, ok := t.open[task.ID]
	if !ok {
		return
	}

	delete(t.open, task.ID)

	t.recorder.InsertData(traceTable, taskTableEntry{
		ID:        started.ID,
		ParentID:  started.ParentID,
		Kind:      started.Kind,
		What:      started.What,
		Location:  started.Where,
		StartTime: float64(started.StartTime),
		EndTime:   float64(end),
		Duration:  float64(end - started.StartTime),
	})
}

// NumInflightTasks returns the number of tasks opened but not closed.
func (t *DBTracer) NumInflightTasks() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	return len(t.open)
}

// Terminate forgets the open tasks and flushes what was recorded.
func (t *DBTracer) Terminate() {
	t.mu.Lock()
	defer t.mu.Unlock()

	clear(t.open)
	t.recorder.Flush()
}
