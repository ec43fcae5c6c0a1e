package tracing

import (
	"sync"
)

// A PhaseTimer measures how long the tasks that pass its filter take. Tasks of
// different ranks may overlap; each one is measured on its own and the
// durations are summed.
type PhaseTimer struct {
	clock  TimeTeller
	filter TaskFilter

	lock    sync.Mutex
	started map[string]TimeInSec
	count   uint64
	total   TimeInSec
	longest TimeInSec
}

// NewPhaseTimer creates a PhaseTimer that reads time from clock.
func NewPhaseTimer(clock TimeTeller, filter TaskFilter) *PhaseTimer {
	return &PhaseTimer{
		clock:   clock,
		filter:  filter,
		started: make(map[string]TimeInSec),
	}
}

// StartTask remembers when a matching task started.
func (t *PhaseTimer) StartTask(task Task) {
	now := t.clock.CurrentTime()

	if !t.filter(task) {
		return
	}

	t.lock.Lock()
	defer t.lock.Unlock()

	t.started[task.ID] = now
}

// EndTask closes a task opened by StartTask. Unknown tasks are ignored.
func (t *PhaseTimer) EndTask(task Task) {
	now := t.clock.CurrentTime()

	t.lock.Lock()
	defer t.lock.Unlock()

	start, ok := t.started[task.ID]
	if !ok {
		return
	}

	delete(t.started, task.ID)

	d := now - start
	t.count++
	t.total += d

	if d > t.longest {
		t.longest = d
	}
}

// Count returns the number of finished tasks.
func (t *PhaseTimer) Count() uint64 {
	t.lock.Lock()
	defer t.lock.Unlock()

	return t.count
}

// Total returns the summed duration of all finished tasks.
func (t *PhaseTimer) Total() TimeInSec {
	t.lock.Lock()
	defer t.lock.Unlock()

	return t.total
}

// Mean returns the average duration, or 0 before any task has finished.
func (t *PhaseTimer) Mean() TimeInSec {
	t.lock.Lock()
	defer t.lock.Unlock()

	if t.count == 0 {
		return 0
	}

	return t.total / TimeInSec(t.count)
}

// Longest returns the longest single duration seen.
func (t *PhaseTimer) Longest() TimeInSec {
	t.lock.Lock()
	defer t.lock.Unlock()

	return t.longest
}

// InFlight returns the number of tasks started but not yet ended.
func (t *PhaseTimer) InFlight() int {
	t.lock.Lock()
	defer t.lock.Unlock()

	return len(t.started)
}
