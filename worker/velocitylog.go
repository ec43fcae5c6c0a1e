package worker

import "sync"

// VelocityLog is the ordered list of average velocities, one per iteration.
// The root rank appends to it; readers may look at it while the run goes on.
type VelocityLog struct {
	lock   sync.RWMutex
	values []float64
}

// NewVelocityLog creates an empty log with room for n iterations.
func NewVelocityLog(n int) *VelocityLog {
	return &VelocityLog{values: make([]float64, 0, n)}
}

// Append adds the value of the next iteration.
func (l *VelocityLog) Append(v float64) {
	l.lock.Lock()
	l.values = append(l.values, v)
	l.lock.Unlock()
}

// Len returns the number of iterations logged.
func (l *VelocityLog) Len() int {
	l.lock.RLock()
	defer l.lock.RUnlock()

	return len(l.values)
}

// Values returns a copy of all logged values.
func (l *VelocityLog) Values() []float64 {
	return l.Velocities(0)
}

// Velocities returns a copy of the values from iteration from on.
func (l *VelocityLog) Velocities(from int) []float64 {
	l.lock.RLock()
	defer l.lock.RUnlock()

	from = max(from, 0)
	if from >= len(l.values) {
		return nil
	}

	return append([]float64(nil), l.values[from:]...)
}

// Last returns the most recent value, or 0 for an empty log.
func (l *VelocityLog) Last() float64 {
	l.lock.RLock()
	defer l.lock.RUnlock()

	if len(l.values) == 0 {
		return 0
	}

	return l.values[len(l.values)-1]
}
