package simulation

import (
	"context"
	"sync"
)

// A Gate lets the workers through unless the run is paused.
type Gate struct {
	lock   sync.Mutex
	paused bool
	resume chan struct{}
}

// NewGate creates an open gate.
func NewGate() *Gate {
	return &Gate{}
}

// Pause closes the gate. Workers stop at the start of their next iteration.
func (g *Gate) Pause() {
	g.lock.Lock()
	defer g.lock.Unlock()

	if g.paused {
		return
	}

	g.paused = true
	g.resume = make(chan struct{})
}

// Continue opens the gate and releases the waiting workers.
func (g *Gate) Continue() {
	g.lock.Lock()
	defer g.lock.Unlock()

	if !g.paused {
		return
	}

	g.paused = false
	close(g.resume)
}

// IsPaused tells if the gate is closed.
func (g *Gate) IsPaused() bool {
	g.lock.Lock()
	defer g.lock.Unlock()

	return g.paused
}

// Wait returns once the gate is open or the context is done.
func (g *Gate) Wait(ctx context.Context) error {
	g.lock.Lock()
	if !g.paused {
		g.lock.Unlock()
		return nil
	}

	resume := g.resume
	g.lock.Unlock()

	select {
	case <-resume:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
