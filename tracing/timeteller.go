package tracing

import (
	"sync"
	"time"
)

// TimeInSec is a time stamp in seconds.
type TimeInSec float64

// A TimeTeller can tell the current time.
type TimeTeller interface {
	CurrentTime() TimeInSec
}

// WallClock tells the seconds elapsed since it was created.
type WallClock struct {
	once  sync.Once
	start time.Time
}

// NewWallClock creates a clock that starts now.
func NewWallClock() *WallClock {
	c := &WallClock{}
	c.once.Do(func() { c.start = time.Now() })

	return c
}

// CurrentTime returns the seconds elapsed since the clock started.
func (c *WallClock) CurrentTime() TimeInSec {
	c.once.Do(func() { c.start = time.Now() })
	return TimeInSec(time.Since(c.start).Seconds())
}
