package tracing

import (
	"sort"
	"sync"

	"github.com/sarchlab/d2q9/comm"
	"github.com/sarchlab/d2q9/datarecording"
	"github.com/sarchlab/d2q9/hooking"
)

// TrafficEntry is the traffic between one pair of ranks on one tag.
type TrafficEntry struct {
	Src      int
	Dst      int
	Tag      string
	Messages int
	Bytes    int
}

type trafficKey struct {
	src, dst int
	tag      comm.Tag
}

// A TrafficCounter is a hook that counts the messages sent through the
// endpoints it is attached to.
type TrafficCounter struct {
	lock    sync.Mutex
	entries map[trafficKey]*TrafficEntry
}

// NewTrafficCounter creates an empty counter.
func NewTrafficCounter() *TrafficCounter {
	return &TrafficCounter{
		entries: make(map[trafficKey]*TrafficEntry),
	}
}

// Func counts a sent message.
func (c *TrafficCounter) Func(ctx hooking.HookCtx) {
	if ctx.Pos != comm.HookPosMsgSend {
		return
	}

	meta := ctx.Item.(comm.Msg).Meta()
	key := trafficKey{src: meta.Src, dst: meta.Dst, tag: meta.Tag}

	c.lock.Lock()
	defer c.lock.Unlock()

	e, ok := c.entries[key]
	if !ok {
		e = &TrafficEntry{Src: meta.Src, Dst: meta.Dst, Tag: meta.Tag.String()}
		c.entries[key] = e
	}

	e.Messages++
	e.Bytes += meta.TrafficBytes
}

// Entries returns the counted traffic sorted by source, destination and tag.
func (c *TrafficCounter) Entries() []TrafficEntry {
	c.lock.Lock()
	defer c.lock.Unlock()

	keys := make([]trafficKey, 0, len(c.entries))
	for k := range c.entries {
		keys = append(keys, k)
	}

	sort.Slice(keys, func(i, j int) bool {
		a, b := keys[i], keys[j]
		if a.src != b.src {
			return a.src < b.src
		}

		if a.dst != b.dst {
			return a.dst < b.dst
		}

		return a.tag < b.tag
	})

	out := make([]TrafficEntry, len(keys))
	for i, k := range keys {
		out[i] = *c.entries[k]
	}

	return out
}

// TotalBytes returns the number of payload bytes counted so far.
func (c *TrafficCounter) TotalBytes() int {
	c.lock.Lock()
	defer c.lock.Unlock()

	total := 0
	for _, e := range c.entries {
		total += e.Bytes
	}

	return total
}

// Record writes the counted traffic into the traffic table.
func (c *TrafficCounter) Record(recorder datarecording.DataRecorder) {
	recorder.CreateTable("traffic", TrafficEntry{})

	for _, e := range c.Entries() {
		recorder.InsertData("traffic", e)
	}
}
