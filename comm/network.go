package comm

import (
	"fmt"
	"sync"

	"github.com/sarchlab/d2q9/hooking"
)

// HookPosMsgSend marks when a message is accepted into a mailbox.
var HookPosMsgSend = &hooking.HookPos{Name: "Msg Send"}

// HookPosMsgRecv marks when a message is retrieved by its receiver.
var HookPosMsgRecv = &hooking.HookPos{Name: "Msg Recv"}

type mailboxKey struct {
	src, dst int
	tag      Tag
}

// A Network connects a fixed set of ranks. Messages between one source, one
// destination and one tag are delivered in the order they are sent.
type Network struct {
	name      string
	capacity  int
	endpoints []*Endpoint

	lock      sync.Mutex
	mailboxes map[mailboxKey]chan Msg

	abortOnce sync.Once
	aborted   chan struct{}
	abortErr  error
}

// Builder can build networks.
type Builder struct {
	size     int
	capacity int
}

// MakeBuilder creates a builder with default parameters.
func MakeBuilder() Builder {
	return Builder{
		size: 1,
	}
}

// WithSize sets the number of ranks.
func (b Builder) WithSize(size int) Builder {
	b.size = size
	return b
}

// WithMailboxCapacity sets how many messages a mailbox can hold. Zero picks
// a capacity large enough for the lock-step protocols of this module.
func (b Builder) WithMailboxCapacity(capacity int) Builder {
	b.capacity = capacity
	return b
}

// Build creates the network.
func (b Builder) Build(name string) *Network {
	if b.size <= 0 {
		panic(fmt.Sprintf("network size must be positive, got %d", b.size))
	}

	capacity := b.capacity
	if capacity <= 0 {
		capacity = 2*b.size + 4
	}

	n := &Network{
		name:      name,
		capacity:  capacity,
		mailboxes: make(map[mailboxKey]chan Msg),
		aborted:   make(chan struct{}),
	}

	n.endpoints = make([]*Endpoint, b.size)
	for rank := range n.endpoints {
		n.endpoints[rank] = &Endpoint{
			name: fmt.Sprintf("%s.Rank[%d]", name, rank),
			rank: rank,
			net:  n,
		}
	}

	return n
}

// Name returns the name of the network.
func (n *Network) Name() string {
	return n.name
}

// Size returns the number of ranks.
func (n *Network) Size() int {
	return len(n.endpoints)
}

// Endpoint returns the endpoint of a rank.
func (n *Network) Endpoint(rank int) *Endpoint {
	return n.endpoints[rank]
}

// Endpoints returns all the endpoints in rank order.
func (n *Network) Endpoints() []*Endpoint {
	return n.endpoints
}

// Abort fails every pending and future receive. Only the first cause is
// kept.
func (n *Network) Abort(cause error) {
	n.abortOnce.Do(func() {
		n.abortErr = cause
		close(n.aborted)
	})
}

// Err returns the abort cause, or nil if the network is healthy.
func (n *Network) Err() error {
	select {
	case <-n.aborted:
		return fmt.Errorf("%w: %w", ErrAborted, n.abortErr)
	default:
		return nil
	}
}

func (n *Network) mailbox(src, dst int, tag Tag) chan Msg {
	key := mailboxKey{src: src, dst: dst, tag: tag}

	n.lock.Lock()
	defer n.lock.Unlock()

	box, ok := n.mailboxes[key]
	if !ok {
		box = make(chan Msg, n.capacity)
		n.mailboxes[key] = box
	}

	return box
}

func (n *Network) rankMustExist(rank int) error {
	if rank < 0 || rank >= len(n.endpoints) {
		return fmt.Errorf("%w: %d of %d", ErrUnknownRank, rank, len(n.endpoints))
	}

	return nil
}
