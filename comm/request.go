package comm

import (
	"context"
	"fmt"
)

// A Request tracks a posted send or receive.
type Request struct {
	ep     *Endpoint
	isSend bool
	peer   int
	tag    Tag
	box    chan Msg

	done bool
	msg  Msg
	err  error
}

func (r *Request) complete(msg Msg, err error) {
	r.done = true
	r.msg = msg
	r.err = err
}

// Wait blocks until the request completes, the context is cancelled, or the
// network is aborted. Waiting on a completed request returns the same result
// again.
func (r *Request) Wait(ctx context.Context) (Msg, error) {
	if r.done {
		return r.msg, r.err
	}

	select {
	case msg := <-r.box:
		r.complete(msg, nil)
		r.ep.received(msg)
	case <-ctx.Done():
		return nil, fmt.Errorf("%s waiting on rank %d tag %d: %w",
			r.ep.name, r.peer, r.tag, ctx.Err())
	case <-r.ep.net.aborted:
		r.complete(nil, r.ep.net.Err())
	}

	return r.msg, r.err
}

// Test completes the request if its message is already available. It never
// blocks.
func (r *Request) Test() (Msg, bool, error) {
	if r.done {
		return r.msg, true, r.err
	}

	select {
	case msg := <-r.box:
		r.complete(msg, nil)
		r.ep.received(msg)

		return msg, true, nil
	default:
		return nil, false, nil
	}
}

// WaitAll waits for all the requests in order and returns their messages.
func WaitAll(ctx context.Context, reqs ...*Request) ([]Msg, error) {
	msgs := make([]Msg, len(reqs))

	for i, req := range reqs {
		msg, err := req.Wait(ctx)
		if err != nil {
			return nil, err
		}

		msgs[i] = msg
	}

	return msgs, nil
}
