package comm

import (
	"context"
	"fmt"

	"github.com/sarchlab/d2q9/hooking"
	"github.com/sarchlab/d2q9/id"
)

// An Endpoint is the view of the network from one rank.
type Endpoint struct {
	hooking.HookableBase

	name string
	rank int
	net  *Network
}

// Name returns the name of the endpoint.
func (e *Endpoint) Name() string {
	return e.name
}

// Rank returns the rank that owns the endpoint.
func (e *Endpoint) Rank() int {
	return e.rank
}

// Size returns the number of ranks in the network.
func (e *Endpoint) Size() int {
	return e.net.Size()
}

// Network returns the network the endpoint belongs to.
func (e *Endpoint) Network() *Network {
	return e.net
}

// Isend posts a message to dst. Sends are eager: the message is placed in
// the destination mailbox before Isend returns, so the returned request is
// already complete.
func (e *Endpoint) Isend(dst int, tag Tag, msg Msg) *Request {
	req := &Request{ep: e, isSend: true, peer: dst, tag: tag}

	if err := e.net.rankMustExist(dst); err != nil {
		req.complete(nil, err)
		return req
	}

	if err := e.net.Err(); err != nil {
		req.complete(nil, err)
		return req
	}

	meta := msg.Meta()
	meta.Src = e.rank
	meta.Dst = dst
	meta.Tag = tag

	if meta.ID == "" {
		meta.ID = id.Generate()
	}

	box := e.net.mailbox(e.rank, dst, tag)
	select {
	case box <- msg:
	default:
		req.complete(nil, fmt.Errorf(
			"%w: %s to rank %d, tag %d",
			ErrMailboxOverflow, e.name, dst, tag))

		return req
	}

	e.InvokeHook(hooking.HookCtx{
		Domain: e,
		Pos:    HookPosMsgSend,
		Item:   msg,
	})

	req.complete(msg, nil)

	return req
}

// Irecv posts a receive for the next message from src with the given tag.
// The message is taken when the request is waited on.
func (e *Endpoint) Irecv(src int, tag Tag) *Request {
	req := &Request{ep: e, peer: src, tag: tag}

	if err := e.net.rankMustExist(src); err != nil {
		req.complete(nil, err)
		return req
	}

	req.box = e.net.mailbox(src, e.rank, tag)

	return req
}

// Send is the blocking form of Isend.
func (e *Endpoint) Send(ctx context.Context, dst int, tag Tag, msg Msg) error {
	_, err := e.Isend(dst, tag, msg).Wait(ctx)
	return err
}

// Recv is the blocking form of Irecv.
func (e *Endpoint) Recv(ctx context.Context, src int, tag Tag) (Msg, error) {
	return e.Irecv(src, tag).Wait(ctx)
}

// Gather collects one message from every rank at root. Non-root ranks send
// msg and get nil back. The root gets the messages indexed by rank, its own
// msg included, received strictly in rank order.
func (e *Endpoint) Gather(
	ctx context.Context,
	root int,
	tag Tag,
	msg Msg,
) ([]Msg, error) {
	if e.rank != root {
		return nil, e.Send(ctx, root, tag, msg)
	}

	msgs := make([]Msg, e.Size())
	for rank := range msgs {
		if rank == root {
			msgs[rank] = msg
			continue
		}

		m, err := e.Recv(ctx, rank, tag)
		if err != nil {
			return nil, err
		}

		msgs[rank] = m
	}

	return msgs, nil
}

func (e *Endpoint) received(msg Msg) {
	e.InvokeHook(hooking.HookCtx{
		Domain: e,
		Pos:    HookPosMsgRecv,
		Item:   msg,
	})
}
