package comm

import "errors"

var (
	// ErrBufferSize marks a message whose payload does not have the size the
	// receiver expects.
	ErrBufferSize = errors.New("message buffer size mismatch")

	// ErrProtocol marks a message that arrives out of the expected order.
	ErrProtocol = errors.New("message protocol violation")

	// ErrMailboxOverflow marks a send into a full mailbox. It means a rank ran
	// further ahead of its peers than the protocol allows.
	ErrMailboxOverflow = errors.New("mailbox overflow")

	// ErrUnknownRank marks a message addressed to a rank outside the network.
	ErrUnknownRank = errors.New("unknown rank")

	// ErrAborted is returned by pending requests after the network has been
	// aborted.
	ErrAborted = errors.New("network aborted")
)
