// Package comm is the message layer between ranks. Ranks never share mutable
// state; every byte that crosses a rank boundary travels as a Msg through a
// Network.
package comm

import "github.com/sarchlab/d2q9/id"

// Tag separates independent message streams between the same pair of ranks.
type Tag int

// A Msg is a piece of information that is transferred between ranks.
type Msg interface {
	Meta() *MsgMeta
	Clone() Msg
}

// MsgMeta contains the meta data that is attached to every message.
type MsgMeta struct {
	ID           string
	Src, Dst     int
	Tag          Tag
	TrafficClass string
	TrafficBytes int
}

// Float32Msg carries a flat float32 payload, such as a packed lattice row.
type Float32Msg struct {
	MsgMeta

	Iteration int
	Data      []float32
}

// Meta returns the meta data of the message.
func (m *Float32Msg) Meta() *MsgMeta {
	return &m.MsgMeta
}

// Clone returns a deep copy of the message with a different ID.
func (m *Float32Msg) Clone() Msg {
	cloneMsg := *m
	cloneMsg.ID = id.Generate()
	cloneMsg.Data = append([]float32(nil), m.Data...)

	return &cloneMsg
}

// Float32MsgBuilder can build Float32Msg.
type Float32MsgBuilder struct {
	trafficClass string
	iteration    int
	data         []float32
}

// WithTrafficClass sets the traffic class of the message.
func (b Float32MsgBuilder) WithTrafficClass(class string) Float32MsgBuilder {
	b.trafficClass = class
	return b
}

// WithIteration sets the iteration the payload belongs to.
func (b Float32MsgBuilder) WithIteration(iter int) Float32MsgBuilder {
	b.iteration = iter
	return b
}

// WithData sets the payload. The slice is copied when the message is built.
func (b Float32MsgBuilder) WithData(data []float32) Float32MsgBuilder {
	b.data = data
	return b
}

// Build creates a new message.
func (b Float32MsgBuilder) Build() *Float32Msg {
	m := &Float32Msg{
		MsgMeta: MsgMeta{
			ID:           id.Generate(),
			TrafficClass: b.trafficClass,
			TrafficBytes: 4 * len(b.data),
		},
		Iteration: b.iteration,
		Data:      append([]float32(nil), b.data...),
	}

	return m
}
