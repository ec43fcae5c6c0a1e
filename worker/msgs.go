package worker

import (
	"github.com/sarchlab/d2q9/comm"
	"github.com/sarchlab/d2q9/id"
	"github.com/sarchlab/d2q9/lattice"
)

// PartialMsg carries the average velocity contributions of a rank's rows for
// one iteration.
type PartialMsg struct {
	comm.MsgMeta

	Iteration int
	FirstRow  int
	Rows      []lattice.Partial
}

// Meta returns the meta data of the message.
func (m *PartialMsg) Meta() *comm.MsgMeta {
	return &m.MsgMeta
}

// Clone returns a deep copy of the message with a different ID.
func (m *PartialMsg) Clone() comm.Msg {
	cloneMsg := *m
	cloneMsg.ID = id.Generate()
	cloneMsg.Rows = append([]lattice.Partial(nil), m.Rows...)

	return &cloneMsg
}

func newPartialMsg(iteration, firstRow int, rows []lattice.Partial) *PartialMsg {
	return &PartialMsg{
		MsgMeta: comm.MsgMeta{
			ID:           id.Generate(),
			TrafficClass: "reduce",
			TrafficBytes: 16 * len(rows),
		},
		Iteration: iteration,
		FirstRow:  firstRow,
		Rows:      rows,
	}
}

// BlockMsg carries the owned rows of a rank to the root at the end of a run.
type BlockMsg struct {
	comm.MsgMeta

	FirstRow int
	Cells    []lattice.Cell
}

// Meta returns the meta data of the message.
func (m *BlockMsg) Meta() *comm.MsgMeta {
	return &m.MsgMeta
}

// Clone returns a deep copy of the message with a different ID.
func (m *BlockMsg) Clone() comm.Msg {
	cloneMsg := *m
	cloneMsg.ID = id.Generate()
	cloneMsg.Cells = append([]lattice.Cell(nil), m.Cells...)

	return &cloneMsg
}

func newBlockMsg(firstRow int, cells []lattice.Cell) *BlockMsg {
	return &BlockMsg{
		MsgMeta: comm.MsgMeta{
			ID:           id.Generate(),
			TrafficClass: "gather",
			TrafficBytes: 4 * lattice.NumSpeeds * len(cells),
		},
		FirstRow: firstRow,
		Cells:    cells,
	}
}
