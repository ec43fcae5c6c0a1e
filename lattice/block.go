package lattice

import "fmt"

// A Block is the part of the lattice owned by one rank: Rows consecutive
// global rows starting at Start, framed by a south halo row (local row 0) and
// a north halo row (local row Rows+1). Halo rows are copies of the
// neighbours' boundary rows and are only valid after an exchange.
type Block struct {
	NX, NY int
	Start  int
	Rows   int

	Speeds  []Cell
	Scratch []Cell
	Blocked []bool
}

// NewBlock cuts the rows [start, start+rows) out of a global grid, together
// with the halo rows around them.
func NewBlock(g *Grid, mask *ObstacleMask, start, rows int) (*Block, error) {
	if rows <= 0 || start < 0 || start+rows > g.NY {
		return nil, fmt.Errorf("%w: block [%d, %d) of %d rows",
			ErrInvalidParams, start, start+rows, g.NY)
	}

	if mask.NX != g.NX || mask.NY != g.NY {
		return nil, fmt.Errorf("%w: mask %dx%d does not match grid %dx%d",
			ErrInvalidParams, mask.NX, mask.NY, g.NX, g.NY)
	}

	b := &Block{
		NX:      g.NX,
		NY:      g.NY,
		Start:   start,
		Rows:    rows,
		Speeds:  make([]Cell, (rows+2)*g.NX),
		Scratch: make([]Cell, (rows+2)*g.NX),
		Blocked: make([]bool, (rows+2)*g.NX),
	}

	for local := 0; local < rows+2; local++ {
		global := b.GlobalRow(local)
		copy(b.Row(local), g.Row(global))
		copy(b.BlockedRow(local), mask.Blocked[global*g.NX:(global+1)*g.NX])
	}

	return b, nil
}

// LocalRows returns the number of local rows, halos included.
func (b *Block) LocalRows() int {
	return b.Rows + 2
}

// GlobalRow maps a local row index to the global row it mirrors.
func (b *Block) GlobalRow(local int) int {
	return (b.Start + local - 1 + b.NY) % b.NY
}

// LocalRowsOf lists every local row, halos included, that mirrors the given
// global row. Small lattices can hold the same global row more than once.
func (b *Block) LocalRowsOf(global int) []int {
	var rows []int
	for local := 0; local < b.LocalRows(); local++ {
		if b.GlobalRow(local) == global {
			rows = append(rows, local)
		}
	}

	return rows
}

// Owns tells if a global row is one of the block's own rows.
func (b *Block) Owns(global int) bool {
	return global >= b.Start && global < b.Start+b.Rows
}

// Row returns the current speeds of a local row.
func (b *Block) Row(local int) []Cell {
	return b.Speeds[local*b.NX : (local+1)*b.NX]
}

// ScratchRow returns the streamed speeds of a local row.
func (b *Block) ScratchRow(local int) []Cell {
	return b.Scratch[local*b.NX : (local+1)*b.NX]
}

// BlockedRow returns the obstacle flags of a local row.
func (b *Block) BlockedRow(local int) []bool {
	return b.Blocked[local*b.NX : (local+1)*b.NX]
}

// SouthHalo is the local index of the row below the block.
func (b *Block) SouthHalo() int {
	return 0
}

// NorthHalo is the local index of the row above the block.
func (b *Block) NorthHalo() int {
	return b.Rows + 1
}

// FirstOwned is the local index of the southernmost owned row.
func (b *Block) FirstOwned() int {
	return 1
}

// LastOwned is the local index of the northernmost owned row.
func (b *Block) LastOwned() int {
	return b.Rows
}

// PackRow flattens a local row into a buffer of NumSpeeds*NX values.
func (b *Block) PackRow(local int, buf []float32) []float32 {
	buf = buf[:0]
	for _, c := range b.Row(local) {
		buf = append(buf, c[:]...)
	}

	return buf
}

// UnpackRow replaces a local row with the content of a packed buffer.
func (b *Block) UnpackRow(local int, buf []float32) error {
	if len(buf) != NumSpeeds*b.NX {
		return fmt.Errorf("%w: row buffer holds %d values, want %d",
			ErrRowShape, len(buf), NumSpeeds*b.NX)
	}

	row := b.Row(local)
	for col := range row {
		copy(row[col][:], buf[col*NumSpeeds:(col+1)*NumSpeeds])
	}

	return nil
}

// CopyOwned writes the owned rows into the matching rows of a global grid.
func (b *Block) CopyOwned(g *Grid) {
	for local := b.FirstOwned(); local <= b.LastOwned(); local++ {
		copy(g.Row(b.GlobalRow(local)), b.Row(local))
	}
}

// OwnedCells returns a copy of the owned rows in row-major order.
func (b *Block) OwnedCells() []Cell {
	out := make([]Cell, b.Rows*b.NX)
	copy(out, b.Speeds[b.NX:(b.Rows+1)*b.NX])

	return out
}
