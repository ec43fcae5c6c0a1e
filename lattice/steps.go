package lattice

// Accelerate applies the inflow forcing to a local row: west-side speeds give
// w1 (axis) and w2 (diagonal) to the east-side speeds. Obstacle sites and
// sites where a west-side speed would not stay positive are skipped.
func (b *Block) Accelerate(local int, w1, w2 float32) {
	row := b.Row(local)
	blocked := b.BlockedRow(local)

	for col := range row {
		if blocked[col] {
			continue
		}

		c := &row[col]
		if c[West]-w1 <= 0 || c[NorthWest]-w2 <= 0 || c[SouthWest]-w2 <= 0 {
			continue
		}

		c[East] += w1
		c[NorthEast] += w2
		c[SouthEast] += w2

		c[West] -= w1
		c[NorthWest] -= w2
		c[SouthWest] -= w2
	}
}

// Stream scatters every speed of every local row into the scratch cell it
// travels to.
func (b *Block) Stream() {
	b.StreamRows(0, b.LocalRows())
}

// StreamRows scatters the speeds of the local rows [lo, hi). Halo rows act as
// sources only; speeds that would land on a halo row belong to a neighbour
// and are dropped. Every owned scratch speed has exactly one source, so
// disjoint row ranges can be streamed concurrently.
func (b *Block) StreamRows(lo, hi int) {
	nx := b.NX

	for local := lo; local < hi; local++ {
		src := b.Row(local)

		for d, dir := range Directions {
			dst := local + dir.DY
			if dst < b.FirstOwned() || dst > b.LastOwned() {
				continue
			}

			dstRow := b.ScratchRow(dst)
			for col := 0; col < nx; col++ {
				dstCol := (col + dir.DX + nx) % nx
				dstRow[dstCol][d] = src[col][d]
			}
		}
	}
}

// Rebound reverses the streamed speeds of every owned obstacle site.
func (b *Block) Rebound() {
	b.ReboundRows(b.FirstOwned(), b.LastOwned()+1)
}

// ReboundRows reverses the streamed speeds of the obstacle sites in the local
// rows [lo, hi), which must be owned rows.
func (b *Block) ReboundRows(lo, hi int) {
	for local := lo; local < hi; local++ {
		row := b.Row(local)
		scratch := b.ScratchRow(local)
		blocked := b.BlockedRow(local)

		for col := range row {
			if !blocked[col] {
				continue
			}

			for d := 1; d < NumSpeeds; d++ {
				row[col][d] = scratch[col][Directions[d].Opposite]
			}
		}
	}
}

// Collide relaxes every owned fluid site towards its equilibrium.
func (b *Block) Collide(omega float32) error {
	return b.CollideRows(b.FirstOwned(), b.LastOwned()+1, omega)
}

// CollideRows relaxes the fluid sites of the local rows [lo, hi), reading the
// streamed speeds and writing the current ones.
func (b *Block) CollideRows(lo, hi int, omega float32) error {
	for local := lo; local < hi; local++ {
		row := b.Row(local)
		scratch := b.ScratchRow(local)
		blocked := b.BlockedRow(local)

		for col := range row {
			if blocked[col] {
				continue
			}

			c := scratch[col]
			rho := c.Density()
			if !densityIsUsable(rho) {
				return &DensityError{Row: b.GlobalRow(local), Col: col, Density: rho}
			}

			ux, uy := c.Velocity(rho)
			eq := Equilibrium(rho, ux, uy)
			c.Relax(&eq, omega)
			row[col] = c
		}
	}

	return nil
}

// RowPartial returns the average velocity contribution of one local row.
func (b *Block) RowPartial(local int) (Partial, error) {
	return partialOfRow(b.Row(local), b.BlockedRow(local), b.GlobalRow(local))
}

// RowPartials returns the average velocity contribution of every owned row,
// southernmost first.
func (b *Block) RowPartials() ([]Partial, error) {
	rows := make([]Partial, b.Rows)

	for local := b.FirstOwned(); local <= b.LastOwned(); local++ {
		p, err := b.RowPartial(local)
		if err != nil {
			return nil, err
		}

		rows[local-b.FirstOwned()] = p
	}

	return rows, nil
}

// Partial returns the average velocity contribution of all owned rows.
func (b *Block) Partial() (Partial, error) {
	rows, err := b.RowPartials()
	if err != nil {
		return Partial{}, err
	}

	return SumPartials(rows), nil
}
