package lattice

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func numberedGrid(nx, ny int) *Grid {
	g := &Grid{NX: nx, NY: ny, Cells: make([]Cell, nx*ny)}
	for i := range g.Cells {
		for d := 0; d < NumSpeeds; d++ {
			g.Cells[i][d] = float32(i*NumSpeeds + d)
		}
	}

	return g
}

var _ = Describe("Block", func() {
	var (
		grid *Grid
		mask *ObstacleMask
	)

	BeforeEach(func() {
		grid = numberedGrid(3, 5)

		var err error
		mask, err = NewObstacleMask(3, 5, []Coord{{X: 1, Y: 0}})
		Expect(err).NotTo(HaveOccurred())
	})

	It("should copy the owned rows and the halos", func() {
		b, err := NewBlock(grid, mask, 1, 2)
		Expect(err).NotTo(HaveOccurred())

		Expect(b.LocalRows()).To(Equal(4))
		Expect(b.Row(b.SouthHalo())).To(Equal(grid.Row(0)))
		Expect(b.Row(b.FirstOwned())).To(Equal(grid.Row(1)))
		Expect(b.Row(b.LastOwned())).To(Equal(grid.Row(2)))
		Expect(b.Row(b.NorthHalo())).To(Equal(grid.Row(3)))
		Expect(b.BlockedRow(0)).To(Equal([]bool{false, true, false}))
	})

	It("should wrap the halos around the lattice", func() {
		b, err := NewBlock(grid, mask, 0, 5)
		Expect(err).NotTo(HaveOccurred())

		Expect(b.GlobalRow(b.SouthHalo())).To(Equal(4))
		Expect(b.GlobalRow(b.NorthHalo())).To(Equal(0))
		Expect(b.LocalRowsOf(0)).To(Equal([]int{1, 6}))
		Expect(b.LocalRowsOf(4)).To(Equal([]int{0, 5}))
		Expect(b.Owns(4)).To(BeTrue())
	})

	It("should find a single row in both halos", func() {
		g := numberedGrid(3, 1)
		m, err := NewObstacleMask(3, 1, nil)
		Expect(err).NotTo(HaveOccurred())

		b, err := NewBlock(g, m, 0, 1)
		Expect(err).NotTo(HaveOccurred())

		Expect(b.LocalRowsOf(0)).To(Equal([]int{0, 1, 2}))
	})

	It("should refuse rows outside the grid", func() {
		_, err := NewBlock(grid, mask, 4, 2)

		Expect(errors.Is(err, ErrInvalidParams)).To(BeTrue())
	})

	It("should pack and unpack rows", func() {
		b, err := NewBlock(grid, mask, 1, 2)
		Expect(err).NotTo(HaveOccurred())

		buf := b.PackRow(b.LastOwned(), nil)
		Expect(buf).To(HaveLen(NumSpeeds * 3))
		Expect(buf[0]).To(Equal(grid.At(2, 0)[0]))

		Expect(b.UnpackRow(b.SouthHalo(), buf)).To(Succeed())
		Expect(b.Row(b.SouthHalo())).To(Equal(grid.Row(2)))
	})

	It("should refuse a packed row of another size", func() {
		b, err := NewBlock(grid, mask, 1, 2)
		Expect(err).NotTo(HaveOccurred())

		err = b.UnpackRow(0, make([]float32, 5))

		Expect(errors.Is(err, ErrRowShape)).To(BeTrue())
	})

	It("should copy the owned rows back", func() {
		b, err := NewBlock(grid, mask, 2, 2)
		Expect(err).NotTo(HaveOccurred())

		b.Row(b.FirstOwned())[0][Rest] = -1

		out := &Grid{NX: 3, NY: 5, Cells: make([]Cell, 15)}
		b.CopyOwned(out)

		Expect(out.At(2, 0)[Rest]).To(Equal(float32(-1)))
		Expect(out.Row(3)).To(Equal(grid.Row(3)))
		Expect(out.Row(1)).To(Equal(make([]Cell, 3)))
		Expect(b.OwnedCells()).To(HaveLen(6))
	})
})

var _ = Describe("ObstacleMask", func() {
	It("should count the fluid cells", func() {
		m, err := NewObstacleMask(4, 2, []Coord{{X: 0, Y: 0}, {X: 3, Y: 1}})
		Expect(err).NotTo(HaveOccurred())

		Expect(m.NumFluidCells()).To(Equal(6))
		Expect(m.IsBlocked(1, 3)).To(BeTrue())
		Expect(m.IsBlocked(0, 3)).To(BeFalse())
	})

	It("should refuse obstacles outside the grid", func() {
		_, err := NewObstacleMask(4, 2, []Coord{{X: 4, Y: 0}})

		Expect(errors.Is(err, ErrInvalidParams)).To(BeTrue())
	})
})
