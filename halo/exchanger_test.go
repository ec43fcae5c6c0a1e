package halo

import (
	"context"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sarchlab/d2q9/comm"
	"github.com/sarchlab/d2q9/lattice"
	"github.com/sarchlab/d2q9/partition"
)

func numberedGrid(nx, ny int) *lattice.Grid {
	g := &lattice.Grid{NX: nx, NY: ny, Cells: make([]lattice.Cell, nx*ny)}
	for i := range g.Cells {
		for d := 0; d < lattice.NumSpeeds; d++ {
			g.Cells[i][d] = float32(i*lattice.NumSpeeds + d)
		}
	}

	return g
}

// splitGrid cuts a grid into one block per rank with the halo rows cleared,
// so that only an exchange can fill them.
func splitGrid(g *lattice.Grid, size int) ([]*lattice.Block, []*Exchanger) {
	mask, err := lattice.NewObstacleMask(g.NX, g.NY, nil)
	Expect(err).NotTo(HaveOccurred())

	network := comm.MakeBuilder().WithSize(size).Build("Net")
	ranges, err := partition.Split(g.NY, size)
	Expect(err).NotTo(HaveOccurred())

	blocks := make([]*lattice.Block, size)
	exchangers := make([]*Exchanger, size)

	for rank, r := range ranges {
		b, err := lattice.NewBlock(g, mask, r.Start, r.Rows())
		Expect(err).NotTo(HaveOccurred())

		clear(b.Row(b.SouthHalo()))
		clear(b.Row(b.NorthHalo()))

		south, north, err := partition.Neighbors(g.NY, size, rank)
		Expect(err).NotTo(HaveOccurred())

		blocks[rank] = b
		exchangers[rank] = NewExchanger(network.Endpoint(rank), b, south, north)
	}

	return blocks, exchangers
}

var _ = Describe("Exchanger", func() {
	var ctx context.Context

	BeforeEach(func() {
		ctx = context.Background()
	})

	DescribeTable("should fill the halos with the neighbours' rows",
		func(ny, size int) {
			g := numberedGrid(4, ny)
			blocks, exchangers := splitGrid(g, size)

			exchanges := make([]*Exchange, size)
			for rank, x := range exchangers {
				e, err := x.Start(ctx, 0)
				Expect(err).NotTo(HaveOccurred())
				exchanges[rank] = e
			}

			for rank, e := range exchanges {
				Expect(e.Wait(ctx)).To(Succeed())

				b := blocks[rank]
				below := (b.Start - 1 + ny) % ny
				above := (b.Start + b.Rows) % ny

				Expect(b.Row(b.SouthHalo())).To(Equal(g.Row(below)))
				Expect(b.Row(b.NorthHalo())).To(Equal(g.Row(above)))
			}
		},
		Entry("one rank", 3, 1),
		Entry("two ranks", 5, 2),
		Entry("three ranks", 7, 3),
		Entry("one row per rank", 4, 4),
	)

	It("should keep iterations apart", func() {
		g := numberedGrid(4, 6)
		blocks, exchangers := splitGrid(g, 2)
		lower := blocks[0]

		var pending []*Exchange
		for iter := 0; iter < 3; iter++ {
			lower.Row(lower.LastOwned())[0][0] = float32(100 + iter)

			_, err := exchangers[0].Start(ctx, iter)
			Expect(err).NotTo(HaveOccurred())

			e, err := exchangers[1].Start(ctx, iter)
			Expect(err).NotTo(HaveOccurred())
			pending = append(pending, e)
		}

		upper := blocks[1]
		for iter, e := range pending {
			Expect(e.Wait(ctx)).To(Succeed())
			Expect(upper.Row(upper.SouthHalo())[0][0]).
				To(Equal(float32(100 + iter)))
		}
	})

	It("should refuse a halo row of another iteration", func() {
		g := numberedGrid(4, 6)
		_, exchangers := splitGrid(g, 2)

		_, err := exchangers[0].Start(ctx, 3)
		Expect(err).NotTo(HaveOccurred())

		err = exchangers[1].Run(ctx, 0)
		Expect(errors.Is(err, comm.ErrProtocol)).To(BeTrue())
	})

	It("should refuse a halo row of another width", func() {
		g := numberedGrid(4, 6)
		_, exchangers := splitGrid(g, 2)

		ep := exchangers[0].ep
		short := comm.Float32MsgBuilder{}.
			WithIteration(0).
			WithData(make([]float32, 5)).
			Build()
		Expect(ep.Send(ctx, 1, comm.TagNorthbound, short)).To(Succeed())
		Expect(ep.Send(ctx, 1, comm.TagSouthbound, short.Clone())).To(Succeed())

		err := exchangers[1].Run(ctx, 0)
		Expect(errors.Is(err, comm.ErrBufferSize)).To(BeTrue())
	})

	It("should name its neighbours", func() {
		g := numberedGrid(4, 9)
		_, exchangers := splitGrid(g, 3)

		Expect(exchangers[0].South()).To(Equal(2))
		Expect(exchangers[0].North()).To(Equal(1))
	})
})
