package tracing

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sarchlab/d2q9/comm"
)

var _ = Describe("TrafficCounter", func() {
	It("should count sent messages per pair and tag", func() {
		counter := NewTrafficCounter()
		network := comm.MakeBuilder().WithSize(2).Build("Net")
		for _, ep := range network.Endpoints() {
			ep.AcceptHook(counter)
		}

		ctx := context.Background()
		row := []float32{1, 2, 3}

		send := func(src, dst int, tag comm.Tag) {
			msg := comm.Float32MsgBuilder{}.WithData(row).Build()
			Expect(network.Endpoint(src).Send(ctx, dst, tag, msg)).To(Succeed())
		}

		send(0, 1, comm.TagNorthbound)
		send(0, 1, comm.TagNorthbound)
		send(1, 0, comm.TagSouthbound)

		_, err := network.Endpoint(1).Recv(ctx, 0, comm.TagNorthbound)
		Expect(err).NotTo(HaveOccurred())

		entries := counter.Entries()
		Expect(entries).To(Equal([]TrafficEntry{
			{Src: 0, Dst: 1, Tag: "northbound", Messages: 2, Bytes: 24},
			{Src: 1, Dst: 0, Tag: "southbound", Messages: 1, Bytes: 12},
		}))
		Expect(counter.TotalBytes()).To(Equal(36))
	})
})
