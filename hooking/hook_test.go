package hooking

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

type countingHook struct {
	calls int
}

func (h *countingHook) Func(_ HookCtx) {
	h.calls++
}

var _ = Describe("HookableBase", func() {
	var base *HookableBase

	BeforeEach(func() {
		base = &HookableBase{}
	})

	It("should invoke every hook", func() {
		a := &countingHook{}
		b := &countingHook{}
		base.AcceptHook(a)
		base.AcceptHook(b)

		base.InvokeHook(HookCtx{Pos: &HookPos{Name: "Test"}})

		Expect(base.NumHooks()).To(Equal(2))
		Expect(base.Hooks()).To(HaveLen(2))
		Expect(a.calls).To(Equal(1))
		Expect(b.calls).To(Equal(1))
	})

	It("should panic on a duplicated hook", func() {
		h := &countingHook{}
		base.AcceptHook(h)

		Expect(func() { base.AcceptHook(h) }).To(Panic())
	})

	It("should accept hook functions", func() {
		var pos *HookPos
		f := HookFunc(func(ctx HookCtx) { pos = ctx.Pos })

		base.AcceptHook(f)
		base.AcceptHook(f)

		want := &HookPos{Name: "Test"}
		base.InvokeHook(HookCtx{Pos: want})

		Expect(pos).To(BeIdenticalTo(want))
		Expect(base.NumHooks()).To(Equal(2))
	})
})

var _ = Describe("NamedBase", func() {
	It("should keep the name", func() {
		n := MakeNamedBase("Sim.Worker[0]")

		Expect(n.Name()).To(Equal("Sim.Worker[0]"))
	})
})
