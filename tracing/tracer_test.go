package tracing

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sarchlab/d2q9/hooking"
)

type namedDomain struct {
	hooking.HookableBase
	hooking.NamedBase
}

type taskLog struct {
	started []Task
	ended   []Task
}

func (l *taskLog) StartTask(task Task) {
	l.started = append(l.started, task)
}

func (l *taskLog) EndTask(task Task) {
	l.ended = append(l.ended, task)
}

var _ = Describe("CollectTrace", func() {
	var (
		domain *namedDomain
		tracer *taskLog
	)

	BeforeEach(func() {
		domain = &namedDomain{NamedBase: hooking.MakeNamedBase("Sim.Worker[1]")}
		tracer = &taskLog{}
	})

	It("should forward tasks to the tracer", func() {
		CollectTrace(domain, tracer)

		StartTask("1", "", domain, "iteration", "0", nil)
		StartTask("2", "1", domain, "halo", "0", nil)
		EndTask("2", domain)
		EndTask("1", domain)

		Expect(tracer.started).To(HaveLen(2))
		Expect(tracer.started[1].ParentID).To(Equal("1"))
		Expect(tracer.started[1].Where).To(Equal("Sim.Worker[1]"))
		Expect(tracer.ended).To(HaveLen(2))
		Expect(tracer.ended[0].ID).To(Equal("2"))
	})

	It("should ignore other hook positions", func() {
		CollectTrace(domain, tracer)

		domain.InvokeHook(hooking.HookCtx{
			Domain: domain,
			Pos:    &hooking.HookPos{Name: "Other"},
		})

		Expect(tracer.started).To(BeEmpty())
		Expect(tracer.ended).To(BeEmpty())
	})

	It("should panic if the same tracer is attached twice", func() {
		CollectTrace(domain, tracer)

		Expect(func() { CollectTrace(domain, tracer) }).To(Panic())
	})
})
