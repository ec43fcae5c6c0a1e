package tracing

import (
	"fmt"

	"github.com/sarchlab/d2q9/hooking"
)

// A Tracer receives the tasks reported by the domains it is attached to.
type Tracer interface {
	StartTask(task Task)
	EndTask(task Task)
}

// taskForwarder turns task hook invocations into Tracer calls.
type taskForwarder struct {
	tracer Tracer
}

func (f *taskForwarder) Func(ctx hooking.HookCtx) {
	task, ok := ctx.Item.(Task)
	if !ok {
		return
	}

	switch ctx.Pos {
	case HookPosTaskStart:
		f.tracer.StartTask(task)
	case HookPosTaskEnd:
		f.tracer.EndTask(task)
	}
}

// CollectTrace attaches tracer to domain. Attaching the same tracer twice
// panics.
func CollectTrace(domain NamedHookable, tracer Tracer) {
	for _, h := range domain.Hooks() {
		if f, ok := h.(*taskForwarder); ok && f.tracer == tracer {
			panic(fmt.Sprintf("%s is already traced by %T", domain.Name(), tracer))
		}
	}

	domain.AcceptHook(&taskForwarder{tracer: tracer})
}
