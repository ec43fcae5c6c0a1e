// Package hooking lets observers attach to ranks, endpoints and other domains
// of a run without the domains knowing who is listening.
package hooking

// A HookPos names the point in a domain's work where hooks fire.
type HookPos struct {
	Name string
}

// HookCtx is what a hook receives: the firing domain, the position, the item
// being processed and an optional detail.
type HookCtx struct {
	Domain Hookable
	Pos    *HookPos
	Item   interface{}
	Detail interface{}
}

// A Hookable accepts hooks.
type Hookable interface {
	AcceptHook(hook Hook)
	NumHooks() int
	Hooks() []Hook
}

// A Hook observes a domain.
type Hook interface {
	Func(ctx HookCtx)
}

// HookFunc lets a plain function act as a Hook.
type HookFunc func(ctx HookCtx)

// Func calls f.
func (f HookFunc) Func(ctx HookCtx) {
	f(ctx)
}

// HookableBase is embedded by domains to implement Hookable. Hooks are
// attached before the run starts and then fire only from the owning rank's
// goroutine, so no locking is done.
type HookableBase struct {
	hooks []Hook
}

// NumHooks returns how many hooks are attached.
func (h *HookableBase) NumHooks() int {
	return len(h.hooks)
}

// Hooks returns the attached hooks in attach order.
func (h *HookableBase) Hooks() []Hook {
	return h.hooks
}

// AcceptHook attaches a hook. Attaching the same hook value twice panics;
// HookFuncs are not comparable and are always accepted.
func (h *HookableBase) AcceptHook(hook Hook) {
	if _, isFunc := hook.(HookFunc); !isFunc {
		for _, attached := range h.hooks {
			if attached == hook {
				panic("hook attached twice")
			}
		}
	}

	h.hooks = append(h.hooks, hook)
}

// InvokeHook fires every attached hook in attach order.
func (h *HookableBase) InvokeHook(ctx HookCtx) {
	for _, hook := range h.hooks {
		hook.Func(ctx)
	}
}
