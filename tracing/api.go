package tracing

import (
	"github.com/sarchlab/d2q9/hooking"
)

// NamedHookable is a domain that tasks can be reported from.
type NamedHookable = hooking.NamedHookable

// Hook positions used when a task starts and ends.
var (
	HookPosTaskStart = &hooking.HookPos{Name: "TaskStart"}
	HookPosTaskEnd   = &hooking.HookPos{Name: "TaskEnd"}
)

// StartTask reports that domain began a task. Nothing is checked or built when
// the domain has no hooks, so untraced runs pay almost nothing.
func StartTask(
	id string,
	parentID string,
	domain NamedHookable,
	kind string,
	what string,
	detail interface{},
) {
	if domain.NumHooks() == 0 {
		return
	}

	mustBeSet("id", id)
	mustBeSet("kind", kind)
	mustBeSet("what", what)
	mustBeSet("domain name", domain.Name())

	domain.InvokeHook(hooking.HookCtx{
		Domain: domain,
		Pos:    HookPosTaskStart,
		Item: Task{
			ID:       id,
			ParentID: parentID,
			Kind:     kind,
			What:     what,
			Where:    domain.Name(),
			Detail:   detail,
		},
	})
}

// EndTask reports that the task with the given ID is over.
func EndTask(id string, domain NamedHookable) {
	if domain.NumHooks() == 0 {
		return
	}

	domain.InvokeHook(hooking.HookCtx{
		Domain: domain,
		Pos:    HookPosTaskEnd,
		Item:   Task{ID: id},
	})
}

func mustBeSet(field, value string) {
	if value == "" {
		panic(field + " must not be empty")
	}
}
