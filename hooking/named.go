package hooking

// Named is anything with a name, such as "Sim.Worker[2]".
type Named interface {
	Name() string
}

// NamedHookable is a domain that has a name, accepts hooks and fires them.
type NamedHookable interface {
	Named
	Hookable
	InvokeHook(HookCtx)
}

// NamedBase is embedded to implement Named.
type NamedBase struct {
	name string
}

// MakeNamedBase returns a NamedBase holding name.
func MakeNamedBase(name string) NamedBase {
	return NamedBase{name: name}
}

// Name returns the name.
func (b NamedBase) Name() string {
	return b.name
}
