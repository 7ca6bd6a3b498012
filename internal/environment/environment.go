// Package environment implements the three-tier name-resolution chain: a
// frame's own locals, outer (enclosing function scopes via closure
// back-links), and builtins (a host-supplied, shared, read-through
// mapping). It is also where builtin isolation is made checkable: callers
// can ask which tier a name resolved through before deciding whether a
// subscription write is allowed to land.
package environment

import "draconic/internal/values"

// Tier identifies which of the three lookup tiers satisfied a name
// resolution.
type Tier int

const (
	// TierUndefined means the name was not found in any tier.
	TierUndefined Tier = iota
	// TierLocal means the name is bound in the current frame's locals.
	TierLocal
	// TierOuter means the name was found by walking the outer (closure)
	// chain — an enclosing function's locals, not the current frame's.
	TierOuter
	// TierBuiltin means the name was found only in the root builtins
	// mapping. Writes through subscription on a TierBuiltin name must be
	// suppressed — builtins are shared and read-only from user code.
	TierBuiltin
)

// Environment is one frame of the locals→outer→builtins chain. A function
// call creates a new Environment whose outer link is the function's
// closure environment (not the caller's environment) — this is what gives
// closures lexical scoping rather than dynamic scoping.
type Environment struct {
	locals   map[string]values.Value
	outer    *Environment
	builtins map[string]values.Value
}

// NewRoot creates the top-level environment of one execution, holding the
// host-supplied builtins mapping. Builtins are shared and read-only from
// user code's perspective; this package never mutates the map it is
// given.
func NewRoot(builtins map[string]values.Value) *Environment {
	if builtins == nil {
		builtins = map[string]values.Value{}
	}
	return &Environment{
		locals:   make(map[string]values.Value),
		builtins: builtins,
	}
}

// NewChild creates a nested scope (function call frame, comprehension
// scope) whose outer link is closure — the environment captured when the
// callable was defined, not the environment of the call site.
func NewChild(closure *Environment) *Environment {
	return &Environment{
		locals: make(map[string]values.Value),
		outer:  closure,
	}
}

// builtinsMap walks to the root frame to find the shared builtins
// mapping; only the root frame stores one directly.
func (e *Environment) builtinsMap() map[string]values.Value {
	cur := e
	for cur.outer != nil {
		cur = cur.outer
	}
	return cur.builtins
}

// Get resolves name through locals → outer → builtins, in that order.
func (e *Environment) Get(name string) (values.Value, bool) {
	v, tier, _ := e.Resolve(name)
	return v, tier != TierUndefined
}

// Resolve resolves name and additionally reports which tier satisfied it
// and (for TierLocal/TierOuter) the frame owning the binding — the frame
// a real mutation or rebind would need to target.
func (e *Environment) Resolve(name string) (values.Value, Tier, *Environment) {
	for cur := e; cur != nil; cur = cur.outer {
		if v, ok := cur.locals[name]; ok {
			if cur == e {
				return v, TierLocal, cur
			}
			return v, TierOuter, cur
		}
	}
	if v, ok := e.builtinsMap()[name]; ok {
		return v, TierBuiltin, nil
	}
	return nil, TierUndefined, nil
}

// Tier reports only the tier a name would resolve through, without
// needing the value — used by the evaluator to decide whether a
// subscription write target is a builtin (and therefore must be
// suppressed) before doing anything else.
func (e *Environment) Tier(name string) Tier {
	_, tier, _ := e.Resolve(name)
	return tier
}

// Define binds name in the current frame's locals, creating or updating it
// there — it never touches an outer or builtin binding of the same name,
// even if one exists.
func (e *Environment) Define(name string, v values.Value) {
	e.locals[name] = v
}

// Names returns a snapshot of the current frame's locals, for a host to
// inspect after Execute returns.
func (e *Environment) Names() map[string]values.Value {
	out := make(map[string]values.Value, len(e.locals))
	for k, v := range e.locals {
		out[k] = v
	}
	return out
}
