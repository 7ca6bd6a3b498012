// Package builtins supplies the host-authored Go values a Config's
// builtins tier is populated with: a small set of core global functions
// (print, len, range, str, ...) plus named packages (math, string,
// functional) a host opts into individually. There is no script-level
// `import` here, only host-side Go composition.
package builtins

import (
	"draconic/internal/config"
	"draconic/internal/values"
)

// Package is a named bundle of related functions/constants, registered
// into an interpreter's builtins tier as a single Opaque namespace object
// (so scripts reach its members as `math.sqrt(x)`, `string.upper(s)`,
// etc.).
type Package struct {
	Name    string
	Members map[string]values.Value
}

// AsValue renders the package as the Opaque namespace object a script
// attribute-accesses into.
func (p Package) AsValue() *values.Opaque {
	methods := make(map[string]values.NativeFunc, len(p.Members))
	for name, v := range p.Members {
		if nv, ok := v.(*values.Native); ok {
			methods[name] = nv.Fn
			continue
		}
		// Non-callable members (constants like math.pi) are exposed
		// through a zero-arg native so attribute dispatch, which only
		// ever resolves through Opaque.Methods, can still reach them.
		captured := v
		methods[name] = func(args []values.Value) (values.Value, error) { return captured, nil }
	}
	return &values.Opaque{TypeName: "module " + p.Name, Methods: methods}
}

// Dispatcher is the late-bound callback the functional package (map,
// filter, reduce) uses to invoke a script-level callable. It must be
// pointed at the active Evaluator's Call method for the duration of one
// top-level Evaluate/Execute call (internal/interp does this), since
// applying a callable needs that call's own Governor and frame stack, not
// just the callee's closure.
type Dispatcher struct {
	Call func(fn values.Value, args []values.Value) (values.Value, error)
}

// Core returns the always-present global functions: print, len, type,
// range, abs, min, max, sum, sorted, bool, int, float, str, repr, list,
// set, dict, tuple. A host that wants a bare envelope with no standard
// library at all can ignore this and call SetBuiltins with its own map
// instead.
func Core(cfg *config.Config) map[string]values.Value {
	out := map[string]values.Value{}
	for name, fn := range coreFuncs(cfg) {
		out[name] = &values.Native{Name: name, Fn: fn}
	}
	return out
}

// Math returns the "math" package: sqrt, floor, ceil, sin, cos, log, pow,
// pi, e.
func Math() Package {
	return Package{Name: "math", Members: mathMembers()}
}

// Strings returns the "string" package: upper, lower, strip, split, join,
// replace, contains, startswith, endswith.
func Strings(cfg *config.Config) Package {
	return Package{Name: "string", Members: stringMembers(cfg)}
}

// Functional returns the "functional" package: map, filter, reduce, over
// the safe container types, applying a script-level callable through d.
func Functional(cfg *config.Config, d *Dispatcher) Package {
	return Package{Name: "functional", Members: functionalMembers(cfg, d)}
}

// All composes the core globals with every named package registered as
// an Opaque namespace under its own name — the default builtins tier
// interp.New populates an Interpreter with.
func All(cfg *config.Config, d *Dispatcher) map[string]values.Value {
	out := Core(cfg)
	for _, pkg := range []Package{Math(), Strings(cfg), Functional(cfg, d)} {
		out[pkg.Name] = pkg.AsValue()
	}
	return out
}
