// Package container implements the safe container types — SafeList,
// SafeSet, SafeDict, SafeStr — that transparently replace native Go
// slices/maps/strings inside the Evaluator and enforce a length bound
// (Config.MaxConstLen) on every operation that can grow them.
//
// Outside the Evaluator's own value universe there is no such thing as a
// "native" container: a host's builtins map is required to hold
// values.Value already (internal/interp's SetBuiltins takes no raw Go
// slices/maps), so nothing ever registers an unwrapped container. The one
// real call site for Wrap is in internal/eval, at the moment a NativeFunc
// returns: its result is passed through Wrap before it re-enters the
// Evaluator, in case a host callable built a plain Go slice/map/string
// rather than constructing a Safe* value directly. From that point on
// every container value flowing through the Evaluator is already safe —
// the property that no native container ever decays back into user code
// holds vacuously, since there is no pathway left for a raw one to reach
// it.
package container

import (
	"fmt"

	"draconic/internal/config"
	"draconic/internal/errors"
	"draconic/internal/values"
)

// checkLen raises IterableTooLong if n exceeds the configured bound.
func checkLen(cfg *config.Config, n int, what string) error {
	if n > cfg.MaxConstLen {
		return errors.IterableTooLongf(errors.Location{}, "%s would have %d elements, exceeding the limit of %d", what, n, cfg.MaxConstLen)
	}
	return nil
}

// Elements returns the logical sequence of values a container-like Value
// iterates as: a SafeList's items, a SafeSet's members (in insertion
// order), a SafeDict's keys, or a SafeStr's characters (each a
// single-character SafeStr, matching the borrowed language's
// string-is-iterable-of-characters semantics). It is the building block
// for extend/update/list()/set()/dict() construction from "any iterable".
func Elements(v values.Value) ([]values.Value, error) {
	switch c := v.(type) {
	case *values.Tuple:
		out := make([]values.Value, len(c.Elements))
		copy(out, c.Elements)
		return out, nil
	case *SafeList:
		out := make([]values.Value, len(c.items))
		copy(out, c.items)
		return out, nil
	case *SafeSet:
		out := make([]values.Value, 0, len(c.order))
		for _, k := range c.order {
			out = append(out, c.members[k])
		}
		return out, nil
	case *SafeDict:
		out := make([]values.Value, 0, len(c.order))
		for _, k := range c.order {
			out = append(out, c.keys[k])
		}
		return out, nil
	case *SafeStr:
		return c.Chars(), nil
	default:
		return nil, fmt.Errorf("%s object is not iterable", v.Type())
	}
}

// KnownLen reports the length of a container-like Value without
// materializing its elements, and whether the Value has a known length at
// all (used by extend's pre-sizing rule: "known-length iterables:
// len+len(it); unknown-length: accumulate while checking each step").
func KnownLen(v values.Value) (int, bool) {
	switch c := v.(type) {
	case *SafeList:
		return len(c.items), true
	case *SafeSet:
		return len(c.order), true
	case *SafeDict:
		return len(c.order), true
	case *SafeStr:
		return c.Len(), true
	default:
		return 0, false
	}
}

// Wrap converts a raw, host-supplied Go value into the Value the
// Evaluator understands: []values.Value/[]interface{} become a *SafeList,
// map[string]values.Value/map[string]interface{} become a *SafeDict, and a
// Go string becomes a *SafeStr. A value that already satisfies values.Value
// is returned unchanged. Anything else is wrapped as a values.Opaque with
// no exposed methods (read-only, inert).
func Wrap(cfg *config.Config, raw interface{}) (values.Value, error) {
	switch x := raw.(type) {
	case values.Value:
		return x, nil
	case nil:
		return values.None, nil
	case bool:
		return values.Bool(x), nil
	case string:
		return NewSafeStr(cfg, x)
	case int:
		return values.NewInt(int64(x)), nil
	case int64:
		return values.NewInt(x), nil
	case float64:
		return values.Float(x), nil
	case []interface{}:
		items := make([]values.Value, len(x))
		for i, e := range x {
			w, err := Wrap(cfg, e)
			if err != nil {
				return nil, err
			}
			items[i] = w
		}
		return NewSafeList(cfg, items)
	case []values.Value:
		return NewSafeList(cfg, append([]values.Value(nil), x...))
	case map[string]values.Value:
		m := make(map[string]interface{}, len(x))
		for k, v := range x {
			m[k] = v
		}
		return Wrap(cfg, m)
	case map[string]interface{}: // insertion order follows Go's randomized map iteration; dict ordering is otherwise unobserved here
		d, err := NewSafeDict(cfg, nil)
		if err != nil {
			return nil, err
		}
		for k, v := range x {
			w, err := Wrap(cfg, v)
			if err != nil {
				return nil, err
			}
			key, err := NewSafeStr(cfg, k)
			if err != nil {
				return nil, err
			}
			if err := d.Set(key, w); err != nil {
				return nil, err
			}
		}
		return d, nil
	default:
		return &values.Opaque{TypeName: fmt.Sprintf("%T", raw), Native: raw}, nil
	}
}
