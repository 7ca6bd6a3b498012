package builtins

import (
	"draconic/internal/config"
	"draconic/internal/container"
	"draconic/internal/errors"
	"draconic/internal/eval"
	"draconic/internal/values"
)

// functionalMembers builds the "functional" package's map/filter/reduce,
// each applying a script-level callable through d.Call — the Evaluator's
// own Call method, late-bound per top-level execution so the applied
// callable runs under that execution's Governor and frame stack.
func functionalMembers(cfg *config.Config, d *Dispatcher) map[string]values.Value {
	dispatch := func(fn values.Value, args []values.Value) (values.Value, error) {
		if d == nil || d.Call == nil {
			return nil, errors.RuntimeTypeErrorf(errors.Location{}, "functional: no active interpreter to apply a callable")
		}
		return d.Call(fn, args)
	}
	return map[string]values.Value{
		"map": &values.Native{Name: "map", Fn: func(args []values.Value) (values.Value, error) {
			if len(args) != 2 {
				return nil, errors.RuntimeTypeErrorf(errors.Location{}, "functional.map() takes exactly two arguments (%d given)", len(args))
			}
			elems, err := container.Elements(args[1])
			if err != nil {
				return nil, err
			}
			out := make([]values.Value, len(elems))
			for i, el := range elems {
				v, err := dispatch(args[0], []values.Value{el})
				if err != nil {
					return nil, err
				}
				out[i] = v
			}
			return container.NewSafeList(cfg, out)
		}},
		"filter": &values.Native{Name: "filter", Fn: func(args []values.Value) (values.Value, error) {
			if len(args) != 2 {
				return nil, errors.RuntimeTypeErrorf(errors.Location{}, "functional.filter() takes exactly two arguments (%d given)", len(args))
			}
			elems, err := container.Elements(args[1])
			if err != nil {
				return nil, err
			}
			var out []values.Value
			for _, el := range elems {
				v, err := dispatch(args[0], []values.Value{el})
				if err != nil {
					return nil, err
				}
				if eval.Truthy(v) {
					out = append(out, el)
				}
			}
			return container.NewSafeList(cfg, out)
		}},
		"reduce": &values.Native{Name: "reduce", Fn: func(args []values.Value) (values.Value, error) {
			if len(args) < 2 || len(args) > 3 {
				return nil, errors.RuntimeTypeErrorf(errors.Location{}, "functional.reduce() takes two or three arguments (%d given)", len(args))
			}
			elems, err := container.Elements(args[1])
			if err != nil {
				return nil, err
			}
			var acc values.Value
			start := 0
			if len(args) == 3 {
				acc = args[2]
			} else {
				if len(elems) == 0 {
					return nil, errors.RuntimeTypeErrorf(errors.Location{}, "functional.reduce() of empty sequence with no initial value")
				}
				acc = elems[0]
				start = 1
			}
			for _, el := range elems[start:] {
				acc, err = dispatch(args[0], []values.Value{acc, el})
				if err != nil {
					return nil, err
				}
			}
			return acc, nil
		}},
	}
}
