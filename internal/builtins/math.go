package builtins

import (
	"math"

	"draconic/internal/errors"
	"draconic/internal/numeric"
	"draconic/internal/values"
)

func mathMembers() map[string]values.Value {
	unary := func(name string, fn func(float64) float64) values.Value {
		return &values.Native{Name: name, Fn: func(args []values.Value) (values.Value, error) {
			if len(args) != 1 {
				return nil, errors.RuntimeTypeErrorf(errors.Location{}, "math.%s() takes exactly one argument (%d given)", name, len(args))
			}
			f, ok := numeric.ToFloat(args[0])
			if !ok {
				return nil, errors.RuntimeTypeErrorf(errors.Location{}, "math.%s() argument must be a number, not '%s'", name, args[0].Type())
			}
			return values.Float(fn(float64(f))), nil
		}}
	}
	return map[string]values.Value{
		"sqrt":  unary("sqrt", math.Sqrt),
		"floor": unary("floor", math.Floor),
		"ceil":  unary("ceil", math.Ceil),
		"sin":   unary("sin", math.Sin),
		"cos":   unary("cos", math.Cos),
		"log":   unary("log", math.Log),
		"pow": &values.Native{Name: "pow", Fn: func(args []values.Value) (values.Value, error) {
			if len(args) != 2 {
				return nil, errors.RuntimeTypeErrorf(errors.Location{}, "math.pow() takes exactly two arguments (%d given)", len(args))
			}
			base, ok1 := numeric.ToFloat(args[0])
			exp, ok2 := numeric.ToFloat(args[1])
			if !ok1 || !ok2 {
				return nil, errors.RuntimeTypeErrorf(errors.Location{}, "math.pow() arguments must be numbers")
			}
			return values.Float(math.Pow(float64(base), float64(exp))), nil
		}},
		"pi": values.Float(math.Pi),
		"e":  values.Float(math.E),
	}
}
