package builtins

import (
	"fmt"
	"math/big"
	"os"
	"sort"
	"strings"

	"draconic/internal/config"
	"draconic/internal/container"
	"draconic/internal/errors"
	"draconic/internal/eval"
	"draconic/internal/numeric"
	"draconic/internal/repr"
	"draconic/internal/values"
)

func coreFuncs(cfg *config.Config) map[string]values.NativeFunc {
	return map[string]values.NativeFunc{
		"print":  builtinPrint,
		"len":    builtinLen,
		"type":   builtinType(cfg),
		"range":  builtinRange(cfg),
		"abs":    builtinAbs(cfg),
		"min":    builtinMinMax(false),
		"max":    builtinMinMax(true),
		"sum":    builtinSum(cfg),
		"sorted": builtinSorted(cfg),
		"bool":   builtinBool,
		"int":    builtinInt(cfg),
		"float":  builtinFloat,
		"str":    builtinStr(cfg),
		"repr":   builtinRepr(cfg),
		"list":   builtinList(cfg),
		"set":    builtinSet(cfg),
		"dict":   builtinDict(cfg),
		"tuple":  builtinTuple,
	}
}

func builtinPrint(args []values.Value) (values.Value, error) {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = repr.Str(a)
	}
	fmt.Fprintln(os.Stdout, strings.Join(parts, " "))
	return values.None, nil
}

func builtinLen(args []values.Value) (values.Value, error) {
	if len(args) != 1 {
		return nil, errors.RuntimeTypeErrorf(errors.Location{}, "len() takes exactly one argument (%d given)", len(args))
	}
	if t, ok := args[0].(*values.Tuple); ok {
		return values.NewInt(int64(len(t.Elements))), nil
	}
	n, ok := container.KnownLen(args[0])
	if !ok {
		return nil, errors.RuntimeTypeErrorf(errors.Location{}, "object of type '%s' has no len()", args[0].Type())
	}
	return values.NewInt(int64(n)), nil
}

func builtinType(cfg *config.Config) values.NativeFunc {
	return func(args []values.Value) (values.Value, error) {
		if len(args) != 1 {
			return nil, errors.RuntimeTypeErrorf(errors.Location{}, "type() takes exactly one argument (%d given)", len(args))
		}
		return container.NewSafeStr(cfg, args[0].Type())
	}
}

func builtinRange(cfg *config.Config) values.NativeFunc {
	return func(args []values.Value) (values.Value, error) {
		var start, stop, step int64 = 0, 0, 1
		asI := func(v values.Value) (int64, error) {
			i, ok := asIntArg(v)
			if !ok {
				return 0, errors.RuntimeTypeErrorf(errors.Location{}, "range() arguments must be integers")
			}
			return i, nil
		}
		switch len(args) {
		case 1:
			v, err := asI(args[0])
			if err != nil {
				return nil, err
			}
			stop = v
		case 2:
			v0, err := asI(args[0])
			if err != nil {
				return nil, err
			}
			v1, err := asI(args[1])
			if err != nil {
				return nil, err
			}
			start, stop = v0, v1
		case 3:
			v0, err := asI(args[0])
			if err != nil {
				return nil, err
			}
			v1, err := asI(args[1])
			if err != nil {
				return nil, err
			}
			v2, err := asI(args[2])
			if err != nil {
				return nil, err
			}
			start, stop, step = v0, v1, v2
			if step == 0 {
				return nil, errors.RuntimeTypeErrorf(errors.Location{}, "range() arg 3 must not be zero")
			}
		default:
			return nil, errors.RuntimeTypeErrorf(errors.Location{}, "range() takes from 1 to 3 arguments (%d given)", len(args))
		}
		var items []values.Value
		if step > 0 {
			for i := start; i < stop; i += step {
				items = append(items, values.NewInt(i))
			}
		} else {
			for i := start; i > stop; i += step {
				items = append(items, values.NewInt(i))
			}
		}
		return container.NewSafeList(cfg, items)
	}
}

func builtinAbs(cfg *config.Config) values.NativeFunc {
	return func(args []values.Value) (values.Value, error) {
		if len(args) != 1 {
			return nil, errors.RuntimeTypeErrorf(errors.Location{}, "abs() takes exactly one argument (%d given)", len(args))
		}
		switch v := args[0].(type) {
		case values.Int:
			return values.NewIntFromBig(new(big.Int).Abs(v.V)), nil
		case values.Bool:
			return v.ToInt(), nil
		case values.Float:
			if v < 0 {
				return -v, nil
			}
			return v, nil
		default:
			return nil, errors.RuntimeTypeErrorf(errors.Location{}, "bad operand type for abs(): '%s'", args[0].Type())
		}
	}
}

func builtinMinMax(wantMax bool) values.NativeFunc {
	return func(args []values.Value) (values.Value, error) {
		items, err := variadicOrSingleIterable("min/max", args)
		if err != nil {
			return nil, err
		}
		if len(items) == 0 {
			return nil, errors.RuntimeTypeErrorf(errors.Location{}, "min()/max() arg is an empty sequence")
		}
		best := items[0]
		for _, it := range items[1:] {
			less, err := eval.LessThan(best, it)
			if err != nil {
				return nil, err
			}
			if wantMax && less {
				best = it
			}
			if !wantMax {
				less2, err := eval.LessThan(it, best)
				if err != nil {
					return nil, err
				}
				if less2 {
					best = it
				}
			}
		}
		return best, nil
	}
}

func builtinSum(cfg *config.Config) values.NativeFunc {
	return func(args []values.Value) (values.Value, error) {
		if len(args) < 1 || len(args) > 2 {
			return nil, errors.RuntimeTypeErrorf(errors.Location{}, "sum() takes 1 or 2 arguments (%d given)", len(args))
		}
		items, err := container.Elements(args[0])
		if err != nil {
			return nil, err
		}
		var total values.Value = values.NewInt(0)
		if len(args) == 2 {
			total = args[1]
		}
		for _, it := range items {
			total, err = addNumeric(cfg, total, it)
			if err != nil {
				return nil, err
			}
		}
		return total, nil
	}
}

func addNumeric(cfg *config.Config, a, b values.Value) (values.Value, error) {
	af, aIsFloat := numeric.ToFloat(a)
	if aIsFloat {
		bf, ok := numeric.ToFloat(b)
		if !ok {
			return nil, errors.RuntimeTypeErrorf(errors.Location{}, "unsupported operand type(s) for +: '%s' and '%s'", a.Type(), b.Type())
		}
		if isFloatKind(a) || isFloatKind(b) {
			return numeric.FAdd(af, bf), nil
		}
	}
	ai, aok := asIntArgValue(a)
	bi, bok := asIntArgValue(b)
	if aok && bok {
		return numeric.Add(cfg, ai, bi, errors.Location{})
	}
	return nil, errors.RuntimeTypeErrorf(errors.Location{}, "unsupported operand type(s) for +: '%s' and '%s'", a.Type(), b.Type())
}

func isFloatKind(v values.Value) bool {
	_, ok := v.(values.Float)
	return ok
}

func asIntArgValue(v values.Value) (values.Int, bool) {
	switch t := v.(type) {
	case values.Int:
		return t, true
	case values.Bool:
		return t.ToInt(), true
	default:
		return values.Int{}, false
	}
}

func builtinSorted(cfg *config.Config) values.NativeFunc {
	return func(args []values.Value) (values.Value, error) {
		if len(args) < 1 || len(args) > 2 {
			return nil, errors.RuntimeTypeErrorf(errors.Location{}, "sorted() takes 1 or 2 arguments (%d given)", len(args))
		}
		items, err := container.Elements(args[0])
		if err != nil {
			return nil, err
		}
		reverse := false
		if len(args) == 2 {
			reverse = eval.Truthy(args[1])
		}
		out := append([]values.Value(nil), items...)
		var sortErr error
		sort.SliceStable(out, func(i, j int) bool {
			if sortErr != nil {
				return false
			}
			a, b := out[i], out[j]
			if reverse {
				a, b = b, a
			}
			less, err := eval.LessThan(a, b)
			if err != nil {
				sortErr = err
				return false
			}
			return less
		})
		if sortErr != nil {
			return nil, sortErr
		}
		return container.NewSafeList(cfg, out)
	}
}

func builtinBool(args []values.Value) (values.Value, error) {
	if len(args) == 0 {
		return values.Bool(false), nil
	}
	if len(args) != 1 {
		return nil, errors.RuntimeTypeErrorf(errors.Location{}, "bool() takes at most one argument (%d given)", len(args))
	}
	return values.Bool(eval.Truthy(args[0])), nil
}

func builtinInt(cfg *config.Config) values.NativeFunc {
	return func(args []values.Value) (values.Value, error) {
		if len(args) == 0 {
			return values.NewInt(0), nil
		}
		if len(args) != 1 {
			return nil, errors.RuntimeTypeErrorf(errors.Location{}, "int() takes at most one argument (%d given)", len(args))
		}
		var v *big.Int
		switch t := args[0].(type) {
		case values.Int:
			v = new(big.Int).Set(t.V)
		case values.Bool:
			v = t.ToInt().V
		case values.Float:
			v, _ = big.NewFloat(float64(t)).Int(nil)
		case *container.SafeStr:
			parsed, ok := new(big.Int).SetString(strings.TrimSpace(t.String()), 10)
			if !ok {
				return nil, errors.RuntimeTypeErrorf(errors.Location{}, "invalid literal for int(): %s", repr.Repr(t))
			}
			v = parsed
		default:
			return nil, errors.RuntimeTypeErrorf(errors.Location{}, "int() argument must be a string, a bytes-like object or a number, not '%s'", args[0].Type())
		}
		if !numeric.InBounds(cfg, v) {
			return nil, errors.NumberTooHighf(errors.Location{}, "int() result %s is outside the permitted range", v.String())
		}
		return values.NewIntFromBig(v), nil
	}
}

func builtinFloat(args []values.Value) (values.Value, error) {
	if len(args) == 0 {
		return values.Float(0), nil
	}
	if len(args) != 1 {
		return nil, errors.RuntimeTypeErrorf(errors.Location{}, "float() takes at most one argument (%d given)", len(args))
	}
	switch t := args[0].(type) {
	case values.Float:
		return t, nil
	case values.Int:
		f := new(big.Float).SetInt(t.V)
		out, _ := f.Float64()
		return values.Float(out), nil
	case values.Bool:
		if t {
			return values.Float(1), nil
		}
		return values.Float(0), nil
	case *container.SafeStr:
		var f float64
		if _, err := fmt.Sscanf(strings.TrimSpace(t.String()), "%g", &f); err != nil {
			return nil, errors.RuntimeTypeErrorf(errors.Location{}, "could not convert string to float: %s", repr.Repr(t))
		}
		return values.Float(f), nil
	default:
		return nil, errors.RuntimeTypeErrorf(errors.Location{}, "float() argument must be a string or a number, not '%s'", args[0].Type())
	}
}

func builtinStr(cfg *config.Config) values.NativeFunc {
	return func(args []values.Value) (values.Value, error) {
		if len(args) == 0 {
			return container.NewSafeStr(cfg, "")
		}
		if len(args) != 1 {
			return nil, errors.RuntimeTypeErrorf(errors.Location{}, "str() takes at most one argument (%d given)", len(args))
		}
		return container.NewSafeStr(cfg, repr.Str(args[0]))
	}
}

func builtinRepr(cfg *config.Config) values.NativeFunc {
	return func(args []values.Value) (values.Value, error) {
		if len(args) != 1 {
			return nil, errors.RuntimeTypeErrorf(errors.Location{}, "repr() takes exactly one argument (%d given)", len(args))
		}
		return container.NewSafeStr(cfg, repr.Repr(args[0]))
	}
}

func builtinList(cfg *config.Config) values.NativeFunc {
	return func(args []values.Value) (values.Value, error) {
		if len(args) == 0 {
			return container.NewSafeList(cfg, nil)
		}
		if len(args) != 1 {
			return nil, errors.RuntimeTypeErrorf(errors.Location{}, "list() takes at most one argument (%d given)", len(args))
		}
		return container.NewSafeListFromIterable(cfg, args[0])
	}
}

func builtinSet(cfg *config.Config) values.NativeFunc {
	return func(args []values.Value) (values.Value, error) {
		if len(args) == 0 {
			return container.NewSafeSet(cfg, nil)
		}
		if len(args) != 1 {
			return nil, errors.RuntimeTypeErrorf(errors.Location{}, "set() takes at most one argument (%d given)", len(args))
		}
		return container.NewSafeSetFromIterable(cfg, args[0])
	}
}

func builtinDict(cfg *config.Config) values.NativeFunc {
	return func(args []values.Value) (values.Value, error) {
		if len(args) == 0 {
			return container.NewSafeDict(cfg, nil)
		}
		if len(args) != 1 {
			return nil, errors.RuntimeTypeErrorf(errors.Location{}, "dict() takes at most one argument (%d given)", len(args))
		}
		if d, ok := args[0].(*container.SafeDict); ok {
			return container.NewSafeDict(cfg, zipDict(d))
		}
		return container.NewSafeDictFromPairs(cfg, args[0])
	}
}

func zipDict(d *container.SafeDict) []container.KV {
	keys, vals := d.Keys(), d.Values()
	out := make([]container.KV, len(keys))
	for i := range keys {
		out[i] = container.KV{Key: keys[i], Value: vals[i]}
	}
	return out
}

func builtinTuple(args []values.Value) (values.Value, error) {
	if len(args) == 0 {
		return &values.Tuple{}, nil
	}
	if len(args) != 1 {
		return nil, errors.RuntimeTypeErrorf(errors.Location{}, "tuple() takes at most one argument (%d given)", len(args))
	}
	if t, ok := args[0].(*values.Tuple); ok {
		return &values.Tuple{Elements: append([]values.Value(nil), t.Elements...)}, nil
	}
	elems, err := container.Elements(args[0])
	if err != nil {
		return nil, err
	}
	return &values.Tuple{Elements: elems}, nil
}

func asIntArg(v values.Value) (int64, bool) {
	switch t := v.(type) {
	case values.Int:
		return t.Int64(), true
	case values.Bool:
		return t.ToInt().Int64(), true
	default:
		return 0, false
	}
}

func variadicOrSingleIterable(who string, args []values.Value) ([]values.Value, error) {
	if len(args) == 0 {
		return nil, errors.RuntimeTypeErrorf(errors.Location{}, "%s() takes at least one argument", who)
	}
	if len(args) == 1 {
		if _, ok := container.KnownLen(args[0]); ok {
			return container.Elements(args[0])
		}
		if t, ok := args[0].(*values.Tuple); ok {
			return t.Elements, nil
		}
		return []values.Value{args[0]}, nil
	}
	return args, nil
}
