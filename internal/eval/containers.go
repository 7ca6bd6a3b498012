package eval

import (
	"strings"

	"draconic/internal/ast"
	"draconic/internal/config"
	"draconic/internal/container"
	"draconic/internal/errors"
	"draconic/internal/values"
)

// evalElements evaluates a list/set/dict display's element expressions,
// expanding any *ast.Starred element by spreading its iterable — disabled
// by default unless the host re-enables the feature.
func (e *Evaluator) evalElements(elems []ast.Expr, loc errors.Location) ([]values.Value, error) {
	out := make([]values.Value, 0, len(elems))
	for _, el := range elems {
		if starred, ok := el.(*ast.Starred); ok {
			if e.cfg.FeatureDisabled(config.FeatureStarredLiteral) {
				return nil, errors.FeatureNotAvailablef(e.loc(starred.Pos), "starred unpacking in a literal display is disabled")
			}
			v, err := e.Eval(starred.Value)
			if err != nil {
				return nil, err
			}
			items, err := container.Elements(v)
			if err != nil {
				return nil, err
			}
			out = append(out, items...)
			continue
		}
		v, err := e.Eval(el)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// boundMethod looks up name as a method on a safe container or Opaque
// value, returning a Native closure bound to recv — how `x.append(1)`
// dispatches once VisitAttribute resolves `x.append`.
func (e *Evaluator) boundMethod(recv values.Value, name string, loc errors.Location) (values.Value, error) {
	switch r := recv.(type) {
	case *container.SafeList:
		return e.listMethod(r, name, loc)
	case *container.SafeSet:
		return e.setMethod(r, name, loc)
	case *container.SafeDict:
		return e.dictMethod(r, name, loc)
	case *container.SafeStr:
		return e.strMethod(r, name, loc)
	case *values.Opaque:
		if fn, ok := r.Methods[name]; ok {
			return &values.Native{Name: name, Fn: fn}, nil
		}
		return nil, errors.RuntimeTypeErrorf(loc, "'%s' object has no attribute '%s'", r.TypeName, name)
	default:
		return nil, errors.RuntimeTypeErrorf(loc, "'%s' object has no attribute '%s'", recv.Type(), name)
	}
}

func noSuchMethod(typ, name string, loc errors.Location) error {
	return errors.RuntimeTypeErrorf(loc, "'%s' object has no attribute '%s'", typ, name)
}

func (e *Evaluator) listMethod(l *container.SafeList, name string, loc errors.Location) (values.Value, error) {
	wrap := func(fn func(args []values.Value) (values.Value, error)) values.Value {
		return &values.Native{Name: name, Fn: fn}
	}
	switch name {
	case "append":
		return wrap(func(args []values.Value) (values.Value, error) {
			if len(args) != 1 {
				return nil, errors.RuntimeTypeErrorf(loc, "append() takes exactly one argument (%d given)", len(args))
			}
			return values.None, l.Append(args[0])
		}), nil
	case "extend":
		return wrap(func(args []values.Value) (values.Value, error) {
			if len(args) != 1 {
				return nil, errors.RuntimeTypeErrorf(loc, "extend() takes exactly one argument (%d given)", len(args))
			}
			return values.None, l.Extend(args[0])
		}), nil
	case "insert":
		return wrap(func(args []values.Value) (values.Value, error) {
			if len(args) != 2 {
				return nil, errors.RuntimeTypeErrorf(loc, "insert() takes exactly two arguments (%d given)", len(args))
			}
			idx, ok := asInt(args[0])
			if !ok {
				return nil, errors.RuntimeTypeErrorf(loc, "insert() index must be an integer")
			}
			return values.None, l.Insert(int(idx.Int64()), args[1])
		}), nil
	case "pop":
		return wrap(func(args []values.Value) (values.Value, error) {
			idx := -1
			if len(args) == 1 {
				n, ok := asInt(args[0])
				if !ok {
					return nil, errors.RuntimeTypeErrorf(loc, "pop() index must be an integer")
				}
				idx = int(n.Int64())
			}
			return l.Pop(idx)
		}), nil
	case "remove":
		return wrap(func(args []values.Value) (values.Value, error) {
			if len(args) != 1 {
				return nil, errors.RuntimeTypeErrorf(loc, "remove() takes exactly one argument (%d given)", len(args))
			}
			for i, it := range l.Items() {
				if eq, err := Equals(it, args[0]); err != nil {
					return nil, err
				} else if eq {
					return values.None, l.Delete(i)
				}
			}
			return nil, errors.RuntimeTypeErrorf(loc, "list.remove(x): x not in list")
		}), nil
	case "clear":
		return wrap(func(args []values.Value) (values.Value, error) {
			l.Clear()
			return values.None, nil
		}), nil
	case "reverse":
		return wrap(func(args []values.Value) (values.Value, error) {
			l.Reverse()
			return values.None, nil
		}), nil
	case "sort":
		return wrap(func(args []values.Value) (values.Value, error) {
			return values.None, e.sortInPlace(l, loc)
		}), nil
	default:
		return nil, noSuchMethod("list", name, loc)
	}
}

func (e *Evaluator) sortInPlace(l *container.SafeList, loc errors.Location) error {
	items := l.Items()
	for i := 1; i < len(items); i++ {
		for j := i; j > 0; j-- {
			less, err := ordered("<", items[j], items[j-1], loc)
			if err != nil {
				return err
			}
			if !less {
				break
			}
			items[j], items[j-1] = items[j-1], items[j]
		}
	}
	sorted, err := container.NewSafeList(e.cfg, items)
	if err != nil {
		return err
	}
	l.Clear()
	return l.Extend(sorted)
}

func (e *Evaluator) setMethod(s *container.SafeSet, name string, loc errors.Location) (values.Value, error) {
	wrap := func(fn func(args []values.Value) (values.Value, error)) values.Value {
		return &values.Native{Name: name, Fn: fn}
	}
	switch name {
	case "add":
		return wrap(func(args []values.Value) (values.Value, error) {
			if len(args) != 1 {
				return nil, errors.RuntimeTypeErrorf(loc, "add() takes exactly one argument (%d given)", len(args))
			}
			return values.None, s.Add(args[0])
		}), nil
	case "remove", "discard":
		return wrap(func(args []values.Value) (values.Value, error) {
			if len(args) != 1 {
				return nil, errors.RuntimeTypeErrorf(loc, "%s() takes exactly one argument (%d given)", name, len(args))
			}
			return values.None, s.Remove(args[0])
		}), nil
	case "update":
		return wrap(func(args []values.Value) (values.Value, error) {
			if len(args) != 1 {
				return nil, errors.RuntimeTypeErrorf(loc, "update() takes exactly one argument (%d given)", len(args))
			}
			return values.None, s.Update(args[0])
		}), nil
	case "union":
		return wrap(func(args []values.Value) (values.Value, error) {
			if len(args) != 1 {
				return nil, errors.RuntimeTypeErrorf(loc, "union() takes exactly one argument (%d given)", len(args))
			}
			return s.Union(args[0])
		}), nil
	case "intersection":
		return wrap(func(args []values.Value) (values.Value, error) {
			if len(args) != 1 {
				return nil, errors.RuntimeTypeErrorf(loc, "intersection() takes exactly one argument (%d given)", len(args))
			}
			return s.Intersection(args[0])
		}), nil
	case "intersection_update":
		return wrap(func(args []values.Value) (values.Value, error) {
			if len(args) != 1 {
				return nil, errors.RuntimeTypeErrorf(loc, "intersection_update() takes exactly one argument (%d given)", len(args))
			}
			return values.None, s.IntersectionUpdate(args[0])
		}), nil
	default:
		return nil, noSuchMethod("set", name, loc)
	}
}

func (e *Evaluator) dictMethod(d *container.SafeDict, name string, loc errors.Location) (values.Value, error) {
	wrap := func(fn func(args []values.Value) (values.Value, error)) values.Value {
		return &values.Native{Name: name, Fn: fn}
	}
	switch name {
	case "get":
		return wrap(func(args []values.Value) (values.Value, error) {
			if len(args) < 1 || len(args) > 2 {
				return nil, errors.RuntimeTypeErrorf(loc, "get() takes one or two arguments (%d given)", len(args))
			}
			v, found, err := d.Get(args[0])
			if err != nil {
				return nil, err
			}
			if found {
				return v, nil
			}
			if len(args) == 2 {
				return args[1], nil
			}
			return values.None, nil
		}), nil
	case "keys":
		return wrap(func(args []values.Value) (values.Value, error) {
			return container.NewSafeList(e.cfg, d.Keys())
		}), nil
	case "values":
		return wrap(func(args []values.Value) (values.Value, error) {
			return container.NewSafeList(e.cfg, d.Values())
		}), nil
	case "items":
		return wrap(func(args []values.Value) (values.Value, error) {
			return container.NewSafeList(e.cfg, d.Items())
		}), nil
	case "update":
		return wrap(func(args []values.Value) (values.Value, error) {
			if len(args) != 1 {
				return nil, errors.RuntimeTypeErrorf(loc, "update() takes exactly one argument (%d given)", len(args))
			}
			other, ok := args[0].(*container.SafeDict)
			if !ok {
				return nil, errors.RuntimeTypeErrorf(loc, "update() argument must be a dict")
			}
			return values.None, d.Update(other)
		}), nil
	case "pop":
		return wrap(func(args []values.Value) (values.Value, error) {
			if len(args) < 1 || len(args) > 2 {
				return nil, errors.RuntimeTypeErrorf(loc, "pop() takes one or two arguments (%d given)", len(args))
			}
			v, found, err := d.Get(args[0])
			if err != nil {
				return nil, err
			}
			if !found {
				if len(args) == 2 {
					return args[1], nil
				}
				return nil, errors.RuntimeTypeErrorf(loc, "pop(): key not found")
			}
			return v, d.Delete(args[0])
		}), nil
	default:
		return nil, noSuchMethod("dict", name, loc)
	}
}

func (e *Evaluator) strMethod(s *container.SafeStr, name string, loc errors.Location) (values.Value, error) {
	wrap := func(fn func(args []values.Value) (values.Value, error)) values.Value {
		return &values.Native{Name: name, Fn: fn}
	}
	switch name {
	case "upper":
		return wrap(func(args []values.Value) (values.Value, error) {
			return container.NewSafeStr(e.cfg, strings.ToUpper(s.String()))
		}), nil
	case "lower":
		return wrap(func(args []values.Value) (values.Value, error) {
			return container.NewSafeStr(e.cfg, strings.ToLower(s.String()))
		}), nil
	case "strip":
		return wrap(func(args []values.Value) (values.Value, error) {
			return container.NewSafeStr(e.cfg, strings.TrimSpace(s.String()))
		}), nil
	case "split":
		return wrap(func(args []values.Value) (values.Value, error) {
			var parts []string
			if len(args) == 1 {
				ss, ok := args[0].(*container.SafeStr)
				if !ok {
					return nil, errors.RuntimeTypeErrorf(loc, "split() separator must be a string")
				}
				parts = strings.Split(s.String(), ss.String())
			} else {
				parts = strings.Fields(s.String())
			}
			items := make([]values.Value, len(parts))
			for i, p := range parts {
				sv, err := container.NewSafeStr(e.cfg, p)
				if err != nil {
					return nil, err
				}
				items[i] = sv
			}
			return container.NewSafeList(e.cfg, items)
		}), nil
	case "join":
		return wrap(func(args []values.Value) (values.Value, error) {
			if len(args) != 1 {
				return nil, errors.RuntimeTypeErrorf(loc, "join() takes exactly one argument (%d given)", len(args))
			}
			elems, err := container.Elements(args[0])
			if err != nil {
				return nil, err
			}
			parts := make([]string, len(elems))
			for i, el := range elems {
				es, ok := el.(*container.SafeStr)
				if !ok {
					return nil, errors.RuntimeTypeErrorf(loc, "sequence item %d: expected str instance", i)
				}
				parts[i] = es.String()
			}
			return container.NewSafeStr(e.cfg, strings.Join(parts, s.String()))
		}), nil
	default:
		return nil, noSuchMethod("str", name, loc)
	}
}
