package eval

import (
	"strings"

	"draconic/internal/ast"
	"draconic/internal/container"
	"draconic/internal/environment"
	"draconic/internal/errors"
	"draconic/internal/repr"
	"draconic/internal/values"
)

func (e *Evaluator) VisitIndex(n *ast.Index) (interface{}, error) {
	obj, err := e.Eval(n.Object)
	if err != nil {
		return nil, err
	}
	key, err := e.Eval(n.Key)
	if err != nil {
		return nil, err
	}
	return e.subscriptGet(obj, key, e.loc(n.Pos))
}

func (e *Evaluator) subscriptGet(obj, key values.Value, loc errors.Location) (values.Value, error) {
	switch c := obj.(type) {
	case *container.SafeList:
		idx, ok := asInt(key)
		if !ok {
			return nil, errors.RuntimeTypeErrorf(loc, "list indices must be integers")
		}
		return c.Get(int(idx.Int64()))
	case *container.SafeStr:
		idx, ok := asInt(key)
		if !ok {
			return nil, errors.RuntimeTypeErrorf(loc, "string indices must be integers")
		}
		return c.At(int(idx.Int64()))
	case *values.Tuple:
		idx, ok := asInt(key)
		if !ok {
			return nil, errors.RuntimeTypeErrorf(loc, "tuple indices must be integers")
		}
		i := int(idx.Int64())
		if i < 0 {
			i += len(c.Elements)
		}
		if i < 0 || i >= len(c.Elements) {
			return nil, errors.RuntimeTypeErrorf(loc, "tuple index out of range")
		}
		return c.Elements[i], nil
	case *container.SafeDict:
		v, found, err := c.Get(key)
		if err != nil {
			return nil, err
		}
		if !found {
			return nil, errors.RuntimeTypeErrorf(loc, "key not found: %s", repr.Repr(key))
		}
		return v, nil
	case *values.Opaque:
		if c.Index == nil {
			return nil, errors.RuntimeTypeErrorf(loc, "'%s' object is not subscriptable", obj.Type())
		}
		return c.Index(key)
	default:
		return nil, errors.RuntimeTypeErrorf(loc, "'%s' object is not subscriptable", obj.Type())
	}
}

func (e *Evaluator) VisitSlice(n *ast.Slice) (interface{}, error) {
	obj, err := e.Eval(n.Object)
	if err != nil {
		return nil, err
	}
	length, ok := container.KnownLen(obj)
	if t, isTuple := obj.(*values.Tuple); isTuple {
		length, ok = len(t.Elements), true
	}
	if !ok {
		return nil, errors.RuntimeTypeErrorf(e.loc(n.Pos), "'%s' object is not sliceable", obj.Type())
	}
	lo, hi, step, err := e.resolveSlice(n, length)
	if err != nil {
		return nil, err
	}
	idxs := sliceIndices(lo, hi, step)
	switch c := obj.(type) {
	case *container.SafeList:
		items := c.Items()
		out := make([]values.Value, len(idxs))
		for i, idx := range idxs {
			out[i] = items[idx]
		}
		return container.NewSafeList(e.cfg, out)
	case *container.SafeStr:
		chars := c.Chars()
		var sb strings.Builder
		for _, idx := range idxs {
			sb.WriteString(chars[idx].(*container.SafeStr).String())
		}
		return container.NewSafeStr(e.cfg, sb.String())
	case *values.Tuple:
		out := make([]values.Value, len(idxs))
		for i, idx := range idxs {
			out[i] = c.Elements[idx]
		}
		return &values.Tuple{Elements: out}, nil
	default:
		return nil, errors.RuntimeTypeErrorf(e.loc(n.Pos), "'%s' object is not sliceable", obj.Type())
	}
}

func (e *Evaluator) resolveSlice(n *ast.Slice, length int) (lo, hi, step int, err error) {
	step = 1
	if n.Step != nil {
		v, err2 := e.Eval(n.Step)
		if err2 != nil {
			return 0, 0, 0, err2
		}
		iv, ok := asInt(v)
		if !ok || iv.Sign() == 0 {
			return 0, 0, 0, errors.RuntimeTypeErrorf(e.loc(n.Pos), "slice step must be a nonzero integer")
		}
		step = int(iv.Int64())
	}
	if step > 0 {
		lo, hi = 0, length
	} else {
		lo, hi = length-1, -length-1
	}
	if n.Lo != nil {
		v, err2 := e.Eval(n.Lo)
		if err2 != nil {
			return 0, 0, 0, err2
		}
		iv, ok := asInt(v)
		if !ok {
			return 0, 0, 0, errors.RuntimeTypeErrorf(e.loc(n.Pos), "slice indices must be integers")
		}
		lo = normalizeSliceBound(int(iv.Int64()), length, step > 0, true)
	}
	if n.Hi != nil {
		v, err2 := e.Eval(n.Hi)
		if err2 != nil {
			return 0, 0, 0, err2
		}
		iv, ok := asInt(v)
		if !ok {
			return 0, 0, 0, errors.RuntimeTypeErrorf(e.loc(n.Pos), "slice indices must be integers")
		}
		hi = normalizeSliceBound(int(iv.Int64()), length, step > 0, false)
	}
	return lo, hi, step, nil
}

func normalizeSliceBound(i, length int, forward, isLo bool) int {
	if i < 0 {
		i += length
	}
	if forward {
		if i < 0 {
			i = 0
		}
		if i > length {
			i = length
		}
	} else {
		if isLo {
			if i > length-1 {
				i = length - 1
			}
			if i < -1 {
				i = -1
			}
		} else {
			if i < -1 {
				i = -1
			}
			if i > length-1 {
				i = length - 1
			}
		}
	}
	return i
}

func sliceIndices(lo, hi, step int) []int {
	var out []int
	if step > 0 {
		for i := lo; i < hi; i += step {
			out = append(out, i)
		}
	} else {
		for i := lo; i > hi; i += step {
			out = append(out, i)
		}
	}
	return out
}

func (e *Evaluator) VisitAttribute(n *ast.Attribute) (interface{}, error) {
	obj, err := e.Eval(n.Object)
	if err != nil {
		return nil, err
	}
	return e.boundMethod(obj, n.Attr, e.loc(n.Pos))
}

// VisitCall evaluates the callee and arguments (expanding any *ast.Starred
// argument into the iterable it spreads) and dispatches on the callee's
// concrete value kind.
func (e *Evaluator) VisitCall(n *ast.Call) (interface{}, error) {
	callee, err := e.Eval(n.Callee)
	if err != nil {
		return nil, err
	}
	args, err := e.evalArgs(n.Args, e.loc(n.Pos))
	if err != nil {
		return nil, err
	}
	return e.call(callee, args, e.loc(n.Pos))
}

func (e *Evaluator) evalArgs(exprs []ast.Expr, loc errors.Location) ([]values.Value, error) {
	var out []values.Value
	for _, a := range exprs {
		if s, ok := a.(*ast.Starred); ok {
			v, err := e.Eval(s.Value)
			if err != nil {
				return nil, err
			}
			elems, err := container.Elements(v)
			if err != nil {
				return nil, err
			}
			out = append(out, elems...)
			continue
		}
		v, err := e.Eval(a)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// Call invokes callee with args using this Evaluator's own Governor and
// frame stack — the hook internal/builtins' functional package (map,
// filter, reduce) uses to apply a script-level callable to values it
// produces, since dispatching a Function/Lambda call needs the active
// execution's resource accounting, not just the callee's closure.
func (e *Evaluator) Call(callee values.Value, args []values.Value) (values.Value, error) {
	return e.call(callee, args, errors.Location{})
}

func (e *Evaluator) call(callee values.Value, args []values.Value, loc errors.Location) (values.Value, error) {
	switch fn := callee.(type) {
	case *values.Native:
		result, err := fn.Fn(args)
		if err != nil {
			return nil, err
		}
		return container.Wrap(e.cfg, result)
	case *values.Function:
		return e.callFunction(fn, args, loc)
	case *values.Lambda:
		return e.callLambda(fn, args, loc)
	default:
		return nil, errors.RuntimeTypeErrorf(loc, "'%s' object is not callable", callee.Type())
	}
}

func bindArgs(params []string, defaults []ast.Expr, args []values.Value, env *environment.Environment, e *Evaluator, name string, loc errors.Location) error {
	required := len(params) - len(defaults)
	if len(args) > len(params) {
		return errors.RuntimeTypeErrorf(loc, "%s() takes at most %d arguments (%d given)", name, len(params), len(args))
	}
	if len(args) < required {
		return errors.RuntimeTypeErrorf(loc, "%s() missing required arguments (%d given, %d required)", name, len(args), required)
	}
	for i, p := range params {
		if i < len(args) {
			env.Define(p, args[i])
			continue
		}
		dIdx := i - required
		if dIdx < 0 || dIdx >= len(defaults) || defaults[dIdx] == nil {
			return errors.RuntimeTypeErrorf(loc, "%s() missing argument '%s'", name, p)
		}
		dv, err := e.Eval(defaults[dIdx])
		if err != nil {
			return err
		}
		env.Define(p, dv)
	}
	return nil
}

// callFunction pushes a call-stack frame, builds a fresh child environment
// over the function's closure, binds parameters (applying defaults for
// trailing omitted arguments), and runs the body statements in sequence
// until a Return flow or the end of the body is reached.
func (e *Evaluator) callFunction(fn *values.Function, args []values.Value, loc errors.Location) (values.Value, error) {
	closure, _ := fn.Closure.(*environment.Environment)
	frame := environment.NewChild(closure)
	callerEnv := e.env
	e.env = frame
	e.stack = append(e.stack, errors.StackFrame{Function: fn.Name, Location: loc})
	defer func() {
		e.env = callerEnv
		e.stack = e.stack[:len(e.stack)-1]
	}()
	if err := bindArgs(fn.Params, fn.Defaults, args, frame, e, fn.Name, loc); err != nil {
		return nil, withFrame(err, fn.Name, loc)
	}
	flow, err := e.ExecBlock(fn.Body)
	if err != nil {
		return nil, withFrame(err, fn.Name, loc)
	}
	if flow.Kind == FlowReturn {
		return flow.Value, nil
	}
	return values.None, nil
}

func (e *Evaluator) callLambda(fn *values.Lambda, args []values.Value, loc errors.Location) (values.Value, error) {
	closure, _ := fn.Closure.(*environment.Environment)
	frame := environment.NewChild(closure)
	callerEnv := e.env
	e.env = frame
	defer func() { e.env = callerEnv }()
	if err := bindArgs(fn.Params, fn.Defaults, args, frame, e, "<lambda>", loc); err != nil {
		return nil, err
	}
	return e.Eval(fn.Body)
}

func withFrame(err error, name string, loc errors.Location) error {
	if de, ok := err.(*errors.DraconicError); ok {
		return de.PushFrame(name, loc)
	}
	return err
}

