package eval

import (
	"draconic/internal/ast"
	"draconic/internal/container"
	"draconic/internal/environment"
	"draconic/internal/errors"
	"draconic/internal/values"
)

// bindTarget assigns val to a comprehension/for-loop target, which is
// either a bare name or a tuple-unpacking pattern — `for target in iter`
// binds target the same way an assignment would.
func (e *Evaluator) bindTarget(target ast.Expr, val values.Value, loc errors.Location) error {
	switch t := target.(type) {
	case *ast.Name:
		e.env.Define(t.Ident, val)
		return nil
	case *ast.TupleExpr:
		elems, err := elementsOf(val)
		if err != nil {
			return err
		}
		if len(elems) != len(t.Elements) {
			return errors.RuntimeTypeErrorf(loc, "cannot unpack %d values into %d targets", len(elems), len(t.Elements))
		}
		for i, sub := range t.Elements {
			if err := e.bindTarget(sub, elems[i], loc); err != nil {
				return err
			}
		}
		return nil
	default:
		return errors.RuntimeTypeErrorf(loc, "cannot assign to this expression")
	}
}

func elementsOf(v values.Value) ([]values.Value, error) {
	if t, ok := v.(*values.Tuple); ok {
		return t.Elements, nil
	}
	return container.Elements(v)
}

// runGenerators drives the nested `for ... if ...` clauses of a list/set/
// generator comprehension in a private child scope, evaluating elemExpr
// once per surviving combination. Every produced iteration is counted
// against the loop budget, and the accumulator's length is checked
// continuously rather than only once at the end, so a comprehension can't
// build an oversized container and only get caught after the fact.
func (e *Evaluator) runGenerators(gens []ast.Comprehension, elemExpr ast.Expr, loc errors.Location) ([]values.Value, error) {
	callerEnv := e.env
	e.env = environment.NewChild(callerEnv)
	defer func() { e.env = callerEnv }()

	var out []values.Value
	var walk func(i int) error
	walk = func(i int) error {
		if i == len(gens) {
			v, err := e.Eval(elemExpr)
			if err != nil {
				return err
			}
			out = append(out, v)
			return checkAccumLen(e.cfg.MaxConstLen, len(out), loc)
		}
		gen := gens[i]
		iterVal, err := e.Eval(gen.Iter)
		if err != nil {
			return err
		}
		items, err := elementsOf(iterVal)
		if err != nil {
			return err
		}
		for _, item := range items {
			if err := e.gov.CountLoop(loc); err != nil {
				return err
			}
			if err := e.bindTarget(gen.Target, item, loc); err != nil {
				return err
			}
			ok := true
			for _, ifExpr := range gen.Ifs {
				cond, err := e.Eval(ifExpr)
				if err != nil {
					return err
				}
				if !Truthy(cond) {
					ok = false
					break
				}
			}
			if !ok {
				continue
			}
			if err := walk(i + 1); err != nil {
				return err
			}
		}
		return nil
	}
	if err := walk(0); err != nil {
		return nil, err
	}
	return out, nil
}

// runDictGenerators is runGenerators' dict-comprehension counterpart,
// producing parallel key/value slices.
func (e *Evaluator) runDictGenerators(gens []ast.Comprehension, keyExpr, valExpr ast.Expr, loc errors.Location) ([]values.Value, []values.Value, error) {
	callerEnv := e.env
	e.env = environment.NewChild(callerEnv)
	defer func() { e.env = callerEnv }()

	var keys, vals []values.Value
	var walk func(i int) error
	walk = func(i int) error {
		if i == len(gens) {
			k, err := e.Eval(keyExpr)
			if err != nil {
				return err
			}
			v, err := e.Eval(valExpr)
			if err != nil {
				return err
			}
			keys = append(keys, k)
			vals = append(vals, v)
			return checkAccumLen(e.cfg.MaxConstLen, len(keys), loc)
		}
		gen := gens[i]
		iterVal, err := e.Eval(gen.Iter)
		if err != nil {
			return err
		}
		items, err := elementsOf(iterVal)
		if err != nil {
			return err
		}
		for _, item := range items {
			if err := e.gov.CountLoop(loc); err != nil {
				return err
			}
			if err := e.bindTarget(gen.Target, item, loc); err != nil {
				return err
			}
			ok := true
			for _, ifExpr := range gen.Ifs {
				cond, err := e.Eval(ifExpr)
				if err != nil {
					return err
				}
				if !Truthy(cond) {
					ok = false
					break
				}
			}
			if !ok {
				continue
			}
			if err := walk(i + 1); err != nil {
				return err
			}
		}
		return nil
	}
	if err := walk(0); err != nil {
		return nil, nil, err
	}
	return keys, vals, nil
}

func checkAccumLen(max, n int, loc errors.Location) error {
	if n > max {
		return errors.IterableTooLongf(loc, "comprehension would have more than %d elements, exceeding the limit of %d", max, max)
	}
	return nil
}

func (e *Evaluator) VisitListComp(n *ast.ListComp) (interface{}, error) {
	items, err := e.runGenerators(n.Generators, n.Element, e.loc(n.Pos))
	if err != nil {
		return nil, err
	}
	return container.NewSafeList(e.cfg, items)
}

func (e *Evaluator) VisitSetComp(n *ast.SetComp) (interface{}, error) {
	items, err := e.runGenerators(n.Generators, n.Element, e.loc(n.Pos))
	if err != nil {
		return nil, err
	}
	return container.NewSafeSet(e.cfg, items)
}

func (e *Evaluator) VisitGeneratorExp(n *ast.GeneratorExp) (interface{}, error) {
	items, err := e.runGenerators(n.Generators, n.Element, e.loc(n.Pos))
	if err != nil {
		return nil, err
	}
	return container.NewSafeList(e.cfg, items)
}

func (e *Evaluator) VisitDictComp(n *ast.DictComp) (interface{}, error) {
	keys, vals, err := e.runDictGenerators(n.Generators, n.Key, n.Value, e.loc(n.Pos))
	if err != nil {
		return nil, err
	}
	pairs := make([]container.KV, len(keys))
	for i := range keys {
		pairs[i] = container.KV{Key: keys[i], Value: vals[i]}
	}
	return container.NewSafeDict(e.cfg, pairs)
}
