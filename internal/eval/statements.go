package eval

import (
	"draconic/internal/ast"
	"draconic/internal/config"
	"draconic/internal/container"
	"draconic/internal/environment"
	"draconic/internal/errors"
	"draconic/internal/values"
)

func (e *Evaluator) VisitExprStmt(n *ast.ExprStmt) (interface{}, error) {
	_, err := e.Eval(n.Expr)
	if err != nil {
		return nil, err
	}
	return normalFlow, nil
}

// VisitAssignStmt handles both a plain `target = value` and the chained
// form `a = b = value`, assigning the same evaluated value to every
// target left to right.
func (e *Evaluator) VisitAssignStmt(n *ast.AssignStmt) (interface{}, error) {
	val, err := e.Eval(n.Value)
	if err != nil {
		return nil, err
	}
	loc := e.loc(n.Pos)
	for _, target := range n.Targets {
		if err := e.assignTarget(target, val, loc); err != nil {
			return nil, err
		}
	}
	return normalFlow, nil
}

// assignTarget dispatches an assignment target. A bare name always binds
// into the current frame's locals, never an outer one. A subscript target
// whose object resolves to a builtin name is a silent no-op, preserving
// builtin isolation. An attribute target is only honored when the host
// has enabled FeatureAttributeWrite.
func (e *Evaluator) assignTarget(target ast.Expr, val values.Value, loc errors.Location) error {
	switch t := target.(type) {
	case *ast.Name:
		e.env.Define(t.Ident, val)
		return nil
	case *ast.TupleExpr:
		return e.bindTarget(t, val, loc)
	case *ast.Index:
		if name, ok := t.Object.(*ast.Name); ok && e.env.Tier(name.Ident) == environment.TierBuiltin {
			return nil
		}
		obj, err := e.Eval(t.Object)
		if err != nil {
			return err
		}
		key, err := e.Eval(t.Key)
		if err != nil {
			return err
		}
		return e.subscriptSet(obj, key, val, loc)
	case *ast.Attribute:
		if e.cfg.FeatureDisabled(config.FeatureAttributeWrite) {
			return errors.FeatureNotAvailablef(loc, "attribute assignment is disabled")
		}
		obj, err := e.Eval(t.Object)
		if err != nil {
			return err
		}
		opaque, ok := obj.(*values.Opaque)
		if !ok || opaque.SetAttr == nil {
			return errors.RuntimeTypeErrorf(loc, "'%s' object has no settable attributes", obj.Type())
		}
		return opaque.SetAttr(t.Attr, val)
	default:
		return errors.RuntimeTypeErrorf(loc, "cannot assign to this expression")
	}
}

func (e *Evaluator) subscriptSet(obj, key, val values.Value, loc errors.Location) error {
	switch c := obj.(type) {
	case *container.SafeList:
		idx, ok := asInt(key)
		if !ok {
			return errors.RuntimeTypeErrorf(loc, "list indices must be integers")
		}
		return c.Set(int(idx.Int64()), val)
	case *container.SafeDict:
		return c.Set(key, val)
	default:
		return errors.RuntimeTypeErrorf(loc, "'%s' object does not support item assignment", obj.Type())
	}
}

func (e *Evaluator) VisitAugAssignStmt(n *ast.AugAssignStmt) (interface{}, error) {
	loc := e.loc(n.Pos)
	current, err := e.Eval(n.Target)
	if err != nil {
		return nil, err
	}
	rhs, err := e.Eval(n.Value)
	if err != nil {
		return nil, err
	}
	result, err := e.evalBinary(n.Operator, current, rhs, loc)
	if err != nil {
		return nil, err
	}
	return normalFlow, e.assignTarget(n.Target, result, loc)
}

func (e *Evaluator) VisitFunctionDef(n *ast.FunctionDef) (interface{}, error) {
	fn := &values.Function{
		Name:     n.Name,
		Params:   n.Params,
		Defaults: n.Defaults,
		Body:     n.Body,
		Closure:  e.env,
	}
	e.env.Define(n.Name, fn)
	return normalFlow, nil
}

func (e *Evaluator) VisitReturnStmt(n *ast.ReturnStmt) (interface{}, error) {
	if n.Value == nil {
		return &Flow{Kind: FlowReturn, Value: values.None}, nil
	}
	v, err := e.Eval(n.Value)
	if err != nil {
		return nil, err
	}
	return &Flow{Kind: FlowReturn, Value: v}, nil
}

func (e *Evaluator) VisitIfStmt(n *ast.IfStmt) (interface{}, error) {
	test, err := e.Eval(n.Test)
	if err != nil {
		return nil, err
	}
	if Truthy(test) {
		return e.ExecBlock(n.Body)
	}
	return e.ExecBlock(n.Orelse)
}

func (e *Evaluator) VisitWhileStmt(n *ast.WhileStmt) (interface{}, error) {
	loc := e.loc(n.Pos)
	for {
		test, err := e.Eval(n.Test)
		if err != nil {
			return nil, err
		}
		if !Truthy(test) {
			return normalFlow, nil
		}
		if err := e.gov.CountLoop(loc); err != nil {
			return nil, err
		}
		flow, err := e.ExecBlock(n.Body)
		if err != nil {
			return nil, err
		}
		switch flow.Kind {
		case FlowBreak:
			return normalFlow, nil
		case FlowReturn:
			return flow, nil
		}
	}
}

func (e *Evaluator) VisitForStmt(n *ast.ForStmt) (interface{}, error) {
	loc := e.loc(n.Pos)
	iterVal, err := e.Eval(n.Iter)
	if err != nil {
		return nil, err
	}
	items, err := elementsOf(iterVal)
	if err != nil {
		return nil, err
	}
	for _, item := range items {
		if err := e.gov.CountLoop(loc); err != nil {
			return nil, err
		}
		if err := e.bindTarget(n.Target, item, loc); err != nil {
			return nil, err
		}
		flow, err := e.ExecBlock(n.Body)
		if err != nil {
			return nil, err
		}
		switch flow.Kind {
		case FlowBreak:
			return normalFlow, nil
		case FlowReturn:
			return flow, nil
		}
	}
	return normalFlow, nil
}

func (e *Evaluator) VisitBreakStmt(n *ast.BreakStmt) (interface{}, error) {
	return &Flow{Kind: FlowBreak}, nil
}

func (e *Evaluator) VisitContinueStmt(n *ast.ContinueStmt) (interface{}, error) {
	return &Flow{Kind: FlowContinue}, nil
}

func (e *Evaluator) VisitPassStmt(n *ast.PassStmt) (interface{}, error) {
	return normalFlow, nil
}
