// Package eval implements the tree-walking Evaluator: the component that
// walks a parsed syntax tree, routes integer arithmetic through
// internal/numeric, container operations through internal/container, name
// reads/writes through internal/environment, and consults internal/
// governor at every statement and loop iteration.
package eval

import (
	"math/big"
	"strings"

	"draconic/internal/ast"
	"draconic/internal/config"
	"draconic/internal/container"
	"draconic/internal/environment"
	"draconic/internal/errors"
	"draconic/internal/governor"
	"draconic/internal/repr"
	"draconic/internal/values"
)

// Evaluator walks one syntax tree against one environment frame at a
// time. It is not safe for concurrent use; internal/pool gives each
// concurrent execution its own Evaluator, Governor, and Environment.
type Evaluator struct {
	cfg  *config.Config
	gov  *governor.Governor
	env  *environment.Environment
	file string
	// stack records the user-defined function names currently being
	// executed, innermost last, so an error that unwinds through several
	// nested calls can report a call stack alongside the offending node's
	// source location.
	stack []errors.StackFrame
}

// New builds an Evaluator over the given root environment, bound to cfg
// and gov. file names the source for error locations (may be empty).
func New(cfg *config.Config, gov *governor.Governor, env *environment.Environment, file string) *Evaluator {
	return &Evaluator{cfg: cfg, gov: gov, env: env, file: file}
}

// Env returns the Evaluator's current frame — used by a host after
// Execute returns to inspect top-level names.
func (e *Evaluator) Env() *environment.Environment { return e.env }

func (e *Evaluator) loc(p ast.Pos) errors.Location {
	return errors.Location{File: e.file, Line: p.Line, Column: p.Column}
}

// Eval evaluates a single expression node to a Value.
func (e *Evaluator) Eval(expr ast.Expr) (values.Value, error) {
	raw, err := expr.Accept(e)
	if err != nil {
		return nil, err
	}
	v, _ := raw.(values.Value)
	return v, nil
}

// Exec executes one statement, accounting it against the governor first.
func (e *Evaluator) Exec(stmt ast.Stmt) (*Flow, error) {
	if err := e.gov.Step(e.loc(stmt.Position())); err != nil {
		return nil, err
	}
	raw, err := stmt.Accept(e)
	if err != nil {
		return nil, err
	}
	f, ok := raw.(*Flow)
	if !ok {
		return normalFlow, nil
	}
	return f, nil
}

// ExecBlock runs a statement list in order, stopping and propagating as
// soon as a statement yields a non-Normal Flow.
func (e *Evaluator) ExecBlock(stmts []ast.Stmt) (*Flow, error) {
	for _, s := range stmts {
		f, err := e.Exec(s)
		if err != nil {
			return nil, err
		}
		if f.Kind != FlowNormal {
			return f, nil
		}
	}
	return normalFlow, nil
}

// ---- literal and name expressions ----

func (e *Evaluator) VisitIntLiteral(n *ast.IntLiteral) (interface{}, error) {
	return values.NewIntFromBig(new(big.Int).Set(n.Value)), nil
}

func (e *Evaluator) VisitFloatLiteral(n *ast.FloatLiteral) (interface{}, error) {
	return values.Float(n.Value), nil
}

func (e *Evaluator) VisitStringLiteral(n *ast.StringLiteral) (interface{}, error) {
	return container.NewSafeStr(e.cfg, n.Value)
}

func (e *Evaluator) VisitBoolLiteral(n *ast.BoolLiteral) (interface{}, error) {
	return values.Bool(n.Value), nil
}

func (e *Evaluator) VisitNoneLiteral(n *ast.NoneLiteral) (interface{}, error) {
	return values.None, nil
}

func (e *Evaluator) VisitName(n *ast.Name) (interface{}, error) {
	v, ok := e.env.Get(n.Ident)
	if !ok {
		return nil, errors.RuntimeTypeErrorf(e.loc(n.Pos), "name '%s' is not defined", n.Ident)
	}
	return v, nil
}

// ---- operators ----

func (e *Evaluator) VisitBinary(n *ast.Binary) (interface{}, error) {
	left, err := e.Eval(n.Left)
	if err != nil {
		return nil, err
	}
	right, err := e.Eval(n.Right)
	if err != nil {
		return nil, err
	}
	return e.evalBinary(n.Operator, left, right, e.loc(n.Pos))
}

func (e *Evaluator) VisitUnary(n *ast.Unary) (interface{}, error) {
	operand, err := e.Eval(n.Operand)
	if err != nil {
		return nil, err
	}
	return e.evalUnary(n.Operator, operand, e.loc(n.Pos))
}

func (e *Evaluator) VisitBoolOp(n *ast.BoolOp) (interface{}, error) {
	var result values.Value
	for _, operand := range n.Values {
		v, err := e.Eval(operand)
		if err != nil {
			return nil, err
		}
		result = v
		if n.Operator == "and" && !Truthy(v) {
			return result, nil
		}
		if n.Operator == "or" && Truthy(v) {
			return result, nil
		}
	}
	return result, nil
}

func (e *Evaluator) VisitCompare(n *ast.Compare) (interface{}, error) {
	left, err := e.Eval(n.Left)
	if err != nil {
		return nil, err
	}
	prev := left
	for i, op := range n.Ops {
		right, err := e.Eval(n.Comparators[i])
		if err != nil {
			return nil, err
		}
		ok, err := compareOp(op, prev, right, e.loc(n.Pos))
		if err != nil {
			return nil, err
		}
		if !ok {
			return values.Bool(false), nil
		}
		prev = right
	}
	return values.Bool(true), nil
}

func (e *Evaluator) VisitIfExp(n *ast.IfExp) (interface{}, error) {
	test, err := e.Eval(n.Test)
	if err != nil {
		return nil, err
	}
	if Truthy(test) {
		return e.Eval(n.Body)
	}
	return e.Eval(n.Orelse)
}

// ---- containers and calls ----

func (e *Evaluator) VisitListExpr(n *ast.ListExpr) (interface{}, error) {
	items, err := e.evalElements(n.Elements, e.loc(n.Pos))
	if err != nil {
		return nil, err
	}
	return container.NewSafeList(e.cfg, items)
}

func (e *Evaluator) VisitSetExpr(n *ast.SetExpr) (interface{}, error) {
	items, err := e.evalElements(n.Elements, e.loc(n.Pos))
	if err != nil {
		return nil, err
	}
	return container.NewSafeSet(e.cfg, items)
}

func (e *Evaluator) VisitDictExpr(n *ast.DictExpr) (interface{}, error) {
	pairs := make([]container.KV, len(n.Keys))
	for i := range n.Keys {
		k, err := e.Eval(n.Keys[i])
		if err != nil {
			return nil, err
		}
		v, err := e.Eval(n.Values[i])
		if err != nil {
			return nil, err
		}
		pairs[i] = container.KV{Key: k, Value: v}
	}
	return container.NewSafeDict(e.cfg, pairs)
}

func (e *Evaluator) VisitTupleExpr(n *ast.TupleExpr) (interface{}, error) {
	items, err := e.evalElements(n.Elements, e.loc(n.Pos))
	if err != nil {
		return nil, err
	}
	return &values.Tuple{Elements: items}, nil
}

func (e *Evaluator) VisitStarred(n *ast.Starred) (interface{}, error) {
	return nil, errors.FeatureNotAvailablef(e.loc(n.Pos), "starred expression used outside a literal display or call")
}

func (e *Evaluator) VisitLambda(n *ast.Lambda) (interface{}, error) {
	return &values.Lambda{Params: n.Params, Defaults: n.Defaults, Body: n.Body, Closure: e.env}, nil
}

func (e *Evaluator) VisitFString(n *ast.FString) (interface{}, error) {
	var sb strings.Builder
	for _, part := range n.Parts {
		if sl, ok := part.(*ast.StringLiteral); ok {
			sb.WriteString(sl.Value)
			continue
		}
		v, err := e.Eval(part)
		if err != nil {
			return nil, err
		}
		sb.WriteString(repr.Str(v))
	}
	return container.NewSafeStr(e.cfg, sb.String())
}
