// Package interp is the facade a host actually touches: it wires
// internal/config, internal/lexer, internal/parser, internal/environment,
// internal/governor, internal/eval and internal/builtins into two entry
// points — Evaluate (single expression) and Execute (full script) — much
// the way a top-level interpreter type composes its own scanner/parser/
// evaluator pipeline behind one Run call.
package interp

import (
	"context"

	"draconic/internal/ast"
	"draconic/internal/builtins"
	"draconic/internal/config"
	"draconic/internal/environment"
	"draconic/internal/errors"
	"draconic/internal/eval"
	"draconic/internal/governor"
	"draconic/internal/parser"
	"draconic/internal/values"
)

// Interpreter owns one Config and one builtins mapping; each Evaluate/
// Execute call builds a fresh Governor, Environment and Evaluator so that
// no state — not even an in-progress loop counter — survives across
// calls. Concurrent executions must use independent Interpreter instances.
type Interpreter struct {
	cfg        *config.Config
	builtins   map[string]values.Value
	dispatcher *builtins.Dispatcher
	names      map[string]values.Value
	lastStats  Stats
}

// Stats reports the resource counters a Governor accumulated over one
// Evaluate/Execute call — used by internal/audit to record what an
// execution cost without recording any of its values.
type Stats struct {
	Statements int
	Loops      int
}

// New builds an Interpreter over cfg, pre-populated with the default
// builtin registry (Core globals plus the math/string/functional
// packages). Call SetBuiltins to replace it with a host's own mapping.
func New(cfg *config.Config) *Interpreter {
	d := &builtins.Dispatcher{}
	return &Interpreter{
		cfg:        cfg,
		builtins:   builtins.All(cfg, d),
		dispatcher: d,
	}
}

// SetBuiltins replaces the builtins tier wholesale with a plain map.
func (i *Interpreter) SetBuiltins(m map[string]values.Value) {
	if m == nil {
		m = map[string]values.Value{}
	}
	i.builtins = m
}

// RegisterPackage adds (or replaces) one named builtin package as an
// Opaque namespace under its own name, without disturbing the rest of the
// builtins tier.
func (i *Interpreter) RegisterPackage(pkg builtins.Package) {
	if i.builtins == nil {
		i.builtins = map[string]values.Value{}
	}
	i.builtins[pkg.Name] = pkg.AsValue()
}

// Names returns the top-level locals left behind by the most recent
// Evaluate/Execute call.
func (i *Interpreter) Names() map[string]values.Value {
	return i.names
}

// LastStats returns the Governor counters accumulated by the most recent
// Evaluate/Execute call.
func (i *Interpreter) LastStats() Stats {
	return i.lastStats
}

// newEvaluator builds one fresh Governor/Environment/Evaluator bound to
// ctx, and points the functional builtins' late-bound dispatcher at it
// for the lifetime of the returned cleanup func.
func (i *Interpreter) newEvaluator(ctx context.Context, file string) (*eval.Evaluator, *environment.Environment, *governor.Governor, func()) {
	env := environment.NewRoot(i.builtins)
	return i.bind(ctx, env, file)
}

// bind builds a fresh Governor/Evaluator over an existing Environment —
// the Session variant of newEvaluator, reused across Line calls so locals
// survive from one line to the next while each line still gets its own
// Governor (per-line resource counters, not a single budget for the whole
// session).
func (i *Interpreter) bind(ctx context.Context, env *environment.Environment, file string) (*eval.Evaluator, *environment.Environment, *governor.Governor, func()) {
	gov := governor.New(i.cfg, ctx)
	ev := eval.New(i.cfg, gov, env, file)
	i.dispatcher.Call = ev.Call
	return ev, env, gov, func() { i.dispatcher.Call = nil }
}

// Evaluate parses src as a single standalone expression and evaluates it.
func (i *Interpreter) Evaluate(ctx context.Context, src string) (values.Value, error) {
	expr, err := parser.ParseExpr(src, "<eval>")
	if err != nil {
		return nil, err
	}
	ev, env, gov, done := i.newEvaluator(ctx, "<eval>")
	defer done()
	v, err := ev.Eval(expr)
	i.names = env.Names()
	i.lastStats = Stats{Statements: gov.Statements(), Loops: gov.Loops()}
	if err != nil {
		return nil, err
	}
	return v, nil
}

// Execute parses src as a full script and runs it statement by statement.
// If the script's final statement is a bare expression statement, its
// value is returned (the REPL-style "last expression is the result"
// convenience); otherwise the result is None. ctx cancellation is folded
// into the Governor's per-statement check and surfaces as
// TooManyStatements, not a distinct error kind.
func (i *Interpreter) Execute(ctx context.Context, src string) (values.Value, error) {
	stmts, err := parser.Parse(src, "<script>")
	if err != nil {
		return nil, err
	}
	ev, env, gov, done := i.newEvaluator(ctx, "<script>")
	defer done()
	v, err := i.runStmts(ev, env, gov, "<script>", stmts)
	i.names = env.Names()
	i.lastStats = Stats{Statements: gov.Statements(), Loops: gov.Loops()}
	return v, err
}

// runStmts drives one statement list against an already-bound Evaluator/
// Governor/Environment triple, returning the value of a trailing bare
// expression statement (the REPL-style "last expression is the result"
// convenience) or of an explicit return, None otherwise.
func (i *Interpreter) runStmts(ev *eval.Evaluator, env *environment.Environment, gov *governor.Governor, file string, stmts []ast.Stmt) (values.Value, error) {
	result := values.Value(values.None)
	for idx, stmt := range stmts {
		if idx == len(stmts)-1 {
			if exprStmt, ok := stmt.(*ast.ExprStmt); ok {
				loc := errors.Location{File: file, Line: exprStmt.Pos.Line, Column: exprStmt.Pos.Column}
				if err := gov.Step(loc); err != nil {
					return nil, err
				}
				v, err := ev.Eval(exprStmt.Expr)
				if err != nil {
					return nil, err
				}
				result = v
				break
			}
		}
		flow, err := ev.Exec(stmt)
		if err != nil {
			return nil, err
		}
		if flow.Kind == eval.FlowReturn {
			result = flow.Value
			break
		}
	}
	return result, nil
}
