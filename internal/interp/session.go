package interp

import (
	"context"

	"draconic/internal/environment"
	"draconic/internal/parser"
	"draconic/internal/values"
)

// Session is a REPL-shaped wrapper around Interpreter: one Environment
// lives for the whole session so names defined on one line are visible on
// the next, while each Line call still gets its own Governor — a fresh
// per-line statement/loop budget rather than one budget shared by the
// entire session.
type Session struct {
	it  *Interpreter
	env *environment.Environment
}

// NewSession starts a session over it's current builtins. Later calls to
// it.SetBuiltins/RegisterPackage are not picked up by an existing Session.
func NewSession(it *Interpreter) *Session {
	return &Session{it: it, env: environment.NewRoot(it.builtins)}
}

// Line parses and runs one line of input against the session's persistent
// Environment, exactly as Interpreter.Execute does for a whole script.
func (s *Session) Line(ctx context.Context, src string) (values.Value, error) {
	stmts, err := parser.Parse(src, "<repl>")
	if err != nil {
		return nil, err
	}
	ev, env, gov, done := s.it.bind(ctx, s.env, "<repl>")
	defer done()
	v, err := s.it.runStmts(ev, env, gov, "<repl>", stmts)
	s.it.names = env.Names()
	return v, err
}

// Names returns the session's current top-level locals.
func (s *Session) Names() map[string]values.Value {
	return s.env.Names()
}
