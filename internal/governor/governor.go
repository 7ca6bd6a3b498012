// Package governor enforces the resource ceilings that bound a script's
// execution wall-clock and work: statement count, loop-iteration count,
// and context cancellation.
package governor

import (
	"context"

	"draconic/internal/config"
	"draconic/internal/errors"
)

// Governor is consulted by the Evaluator once per executed statement and
// once per loop iteration. It is not safe for concurrent use — each
// concurrent evaluation (internal/pool) gets its own Governor.
type Governor struct {
	cfg   *config.Config
	ctx   context.Context
	stmts int
	loops int
}

// New builds a Governor bound to ctx; ctx cancellation (deadline or
// explicit cancel) is checked on every Step and CountLoop call so a script
// can't outlive the caller's budget even if it never reaches its
// statement/loop ceiling.
func New(cfg *config.Config, ctx context.Context) *Governor {
	if ctx == nil {
		ctx = context.Background()
	}
	return &Governor{cfg: cfg, ctx: ctx}
}

// Step accounts for one executed statement, failing with
// TooManyStatements once cfg.MaxStatements is exceeded.
func (g *Governor) Step(loc errors.Location) error {
	if err := g.checkCtx(loc); err != nil {
		return err
	}
	g.stmts++
	if g.stmts > g.cfg.MaxStatements {
		return errors.TooManyStatementsf(loc, "exceeded maximum of %d statements", g.cfg.MaxStatements)
	}
	return nil
}

// CountLoop accounts for one loop iteration (while/for), failing with
// TooManyStatements once cfg.MaxLoops is exceeded — loops are metered
// separately from statements since a tight loop body may contain very few
// statements per iteration.
func (g *Governor) CountLoop(loc errors.Location) error {
	if err := g.checkCtx(loc); err != nil {
		return err
	}
	g.loops++
	if g.loops > g.cfg.MaxLoops {
		return errors.TooManyStatementsf(loc, "exceeded maximum of %d loop iterations", g.cfg.MaxLoops)
	}
	return nil
}

func (g *Governor) checkCtx(loc errors.Location) error {
	select {
	case <-g.ctx.Done():
		return errors.TooManyStatementsf(loc, "execution cancelled: %v", g.ctx.Err())
	default:
		return nil
	}
}

// Statements reports the number of statements executed so far.
func (g *Governor) Statements() int { return g.stmts }

// Loops reports the number of loop iterations counted so far.
func (g *Governor) Loops() int { return g.loops }
