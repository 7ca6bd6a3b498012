package eval_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"draconic/internal/config"
	"draconic/internal/container"
	"draconic/internal/environment"
	"draconic/internal/eval"
	"draconic/internal/governor"
	"draconic/internal/parser"
	"draconic/internal/values"
)

func newEvaluator(cfg *config.Config, builtins map[string]values.Value) *eval.Evaluator {
	env := environment.NewRoot(builtins)
	gov := governor.New(cfg, context.Background())
	return eval.New(cfg, gov, env, "<test>")
}

func TestChainedComparisonEvaluatesMiddleOperandOnce(t *testing.T) {
	cfg := config.Defaults()
	calls := 0
	builtins := map[string]values.Value{
		"mid": &values.Native{Name: "mid", Fn: func(args []values.Value) (values.Value, error) {
			calls++
			return values.NewInt(5), nil
		}},
	}
	ev := newEvaluator(cfg, builtins)
	expr, err := parser.ParseExpr("1 < mid() < 10", "<test>")
	require.NoError(t, err)

	v, err := ev.Eval(expr)
	require.NoError(t, err)
	assert.Equal(t, values.Bool(true), v)
	assert.Equal(t, 1, calls, "mid() is both the right side of one link and the left side of the next, but must run once")
}

func TestChainedComparisonShortCircuitsWithoutEvaluatingLaterOperands(t *testing.T) {
	cfg := config.Defaults()
	calls := 0
	builtins := map[string]values.Value{
		"never": &values.Native{Name: "never", Fn: func(args []values.Value) (values.Value, error) {
			calls++
			return values.NewInt(0), nil
		}},
	}
	ev := newEvaluator(cfg, builtins)
	expr, err := parser.ParseExpr("5 < 1 < never()", "<test>")
	require.NoError(t, err)

	v, err := ev.Eval(expr)
	require.NoError(t, err)
	assert.Equal(t, values.Bool(false), v)
	assert.Equal(t, 0, calls, "a failing earlier link must short-circuit the rest of the chain")
}

func TestSubscriptWriteOnBuiltinNameIsASilentNoOp(t *testing.T) {
	cfg := config.Defaults()
	rl, err := container.NewSafeList(cfg, []values.Value{values.NewInt(1), values.NewInt(2)})
	require.NoError(t, err)
	ev := newEvaluator(cfg, map[string]values.Value{"rl": rl})

	stmts, err := parser.Parse("rl[0] = 99", "<test>")
	require.NoError(t, err)
	for _, s := range stmts {
		_, err := ev.Exec(s)
		require.NoError(t, err)
	}

	assert.Equal(t, values.NewInt(1), rl.Items()[0], "writing through a builtin name must not mutate the builtin")
}

func TestSubscriptWriteThroughAliasedLocalMutatesTheSharedContainer(t *testing.T) {
	cfg := config.Defaults()
	rl, err := container.NewSafeList(cfg, []values.Value{values.NewInt(1), values.NewInt(2)})
	require.NoError(t, err)
	ev := newEvaluator(cfg, map[string]values.Value{"rl": rl})

	stmts, err := parser.Parse("l = rl\nl[1] = 3", "<test>")
	require.NoError(t, err)
	for _, s := range stmts {
		_, err := ev.Exec(s)
		require.NoError(t, err)
	}

	assert.Equal(t, values.NewInt(3), rl.Items()[1], "aliasing a builtin through a local name permits mutation through that alias")
}
