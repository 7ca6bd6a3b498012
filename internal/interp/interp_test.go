package interp_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"draconic/internal/config"
	"draconic/internal/errors"
	"draconic/internal/interp"
	"draconic/internal/repr"
)

func TestEvaluateSingleExpression(t *testing.T) {
	it := interp.New(config.Defaults())
	v, err := it.Evaluate(context.Background(), "1 + 2 * 3")
	require.NoError(t, err)
	assert.Equal(t, "7", repr.Repr(v))
}

func TestExecuteReturnsTrailingExpressionValue(t *testing.T) {
	it := interp.New(config.Defaults())
	v, err := it.Execute(context.Background(), "x = 10\ny = 20\nx + y")
	require.NoError(t, err)
	assert.Equal(t, "30", repr.Repr(v))
	assert.Equal(t, "10", repr.Repr(it.Names()["x"]))
}

func TestExecuteStatementsDoNotPersistAcrossCalls(t *testing.T) {
	it := interp.New(config.Defaults())
	_, err := it.Execute(context.Background(), "x = 1")
	require.NoError(t, err)

	_, err = it.Execute(context.Background(), "x")
	require.Error(t, err)
	var de *errors.DraconicError
	require.ErrorAs(t, err, &de)
}

func TestEnvelopeErrorSurfacesKind(t *testing.T) {
	cfg, err := config.New(config.WithMaxStatements(1))
	require.NoError(t, err)
	it := interp.New(cfg)
	_, err = it.Execute(context.Background(), "x = 1\ny = 2\nz = 3")
	require.Error(t, err)
	var de *errors.DraconicError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, errors.TooManyStatements, de.Kind)
}

func TestSessionPersistsLocalsAcrossLines(t *testing.T) {
	sess := interp.NewSession(interp.New(config.Defaults()))
	_, err := sess.Line(context.Background(), "x = 41")
	require.NoError(t, err)
	v, err := sess.Line(context.Background(), "x + 1")
	require.NoError(t, err)
	assert.Equal(t, "42", repr.Repr(v))
}

func TestSessionGivesEachLineItsOwnStatementBudget(t *testing.T) {
	cfg, err := config.New(config.WithMaxStatements(1))
	require.NoError(t, err)
	sess := interp.NewSession(interp.New(cfg))
	_, err = sess.Line(context.Background(), "x = 1")
	require.NoError(t, err)
	_, err = sess.Line(context.Background(), "y = 2")
	require.NoError(t, err, "each Line call should get its own Governor budget")
}
