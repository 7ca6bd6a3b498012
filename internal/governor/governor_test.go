package governor_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"draconic/internal/config"
	"draconic/internal/errors"
	"draconic/internal/governor"
)

func TestStepAllowsExactlyMaxStatements(t *testing.T) {
	cfg, err := config.New(config.WithMaxStatements(3))
	require.NoError(t, err)
	g := governor.New(cfg, context.Background())

	for i := 0; i < 3; i++ {
		require.NoError(t, g.Step(errors.Location{}))
	}
	err = g.Step(errors.Location{})
	require.Error(t, err)
	var de *errors.DraconicError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, errors.TooManyStatements, de.Kind)
}

func TestCountLoopIsMeteredSeparatelyFromStatements(t *testing.T) {
	cfg, err := config.New(config.WithMaxStatements(1), config.WithMaxLoops(3))
	require.NoError(t, err)
	g := governor.New(cfg, context.Background())

	require.NoError(t, g.Step(errors.Location{}))
	for i := 0; i < 3; i++ {
		require.NoError(t, g.CountLoop(errors.Location{}))
	}
	err = g.CountLoop(errors.Location{})
	require.Error(t, err)
	var de *errors.DraconicError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, errors.TooManyStatements, de.Kind)
	assert.Equal(t, 1, g.Statements())
}

func TestCancelledContextFailsBeforeIncrementingCounters(t *testing.T) {
	cfg := config.Defaults()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	g := governor.New(cfg, ctx)

	err := g.Step(errors.Location{})
	require.Error(t, err)
	var de *errors.DraconicError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, errors.TooManyStatements, de.Kind)
	assert.Equal(t, 0, g.Statements(), "a cancelled context should dominate before the statement is counted")
}

func TestNewWithNilContextDefaultsToBackground(t *testing.T) {
	cfg := config.Defaults()
	g := governor.New(cfg, nil)
	assert.NoError(t, g.Step(errors.Location{}))
}
