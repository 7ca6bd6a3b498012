package pool_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"draconic/internal/config"
	"draconic/internal/pool"
	"draconic/internal/repr"
)

func TestRunExecutesEachJobIndependently(t *testing.T) {
	cfg := config.Defaults()
	jobs := []pool.Job{
		{ID: "a", Config: cfg, Source: "x = 1\nx + 1"},
		{ID: "b", Config: cfg, Source: "x = 100\nx + 1"},
		{ID: "c", Config: cfg, Source: "1 / 0"}, // whatever this raises, must not affect the others
	}
	results := pool.Run(context.Background(), jobs, 2)
	require.Len(t, results, 3)

	assert.Equal(t, "a", results[0].JobID)
	require.NoError(t, results[0].Err)
	assert.Equal(t, "2", repr.Repr(results[0].Value))

	assert.Equal(t, "b", results[1].JobID)
	require.NoError(t, results[1].Err)
	assert.Equal(t, "101", repr.Repr(results[1].Value))

	assert.Equal(t, "c", results[2].JobID)
}
