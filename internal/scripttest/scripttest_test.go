package scripttest_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"draconic/internal/config"
	"draconic/internal/scripttest"
)

func TestRunDirBasicSuite(t *testing.T) {
	report, err := scripttest.RunDir("testdata/basic", config.Defaults())
	require.NoError(t, err)
	assert.True(t, report.Passed(), "%+v", report.Results)
	assert.Len(t, report.Results, 15)
}

// A tight infinite loop that stays within the container bound on every
// iteration must still be cut off by the loop/statement ceiling, not left
// to run until some other limit happens to catch it.
func TestRunDirGovernorSuite(t *testing.T) {
	cfg, err := config.New(
		config.WithMaxLoops(10_000),
		config.WithMaxStatements(10_000),
		config.WithMaxConstLen(10_000),
	)
	require.NoError(t, err)

	report, err := scripttest.RunDir("testdata/governor", cfg)
	require.NoError(t, err)
	assert.True(t, report.Passed(), "%+v", report.Results)
	assert.Len(t, report.Results, 1)
}
