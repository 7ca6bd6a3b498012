package audit_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"draconic/internal/audit"
	"draconic/internal/config"
	"draconic/internal/interp"
)

func TestFingerprintIsStableForSameLimits(t *testing.T) {
	cfg := config.Defaults()
	assert.Equal(t, audit.Fingerprint(cfg), audit.Fingerprint(cfg))
}

func TestFingerprintDiffersAcrossLimits(t *testing.T) {
	a := config.Defaults()
	b, err := config.New(config.WithMaxLoops(10))
	require.NoError(t, err)
	assert.NotEqual(t, audit.Fingerprint(a), audit.Fingerprint(b))
}

func TestRecordAndSummary(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.sqlite")
	log, err := audit.Open(path)
	require.NoError(t, err)
	defer log.Close()

	entry := audit.Entry{
		ID:          uuid.New(),
		StartedAt:   time.Now(),
		Duration:    5 * time.Millisecond,
		Fingerprint: audit.Fingerprint(config.Defaults()),
		Outcome:     "ok",
		Stats:       interp.Stats{Statements: 3, Loops: 0},
	}
	require.NoError(t, log.Record(context.Background(), entry))
	assert.Contains(t, audit.Summary(entry), "ok")
}
