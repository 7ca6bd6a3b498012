// Package audit persists a durable, host-side record of what ran and what
// it cost, never the values a script produced: one row per top-level
// Evaluate/Execute call, via database/sql against modernc.org/sqlite (a
// pure-Go, cgo-free driver; see DESIGN.md). This is strictly a host-side
// concern: sandboxed script code never sees it, cannot query it, and
// cannot be influenced by its contents.
package audit

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	_ "modernc.org/sqlite"

	"draconic/internal/config"
	"draconic/internal/interp"
)

const schema = `
CREATE TABLE IF NOT EXISTS executions (
	id TEXT PRIMARY KEY,
	started_at TIMESTAMP NOT NULL,
	duration_ms INTEGER NOT NULL,
	config_fingerprint TEXT NOT NULL,
	outcome TEXT NOT NULL,
	error_kind TEXT NOT NULL DEFAULT '',
	statements INTEGER NOT NULL,
	loops INTEGER NOT NULL
);`

// Log is a handle on the audit database.
type Log struct {
	db *sql.DB
}

// Open creates (if needed) and opens the audit database at path.
func Open(path string) (*Log, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Wrap(err, "audit: opening database")
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "audit: creating schema")
	}
	return &Log{db: db}, nil
}

// Close releases the underlying database handle.
func (l *Log) Close() error {
	return l.db.Close()
}

// Entry is one recorded top-level execution outcome.
type Entry struct {
	ID          uuid.UUID
	StartedAt   time.Time
	Duration    time.Duration
	Fingerprint string
	Outcome     string // "ok" or "error"; the errors.Kind name, if any, is in ErrorKind
	ErrorKind   string
	Stats       interp.Stats
}

// Record inserts one row for a completed execution.
func (l *Log) Record(ctx context.Context, e Entry) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	_, err := l.db.ExecContext(ctx,
		`INSERT INTO executions (id, started_at, duration_ms, config_fingerprint, outcome, error_kind, statements, loops)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID.String(), e.StartedAt, e.Duration.Milliseconds(), e.Fingerprint, e.Outcome, e.ErrorKind,
		e.Stats.Statements, e.Stats.Loops,
	)
	if err != nil {
		return errors.Wrap(err, "audit: recording execution")
	}
	return nil
}

// Fingerprint derives a short, stable identifier for a Config so rows
// recorded under the same limits bundle can be grouped without storing
// the whole struct.
func Fingerprint(cfg *config.Config) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%d|%d|%d|%d|%v",
		cfg.MaxIntSize, cfg.MaxConstLen, cfg.MaxLoops, cfg.MaxStatements, cfg.DisabledFeatures)))
	return hex.EncodeToString(sum[:])[:16]
}

// Summary is a human-readable line for one Entry, using go-humanize for
// the relative timestamp and the statement and loop counts. Nothing inside
// the sandbox uses it.
func Summary(e Entry) string {
	return fmt.Sprintf("%s  %s  %s statements, %s loops, %s  (%s)",
		e.ID, e.Outcome, humanize.Comma(int64(e.Stats.Statements)), humanize.Comma(int64(e.Stats.Loops)),
		humanize.Time(e.StartedAt), e.Duration)
}
