// Package pool runs a batch of independent script executions across a
// bounded worker pool. An execution instance is single-threaded and owns
// its environment exclusively, so concurrent executions require
// independent instances — each worker here builds its own
// interp.Interpreter per job rather than sharing one across goroutines.
// Built on golang.org/x/sync/errgroup, whose SetLimit bounds how many jobs
// run at once, rather than a hand-rolled WaitGroup+Cancel pair; each job's
// error stays in its own Result and is never aggregated.
package pool

import (
	"context"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"draconic/internal/config"
	"draconic/internal/interp"
	"draconic/internal/values"
)

// Job is one independent (Config, source) pair to execute.
type Job struct {
	ID     string
	Config *config.Config
	Source string
}

// Result is one Job's outcome.
type Result struct {
	JobID string
	Value values.Value
	Err   error
	Stats interp.Stats
}

// Run fans jobs out across at most workers concurrent goroutines, each
// constructing its own interp.Interpreter so no state crosses job
// boundaries, and returns one Result per Job in the same order jobs were
// given. A worker's own panic is recovered into that job's Result.Err
// rather than aborting the batch, so one bad script doesn't lose the rest
// of the batch's results.
func Run(ctx context.Context, jobs []Job, workers int) []Result {
	if workers < 1 {
		workers = 1
	}
	results := make([]Result, len(jobs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	var started int64
	for idx, job := range jobs {
		idx, job := idx, job
		g.Go(func() (err error) {
			atomic.AddInt64(&started, 1)
			defer func() {
				if r := recover(); r != nil {
					results[idx] = Result{JobID: job.ID, Err: panicError{r}}
				}
			}()
			it := interp.New(job.Config)
			v, runErr := it.Execute(ctx, job.Source)
			results[idx] = Result{JobID: job.ID, Value: v, Err: runErr, Stats: it.LastStats()}
			return nil
		})
	}
	_ = g.Wait() // job-level errors are captured per Result, never escalated to the batch
	return results
}

type panicError struct{ v interface{} }

func (p panicError) Error() string {
	return "pool: worker panicked: " + toString(p.v)
}

func toString(v interface{}) string {
	if err, ok := v.(error); ok {
		return err.Error()
	}
	if s, ok := v.(string); ok {
		return s
	}
	return "non-error panic value"
}
