// Package pipeline fans grading work out over a bounded pool of workers
// and guarantees exactly one result per submission reaches the sink.
package pipeline

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/gradeline/gradeline/internal/grader"
	"github.com/gradeline/gradeline/internal/report"
	"github.com/gradeline/gradeline/internal/submission"
)

// ConfigError reports an invalid pipeline configuration. It is raised
// before any work starts; nothing partial is ever produced.
type ConfigError struct {
	Msg string
}

func (e *ConfigError) Error() string {
	return e.Msg
}

// Grader is the per-submission unit of work. grader.Service implements it.
type Grader interface {
	Grade(ctx context.Context, sub submission.Submission) (*grader.Result, error)
	MaxPoints() int
}

// Pool runs grading with a fixed number of concurrent workers.
type Pool struct {
	workers    int
	onProgress func(completed, total int)
	completed  atomic.Int64
}

// Option configures a Pool.
type Option func(*Pool)

// WithProgress registers a hook called after each submission completes,
// with the monotonically increasing completed count. Hooks must be fast;
// they run on worker goroutines.
func WithProgress(fn func(completed, total int)) Option {
	return func(p *Pool) { p.onProgress = fn }
}

// NewPool creates a pool. Workers below 1 is a ConfigError: a pool that
// can't run anything should fail loudly before grading starts.
func NewPool(workers int, opts ...Option) (*Pool, error) {
	if workers < 1 {
		return nil, &ConfigError{Msg: fmt.Sprintf("worker count must be positive, got %d", workers)}
	}
	p := &Pool{workers: workers}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Workers returns the configured concurrency.
func (p *Pool) Workers() int {
	return p.workers
}

// Completed returns the number of submissions finished so far.
func (p *Pool) Completed() int {
	return int(p.completed.Load())
}

// Run grades every submission and delivers exactly one row per
// submission to the sink, then blocks until all units have finished.
// A failure inside one unit — oracle error, parse error, even a panic —
// becomes that submission's placeholder row and never touches siblings.
// Returns the number of placeholder rows produced.
func (p *Pool) Run(ctx context.Context, subs []submission.Submission, g Grader, sink *report.Sink) int {
	total := len(subs)
	var failures atomic.Int64

	group := new(errgroup.Group)
	group.SetLimit(p.workers)

	for _, sub := range subs {
		group.Go(func() error {
			result := p.gradeOne(ctx, g, sub)
			if result.Failed {
				failures.Add(1)
			}
			sink.Add(report.FormatResult(result))

			done := p.completed.Add(1)
			if p.onProgress != nil {
				p.onProgress(int(done), total)
			}
			return nil
		})
	}

	// Full barrier: every unit runs to completion, units never return
	// errors, so Wait only synchronizes.
	_ = group.Wait()

	return int(failures.Load())
}

// gradeOne is the unit-of-work boundary. Whatever goes wrong inside,
// the submission still yields a result.
func (p *Pool) gradeOne(ctx context.Context, g Grader, sub submission.Submission) (result *grader.Result) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().
				Str("student", sub.StudentName).
				Interface("panic", r).
				Msg("panic while grading submission")
			result = grader.Placeholder(sub, g.MaxPoints())
		}
	}()

	result, err := g.Grade(ctx, sub)
	if err != nil {
		log.Error().
			Err(err).
			Str("student", sub.StudentName).
			Msg("grading failed, recording placeholder")
		return grader.Placeholder(sub, g.MaxPoints())
	}
	return result
}
