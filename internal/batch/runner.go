// ============================================================================
// puntofijo - Iteración de punto fijo
// ============================================================================
//
// Package:     batch
// Description: Sequential execution of a problem set
// Author:      Mike Stoffels
// Created:     2026-10-19
// License:     MIT
// ============================================================================

package batch

import (
	"context"
	"time"

	"github.com/google/uuid"

	mdwlog "github.com/msto63/puntofijo/foundation/core/log"
	"github.com/msto63/puntofijo/internal/iteration"
	"github.com/msto63/puntofijo/pkg/core/cache"
)

// Result is the outcome of one problem
type Result struct {
	Problem Problem
	Options iteration.Options
	Outcome iteration.Outcome
	Skipped bool
}

// Report collects the results of a set
type Report struct {
	ID          string
	Name        string
	Description string
	StartedAt   time.Time
	Duration    time.Duration
	Results     []Result
}

// Counts returns converged, failed and skipped totals
func (r *Report) Counts() (converged, failed, skipped int) {
	for _, res := range r.Results {
		switch {
		case res.Skipped:
			skipped++
		case res.Outcome.Success:
			converged++
		default:
			failed++
		}
	}
	return converged, failed, skipped
}

// Runner executes problem sets one problem at a time
type Runner struct {
	engine  *iteration.Engine
	logger  *mdwlog.Logger
	base    iteration.Options
	timeout time.Duration
}

// RunnerOption configures a Runner
type RunnerOption func(*Runner)

// WithEngine sets the engine; the default engine logs nothing
func WithEngine(e *iteration.Engine) RunnerOption {
	return func(r *Runner) { r.engine = e }
}

// WithLogger sets the logger
func WithLogger(l *mdwlog.Logger) RunnerOption {
	return func(r *Runner) { r.logger = l }
}

// WithBaseOptions sets the options every problem starts from
func WithBaseOptions(o iteration.Options) RunnerOption {
	return func(r *Runner) { r.base = o }
}

// WithTimeout bounds the whole set; zero means no limit
func WithTimeout(d time.Duration) RunnerOption {
	return func(r *Runner) { r.timeout = d }
}

// NewRunner creates a runner
func NewRunner(opts ...RunnerOption) *Runner {
	r := &Runner{logger: mdwlog.Discard()}
	for _, opt := range opts {
		opt(r)
	}
	if r.engine == nil {
		// Problems of a set often share g; compile each one once.
		programs := iteration.NewProgramCache(cache.Config{MaxItems: 128})
		r.engine = iteration.NewEngine(r.logger, iteration.WithProgramCache(programs))
	}
	return r
}

// Run executes every problem of set. When ctx ends, the remaining
// problems are marked skipped and the context error is returned with the
// partial report.
func (r *Runner) Run(ctx context.Context, set *Set) (*Report, error) {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	rep := &Report{
		ID:          uuid.NewString(),
		Name:        set.Name,
		Description: set.Description,
		StartedAt:   time.Now(),
		Results:     make([]Result, 0, len(set.Problems)),
	}
	logger := r.logger.WithField("batch_id", rep.ID)
	logger.Info("batch started", mdwlog.Fields{"set": set.Name, "problems": len(set.Problems)})

	var ctxErr error
	for _, p := range set.Problems {
		opts := set.Options(p, r.base)
		res := Result{Problem: p, Options: opts}

		if ctxErr == nil {
			ctxErr = ctx.Err()
		}
		if ctxErr != nil {
			res.Skipped = true
			rep.Results = append(rep.Results, res)
			continue
		}

		res.Outcome = r.engine.Run(opts)
		logger.Debug("problem finished", mdwlog.Fields{
			"problem":    p.Name,
			"kind":       string(res.Outcome.Kind),
			"iterations": len(res.Outcome.Iterations),
		})
		rep.Results = append(rep.Results, res)
	}

	rep.Duration = time.Since(rep.StartedAt)
	converged, failed, skipped := rep.Counts()
	logger.Info("batch finished", mdwlog.Fields{
		"converged": converged,
		"failed":    failed,
		"skipped":   skipped,
		"duration":  rep.Duration.String(),
	})

	if ctxErr != nil {
		logger.WarnWithErr("batch interrupted", ctxErr)
	}
	return rep, ctxErr
}
