package runner

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/yaklabco/gojslint/internal/logging"
	"github.com/yaklabco/gojslint/pkg/lint"
)

// Runner lints discovered files through a Pipeline.
type Runner struct {
	Pipeline *Pipeline
}

// New creates a Runner.
func New(pipeline *Pipeline) *Runner {
	return &Runner{Pipeline: pipeline}
}

// Run discovers files and lints them with up to opts.Jobs workers. A file
// that fails is recorded in its FileOutcome and does not stop the run,
// except for a *lint.ConfigError: an invalid rule configuration aborts the
// run and is returned without a result.
// Cancellation is checked between files; on cancellation the partial
// result is returned with the context error.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	result := &Result{Files: make([]FileOutcome, 0, len(files))}
	result.Stats.FilesDiscovered = len(files)
	if len(files) == 0 {
		return result, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	jobs = min(jobs, len(files))

	r.Pipeline.logger().Debug("linting files",
		logging.FieldFiles, len(files),
		logging.FieldJobs, jobs)

	outcomes := make([]FileOutcome, len(files))
	done := make([]bool, len(files))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(jobs)
	for idx, path := range files {
		if groupCtx.Err() != nil {
			break
		}
		group.Go(func() error {
			if groupCtx.Err() != nil {
				return nil
			}
			outcome := FileOutcome{Path: path}
			file, err := r.Pipeline.ProcessFile(groupCtx, path)
			var cfgErr *lint.ConfigError
			if errors.As(err, &cfgErr) {
				return cfgErr
			}
			if err != nil {
				outcome.Error = err
			} else {
				outcome.File = file
			}
			outcomes[idx] = outcome
			done[idx] = true
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	for idx, outcome := range outcomes {
		if done[idx] {
			result.accumulate(outcome)
		}
	}

	if err := ctx.Err(); err != nil {
		return result, fmt.Errorf("run cancelled: %w", err)
	}
	return result, nil
}
