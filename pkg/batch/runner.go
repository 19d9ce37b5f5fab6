// pkg/batch/runner.go
package batch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/tablewash/tablewash/pkg/csvio"
	"github.com/tablewash/tablewash/pkg/model"
	"github.com/tablewash/tablewash/pkg/pipeline"
)

// Summary aggregates the results of a batch run.
type Summary struct {
	StartTime   time.Time
	EndTime     time.Time
	Succeeded   int
	Failed      int
	RowsRemoved int
	Results     []Result
}

// Duration returns the wall time of the batch run.
func (s *Summary) Duration() time.Duration {
	return s.EndTime.Sub(s.StartTime)
}

// Runner cleans many files concurrently. Each job is an independent
// pipeline invocation owning its own table and report, so workers
// share no mutable state beyond the job and result channels.
type Runner struct {
	pipeline *pipeline.Pipeline
	opts     pipeline.Options
	logger   *zap.Logger
	workers  int
}

// NewRunner creates a Runner. workers <= 0 uses runtime.NumCPU().
func NewRunner(p *pipeline.Pipeline, opts pipeline.Options, workers int, logger *zap.Logger) (*Runner, error) {
	if p == nil {
		return nil, errors.New("pipeline cannot be nil")
	}
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Runner{
		pipeline: p,
		opts:     opts,
		logger:   logger,
		workers:  workers,
	}, nil
}

// Run cleans every input path, writing each cleaned table next to its
// input. It returns one result per job; cancellation stops workers
// between jobs and the summary covers the jobs that ran.
func (r *Runner) Run(ctx context.Context, paths []string) *Summary {
	summary := &Summary{StartTime: time.Now()}
	if len(paths) == 0 {
		summary.EndTime = time.Now()
		return summary
	}

	jobs := make(chan Job, len(paths))
	results := make(chan Result, len(paths))

	var wg sync.WaitGroup
	for i := 0; i < r.workers; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			r.work(ctx, id, jobs, results)
		}(i)
	}

	for _, path := range paths {
		jobs <- NewJob(path)
	}
	close(jobs)

	wg.Wait()
	close(results)

	for result := range results {
		summary.Results = append(summary.Results, result)
		if result.Success() {
			summary.Succeeded++
			summary.RowsRemoved += result.Report.RowsRemoved
		} else {
			summary.Failed++
		}
	}
	summary.EndTime = time.Now()

	r.logger.Info("Batch run complete",
		zap.Int("succeeded", summary.Succeeded),
		zap.Int("failed", summary.Failed),
		zap.Int("rowsRemoved", summary.RowsRemoved),
		zap.Duration("duration", summary.Duration()))

	return summary
}

// work is the worker loop: drain jobs until the channel closes or the
// context is cancelled.
func (r *Runner) work(ctx context.Context, id int, jobs <-chan Job, results chan<- Result) {
	logger := r.logger.With(zap.Int("workerID", id))
	for {
		select {
		case <-ctx.Done():
			logger.Info("Worker stopping due to context cancellation")
			return
		case job, ok := <-jobs:
			if !ok {
				return
			}
			results <- r.processJob(ctx, id, job, logger)
		}
	}
}

// processJob cleans a single file end to end.
func (r *Runner) processJob(ctx context.Context, id int, job Job, logger *zap.Logger) Result {
	start := time.Now()
	result := Result{JobID: job.ID, Path: job.Path, WorkerID: id}

	logger.Info("Cleaning file", zap.String("path", job.Path))

	report, table, err := r.cleanFile(ctx, job.Path)
	result.Report = report
	result.Duration = time.Since(start)
	if err != nil {
		result.Err = err
		logger.Warn("Cleaning failed",
			zap.String("path", job.Path),
			zap.Error(err))
		return result
	}

	result.OutputPath = CleanedPath(job.Path)
	if err := writeTable(result.OutputPath, table); err != nil {
		result.Err = err
		result.Duration = time.Since(start)
		return result
	}

	logger.Info("Cleaned file",
		zap.String("path", job.Path),
		zap.String("output", result.OutputPath),
		zap.Int("rowsRemoved", report.RowsRemoved),
		zap.Duration("duration", result.Duration))
	return result
}

func (r *Runner) cleanFile(ctx context.Context, path string) (*model.CleaningReport, *model.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	table, err := csvio.Read(f)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	report, err := r.pipeline.Clean(ctx, table, r.opts)
	if err != nil {
		return nil, nil, err
	}
	return report, table, nil
}

func writeTable(path string, t *model.Table) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	if err := csvio.Write(f, t); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
