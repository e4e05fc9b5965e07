// Package scheduler runs interval jobs inside the process.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"blastsms/internal/observability"
)

// Job represents a scheduled job
type Job interface {
	// Name returns the job name for logging
	Name() string
	// Run executes the job
	Run(ctx context.Context) error
	// Schedule returns the interval between runs
	Schedule() time.Duration
}

// Scheduler manages scheduled jobs
type Scheduler struct {
	jobs   []Job
	logger *observability.Logger
	wg     sync.WaitGroup
}

// New creates a new scheduler
func New(logger *observability.Logger) *Scheduler {
	return &Scheduler{
		jobs:   make([]Job, 0),
		logger: logger,
	}
}

// Register adds a job to the scheduler. It must be called before Start.
func (s *Scheduler) Register(job Job) {
	s.jobs = append(s.jobs, job)
	s.logger.Info(context.Background(), fmt.Sprintf("Registered scheduled job: %s (interval: %s)",
		job.Name(), job.Schedule()))
}

// Start runs every job until ctx is cancelled, then waits for in-flight runs
// to return.
func (s *Scheduler) Start(ctx context.Context) error {
	s.logger.Info(ctx, fmt.Sprintf("Starting scheduler with %d jobs", len(s.jobs)))

	for _, job := range s.jobs {
		s.wg.Add(1)
		go func(job Job) {
			defer s.wg.Done()
			s.runJob(ctx, job)
		}(job)
	}

	<-ctx.Done()
	s.wg.Wait()
	s.logger.Info(ctx, "Scheduler stopped")
	return ctx.Err()
}

// runJob runs a single job immediately and then on its schedule. Runs of the
// same job never overlap.
func (s *Scheduler) runJob(ctx context.Context, job Job) {
	jobCtx := observability.WithFields(ctx, observability.Field{Key: "scheduled_job", Value: job.Name()})

	s.executeJob(jobCtx, job)

	ticker := time.NewTicker(job.Schedule())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info(jobCtx, fmt.Sprintf("Stopping scheduled job: %s", job.Name()))
			return
		case <-ticker.C:
			s.executeJob(jobCtx, job)
		}
	}
}

// executeJob executes a job and logs timing. Failures are logged; the next
// tick runs the job again.
func (s *Scheduler) executeJob(ctx context.Context, job Job) {
	start := time.Now()

	err := job.Run(ctx)
	duration := time.Since(start)

	if err != nil {
		s.logger.Error(ctx, fmt.Sprintf("Job %s failed after %v", job.Name(), duration), err)
		return
	}

	s.logger.Debug(ctx, fmt.Sprintf("Job %s completed in %v", job.Name(), duration))
}
