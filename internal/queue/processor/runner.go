package processor

import (
	"context"
	"errors"
	"sync"

	"blastsms/internal/observability"
)

var ErrDrainInProgress = errors.New("queue drain already in progress")

type Drainer interface {
	Drain(ctx context.Context, token *Token) DrainResult
}

type QueueClearer interface {
	ClearQueue(ctx context.Context) error
}

// Runner is the boundary that allows at most one drain at a time and owns
// the token of the drain in progress.
type Runner struct {
	drainer Drainer
	clearer QueueClearer
	logger  *observability.Logger

	mu      sync.Mutex
	token   *Token
	running bool
	done    chan struct{}
	last    *DrainResult
}

func NewRunner(drainer Drainer, clearer QueueClearer, logger *observability.Logger) *Runner {
	return &Runner{
		drainer: drainer,
		clearer: clearer,
		logger:  logger,
	}
}

// Start launches a drain in the background. The drain outlives the request
// that started it.
func (r *Runner) Start(ctx context.Context) error {
	token, done, err := r.begin()
	if err != nil {
		return err
	}

	drainCtx := context.WithoutCancel(ctx)
	go func() {
		defer close(done)
		r.finish(r.drainer.Drain(drainCtx, token))
	}()
	return nil
}

// Run drains synchronously.
func (r *Runner) Run(ctx context.Context) (DrainResult, error) {
	token, done, err := r.begin()
	if err != nil {
		return DrainResult{}, err
	}
	defer close(done)

	result := r.drainer.Drain(ctx, token)
	r.finish(result)
	return result, nil
}

// Stop cancels the drain in progress, if any. The message being sent
// completes; the rest stay queued.
func (r *Runner) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.token != nil {
		r.token.Cancel()
	}
}

// Clear stops the drain and then drops every queue entry.
func (r *Runner) Clear(ctx context.Context) error {
	r.Stop()
	return r.clearer.ClearQueue(ctx)
}

func (r *Runner) IsSending() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.running
}

// LastResult returns the outcome of the most recent finished drain.
func (r *Runner) LastResult() (DrainResult, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.last == nil {
		return DrainResult{}, false
	}
	return *r.last, true
}

// Wait blocks until the drain in progress finishes or ctx is done.
func (r *Runner) Wait(ctx context.Context) error {
	r.mu.Lock()
	done := r.done
	r.mu.Unlock()
	if done == nil {
		return nil
	}
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (r *Runner) begin() (*Token, chan struct{}, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.running {
		return nil, nil, ErrDrainInProgress
	}
	r.running = true
	r.token = NewToken()
	r.done = make(chan struct{})
	return r.token, r.done, nil
}

func (r *Runner) finish(result DrainResult) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.running = false
	r.token = nil
	r.last = &result
	if !result.Stopped {
		r.logger.Info(context.Background(), "all queue messages processed")
	} else {
		r.logger.Info(context.Background(), "queue sending stopped")
	}
}
