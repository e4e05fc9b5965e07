package processor

import (
	"context"
	"time"
)

// Poller is satisfied by InboxProcessor
type Poller interface {
	Poll(ctx context.Context) (PollResult, error)
}

// PollJob runs the inbox poll on the scheduler.
type PollJob struct {
	poller   Poller
	interval time.Duration
}

func NewPollJob(poller Poller, interval time.Duration) *PollJob {
	return &PollJob{poller: poller, interval: interval}
}

func (j *PollJob) Name() string {
	return "inbox-poll"
}

func (j *PollJob) Schedule() time.Duration {
	return j.interval
}

func (j *PollJob) Run(ctx context.Context) error {
	_, err := j.poller.Poll(ctx)
	return err
}
