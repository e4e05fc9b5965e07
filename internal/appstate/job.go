package appstate

import (
	"context"
	"time"
)

// ReloadJob retries Hydrate while the state is read-only. Once a load
// succeeds the job does nothing.
type ReloadJob struct {
	state    *State
	interval time.Duration
}

func NewReloadJob(state *State, interval time.Duration) *ReloadJob {
	return &ReloadJob{state: state, interval: interval}
}

func (j *ReloadJob) Name() string {
	return "state-reload"
}

func (j *ReloadJob) Schedule() time.Duration {
	return j.interval
}

func (j *ReloadJob) Run(ctx context.Context) error {
	if !j.state.ReadOnly() {
		return nil
	}
	return j.state.Hydrate(ctx)
}
