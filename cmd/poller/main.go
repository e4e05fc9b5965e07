// Command poller runs only the inbound message poller, for deployments that
// keep polling out of the API process.
package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"blastsms/internal/bootstrap"
	"blastsms/internal/config"
	"blastsms/internal/jobs/scheduler"
	"blastsms/internal/observability"

	"golang.org/x/sync/errgroup"
)

func main() {
	logger := observability.NewLogger()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal(ctx, "failed to load config", err)
	}

	deps, err := bootstrap.InitializePoller(cfg, logger)
	if err != nil {
		logger.Fatal(ctx, "failed to initialize poller", err)
	}
	defer deps.Cleanup(context.Background())

	sched := scheduler.New(logger)
	sched.Register(deps.PollJob)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return sched.Start(gctx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error(ctx, "poller stopped with error", err)
		return
	}
	logger.Info(context.Background(), "poller stopped")
}
