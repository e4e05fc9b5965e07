package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"blastsms/internal/bootstrap"
	"blastsms/internal/config"
	"blastsms/internal/jobs/scheduler"
	"blastsms/internal/observability"
	"blastsms/internal/server"

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

	deps, err := bootstrap.Initialize(ctx, cfg, logger)
	if err != nil {
		logger.Fatal(ctx, "failed to initialize dependencies", err)
	}

	srv := server.New(cfg, deps, logger)
	srv.Setup()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.Run(gctx)
	})

	sched := scheduler.New(logger)
	sched.Register(deps.ReloadJob)
	if cfg.Poll.Enabled {
		sched.Register(deps.PollJob)
	}
	g.Go(func() error {
		if err := sched.Start(gctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	})

	runErr := g.Wait()

	// Let an in-flight send finish so its outcome is recorded before the
	// final snapshot is written.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	deps.QueueRunner.Stop()
	if err := deps.QueueRunner.Wait(shutdownCtx); err != nil {
		logger.Error(shutdownCtx, "queue drain did not stop in time", err)
	}
	deps.Cleanup(shutdownCtx)

	if runErr != nil {
		logger.Error(ctx, "shut down with error", runErr)
		os.Exit(1)
	}
	logger.Info(shutdownCtx, "shutdown complete")
}
