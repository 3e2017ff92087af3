// Package app assembles the validator from its parts and owns process
// lifecycle: signals, graceful shutdown and the optional monitor endpoint.
package app

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/HardWorkingMan-ua/mullvad-vpn-account-gen/config"
	"github.com/HardWorkingMan-ua/mullvad-vpn-account-gen/internal/monitor"
	"github.com/HardWorkingMan-ua/mullvad-vpn-account-gen/internal/pipeline"
	"github.com/HardWorkingMan-ua/mullvad-vpn-account-gen/pkg/log"
)

// progressLogInterval matches the original behavior of printing a progress
// line every 100 checked accounts.
const progressLogInterval = 100

func RunApplication(cfg *config.Config) {
	// application will run using this context
	ctx, cancel := signal.NotifyContext(
		context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
	)
	defer cancel()
	log.Init(cfg.Log)

	runner, err := pipeline.New(cfg)
	if err != nil {
		zap.S().Fatalw("validator initialization failed", "error", err)
	}

	var mon *monitor.Server
	if cfg.Monitor.Enabled {
		mon = monitor.NewServer(cfg.Monitor.Addr, runner.Metrics())
		mon.Start()
	}

	metrics := runner.Metrics()
	runner.OnProgress(func(done, total uint64) {
		if done%progressLogInterval != 0 && done != total {
			return
		}
		snap := metrics.Snapshot()
		zap.S().Infow(
			"progress",
			"done", done,
			"total", total,
			"checked", snap.Checked,
			"valid", snap.Valid,
			"errors", snap.Errors,
		)
	})

	done := make(chan struct{})
	go func() {
		defer close(done)
		if _, err := runner.Run(ctx); err != nil {
			zap.S().Errorw("validation run failed", "error", err)
		}
	}()

	select {
	case <-done:
	case <-ctx.Done():
		zap.S().Infow(
			"shutting down gracefully, Ctrl+C to force",
			"grace_period", cfg.Shutdown.GracePeriod,
		)
		select {
		case <-done:
			zap.S().Info("shutdown completed")
		case <-time.After(cfg.Shutdown.GracePeriod):
			zap.S().Info("shutdown grace period reached, forcefully shutting down")
		}
	}

	if mon != nil {
		shutdownCtx, shutdownCancel := context.WithTimeout(
			context.Background(),
			5*time.Second,
		)
		defer shutdownCancel()
		if err := mon.Shutdown(shutdownCtx); err != nil {
			zap.S().Warnw("shutting down monitor endpoint", "error", err)
		}
	}
}
