package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"

	"github.com/noah-isme/timecost/internal/app"
	"github.com/noah-isme/timecost/internal/common"
	"github.com/noah-isme/timecost/internal/config"
	"github.com/noah-isme/timecost/internal/obs"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "configuration:", err)
		return 1
	}

	logger := obs.NewLogger(obs.LogConfig{
		Format: cfg.LogFormat,
		Level:  cfg.LogLevel,
		File:   cfg.LogFile,
	}).With().Str("env", cfg.AppEnv).Str("run_id", uuid.NewString()).Logger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.TracingEnabled {
		shutdown, err := obs.InitTracer(ctx, cfg.Tracing())
		if err != nil {
			logger.Error().Err(err).Msg("initialise tracing")
		} else {
			defer func() {
				if err := shutdown(context.Background()); err != nil {
					logger.Error().Err(err).Msg("shutdown tracer")
				}
			}()
		}
	}

	deps, err := app.NewDependencies(cfg, os.Stdin, os.Stdout, logger)
	if err != nil {
		logger.Error().Err(err).Msg("initialise dependencies")
		fmt.Fprintln(os.Stderr, "error:", err)
		return 1
	}

	_, runErr := app.Run(ctx, deps)
	if err := obs.WriteTextfile(cfg.MetricsTextfile, deps.Registry); err != nil {
		logger.Error().Err(err).Msg("export metrics")
	}
	if runErr != nil {
		event := logger.Error().Err(runErr)
		if common.IsAppError(runErr) {
			event = event.Str("code", common.ErrorCode(runErr))
		}
		event.Msg("run failed")
		fmt.Fprintln(os.Stderr, "error:", runErr)
		return 1
	}
	return 0
}
