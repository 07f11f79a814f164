// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/pdiddy/schemconvert/internal/convert"
	"github.com/pdiddy/schemconvert/internal/report"
	"github.com/pdiddy/schemconvert/internal/session"
	"github.com/pdiddy/schemconvert/internal/telemetry"
	"github.com/pdiddy/schemconvert/internal/workspace"
	"github.com/pdiddy/schemconvert/pkg/types"
)

// app wires the session controller and its collaborators for one command.
type app struct {
	logger   *slog.Logger
	console  *report.Console
	ctrl     *session.Controller
	provider *telemetry.Provider
}

func newApp(cfg types.ConverterConfig, out, logOut io.Writer) (*app, error) {
	logger := slog.New(slog.NewTextHandler(logOut, &slog.HandlerOptions{Level: parseLogLevel(cfg.LogLevel)}))

	ws, err := workspace.New(cfg.DataDir)
	if err != nil {
		return nil, err
	}

	a := &app{
		logger:  logger,
		console: report.NewConsole(out, cfg.Color),
	}

	var metrics *telemetry.Metrics
	if cfg.Metrics {
		a.provider = telemetry.NewProvider()
		if metrics, err = telemetry.NewMetrics(a.provider); err != nil {
			return nil, fmt.Errorf("creating metrics: %w", err)
		}
	}

	conv := convert.New(
		convert.WithWorkers(cfg.Workers),
		convert.WithLogger(logger),
		convert.WithMetrics(metrics),
	)
	a.ctrl = session.New(ws, conv, session.WithLogger(logger), session.WithMetrics(metrics))
	logger.Debug("data root ready", "path", ws.Root(), "workers", conv.Workers())
	return a, nil
}

// close waits for outstanding jobs and flushes metrics.
func (a *app) close(ctx context.Context) {
	a.ctrl.Wait()
	if a.provider == nil {
		return
	}
	if err := a.provider.Flush(ctx, a.logger); err != nil {
		a.logger.Warn("flushing metrics", "error", err)
	}
}

// parseLogLevel maps a level name to a slog.Level, defaulting to info.
func parseLogLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "info", "":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		fmt.Fprintf(os.Stderr, "Invalid log level %q, using info\n", s)
		return slog.LevelInfo
	}
}
