// Package main implements the interactive course registration system: it
// loads the catalog, the students and the registration ledger from the data
// directory, runs the operator menu and writes everything back on exit.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/afero"
	"github.com/spf13/pflag"

	"github.com/Reichskommissariat-Rusland/Course-2-Registration/internal/config"
	"github.com/Reichskommissariat-Rusland/Course-2-Registration/internal/platform/logger"
	"github.com/Reichskommissariat-Rusland/Course-2-Registration/internal/service"
	"github.com/Reichskommissariat-Rusland/Course-2-Registration/internal/store"
)

func main() {
	cfg, err := initializeApp(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize application: %v\n", err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := newApplication(ctx, cfg, afero.NewOsFs(), slog.Default())
	if err != nil {
		slog.Error("failed to start", slog.String("error", err.Error()))
		if store.IsCorruptError(err) {
			slog.Error("a data file is unreadable; repair or move it aside and restart",
				slog.String("data_dir", cfg.Data.Dir))
		}
		os.Exit(1)
	}

	err = app.run(ctx, os.Stdin, os.Stdout)
	if ctx.Err() != nil && errors.Is(err, context.Canceled) && !hasFlushError(err) {
		slog.Info("interrupted, session saved")
		return
	}
	if err != nil {
		slog.Error("session ended with errors", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// hasFlushError reports whether err includes a failed save of the session.
func hasFlushError(err error) bool {
	var svcErr *service.ServiceError
	return errors.As(err, &svcErr) && svcErr.Operation == "flush"
}

// initializeApp parses flags, loads configuration and sets up logging.
func initializeApp(args []string) (*config.Config, error) {
	flags := pflag.NewFlagSet("coursereg", pflag.ContinueOnError)
	config.RegisterFlags(flags)
	if err := flags.Parse(args); err != nil {
		return nil, err
	}

	cfg, err := config.Load(flags)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if _, err := logger.Setup(cfg.Log, os.Stderr); err != nil {
		return nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	slog.Info("configuration loaded",
		slog.String("log_level", cfg.Log.Level),
		slog.String("data_dir", cfg.Data.Dir),
		slog.String("gpa_policy", cfg.Grading.GPAPolicy))
	return cfg, nil
}
