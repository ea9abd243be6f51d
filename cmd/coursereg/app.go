package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/afero"

	"github.com/Reichskommissariat-Rusland/Course-2-Registration/internal/cli"
	"github.com/Reichskommissariat-Rusland/Course-2-Registration/internal/config"
	"github.com/Reichskommissariat-Rusland/Course-2-Registration/internal/domain/grading"
	"github.com/Reichskommissariat-Rusland/Course-2-Registration/internal/events"
	"github.com/Reichskommissariat-Rusland/Course-2-Registration/internal/platform/jsonfile"
	"github.com/Reichskommissariat-Rusland/Course-2-Registration/internal/service"
)

// application holds the wired dependencies of one session.
type application struct {
	config    *config.Config
	logger    *slog.Logger
	emitter   *events.InMemoryEventEmitter
	registrar *service.Registrar
}

// newApplication wires the JSON file stores under cfg.Data.Dir, the audit
// event handler and the registrar, then loads the persisted state.
func newApplication(
	ctx context.Context,
	cfg *config.Config,
	fsys afero.Fs,
	logger *slog.Logger,
) (*application, error) {
	if logger == nil {
		logger = slog.Default()
	}

	policy, err := grading.ParsePolicy(cfg.Grading.GPAPolicy)
	if err != nil {
		return nil, fmt.Errorf("invalid grading policy: %w", err)
	}

	emitter := events.NewInMemoryEventEmitter(logger)
	emitter.RegisterHandler(events.NewAuditLogHandler(logger))

	dir := cfg.Data.Dir
	registrar, err := service.NewRegistrar(service.Deps{
		Courses:    jsonfile.NewCourseStore(fsys, dir, logger),
		Students:   jsonfile.NewStudentStore(fsys, dir, logger),
		Selections: jsonfile.NewSelectionStore(fsys, dir, logger),
		Ledger:     jsonfile.NewLedgerStore(fsys, dir, logger),
		Events:     emitter,
	}, service.WithLogger(logger), service.WithGPAPolicy(policy))
	if err != nil {
		return nil, fmt.Errorf("failed to create registrar: %w", err)
	}

	if err := registrar.Initialize(ctx); err != nil {
		return nil, fmt.Errorf("failed to load data from %s: %w", dir, err)
	}

	return &application{
		config:    cfg,
		logger:    logger,
		emitter:   emitter,
		registrar: registrar,
	}, nil
}

// run drives the operator menu until exit; the registrar is flushed on the way out.
func (app *application) run(ctx context.Context, in io.Reader, out io.Writer) error {
	app.logger.InfoContext(ctx, "session started", slog.String("data_dir", app.config.Data.Dir))
	return cli.NewMenu(in, out, app.registrar, app.logger).Run(ctx)
}
