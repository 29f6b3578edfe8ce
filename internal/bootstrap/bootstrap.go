package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	sessioninadapter "studytime/internal/modules/session/adapter/in"
	sessionoutadapter "studytime/internal/modules/session/adapter/out"
	sessionout "studytime/internal/modules/session/port/out"
	sessionservice "studytime/internal/modules/session/service"
	sessionusecase "studytime/internal/modules/session/usecase"
	statsinadapter "studytime/internal/modules/stats/adapter/in"
	statsoutadapter "studytime/internal/modules/stats/adapter/out"
	statsusecase "studytime/internal/modules/stats/usecase"
	subjectinadapter "studytime/internal/modules/subject/adapter/in"
	subjectoutadapter "studytime/internal/modules/subject/adapter/out"
	subjectout "studytime/internal/modules/subject/port/out"
	subjectservice "studytime/internal/modules/subject/service"
	subjectusecase "studytime/internal/modules/subject/usecase"
	"studytime/internal/platform/clock"
	"studytime/internal/platform/config"
	apperrors "studytime/internal/platform/errors"
	"studytime/internal/platform/id"
	"studytime/internal/platform/logging"
	"studytime/internal/platform/sqlitedb"
	uiapp "studytime/internal/ui/app"
	"studytime/internal/ui/theme"
)

type App struct {
	SessionCLI sessioninadapter.CLIHandler
	SubjectCLI subjectinadapter.CLIHandler
	StatsCLI   statsinadapter.CLIHandler

	Config config.Config
	Logger *slog.Logger

	closers []io.Closer
	// indexErr is set when the SQLite index could not be opened.
	indexErr error
}

func New(ctx context.Context, cfg config.Config) (*App, error) {
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	logger, logFile, err := logging.OpenFile(cfg.LogPath, level)
	if err != nil {
		return nil, err
	}
	app := &App{Config: cfg, Logger: logger, closers: []io.Closer{logFile}}

	sessionProjector, subjectProjector, err := app.openIndex(ctx)
	if err != nil {
		app.indexErr = err
		logger.Warn("sqlite index unavailable; running without projection", "path", cfg.DBPath, "err", err)
	}

	clk := clock.SystemClock{}
	ids := id.UUID{}

	sessionStore := sessionoutadapter.NewCSVSessionStore(cfg.SessionsPath, logger)
	subjectStore := subjectoutadapter.NewCSVSubjectStore(cfg.SubjectsPath, logger)
	activeStore := sessionoutadapter.NewFileActiveSessionStore(cfg.ActivePath)

	sessionUC := sessionusecase.NewInteractor(
		sessionservice.NewSessionService(clk, ids, sessionStore, sessionProjector, logger),
		sessionoutadapter.NewRegistrySubjectLookup(subjectStore),
		activeStore,
		logger,
	)

	subjectUC := subjectusecase.NewInteractor(
		subjectservice.NewSubjectService(
			clk,
			subjectStore,
			subjectoutadapter.NewSessionStoreReferences(sessionStore, activeStore, sessionProjector, logger),
			subjectProjector,
			logger,
		),
		logger,
	)

	statsUC := statsusecase.NewInteractor(
		statsoutadapter.NewStoreSessionSource(sessionStore),
		clk,
		cfg.Location,
		logger,
	)

	app.SessionCLI = sessioninadapter.NewCLIHandler(sessionUC)
	app.SubjectCLI = subjectinadapter.NewCLIHandler(subjectUC)
	app.StatsCLI = statsinadapter.NewCLIHandler(statsUC)
	return app, nil
}

// openIndex opens the SQLite projection. On failure both projectors are nil
// and the CSV stores carry on alone.
func (a *App) openIndex(ctx context.Context) (sessionout.SessionIndexProjector, subjectout.SubjectIndexProjector, error) {
	db, err := sqlitedb.Open(ctx, a.Config.DBPath)
	if err != nil {
		return nil, nil, fmt.Errorf("open index: %w", err)
	}
	sessionProjector, err := sessionoutadapter.NewSQLiteSessionProjector(ctx, db)
	if err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("new session projector: %w", err)
	}
	subjectProjector, err := subjectoutadapter.NewSQLiteSubjectProjector(ctx, db)
	if err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("new subject projector: %w", err)
	}
	a.closers = append(a.closers, db)
	return sessionProjector, subjectProjector, nil
}

// Close releases the index database and the log file.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

// Reindex rebuilds the SQLite projection from the CSV files.
func (a *App) Reindex(ctx context.Context) (subjects, sessions int, err error) {
	if a.indexErr != nil {
		return 0, 0, fmt.Errorf("%w: %w", apperrors.ErrPersistence, a.indexErr)
	}
	if subjects, err = a.SubjectCLI.Reindex(ctx); err != nil {
		return 0, 0, err
	}
	if sessions, err = a.SessionCLI.Reindex(ctx); err != nil {
		return subjects, 0, err
	}
	return subjects, sessions, nil
}

func RunTUI(app *App) error {
	theme.Use(app.Config.Theme)
	model := uiapp.NewModel(app.SessionCLI, app.SubjectCLI, app.StatsCLI, app.Config.Location, app.Config.ChartDays)
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	return err
}
