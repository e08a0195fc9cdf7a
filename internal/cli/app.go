// Package cli wires configuration, logging and diagnostics for the
// hostbridge commands.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/bnema/hostbridge/internal/application/port"
	"github.com/bnema/hostbridge/internal/cli/styles"
	"github.com/bnema/hostbridge/internal/config"
	"github.com/bnema/hostbridge/internal/domain/build"
	"github.com/bnema/hostbridge/internal/infrastructure/persistence/sqlite"
	"github.com/bnema/hostbridge/internal/logging"
)

// App holds CLI dependencies.
type App struct {
	Config    *config.Config
	Manager   *config.Manager
	Theme     *styles.Theme
	BuildInfo build.Info
	Out       io.Writer

	ctx     context.Context
	closers []func() error
	journal port.DiagnosticsJournal
}

// NewApp loads configuration from configDir (XDG when empty) and builds
// the logger.
func NewApp(configDir string) (*App, error) {
	mgr, err := config.NewManager(configDir)
	if err != nil {
		return nil, fmt.Errorf("create config manager: %w", err)
	}
	if err := mgr.Load(); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	cfg := mgr.Get()

	app := &App{
		Config:  cfg,
		Manager: mgr,
		Theme:   styles.NewTheme(),
		Out:     os.Stdout,
	}

	logger, err := app.newLogger(cfg.Logging)
	if err != nil {
		return nil, err
	}
	app.ctx = logging.WithContext(context.Background(), logger)
	logger.Debug().Str("config_file", mgr.ConfigFile()).Msg("configuration loaded")
	return app, nil
}

// newLogger writes to stderr and, when enabled, JSON lines to a rotated file.
func (a *App) newLogger(cfg config.LoggingConfig) (zerolog.Logger, error) {
	if !cfg.EnableFileLog {
		return logging.NewFromConfigValues(cfg.Level, cfg.Format), nil
	}

	rotator, err := logging.NewLogRotator(logging.RotatorConfig{
		Dir:        cfg.LogDir,
		MaxSizeMB:  cfg.MaxSize,
		MaxBackups: cfg.MaxBackups,
		MaxAgeDays: cfg.MaxAge,
		Compress:   cfg.Compress,
	})
	if err != nil {
		return zerolog.Logger{}, fmt.Errorf("open log file: %w", err)
	}
	a.closers = append(a.closers, rotator.Close)

	lc := logging.DefaultConfig()
	lc.Level = logging.ParseLevel(cfg.Level)
	lc.Format = "json"
	var stderr io.Writer = os.Stderr
	if cfg.Format != "json" {
		stderr = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: lc.TimeFormat}
	}
	lc.Output = zerolog.MultiLevelWriter(stderr, rotator)
	return logging.New(lc), nil
}

// Context returns the base context carrying the logger.
func (a *App) Context() context.Context {
	return a.ctx
}

// JournalPath returns the configured journal file.
func (a *App) JournalPath() string {
	return a.Config.Diagnostics.JournalPath
}

// Journal opens the diagnostics journal lazily. It returns nil when the
// journal is disabled.
func (a *App) Journal() port.DiagnosticsJournal {
	if !a.Config.Diagnostics.JournalEnabled {
		return nil
	}
	if a.journal == nil {
		a.journal = sqlite.NewJournal(sqlite.NewLazyDB(a.JournalPath()))
	}
	return a.journal
}

// Close releases the journal and log files.
func (a *App) Close() error {
	var firstErr error
	if a.journal != nil {
		if err := a.journal.Close(); err != nil {
			firstErr = err
		}
	}
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
