package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/vk/fontpackgen/internal/config"
	"github.com/vk/fontpackgen/internal/ctxlog"
	"github.com/vk/fontpackgen/internal/executor"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW   io.Writer
	logger *slog.Logger
	config *Config
	pack   *config.Pack
	// runner performs node commands during a local run.
	runner executor.Runner
}

// NewApp is the constructor for the main application. It configures an
// isolated logger and loads the pack, falling back to the built-in default
// pack when no configuration path is given.
func NewApp(outW io.Writer, appConfig *Config, loader config.Loader) (*App, error) {
	logger := newLogger(appConfig.LogLevel, appConfig.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	var pack *config.Pack
	if appConfig.ConfigPath == "" {
		logger.Info("No configuration given, using the default pack.")
		pack = config.Default()
	} else {
		var err error
		pack, err = loader.Load(ctx, appConfig.ConfigPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load configuration: %w", err)
		}
		logger.Debug("Configuration loaded and translated into unified model.")
	}

	if appConfig.Jobs > 0 {
		logger.Debug("Overriding job count.", "pack_jobs", pack.Jobs, "jobs", appConfig.Jobs)
		pack.Jobs = appConfig.Jobs
	}

	return &App{
		outW:   outW,
		logger: logger,
		config: appConfig,
		pack:   pack,
	}, nil
}

// Pack returns the loaded pack. This is primarily for testing.
func (a *App) Pack() *config.Pack {
	return a.pack
}

// SetRunner replaces the shell runner used by local runs.
func (a *App) SetRunner(r executor.Runner) {
	a.runner = r
}
