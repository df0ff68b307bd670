package cli

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/roach88/airq/internal/answer"
	"github.com/roach88/airq/internal/chat"
	"github.com/roach88/airq/internal/compiler"
	"github.com/roach88/airq/internal/config"
	"github.com/roach88/airq/internal/history"
	"github.com/roach88/airq/internal/metrics"
	"github.com/roach88/airq/internal/nlu"
	"github.com/roach88/airq/internal/ranking"
	"github.com/roach88/airq/internal/resolver"
	"github.com/roach88/airq/internal/store"
)

// App wires the pipeline components from configuration.
type App struct {
	Config   config.Config
	Logger   *slog.Logger
	Store    *store.Accessor
	Engine   *ranking.Engine
	Resolver *resolver.Resolver
	Service  *chat.Service
	Registry *prometheus.Registry

	// History is nil when the conversation log is disabled.
	History *history.Store
}

// newLogger returns a text logger on w, at debug level when verbose.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// NewApp loads the configuration and builds every component.
// Diagnostics go to logOut.
func NewApp(opts *RootOptions, logOut io.Writer) (*App, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to load config", err)
	}
	if opts.DataDir != "" {
		cfg.DataDir = opts.DataDir
	}

	logger := newLogger(logOut, opts.Verbose)
	slog.SetDefault(logger)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	app := &App{Config: cfg, Logger: logger, Registry: reg, Resolver: resolver.New()}
	app.Store = store.New(cfg.DataDir,
		store.WithTimeout(cfg.QueryTimeout),
		store.WithBatchSize(cfg.BatchSize),
		store.WithLogger(logger),
	)
	app.Engine = ranking.New(app.Store,
		ranking.WithOtherThreshold(cfg.OtherThreshold),
		ranking.WithLogger(logger),
	)

	svcOpts := []chat.Option{
		chat.WithLogger(logger),
		chat.WithMetrics(metrics.New(reg)),
	}

	parser := opts.Parser
	if parser == nil {
		client, err := nlu.New(nlu.Config{
			BaseURL:  cfg.NLU.BaseURL,
			Model:    cfg.NLU.Model,
			APIKey:   cfg.NLU.APIKey,
			Attempts: cfg.NLU.Attempts,
			Backoff:  cfg.NLU.Backoff,
			Timeout:  cfg.NLU.Timeout,
		}, nlu.WithLogger(logger))
		switch {
		case errors.Is(err, nlu.ErrUnconfigured):
			logger.Info("question parsing disabled: no API key")
		case err != nil:
			return nil, WrapExitError(ExitCommandError, "failed to configure question parser", err)
		default:
			parser = client
		}
	}
	if parser != nil {
		svcOpts = append(svcOpts, chat.WithParser(parser))
	}

	if cfg.HistoryPath != "" {
		h, err := history.Open(cfg.HistoryPath)
		if err != nil {
			return nil, WrapExitError(ExitCommandError, "failed to open history database", err)
		}
		app.History = h
		svcOpts = append(svcOpts, chat.WithHistory(h))
	}

	app.Service = chat.New(compiler.New(app.Resolver), app.Engine, answer.New(app.Resolver), svcOpts...)
	logger.Debug("app ready", "data_dir", cfg.DataDir, "history", cfg.HistoryPath)
	return app, nil
}

// Close releases the history database.
func (a *App) Close() error {
	if a.History == nil {
		return nil
	}
	return a.History.Close()
}

// withApp builds the App for cmd, runs fn under a context that is
// cancelled on SIGINT or SIGTERM, and closes the App afterwards.
func withApp(cmd *cobra.Command, opts *RootOptions, fn func(app *App) error) error {
	app, err := NewApp(opts, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer func() {
		if cerr := app.Close(); cerr != nil {
			app.Logger.Warn("close failed", "error", cerr)
		}
	}()

	parentCtx := cmd.Context()
	if parentCtx == nil {
		parentCtx = context.Background()
	}
	ctx, cancel := context.WithCancel(parentCtx)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	go func() {
		select {
		case sig := <-sigChan:
			app.Logger.Info("received signal, shutting down", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	cmd.SetContext(ctx)
	return fn(app)
}
