// Package app assembles the game from its configuration.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/tatianab/word-sketch/internal/analytics"
	"github.com/tatianab/word-sketch/internal/config"
	"github.com/tatianab/word-sketch/internal/engine"
	"github.com/tatianab/word-sketch/internal/i18n"
	"github.com/tatianab/word-sketch/internal/prefs"
	"github.com/tatianab/word-sketch/internal/speech"
)

// App is everything a front end needs to run a game.
type App struct {
	Engine  *engine.Engine
	Prefs   prefs.Store
	Capture speech.Capability
	Logger  *log.Logger
	Brush   int

	closers []func() error
}

// New wires config into a ready engine. Close must be called when done.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	a := &App{Brush: cfg.BrushWidth}

	logger, err := a.openLogger(cfg)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.Logger = logger

	cat, err := i18n.Load()
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	if !cat.Supported(cfg.Language) {
		a.Close()
		return nil, fmt.Errorf("%w: WORD_SKETCH_LANGUAGE=%q", engine.ErrUnsupportedLanguage, cfg.Language)
	}

	if err := a.openPrefs(ctx, cfg); err != nil {
		a.Close()
		return nil, err
	}
	lang := prefs.LoadLanguage(ctx, a.Prefs, cat.Supported, cfg.Language, logger)

	sink, err := a.analytics(cfg)
	if err != nil {
		a.Close()
		return nil, err
	}

	a.Capture = a.openCapture(ctx, cfg)

	opts := []engine.Option{
		engine.WithSink(sink),
		engine.WithLogger(logger),
		engine.WithLanguage(lang),
	}
	if cfg.Seed != nil {
		opts = append(opts, engine.WithSeed(*cfg.Seed))
	}
	a.Engine, err = engine.NewEngine(i18n.NewLocalizer(cat, logger), opts...)
	if err != nil {
		a.Close()
		return nil, err
	}
	logger.Info("game ready", "session", a.Engine.SessionID(), "language", lang, "speech", a.Capture.Available())
	return a, nil
}

func (a *App) openLogger(cfg *config.Config) (*log.Logger, error) {
	if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0755); err != nil {
		return nil, err
	}
	f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	a.closers = append(a.closers, f.Close)

	return log.NewWithOptions(f, log.Options{
		Level:           cfg.LogLevel,
		ReportTimestamp: true,
		Formatter:       log.LogfmtFormatter,
	}), nil
}

func (a *App) openPrefs(ctx context.Context, cfg *config.Config) error {
	switch cfg.PrefsBackend {
	case config.BackendSQLite:
		s, err := prefs.OpenSQLite(ctx, cfg.PrefsPath())
		if err != nil {
			return err
		}
		a.Prefs = s
	default:
		a.Prefs = prefs.NewFileStore(cfg.PrefsPath())
	}
	a.closers = append(a.closers, a.Prefs.Close)
	return nil
}

func (a *App) analytics(cfg *config.Config) (analytics.Sink, error) {
	sinks := analytics.Multi{analytics.Safe(analytics.NewLogSink(a.Logger), a.Logger)}
	if cfg.MetricsAddr == "" {
		return sinks, nil
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	prom, err := analytics.NewPrometheusSink(reg)
	if err != nil {
		return nil, err
	}
	sinks = append(sinks, analytics.Safe(prom, a.Logger))

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: cfg.MetricsAddr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.Logger.Error("metrics server stopped", "addr", cfg.MetricsAddr, "err", err)
		}
	}()
	a.closers = append(a.closers, func() error {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		return srv.Shutdown(ctx)
	})
	a.Logger.Info("serving metrics", "addr", cfg.MetricsAddr)
	return sinks, nil
}

func (a *App) openCapture(ctx context.Context, cfg *config.Config) speech.Capability {
	g, err := speech.NewGeminiCapture(ctx, cfg.GeminiAPIKey, cfg.Recorder, a.Logger)
	if err != nil {
		if !errors.Is(err, speech.ErrNoAPIKey) {
			a.Logger.Warn("speech capture disabled", "err", err)
		}
		return speech.Unavailable{}
	}
	a.closers = append(a.closers, g.Close)
	return g
}

// Close releases everything New opened, newest first.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i]())
	}
	a.closers = nil
	return errors.Join(errs...)
}
