package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"folio/internal/api"
	"folio/internal/app"
	"folio/internal/config"
	"folio/internal/contact"
	"folio/internal/content"
	"folio/internal/events"
	"folio/internal/i18n"
	"folio/internal/prefs"
	"folio/internal/ratelimit"
	"folio/internal/server"
	"folio/internal/terminal"
)

const httpShutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the SSH portfolio and the HTTP API",
	Long: `Starts both listeners and blocks until SIGINT or SIGTERM.

When FOLIO_CONTENT_DIR is set, locale files are read from that directory
and reloaded on change; otherwise the embedded content is served.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	source, watcher, err := openContent(cfg.ContentDir)
	if err != nil {
		return err
	}
	backend, closePrefs, err := openPrefs(ctx, cfg)
	if err != nil {
		return err
	}
	defer closePrefs()

	tr, err := i18n.New(logger)
	if err != nil {
		return fmt.Errorf("load translations: %w", err)
	}
	registry := terminal.DefaultRegistry()
	metrics := api.NewMetrics()

	deps := app.Deps{
		Source:      source,
		Prefs:       backend,
		Translator:  tr,
		Registry:    registry,
		Logger:      logger,
		Subscribers: []events.Handler{metrics.OnEvent},
	}

	contactHandler := contact.NewHandler(cfg.Mail, nil,
		contact.WithLimiter(ratelimit.New(cfg.RateLimitPerMinute, cfg.RateLimitBurst)),
		contact.WithLogger(logger),
		contact.WithOutcomeObserver(metrics.ContactOutcome),
	)
	if !cfg.Mail.Complete() {
		logger.Warn("contact relay not configured; /api/contact will answer CONFIG_MISSING")
	}

	httpServer := &http.Server{
		Addr: cfg.HTTPAddr,
		Handler: api.NewRouter(api.Config{
			Source:     source,
			Registry:   registry,
			Translator: tr,
			Contact:    contactHandler,
			Metrics:    metrics,
			Logger:     logger,
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	programs := server.NewPrograms(deps, metrics, logger)
	runtime, err := server.New(cfg, server.DefaultChain(cfg, programs, logger), logger)
	if err != nil {
		return fmt.Errorf("build ssh server: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	if watcher != nil {
		if err := watcher.Start(gctx); err != nil {
			return fmt.Errorf("watch content: %w", err)
		}
		defer func() { _ = watcher.Stop() }()
	}
	g.Go(func() error {
		return runtime.Run(gctx)
	})
	g.Go(func() error {
		logger.Info("http startup", zap.String("addr", cfg.HTTPAddr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), httpShutdownTimeout)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})

	err = g.Wait()
	logger.Info("shutdown complete", zap.Error(err))
	return err
}

// openContent serves the embedded catalog, or a watched directory when dir
// is set.
func openContent(dir string) (content.Source, *content.Watcher, error) {
	if dir == "" {
		cat, err := content.LoadEmbedded()
		if err != nil {
			return nil, nil, fmt.Errorf("load embedded content: %w", err)
		}
		return cat, nil, nil
	}
	w, err := content.NewWatcher(dir, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("load content from %s: %w", dir, err)
	}
	return w, w, nil
}

// openPrefs selects the preference backend named by the config.
func openPrefs(ctx context.Context, cfg config.Config) (prefs.Backend, func(), error) {
	switch cfg.PrefsBackend {
	case config.PrefsFile:
		logger.Info("preferences on disk", zap.String("path", cfg.PrefsPath))
		return prefs.NewFileBackend(cfg.PrefsPath), func() {}, nil
	case config.PrefsRedis:
		backend, err := prefs.NewRedisBackend(ctx, prefs.RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		}, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("connect redis: %w", err)
		}
		return backend, func() { _ = backend.Close() }, nil
	default:
		return prefs.NewMemoryBackend(), func() {}, nil
	}
}
