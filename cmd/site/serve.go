package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	site "github.com/brainbridge/site"
	"github.com/brainbridge/site/content"
	"github.com/brainbridge/site/metrics"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the site",
		Long: `serve starts the public site on --addr and the diagnostics server,
which exposes Prometheus metrics, on --diag-addr.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), loadConfig(v))
		},
	}
	cmd.Flags().String("addr", "", "listen address")
	cmd.Flags().String("diag-addr", "", "diagnostics listen address")
	cmd.Flags().Bool("watch", false, "cache the blog corpus and reload it when files change")
	_ = v.BindPFlag("addr", cmd.Flags().Lookup("addr"))
	_ = v.BindPFlag("diag_addr", cmd.Flags().Lookup("diag-addr"))
	_ = v.BindPFlag("content.watch", cmd.Flags().Lookup("watch"))
	return cmd
}

// openRepository reads the corpus from disk on every query. With watching
// enabled it caches the corpus instead, falling back to plain reads when the
// watcher cannot start.
func openRepository(cfg config, logger *zap.SugaredLogger) content.Repository {
	log := logger.Named("content")
	if cfg.WatchContent {
		repo, err := content.NewWatchedRepository(cfg.Site.ContentDir, log)
		if err == nil {
			return repo
		}
		log.Warnw("content watcher unavailable, reading from disk on every request",
			"dir", cfg.Site.ContentDir, "error", err)
	}
	return content.NewFileRepository(cfg.Site.ContentDir, log)
}

func newDiagServer(rec *metrics.Recorder) *echo.Echo {
	diag := echo.New()
	diag.HideBanner = true
	diag.HidePort = true
	diag.GET("/metrics", echo.WrapHandler(rec.Handler()))
	diag.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	return diag
}

func runServe(ctx context.Context, cfg config) error {
	logger, err := newLogger(cfg.Env)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	rec, err := metrics.New("brainbridge-site")
	if err != nil {
		return err
	}

	app, err := site.New(cfg.Site,
		site.WithLogger(logger),
		site.WithRepository(openRepository(cfg, logger)),
		site.WithMetrics(rec),
	)
	if err != nil {
		return err
	}
	defer func() { _ = app.Close() }()

	diag := newDiagServer(rec)

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 2)
	go func() { errc <- app.Start() }()
	go func() {
		logger.Infow("diagnostics listening", "addr", cfg.DiagAddr)
		if err := diag.Start(cfg.DiagAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- fmt.Errorf("diag: serve: %w", err)
			return
		}
		errc <- nil
	}()

	var runErr error
	select {
	case <-ctx.Done():
		logger.Infow("shutting down")
	case runErr = <-errc:
		if runErr != nil {
			logger.Errorw("server stopped", "error", runErr)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := app.Shutdown(shutdownCtx); err != nil {
		logger.Warnw("site shutdown", "error", err)
	}
	if err := diag.Shutdown(shutdownCtx); err != nil {
		logger.Warnw("diag shutdown", "error", err)
	}
	return runErr
}
