package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humaecho"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	"github.com/ejezie/Enact-Pricing/internal/api/handlers"
	"github.com/ejezie/Enact-Pricing/internal/api/middleware"
	"github.com/ejezie/Enact-Pricing/internal/pipeline"
	"github.com/ejezie/Enact-Pricing/internal/responder"
)

func serveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the analysis API server",
		Long: "Starts the HTTP API with analyze and chat endpoints, and a\n" +
			"background schedule that refreshes watched search terms.",
		RunE: runServe,
	}
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := newLogger(cfg)

	runner, source, err := newRunner(cfg, log)
	if err != nil {
		return fmt.Errorf("wiring pipeline: %w", err)
	}
	defer source.Close()

	service := pipeline.NewService(runner, log)

	adapter, err := newAdapter(cfg, log)
	if err != nil {
		return fmt.Errorf("wiring delegate: %w", err)
	}
	respond := responder.New(adapter, log)

	var ready atomic.Bool

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recovery(log))
	e.Use(middleware.RequestLog(log))
	e.Use(middleware.Metrics())

	health := handlers.NewHealthHandler(ready.Load)
	e.GET("/healthz", health.Healthz)
	e.GET("/readyz", health.Readyz)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := humaecho.New(e, huma.DefaultConfig("enact", Version))
	handlers.RegisterAnalyzeRoutes(api, handlers.NewAnalyzeHandler(service))
	handlers.RegisterChatRoutes(api, handlers.NewChatHandler(service, respond))

	// Background refresh of watched terms.
	scheduler := cron.New()
	refreshCtx, cancelRefresh := context.WithCancel(context.Background())
	defer cancelRefresh()
	if len(cfg.Schedule.WatchTerms) > 0 {
		every := fmt.Sprintf("@every %s", cfg.Schedule.RefreshInterval)
		if _, err := scheduler.AddFunc(every, func() {
			service.RefreshAll(refreshCtx, cfg.Schedule.WatchTerms)
		}); err != nil {
			return fmt.Errorf("scheduling refresh: %w", err)
		}
		scheduler.Start()
		log.Info("refresh schedule started",
			"interval", cfg.Schedule.RefreshInterval,
			"terms", len(cfg.Schedule.WatchTerms),
		)
	}

	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Info("starting server", "addr", addr)

	go func() {
		ready.Store(true)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")
	ready.Store(false)
	cancelRefresh()

	stopCtx := scheduler.Stop()
	<-stopCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutting down server: %w", err)
	}

	log.Info("server stopped")
	return nil
}
