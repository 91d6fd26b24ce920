package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gcbaptista/go-resume-matcher/api"
	"github.com/gcbaptista/go-resume-matcher/config"
	"github.com/gcbaptista/go-resume-matcher/internal/logger"
	"github.com/gcbaptista/go-resume-matcher/internal/matcher"
	"github.com/gcbaptista/go-resume-matcher/internal/metrics"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(opts *rootOptions) *cobra.Command {
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context(), opts)
		},
	}

	serveCmd.Flags().StringP("port", "p", config.DefaultPort, "port to run the server on")
	serveCmd.Flags().Int64("max-body-bytes", config.DefaultMaxBodyBytes, "maximum accepted request body size")

	_ = opts.v.BindPFlag("port", serveCmd.Flags().Lookup("port"))
	_ = opts.v.BindPFlag("max-body-bytes", serveCmd.Flags().Lookup("max-body-bytes"))
	return serveCmd
}

func serve(ctx context.Context, opts *rootOptions) error {
	cfg, err := opts.loadConfig()
	if err != nil {
		return err
	}

	log, err := logger.New(cfg.LogJSON, cfg.Debug)
	if err != nil {
		return fmt.Errorf("creating a logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	log.Info("starting the resume matcher", zap.String("version", version))

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	analysisMetrics, err := metrics.NewAnalysisMetrics(reg)
	if err != nil {
		return fmt.Errorf("registering analysis metrics: %w", err)
	}

	svc, err := matcher.NewService(cfg.Matcher, analysisMetrics, log)
	if err != nil {
		return err
	}
	log.Info("skill vocabulary loaded",
		zap.Strings("skills", svc.Vocabulary()),
		zap.String("match_mode", cfg.Matcher.SkillMatchMode),
	)

	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	if err := api.SetupRoutes(router, svc, api.RouteOptions{
		Version:      version,
		Registry:     reg,
		Logger:       log,
		MaxBodyBytes: cfg.MaxBodyBytes,
	}); err != nil {
		return fmt.Errorf("setting up routes: %w", err)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", zap.String("addr", srv.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server stopped: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	return nil
}
