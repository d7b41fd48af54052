package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/consulta-cnpj/consulta-cnpj/internal/app"
	"github.com/consulta-cnpj/consulta-cnpj/internal/company"
	"github.com/consulta-cnpj/consulta-cnpj/internal/company/cnpja"
	companyhttp "github.com/consulta-cnpj/consulta-cnpj/internal/company/http"
	"github.com/consulta-cnpj/consulta-cnpj/internal/observability"
	"github.com/consulta-cnpj/consulta-cnpj/internal/view"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	templates, err := view.NewEngine()
	if err != nil {
		logger.Error("parse templates", slog.Any("error", err))
		os.Exit(1)
	}

	metrics := observability.NewMetrics()

	upstream := cnpja.NewClient(cnpja.Config{
		BaseURL: cfg.CNPJABaseURL,
		Token:   cfg.CNPJAAPIToken,
		Timeout: cfg.CNPJATimeout,
	}, logger, metrics)
	if err := upstream.Ping(ctx); err != nil {
		logger.Warn("cnpja ping", slog.Any("error", err))
	}

	companyService := company.NewService(upstream, logger, metrics)
	companyHandler := companyhttp.NewHandler(logger, companyService, templates, cfg.UIDefaultTheme)

	router := app.NewRouter(app.RouterParams{
		Logger:         logger,
		Config:         cfg,
		CompanyHandler: companyHandler,
		Upstream:       upstream,
		Metrics:        metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr), slog.String("env", cfg.AppEnv))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
