package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/riskibarqy/proconnect-api/internal/app"
	"github.com/riskibarqy/proconnect-api/internal/config"
	"github.com/riskibarqy/proconnect-api/internal/observability"
	"github.com/riskibarqy/proconnect-api/internal/platform/logging"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger, shutdownLogger, err := observability.InitLogger(cfg)
	if err != nil {
		panic(err)
	}
	logging.SetDefault(logger)
	logger = logger.With("service", cfg.ServiceName, "version", cfg.ServiceVersion, "env", cfg.AppEnv)

	os.Exit(run(cfg, logger, shutdownLogger))
}

func run(cfg config.Config, logger *logging.Logger, shutdownLogger observability.ShutdownFunc) int {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdowns := []namedShutdown{{name: "logger", fn: shutdownLogger}}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		for i := len(shutdowns) - 1; i >= 0; i-- {
			if err := shutdowns[i].fn(shutdownCtx); err != nil {
				logger.Error("shutdown step failed", "step", shutdowns[i].name, "error", err)
			}
		}
	}()

	shutdownTracing, err := observability.InitUptrace(cfg, logger)
	if err != nil {
		logger.Error("init uptrace", "error", err)
		return 1
	}
	shutdowns = append(shutdowns, namedShutdown{name: "uptrace", fn: shutdownTracing})

	shutdownProfiling, err := observability.InitPyroscope(cfg, logger)
	if err != nil {
		logger.Error("init pyroscope", "error", err)
		return 1
	}
	shutdowns = append(shutdowns, namedShutdown{name: "pyroscope", fn: shutdownProfiling})
	shutdowns = append(shutdowns, namedShutdown{name: "pprof", fn: observability.StartPprofServer(cfg, logger)})

	srv, closeApp, err := app.NewHTTPServer(ctx, cfg, logger)
	if err != nil {
		logger.Error("build app", "error", err)
		return 1
	}
	shutdowns = append(shutdowns, namedShutdown{name: "app", fn: closeApp})

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("http server starting", "addr", cfg.HTTPAddr, "storage", cfg.StorageDriver, "auth_mode", cfg.AuthMode)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			logger.Error("http server failed", "error", err)
			return 1
		}
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
		return 1
	}

	logger.Info("http server stopped")
	return 0
}

type namedShutdown struct {
	name string
	fn   func(context.Context) error
}
