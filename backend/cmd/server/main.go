package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gamecrowd/backend/internal/app"
	"gamecrowd/backend/internal/bootstrap"
	appLogger "gamecrowd/backend/internal/infra/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if _, err := appLogger.Init(); err != nil {
		log.Fatalf("logger init failed: %v", err)
	}
	defer appLogger.Sync()
	logger := appLogger.S().With("component", "main")

	resources, err := app.Bootstrap()
	if err != nil {
		logger.Fatalw("bootstrap failed", "error", err)
	}
	defer func() {
		if err := resources.Close(); err != nil {
			logger.Errorw("resource cleanup error", "error", err)
		}
	}()

	application, err := bootstrap.BuildApplication(logger, resources)
	if err != nil {
		logger.Fatalw("build application failed", "error", err)
	}

	srv := &http.Server{
		Addr:              ":" + resources.Flags.Port,
		Handler:           application.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Infow("http server listening", "addr", srv.Addr, "mode", resources.Flags.Mode)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalw("http server error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Infow("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorw("graceful shutdown failed", "error", err)
	}
}
