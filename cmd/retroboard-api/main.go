package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/retroboard-dev/retroboard/internal/config"
	"github.com/retroboard-dev/retroboard/internal/logger"
	"github.com/retroboard-dev/retroboard/internal/router"
	"github.com/retroboard-dev/retroboard/internal/setup"
)

func main() {
	var configFolder string
	flag.StringVar(&configFolder, "config_folder", "config", "path to folder with configs")
	flag.Parse()

	cfg := config.MustLoad(configFolder)
	logger.Initialize(cfg.Public.LogLevel, cfg.Public.LogJSON)

	deps, err := setup.SetupDependencies(cfg)
	if err != nil {
		logger.Log.Error("failed to set up dependencies", "error", err)
		os.Exit(1)
	}
	defer deps.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// pump db change notifications into the hub for the lifetime of the process
	go deps.Hub.Run(ctx, deps.Listener.C())

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Public.Port),
		Handler: router.New(deps),
	}

	go func() {
		logger.Log.Info("server started", "port", cfg.Public.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Error("server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("shutdown error", "error", err)
	}
}
