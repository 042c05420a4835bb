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

	"github.com/iwvelando/finance-calculators/internal/cache"
	"github.com/iwvelando/finance-calculators/internal/calculator"
	"github.com/iwvelando/finance-calculators/internal/logging"
	"github.com/iwvelando/finance-calculators/internal/server"
	"github.com/iwvelando/finance-calculators/pkg/constants"
	"go.uber.org/zap"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

const shutdownTimeout = 10 * time.Second

func main() {
	configLocation := flag.String("config", constants.DefaultServerConfigFile, "path to server configuration file")
	address := flag.String("address", "", "listen address override, e.g. :8080")
	maxBodySize := flag.String("max-body-size", "", "request body limit override, e.g. 256K")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	flag.Parse()

	cfg, err := server.LoadConfig(*configLocation)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load server configuration at %s\", \"error\": \"%v\"}\n", *configLocation, err)
		os.Exit(1)
	}
	if *address != "" {
		cfg.Address = *address
	}
	if *maxBodySize != "" {
		size, err := server.ParseSize(*maxBodySize)
		if err != nil {
			fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"invalid max body size\", \"error\": \"%v\"}\n", err)
			os.Exit(1)
		}
		cfg.SetBodySizeBytes(size)
	}

	logger, err := logging.New(cfg.Logging, *logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	responseCache, err := cache.New(cfg.Cache)
	if err != nil {
		logger.Fatal("failed to create response cache",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
	defer func() {
		_ = responseCache.Close()
	}()

	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := responseCache.Ping(pingCtx); err != nil {
		logger.Warn("response cache is not reachable yet",
			zap.String("op", "main"),
			zap.String("backend", cfg.Cache.Backend),
			zap.Error(err),
		)
	}
	cancel()

	service := calculator.NewService(logger, cfg.MemoEntries)
	httpServer := &http.Server{
		Addr:              cfg.Address,
		Handler:           server.NewHandler(logger, service, responseCache, cfg.BodySizeBytes(), version),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("starting server",
			zap.String("op", "main"),
			zap.String("address", cfg.Address),
			zap.String("version", version),
			zap.String("cache", cfg.Cache.Backend),
		)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server", zap.String("op", "main"))
	ctx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancelShutdown()
	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error("failed to shut down server cleanly",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
	logger.Info("server stopped", zap.String("op", "main"))
}
