package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"

	"github.com/angelmondragon/shopfront-miniapp/internal/devbot"
	"github.com/angelmondragon/shopfront-miniapp/pkg/config"
	"github.com/angelmondragon/shopfront-miniapp/pkg/logger"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "devbot"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "devbot",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	catalog, err := devbot.LoadCatalog(cfg.DevBot.CatalogPath)
	if err != nil {
		logg.Error(context.Background(), "failed to load catalog fixture", err)
		os.Exit(1)
	}

	server, err := devbot.NewServer(devbot.Options{
		Catalog:    catalog,
		InvoiceURL: cfg.DevBot.InvoiceURL,
		Logger:     logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to build devbot server", err)
		os.Exit(1)
	}

	httpServer := &http.Server{
		Addr:              cfg.DevBot.Addr,
		Handler:           server.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logg.Error(context.Background(), "shutdown failed", err)
		}
	}()

	logCtx := logg.WithField(context.Background(), "addr", cfg.DevBot.Addr)
	logg.Info(logCtx, "devbot listening")
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logg.Error(logCtx, "devbot exited with error", err)
		os.Exit(1)
	}
	logg.Info(logCtx, "devbot shut down gracefully")
}
