package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"github.com/angelmondragon/shopfront-miniapp/internal/cart"
	"github.com/angelmondragon/shopfront-miniapp/internal/catalog"
	"github.com/angelmondragon/shopfront-miniapp/internal/session"
	"github.com/angelmondragon/shopfront-miniapp/internal/ui"
	"github.com/angelmondragon/shopfront-miniapp/pkg/bridge/ws"
	"github.com/angelmondragon/shopfront-miniapp/pkg/config"
	"github.com/angelmondragon/shopfront-miniapp/pkg/logger"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "shopfront"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "shopfront",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	client, err := ws.NewClient(ws.Options{
		URL:              cfg.Bridge.URL,
		HandshakeTimeout: cfg.Bridge.HandshakeTimeout,
		WriteTimeout:     cfg.Bridge.WriteTimeout,
		Logger:           logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to build bridge client", err)
		os.Exit(1)
	}
	if err := client.Connect(context.Background()); err != nil {
		logg.Error(context.Background(), "failed to reach the bridge host", err)
		os.Exit(1)
	}
	defer client.Close()

	ledger, err := cart.NewLedger(client)
	if err != nil {
		logg.Error(context.Background(), "failed to build cart ledger", err)
		os.Exit(1)
	}

	controller, err := session.NewController(session.Params{
		Store:    catalog.NewStore(),
		Ledger:   ledger,
		Bridge:   client,
		Logger:   logg,
		Currency: cfg.Shop.Currency,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to build controller", err)
		os.Exit(1)
	}

	controller.Start(context.Background())
	defer controller.Stop()

	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":    cfg.App.Env,
		"bridge": cfg.Bridge.URL,
	})
	logg.Info(ctx, "starting storefront")

	model := ui.NewModel(controller, client.Events(), client.Dispatch)
	if _, err := tea.NewProgram(model).Run(); err != nil {
		logg.Error(ctx, "storefront exited with error", err)
		os.Exit(1)
	}
}
