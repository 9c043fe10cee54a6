package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	if !cfg.App.IsDev() {
		t.Fatalf("expected App.Env to default to development, got %q", cfg.App.Env)
	}
	if cfg.Bridge.URL != "ws://localhost:8090/ws" {
		t.Fatalf("unexpected bridge URL: %q", cfg.Bridge.URL)
	}
	if got := cfg.Bridge.HandshakeTimeout; got != 10*time.Second {
		t.Fatalf("expected handshake timeout 10s, got %v", got)
	}
	if cfg.Shop.Currency != "MDL" {
		t.Fatalf("unexpected currency %q", cfg.Shop.Currency)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv(EnvAppEnv, "production")
	t.Setenv("SHOPFRONT_CURRENCY", "USD")
	t.Setenv("SHOPFRONT_DEVBOT_ADDR", ":9999")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	if !cfg.App.IsProd() {
		t.Fatalf("expected production env, got %q", cfg.App.Env)
	}
	if cfg.Shop.Currency != "USD" {
		t.Fatalf("unexpected currency %q", cfg.Shop.Currency)
	}
	if cfg.DevBot.Addr != ":9999" {
		t.Fatalf("unexpected devbot addr %q", cfg.DevBot.Addr)
	}
}
