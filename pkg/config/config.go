package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	// EnvPrefix namespaces every environment variable the app reads.
	EnvPrefix = "SHOPFRONT"

	AppEnvDev  = "development"
	AppEnvProd = "production"

	// EnvAppEnv is spelled out for tests that need to unset it.
	EnvAppEnv = "SHOPFRONT_APP_ENV"
)

type Config struct {
	App    AppConfig
	Bridge BridgeConfig
	Shop   ShopConfig
	DevBot DevBotConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"SHOPFRONT_APP_ENV" default:"development"`
	LogLevel     string `envconfig:"SHOPFRONT_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"SHOPFRONT_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// BridgeConfig locates the host bridge endpoint the app attaches to.
type BridgeConfig struct {
	URL              string        `envconfig:"SHOPFRONT_BRIDGE_URL" default:"ws://localhost:8090/ws"`
	HandshakeTimeout time.Duration `envconfig:"SHOPFRONT_BRIDGE_HANDSHAKE_TIMEOUT" default:"10s"`
	WriteTimeout     time.Duration `envconfig:"SHOPFRONT_BRIDGE_WRITE_TIMEOUT" default:"5s"`
}

type ShopConfig struct {
	Currency string `envconfig:"SHOPFRONT_CURRENCY" default:"MDL"`
}

// DevBotConfig configures the development backend stub.
type DevBotConfig struct {
	Addr        string `envconfig:"SHOPFRONT_DEVBOT_ADDR" default:":8090"`
	CatalogPath string `envconfig:"SHOPFRONT_DEVBOT_CATALOG_PATH"`
	InvoiceURL  string `envconfig:"SHOPFRONT_DEVBOT_INVOICE_URL" default:"https://t.me/invoice/dev-order"`
}
