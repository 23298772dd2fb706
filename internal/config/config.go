// Package config holds runtime settings for the wallet client. Values are
// layered: built-in defaults, then environment variables, then command-line
// flags — later sources win.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Gateway modes.
const (
	GatewayModeMock = "mock"
	GatewayModeHTTP = "http"
)

// Config holds runtime settings for the wallet client.
//
// Fields:
//   - GatewayMode: "mock" (synthesized responses) or "http" (real API).
//   - APIBaseURL: base URL for the http gateway.
//   - RequestTimeout: per-request HTTP timeout.
//   - VaultPath: SQLite file for the credential vault.
//   - VaultPassphrase: passphrase sealing vault values. Empty means the
//     session is kept in memory only.
//   - SlidesSource: "api" or "static" onboarding slides.
type Config struct {
	GatewayMode     string        `env:"WALLET_GATEWAY_MODE"`
	APIBaseURL      string        `env:"WALLET_API_BASE_URL"`
	RequestTimeout  time.Duration `env:"WALLET_REQUEST_TIMEOUT"`
	VaultPath       string        `env:"WALLET_VAULT_PATH"`
	VaultPassphrase string        `env:"WALLET_VAULT_PASSPHRASE"`
	SlidesSource    string        `env:"WALLET_SLIDES_SOURCE"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.GatewayMode = GatewayModeMock
	c.APIBaseURL = "https://api.eonwallet.com"
	c.RequestTimeout = 10 * time.Second
	c.VaultPath = "wallet.db"
	c.SlidesSource = "api"
}

// Load constructs a Config, applies defaults, then overlays values from the
// environment and command-line flags. Later sources take precedence.
func Load(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	if cfg.GatewayMode != GatewayModeMock && cfg.GatewayMode != GatewayModeHTTP {
		return nil, fmt.Errorf("unknown gateway mode %q", cfg.GatewayMode)
	}
	return cfg, nil
}
