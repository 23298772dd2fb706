// Package cli is the interactive presentation layer of the wallet client:
// a small REPL over the auth session, the onboarding slides, and the
// card-application form.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"

	"github.com/eonwallet/walletcore/internal/api"
	"github.com/eonwallet/walletcore/internal/application"
	"github.com/eonwallet/walletcore/internal/auth"
	"github.com/eonwallet/walletcore/internal/common"
	"github.com/eonwallet/walletcore/internal/config"
	"github.com/eonwallet/walletcore/internal/gateway"
	"github.com/eonwallet/walletcore/internal/logging"
	"github.com/eonwallet/walletcore/internal/securestore"
	"github.com/eonwallet/walletcore/internal/welcome"

	_ "modernc.org/sqlite"
)

type App struct {
	config *config.Config
	log    logging.Logger

	auth    *auth.Store
	form    *application.Store
	welcome *welcome.Service

	closeSecrets func() error
	reader       *bufio.Reader
}

// NewApp wires the gateway, credential store, and state stores according to
// the configuration.
func NewApp(ctx context.Context, cfg *config.Config, log logging.Logger) (*App, error) {
	var secrets securestore.Store
	closeSecrets := func() error { return nil }

	if cfg.VaultPassphrase != "" {
		passphrase := []byte(cfg.VaultPassphrase)
		vault, err := securestore.OpenVault(ctx, cfg.VaultPath, passphrase)
		common.WipeByteArray(passphrase)
		if err != nil {
			return nil, fmt.Errorf("open vault: %w", err)
		}
		secrets = vault
		closeSecrets = vault.Close
	} else {
		log.Info(ctx, "no vault passphrase set, session will not survive restarts")
		secrets = securestore.NewMemory()
	}

	var gw gateway.Gateway
	switch cfg.GatewayMode {
	case config.GatewayModeHTTP:
		gw = gateway.NewHTTP(cfg.APIBaseURL, cfg.RequestTimeout, securestore.NewSessionTokens(secrets), log)
	default:
		gw = gateway.NewMock()
	}

	client := api.NewClient(gw)

	return &App{
		config:       cfg,
		log:          log,
		auth:         auth.NewStore(client, secrets, log),
		form:         application.NewStore(client, log),
		welcome:      welcome.NewService(client, welcome.Source(cfg.SlidesSource), log),
		closeSecrets: closeSecrets,
		reader:       bufio.NewReader(os.Stdin),
	}, nil
}

// Run restores any stored session and hands control to the REPL.
func (a *App) Run(ctx context.Context) {
	defer func() { _ = a.closeSecrets() }()

	if a.auth.RestoreFromStorage(ctx) {
		st := a.auth.State()
		printlnFn(fmt.Sprintf("Welcome back, %s!", st.User.Name))
	}

	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.status, scanner)
}

func (a *App) isLoggedIn() bool {
	return a.auth.State().IsAuthenticated
}

func (a *App) status() string {
	st := a.auth.State()
	if st.User != nil {
		return fmt.Sprintf("(%s)", st.User.Email)
	}
	return ""
}
