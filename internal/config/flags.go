package config

import (
	"flag"
	"time"

	"github.com/eonwallet/walletcore/internal/flagx"
)

// parseFlags overlays selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-m string   gateway mode: mock or http
//	-a string   API base URL
//	-t int      request timeout in seconds
//	-v string   vault file path
//	-s string   slides source: api or static
//
// The args are filtered to only the flags handled here, so other components
// can parse their own flags without interference.
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-m", "-a", "-t", "-v", "-s"})

	fs := flag.NewFlagSet("wallet", flag.ContinueOnError)

	fs.StringVar(&cfg.GatewayMode, "m", cfg.GatewayMode, "gateway mode (mock or http)")
	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "API base URL")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	fs.StringVar(&cfg.VaultPath, "v", cfg.VaultPath, "credential vault file path")
	fs.StringVar(&cfg.SlidesSource, "s", cfg.SlidesSource, "slides source (api or static)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg.RequestTimeout = time.Duration(*timeout) * time.Second
	return nil
}
