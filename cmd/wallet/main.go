package main

import (
	"context"
	"log"
	"os"

	"go.uber.org/zap"

	"github.com/eonwallet/walletcore/internal/buildinfo"
	"github.com/eonwallet/walletcore/internal/cli"
	"github.com/eonwallet/walletcore/internal/config"
	"github.com/eonwallet/walletcore/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()

	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		log.Fatalf("%v", err)
	}

	zl, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer func() { _ = zl.Sync() }()

	app, err := cli.NewApp(ctx, cfg, logging.NewZapLogger(zl.Sugar()))
	if err != nil {
		log.Fatalf("%v", err)
	}

	app.Run(ctx)
}
