package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/dmitrijs2005/daykeeper/internal/buildinfo"
	"github.com/dmitrijs2005/daykeeper/internal/cli"
	"github.com/dmitrijs2005/daykeeper/internal/config"
	"github.com/dmitrijs2005/daykeeper/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()
	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	app, err := cli.NewApp(cfg, log)
	if err != nil {
		log.Error(ctx, "startup failed", "error", err)
		os.Exit(1)
	}

	app.Run(ctx)
}
