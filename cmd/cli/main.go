package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/docmind/internal/buildinfo"
	"github.com/dmitrijs2005/docmind/internal/client/cli"
	"github.com/dmitrijs2005/docmind/internal/client/config"
	"github.com/dmitrijs2005/docmind/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("%v", err)
	}

	logger, err := logging.New(cfg.Log.Format, cfg.Log.Level, os.Stderr)
	if err != nil {
		log.Fatalf("%v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, closeFn, err := cli.Build(ctx, cfg, cli.Env{In: os.Stdin, Out: os.Stdout, Logger: logger})
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer func() {
		if err := closeFn(); err != nil {
			logger.Warn(ctx, "close state store", "error", err)
		}
	}()

	app.Run(ctx)

}
