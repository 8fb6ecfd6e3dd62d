package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/theblitlabs/brandedtoken-go/cmd/cli"
	"github.com/theblitlabs/brandedtoken-go/internal/utils/cliutil"
	"github.com/theblitlabs/brandedtoken-go/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Replaced once the root command has read --log and the config file.
	logger.Init(logger.LogModePretty)

	if err := cliutil.ExecuteCommand(ctx, cli.NewRootCommand()); err != nil {
		stop()
		os.Exit(1)
	}
}
