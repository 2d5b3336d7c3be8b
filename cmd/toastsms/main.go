package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/brendan.keane/toastsms/internal/cli"
	"github.com/brendan.keane/toastsms/internal/errors"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := cli.NewRootCommand()
	root.SilenceErrors = true

	if err := root.ExecuteContext(ctx); err != nil {
		errors.PresentError(err)
		stop()
		os.Exit(1)
	}
}
