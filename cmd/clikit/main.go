package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"clikit/internal/core"
	"clikit/internal/transports/cli"
	"clikit/pkg/logger"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

func main() {
	lg := logger.New()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := cli.New(buildVersion())
	if err := root.ExecuteContext(ctx); err != nil {
		lg.Error("command failed", "code", core.CodeOf(err), "err", err)
		stop()
		os.Exit(1)
	}
}

func buildVersion() string {
	v := version
	if commit != "" {
		v += " (" + commit + ")"
	}
	if date != "" {
		v += " " + date
	}
	return v
}
