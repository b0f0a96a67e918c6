// Package main is the entry point for the hex dependency tool.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/Baltazore/hex/cmd/hex/commands"
	"github.com/Baltazore/hex/internal/app"
	"github.com/grindlemire/graft"

	_ "github.com/Baltazore/hex/internal/wiring"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	components, _, err := graft.ExecuteFor[*app.Components](ctx)
	if err != nil {
		// Logger is not available yet if initialization failed.
		_, _ = os.Stderr.WriteString("Error: " + err.Error() + "\n")
		return 1
	}

	cli := commands.New(components.App)
	if err := cli.Execute(ctx); err != nil {
		components.Logger.Error(err)
		return 1
	}
	return 0
}
