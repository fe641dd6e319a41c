package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mattn/go-isatty"

	"github.com/yubzen/relay/internal/cli"
)

// version is set at build time via ldflags.
var version = "dev"

func restoreTerminalState() {
	if isatty.IsTerminal(os.Stderr.Fd()) {
		fmt.Fprint(os.Stderr, "\x1b[?25h\x1b[0m")
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := cli.NewRootCmd(version).ExecuteContext(ctx)
	stop()
	restoreTerminalState()
	if err != nil {
		os.Exit(1)
	}
}
