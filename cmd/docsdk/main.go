// Command docsdk drives the DocSDK conversion API from the shell: jobs,
// tasks, uploads, downloads and webhooks.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

// exitInterrupted follows the shell convention of 128 + SIGINT.
const exitInterrupted = 130

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := newRootCmd().ExecuteContext(ctx)
	if err == nil {
		return
	}

	fmt.Fprintf(os.Stderr, "docsdk: %v\n", err)
	if errors.Is(err, context.Canceled) || ctx.Err() != nil {
		os.Exit(exitInterrupted)
	}
	os.Exit(1)
}
