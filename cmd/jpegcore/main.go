package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/lggomez/jpegcore/cmd/jpegcore/cmd"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := cmd.NewRoot(ctx).Execute(); err != nil {
		os.Exit(1)
	}
}
