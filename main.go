package main

import (
	"context"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var Version = "dev"

func main() {
	a := newApp()
	err := newRootCommand(a).Execute()
	a.close()
	if err != nil {
		os.Exit(1)
	}
}

func contextWithTimeout(cmd *cobra.Command, d time.Duration) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithTimeout(ctx, d)
}
