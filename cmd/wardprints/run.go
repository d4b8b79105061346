package main

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/fx"
)

func run(ctx context.Context, app *fx.App) {
	if err := app.Start(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "wardprints: start failed: %v\n", err)
		os.Exit(1)
	}

	// Wait for a shutdown signal or an internal Shutdowner call.
	select {
	case <-ctx.Done():
	case <-app.Done():
	}

	if err := app.Stop(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "wardprints: stop failed: %v\n", err)
		os.Exit(1)
	}
}
