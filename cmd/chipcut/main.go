// chipcut computes guillotine cutting plans for chipboard sheets
//
// Reads a job (one chipboard, a list of parts) and prints a cutting plan:
// part positions per sheet, de-duplicated saw cuts, reusable offcuts and
// summary statistics.
//
// Build:
//   go build -o chipcut ./cmd/chipcut
//
// Usage:
//   chipcut place --job kitchen.json --out plan.json
//   chipcut recompute --result plan.json --sheet 2
//   chipcut estimate --job kitchen.json --waste 15

package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/piwi3910/chipcut/internal/cli"
)

func main() {
	// Ctrl+C stops placement between sheets; the partial plan is still printed.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := cli.Execute(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		stop()
		os.Exit(1)
	}
}
