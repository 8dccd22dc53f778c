// teamup forms balanced teams from a participant roster.
//
// Usage:
//
//	teamup participants list [--file=<csv>]
//	teamup participants generate [--count=<n>] [--size=<n>]
//	teamup participants add --name=<name> --email=<email> --game=<game> --role=<role> --skill=<1-10> --score=<0-100>
//	teamup form [--algorithm=balanced|skill|role] [--size=<n>] [--export[=<name>]] [--require-equal]
//	teamup compare [--size=<n>]
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
