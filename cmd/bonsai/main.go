// SPDX-FileCopyrightText: © 2026 The bonsai authors <https://github.com/golangee/bonsai/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

// Command bonsai parses line oriented markup documents from files, URLs or stdin
// and prints them as markup, YAML or JSON.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// set at build time
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
