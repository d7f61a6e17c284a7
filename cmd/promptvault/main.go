// Command promptvault manages a local vault of versioned prompt templates.
//
// Usage:
//
//	promptvault list [--format '{name}: {versions}']
//	promptvault show NAME [--version V] [-o json|yaml]
//	promptvault render NAME [--version V] --var key=value...
//	promptvault bump NAME [--version V] --kind major|minor|patch
//	promptvault save FILE [--folder NAME]
//
// The vault is selected with --path/--type or VAULT_PATH/VAULT_TYPE.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/skosovsky/promptvault/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := cli.Execute(ctx)
	stop()
	os.Exit(code)
}
