// Package cli implements the promptvault command tree.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/skosovsky/promptvault"
	"github.com/skosovsky/promptvault/config"
)

// app holds the state shared by one command tree: global flags and the opened vault.
type app struct {
	configFile string
	path       string
	vaultType  string
	format     string
	logLevel   string

	registry *promptvault.Registry
	settings *viper.Viper
	logger   zerolog.Logger
	vault    promptvault.Vault
	order    promptvault.VersionOrder
}

// NewRootCommand builds the promptvault command tree. Variants registered in reg
// are decoded with their own types; a nil reg uses promptvault.NewRegistry().
func NewRootCommand(reg *promptvault.Registry) *cobra.Command {
	a := &app{registry: reg, settings: config.New(), logger: zerolog.Nop()}

	rootCmd := &cobra.Command{
		Use:           "promptvault",
		Short:         "Versioned prompt template vault",
		Long:          "Store, list, render and version prompt templates kept as <name>/<version>.<ext> records.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.open(cmd)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.configFile, "config", "", "config file (yaml, json or toml)")
	flags.StringVar(&a.path, "path", "", "vault root directory (env VAULT_PATH, default \"templates\")")
	flags.StringVar(&a.vaultType, "type", "", "vault type: local or remote (env VAULT_TYPE)")
	flags.StringVar(&a.format, "vault-format", "", "record format for new files: yaml or json (env VAULT_FORMAT)")
	flags.StringVar(&a.logLevel, "log-level", "warn", "log level: debug, info, warn, error")

	rootCmd.AddCommand(
		newListCmd(a),
		newShowCmd(a),
		newRenderCmd(a),
		newBumpCmd(a),
		newSaveCmd(a),
	)
	return rootCmd
}

// open configures logging and opens the vault selected by flags, env and config file.
func (a *app) open(cmd *cobra.Command) error {
	level, err := zerolog.ParseLevel(a.logLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level: %w", err)
	}
	a.logger = zerolog.New(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr(), TimeFormat: time.Kitchen}).
		Level(level).With().Timestamp().Logger()

	for key, val := range map[string]string{"path": a.path, "type": a.vaultType, "format": a.format} {
		if val != "" {
			a.settings.Set(key, val)
		}
	}
	cfg, err := config.Load(a.settings, a.configFile)
	if err != nil {
		return err
	}
	if a.registry == nil {
		a.registry = promptvault.NewRegistry(promptvault.WithLogger(a.logger))
	}
	a.vault, err = config.Open(cfg, a.registry, a.logger)
	if err != nil {
		return err
	}
	a.order, _ = promptvault.ParseVersionOrder(cfg.Order)
	return nil
}

// Execute runs the command tree with os.Args and returns the process exit code.
func Execute(ctx context.Context) int {
	cmd := NewRootCommand(nil)
	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}
	return 0
}

func writeLine(w io.Writer, format string, args ...any) error {
	_, err := fmt.Fprintf(w, format+"\n", args...)
	return err
}
