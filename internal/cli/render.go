package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/skosovsky/promptvault"
)

func newRenderCmd(a *app) *cobra.Command {
	var (
		version string
		vars    []string
	)
	cmd := &cobra.Command{
		Use:     "render NAME",
		Short:   "Render a stored template with variable bindings",
		Example: "  promptvault render Greeting --var name=Ada --var place=London",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bindings, err := parseBindings(vars)
			if err != nil {
				return err
			}
			tpl, err := promptvault.Get(cmd.Context(), a.vault, args[0], version)
			if err != nil {
				return err
			}
			out, err := tpl.Base().Render(bindings)
			if err != nil {
				return err
			}
			return writeLine(cmd.OutOrStdout(), "%s", out)
		},
	}
	cmd.Flags().StringVar(&version, "version", "", "version to render (default latest)")
	cmd.Flags().StringArrayVar(&vars, "var", nil, "binding as name=value (repeatable)")
	return cmd
}

// parseBindings turns name=value pairs into a binding map; later pairs win.
func parseBindings(pairs []string) (map[string]string, error) {
	bindings := make(map[string]string, len(pairs))
	for _, p := range pairs {
		name, value, ok := strings.Cut(p, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid --var %q: want name=value", p)
		}
		bindings[name] = value
	}
	return bindings, nil
}
