package cli

import (
	"github.com/spf13/cobra"

	"github.com/skosovsky/promptvault"
)

func newBumpCmd(a *app) *cobra.Command {
	var (
		version string
		kind    string
	)
	cmd := &cobra.Command{
		Use:   "bump NAME",
		Short: "Store a copy of a template under the next version",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := promptvault.ParseBump(kind)
			if err != nil {
				return err
			}
			name := args[0]
			tpl, err := promptvault.Get(cmd.Context(), a.vault, name, version)
			if err != nil {
				return err
			}
			from := tpl.Base().Version
			if err := tpl.Base().BumpVersion(b); err != nil {
				return err
			}
			if err := promptvault.Save(cmd.Context(), a.vault, tpl, promptvault.WithFolder(name)); err != nil {
				return err
			}
			a.logger.Info().Str("name", name).Str("from", from).Str("to", tpl.Base().Version).Msg("template bumped")
			return writeLine(cmd.OutOrStdout(), "%s: %s -> %s", name, from, tpl.Base().Version)
		},
	}
	cmd.Flags().StringVar(&version, "version", "", "version to bump from (default latest)")
	cmd.Flags().StringVar(&kind, "kind", promptvault.DefaultBump.String(), "component to bump: major, minor or patch")
	return cmd
}
