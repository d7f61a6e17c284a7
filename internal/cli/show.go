package cli

import (
	"github.com/spf13/cobra"

	"github.com/skosovsky/promptvault"
)

func newShowCmd(a *app) *cobra.Command {
	var (
		version string
		output  string
	)
	cmd := &cobra.Command{
		Use:   "show NAME",
		Short: "Print a stored template record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := promptvault.ParseFormat(output)
			if err != nil {
				return err
			}
			tpl, err := promptvault.Get(cmd.Context(), a.vault, args[0], version)
			if err != nil {
				return err
			}
			data, err := promptvault.Serialize(tpl, f)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	cmd.Flags().StringVar(&version, "version", "", "version to show (default latest)")
	cmd.Flags().StringVarP(&output, "output", "o", "yaml", "output format: yaml or json")
	return cmd
}
