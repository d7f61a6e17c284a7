package cli

import (
	"github.com/spf13/cobra"

	"github.com/skosovsky/promptvault"
)

func newSaveCmd(a *app) *cobra.Command {
	var folder string
	cmd := &cobra.Command{
		Use:   "save FILE",
		Short: "Import a record file (.yaml, .yml or .json) into the vault",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := promptvault.FormatFromPath(args[0])
			if err != nil {
				return err
			}
			tpl, err := a.registry.LoadFromPath(args[0], f)
			if err != nil {
				return err
			}
			var opts []promptvault.SaveOption
			if folder != "" {
				opts = append(opts, promptvault.WithFolder(folder))
			}
			if err := promptvault.Save(cmd.Context(), a.vault, tpl, opts...); err != nil {
				return err
			}
			name, _ := promptvault.TargetName(tpl, opts...)
			return writeLine(cmd.OutOrStdout(), "saved %s@%s", name, tpl.Base().Version)
		},
	}
	cmd.Flags().StringVar(&folder, "folder", "", "store under this name instead of the record's class_name")
	return cmd
}
