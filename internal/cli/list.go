package cli

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/valyala/fasttemplate"

	"github.com/skosovsky/promptvault"
)

const defaultListFormat = "{name}\t{versions}"

func newListCmd(a *app) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored templates and their versions",
		Long: "List every stored template name. --format takes the placeholders " +
			"{name}, {versions}, {latest} and {count}; unknown placeholders are kept as written.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			entries, err := promptvault.List(cmd.Context(), a.vault)
			if err != nil {
				return err
			}
			slices.SortFunc(entries, func(x, y promptvault.Entry) int { return strings.Compare(x.Name, y.Name) })
			tpl, err := fasttemplate.NewTemplate(format, "{", "}")
			if err != nil {
				return fmt.Errorf("invalid --format: %w", err)
			}
			for _, e := range entries {
				latest, _ := a.order.Latest(e.Versions)
				line := tpl.ExecuteStringStd(map[string]any{
					"name":     e.Name,
					"versions": strings.Join(e.Versions, ","),
					"latest":   latest,
					"count":    strconv.Itoa(len(e.Versions)),
				})
				if err := writeLine(cmd.OutOrStdout(), "%s", line); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", defaultListFormat, "line template")
	return cmd
}
