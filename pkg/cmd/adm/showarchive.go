package adm

import (
	"github.com/spf13/cobra"

	"github.com/kreyling/cragg/internal/publish"
	"github.com/kreyling/cragg/internal/render"
)

var showArchiveCmd = &cobra.Command{
	Use:     "show-archive FILE",
	Example: "cragg adm show-archive results/cragg-dashboard.json.xz",
	Short:   "Print a dashboard saved with report --save-to.",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := publish.LoadArchive(args[0])
		if err != nil {
			return err
		}
		render.Table(cmd.OutOrStdout(), d)
		render.Builds(cmd.OutOrStdout(), d)
		return nil
	},
}
