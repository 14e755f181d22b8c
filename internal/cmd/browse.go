package cmd

import (
	"github.com/spf13/cobra"

	"github.com/twinsight/aasview/internal/tui"
)

func newBrowseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "browse [asset-id]",
		Short: "Browse and edit assets interactively (TUI)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := repositoryClient(cmd)
			if err != nil {
				return err
			}
			assetID := ""
			if len(args) == 1 {
				assetID = args[0]
			}
			return tui.Browse(client, assetID)
		},
	}
}
