package cmd

import (
	"github.com/spf13/cobra"

	"github.com/twinsight/aasview/internal/app"
)

// NewRoot builds the top-level `aasview` command.
//
// We keep errors/usage silent and let our main() decide how to print
// ExitResult vs generic errors.
func NewRoot() *cobra.Command {
	var logLevel string

	root := &cobra.Command{
		Use:           "aasview",
		Short:         "aasview: browse and edit Asset Administration Shell digital twins",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.InitLogging(logLevel)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	root.PersistentFlags().StringP("output", "o", "", "write output to file (default: stdout)")
	root.PersistentFlags().StringP("format", "F", "", "output format: json|yaml|text")
	root.PersistentFlags().String("context", "", "named repository context to use")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug|info|warn|error (default: off)")

	root.AddGroup(
		&cobra.Group{ID: "explore", Title: "browse and edit"},
		&cobra.Group{ID: "assets", Title: "asset management"},
		&cobra.Group{ID: "passport", Title: "digital product passports"},
		&cobra.Group{ID: "config", Title: "configuration"},
	)

	browseCmd := newBrowseCmd()
	browseCmd.GroupID = "explore"

	assetCmd := newAssetCmd()
	assetCmd.GroupID = "assets"

	submodelCmd := newSubmodelCmd()
	submodelCmd.GroupID = "assets"

	templateCmd := newTemplateCmd()
	templateCmd.GroupID = "assets"

	dppCmd := newDPPCmd()
	dppCmd.GroupID = "passport"

	contextCmd := newContextCmd()
	contextCmd.GroupID = "config"

	root.AddCommand(
		browseCmd,
		assetCmd,
		submodelCmd,
		templateCmd,
		dppCmd,
		contextCmd,
	)

	return root
}
