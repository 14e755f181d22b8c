package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/twinsight/aasview/internal/api"
	"github.com/twinsight/aasview/internal/app"
)

func newAssetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "asset",
		Short: "Manage assets in the repository",
	}

	cmd.AddCommand(
		newAssetListCmd(),
		newAssetShowCmd(),
		newAssetCreateCmd(),
		newAssetDeleteCmd(),
		newAssetSetMetaCmd(),
	)

	return cmd
}

func newAssetListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List all assets",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := repositoryClient(cmd)
			if err != nil {
				return err
			}
			assets, err := client.ListAssets(cmd.Context())
			if err != nil {
				return app.ExitResult{Code: 1, Message: err.Error(), ToStderr: true}
			}
			format, outputPath := getOutputFlags(cmd)
			return app.OutputResultText(assets, format, outputPath, func() string {
				return renderAssetList(assets)
			})
		},
	}
}

func renderAssetList(assets []api.AssetShell) string {
	if len(assets) == 0 {
		return "No assets in the repository."
	}
	var sb strings.Builder
	sb.WriteString(app.Styles.Header.Render("Assets") + "\n")
	for _, a := range assets {
		label := a.IDShort
		if label == "" {
			label = a.ID
		}
		sb.WriteString(fmt.Sprintf("%s %s %s\n",
			app.Styles.Bullet.Render("•"),
			app.Styles.Key.Render(label),
			app.Styles.Dim.Render(fmt.Sprintf("(%s, %d submodels)", a.ID, len(a.Submodels)))))
	}
	return strings.TrimRight(sb.String(), "\n")
}

func newAssetShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <asset-id>",
		Short: "Show one asset with its submodels",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := repositoryClient(cmd)
			if err != nil {
				return err
			}
			asset, err := client.GetAsset(cmd.Context(), args[0])
			if err != nil {
				return app.ExitResult{Code: 1, Message: err.Error(), ToStderr: true}
			}
			format, outputPath := getOutputFlags(cmd)
			return app.OutputResultText(asset, format, outputPath, func() string {
				return renderAsset(asset)
			})
		},
	}
}

func renderAsset(asset *api.AssetShell) string {
	var sb strings.Builder
	label := asset.IDShort
	if label == "" {
		label = asset.ID
	}
	sb.WriteString(app.Styles.Header.Render(label) + "\n")
	sb.WriteString(app.Styles.Dim.Render("id: ") + asset.ID + "\n")
	if asset.AssetInformation.GlobalAssetID != "" {
		sb.WriteString(app.Styles.Dim.Render("globalAssetId: ") + asset.AssetInformation.GlobalAssetID + "\n")
	}
	sb.WriteString("\n" + app.Styles.Header.Render("Submodels") + "\n")
	submodels := asset.DecodedSubmodels()
	if len(submodels) == 0 {
		sb.WriteString(app.Styles.Dim.Render("(none)") + "\n")
	}
	for _, sm := range submodels {
		line := fmt.Sprintf("%s %s", app.Styles.Bullet.Render("•"), app.Styles.Key.Render(sm.IDShort))
		if tid := sm.TemplateID(); tid != "" {
			line += " " + app.Styles.Badge.Render("["+tid+"]")
		}
		line += app.Styles.Dim.Render(fmt.Sprintf("  %d elements", len(sm.Elements)))
		sb.WriteString(line + "\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}

func newAssetCreateCmd() *cobra.Command {
	var (
		templates     []string
		idShort       string
		description   string
		globalAssetID string
		yes           bool
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an asset from submodel templates",
		Long: `Create a new asset populated from submodel templates.

Templates are referenced by id or by name token (e.g. "DigitalNameplate"
or "DigitalNameplate@3.0"); see "aasview template list".

Examples:
  aasview asset create -t DigitalNameplate -t TechnicalData --id-short ServoDrive
  aasview asset create                       # interactive if TTY`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := repositoryClient(cmd)
			if err != nil {
				return err
			}

			if isTTY() && !yes {
				if err := promptAssetMetadata(&idShort, &description, &globalAssetID); err != nil {
					return app.ExitResult{Code: 1, Message: err.Error(), ToStderr: true}
				}
			}

			templateIDs, err := resolveTemplateTokens(templates)
			if err != nil {
				return app.ExitResult{Code: 2, Message: err.Error(), ToStderr: true}
			}

			assetData := map[string]any{}
			if idShort != "" {
				assetData["idShort"] = idShort
			}
			if description != "" {
				assetData["description"] = description
			}
			if globalAssetID != "" {
				assetData["globalAssetId"] = globalAssetID
			}

			asset, err := client.CreateAssetFromTemplates(cmd.Context(), templateIDs, assetData)
			if err != nil {
				return app.ExitResult{Code: 1, Message: err.Error(), ToStderr: true}
			}
			format, outputPath := getOutputFlags(cmd)
			return app.OutputResultText(asset, format, outputPath, func() string {
				return app.Styles.Success.Render("Created ") + asset.ID + "\n" + renderAsset(asset)
			})
		},
	}

	cmd.Flags().StringArrayVarP(&templates, "template", "t", nil, "submodel template id or token (repeatable)")
	cmd.Flags().StringVar(&idShort, "id-short", "", "asset idShort")
	cmd.Flags().StringVar(&description, "description", "", "asset description")
	cmd.Flags().StringVar(&globalAssetID, "global-asset-id", "", "global asset id")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "accept entered values without prompting")

	return cmd
}

// promptAssetMetadata confirms or edits the asset metadata interactively.
func promptAssetMetadata(idShort, description, globalAssetID *string) error {
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("idShort").
				Description("Short machine-friendly name").
				Value(idShort),

			huh.NewInput().
				Title("Global asset id").
				Description("Identifier of the physical asset (optional)").
				Value(globalAssetID),

			huh.NewText().
				Title("Description").
				Description("What is this asset?").
				Value(description).
				Lines(3),
		),
	)
	return form.Run()
}

func newAssetDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "delete <asset-id>",
		Aliases: []string{"rm"},
		Short:   "Delete an asset",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := repositoryClient(cmd)
			if err != nil {
				return err
			}
			if err := client.DeleteAsset(cmd.Context(), args[0]); err != nil {
				return app.ExitResult{Code: 1, Message: err.Error(), ToStderr: true}
			}
			fmt.Fprintf(os.Stderr, "Asset %q deleted.\n", args[0])
			return nil
		},
	}
}

func newAssetSetMetaCmd() *cobra.Command {
	var (
		globalAssetID string
		description   string
		displayName   string
	)

	cmd := &cobra.Command{
		Use:   "set-meta <asset-id>",
		Short: "Update asset metadata",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := repositoryClient(cmd)
			if err != nil {
				return err
			}

			var meta api.AssetMetadata
			changed := false
			if cmd.Flags().Changed("global-asset-id") {
				meta.GlobalAssetID = &globalAssetID
				changed = true
			}
			if cmd.Flags().Changed("description") {
				meta.Description = &description
				changed = true
			}
			if cmd.Flags().Changed("display-name") {
				meta.DisplayName = &displayName
				changed = true
			}
			if !changed {
				return app.UsageExit("no fields specified; use --global-asset-id, --description, or --display-name")
			}

			asset, err := client.UpdateAssetMetadata(cmd.Context(), args[0], meta)
			if err != nil {
				return app.ExitResult{Code: 1, Message: err.Error(), ToStderr: true}
			}
			format, outputPath := getOutputFlags(cmd)
			return app.OutputResultText(asset, format, outputPath, func() string {
				return renderAsset(asset)
			})
		},
	}

	cmd.Flags().StringVar(&globalAssetID, "global-asset-id", "", "global asset id")
	cmd.Flags().StringVar(&description, "description", "", "asset description")
	cmd.Flags().StringVar(&displayName, "display-name", "", "asset display name")

	return cmd
}
