package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/twinsight/aasview/internal/app"
	"github.com/twinsight/aasview/internal/dpp"
)

func newDPPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dpp",
		Short: "Work with Digital Product Passports",
		Long: `Work with Digital Product Passports derived from an asset's submodels.

By default the repository computes the passport. With --local the
asset's submodels are fetched and the sections are computed here, which
works against repositories without a passport endpoint.`,
	}

	cmd.AddCommand(
		newDPPSectionsCmd(),
		newDPPSectionCmd(),
		newDPPGenerateCmd(),
		newDPPQueryCmd(),
	)

	return cmd
}

// localSource fetches the asset and builds a local section source.
func localSource(cmd *cobra.Command, aasID string) (*dpp.Source, error) {
	client, err := repositoryClient(cmd)
	if err != nil {
		return nil, err
	}
	asset, err := client.GetAsset(cmd.Context(), aasID)
	if err != nil {
		return nil, app.ExitResult{Code: 1, Message: err.Error(), ToStderr: true}
	}
	return dpp.NewSource(asset.ID, asset.DecodedSubmodels()), nil
}

func newDPPSectionsCmd() *cobra.Command {
	var (
		statusFilter string
		local        bool
	)

	cmd := &cobra.Command{
		Use:   "sections <asset-id>",
		Short: "List passport sections and their status",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var sections []dpp.SectionInfo
			if local {
				src, err := localSource(cmd, args[0])
				if err != nil {
					return err
				}
				for _, info := range dpp.ListSections(src) {
					if statusFilter == "" || info.Status == statusFilter {
						sections = append(sections, info)
					}
				}
			} else {
				client, err := repositoryClient(cmd)
				if err != nil {
					return err
				}
				sections, err = client.ListDPPSections(cmd.Context(), args[0], statusFilter)
				if err != nil {
					return app.ExitResult{Code: 1, Message: err.Error(), ToStderr: true}
				}
			}

			format, outputPath := getOutputFlags(cmd)
			return app.OutputResultText(sections, format, outputPath, func() string {
				return renderSectionList(sections)
			})
		},
	}

	cmd.Flags().StringVar(&statusFilter, "status-filter", "", "only sections with this status: available|incomplete|unavailable")
	cmd.Flags().BoolVar(&local, "local", false, "compute sections locally from the asset's submodels")

	return cmd
}

func renderSectionList(sections []dpp.SectionInfo) string {
	var sb strings.Builder
	sb.WriteString(app.Styles.Header.Render("Passport sections") + "\n")
	for _, s := range sections {
		status := app.Styles.Dim.Render(s.Status)
		switch s.Status {
		case dpp.StatusAvailable:
			status = app.Styles.Success.Render(s.Status)
		case dpp.StatusIncomplete:
			status = app.Styles.Warning.Render(s.Status)
		case dpp.StatusUnavailable:
			status = app.Styles.Error.Render(s.Status)
		}
		line := fmt.Sprintf("%s %s %s",
			app.Styles.Bullet.Render("•"), app.Styles.Key.Render(s.Title), status)
		if s.Core {
			line += " " + app.Styles.Badge.Render("[core]")
		}
		if len(s.MissingSubmodels) > 0 {
			line += app.Styles.Dim.Render("  missing: " + strings.Join(s.MissingSubmodels, ", "))
		}
		sb.WriteString(line + "\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}

func newDPPSectionCmd() *cobra.Command {
	var (
		includeRaw bool
		local      bool
	)

	cmd := &cobra.Command{
		Use:   "section <asset-id> <section-id>",
		Short: "Show one processed passport section",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var section *dpp.Section
			if local {
				src, err := localSource(cmd, args[0])
				if err != nil {
					return err
				}
				section = dpp.ProcessSection(src, args[1], includeRaw)
				if section == nil {
					return app.ExitResult{Code: 1, Message: fmt.Sprintf("section %q not found or unavailable", args[1]), ToStderr: true}
				}
			} else {
				client, err := repositoryClient(cmd)
				if err != nil {
					return err
				}
				section, err = client.GetDPPSection(cmd.Context(), args[0], args[1], includeRaw)
				if err != nil {
					return app.ExitResult{Code: 1, Message: err.Error(), ToStderr: true}
				}
			}

			format, outputPath := getOutputFlags(cmd)
			return app.OutputResult(section, format, outputPath)
		},
	}

	cmd.Flags().BoolVar(&includeRaw, "include-raw", false, "include the processed source submodels")
	cmd.Flags().BoolVar(&local, "local", false, "compute the section locally from the asset's submodels")

	return cmd
}

func newDPPGenerateCmd() *cobra.Command {
	var (
		includeRaw bool
		local      bool
	)

	cmd := &cobra.Command{
		Use:   "generate <asset-id>",
		Short: "Assemble the complete passport document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			passport, err := generatePassport(cmd, args[0], includeRaw, local)
			if err != nil {
				return err
			}
			format, outputPath := getOutputFlags(cmd)
			return app.OutputResult(passport, format, outputPath)
		},
	}

	cmd.Flags().BoolVar(&includeRaw, "include-raw", false, "include the processed source submodels")
	cmd.Flags().BoolVar(&local, "local", false, "assemble the passport locally from the asset's submodels")

	return cmd
}

func generatePassport(cmd *cobra.Command, aasID string, includeRaw, local bool) (*dpp.CompleteDPP, error) {
	if local {
		src, err := localSource(cmd, aasID)
		if err != nil {
			return nil, err
		}
		format := "clean"
		if includeRaw {
			format = "raw"
		}
		return dpp.Generate(src, format), nil
	}

	client, err := repositoryClient(cmd)
	if err != nil {
		return nil, err
	}
	passport, err := client.GenerateCompleteDPP(cmd.Context(), aasID, includeRaw)
	if err != nil {
		return nil, app.ExitResult{Code: 1, Message: err.Error(), ToStderr: true}
	}
	return passport, nil
}

func newDPPQueryCmd() *cobra.Command {
	var local bool

	cmd := &cobra.Command{
		Use:   "query <asset-id> <expression>",
		Short: "Evaluate a JSONata expression against the passport",
		Long: `Evaluate a JSONata expression against the assembled passport document.

Examples:
  aasview dpp query my-asset 'sections.identification.data.product.name'
  aasview dpp query my-asset 'sections.sustainability.data.carbonFootprint.value'`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			passport, err := generatePassport(cmd, args[0], false, local)
			if err != nil {
				return err
			}
			result, err := dpp.Query(passport, args[1])
			if err != nil {
				return app.ExitResult{Code: 1, Message: err.Error(), ToStderr: true}
			}

			format, outputPath := getOutputFlags(cmd)
			return app.OutputResult(result, format, outputPath)
		},
	}

	cmd.Flags().BoolVar(&local, "local", false, "assemble the passport locally from the asset's submodels")

	return cmd
}
