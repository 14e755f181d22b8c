package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/twinsight/aasview/internal/aas"
	"github.com/twinsight/aasview/internal/app"
)

func newTemplateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "template",
		Short: "Inspect the embedded submodel templates",
	}

	cmd.AddCommand(
		newTemplateListCmd(),
		newTemplateShowCmd(),
	)

	return cmd
}

// templateListing is the JSON/YAML shape of one template list row.
type templateListing struct {
	ID          string `json:"id"`
	IDShort     string `json:"idShort"`
	Category    string `json:"category"`
	Version     string `json:"version,omitempty"`
	Description string `json:"description,omitempty"`
}

func newTemplateListCmd() *cobra.Command {
	var remote bool

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List available submodel templates",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var listings []templateListing

			if remote {
				client, err := repositoryClient(cmd)
				if err != nil {
					return err
				}
				infos, err := client.ListTemplates(cmd.Context())
				if err != nil {
					return app.ExitResult{Code: 1, Message: err.Error(), ToStderr: true}
				}
				for _, t := range infos {
					listings = append(listings, templateListing{
						ID:          t.ID,
						IDShort:     t.IDShort,
						Category:    "repository",
						Version:     t.Version,
						Description: t.Description,
					})
				}
			} else {
				reg, err := aas.LoadTemplates()
				if err != nil {
					return app.ExitResult{Code: 1, Message: err.Error(), ToStderr: true}
				}
				for _, t := range reg.List() {
					listings = append(listings, templateListing{
						ID:          t.ID,
						IDShort:     t.IDShort,
						Category:    t.Category,
						Version:     t.Version,
						Description: t.Description,
					})
				}
			}

			format, outputPath := getOutputFlags(cmd)
			return app.OutputResultText(listings, format, outputPath, func() string {
				return renderTemplateList(listings)
			})
		},
	}

	cmd.Flags().BoolVar(&remote, "remote", false, "list the repository's template catalog instead of the embedded one")

	return cmd
}

func renderTemplateList(listings []templateListing) string {
	var sb strings.Builder
	sb.WriteString(app.Styles.Header.Render("Submodel templates") + "\n")
	category := ""
	for _, t := range listings {
		if t.Category != category {
			category = t.Category
			sb.WriteString(app.Styles.Dim.Render(category) + "\n")
		}
		line := fmt.Sprintf("  %s %s", app.Styles.Bullet.Render("•"), app.Styles.Key.Render(t.IDShort))
		if t.Version != "" {
			line += app.Styles.Badge.Render("@" + t.Version)
		}
		if t.Description != "" {
			line += app.Styles.Dim.Render("  " + t.Description)
		}
		sb.WriteString(line + "\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}

func newTemplateShowCmd() *cobra.Command {
	var instantiate bool

	cmd := &cobra.Command{
		Use:   "show <token>",
		Short: "Show one template document",
		Long: `Show a template's document by token.

A token is an idShort, optionally with a version or semver constraint:
  DigitalNameplate
  DigitalNameplate@3.0
  TechnicalData@>=1.2

With --instantiate the output is a fresh instance document (new id,
kind=Instance, template id stamped) instead of the template itself.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := aas.LoadTemplates()
			if err != nil {
				return app.ExitResult{Code: 1, Message: err.Error(), ToStderr: true}
			}
			tmpl, err := reg.ResolveToken(args[0])
			if err != nil {
				return app.ExitResult{Code: 1, Message: err.Error(), ToStderr: true}
			}

			var doc map[string]any
			if instantiate {
				doc, err = tmpl.Instantiate()
				if err != nil {
					return app.ExitResult{Code: 1, Message: err.Error(), ToStderr: true}
				}
			} else if err := json.Unmarshal(tmpl.Raw(), &doc); err != nil {
				return app.ExitResult{Code: 1, Message: err.Error(), ToStderr: true}
			}

			format, outputPath := getOutputFlags(cmd)
			return app.OutputResult(doc, format, outputPath)
		},
	}

	cmd.Flags().BoolVar(&instantiate, "instantiate", false, "output a fresh instance document")

	return cmd
}

// resolveTemplateTokens maps template tokens to template ids. A token
// that is already a known template id passes through unchanged.
func resolveTemplateTokens(tokens []string) ([]string, error) {
	if len(tokens) == 0 {
		return nil, nil
	}
	reg, err := aas.LoadTemplates()
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(tokens))
	for _, token := range tokens {
		if t, ok := reg.Get(token); ok {
			ids = append(ids, t.ID)
			continue
		}
		t, err := reg.ResolveToken(token)
		if err != nil {
			return nil, err
		}
		ids = append(ids, t.ID)
	}
	return ids, nil
}
