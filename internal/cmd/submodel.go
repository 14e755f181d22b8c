package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/twinsight/aasview/internal/aas"
	"github.com/twinsight/aasview/internal/app"
	"github.com/twinsight/aasview/internal/editor"
)

func newSubmodelCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "submodel",
		Short: "Inspect and edit submodels",
	}

	cmd.AddCommand(
		newSubmodelShowCmd(),
		newSubmodelSetCmd(),
		newSubmodelValidateCmd(),
		newSubmodelAttachCmd(),
		newSubmodelRemoveCmd(),
	)

	return cmd
}

func newSubmodelShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <submodel-id>",
		Short: "Show a submodel's elements",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := repositoryClient(cmd)
			if err != nil {
				return err
			}
			sm, err := client.GetSubmodel(cmd.Context(), args[0])
			if err != nil {
				return app.ExitResult{Code: 1, Message: err.Error(), ToStderr: true}
			}

			var doc map[string]any
			if err := json.Unmarshal(sm.Raw(), &doc); err != nil {
				return app.ExitResult{Code: 1, Message: err.Error(), ToStderr: true}
			}
			format, outputPath := getOutputFlags(cmd)
			return app.OutputResultText(doc, format, outputPath, func() string {
				return renderSubmodel(sm)
			})
		},
	}
}

func renderSubmodel(sm *aas.Submodel) string {
	var sb strings.Builder
	sb.WriteString(app.Styles.Header.Render(sm.IDShort) + "\n")
	sb.WriteString(app.Styles.Dim.Render("id: ") + sm.ID + "\n")
	if tid := sm.TemplateID(); tid != "" {
		sb.WriteString(app.Styles.Dim.Render("template: ") + tid + "\n")
	}
	aas.Walk(sm, func(path string, el aas.Element) {
		depth := strings.Count(path, aas.PathSeparator)
		line := strings.Repeat("  ", depth) +
			app.Styles.Bullet.Render("•") + " " +
			app.Styles.Key.Render(el.IDShort()) + " " +
			app.Styles.Badge.Render("["+string(el.ModelType())+"]")
		switch typed := el.(type) {
		case *aas.Property:
			if typed.Value != nil {
				line += fmt.Sprintf("  %v", typed.Value)
			}
		case *aas.MultiLanguageProperty:
			for _, e := range typed.Value {
				if e.Language == "en" {
					line += "  " + e.Text
					break
				}
			}
		case *aas.File:
			line += "  " + typed.Value
		}
		sb.WriteString(line + "\n")
	})
	return strings.TrimRight(sb.String(), "\n")
}

func newSubmodelSetCmd() *cobra.Command {
	var sets []string

	cmd := &cobra.Command{
		Use:   "set <asset-id> <submodel-id>",
		Short: "Set element values by path",
		Long: `Set element values on a submodel, validated against each element's
declared value type before anything is sent.

Paths are /-joined idShorts. Values are given as path=value; an empty
value unsets the element.

Examples:
  aasview submodel set my-asset urn:sm:tech --set MaxRotationSpeed=3000
  aasview submodel set my-asset urn:sm:bom --set EntryNode/Node/BulkCount=4`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(sets) == 0 {
				return app.UsageExit("no values specified; use --set path=value")
			}
			client, err := repositoryClient(cmd)
			if err != nil {
				return err
			}
			aasID, submodelID := args[0], args[1]

			sm, err := client.GetSubmodel(cmd.Context(), submodelID)
			if err != nil {
				return app.ExitResult{Code: 1, Message: err.Error(), ToStderr: true}
			}

			session := editor.NewSession(aasID, sm)
			session.Begin()
			for _, s := range sets {
				path, value, ok := parseKV(s, "=")
				if !ok {
					return app.UsageExit(fmt.Sprintf("invalid --set %q; expected path=value", s))
				}
				if _, found := aas.Resolve(sm, path); !found {
					return app.ExitResult{Code: 1, Message: fmt.Sprintf("no element at %q", path), ToStderr: true}
				}
				if err := session.Set(path, value); err != nil {
					return app.ExitResult{Code: 1, Message: fmt.Sprintf("%s: %v", path, err), ToStderr: true}
				}
			}

			if err := session.Save(cmd.Context(), client); err != nil {
				var verr *editor.ValidationError
				if errors.As(err, &verr) {
					var sb strings.Builder
					for _, f := range verr.Fields {
						sb.WriteString(fmt.Sprintf("%s: %s\n", f.Path, f.Message))
					}
					return app.ExitResult{Code: 1, Message: strings.TrimRight(sb.String(), "\n"), ToStderr: true}
				}
				return app.ExitResult{Code: 1, Message: err.Error(), ToStderr: true}
			}

			fmt.Fprintf(os.Stderr, "Updated %d elements.\n", len(sets))
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&sets, "set", nil, "element value as path=value (repeatable)")

	return cmd
}

// validationReport is the JSON/YAML shape of a validate result.
type validationReport struct {
	Valid bool   `json:"valid"`
	Error string `json:"error,omitempty"`
}

func newSubmodelValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file>",
		Short: "Validate a submodel document against the metamodel schema",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return app.ExitResult{Code: 1, Message: err.Error(), ToStderr: true}
			}

			report := validationReport{Valid: true}
			code := 0
			if err := aas.ValidateDocument(data); err != nil {
				report.Valid = false
				report.Error = err.Error()
				code = 1
			}

			format, outputPath := getOutputFlags(cmd)
			if format == "" || format == "text" {
				if report.Valid {
					return app.OkText("Valid.")
				}
				return app.ExitResult{Code: 1, Message: report.Error, ToStderr: true}
			}
			return app.OutputResultWithCode(report, format, outputPath, code)
		},
	}
}

func newSubmodelAttachCmd() *cobra.Command {
	var templates []string

	cmd := &cobra.Command{
		Use:   "attach <asset-id>",
		Short: "Attach template-based submodels to an asset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(templates) == 0 {
				return app.UsageExit("no templates specified; use -t <token>")
			}
			client, err := repositoryClient(cmd)
			if err != nil {
				return err
			}
			templateIDs, err := resolveTemplateTokens(templates)
			if err != nil {
				return app.ExitResult{Code: 2, Message: err.Error(), ToStderr: true}
			}

			asset, err := client.AttachSubmodels(cmd.Context(), args[0], templateIDs)
			if err != nil {
				return app.ExitResult{Code: 1, Message: err.Error(), ToStderr: true}
			}
			format, outputPath := getOutputFlags(cmd)
			return app.OutputResultText(asset, format, outputPath, func() string {
				return renderAsset(asset)
			})
		},
	}

	cmd.Flags().StringArrayVarP(&templates, "template", "t", nil, "submodel template id or token (repeatable)")

	return cmd
}

func newSubmodelRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "remove <asset-id> <submodel-id>",
		Aliases: []string{"rm"},
		Short:   "Remove a submodel from an asset",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := repositoryClient(cmd)
			if err != nil {
				return err
			}
			if err := client.RemoveSubmodel(cmd.Context(), args[0], args[1]); err != nil {
				return app.ExitResult{Code: 1, Message: err.Error(), ToStderr: true}
			}
			fmt.Fprintf(os.Stderr, "Submodel %q removed from %q.\n", args[1], args[0])
			return nil
		},
	}
}
