package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/twinsight/aasview/internal/app"
)

func newContextCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "context",
		Short: "Manage repository contexts (URL, credentials, headers)",
		Long: `Manage named repository contexts.

A context names an AAS repository: its base URL, credentials, extra
headers, preferred display language, and metadata. Commands use the
context named by --context, falling back to "default".

Credentials are stored securely in the OS keychain. Non-secret
fields (URL, headers, language, metadata) are stored in config files.`,
	}

	cmd.AddCommand(
		newContextListCmd(),
		newContextShowCmd(),
		newContextSetCmd(),
		newContextRemoveCmd(),
	)

	return cmd
}

func newContextListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List all named contexts",
		RunE: func(cmd *cobra.Command, args []string) error {
			summaries, err := app.ListContexts()
			if err != nil {
				return app.ExitResult{Code: 1, Message: err.Error(), ToStderr: true}
			}
			format, outputPath := getOutputFlags(cmd)
			return app.OutputResultText(summaries, format, outputPath, func() string {
				return renderContextList(summaries)
			})
		},
	}
}

func renderContextList(summaries []app.ContextSummary) string {
	if len(summaries) == 0 {
		return app.Styles.Dim.Render("No contexts configured. Create one with: aasview context set <name> --repository-url <url>")
	}
	var sb strings.Builder
	sb.WriteString(app.Styles.Header.Render("Contexts") + "\n")
	for _, s := range summaries {
		line := fmt.Sprintf("%s %s", app.Styles.Bullet.Render("•"), app.Styles.Key.Render(s.Name))
		if s.LoadError != "" {
			line += " " + app.Styles.Error.Render("(load error: "+s.LoadError+")")
			sb.WriteString(line + "\n")
			continue
		}
		if s.RepositoryURL != "" {
			line += " " + app.Styles.Dim.Render(s.RepositoryURL)
		}
		if s.HasCredentials {
			line += " " + app.Styles.Badge.Render("[auth]")
		}
		sb.WriteString(line + "\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}

// contextDetail is the show output shape. Secrets never appear here;
// only the credential type does.
type contextDetail struct {
	Name           string            `json:"name"`
	RepositoryURL  string            `json:"repositoryUrl,omitempty"`
	CredentialType string            `json:"credentialType,omitempty"`
	Headers        map[string]string `json:"headers,omitempty"`
	Language       string            `json:"language,omitempty"`
	Metadata       map[string]any    `json:"metadata,omitempty"`
}

func newContextShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <name>",
		Short: "Show context details (secrets masked)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			if !app.ContextExists(name) {
				return app.ExitResult{Code: 1, Message: fmt.Sprintf("context %q not found", name), ToStderr: true}
			}
			rctx, err := app.LoadContext(name)
			if err != nil {
				return app.ExitResult{Code: 1, Message: err.Error(), ToStderr: true}
			}

			detail := contextDetail{
				Name:          name,
				RepositoryURL: rctx.RepositoryURL,
				Headers:       rctx.Headers,
				Language:      rctx.Language,
				Metadata:      rctx.Metadata,
			}
			if rctx.Credentials != nil {
				detail.CredentialType = rctx.Credentials.Type
			}

			format, outputPath := getOutputFlags(cmd)
			return app.OutputResultText(detail, format, outputPath, func() string {
				return renderContextDetail(detail)
			})
		},
	}
}

func renderContextDetail(d contextDetail) string {
	var sb strings.Builder
	sb.WriteString(app.Styles.Header.Render("Context: "+d.Name) + "\n")
	if d.RepositoryURL != "" {
		sb.WriteString(app.Styles.Key.Render("repository") + "  " + d.RepositoryURL + "\n")
	}
	if d.CredentialType != "" {
		sb.WriteString(app.Styles.Key.Render("credentials") + " " + d.CredentialType + " " + app.Styles.Dim.Render("(stored in keychain)") + "\n")
	}
	if d.Language != "" {
		sb.WriteString(app.Styles.Key.Render("language") + "    " + d.Language + "\n")
	}
	for k, v := range d.Headers {
		sb.WriteString(app.Styles.Key.Render("header") + "      " + k + ": " + v + "\n")
	}
	for k, v := range d.Metadata {
		sb.WriteString(app.Styles.Key.Render("meta") + "        " + fmt.Sprintf("%s=%v", k, v) + "\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}

func newContextSetCmd() *cobra.Command {
	var (
		repositoryURL string
		bearerToken   string
		apiKey        string
		headerName    string
		basic         bool
		language      string
		headers       []string
		metaEntries   []string
	)

	cmd := &cobra.Command{
		Use:   "set <name>",
		Short: "Set context fields (URL, credentials, headers)",
		Long: `Set fields on a named context. Creates the context if it doesn't exist.

Credential flags (--bearer-token, --api-key, --basic) store values
securely in the OS keychain. If no value is provided after the flag,
you'll be prompted to enter it securely.

Non-secret flags (--repository-url, --header, --language, --meta) are
stored in a config file; --header and --meta can be repeated.

Examples:
  aasview context set default --repository-url https://aas.example.com
  aasview context set prod --bearer-token
  aasview context set prod --api-key --header-name X-Api-Token
  aasview context set prod --basic
  aasview context set prod --header "Accept-Language: de"
  aasview context set prod --language de
  aasview context set prod --meta "org=acme"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]

			cfg, err := app.LoadContextConfig(name)
			if err != nil {
				return app.ExitResult{Code: 1, Message: err.Error(), ToStderr: true}
			}

			cred, err := app.LoadContextCredentials(name)
			if err != nil {
				return app.ExitResult{Code: 1, Message: err.Error(), ToStderr: true}
			}

			credChanged := false

			// Token flags prompt when given without a value, so secrets
			// stay out of shell history.
			if cmd.Flags().Changed("bearer-token") {
				token, err := secretOrPrompt(bearerToken, "Bearer token: ")
				if err != nil {
					return app.ExitResult{Code: 1, Message: err.Error(), ToStderr: true}
				}
				cred = &app.Credentials{Type: app.CredentialBearer, Token: token}
				credChanged = true
			}

			if cmd.Flags().Changed("api-key") {
				key, err := secretOrPrompt(apiKey, "API key: ")
				if err != nil {
					return app.ExitResult{Code: 1, Message: err.Error(), ToStderr: true}
				}
				cred = &app.Credentials{Type: app.CredentialAPIKey, Token: key, HeaderName: headerName}
				credChanged = true
			}

			if basic {
				basicCred, err := promptBasicCredentials()
				if err != nil {
					return app.ExitResult{Code: 1, Message: err.Error(), ToStderr: true}
				}
				cred = basicCred
				credChanged = true
			}

			cfgChanged := false

			if cmd.Flags().Changed("repository-url") {
				cfg.RepositoryURL = repositoryURL
				cfgChanged = true
			}

			if cmd.Flags().Changed("language") {
				cfg.Language = language
				cfgChanged = true
			}

			for _, h := range headers {
				k, v, ok := parseKV(h, ":")
				if !ok {
					return app.ExitResult{Code: 1, Message: fmt.Sprintf("invalid header %q (expected \"Key: Value\")", h), ToStderr: true}
				}
				if cfg.Headers == nil {
					cfg.Headers = make(map[string]string)
				}
				cfg.Headers[k] = v
				cfgChanged = true
			}

			for _, m := range metaEntries {
				k, v, ok := parseKV(m, "=")
				if !ok {
					return app.ExitResult{Code: 1, Message: fmt.Sprintf("invalid meta %q (expected \"key=value\")", m), ToStderr: true}
				}
				if cfg.Metadata == nil {
					cfg.Metadata = make(map[string]any)
				}
				cfg.Metadata[k] = v
				cfgChanged = true
			}

			if !credChanged && !cfgChanged {
				return app.ExitResult{Code: 1, Message: "no fields specified; use --repository-url, --bearer-token, --api-key, --basic, --header, --language, or --meta", ToStderr: true}
			}

			if credChanged {
				if err := app.SaveContextCredentials(name, cred); err != nil {
					return app.ExitResult{Code: 1, Message: err.Error(), ToStderr: true}
				}
			}

			if cfgChanged {
				if err := app.SaveContextConfig(name, cfg); err != nil {
					return app.ExitResult{Code: 1, Message: err.Error(), ToStderr: true}
				}
			}

			fmt.Fprintf(os.Stderr, "Context %q updated.\n", name)
			return nil
		},
	}

	cmd.Flags().StringVar(&repositoryURL, "repository-url", "", "AAS repository base URL")
	cmd.Flags().StringVar(&bearerToken, "bearer-token", "", "bearer token (prompts if empty)")
	cmd.Flags().StringVar(&apiKey, "api-key", "", "API key (prompts if empty)")
	cmd.Flags().StringVar(&headerName, "header-name", "", "header carrying the API key (default X-API-Key)")
	cmd.Flags().BoolVar(&basic, "basic", false, "set basic auth (prompts for username and password)")
	cmd.Flags().StringVar(&language, "language", "", "preferred display language (e.g. en, de)")
	cmd.Flags().StringArrayVar(&headers, "header", nil, "add header as \"Key: Value\" (repeatable)")
	cmd.Flags().StringArrayVar(&metaEntries, "meta", nil, "add metadata as \"key=value\" (repeatable)")

	return cmd
}

// secretOrPrompt returns the flag value, prompting without echo when the
// flag was passed empty.
func secretOrPrompt(flagValue, prompt string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	return promptSecret(prompt)
}

func promptBasicCredentials() (*app.Credentials, error) {
	fmt.Print("Username: ")
	var username string
	if _, err := fmt.Scanln(&username); err != nil {
		return nil, fmt.Errorf("reading username: %w", err)
	}
	password, err := promptSecret("Password: ")
	if err != nil {
		return nil, err
	}
	return &app.Credentials{Type: app.CredentialBasic, Username: username, Password: password}, nil
}

func newContextRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "remove <name>",
		Aliases: []string{"rm"},
		Short:   "Remove a named context",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			if !app.ContextExists(name) {
				return app.ExitResult{Code: 1, Message: fmt.Sprintf("context %q not found", name), ToStderr: true}
			}
			if err := app.DeleteContext(name); err != nil {
				return app.ExitResult{Code: 1, Message: err.Error(), ToStderr: true}
			}
			fmt.Fprintf(os.Stderr, "Context %q removed.\n", name)
			return nil
		},
	}
}
