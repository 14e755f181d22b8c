package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/twinsight/aasview/internal/api"
	"github.com/twinsight/aasview/internal/app"
)

// getOutputFlags returns the global --format and -o/--output (path) from the root command.
// -o/--output = output path (file to write). --format/-F = output format (json|yaml|text).
func getOutputFlags(c *cobra.Command) (format string, outputPath string) {
	format, _ = c.Root().PersistentFlags().GetString("format")
	outputPath, _ = c.Root().PersistentFlags().GetString("output")
	return format, outputPath
}

// repositoryClient builds an API client from the --context flag. An
// unnamed, nonexistent context is fine: the client falls back to the
// environment / default repository URL with no credentials.
func repositoryClient(c *cobra.Command) (*api.Client, error) {
	name, _ := c.Root().PersistentFlags().GetString("context")
	if name == "" {
		name = app.DefaultContextName
	}

	if !app.ContextExists(name) {
		if explicit, _ := c.Root().PersistentFlags().GetString("context"); explicit != "" {
			return nil, app.ExitResult{Code: 1, Message: fmt.Sprintf("context %q not found", name), ToStderr: true}
		}
		return api.NewClient(app.RepositoryContext{}), nil
	}

	rctx, err := app.LoadContext(name)
	if err != nil {
		return nil, app.ExitResult{Code: 1, Message: err.Error(), ToStderr: true}
	}
	return api.NewClient(rctx), nil
}

// promptSecret prompts for a secret value with no echo.
func promptSecret(prompt string) (string, error) {
	fmt.Print(prompt)
	b, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("reading secret: %w", err)
	}
	val := strings.TrimSpace(string(b))
	if val == "" {
		return "", fmt.Errorf("empty value")
	}
	return val, nil
}

// parseKV splits a string on the first occurrence of sep, trimming whitespace.
func parseKV(s, sep string) (key, value string, ok bool) {
	idx := strings.Index(s, sep)
	if idx < 0 {
		return "", "", false
	}
	key = strings.TrimSpace(s[:idx])
	value = strings.TrimSpace(s[idx+len(sep):])
	if key == "" {
		return "", "", false
	}
	return key, value, true
}

// isTTY reports whether stdin is an interactive terminal.
func isTTY() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}
