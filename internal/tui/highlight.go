package tui

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/lipgloss"
)

var plainStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("7"))

// highlightOutput colorizes the raw view's content. Element payloads are
// JSON; YAML shows up when an exported document is reopened. Anything
// unrecognized renders as plain styled text.
func highlightOutput(input string) string {
	if input == "" {
		return input
	}

	lexer := detectLexer(strings.TrimSpace(input))
	if lexer == nil {
		return plainStyle.Render(input)
	}

	it, err := chroma.Coalesce(lexer).Tokenise(nil, input)
	if err != nil {
		return plainStyle.Render(input)
	}

	var sb strings.Builder
	if err := highlightFormatter().Format(&sb, highlightStyle(), it); err != nil {
		return plainStyle.Render(input)
	}
	return sb.String()
}

func detectLexer(trimmed string) chroma.Lexer {
	switch {
	case strings.HasPrefix(trimmed, "{"), strings.HasPrefix(trimmed, "["):
		return lexers.Get("json")
	case looksLikeYAML(trimmed):
		return lexers.Get("yaml")
	}
	return nil
}

// dracula reads well on dark terminals; terminal256 keeps the escape
// sequences compatible with the viewport.
func highlightStyle() *chroma.Style {
	if s := styles.Get("dracula"); s != nil {
		return s
	}
	return styles.Fallback
}

func highlightFormatter() chroma.Formatter {
	if f := formatters.Get("terminal256"); f != nil {
		return f
	}
	return formatters.Fallback
}

// looksLikeYAML reports whether the content opens with at least one
// plausible "key: value" mapping line. Lines without a colon disqualify
// the document immediately.
func looksLikeYAML(s string) bool {
	mappings := 0
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		idx := strings.Index(line, ":")
		if idx <= 0 || !plausibleYAMLKey(line[:idx]) {
			return false
		}
		mappings++
		if mappings >= 2 {
			return true
		}
	}
	return mappings > 0
}

func plausibleYAMLKey(key string) bool {
	for i, r := range key {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r == '_':
		case i > 0 && (r >= '0' && r <= '9' || r == '-'):
		default:
			return false
		}
	}
	return key != ""
}
