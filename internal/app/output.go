package app

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// OutputFormat is a supported serialization for command results.
type OutputFormat string

const (
	OutputFormatJSON OutputFormat = "json"
	OutputFormatYAML OutputFormat = "yaml"
	OutputFormatText OutputFormat = "text"
)

// ParseOutputFormat maps the --format flag value to an OutputFormat.
// Empty means text, the human-readable default.
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch s {
	case "", "text":
		return OutputFormatText, nil
	case "json":
		return OutputFormatJSON, nil
	case "yaml", "yml":
		return OutputFormatYAML, nil
	default:
		return "", fmt.Errorf("unknown output format %q (valid: text, json, yaml)", s)
	}
}

// FormatOutput serializes v as indented JSON or as YAML. YAML goes
// through a JSON round-trip first so json.RawMessage fields (raw element
// payloads) come out as proper YAML objects instead of byte sequences.
func FormatOutput(v any, format OutputFormat) ([]byte, error) {
	switch format {
	case OutputFormatJSON:
		return json.MarshalIndent(v, "", "  ")
	case OutputFormatYAML:
		b, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		var plain any
		if err := json.Unmarshal(b, &plain); err != nil {
			return nil, err
		}
		return yaml.Marshal(plain)
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}

// OutputResult emits a command result honoring the persistent --format
// and -o/--output flags, returning an ExitResult that carries the
// serialized output. With no textFn, text mode falls back to JSON.
func OutputResult(v any, format string, outputPath string, defaultFormat ...OutputFormat) error {
	def := OutputFormatText
	if len(defaultFormat) > 0 {
		def = defaultFormat[0]
	}
	return emit(v, format, outputPath, 0, nil, def)
}

// OutputResultWithCode is OutputResult with a caller-chosen exit code,
// for commands whose output is valid data but whose process status
// signals a finding (submodel validate). Format "quiet" suppresses the
// output and keeps only the code.
func OutputResultWithCode(v any, format string, outputPath string, code int) error {
	return emit(v, format, outputPath, code, nil, OutputFormatText)
}

// OutputResultText is OutputResult with an explicit text renderer used
// when the format resolves to text.
func OutputResultText(v any, format string, outputPath string, textFn func() string) error {
	return emit(v, format, outputPath, 0, textFn, OutputFormatText)
}

func emit(v any, format, outputPath string, code int, textFn func() string, def OutputFormat) error {
	if format == "quiet" {
		return ExitResult{Code: code}
	}

	resolved, err := ParseOutputFormat(format)
	if err != nil {
		return ExitResult{Code: 2, Message: err.Error(), ToStderr: true}
	}
	if format == "" {
		resolved = def
	}

	if outputPath != "" {
		// Path extension decides the on-disk serialization when the
		// flag resolves to text.
		if resolved == OutputFormatText {
			resolved = formatForPath(outputPath)
		}
		b, err := serialize(v, resolved, textFn)
		if err != nil {
			return err
		}
		if err := AtomicWriteFile(outputPath, b, FilePerm); err != nil {
			return ExitResult{Code: 1, Message: err.Error(), ToStderr: true}
		}
		return ExitResult{Code: code, Message: "Wrote " + outputPath}
	}

	b, err := serialize(v, resolved, textFn)
	if err != nil {
		return err
	}
	return ExitResult{Code: code, Message: string(b)}
}

func serialize(v any, format OutputFormat, textFn func() string) ([]byte, error) {
	if format == OutputFormatText {
		if textFn != nil {
			return []byte(strings.TrimRight(textFn(), "\n")), nil
		}
		format = OutputFormatJSON
	}
	return FormatOutput(v, format)
}

// formatForPath picks a serialization from a file extension.
func formatForPath(path string) OutputFormat {
	lower := strings.ToLower(path)
	if strings.HasSuffix(lower, ".yaml") || strings.HasSuffix(lower, ".yml") {
		return OutputFormatYAML
	}
	return OutputFormatJSON
}
