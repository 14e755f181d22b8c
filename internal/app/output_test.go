package app

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestFormatOutput_YAML_SerializesRawMessageAsObject(t *testing.T) {
	// Element payloads carry their original document as json.RawMessage;
	// when marshaled directly to YAML, a []byte becomes a sequence of
	// integers. After the JSON round-trip it should appear as a mapping.
	v := map[string]any{
		"idShort":   "Nameplate",
		"modelType": "Submodel",
		"raw":       json.RawMessage(`{"idShort":"ManufacturerName","modelType":"Property"}`),
	}

	b, err := FormatOutput(v, OutputFormatYAML)
	if err != nil {
		t.Fatalf("FormatOutput: %v", err)
	}

	yamlStr := string(b)
	if strings.Contains(yamlStr, "- 123") {
		t.Error("YAML must not serialize raw payload as integer sequence")
	}
	if !strings.Contains(yamlStr, "raw:") {
		t.Error("YAML should contain raw key")
	}
	if !strings.Contains(yamlStr, "ManufacturerName") {
		t.Error("YAML should contain raw payload contents as proper keys")
	}
}

func TestParseOutputFormat(t *testing.T) {
	cases := []struct {
		in      string
		want    OutputFormat
		wantErr bool
	}{
		{"", OutputFormatText, false},
		{"text", OutputFormatText, false},
		{"json", OutputFormatJSON, false},
		{"yaml", OutputFormatYAML, false},
		{"yml", OutputFormatYAML, false},
		{"xml", "", true},
	}
	for _, tc := range cases {
		got, err := ParseOutputFormat(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseOutputFormat(%q): expected error", tc.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseOutputFormat(%q): %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseOutputFormat(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
