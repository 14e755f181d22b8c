package app

import (
	"reflect"
	"testing"
)

func TestNormalizeJSONPassthrough(t *testing.T) {
	inputs := []any{
		nil,
		map[string]any{"idShort": "Nameplate"},
		[]any{"en", "de"},
		"SN-1138",
		float64(42.5),
		true,
	}
	for _, in := range inputs {
		out, err := NormalizeJSON(in)
		if err != nil {
			t.Fatalf("NormalizeJSON(%v): %v", in, err)
		}
		if !reflect.DeepEqual(out, in) {
			t.Errorf("NormalizeJSON(%v) = %v, want input unchanged", in, out)
		}
	}
}

func TestNormalizeJSONStruct(t *testing.T) {
	type nameplate struct {
		Manufacturer string `json:"manufacturer"`
		Year         int    `json:"year"`
	}
	out, err := NormalizeJSON(nameplate{Manufacturer: "ACME Drives", Year: 2024})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	m, ok := out.(map[string]any)
	if !ok {
		t.Fatalf("expected map[string]any, got %T", out)
	}
	if m["manufacturer"] != "ACME Drives" {
		t.Errorf("manufacturer = %v", m["manufacturer"])
	}
	if m["year"] != float64(2024) {
		t.Errorf("year = %v (%T), want float64 2024", m["year"], m["year"])
	}
}

func TestNormalizeJSONTypedContainers(t *testing.T) {
	out, err := NormalizeJSON(map[string]int{"elements": 7})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	m, ok := out.(map[string]any)
	if !ok {
		t.Fatalf("expected map[string]any, got %T", out)
	}
	if m["elements"] != float64(7) {
		t.Errorf("elements = %v", m["elements"])
	}
}

func TestNormalizeJSONUnmarshalable(t *testing.T) {
	if _, err := NormalizeJSON(func() {}); err == nil {
		t.Error("expected error for non-JSON value")
	}
}
