package dpp

import (
	"testing"
)

func TestQuerySectionField(t *testing.T) {
	passport := Generate(testSource(t), "clean")

	result, err := Query(passport, `sections.identification.data.product.serial`)
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if result != "SN-1234" {
		t.Errorf("product.serial = %v, want SN-1234", result)
	}
}

func TestQueryAggregation(t *testing.T) {
	passport := Generate(testSource(t), "clean")

	result, err := Query(passport, `$count($keys(sections))`)
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	// jsonata-go yields int for integer aggregations, float64 otherwise.
	var n int
	switch v := result.(type) {
	case int:
		n = v
	case float64:
		n = int(v)
	default:
		t.Fatalf("count result is %T, want a number", result)
	}
	if n != len(passport.Sections) {
		t.Errorf("counted %d sections, want %d", n, len(passport.Sections))
	}
}

func TestQueryMissingPath(t *testing.T) {
	passport := Generate(testSource(t), "clean")

	// jsonata-go reports absent paths as an evaluation error.
	result, err := Query(passport, `sections.nonexistent.data.nope`)
	if err == nil && result != nil {
		t.Errorf("absent path yielded %v, want no value", result)
	}
}

func TestQueryEmptyExpression(t *testing.T) {
	passport := Generate(testSource(t), "clean")
	if _, err := Query(passport, ""); err == nil {
		t.Error("expected error for empty expression")
	}
}

func TestQueryBadExpression(t *testing.T) {
	passport := Generate(testSource(t), "clean")
	if _, err := Query(passport, "sections["); err == nil {
		t.Error("expected compile error")
	}
}
