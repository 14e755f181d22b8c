package render

import (
	"encoding/json"
	"fmt"
	"testing"
)

func TestRender_NilAndEmpty(t *testing.T) {
	if n := Render(nil, Options{}); n.Kind != KindEmpty || n.Value != EmptyMarker {
		t.Errorf("nil should render the empty marker, got %+v", n)
	}
	if n := Render([]any{}, Options{}); n.Kind != KindEmpty {
		t.Errorf("empty array should render an empty state, got %+v", n)
	}
	if n := Render(map[string]any{}, Options{}); n.Kind != KindEmpty {
		t.Errorf("empty object should render an empty state, got %+v", n)
	}
	if n := Render("", Options{}); n.Kind != KindEmpty {
		t.Errorf("empty string should render the empty marker, got %+v", n)
	}
}

func TestRender_DepthCap(t *testing.T) {
	// Build nesting far deeper than the cap.
	deep := map[string]any{}
	current := deep
	for i := 0; i < 100; i++ {
		next := map[string]any{}
		current["child"] = next
		current = next
	}
	current["leaf"] = "value"

	n := Render(deep, Options{MaxDepth: 10})

	depth := 0
	for n != nil && len(n.Children) == 1 {
		n = n.Children[0]
		depth++
		if depth > 20 {
			t.Fatal("renderer exceeded its depth cap")
		}
	}
	if n == nil || n.Kind != KindMaxDepth {
		t.Errorf("expected a max-depth placeholder at the cap, got %+v", n)
	}
}

func TestRender_ArrayCap(t *testing.T) {
	var items []any
	for i := 0; i < 30; i++ {
		items = append(items, map[string]any{"n": float64(i)})
	}

	n := Render(items, Options{})
	if n.Kind != KindArray {
		t.Fatalf("expected array node, got %s", n.Kind)
	}
	// 20 rendered + 1 summary row.
	if len(n.Children) != 21 {
		t.Fatalf("expected 21 children (20 + summary), got %d", len(n.Children))
	}
	last := n.Children[20]
	if last.Kind != KindNotice || last.Value != "10 more items not shown" {
		t.Errorf("summary row wrong: %+v", last)
	}
}

func TestRender_TechnicalFilter(t *testing.T) {
	obj := map[string]any{
		"name":       "Pump",
		"modelType":  "Property",
		"semanticId": map[string]any{"keys": []any{}},
		"aasPath":    "x",
	}

	n := Render(obj, Options{})
	if len(n.Children) != 1 || n.Children[0].Label != "name" {
		t.Errorf("only 'name' should survive filtering, got %+v", n.Children)
	}

	dev := Render(obj, Options{DeveloperMode: true})
	if len(dev.Children) != 4 {
		t.Errorf("developer mode should show all 4 entries, got %d", len(dev.Children))
	}
}

func TestRender_HiddenNotice(t *testing.T) {
	obj := map[string]any{"modelType": "Property", "semanticId": "urn:x"}

	n := Render(obj, Options{})
	if len(n.Children) != 1 || n.Children[0].Kind != KindNotice {
		t.Fatalf("all-technical object should render a notice, got %+v", n.Children)
	}
}

func TestRender_ExcludeKeys(t *testing.T) {
	obj := map[string]any{"keep": "a", "drop": "b"}
	n := Render(obj, Options{DeveloperMode: true, ExcludeKeys: map[string]bool{"drop": true}})
	if len(n.Children) != 1 || n.Children[0].Label != "keep" {
		t.Errorf("excludeKeys should drop 'drop' even in developer mode: %+v", n.Children)
	}
}

func TestRender_NumberFormatting(t *testing.T) {
	n := Render(float64(10), Options{})
	if n.Value != "10" {
		t.Errorf("whole float should print without fraction, got %q", n.Value)
	}
	n = Render(2.5, Options{})
	if n.Value != "2.5" {
		t.Errorf("fraction lost: %q", n.Value)
	}
}

// The renderer must never panic for any JSON-serializable input.
func TestRender_Totality(t *testing.T) {
	inputs := []string{
		`null`,
		`[]`,
		`{}`,
		`[[[[[[[[[[[[[[[[[[[[[[1]]]]]]]]]]]]]]]]]]]]]]`,
		`{"a": {"b": {"c": [1, "x", null, {"d": true}]}}}`,
		`[{"language": "en", "text": "Hello"}]`,
		`"just a string"`,
		`123.456`,
		`true`,
	}
	for _, in := range inputs {
		var v any
		if err := json.Unmarshal([]byte(in), &v); err != nil {
			t.Fatalf("bad fixture %q: %v", in, err)
		}
		func() {
			defer func() {
				if r := recover(); r != nil {
					t.Errorf("Render panicked on %q: %v", in, r)
				}
			}()
			if Render(v, Options{MaxDepth: 8}) == nil {
				t.Errorf("Render returned nil for %q", in)
			}
		}()
	}
}

func TestRender_NonJSONShapeFallsBack(t *testing.T) {
	// A Go value outside the decoded-JSON vocabulary degrades to raw dump.
	n := Render(struct{ X int }{42}, Options{})
	if n.Kind != KindRaw || n.Value == "" {
		t.Errorf("expected raw fallback, got %+v", n)
	}
	// Even unmarshalable values produce something printable.
	n = Render(func() {}, Options{})
	if n.Kind != KindRaw {
		t.Errorf("expected raw fallback for func value, got %+v", n)
	}
}

func TestClassify(t *testing.T) {
	cases := []struct {
		in   string
		want ValueClass
	}{
		{"hello world", ClassText},
		{"42", ClassNumber},
		{"-3.5", ClassNumber},
		{"true", ClassBoolean},
		{"2024-03-01", ClassDate},
		{"2024-03-01T10:00:00Z", ClassDate},
		{"user@example.com", ClassEmail},
		{"https://example.com/doc.pdf", ClassURL},
		{"+49 30 123456", ClassPhone},
		{"", ClassText},
		{"not@valid@mail", ClassText},
	}
	for _, c := range cases {
		t.Run(fmt.Sprintf("%q", c.in), func(t *testing.T) {
			if got := Classify(c.in); got != c.want {
				t.Errorf("Classify(%q) = %s, want %s", c.in, got, c.want)
			}
		})
	}
}
