package aas

import "testing"

func TestResolve(t *testing.T) {
	sm := decodeHierarchyFixture(t)

	el, ok := Resolve(sm, "EntryNode/Node/BulkCount")
	if !ok {
		t.Fatal("EntryNode/Node/BulkCount should resolve")
	}
	prop, ok := el.(*Property)
	if !ok {
		t.Fatalf("expected *Property, got %T", el)
	}
	if prop.ValueType != TypeUnsignedLong {
		t.Errorf("BulkCount valueType = %s", prop.ValueType)
	}
}

func TestResolve_SubmodelRootedPath(t *testing.T) {
	sm := decodeHierarchyFixture(t)

	// Paths may include the submodel idShort as leading segment.
	if _, ok := Resolve(sm, "HierarchicalStructures/EntryNode/Node"); !ok {
		t.Error("submodel-rooted path should resolve")
	}
}

func TestResolve_NotFound(t *testing.T) {
	sm := decodeHierarchyFixture(t)

	cases := []string{
		"EntryNode/Missing",
		"EntryNode/Node/BulkCount/TooDeep",
		"Nope",
		"",
	}
	for _, path := range cases {
		if _, ok := Resolve(sm, path); ok {
			t.Errorf("Resolve(%q) should fail", path)
		}
	}
}

func TestResolve_NilTolerance(t *testing.T) {
	if _, ok := Resolve(nil, "EntryNode"); ok {
		t.Error("nil submodel should not resolve")
	}
}

// Every path produced by Walk must resolve back to the element it was
// produced for, and PathTo must reproduce the walked path.
func TestPathRoundTrip(t *testing.T) {
	sm := decodeHierarchyFixture(t)

	count := 0
	Walk(sm, func(path string, el Element) {
		count++
		resolved, ok := Resolve(sm, path)
		if !ok {
			t.Errorf("walked path %q does not resolve", path)
			return
		}
		if resolved != el {
			t.Errorf("path %q resolved to a different element", path)
		}
		back, ok := PathTo(sm, el)
		if !ok || back != path {
			t.Errorf("PathTo mismatch: walked %q, got %q (ok=%v)", path, back, ok)
		}
	})
	if count != 6 {
		t.Errorf("walked %d elements, want 6", count)
	}
}

func TestSplitPath(t *testing.T) {
	got := SplitPath("/EntryNode//Node/")
	if len(got) != 2 || got[0] != "EntryNode" || got[1] != "Node" {
		t.Errorf("SplitPath cleaned wrong: %v", got)
	}
}
