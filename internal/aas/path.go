package aas

import "strings"

// PathSeparator joins idShort segments into an address string.
const PathSeparator = "/"

// JoinPath builds a path from idShort segments.
func JoinPath(segments ...string) string {
	return strings.Join(segments, PathSeparator)
}

// SplitPath splits a path back into its segments. Empty segments produced
// by doubled or trailing separators are dropped.
func SplitPath(path string) []string {
	parts := strings.Split(path, PathSeparator)
	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Resolve walks a submodel's element tree along a slash-joined idShort
// path. Each step searches the current node's children across whichever
// child-holding fields the node kind populates; the walk stops at the
// first unmatched segment. Returns (nil, false) when the path does not
// resolve.
func Resolve(sm *Submodel, path string) (Element, bool) {
	if sm == nil {
		return nil, false
	}
	segments := SplitPath(path)
	if len(segments) == 0 {
		return nil, false
	}
	// Paths may be rooted at the submodel idShort; skip that segment.
	if segments[0] == sm.IDShort && len(segments) > 1 {
		segments = segments[1:]
	}
	current := findChild(sm.Elements, segments[0])
	if current == nil {
		return nil, false
	}
	for _, seg := range segments[1:] {
		next := findChild(current.Children(), seg)
		if next == nil {
			return nil, false
		}
		current = next
	}
	return current, true
}

func findChild(children []Element, idShort string) Element {
	for _, c := range children {
		if c != nil && c.IDShort() == idShort {
			return c
		}
	}
	return nil
}

// PathTo computes the idShort path from the submodel root to target.
// Returns ("", false) if target is not in the tree. Together with Resolve
// this round-trips: Resolve(sm, PathTo(sm, el)) yields el again as long as
// idShorts stay unique among siblings.
func PathTo(sm *Submodel, target Element) (string, bool) {
	if sm == nil || target == nil {
		return "", false
	}
	return searchPath(sm.Elements, target, nil)
}

func searchPath(children []Element, target Element, prefix []string) (string, bool) {
	for _, c := range children {
		if c == nil {
			continue
		}
		segs := append(append([]string(nil), prefix...), c.IDShort())
		if c == target {
			return JoinPath(segs...), true
		}
		if found, ok := searchPath(c.Children(), target, segs); ok {
			return found, ok
		}
	}
	return "", false
}

// Walk visits every element of the tree in document order, passing each
// element's path from the submodel root.
func Walk(sm *Submodel, visit func(path string, el Element)) {
	if sm == nil {
		return
	}
	walkChildren(sm.Elements, nil, visit)
}

func walkChildren(children []Element, prefix []string, visit func(path string, el Element)) {
	for _, c := range children {
		if c == nil {
			continue
		}
		segs := append(append([]string(nil), prefix...), c.IDShort())
		visit(JoinPath(segs...), c)
		walkChildren(c.Children(), segs, visit)
	}
}
