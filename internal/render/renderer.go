// Package render turns arbitrary decoded JSON values into a presentation
// tree: nested, collapsible, filtered, human-readable. It is a pure
// function of (data, options); it never mutates its input and never
// panics, degrading to raw dumps for shapes it does not understand.
package render

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// NodeKind describes what a render node displays.
type NodeKind string

const (
	KindValue    NodeKind = "value"    // scalar label/value row
	KindObject   NodeKind = "object"   // nested object container
	KindArray    NodeKind = "array"    // nested array container
	KindEmpty    NodeKind = "empty"    // explicit empty-value marker
	KindMaxDepth NodeKind = "maxdepth" // recursion cap placeholder
	KindNotice   NodeKind = "notice"   // informational row (hidden fields, truncation)
	KindRaw      NodeKind = "raw"      // fallback raw JSON dump
)

// EmptyMarker is the display text for null/missing values.
const EmptyMarker = "—"

// maxArrayItems bounds how many object-valued array items are rendered
// before the remainder collapses into a summary row. A rendering-cost
// bound, not a correctness rule.
const maxArrayItems = 20

// Node is one row of the render tree.
type Node struct {
	Kind     NodeKind
	Label    string
	Value    string
	Class    ValueClass
	Children []*Node
}

// Options controls filtering and recursion limits.
type Options struct {
	// MaxDepth caps recursion; at or beyond it a placeholder is rendered
	// instead of recursing. Zero means DefaultMaxDepth.
	MaxDepth int
	// DeveloperMode un-hides technical fields normally filtered out.
	DeveloperMode bool
	// ExcludeKeys are object keys dropped unconditionally.
	ExcludeKeys map[string]bool
}

// DefaultMaxDepth bounds recursion for external data whose nesting is
// unbounded in principle.
const DefaultMaxDepth = 16

// technicalKeys is the fixed deny-list applied outside developer mode.
var technicalKeys = map[string]bool{
	"id":         true,
	"modelType":  true,
	"semanticId": true,
	"category":   true,
	"kind":       true,
	"qualifiers": true,
	"keys":       true,
	"type":       true,
	"embeddedDataSpecifications": true,
	"supplementalSemanticIds":    true,
}

// isTechnicalKey applies the deny-list plus name heuristics.
func isTechnicalKey(key string) bool {
	if technicalKeys[key] {
		return true
	}
	lower := strings.ToLower(key)
	return strings.Contains(lower, "aas") || strings.Contains(lower, "semantic")
}

// Render builds the presentation tree for any JSON-decoded value.
func Render(data any, opts Options) *Node {
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = DefaultMaxDepth
	}
	return renderValue("", data, 0, opts)
}

func renderValue(label string, data any, depth int, opts Options) *Node {
	if depth >= opts.MaxDepth {
		return &Node{Kind: KindMaxDepth, Label: label, Value: "max depth reached"}
	}

	switch v := data.(type) {
	case nil:
		return &Node{Kind: KindEmpty, Label: label, Value: EmptyMarker}

	case string:
		if v == "" {
			return &Node{Kind: KindEmpty, Label: label, Value: EmptyMarker}
		}
		return &Node{Kind: KindValue, Label: label, Value: v, Class: Classify(v)}

	case bool:
		return &Node{Kind: KindValue, Label: label, Value: fmt.Sprintf("%v", v), Class: ClassBoolean}

	case float64:
		return &Node{Kind: KindValue, Label: label, Value: formatNumber(v), Class: ClassNumber}

	case json.Number:
		return &Node{Kind: KindValue, Label: label, Value: v.String(), Class: ClassNumber}

	case []any:
		return renderArray(label, v, depth, opts)

	case map[string]any:
		return renderObject(label, v, depth, opts)

	default:
		// Shape we do not model: degrade to a raw dump, never fail.
		return rawDump(label, data)
	}
}

func renderArray(label string, items []any, depth int, opts Options) *Node {
	if len(items) == 0 {
		return &Node{Kind: KindEmpty, Label: label, Value: "empty"}
	}

	node := &Node{
		Kind:  KindArray,
		Label: label,
		Value: fmt.Sprintf("%d items", len(items)),
	}

	rendered := 0
	for i, item := range items {
		switch item.(type) {
		case map[string]any, []any:
			if rendered >= maxArrayItems {
				remaining := 0
				for _, rest := range items[i:] {
					switch rest.(type) {
					case map[string]any, []any:
						remaining++
					}
				}
				node.Children = append(node.Children, &Node{
					Kind:  KindNotice,
					Value: fmt.Sprintf("%d more items not shown", remaining),
				})
				return node
			}
			child := renderValue(fmt.Sprintf("[%d]", i), item, depth+1, opts)
			node.Children = append(node.Children, child)
			rendered++
		default:
			// Scalar items render inline and do not count toward the cap.
			node.Children = append(node.Children, renderValue(fmt.Sprintf("[%d]", i), item, depth+1, opts))
		}
	}
	return node
}

func renderObject(label string, obj map[string]any, depth int, opts Options) *Node {
	if len(obj) == 0 {
		return &Node{Kind: KindEmpty, Label: label, Value: "empty"}
	}

	keys := make([]string, 0, len(obj))
	hiddenTechnical := 0
	for k := range obj {
		if opts.ExcludeKeys[k] {
			continue
		}
		if !opts.DeveloperMode && isTechnicalKey(k) {
			hiddenTechnical++
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	node := &Node{Kind: KindObject, Label: label}

	if len(keys) == 0 {
		if hiddenTechnical > 0 {
			node.Children = append(node.Children, &Node{
				Kind:  KindNotice,
				Value: fmt.Sprintf("%d technical fields hidden (enable developer mode to show)", hiddenTechnical),
			})
		} else {
			node.Kind = KindEmpty
			node.Value = "empty"
		}
		return node
	}

	for _, k := range keys {
		node.Children = append(node.Children, renderValue(k, obj[k], depth+1, opts))
	}
	return node
}

// formatNumber prints integers without a trailing .0 while keeping real
// fractions as-is.
func formatNumber(f float64) string {
	if f == float64(int64(f)) {
		return fmt.Sprintf("%d", int64(f))
	}
	return fmt.Sprintf("%g", f)
}

func rawDump(label string, data any) *Node {
	b, err := json.Marshal(data)
	if err != nil {
		return &Node{Kind: KindRaw, Label: label, Value: fmt.Sprintf("%v", data)}
	}
	return &Node{Kind: KindRaw, Label: label, Value: string(b)}
}
