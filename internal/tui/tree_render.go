package tui

import (
	"fmt"

	"github.com/twinsight/aasview/internal/render"
)

// renderOpts runs the presentation renderer with the browser's current
// developer-mode setting and default depth cap.
func renderOpts(data any, developerMode bool) *render.Node {
	return render.Render(data, render.Options{DeveloperMode: developerMode})
}

// BuildRenderTree converts a rendered presentation tree (passport
// sections, arbitrary JSON) into a navigable TreeNode tree. IDs are
// label paths; they only need to be unique enough for cursor restore.
func BuildRenderTree(label string, node *render.Node) *TreeNode {
	root := buildRenderNode(label, node, label)
	root.Expanded = true
	return root
}

func buildRenderNode(label string, node *render.Node, id string) *TreeNode {
	out := &TreeNode{
		ID:         id,
		Label:      label,
		Actionable: true,
	}
	if node == nil {
		out.Type = NodeTypeField
		out.Value = render.EmptyMarker
		return out
	}

	switch node.Kind {
	case render.KindValue:
		out.Type = NodeTypeField
		out.Value = node.Value
		if node.Class != render.ClassText {
			out.Badge = "[" + string(node.Class) + "]"
		}
	case render.KindEmpty:
		out.Type = NodeTypeField
		out.Value = node.Value
	case render.KindNotice, render.KindMaxDepth:
		out.Type = NodeTypeNotice
		out.Value = node.Value
		out.Actionable = false
	case render.KindRaw:
		out.Type = NodeTypeRaw
		out.Value = node.Value
	default: // objects and arrays
		out.Type = NodeTypeSection
		for i, child := range node.Children {
			childLabel := child.Label
			if childLabel == "" {
				childLabel = fmt.Sprintf("#%d", i)
			}
			out.Children = append(out.Children,
				buildRenderNode(childLabel, child, id+"/"+childLabel))
		}
	}
	return out
}
