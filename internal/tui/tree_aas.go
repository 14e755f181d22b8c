package tui

import (
	"fmt"
	"strings"

	"github.com/twinsight/aasview/internal/aas"
)

// langSeparator joins an element path with a language code in lang node IDs.
const langSeparator = "@"

// BuildSubmodelTree turns a decoded submodel into a navigable tree. Node
// IDs are idShort paths, so a selected node maps straight back to the
// element it shows (and to the edit buffer key for pending edits).
func BuildSubmodelTree(sm *aas.Submodel) *TreeNode {
	root := &TreeNode{
		ID:       sm.IDShort,
		Label:    sm.IDShort,
		Type:     NodeTypeSubmodel,
		Expanded: true,
	}
	for _, el := range sm.Elements {
		root.Children = append(root.Children, buildElementNode(el, el.IDShort()))
	}
	return root
}

func buildElementNode(el aas.Element, path string) *TreeNode {
	node := &TreeNode{
		ID:         path,
		Label:      el.IDShort(),
		Badge:      "[" + string(el.ModelType()) + "]",
		Actionable: true,
	}

	switch typed := el.(type) {
	case *aas.Property:
		node.Type = NodeTypeValue
		node.Value = valuePreview(typed.Value)
	case *aas.File:
		node.Type = NodeTypeValue
		node.Value = typed.Value
		if typed.ContentType != "" {
			node.Badge = fmt.Sprintf("[File %s]", typed.ContentType)
		}
	case *aas.MultiLanguageProperty:
		node.Type = NodeTypeValue
		node.Value = preferredLanguageText(typed.Value)
		for _, entry := range typed.Value {
			node.Children = append(node.Children, &TreeNode{
				ID:         path + langSeparator + entry.Language,
				Label:      languageLabel(entry.Language),
				Value:      entry.Text,
				Type:       NodeTypeLang,
				Actionable: true,
			})
		}
	case *aas.Range:
		node.Type = NodeTypeRaw
		node.Value = fmt.Sprintf("%s .. %s", valuePreview(typed.Min), valuePreview(typed.Max))
	case *aas.Entity:
		node.Type = NodeTypeElement
		node.Badge = fmt.Sprintf("[Entity %s]", typed.EntityType)
		for _, st := range typed.Statements {
			node.Children = append(node.Children, buildElementNode(st, aas.JoinPath(path, st.IDShort())))
		}
	case *aas.Collection, *aas.List:
		node.Type = NodeTypeElement
		for _, child := range el.Children() {
			node.Children = append(node.Children, buildElementNode(child, aas.JoinPath(path, child.IDShort())))
		}
	case *aas.Operation:
		node.Type = NodeTypeElement
		node.Value = operationSignature(typed)
	case *aas.ReferenceElement:
		node.Type = NodeTypeRaw
		node.Value = referencePreview(typed.Value)
	case *aas.RelationshipElement:
		node.Type = NodeTypeRaw
		node.Value = referencePreview(typed.First) + " -> " + referencePreview(typed.Second)
	default:
		// Unknown kinds still show up; the detail pane dumps their raw JSON.
		node.Type = NodeTypeRaw
		node.Value = "(unsupported element)"
	}
	return node
}

// valuePreview renders a scalar for the tree line, truncated to keep rows
// single-line.
func valuePreview(v any) string {
	if v == nil {
		return ""
	}
	s := fmt.Sprintf("%v", v)
	s = strings.ReplaceAll(s, "\n", " ")
	if len(s) > 60 {
		s = s[:57] + "..."
	}
	return s
}

// preferredLanguageText picks the English text when present, otherwise
// the first entry.
func preferredLanguageText(entries []aas.LangString) string {
	for _, e := range entries {
		if e.Language == "en" {
			return e.Text
		}
	}
	if len(entries) > 0 {
		return entries[0].Text
	}
	return ""
}

func languageLabel(code string) string {
	name := aas.LanguageName(code)
	if name != code {
		return fmt.Sprintf("%s (%s)", code, name)
	}
	return code
}

func operationSignature(op *aas.Operation) string {
	return fmt.Sprintf("in:%d out:%d inout:%d",
		len(op.InputVariables), len(op.OutputVariables), len(op.InoutputVariables))
}

func referencePreview(ref *aas.Reference) string {
	if ref == nil || len(ref.Keys) == 0 {
		return "(empty)"
	}
	last := ref.Keys[len(ref.Keys)-1]
	return last.Value
}

// elementPathOf maps a tree node back to its element path, stripping the
// language suffix of lang nodes.
func elementPathOf(node *TreeNode) (path, lang string) {
	if node == nil {
		return "", ""
	}
	if node.Type == NodeTypeLang {
		if idx := strings.LastIndex(node.ID, langSeparator); idx >= 0 {
			return node.ID[:idx], node.ID[idx+len(langSeparator):]
		}
	}
	return node.ID, ""
}
