package tui

// Tree node type constants for consistent type identification across the TUI.
// Use these constants instead of string literals when creating or checking node types.
const (
	// NodeTypeSubmodel is a submodel root in the asset tree.
	NodeTypeSubmodel = "submodel"

	// NodeTypeElement is a container element (collection, list, entity).
	NodeTypeElement = "element"

	// NodeTypeValue is an editable leaf (property, file).
	NodeTypeValue = "value"

	// NodeTypeLang is one language entry of a multi-language property.
	NodeTypeLang = "lang"

	// NodeTypeRaw is an element that only renders as raw JSON.
	NodeTypeRaw = "raw"

	// NodeTypeSection is a passport section header.
	NodeTypeSection = "section"

	// NodeTypeField is a rendered passport field.
	NodeTypeField = "field"

	// NodeTypeNotice is an informational row (truncation, hidden keys).
	NodeTypeNotice = "notice"
)
