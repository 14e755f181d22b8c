package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/twinsight/aasview/internal/aas"
	"github.com/twinsight/aasview/internal/app"
	"github.com/twinsight/aasview/internal/editor"
)

func clampMin(n, min int) int {
	if n < min {
		return min
	}
	return n
}

func (m *model) View() string {
	// Wait until we get an initial window size.
	if m.width <= 0 || m.height <= 0 {
		return "Loading..."
	}

	if m.editModal != nil {
		return m.viewEditModal()
	}

	contentW := clampMin(m.width-2-4, 0) // border + padding(1,2)
	header := lipgloss.NewStyle().Width(contentW).Render(m.viewHeader())
	main := lipgloss.NewStyle().Width(contentW).Render(m.viewBody())
	footer := lipgloss.NewStyle().Width(contentW).Render(m.viewFooter(contentW))
	content := fmt.Sprintf("%s\n\n%s\n\n%s", header, main, footer)

	return m.frame(content, "8")
}

// frame wraps content in the full-screen rounded border.
func (m *model) frame(content, borderColor string) string {
	innerW := clampMin(m.width-2, 0)
	innerH := clampMin(m.height-2, 0)

	padded := lipgloss.NewStyle().Padding(1, 2).Render(content)
	inner := lipgloss.Place(innerW, innerH, lipgloss.Left, lipgloss.Top, padded)

	return lipgloss.NewStyle().
		Width(innerW).
		Height(innerH).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(borderColor)).
		Render(inner)
}

// viewHeader renders the breadcrumb line: repository › asset › submodel,
// with mode and fetch indicators.
func (m *model) viewHeader() string {
	var sb strings.Builder
	sb.WriteString(app.Styles.Header.Render("aasview"))

	if m.asset != nil {
		label := m.asset.IDShort
		if label == "" {
			label = m.asset.ID
		}
		sb.WriteString(app.Styles.Dim.Render(" › "))
		sb.WriteString(app.Styles.Key.Render(label))
	}
	if m.view == viewElements && m.session != nil {
		sb.WriteString(app.Styles.Dim.Render(" › "))
		sb.WriteString(app.Styles.Key.Render(m.session.Submodel().IDShort))
		switch m.session.State() {
		case editor.StateEditing:
			badge := " EDITING"
			if n := len(m.session.Pending()); n > 0 {
				badge = fmt.Sprintf(" EDITING (%d pending)", n)
			}
			sb.WriteString(app.Styles.Edited.Render(badge))
		case editor.StateSaving:
			sb.WriteString(app.Styles.Warning.Render(" SAVING " + m.spinner.View()))
		}
	}
	if m.view == viewPassport {
		sb.WriteString(app.Styles.Dim.Render(" › "))
		sb.WriteString(app.Styles.Key.Render("passport"))
		if m.developerMode {
			sb.WriteString(app.Styles.Badge.Render(" [dev]"))
		}
	}
	if m.view == viewRaw {
		sb.WriteString(app.Styles.Dim.Render(" › "))
		sb.WriteString(app.Styles.Key.Render("raw"))
	}

	if m.fetchStatus == app.FetchStatusLoading {
		sb.WriteString(" " + m.spinner.View())
	}
	return sb.String()
}

func (m *model) viewBody() string {
	switch m.view {
	case viewAssets:
		return m.viewAssetList()
	case viewSubmodels:
		return m.viewSubmodelList()
	case viewElements:
		return m.viewTree(m.tree, true)
	case viewPassport:
		return m.viewTree(m.passport, false)
	case viewRaw:
		return m.viewport.View()
	}
	return ""
}

// bodyHeight is the number of rows available for list/tree content.
func (m *model) bodyHeight() int {
	// border (2) + padding (2) + header (1) + footer (2) + blank lines (2)
	return clampMin(m.height-9, 1)
}

func (m *model) viewAssetList() string {
	if m.fetchStatus == app.FetchStatusBad {
		return app.Styles.Error.Render("Could not reach the repository: " + m.fetchErr)
	}
	if m.fetchStatus == app.FetchStatusLoading && len(m.assets) == 0 {
		return app.Styles.Dim.Render("Loading assets...")
	}
	if len(m.assets) == 0 {
		return app.Styles.Dim.Render("No assets in the repository.")
	}

	var lines []string
	for i, a := range m.assets {
		cursor := "  "
		if i == m.assetCursor {
			cursor = app.Styles.Key.Render("▸ ")
		}
		label := a.IDShort
		if label == "" {
			label = a.ID
		}
		line := cursor + label
		line += app.Styles.Dim.Render(fmt.Sprintf("  %d submodels", len(a.Submodels)))
		lines = append(lines, line)
	}
	return strings.Join(window(lines, m.assetCursor, m.bodyHeight()), "\n")
}

func (m *model) viewSubmodelList() string {
	if len(m.submodels) == 0 {
		return app.Styles.Dim.Render("This asset has no submodels.")
	}
	var lines []string
	for i, sm := range m.submodels {
		cursor := "  "
		if i == m.submodelCursor {
			cursor = app.Styles.Key.Render("▸ ")
		}
		line := cursor + sm.IDShort
		if tid := sm.TemplateID(); tid != "" {
			line += " " + app.Styles.Badge.Render("["+tid+"]")
		}
		line += app.Styles.Dim.Render(fmt.Sprintf("  %d elements", len(sm.Elements)))
		lines = append(lines, line)
	}
	return strings.Join(window(lines, m.submodelCursor, m.bodyHeight()), "\n")
}

// viewTree renders a navigable tree with the selection cursor. For the
// element tree, pending edits and field errors overlay the stored values.
func (m *model) viewTree(ts *TreeState, elements bool) string {
	if ts == nil {
		return ""
	}
	nodes := ts.VisibleNodes()
	if len(nodes) == 0 {
		return app.Styles.Dim.Render("(empty)")
	}
	selected := ts.SelectedNode()
	selectedIdx := 0

	var pending map[string]any
	if elements && m.session != nil && m.session.State() != editor.StateViewing {
		pending = m.session.Pending()
	}

	var lines []string
	for i, node := range nodes {
		if node == selected {
			selectedIdx = i
		}
		lines = append(lines, m.treeLine(node, node == selected, pending))
	}
	return strings.Join(window(lines, selectedIdx, m.bodyHeight()), "\n")
}

func (m *model) treeLine(node *TreeNode, selected bool, pending map[string]any) string {
	var sb strings.Builder

	sb.WriteString(strings.Repeat("  ", node.Depth))
	switch {
	case selected:
		sb.WriteString(app.Styles.Key.Render("▸ "))
	default:
		sb.WriteString("  ")
	}

	if len(node.Children) > 0 || node.Type == NodeTypeSection {
		if node.Expanded {
			sb.WriteString(app.Styles.Bullet.Render("▾ "))
		} else {
			sb.WriteString(app.Styles.Bullet.Render("▸ "))
		}
	}

	label := node.Label
	if node.Type == NodeTypeNotice {
		return sb.String() + app.Styles.Dim.Render(label+" "+node.Value)
	}
	sb.WriteString(label)

	value := node.Value
	edited := false
	if pending != nil {
		path, _ := elementPathOf(node)
		if pendingValue, ok := pending[path]; ok {
			edited = true
			if node.Type == NodeTypeValue {
				// Language entries carry the preview themselves; scalar
				// edits overlay the stored value.
				if _, isEntries := pendingValue.([]aas.LangString); !isEntries {
					value = valuePreview(pendingValue)
				}
			}
		}
		if msg, ok := m.fieldErrors[path]; ok {
			sb.WriteString("  ")
			sb.WriteString(app.Styles.Error.Render("✗ " + msg))
		}
	}

	if value != "" {
		sb.WriteString("  ")
		if edited {
			sb.WriteString(app.Styles.Edited.Render(value + " *"))
		} else {
			sb.WriteString(value)
		}
	}
	if node.Badge != "" {
		sb.WriteString(" ")
		sb.WriteString(app.Styles.Badge.Render(node.Badge))
	}
	return sb.String()
}

// window slices lines to a viewport of height rows centered on selected.
func window(lines []string, selected, height int) []string {
	if len(lines) <= height {
		return lines
	}
	top := selected - height/2
	if top < 0 {
		top = 0
	}
	if top+height > len(lines) {
		top = len(lines) - height
	}
	return lines[top : top+height]
}

func (m *model) viewFooter(width int) string {
	style := lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	statusStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)

	var helpText string
	switch m.view {
	case viewAssets:
		helpText = style.Render(keyHelp(keyHelpAssets...))
	case viewSubmodels:
		helpText = style.Render(keyHelp(keyHelpSubmodels...))
	case viewElements:
		helpText = style.Render(keyHelp(m.elementKeyHelp()...))
	case viewPassport:
		helpText = style.Render(keyHelp(keyHelpPassport...))
	case viewRaw:
		helpText = style.Render(keyHelp(keyHelpRaw...))
	}

	divider := style.Render(strings.Repeat("─", width))
	footer := divider + "\n" + helpText

	if m.statusMsg != "" {
		return footer + "   " + statusStyle.Render(m.statusMsg)
	}
	return footer
}

// viewEditModal renders the full-screen value editor.
func (m *model) viewEditModal() string {
	state := m.editModal
	contentW := clampMin(m.width-2-4, 0)

	var sb strings.Builder
	sb.WriteString(app.Styles.Dim.Render(m.session.Submodel().IDShort))
	sb.WriteString(app.Styles.Dim.Render(" › "))
	sb.WriteString(app.Styles.Key.Render(state.path))
	if state.lang != "" {
		sb.WriteString(app.Styles.Badge.Render(" [" + languageLabel(state.lang) + "]"))
	}
	sb.WriteString("\n")

	sb.WriteString(app.Styles.Header.Render("Edit " + state.label))
	sb.WriteString("\n")
	sb.WriteString(app.Styles.Dim.Render(strings.Repeat("─", contentW)))
	sb.WriteString("\n\n")

	sb.WriteString("Value: ")
	sb.WriteString(state.input.View())
	if state.valueType != "" {
		sb.WriteString(" ")
		sb.WriteString(app.Styles.Badge.Render("[" + string(state.valueType) + "]"))
	}
	sb.WriteString("\n")
	if state.errMsg != "" {
		sb.WriteString(app.Styles.Error.Render("✗ " + state.errMsg))
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(app.Styles.Dim.Render(strings.Repeat("─", contentW)))
	sb.WriteString("\n")
	sb.WriteString(app.Styles.Dim.Render(keyHelp(keyHelpEditModal...)))

	return m.frame(sb.String(), "14")
}
