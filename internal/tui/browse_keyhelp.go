package tui

import (
	"strings"

	"github.com/twinsight/aasview/internal/editor"
)

type keyHelpEntry struct {
	key   string
	label string
}

func keyHelp(keys ...keyHelpEntry) string {
	var parts []string
	for _, k := range keys {
		parts = append(parts, k.key+": "+k.label)
	}
	return strings.Join(parts, "   ")
}

var keyHelpAssets = []keyHelpEntry{
	{key: "j/k", label: "navigate"},
	{key: "enter", label: "open"},
	{key: "ctrl+r", label: "refresh"},
	{key: "q", label: "quit"},
}

var keyHelpSubmodels = []keyHelpEntry{
	{key: "j/k", label: "navigate"},
	{key: "enter", label: "open"},
	{key: "p", label: "passport"},
	{key: "r", label: "raw"},
	{key: "esc", label: "back"},
	{key: "q", label: "quit"},
}

var keyHelpPassport = []keyHelpEntry{
	{key: "j/k", label: "navigate"},
	{key: "h/l", label: "collapse/expand"},
	{key: "d", label: "developer mode"},
	{key: "y", label: "copy"},
	{key: "esc", label: "back"},
}

var keyHelpRaw = []keyHelpEntry{
	{key: "↑/↓", label: "scroll"},
	{key: "y", label: "copy"},
	{key: "esc", label: "back"},
}

var keyHelpEditModal = []keyHelpEntry{
	{key: "enter", label: "apply"},
	{key: "ctrl+u", label: "clear"},
	{key: "esc", label: "cancel"},
}

// elementKeyHelp is state-dependent: viewing offers entering edit mode,
// editing offers the leaf actions and save.
func (m *model) elementKeyHelp() []keyHelpEntry {
	base := []keyHelpEntry{
		{key: "j/k", label: "navigate"},
		{key: "h/l", label: "collapse/expand"},
	}
	if m.session == nil || m.session.State() != editor.StateEditing {
		return append(base,
			keyHelpEntry{key: "e", label: "edit mode"},
			keyHelpEntry{key: "p", label: "passport"},
			keyHelpEntry{key: "v", label: "raw"},
			keyHelpEntry{key: "y", label: "copy path"},
			keyHelpEntry{key: "esc", label: "back"},
		)
	}
	help := append(base,
		keyHelpEntry{key: "enter", label: "edit value"},
	)
	if node := m.tree.SelectedNode(); node != nil {
		if node.Type == NodeTypeLang {
			help = append(help, keyHelpEntry{key: "x", label: "remove language"})
		} else {
			help = append(help, keyHelpEntry{key: "a", label: "add language"})
		}
	}
	return append(help,
		keyHelpEntry{key: "ctrl+s", label: "save"},
		keyHelpEntry{key: "esc", label: "cancel"},
	)
}
