package tui

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/twinsight/aasview/internal/aas"
	"github.com/twinsight/aasview/internal/editor"
)

// editModalState holds the value editor for one leaf.
type editModalState struct {
	path      string
	lang      string // non-empty when editing one language entry
	label     string
	valueType aas.ValueType // set for typed properties
	input     textinput.Model
	errMsg    string
}

// openEditModal opens the value editor for the selected node, prefilled
// with the pending edit when one exists, else the stored value.
func (m *model) openEditModal() (tea.Model, tea.Cmd) {
	node := m.tree.SelectedNode()
	if node == nil {
		return m, nil
	}
	path, lang := elementPathOf(node)

	el, ok := aas.Resolve(m.session.Submodel(), path)
	if !ok {
		m.statusMsg = "Element not found"
		return m, clearStatusAfter(2 * time.Second)
	}

	state := &editModalState{path: path, lang: lang, label: node.Label}
	pending := m.session.Pending()

	switch typed := el.(type) {
	case *aas.Property:
		state.valueType = typed.ValueType
		if v, ok := pending[path]; ok {
			state.input = newEditInput(editableString(v))
		} else {
			state.input = newEditInput(editableString(typed.Value))
		}
	case *aas.File:
		if v, ok := pending[path]; ok {
			state.input = newEditInput(editableString(v))
		} else {
			state.input = newEditInput(typed.Value)
		}
	case *aas.MultiLanguageProperty:
		if lang == "" {
			// The property row itself just expands; languages are edited
			// one entry at a time.
			m.tree.Expand()
			return m, nil
		}
		entries := m.workingEntries(path, typed)
		for _, e := range entries {
			if e.Language == lang {
				state.input = newEditInput(e.Text)
			}
		}
	default:
		m.statusMsg = "Element is read-only"
		return m, clearStatusAfter(2 * time.Second)
	}

	m.editModal = state
	return m, textinput.Blink
}

// editableString renders a stored value for the input field, without the
// truncation the tree preview applies.
func editableString(v any) string {
	if v == nil {
		return ""
	}
	return fmt.Sprintf("%v", v)
}

func newEditInput(value string) textinput.Model {
	ti := textinput.New()
	ti.Prompt = ""
	ti.CharLimit = 2048
	ti.Width = 60
	ti.SetValue(value)
	ti.CursorEnd()
	ti.Focus()
	return ti
}

func (m *model) handleEditModalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	state := m.editModal

	switch msg.String() {
	case "esc", "ctrl+g":
		m.editModal = nil
		return m, nil
	case "ctrl+u":
		state.input.SetValue("")
		return m, nil
	case "ctrl+c":
		return m, tea.Quit
	case "enter":
		value := state.input.Value()

		if state.lang != "" {
			if err := m.session.SetLanguageText(state.path, state.lang, value); err != nil {
				state.errMsg = err.Error()
				return m, nil
			}
			m.refreshLangNodes(state.path)
			m.editModal = nil
			return m, nil
		}

		if state.valueType != "" {
			if result := aas.Validate(value, state.valueType); !result.OK {
				state.errMsg = result.Message
				return m, nil
			}
		}
		if err := m.session.Set(state.path, value); err != nil {
			state.errMsg = err.Error()
			return m, nil
		}
		delete(m.fieldErrors, state.path)
		m.editModal = nil
		return m, nil
	}

	var cmd tea.Cmd
	state.input, cmd = state.input.Update(msg)
	state.errMsg = ""
	return m, cmd
}

// addLanguage adds the next missing language to the selected
// multi-language property.
func (m *model) addLanguage() (tea.Model, tea.Cmd) {
	node := m.tree.SelectedNode()
	if node == nil {
		return m, nil
	}
	path, _ := elementPathOf(node)

	lang, err := m.session.AddLanguage(path)
	switch {
	case errors.Is(err, editor.ErrNoLanguagesLeft):
		m.statusMsg = "All supported languages already present"
	case errors.Is(err, editor.ErrNotEditable):
		m.statusMsg = "Not a multi-language property"
	case err != nil:
		m.statusMsg = err.Error()
	default:
		m.refreshLangNodes(path)
		m.tree.ExpandToNode(path + langSeparator + lang)
		m.tree.SelectByID(path + langSeparator + lang)
		m.statusMsg = "Added " + aas.LanguageName(lang)
	}
	return m, clearStatusAfter(2 * time.Second)
}

// removeLanguage drops the selected language entry.
func (m *model) removeLanguage() (tea.Model, tea.Cmd) {
	node := m.tree.SelectedNode()
	if node == nil || node.Type != NodeTypeLang {
		return m, nil
	}
	path, lang := elementPathOf(node)

	if err := m.session.RemoveLanguage(path, lang); err != nil {
		m.statusMsg = err.Error()
		return m, clearStatusAfter(2 * time.Second)
	}
	m.refreshLangNodes(path)
	m.tree.SelectByID(path)
	m.statusMsg = "Removed " + aas.LanguageName(lang)
	return m, clearStatusAfter(2 * time.Second)
}

// workingEntries returns the language entries as the session currently
// sees them: buffered edits win over the stored value.
func (m *model) workingEntries(path string, mlp *aas.MultiLanguageProperty) []aas.LangString {
	if buffered, ok := m.session.Pending()[path].([]aas.LangString); ok {
		return buffered
	}
	return mlp.Value
}

// refreshLangNodes rebuilds the language children of one multi-language
// property node from the session's working entries.
func (m *model) refreshLangNodes(path string) {
	node := m.tree.findByID(m.tree.Root.Children, path)
	if node == nil {
		return
	}
	el, ok := aas.Resolve(m.session.Submodel(), path)
	if !ok {
		return
	}
	mlp, ok := el.(*aas.MultiLanguageProperty)
	if !ok {
		return
	}

	entries := m.workingEntries(path, mlp)
	node.Value = preferredLanguageText(entries)
	node.Children = nil
	for _, entry := range entries {
		node.Children = append(node.Children, &TreeNode{
			ID:         path + langSeparator + entry.Language,
			Label:      languageLabel(entry.Language),
			Value:      entry.Text,
			Type:       NodeTypeLang,
			Actionable: true,
		})
	}
	node.Expanded = true
}
