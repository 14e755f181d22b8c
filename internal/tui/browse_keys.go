package tui

import (
	"encoding/json"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/twinsight/aasview/internal/aas"
	"github.com/twinsight/aasview/internal/app"
	"github.com/twinsight/aasview/internal/editor"
)

// clearStatusAfter returns a command that clears the status after duration.
func clearStatusAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return clearStatusMsg{}
	})
}

// clearStatusMsg is sent after a delay to clear the status message.
type clearStatusMsg struct{}

func (m *model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.editModal != nil {
		return m.handleEditModalKeys(msg)
	}
	if m.discardConfirm {
		return m.handleDiscardConfirmKeys(msg)
	}

	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.view {
	case viewAssets:
		return m.handleAssetKeys(msg)
	case viewSubmodels:
		return m.handleSubmodelKeys(msg)
	case viewElements:
		return m.handleElementKeys(msg)
	case viewPassport:
		return m.handlePassportKeys(msg)
	case viewRaw:
		return m.handleRawKeys(msg)
	}
	return m, nil
}

// handleDiscardConfirmKeys gates leaving a dirty edit session.
func (m *model) handleDiscardConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		m.discardConfirm = false
		m.session.Cancel()
		m.fieldErrors = nil
		m.statusMsg = "Edits discarded"
		return m, clearStatusAfter(2 * time.Second)
	case "n", "N", "esc", "c", "C":
		m.discardConfirm = false
		m.statusMsg = ""
		return m, nil
	}
	// Consume everything else while the prompt is up.
	return m, nil
}

func (m *model) handleAssetKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		return m, tea.Quit
	case "j", "down":
		if m.assetCursor < len(m.assets)-1 {
			m.assetCursor++
		}
		return m, nil
	case "k", "up":
		if m.assetCursor > 0 {
			m.assetCursor--
		}
		return m, nil
	case "g":
		m.assetCursor = 0
		return m, nil
	case "G":
		if len(m.assets) > 0 {
			m.assetCursor = len(m.assets) - 1
		}
		return m, nil
	case "ctrl+r":
		m.fetchStatus = app.FetchStatusLoading
		return m, tea.Batch(m.spinner.Tick, loadAssetsCmd(m.client))
	case "enter", "l", "right":
		if m.assetCursor < len(m.assets) {
			m.fetchStatus = app.FetchStatusLoading
			return m, tea.Batch(m.spinner.Tick, loadAssetCmd(m.client, m.assets[m.assetCursor].ID))
		}
		return m, nil
	}
	return m, nil
}

func (m *model) handleSubmodelKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "esc", "h", "left":
		m.asset = nil
		m.submodels = nil
		m.view = viewAssets
		m.fetchStatus = app.FetchStatusLoading
		return m, tea.Batch(m.spinner.Tick, loadAssetsCmd(m.client))
	case "j", "down":
		if m.submodelCursor < len(m.submodels)-1 {
			m.submodelCursor++
		}
		return m, nil
	case "k", "up":
		if m.submodelCursor > 0 {
			m.submodelCursor--
		}
		return m, nil
	case "ctrl+r":
		m.fetchStatus = app.FetchStatusLoading
		return m, tea.Batch(m.spinner.Tick, loadAssetCmd(m.client, m.asset.ID))
	case "enter", "l", "right":
		if sm := m.currentSubmodel(); sm != nil {
			m.openSubmodel(sm)
		}
		return m, nil
	case "p":
		m.openPassport()
		return m, nil
	case "r":
		if sm := m.currentSubmodel(); sm != nil {
			m.showRaw(sm.Raw(), viewSubmodels)
		}
		return m, nil
	}
	return m, nil
}

func (m *model) handleElementKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	editing := m.session.State() == editor.StateEditing
	saving := m.session.State() == editor.StateSaving
	// Other fields stay editable while a save is in flight; their edits
	// join the next batch.
	canEdit := editing || saving

	switch msg.String() {
	case "q":
		if m.dirty() {
			return m.confirmDiscard()
		}
		return m, tea.Quit
	case "esc", "h", "left":
		if msg.String() != "esc" {
			// h/left collapse before navigating away.
			if m.tree.Collapse() {
				return m, nil
			}
		}
		if m.dirty() {
			return m.confirmDiscard()
		}
		if editing {
			m.session.Cancel()
			m.fieldErrors = nil
			m.statusMsg = "View mode"
			return m, clearStatusAfter(2 * time.Second)
		}
		m.tree = nil
		m.session = nil
		m.view = viewSubmodels
		return m, nil

	case "j", "down":
		m.tree.MoveDown()
		return m, nil
	case "k", "up":
		m.tree.MoveUp()
		return m, nil
	case "g", "shift+up":
		m.tree.MoveToFirst()
		return m, nil
	case "G", "shift+down":
		m.tree.MoveToLast()
		return m, nil
	case "alt+down":
		m.tree.MoveToNextSibling()
		return m, nil
	case "alt+up":
		m.tree.MoveToPrevSibling()
		return m, nil
	case "l", "right":
		m.tree.Expand()
		return m, nil
	case "shift+right":
		m.tree.ExpandAll()
		return m, nil
	case "shift+left":
		m.tree.CollapseAll()
		return m, nil

	case "e":
		if !canEdit {
			m.session.Begin()
			m.statusMsg = "Edit mode"
			return m, clearStatusAfter(2 * time.Second)
		}
		return m.openEditModal()

	case "enter", " ":
		if canEdit {
			return m.openEditModal()
		}
		m.tree.Toggle()
		return m, nil

	case "a":
		if !canEdit {
			return m, nil
		}
		return m.addLanguage()

	case "x":
		if !canEdit {
			return m, nil
		}
		return m.removeLanguage()

	case "ctrl+s":
		if !editing || saving {
			return m, nil
		}
		if !m.session.Dirty() {
			m.session.Cancel()
			m.statusMsg = "No changes"
			return m, clearStatusAfter(2 * time.Second)
		}
		req, err := m.session.StartSave()
		if err != nil {
			return m.reportSaveError(err)
		}
		if req == nil {
			m.statusMsg = "No changes"
			return m, clearStatusAfter(2 * time.Second)
		}
		m.saveStatus = app.SaveStatusSaving
		m.statusMsg = "Saving..."
		return m, tea.Batch(m.spinner.Tick, saveCmd(m.client, req))

	case "y":
		node := m.tree.SelectedNode()
		if node == nil {
			return m, nil
		}
		path, _ := elementPathOf(node)
		return m.copyToClipboard(path, "Path copied!")
	case "Y":
		node := m.tree.SelectedNode()
		if node == nil {
			return m, nil
		}
		return m.copyToClipboard(node.Value, "Value copied!")

	case "v":
		node := m.tree.SelectedNode()
		if node == nil {
			return m, nil
		}
		path, _ := elementPathOf(node)
		if el, ok := aas.Resolve(m.session.Submodel(), path); ok {
			m.showRaw(el.Raw(), viewElements)
		}
		return m, nil

	case "p":
		if m.dirty() {
			return m.confirmDiscard()
		}
		m.openPassport()
		return m, nil
	}
	return m, nil
}

func (m *model) handlePassportKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "esc":
		m.passport = nil
		m.view = viewSubmodels
		return m, nil
	case "j", "down":
		m.passport.MoveDown()
		return m, nil
	case "k", "up":
		m.passport.MoveUp()
		return m, nil
	case "g":
		m.passport.MoveToFirst()
		return m, nil
	case "G":
		m.passport.MoveToLast()
		return m, nil
	case "l", "right", "enter", " ":
		m.passport.Toggle()
		return m, nil
	case "h", "left":
		m.passport.Collapse()
		return m, nil
	case "shift+right":
		m.passport.ExpandAll()
		return m, nil
	case "shift+left":
		m.passport.CollapseAll()
		return m, nil
	case "d":
		m.developerMode = !m.developerMode
		m.openPassport()
		if m.developerMode {
			m.statusMsg = "Developer mode on"
		} else {
			m.statusMsg = "Developer mode off"
		}
		return m, clearStatusAfter(2 * time.Second)
	case "y":
		if node := m.passport.SelectedNode(); node != nil && node.Value != "" {
			return m.copyToClipboard(node.Value, "Value copied!")
		}
		return m, nil
	}
	return m, nil
}

func (m *model) handleRawKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		m.rawContent = ""
		m.view = m.rawReturn
		return m, nil
	case "y":
		return m.copyToClipboard(m.rawPlain, "Copied!")
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *model) confirmDiscard() (tea.Model, tea.Cmd) {
	m.discardConfirm = true
	m.statusMsg = "Discard unsaved edits? (y/n)"
	return m, nil
}

func (m *model) copyToClipboard(text, okMsg string) (tea.Model, tea.Cmd) {
	if text == "" {
		return m, nil
	}
	if err := clipboard.WriteAll(text); err != nil {
		m.statusMsg = "Copy failed"
	} else {
		m.statusMsg = okMsg
	}
	return m, clearStatusAfter(2 * time.Second)
}

// showRaw switches to the raw view with pretty-printed, highlighted JSON.
func (m *model) showRaw(raw json.RawMessage, returnView int) {
	pretty := raw
	var buf any
	if err := json.Unmarshal(raw, &buf); err == nil {
		if out, err := json.MarshalIndent(buf, "", "  "); err == nil {
			pretty = out
		}
	}
	m.rawPlain = string(pretty)
	m.rawContent = highlightOutput(m.rawPlain)
	m.rawReturn = returnView
	m.view = viewRaw
	m.syncViewport()
}
