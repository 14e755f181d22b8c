package tui

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/twinsight/aasview/internal/app"
	"github.com/twinsight/aasview/internal/editor"
)

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.syncViewport()
		return m, nil

	case assetsLoadedMsg:
		return m.handleAssetsLoaded(msg)

	case assetLoadedMsg:
		return m.handleAssetLoaded(msg)

	case saveResultMsg:
		return m.handleSaveResult(msg)

	case clearStatusMsg:
		m.statusMsg = ""
		return m, nil

	case spinner.TickMsg:
		if m.fetchStatus != app.FetchStatusLoading && m.saveStatus != app.SaveStatusSaving {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.MouseMsg:
		if m.view == viewRaw {
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}

	return m, nil
}

func (m *model) handleAssetsLoaded(msg assetsLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.fetchStatus = app.FetchStatusBad
		m.fetchErr = msg.err.Error()
		return m, nil
	}
	m.fetchStatus = app.FetchStatusOK
	m.fetchErr = ""
	m.assets = msg.assets
	if m.assetCursor >= len(m.assets) {
		m.assetCursor = 0
	}
	return m, nil
}

func (m *model) handleAssetLoaded(msg assetLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.fetchStatus = app.FetchStatusBad
		m.statusMsg = "Load failed: " + msg.err.Error()
		return m, clearStatusAfter(3 * time.Second)
	}
	m.fetchStatus = app.FetchStatusOK
	m.asset = msg.asset
	m.submodels = msg.submodels
	if m.submodelCursor >= len(m.submodels) {
		m.submodelCursor = 0
	}

	// A reload while an element tree is open (post-save refresh) rebuilds
	// the tree in place, preserving the cursor where the path survives.
	if m.view == viewElements && m.tree != nil {
		selected := ""
		if node := m.tree.SelectedNode(); node != nil {
			selected = node.ID
		}
		smID := ""
		if m.session != nil {
			smID = m.session.Submodel().ID
		}
		for i, sm := range m.submodels {
			if sm.ID == smID {
				m.submodelCursor = i
				m.openSubmodel(sm)
				if selected != "" {
					m.tree.ExpandToNode(selected)
					m.tree.SelectByID(selected)
				}
				return m, nil
			}
		}
		// Submodel gone: fall back to the submodel list.
		m.tree = nil
		m.session = nil
		m.view = viewSubmodels
		return m, nil
	}

	if m.view == viewAssets {
		m.view = viewSubmodels
	}
	return m, nil
}

func (m *model) handleSaveResult(msg saveResultMsg) (tea.Model, tea.Cmd) {
	if m.session == nil {
		// The submodel was closed while the request was in flight.
		return m, nil
	}

	applied, err := m.session.FinishSave(msg.req, msg.err)
	if !applied {
		// Cancelled mid-flight; the result is stale.
		m.saveStatus = app.SaveStatusIdle
		return m, nil
	}
	if err != nil {
		return m.reportSaveError(err)
	}

	m.saveStatus = app.SaveStatusSuccess
	m.fieldErrors = nil
	m.statusMsg = "Saved!"

	// The repository is the source of truth; refetch so the tree shows
	// what was actually stored.
	m.fetchStatus = app.FetchStatusLoading
	return m, tea.Batch(
		m.spinner.Tick,
		loadAssetCmd(m.client, m.asset.ID),
		clearStatusAfter(2*time.Second),
	)
}

// reportSaveError surfaces a failed save: validation failures annotate the
// offending fields, anything else shows as a plain failure line.
func (m *model) reportSaveError(err error) (tea.Model, tea.Cmd) {
	m.saveStatus = app.SaveStatusError

	var verr *editor.ValidationError
	if errors.As(err, &verr) {
		m.fieldErrors = make(map[string]string, len(verr.Fields))
		for _, f := range verr.Fields {
			m.fieldErrors[f.Path] = f.Message
		}
		m.statusMsg = fmt.Sprintf("%d invalid fields; fix them and save again", len(verr.Fields))
		return m, clearStatusAfter(4 * time.Second)
	}

	m.statusMsg = "Save failed: " + err.Error()
	return m, clearStatusAfter(4 * time.Second)
}
