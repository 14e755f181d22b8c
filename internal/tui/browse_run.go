package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/twinsight/aasview/internal/api"
	"github.com/twinsight/aasview/internal/app"
)

// Browse launches the interactive repository browser. When assetID is
// non-empty the browser opens that asset directly instead of the asset
// list.
func Browse(client *api.Client, assetID string) error {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	m := &model{
		client:      client,
		viewport:    viewport.New(0, 0),
		spinner:     sp,
		fetchStatus: app.FetchStatusIdle,
	}

	if assetID != "" {
		// Resolve the initial asset synchronously so a bad id fails with
		// a normal CLI error instead of an empty screen.
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()
		asset, err := client.GetAsset(ctx, assetID)
		if err != nil {
			return fmt.Errorf("load asset %q: %w", assetID, err)
		}
		m.asset = asset
		m.submodels = asset.DecodedSubmodels()
		m.view = viewSubmodels
		m.fetchStatus = app.FetchStatusOK
	}

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}

// syncViewport resizes the raw-view viewport and refreshes its content.
func (m *model) syncViewport() {
	m.viewport.Width = clampMin(m.width-2-4, 0)
	m.viewport.Height = m.bodyHeight()
	if m.rawContent != "" {
		m.viewport.SetContent(m.rawContent)
	}
}
