package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/twinsight/aasview/internal/aas"
	"github.com/twinsight/aasview/internal/api"
	"github.com/twinsight/aasview/internal/app"
	"github.com/twinsight/aasview/internal/dpp"
	"github.com/twinsight/aasview/internal/editor"
)

// Views the browser can show. Navigation descends assets → submodels →
// elements; passport and raw are side views reachable from an asset.
const (
	viewAssets = iota
	viewSubmodels
	viewElements
	viewPassport
	viewRaw
)

const fetchTimeout = 30 * time.Second

type model struct {
	client *api.Client

	width  int
	height int
	view   int

	fetchStatus string // app.FetchStatus*
	fetchErr    string

	// Asset listing
	assets      []api.AssetShell
	assetCursor int

	// Selected asset and its decoded submodels
	asset          *api.AssetShell
	submodels      []*aas.Submodel
	submodelCursor int

	// Element tree of the opened submodel, plus its edit session
	tree        *TreeState
	session     *editor.Session
	saveStatus  string            // app.SaveStatus*
	fieldErrors map[string]string // path → validation message from last save

	// Rendered passport sections
	passport      *TreeState
	sections      []dpp.SectionInfo
	developerMode bool

	// Raw view content (highlighted for display, plain for copying)
	// and where to return to
	rawContent string
	rawPlain   string
	rawReturn  int
	viewport   viewport.Model

	spinner spinner.Model

	editModal *editModalState

	// Pending discard confirmation when leaving a dirty session
	discardConfirm bool

	statusMsg string
}

func (m *model) Init() tea.Cmd {
	if m.asset != nil {
		// Launched with an asset id already resolved.
		return nil
	}
	m.fetchStatus = app.FetchStatusLoading
	return tea.Batch(m.spinner.Tick, loadAssetsCmd(m.client))
}

// dirty reports whether leaving the current submodel would lose edits.
func (m *model) dirty() bool {
	return m.session != nil && m.session.Dirty()
}

// currentSubmodel returns the submodel under the cursor, or nil.
func (m *model) currentSubmodel() *aas.Submodel {
	if m.submodelCursor < 0 || m.submodelCursor >= len(m.submodels) {
		return nil
	}
	return m.submodels[m.submodelCursor]
}

// openSubmodel switches to the element view for one submodel, with a
// fresh viewing session.
func (m *model) openSubmodel(sm *aas.Submodel) {
	m.tree = NewTreeState(BuildSubmodelTree(sm))
	m.session = editor.NewSession(m.asset.ID, sm)
	m.saveStatus = app.SaveStatusIdle
	m.fieldErrors = nil
	m.view = viewElements
}

// openPassport computes the passport sections locally from the decoded
// submodels and builds a navigable render tree over them.
func (m *model) openPassport() {
	src := dpp.NewSource(m.asset.ID, m.submodels)
	m.sections = dpp.ListSections(src)

	root := &TreeNode{ID: "passport", Label: "Digital Product Passport", Expanded: true}
	for _, info := range m.sections {
		node := &TreeNode{
			ID:         "section:" + info.ID,
			Label:      info.Title,
			Badge:      "[" + info.Status + "]",
			Type:       NodeTypeSection,
			Actionable: true,
		}
		if info.Status != dpp.StatusUnavailable {
			if section := dpp.ProcessSection(src, info.ID, false); section != nil {
				rendered := renderSectionTree(info.ID, section, m.developerMode)
				node.Children = rendered.Children
			}
		}
		root.Children = append(root.Children, node)
	}
	m.passport = NewTreeState(root)
	m.view = viewPassport
}

// renderSectionTree runs the presentation renderer over one section's
// cleaned data and converts the result to tree nodes.
func renderSectionTree(id string, section *dpp.Section, developerMode bool) *TreeNode {
	rendered := renderOpts(section.Data, developerMode)
	return BuildRenderTree(id, rendered)
}

// Messages

type assetsLoadedMsg struct {
	assets []api.AssetShell
	err    error
}

type assetLoadedMsg struct {
	asset     *api.AssetShell
	submodels []*aas.Submodel
	err       error
}

type saveResultMsg struct {
	req *editor.SaveRequest
	err error
}

// Commands

func loadAssetsCmd(client *api.Client) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()
		assets, err := client.ListAssets(ctx)
		return assetsLoadedMsg{assets: assets, err: err}
	}
}

func loadAssetCmd(client *api.Client, aasID string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()
		asset, err := client.GetAsset(ctx, aasID)
		if err != nil {
			return assetLoadedMsg{err: err}
		}
		return assetLoadedMsg{asset: asset, submodels: asset.DecodedSubmodels()}
	}
}

// saveCmd performs only the network call. The session is prepared before
// dispatch and the result is applied in Update, so all session state stays
// on the event-loop goroutine.
func saveCmd(client *api.Client, req *editor.SaveRequest) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()
		err := client.UpdateSubmodelData(ctx, req.AASID, req.SubmodelID, req.Patch)
		return saveResultMsg{req: req, err: err}
	}
}
