package tui

import (
	"errors"
	"testing"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/twinsight/aasview/internal/api"
	"github.com/twinsight/aasview/internal/app"
	"github.com/twinsight/aasview/internal/editor"
)

// newElementModel builds a model sitting in the element view with an
// editing session over the nameplate fixture.
func newElementModel(t *testing.T) *model {
	t.Helper()
	sm := decodeNameplate(t)
	m := &model{
		view:    viewElements,
		asset:   &api.AssetShell{ID: "urn:example:aas:1"},
		tree:    NewTreeState(BuildSubmodelTree(sm)),
		session: editor.NewSession("urn:example:aas:1", sm),
		spinner: spinner.New(),
	}
	m.session.Begin()
	return m
}

// dispatchSave mirrors the ctrl+s handler: the request is frozen on the
// event loop and only the network call runs elsewhere.
func dispatchSave(t *testing.T, m *model) *editor.SaveRequest {
	t.Helper()
	req, err := m.session.StartSave()
	if err != nil {
		t.Fatalf("StartSave: %v", err)
	}
	m.saveStatus = app.SaveStatusSaving
	return req
}

func TestUpdate_StaleSaveResultAfterDiscard(t *testing.T) {
	m := newElementModel(t)
	if err := m.session.Set("SerialNumber", "SN-2222"); err != nil {
		t.Fatal(err)
	}
	req := dispatchSave(t, m)

	// The user backs out while the request is in flight.
	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if !m.discardConfirm {
		t.Fatal("leaving a dirty session should ask for confirmation")
	}
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'y'}})
	if m.session.State() != editor.StateViewing || m.session.Dirty() {
		t.Fatalf("discard did not cancel the session: state=%q dirty=%v",
			m.session.State(), m.session.Dirty())
	}

	// The response lands afterwards. It must not resurrect the buffer,
	// claim success, or trigger a refetch.
	_, cmd := m.Update(saveResultMsg{req: req, err: nil})
	if m.session.Dirty() {
		t.Error("stale result resurrected the discarded buffer")
	}
	if m.saveStatus == app.SaveStatusSuccess || m.statusMsg == "Saved!" {
		t.Errorf("stale result reported success: status=%q msg=%q", m.saveStatus, m.statusMsg)
	}
	if m.fetchStatus == app.FetchStatusLoading || cmd != nil {
		t.Error("stale result should not refetch the asset")
	}
}

func TestUpdate_StaleSaveFailureAfterDiscard(t *testing.T) {
	m := newElementModel(t)
	if err := m.session.Set("SerialNumber", "SN-2222"); err != nil {
		t.Fatal(err)
	}
	req := dispatchSave(t, m)
	m.session.Cancel()

	m.Update(saveResultMsg{req: req, err: errors.New("timeout")})
	if m.saveStatus == app.SaveStatusError || m.statusMsg != "" {
		t.Errorf("stale failure surfaced to the user: status=%q msg=%q", m.saveStatus, m.statusMsg)
	}
	if m.session.State() != editor.StateViewing {
		t.Errorf("stale failure re-entered edit mode: state=%q", m.session.State())
	}
}

func TestUpdate_SaveResultAppliedOnEventLoop(t *testing.T) {
	m := newElementModel(t)
	if err := m.session.Set("SerialNumber", "SN-2222"); err != nil {
		t.Fatal(err)
	}
	req := dispatchSave(t, m)

	_, cmd := m.Update(saveResultMsg{req: req, err: nil})
	if m.session.State() != editor.StateViewing || m.session.Dirty() {
		t.Errorf("save result not applied: state=%q dirty=%v",
			m.session.State(), m.session.Dirty())
	}
	if m.saveStatus != app.SaveStatusSuccess || m.statusMsg != "Saved!" {
		t.Errorf("status=%q msg=%q", m.saveStatus, m.statusMsg)
	}
	if m.fetchStatus != app.FetchStatusLoading || cmd == nil {
		t.Error("successful save should refetch the asset")
	}
}

func TestUpdate_SaveFailureKeepsEditing(t *testing.T) {
	m := newElementModel(t)
	if err := m.session.Set("SerialNumber", "SN-2222"); err != nil {
		t.Fatal(err)
	}
	req := dispatchSave(t, m)

	m.Update(saveResultMsg{req: req, err: errors.New("connection refused")})
	if m.session.State() != editor.StateEditing || !m.session.Dirty() {
		t.Errorf("failed save should keep the edits: state=%q dirty=%v",
			m.session.State(), m.session.Dirty())
	}
	if m.saveStatus != app.SaveStatusError {
		t.Errorf("saveStatus = %q, want error", m.saveStatus)
	}
}
