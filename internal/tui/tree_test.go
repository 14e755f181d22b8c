package tui

import (
	"testing"
)

// A small element-shaped tree: two containers and a leaf property.
func makeTestTree() *TreeNode {
	return &TreeNode{
		ID:    "Nameplate",
		Label: "Nameplate",
		Type:  NodeTypeSubmodel,
		Children: []*TreeNode{
			{
				ID:         "ContactInformation",
				Label:      "ContactInformation",
				Type:       NodeTypeElement,
				Actionable: true,
				Children: []*TreeNode{
					{ID: "ContactInformation/Street", Label: "Street", Type: NodeTypeValue, Actionable: true},
					{ID: "ContactInformation/City", Label: "City", Type: NodeTypeValue, Actionable: true},
				},
			},
			{
				ID:         "Markings",
				Label:      "Markings",
				Type:       NodeTypeElement,
				Actionable: true,
				Children: []*TreeNode{
					{ID: "Markings/CE", Label: "CE", Type: NodeTypeValue, Actionable: true},
				},
			},
			{
				ID:         "ManufacturerName",
				Label:      "ManufacturerName",
				Type:       NodeTypeValue,
				Actionable: true,
			},
		},
	}
}

func TestNewTreeState_SelectsFirstNode(t *testing.T) {
	ts := NewTreeState(makeTestTree())

	selected := ts.SelectedNode()
	if selected == nil {
		t.Fatal("Should have selected a node")
	}
	if selected.ID != "ContactInformation" {
		t.Errorf("Expected 'ContactInformation', got %q", selected.ID)
	}
}

func TestTreeState_MoveDownUp(t *testing.T) {
	ts := NewTreeState(makeTestTree())

	if !ts.MoveDown() {
		t.Error("MoveDown should succeed")
	}
	if ts.SelectedNode().ID != "Markings" {
		t.Errorf("Expected 'Markings', got %q", ts.SelectedNode().ID)
	}

	ts.MoveDown()
	if ts.SelectedNode().ID != "ManufacturerName" {
		t.Errorf("Expected 'ManufacturerName', got %q", ts.SelectedNode().ID)
	}
	if ts.MoveDown() {
		t.Error("MoveDown at end should return false")
	}

	ts.MoveUp()
	ts.MoveUp()
	if ts.SelectedNode().ID != "ContactInformation" {
		t.Errorf("Expected 'ContactInformation', got %q", ts.SelectedNode().ID)
	}
	if ts.MoveUp() {
		t.Error("MoveUp at start should return false")
	}
}

func TestTreeState_NavigateExpanded(t *testing.T) {
	ts := NewTreeState(makeTestTree())

	ts.Expand()
	ts.MoveDown()
	if ts.SelectedNode().ID != "ContactInformation/Street" {
		t.Errorf("Expected 'ContactInformation/Street', got %q", ts.SelectedNode().ID)
	}

	ts.MoveDown()
	ts.MoveDown()
	if ts.SelectedNode().ID != "Markings" {
		t.Errorf("Expected 'Markings', got %q", ts.SelectedNode().ID)
	}
}

func TestTreeState_ExpandCollapse(t *testing.T) {
	ts := NewTreeState(makeTestTree())
	node := ts.SelectedNode()

	if node.Expanded {
		t.Error("Containers should start collapsed")
	}
	if !ts.Expand() {
		t.Error("Expand should succeed")
	}
	if ts.Expand() {
		t.Error("Expand on already expanded should return false")
	}
	if !ts.Collapse() {
		t.Error("Collapse should succeed")
	}
	if node.Expanded {
		t.Error("Node should be collapsed")
	}
}

func TestTreeState_VisibleNodes(t *testing.T) {
	ts := NewTreeState(makeTestTree())

	visible := ts.VisibleNodes()
	if len(visible) != 3 {
		t.Errorf("Expected 3 visible nodes when collapsed, got %d", len(visible))
	}

	ts.ExpandAll()
	visible = ts.VisibleNodes()
	if len(visible) != 6 {
		t.Errorf("Expected 6 visible nodes when expanded, got %d", len(visible))
	}
	if visible[1].ID != "ContactInformation/Street" || visible[1].Depth != 1 {
		t.Errorf("Expected depth-1 Street at index 1, got %q depth %d", visible[1].ID, visible[1].Depth)
	}

	ts.CollapseAll()
	if len(ts.VisibleNodes()) != 3 {
		t.Error("CollapseAll should hide all children")
	}
}

func TestTreeState_SiblingNavigation(t *testing.T) {
	ts := NewTreeState(makeTestTree())

	ts.Expand()
	ts.MoveDown() // Street

	if !ts.MoveToNextSibling() {
		t.Error("MoveToNextSibling should succeed")
	}
	if ts.SelectedNode().ID != "ContactInformation/City" {
		t.Errorf("Expected 'ContactInformation/City', got %q", ts.SelectedNode().ID)
	}

	if !ts.MoveToPrevSibling() {
		t.Error("MoveToPrevSibling should succeed")
	}
	if ts.SelectedNode().ID != "ContactInformation/Street" {
		t.Errorf("Expected 'ContactInformation/Street', got %q", ts.SelectedNode().ID)
	}
}

func TestTreeState_SelectByID(t *testing.T) {
	ts := NewTreeState(makeTestTree())

	if !ts.SelectByID("Markings/CE") {
		t.Error("SelectByID should find nested node")
	}
	if ts.SelectedNode().ID != "Markings/CE" {
		t.Errorf("Expected 'Markings/CE', got %q", ts.SelectedNode().ID)
	}

	if ts.SelectByID("nope") {
		t.Error("SelectByID should return false for unknown id")
	}
}

func TestTreeState_ExpandToNode(t *testing.T) {
	ts := NewTreeState(makeTestTree())

	ts.ExpandToNode("ContactInformation/City")
	markings := ts.Root.Children[1]
	contact := ts.Root.Children[0]
	if !contact.Expanded {
		t.Error("Ancestor should be expanded")
	}
	if markings.Expanded {
		t.Error("Unrelated container should stay collapsed")
	}
}

func TestTreeState_MoveToFirstLast(t *testing.T) {
	ts := NewTreeState(makeTestTree())
	ts.ExpandAll()

	ts.MoveToLast()
	if ts.SelectedNode().ID != "ManufacturerName" {
		t.Errorf("Expected 'ManufacturerName', got %q", ts.SelectedNode().ID)
	}

	ts.MoveToFirst()
	if ts.SelectedNode().ID != "ContactInformation" {
		t.Errorf("Expected 'ContactInformation', got %q", ts.SelectedNode().ID)
	}
}
