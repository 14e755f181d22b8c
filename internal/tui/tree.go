package tui

// TreeNode is one row of a navigable tree. The same structure backs the
// submodel element tree and the rendered passport views; the builder
// decides what ID, badge and value mean for its domain.
type TreeNode struct {
	ID         string // unique within the tree (element path for submodel trees)
	Label      string
	Value      string // optional preview shown after the label
	Badge      string // optional tag, e.g. "[Property]"
	Type       string
	Children   []*TreeNode
	Expanded   bool
	Depth      int  // set while flattening visible rows
	Actionable bool // cursor may stop here even without children
}

func (n *TreeNode) IsLeaf() bool { return len(n.Children) == 0 }

// IsSelectable reports whether the cursor may stop on this node: either
// it is explicitly actionable or it can be expanded.
func (n *TreeNode) IsSelectable() bool { return n.Actionable || !n.IsLeaf() }

// TreeState pairs a tree with a cursor. Selection is held as a direct
// node pointer; nodes are owned by the tree for its whole lifetime, so
// the pointer stays valid until the tree is rebuilt.
type TreeState struct {
	Root     *TreeNode
	selected *TreeNode
}

// NewTreeState wraps root and puts the cursor on the first selectable row.
func NewTreeState(root *TreeNode) *TreeState {
	ts := &TreeState{Root: root}
	ts.MoveToFirst()
	return ts
}

// SelectedNode returns the node under the cursor, or nil for an empty tree.
func (ts *TreeState) SelectedNode() *TreeNode { return ts.selected }

// VisibleNodes flattens the tree into display order, honoring collapse
// state, and stamps each node's Depth.
func (ts *TreeState) VisibleNodes() []*TreeNode {
	if ts.Root == nil {
		return nil
	}
	var rows []*TreeNode
	var walk func(nodes []*TreeNode, depth int)
	walk = func(nodes []*TreeNode, depth int) {
		for _, n := range nodes {
			n.Depth = depth
			rows = append(rows, n)
			if n.Expanded {
				walk(n.Children, depth+1)
			}
		}
	}
	walk(ts.Root.Children, 0)
	return rows
}

// SelectedIndex returns the cursor's position among the visible rows,
// or -1 when the selection is collapsed out of view.
func (ts *TreeState) SelectedIndex() int {
	if ts.selected == nil {
		return -1
	}
	for i, n := range ts.VisibleNodes() {
		if n == ts.selected {
			return i
		}
	}
	return -1
}

// step moves the cursor by delta through the visible rows, skipping
// non-selectable ones. Reports whether the selection changed.
func (ts *TreeState) step(delta int) bool {
	rows := ts.VisibleNodes()
	idx := ts.SelectedIndex()
	if idx < 0 {
		return ts.MoveToFirst()
	}
	for i := idx + delta; i >= 0 && i < len(rows); i += delta {
		if rows[i].IsSelectable() {
			ts.selected = rows[i]
			return true
		}
	}
	return false
}

func (ts *TreeState) MoveDown() bool { return ts.step(1) }
func (ts *TreeState) MoveUp() bool   { return ts.step(-1) }

// MoveToFirst selects the first selectable visible row.
func (ts *TreeState) MoveToFirst() bool {
	for _, n := range ts.VisibleNodes() {
		if n.IsSelectable() {
			ts.selected = n
			return true
		}
	}
	return false
}

// MoveToLast selects the last selectable visible row.
func (ts *TreeState) MoveToLast() bool {
	rows := ts.VisibleNodes()
	for i := len(rows) - 1; i >= 0; i-- {
		if rows[i].IsSelectable() {
			ts.selected = rows[i]
			return true
		}
	}
	return false
}

// moveSibling jumps to the next/previous row at the cursor's depth,
// falling back to an ancestor when the subtree runs out.
func (ts *TreeState) moveSibling(delta int) bool {
	rows := ts.VisibleNodes()
	idx := ts.SelectedIndex()
	if idx < 0 || (delta < 0 && idx == 0) {
		return false
	}
	depth := rows[idx].Depth
	for i := idx + delta; i >= 0 && i < len(rows); i += delta {
		n := rows[i]
		if n.Depth > depth || !n.IsSelectable() {
			continue
		}
		// Same depth is a sibling; shallower means we left the
		// parent's subtree, so land on that ancestor instead.
		ts.selected = n
		return true
	}
	return false
}

func (ts *TreeState) MoveToNextSibling() bool { return ts.moveSibling(1) }
func (ts *TreeState) MoveToPrevSibling() bool { return ts.moveSibling(-1) }

// Expand opens the selected node. Reports whether anything changed.
func (ts *TreeState) Expand() bool {
	n := ts.selected
	if n == nil || n.IsLeaf() || n.Expanded {
		return false
	}
	n.Expanded = true
	return true
}

// Collapse closes the selected node, or jumps to its parent when it is
// already closed (or a leaf).
func (ts *TreeState) Collapse() bool {
	n := ts.selected
	if n == nil {
		return false
	}
	if n.Expanded && !n.IsLeaf() {
		n.Expanded = false
		return true
	}
	if parent := ts.parentOf(n); parent != nil {
		ts.selected = parent
		return true
	}
	return false
}

// Toggle flips the expansion of the selected node.
func (ts *TreeState) Toggle() bool {
	n := ts.selected
	if n == nil || n.IsLeaf() {
		return false
	}
	n.Expanded = !n.Expanded
	return true
}

// ExpandAll opens every expandable node.
func (ts *TreeState) ExpandAll() { setExpanded(ts.Root.Children, true) }

// CollapseAll closes every node; a collapsed-away selection snaps back to
// the first visible row on the next move.
func (ts *TreeState) CollapseAll() { setExpanded(ts.Root.Children, false) }

func setExpanded(nodes []*TreeNode, expanded bool) {
	for _, n := range nodes {
		if !n.IsLeaf() {
			n.Expanded = expanded
		}
		setExpanded(n.Children, expanded)
	}
}

// parentOf returns the node whose Children contain target, or nil for
// top-level nodes.
func (ts *TreeState) parentOf(target *TreeNode) *TreeNode {
	if ts.Root == nil {
		return nil
	}
	var find func(n *TreeNode) *TreeNode
	find = func(n *TreeNode) *TreeNode {
		for _, c := range n.Children {
			if c == target {
				if n == ts.Root {
					return nil
				}
				return n
			}
			if hit := find(c); hit != nil {
				return hit
			}
		}
		return nil
	}
	return find(ts.Root)
}

// SelectByID puts the cursor on the node with the given ID, if present.
func (ts *TreeState) SelectByID(id string) bool {
	if n := ts.findByID(ts.Root.Children, id); n != nil {
		ts.selected = n
		return true
	}
	return false
}

func (ts *TreeState) findByID(nodes []*TreeNode, id string) *TreeNode {
	for _, n := range nodes {
		if n.ID == id {
			return n
		}
		if hit := ts.findByID(n.Children, id); hit != nil {
			return hit
		}
	}
	return nil
}

// ExpandToNode opens every ancestor of the node with the given ID so a
// following SelectByID lands on a visible row.
func (ts *TreeState) ExpandToNode(id string) {
	expandToward(ts.Root.Children, id)
}

func expandToward(nodes []*TreeNode, id string) bool {
	for _, n := range nodes {
		if n.ID == id {
			return true
		}
		if expandToward(n.Children, id) {
			n.Expanded = true
			return true
		}
	}
	return false
}
