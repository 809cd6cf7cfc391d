// SPDX-License-Identifier: GPL-3.0-or-later

package grouping

// ExpandState tracks which group nodes are expanded, keyed by node
// path. It lives outside the tree so recomputation does not lose the
// user's expand/collapse choices.
type ExpandState struct {
	expanded map[string]bool
}

// NewExpandState returns an empty (all collapsed) state.
func NewExpandState() *ExpandState {
	return &ExpandState{expanded: make(map[string]bool)}
}

// IsExpanded reports whether the node at path is expanded.
func (s *ExpandState) IsExpanded(path string) bool {
	return s.expanded[path]
}

// Toggle flips the node at path and reports its new state.
func (s *ExpandState) Toggle(path string) bool {
	if s.expanded[path] {
		delete(s.expanded, path)
		return false
	}
	s.expanded[path] = true
	return true
}

// ExpandAll expands every node of the materialized tree. Branches not
// materialized yet are untouched.
func (s *ExpandState) ExpandAll(root *Node) {
	if root == nil {
		return
	}
	Walk(root, func(n *Node) {
		s.expanded[n.Path] = true
	})
}

// CollapseAll collapses everything.
func (s *ExpandState) CollapseAll() {
	s.expanded = make(map[string]bool)
}
