// SPDX-License-Identifier: GPL-3.0-or-later

package grid

import "sort"

// SelectionMode limits how many rows may be selected at once.
type SelectionMode uint8

const (
	// SelectMultiple allows any number of selected rows.
	SelectMultiple SelectionMode = iota
	// SelectSingle evicts the previous selection on every toggle-on.
	SelectSingle
)

// String returns the keyword used for this mode.
func (m SelectionMode) String() string {
	if m == SelectSingle {
		return "single"
	}
	return "multiple"
}

// selection is the set of selected canonical row indices.
type selection struct {
	mode SelectionMode
	set  map[int]bool
}

func newSelection(mode SelectionMode) *selection {
	return &selection{mode: mode, set: make(map[int]bool)}
}

// toggle flips membership and reports the new state.
func (s *selection) toggle(index int) bool {
	if s.set[index] {
		delete(s.set, index)
		return false
	}
	if s.mode == SelectSingle {
		s.set = make(map[int]bool)
	}
	s.set[index] = true
	return true
}

func (s *selection) isSelected(index int) bool { return s.set[index] }

func (s *selection) clear() []int {
	removed := s.indices()
	s.set = make(map[int]bool)
	return removed
}

// add inserts indices that are not yet selected and returns the ones
// actually added. Single mode keeps only the first.
func (s *selection) add(indices []int) []int {
	var added []int
	for _, idx := range indices {
		if s.set[idx] {
			continue
		}
		if s.mode == SelectSingle && len(s.set) > 0 {
			break
		}
		s.set[idx] = true
		added = append(added, idx)
	}
	return added
}

func (s *selection) indices() []int {
	out := make([]int, 0, len(s.set))
	for idx := range s.set {
		out = append(out, idx)
	}
	sort.Ints(out)
	return out
}
