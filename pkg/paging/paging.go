// SPDX-License-Identifier: GPL-3.0-or-later

package paging

import "encoding/json"

// Mode selects who owns the page window.
type Mode uint8

const (
	// ModeClient slices pages out of the full result set locally.
	ModeClient Mode = iota
	// ModeServer trusts the caller to supply exactly the current page;
	// TotalItems is authoritative caller input.
	ModeServer
)

// String returns the keyword used for this mode.
func (m Mode) String() string {
	if m == ModeServer {
		return "server"
	}
	return "client"
}

// MarshalJSON encodes the mode as its keyword.
func (m Mode) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

// State is the pagination control state. Out-of-range values are
// clamped, never rejected.
type State struct {
	Mode       Mode `yaml:"-" json:"mode"`
	PageIndex  int  `yaml:"page_index" json:"page_index"`
	PageSize   int  `yaml:"page_size" json:"page_size"`
	TotalItems int  `yaml:"total_items" json:"total_items"`
}

// PageCount returns how many pages TotalItems spans.
func (s State) PageCount() int {
	if s.TotalItems <= 0 || s.PageSize <= 0 {
		return 0
	}
	return (s.TotalItems + s.PageSize - 1) / s.PageSize
}

// Clamped returns a copy with PageSize at least 1 and PageIndex inside
// [0, PageCount-1], or 0 when there are no items.
func (s State) Clamped() State {
	if s.PageSize < 1 {
		s.PageSize = 1
	}
	last := s.PageCount() - 1
	if s.PageIndex > last {
		s.PageIndex = last
	}
	if s.PageIndex < 0 {
		s.PageIndex = 0
	}
	return s
}

// Window returns the half-open [start, end) range of the current page
// over a sequence of n items. In server mode the supplied items are
// already the page, so the window covers all of them.
func (s State) Window(n int) (start, end int) {
	if s.Mode == ModeServer {
		return 0, n
	}
	s = s.Clamped()
	start = s.PageIndex * s.PageSize
	if start > n {
		start = n
	}
	end = start + s.PageSize
	if end > n {
		end = n
	}
	return start, end
}

// CanonicalIndex translates a display index on the current page into
// an index of the pre-pagination sequence. Server mode assumes the
// rows supplied are already the correct page, so the index passes
// through unchanged.
func (s State) CanonicalIndex(display int) int {
	if s.Mode == ModeServer {
		return display
	}
	s = s.Clamped()
	return s.PageIndex*s.PageSize + display
}
