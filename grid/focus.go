// SPDX-License-Identifier: GPL-3.0-or-later

package grid

// Key is a normalized keyboard input for grid navigation.
type Key uint8

const (
	KeyArrowUp Key = iota
	KeyArrowDown
	KeyArrowLeft
	KeyArrowRight
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyEnter
	KeyF2
	KeySpace
	KeyTab
)

// Modifiers carries the modifier keys held during a key press.
type Modifiers struct {
	Ctrl  bool
	Shift bool
}

// focusPageSize is the row block PageUp/PageDown jump by.
const focusPageSize = 10

type focusState struct {
	row, col int
	present  bool
}

// Focus returns the focused cell in visible coordinates; ok is false
// when nothing is focused.
func (g *Grid) Focus() (row, col int, ok bool) {
	f := g.focus
	return f.row, f.col, f.present
}

// SetFocus focuses a cell, clamping the coordinates into the visible
// bounds. Focusing an empty grid clears focus.
func (g *Grid) SetFocus(row, col int) {
	maxRow, maxCol, ok := g.focusBounds()
	if !ok {
		g.focus = focusState{}
		return
	}
	g.focus = focusState{row: clamp(row, 0, maxRow), col: clamp(col, 0, maxCol), present: true}
}

// Blur clears the focus.
func (g *Grid) Blur() {
	g.focus = focusState{}
}

// HandleKey runs one keyboard interaction against the focus, edit and
// selection machines. It reports whether the key did anything.
func (g *Grid) HandleKey(key Key, mods Modifiers) bool {
	if g.edit != nil {
		// Tab commits and hops to the adjacent editable cell; every
		// other navigation key is inert while editing.
		if key == KeyTab {
			return g.editTab(!mods.Shift)
		}
		return false
	}

	f := g.focus
	if !f.present {
		return false
	}
	maxRow, maxCol, ok := g.focusBounds()
	if !ok {
		g.focus = focusState{}
		return false
	}

	switch key {
	case KeyArrowUp:
		g.focus.row = clamp(f.row-1, 0, maxRow)
	case KeyArrowDown:
		g.focus.row = clamp(f.row+1, 0, maxRow)
	case KeyArrowLeft:
		g.focus.col = clamp(f.col-1, 0, maxCol)
	case KeyArrowRight:
		g.focus.col = clamp(f.col+1, 0, maxCol)
	case KeyHome:
		g.focus.col = 0
		if mods.Ctrl {
			g.focus.row = 0
		}
	case KeyEnd:
		g.focus.col = maxCol
		if mods.Ctrl {
			g.focus.row = maxRow
		}
	case KeyPageUp:
		g.focus.row = clamp(f.row-focusPageSize, 0, maxRow)
	case KeyPageDown:
		g.focus.row = clamp(f.row+focusPageSize, 0, maxRow)
	case KeyEnter, KeyF2:
		return g.StartEdit(f.row, f.col)
	case KeySpace:
		cols := g.layout.Visible()
		if f.col < len(cols) && !cols[f.col].Editable {
			return g.toggleSelectionAt(f.row)
		}
		return false
	default:
		return false
	}
	return true
}

// focusBounds returns the inclusive maxima of the visible coordinate
// space; ok is false when the grid has no focusable cells.
func (g *Grid) focusBounds() (maxRow, maxCol int, ok bool) {
	rows := len(g.result.Rows)
	cols := len(g.layout.Visible())
	if rows == 0 || cols == 0 {
		return 0, 0, false
	}
	return rows - 1, cols - 1, true
}

// clampFocus re-fits the focus after a recomputation changed the
// visible bounds.
func (g *Grid) clampFocus() {
	if !g.focus.present {
		return
	}
	maxRow, maxCol, ok := g.focusBounds()
	if !ok {
		g.focus = focusState{}
		return
	}
	g.focus.row = clamp(g.focus.row, 0, maxRow)
	g.focus.col = clamp(g.focus.col, 0, maxCol)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
