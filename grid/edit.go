// SPDX-License-Identifier: GPL-3.0-or-later

package grid

import (
	"strconv"

	"github.com/gridcore/gridcore/pkg/column"
	"github.com/gridcore/gridcore/pkg/gridvalue"
)

// EditSession is the single in-progress cell edit. RowIndex is the
// canonical source index, so the commit target survives re-filtering
// and re-sorting while the editor is open.
type EditSession struct {
	RowIndex int
	ColumnID string
	Value    string
	Original gridvalue.Value
}

// Editing returns a copy of the active session; ok is false when idle.
func (g *Grid) Editing() (EditSession, bool) {
	if g.edit == nil {
		return EditSession{}, false
	}
	return *g.edit, true
}

// StartEdit opens an edit session on the cell at visible coordinates
// (row, col). A session already in progress is committed first.
// Non-editable columns and out-of-range coordinates are no-ops.
func (g *Grid) StartEdit(row, col int) bool {
	cols := g.layout.Visible()
	if col < 0 || col >= len(cols) || !cols[col].Editable {
		return false
	}
	src, ok := g.result.SourceIndexOf(row)
	if !ok {
		return false
	}

	if g.edit != nil {
		g.CommitEdit()
		// Committing recomputes; the row may have moved or filtered out.
		if src, ok = g.result.SourceIndexOf(row); !ok {
			return false
		}
	}

	c := cols[col]
	original := g.rows[src].Field(c.Field)
	g.edit = &EditSession{
		RowIndex: src,
		ColumnID: c.ID,
		Value:    editString(original, c.Type),
		Original: original,
	}
	g.focus = focusState{row: row, col: col, present: true}
	return true
}

// UpdateEdit replaces the in-progress value. No-op when idle.
func (g *Grid) UpdateEdit(value string) bool {
	if g.edit == nil {
		return false
	}
	g.edit.Value = value
	return true
}

// CommitEdit converts the in-progress value back to the column's
// native type, writes it into the canonical row, emits a cell-edit
// notification and returns to idle. No-op when idle.
func (g *Grid) CommitEdit() bool {
	if g.edit == nil {
		return false
	}
	session := g.edit
	g.edit = nil

	col, ok := g.layout.ByID(session.ColumnID)
	if !ok || session.RowIndex < 0 || session.RowIndex >= len(g.rows) {
		return false
	}

	newValue := nativeValue(session.Value, col.Type)
	g.rows[session.RowIndex][col.Field] = newValue
	g.rowsVersion++

	g.emit(Event{Type: EventCellEdit, CellEdit: &CellEditEvent{
		RowIndex: session.RowIndex,
		ColumnID: session.ColumnID,
		OldValue: session.Original,
		NewValue: newValue,
	}})

	g.recompute()
	return true
}

// CancelEdit discards the in-progress value without touching the row.
// No-op when idle.
func (g *Grid) CancelEdit() bool {
	if g.edit == nil {
		return false
	}
	g.edit = nil
	return true
}

// editTab commits the session, then moves to the adjacent editable
// cell (forward: next; else previous), wrapping to the neighboring
// row at row boundaries, and opens a session there.
func (g *Grid) editTab(forward bool) bool {
	if g.edit == nil {
		return false
	}
	row, col := g.focus.row, g.focus.col
	g.CommitEdit()

	nextRow, nextCol, ok := g.nextEditable(row, col, forward)
	if !ok {
		return true
	}
	g.SetFocus(nextRow, nextCol)
	g.StartEdit(nextRow, nextCol)
	return true
}

// nextEditable scans the visible grid for the closest editable cell
// strictly after (or before) the given coordinates.
func (g *Grid) nextEditable(row, col int, forward bool) (int, int, bool) {
	cols := g.layout.Visible()
	maxRow, maxCol, ok := g.focusBounds()
	if !ok {
		return 0, 0, false
	}

	step := 1
	if !forward {
		step = -1
	}
	r, c := row, col
	for {
		c += step
		if c > maxCol {
			c = 0
			r++
		} else if c < 0 {
			c = maxCol
			r--
		}
		if r < 0 || r > maxRow {
			return 0, 0, false
		}
		if cols[c].Editable {
			return r, c, true
		}
	}
}

// editString converts a cell value into its edit-friendly text form:
// dates become calendar-date strings, booleans become tokens.
func editString(v gridvalue.Value, dt column.DataType) string {
	switch dt {
	case column.TypeDate:
		if t, ok := v.Time(); ok {
			return t.Format("2006-01-02")
		}
		return v.AsString()
	case column.TypeBoolean:
		return strconv.FormatBool(v.Bool())
	default:
		return v.AsString()
	}
}

// nativeValue converts an edit string back to the column's native
// type. An empty string clears the cell; unconvertible input is kept
// as a string rather than dropped.
func nativeValue(s string, dt column.DataType) gridvalue.Value {
	if s == "" {
		return gridvalue.Null()
	}
	switch dt {
	case column.TypeNumber:
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return gridvalue.Number(f)
		}
	case column.TypeBoolean:
		return gridvalue.Bool(s == "true")
	case column.TypeDate:
		return gridvalue.Coerce(gridvalue.String(s), gridvalue.KindDate)
	default:
		return gridvalue.String(s)
	}
	return gridvalue.String(s)
}
