// SPDX-License-Identifier: GPL-3.0-or-later

package column

import "sort"

// MinWidth is the smallest width a resize can shrink a column to.
const MinWidth = 50

// Layout owns column order, widths and visibility. Columns keep their
// declaration order via the Order field; visible projections are the
// contract the focus machine and the pipeline operate on.
type Layout struct {
	cols []Column
}

// NewLayout builds a layout over the given columns. Columns with zero
// Order are numbered by position; explicit non-zero orders are kept,
// with ties broken by declaration order.
func NewLayout(cols []Column) *Layout {
	l := &Layout{cols: make([]Column, len(cols))}
	copy(l.cols, cols)
	for i := range l.cols {
		if l.cols[i].Order == 0 {
			l.cols[i].Order = i
		}
	}
	return l
}

// Columns returns all columns in display order.
func (l *Layout) Columns() []Column {
	out := make([]Column, len(l.cols))
	copy(out, l.cols)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out
}

// Visible returns the visible columns in display order.
func (l *Layout) Visible() []Column {
	var out []Column
	for _, c := range l.Columns() {
		if c.Visible {
			out = append(out, c)
		}
	}
	return out
}

// ByID returns the column with the given id.
func (l *Layout) ByID(id string) (Column, bool) {
	for _, c := range l.cols {
		if c.ID == id {
			return c, true
		}
	}
	return Column{}, false
}

// Resize grows or shrinks a column by delta, clamping at MinWidth.
// It returns the old and new widths; ok is false for unknown or
// non-resizable columns.
func (l *Layout) Resize(id string, delta float64) (oldWidth, newWidth float64, ok bool) {
	for i := range l.cols {
		c := &l.cols[i]
		if c.ID != id || !c.Resizable {
			continue
		}
		oldWidth = c.Width
		newWidth = c.Width + delta
		if newWidth < MinWidth {
			newWidth = MinWidth
		}
		c.Width = newWidth
		return oldWidth, newWidth, true
	}
	return 0, 0, false
}

// Reorder moves the column at display position from to position to.
// Out-of-range or equal indices are a no-op.
func (l *Layout) Reorder(from, to int) bool {
	n := len(l.cols)
	if from == to || from < 0 || to < 0 || from >= n || to >= n {
		return false
	}
	ordered := l.Columns()
	moved := ordered[from]
	ordered = append(ordered[:from], ordered[from+1:]...)
	rest := make([]Column, 0, n)
	rest = append(rest, ordered[:to]...)
	rest = append(rest, moved)
	rest = append(rest, ordered[to:]...)
	for i, c := range rest {
		l.setOrder(c.ID, i)
	}
	return true
}

// SetVisible includes or excludes a column from the visible projection.
func (l *Layout) SetVisible(id string, visible bool) bool {
	for i := range l.cols {
		if l.cols[i].ID == id {
			l.cols[i].Visible = visible
			return true
		}
	}
	return false
}

func (l *Layout) setOrder(id string, order int) {
	for i := range l.cols {
		if l.cols[i].ID == id {
			l.cols[i].Order = order
			return
		}
	}
}
