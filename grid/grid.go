// SPDX-License-Identifier: GPL-3.0-or-later

// Package grid ties the data pipeline to the selection, focus and
// edit state machines behind an operation/notification boundary. All
// operations are synchronous; callers serialize access.
package grid

import (
	"log/slog"

	"github.com/gridcore/gridcore/logger"
	"github.com/gridcore/gridcore/pkg/column"
	"github.com/gridcore/gridcore/pkg/filter"
	"github.com/gridcore/gridcore/pkg/grouping"
	"github.com/gridcore/gridcore/pkg/gridvalue"
	"github.com/gridcore/gridcore/pkg/paging"
	"github.com/gridcore/gridcore/pkg/pipeline"
	"github.com/gridcore/gridcore/pkg/sorting"
)

// Option configures a Grid.
type Option func(*Grid)

// WithLogger sets the logger.
func WithLogger(log *slog.Logger) Option {
	return func(g *Grid) { g.log = log }
}

// WithSelectionMode sets single or multiple row selection.
func WithSelectionMode(mode SelectionMode) Option {
	return func(g *Grid) { g.sel = newSelection(mode) }
}

// WithPageSize sets the initial client-mode page size.
func WithPageSize(n int) Option {
	return func(g *Grid) { g.page.PageSize = n }
}

// WithServerPagination switches to server mode: supplied rows are
// taken as the current page and totalItems is caller input.
func WithServerPagination(totalItems int) Option {
	return func(g *Grid) {
		g.page.Mode = paging.ModeServer
		g.page.TotalItems = totalItems
	}
}

// WithSortKeys sets the initial sort state.
func WithSortKeys(keys []sorting.Key) Option {
	return func(g *Grid) { g.sorts = sorting.Normalize(keys) }
}

// WithGrouping sets the initial group spec.
func WithGrouping(spec grouping.Spec) Option {
	return func(g *Grid) { g.group = spec }
}

// Grid is the data grid core. It owns the canonical rows, the control
// state, and the interaction state machines, and recomputes the
// visible sequence on every change.
type Grid struct {
	log *slog.Logger

	rows   []gridvalue.Row
	layout *column.Layout

	filters map[string]filter.Descriptor
	sorts   []sorting.Key
	group   grouping.Spec
	expand  *grouping.ExpandState
	page    paging.State

	sel   *selection
	focus focusState
	edit  *EditSession

	engine *pipeline.Engine
	result *pipeline.Result
	events []Event

	rowsVersion uint64
	colsVersion uint64
}

// New builds a grid over the given columns.
func New(cols []column.Column, opts ...Option) *Grid {
	g := &Grid{
		layout:  column.NewLayout(cols),
		filters: make(map[string]filter.Descriptor),
		expand:  grouping.NewExpandState(),
		page:    paging.State{PageSize: 50},
		sel:     newSelection(SelectMultiple),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.log == nil {
		g.log = logger.New("grid")
	}
	g.engine = pipeline.New(g.log)
	g.recompute()
	return g
}

// SetRows replaces the canonical row set.
func (g *Grid) SetRows(rows []gridvalue.Row) {
	g.rows = rows
	g.rowsVersion++
	g.recompute()
}

// SetRowsJSON ingests a JSON array of row objects, coercing fields to
// their column types.
func (g *Grid) SetRowsJSON(data []byte) error {
	kinds := make(map[string]gridvalue.Kind)
	for _, c := range g.layout.Columns() {
		kinds[c.Field] = c.Type.Kind()
	}
	rows, err := gridvalue.RowsFromJSON(data, kinds)
	if err != nil {
		return err
	}
	g.SetRows(rows)
	return nil
}

// SetColumns replaces the column set.
func (g *Grid) SetColumns(cols []column.Column) {
	g.layout = column.NewLayout(cols)
	g.colsVersion++
	g.recompute()
}

// Rows returns the canonical row set.
func (g *Grid) Rows() []gridvalue.Row { return g.rows }

// Row returns the canonical row at index.
func (g *Grid) Row(index int) (gridvalue.Row, bool) {
	if index < 0 || index >= len(g.rows) {
		return nil, false
	}
	return g.rows[index], true
}

// VisibleRows returns the current page of the computed sequence.
func (g *Grid) VisibleRows() []pipeline.VisibleRow { return g.result.Rows }

// VisibleColumns returns the visible columns in display order.
func (g *Grid) VisibleColumns() []column.Column { return g.layout.Visible() }

// Columns returns every column in display order.
func (g *Grid) Columns() []column.Column { return g.layout.Columns() }

// GroupTree returns the group tree, or nil when not grouping.
func (g *Grid) GroupTree() *grouping.Node { return g.result.Groups }

// TotalItems returns the pre-pagination result length (client mode)
// or the caller-supplied total (server mode).
func (g *Grid) TotalItems() int { return g.result.TotalItems }

// FilterErrors returns the fail-open validation errors of the last
// recomputation.
func (g *Grid) FilterErrors() []*filter.ValidationError { return g.result.Errors }

// CanonicalIndexOf translates a display index on the current page to
// its index in the filtered, sorted sequence.
func (g *Grid) CanonicalIndexOf(display int) int {
	return g.result.CanonicalIndexOf(display)
}

// SetFilter sets or (with nil) removes one column's filter. It
// returns a validation error when the descriptor cannot compile; the
// filter is still stored and matches everything.
func (g *Grid) SetFilter(columnID string, desc *filter.Descriptor) error {
	col, ok := g.layout.ByID(columnID)
	if !ok || !col.Filterable {
		return nil
	}
	if desc == nil {
		delete(g.filters, columnID)
	} else {
		d := *desc
		d.ColumnID = columnID
		g.filters[columnID] = d
	}
	g.recompute()

	for _, err := range g.result.Errors {
		if err.ColumnID == columnID {
			return err
		}
	}
	return nil
}

// ClearFilters removes every filter.
func (g *Grid) ClearFilters() {
	if len(g.filters) == 0 {
		return
	}
	g.filters = make(map[string]filter.Descriptor)
	g.recompute()
}

// SetSort sets one column's sort direction, or removes the column
// from the sort state when dir is nil. Without multi the rest of the
// sort state is cleared.
func (g *Grid) SetSort(columnID string, dir *sorting.Direction, multi bool) {
	col, ok := g.layout.ByID(columnID)
	if !ok || !col.Sortable {
		return
	}

	keys := sorting.Normalize(g.sorts)
	if !multi {
		keys = nil
		if dir != nil {
			keys = []sorting.Key{{ColumnID: columnID, Direction: *dir}}
		}
	} else {
		idx := -1
		for i, k := range keys {
			if k.ColumnID == columnID {
				idx = i
				break
			}
		}
		switch {
		case dir == nil && idx >= 0:
			keys = append(keys[:idx], keys[idx+1:]...)
		case dir != nil && idx >= 0:
			keys[idx].Direction = *dir
		case dir != nil:
			keys = append(keys, sorting.Key{ColumnID: columnID, Direction: *dir, Priority: len(keys)})
		}
		keys = sorting.Normalize(keys)
	}

	g.sorts = keys
	g.recompute()
	g.emitSort(columnID, dir)
}

// CycleSort applies a header click: none -> asc -> desc -> none. With
// multi the column joins or advances within the existing sort state.
func (g *Grid) CycleSort(columnID string, multi bool) {
	col, ok := g.layout.ByID(columnID)
	if !ok || !col.Sortable {
		return
	}
	g.sorts = sorting.Cycle(g.sorts, columnID, multi)
	g.recompute()

	var dir *sorting.Direction
	for _, k := range g.sorts {
		if k.ColumnID == columnID {
			d := k.Direction
			dir = &d
			break
		}
	}
	g.emitSort(columnID, dir)
}

// SortState returns the normalized sort keys.
func (g *Grid) SortState() []sorting.Key { return sorting.Normalize(g.sorts) }

func (g *Grid) emitSort(columnID string, dir *sorting.Direction) {
	direction := "none"
	if dir != nil {
		direction = dir.String()
	}
	g.emit(Event{Type: EventColumnSort, ColumnSort: &ColumnSortEvent{
		ColumnID:  columnID,
		Direction: direction,
		SortState: sorting.Normalize(g.sorts),
	}})
}

// SetGrouping replaces the group-by columns and aggregations. An
// empty column list turns grouping off.
func (g *Grid) SetGrouping(columnIDs []string, aggregations map[string][]grouping.Aggregation) {
	g.group = grouping.Spec{Columns: columnIDs, Aggregations: aggregations}
	g.expand.CollapseAll()
	g.recompute()
}

// ToggleGroup flips one group node's expansion and reports the new
// state.
func (g *Grid) ToggleGroup(path string) bool {
	return g.expand.Toggle(path)
}

// IsGroupExpanded reports a node's expansion state.
func (g *Grid) IsGroupExpanded(path string) bool {
	return g.expand.IsExpanded(path)
}

// ExpandAllGroups expands every materialized group node.
func (g *Grid) ExpandAllGroups() {
	g.expand.ExpandAll(g.result.Groups)
}

// CollapseAllGroups collapses everything.
func (g *Grid) CollapseAllGroups() {
	g.expand.CollapseAll()
}

// SetPage moves to a page; out-of-range indices are clamped.
func (g *Grid) SetPage(index int) {
	g.page.PageIndex = index
	g.recompute()
	g.page.PageIndex = g.result.Page.PageIndex
	g.emitPagination()
}

// SetPageSize changes the page size, keeping the page index clamped.
func (g *Grid) SetPageSize(n int) {
	g.page.PageSize = n
	g.recompute()
	g.page = g.result.Page
	g.emitPagination()
}

// PageState returns the clamped pagination state of the last
// recomputation.
func (g *Grid) PageState() paging.State { return g.result.Page }

// PageCount returns how many pages the current result spans.
func (g *Grid) PageCount() int { return g.result.Page.PageCount() }

func (g *Grid) emitPagination() {
	g.emit(Event{Type: EventPagination, Pagination: &PaginationEvent{
		PageIndex:  g.result.Page.PageIndex,
		PageSize:   g.result.Page.PageSize,
		TotalItems: g.result.TotalItems,
	}})
}

// ToggleSelection flips one canonical row index in or out of the
// selection.
func (g *Grid) ToggleSelection(rowIndex int) {
	if rowIndex < 0 || rowIndex >= len(g.rows) {
		return
	}
	selected := g.sel.toggle(rowIndex)
	g.emit(Event{Type: EventRowSelect, RowSelect: &RowSelectEvent{RowIndex: rowIndex, Selected: selected}})
}

// toggleSelectionAt toggles selection for the row at a display index.
func (g *Grid) toggleSelectionAt(display int) bool {
	src, ok := g.result.SourceIndexOf(display)
	if !ok {
		return false
	}
	g.ToggleSelection(src)
	return true
}

// SelectAll selects every currently visible row by its canonical
// index. Grouped views have no flat row sequence and are a no-op.
func (g *Grid) SelectAll() {
	indices := make([]int, 0, len(g.result.Rows))
	for _, vr := range g.result.Rows {
		indices = append(indices, vr.SourceIndex)
	}
	for _, idx := range g.sel.add(indices) {
		g.emit(Event{Type: EventRowSelect, RowSelect: &RowSelectEvent{RowIndex: idx, Selected: true}})
	}
}

// ClearSelection empties the selection.
func (g *Grid) ClearSelection() {
	for _, idx := range g.sel.clear() {
		g.emit(Event{Type: EventRowSelect, RowSelect: &RowSelectEvent{RowIndex: idx, Selected: false}})
	}
}

// IsSelected reports whether the canonical row index is selected.
func (g *Grid) IsSelected(rowIndex int) bool { return g.sel.isSelected(rowIndex) }

// SelectedIndices returns the selected canonical indices in order.
func (g *Grid) SelectedIndices() []int { return g.sel.indices() }

// ResizeColumn grows or shrinks a column by delta units, clamping at
// the minimum width, and emits a column-resize notification.
func (g *Grid) ResizeColumn(columnID string, delta float64) {
	oldWidth, newWidth, ok := g.layout.Resize(columnID, delta)
	if !ok {
		return
	}
	g.emit(Event{Type: EventColumnResize, ColumnResize: &ColumnResizeEvent{
		ColumnID: columnID,
		Width:    newWidth,
		OldWidth: oldWidth,
	}})
}

// ReorderColumn moves a column between display positions.
func (g *Grid) ReorderColumn(from, to int) {
	if g.layout.Reorder(from, to) {
		g.colsVersion++
		g.recompute()
	}
}

// SetColumnVisible includes or excludes a column from the visible
// projection.
func (g *Grid) SetColumnVisible(columnID string, visible bool) {
	if g.layout.SetVisible(columnID, visible) {
		g.colsVersion++
		g.recompute()
	}
}

// recompute runs the pipeline over the current snapshot and re-fits
// the focus to the new bounds.
func (g *Grid) recompute() {
	g.result = g.engine.Compute(pipeline.Input{
		Rows:           g.rows,
		Columns:        g.layout.Columns(),
		Filters:        g.filters,
		Sorts:          g.sorts,
		Group:          g.group,
		Page:           g.page,
		RowsVersion:    g.rowsVersion,
		ColumnsVersion: g.colsVersion,
	})
	g.clampFocus()
}
