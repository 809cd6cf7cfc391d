// SPDX-License-Identifier: GPL-3.0-or-later

package pipeline

import (
	"log/slog"
	"sort"

	"github.com/gridcore/gridcore/pkg/column"
	"github.com/gridcore/gridcore/pkg/filter"
	"github.com/gridcore/gridcore/pkg/grouping"
	"github.com/gridcore/gridcore/pkg/gridvalue"
	"github.com/gridcore/gridcore/pkg/paging"
	"github.com/gridcore/gridcore/pkg/sorting"
)

// Input is an immutable snapshot of everything the pipeline depends
// on. RowsVersion and ColumnsVersion stand in for the row/column data
// in the memoization key; callers bump them on every data change.
type Input struct {
	Rows    []gridvalue.Row
	Columns []column.Column

	Filters map[string]filter.Descriptor
	Sorts   []sorting.Key
	Group   grouping.Spec
	Page    paging.State

	RowsVersion    uint64
	ColumnsVersion uint64
}

// VisibleRow pairs a row with its canonical position in the source
// sequence, which survives filtering and sorting.
type VisibleRow struct {
	Row         gridvalue.Row
	SourceIndex int
}

// Result is the computed visible sequence. Rows holds the current
// page in flat mode; Groups is the group tree when grouping is
// active (the page window is not applied to groups).
type Result struct {
	Rows       []VisibleRow
	Groups     *grouping.Node
	TotalItems int
	// Page is the clamped pagination state the window was cut with.
	Page paging.State
	// Errors are fail-open filter validation errors.
	Errors []*filter.ValidationError
}

// CanonicalIndexOf translates a display index on the current page
// into an index of the filtered, sorted, pre-pagination sequence.
func (r *Result) CanonicalIndexOf(display int) int {
	return r.Page.CanonicalIndex(display)
}

// SourceIndexOf translates a display index into the row's index in
// the canonical source sequence, for writing edits back. ok is false
// outside the page.
func (r *Result) SourceIndexOf(display int) (int, bool) {
	if display < 0 || display >= len(r.Rows) {
		return 0, false
	}
	return r.Rows[display].SourceIndex, true
}

// Engine recomputes the visible sequence from an input snapshot. The
// stages run in fixed order filter -> sort -> group -> paginate;
// recomputation is pure, so identical inputs are served from the
// memoized previous result.
type Engine struct {
	log *slog.Logger

	lastHash   uint64
	lastResult *Result
}

// New returns an engine logging through log (nil for the default).
func New(log *slog.Logger) *Engine {
	if log == nil {
		log = slog.Default()
	}
	return &Engine{log: log}
}

// Compute runs the pipeline over the snapshot.
func (e *Engine) Compute(in Input) *Result {
	hash, hashed := e.hashInput(in)
	if hashed && e.lastResult != nil && hash == e.lastHash {
		return e.lastResult
	}

	res := e.compute(in)
	if hashed {
		e.lastHash = hash
		e.lastResult = res
	}
	return res
}

func (e *Engine) compute(in Input) *Result {
	res := &Result{}

	visible := e.applyFilters(in, res)
	e.applySort(in, visible)

	if in.Page.Mode == paging.ModeServer {
		res.TotalItems = in.Page.TotalItems
	} else {
		res.TotalItems = len(visible)
	}
	page := in.Page
	page.TotalItems = res.TotalItems
	res.Page = page.Clamped()

	if in.Group.IsActive() {
		rows := make([]gridvalue.Row, len(visible))
		for i, vr := range visible {
			rows[i] = vr.Row
		}
		res.Groups = grouping.Group(rows, in.Group, in.Columns)
		e.log.Debug("pipeline recomputed", "rows", len(visible), "grouped", true)
		return res
	}

	start, end := res.Page.Window(len(visible))
	res.Rows = visible[start:end]
	e.log.Debug("pipeline recomputed", "rows", len(res.Rows), "total", res.TotalItems)
	return res
}

func (e *Engine) applyFilters(in Input, res *Result) []VisibleRow {
	byID := make(map[string]column.Column, len(in.Columns))
	for _, c := range in.Columns {
		byID[c.ID] = c
	}

	// Map iteration order would make error and log order wander
	// between identical runs.
	ids := make([]string, 0, len(in.Filters))
	for colID := range in.Filters {
		ids = append(ids, colID)
	}
	sort.Strings(ids)

	var filters []*filter.Filter
	var fields []string
	for _, colID := range ids {
		desc := in.Filters[colID]
		col, ok := byID[colID]
		if !ok || !desc.IsActive() {
			continue
		}
		f, err := filter.New(desc, col.Type)
		if err != nil {
			verr := &filter.ValidationError{ColumnID: colID, Err: err}
			res.Errors = append(res.Errors, verr)
			e.log.Warn("filter rejected, matching everything", "column", colID, "err", err)
			continue
		}
		filters = append(filters, f)
		fields = append(fields, col.Field)
	}

	visible := make([]VisibleRow, 0, len(in.Rows))
	for i, row := range in.Rows {
		pass := true
		for j, f := range filters {
			if !f.Match(row.Field(fields[j])) {
				pass = false
				break
			}
		}
		if pass {
			visible = append(visible, VisibleRow{Row: row, SourceIndex: i})
		}
	}
	return visible
}

func (e *Engine) applySort(in Input, visible []VisibleRow) {
	if len(in.Sorts) == 0 {
		return
	}
	cmp := sorting.NewComparator(in.Sorts, in.Columns)
	sort.SliceStable(visible, func(i, j int) bool {
		return cmp.Compare(visible[i].Row, visible[j].Row) < 0
	})
}
