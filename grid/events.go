// SPDX-License-Identifier: GPL-3.0-or-later

package grid

import (
	"encoding/json"

	"github.com/gridcore/gridcore/pkg/gridvalue"
	"github.com/gridcore/gridcore/pkg/sorting"
)

// EventType discriminates notification payloads.
type EventType uint8

const (
	// EventCellEdit signals a committed cell edit.
	EventCellEdit EventType = iota
	// EventRowSelect signals a row selection change.
	EventRowSelect
	// EventColumnSort signals a sort state change.
	EventColumnSort
	// EventColumnResize signals a column width change.
	EventColumnResize
	// EventPagination signals a page index/size/total change.
	EventPagination
)

// String returns the keyword used for this event type.
func (t EventType) String() string {
	switch t {
	case EventRowSelect:
		return "row-select"
	case EventColumnSort:
		return "column-sort"
	case EventColumnResize:
		return "column-resize"
	case EventPagination:
		return "pagination"
	default:
		return "cell-edit"
	}
}

// MarshalJSON encodes the event type as its keyword.
func (t EventType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// Event is one outbound notification. Exactly one payload pointer is
// set, matching Type.
type Event struct {
	Type         EventType          `json:"type"`
	CellEdit     *CellEditEvent     `json:"cell_edit,omitempty"`
	RowSelect    *RowSelectEvent    `json:"row_select,omitempty"`
	ColumnSort   *ColumnSortEvent   `json:"column_sort,omitempty"`
	ColumnResize *ColumnResizeEvent `json:"column_resize,omitempty"`
	Pagination   *PaginationEvent   `json:"pagination,omitempty"`
}

// CellEditEvent reports a committed edit. RowIndex is the canonical
// source index of the mutated row.
type CellEditEvent struct {
	RowIndex int             `json:"row_index"`
	ColumnID string          `json:"column"`
	OldValue gridvalue.Value `json:"old_value"`
	NewValue gridvalue.Value `json:"new_value"`
}

// RowSelectEvent reports one row entering or leaving the selection.
type RowSelectEvent struct {
	RowIndex int  `json:"row_index"`
	Selected bool `json:"selected"`
}

// ColumnSortEvent reports a sort change on one column along with the
// full resulting sort state. Direction is "asc", "desc" or "none".
type ColumnSortEvent struct {
	ColumnID  string        `json:"column"`
	Direction string        `json:"direction"`
	SortState []sorting.Key `json:"sort_state"`
}

// ColumnResizeEvent reports a width change.
type ColumnResizeEvent struct {
	ColumnID string  `json:"column"`
	Width    float64 `json:"width"`
	OldWidth float64 `json:"old_width"`
}

// PaginationEvent reports the clamped pagination state.
type PaginationEvent struct {
	PageIndex  int `json:"page_index"`
	PageSize   int `json:"page_size"`
	TotalItems int `json:"total_items"`
}

func (g *Grid) emit(ev Event) {
	g.events = append(g.events, ev)
}

// Events drains and returns the pending notification queue in emit
// order.
func (g *Grid) Events() []Event {
	evs := g.events
	g.events = nil
	return evs
}
