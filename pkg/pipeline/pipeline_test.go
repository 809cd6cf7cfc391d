// SPDX-License-Identifier: GPL-3.0-or-later

package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridcore/gridcore/pkg/column"
	"github.com/gridcore/gridcore/pkg/filter"
	"github.com/gridcore/gridcore/pkg/grouping"
	"github.com/gridcore/gridcore/pkg/gridvalue"
	"github.com/gridcore/gridcore/pkg/paging"
	"github.com/gridcore/gridcore/pkg/sorting"
)

var testCols = []column.Column{
	{ID: "name", Field: "name", Type: column.TypeString, Filterable: true, Sortable: true},
	{ID: "age", Field: "age", Type: column.TypeNumber, Filterable: true, Sortable: true},
	{ID: "dept", Field: "dept", Type: column.TypeString, Filterable: true, Sortable: true},
}

func testRows() []gridvalue.Row {
	mk := func(name string, age float64, dept string) gridvalue.Row {
		return gridvalue.Row{
			"name": gridvalue.String(name),
			"age":  gridvalue.Number(age),
			"dept": gridvalue.String(dept),
		}
	}
	return []gridvalue.Row{
		mk("Alice", 30, "Eng"),
		mk("Bob", 25, "HR"),
		mk("Carol", 35, "Eng"),
		mk("Dave", 28, "Eng"),
		mk("Eve", 22, "HR"),
	}
}

func baseInput() Input {
	return Input{
		Rows:    testRows(),
		Columns: testCols,
		Page:    paging.State{PageSize: 100},
	}
}

func visibleNames(res *Result) []string {
	out := make([]string, len(res.Rows))
	for i, vr := range res.Rows {
		out[i] = vr.Row.Field("name").AsString()
	}
	return out
}

func TestComputePassthrough(t *testing.T) {
	res := New(nil).Compute(baseInput())

	assert.Equal(t, []string{"Alice", "Bob", "Carol", "Dave", "Eve"}, visibleNames(res))
	assert.Equal(t, 5, res.TotalItems)
	for i, vr := range res.Rows {
		assert.Equal(t, i, vr.SourceIndex)
	}
}

func TestComputeFilterThenSort(t *testing.T) {
	in := baseInput()
	in.Filters = map[string]filter.Descriptor{
		"dept": {ColumnID: "dept", Operand: "eng"},
	}
	in.Sorts = []sorting.Key{{ColumnID: "age"}}

	res := New(nil).Compute(in)

	assert.Equal(t, []string{"Dave", "Alice", "Carol"}, visibleNames(res))
	assert.Equal(t, 3, res.TotalItems)
	// Source indices survive filtering and sorting.
	assert.Equal(t, 3, res.Rows[0].SourceIndex)
	assert.Equal(t, 0, res.Rows[1].SourceIndex)
	assert.Equal(t, 2, res.Rows[2].SourceIndex)
}

func TestComputeFiltersAreANDed(t *testing.T) {
	in := baseInput()
	in.Filters = map[string]filter.Descriptor{
		"dept": {ColumnID: "dept", Operand: "eng"},
		"age":  {ColumnID: "age", Operand: ">=30"},
	}

	res := New(nil).Compute(in)
	assert.ElementsMatch(t, []string{"Alice", "Carol"}, visibleNames(res))
}

func TestComputePagination(t *testing.T) {
	in := baseInput()
	in.Sorts = []sorting.Key{{ColumnID: "name"}}
	in.Page = paging.State{PageSize: 2, PageIndex: 1}

	res := New(nil).Compute(in)

	assert.Equal(t, []string{"Carol", "Dave"}, visibleNames(res))
	assert.Equal(t, 5, res.TotalItems)
	assert.Equal(t, 2, res.CanonicalIndexOf(0))
	src, ok := res.SourceIndexOf(0)
	require.True(t, ok)
	assert.Equal(t, 2, src) // Carol

	_, ok = res.SourceIndexOf(2)
	assert.False(t, ok)
}

func TestComputePaginationRoundTrip(t *testing.T) {
	in := baseInput()
	in.Sorts = []sorting.Key{{ColumnID: "age"}}
	in.Page = paging.State{PageSize: 2}

	eng := New(nil)
	var got []string
	for page := 0; ; page++ {
		in.Page.PageIndex = page
		res := eng.Compute(in)
		if len(res.Rows) == 0 {
			break
		}
		got = append(got, visibleNames(res)...)
		if page >= res.Page.PageCount()-1 {
			break
		}
	}

	assert.Equal(t, []string{"Eve", "Bob", "Dave", "Alice", "Carol"}, got)
}

func TestComputePageIndexClamped(t *testing.T) {
	in := baseInput()
	in.Page = paging.State{PageSize: 2, PageIndex: 99}

	res := New(nil).Compute(in)
	assert.Equal(t, 2, res.Page.PageIndex)
	assert.Equal(t, []string{"Eve"}, visibleNames(res))
}

func TestComputeServerMode(t *testing.T) {
	in := baseInput()
	in.Page = paging.State{Mode: paging.ModeServer, PageIndex: 4, PageSize: 5, TotalItems: 500}

	res := New(nil).Compute(in)

	// Supplied rows are taken as the current page, unwindowed.
	assert.Len(t, res.Rows, 5)
	assert.Equal(t, 500, res.TotalItems)
	assert.Equal(t, 3, res.CanonicalIndexOf(3))
}

func TestComputeGrouped(t *testing.T) {
	in := baseInput()
	in.Sorts = []sorting.Key{{ColumnID: "age"}}
	in.Group = grouping.Spec{
		Columns:      []string{"dept"},
		Aggregations: map[string][]grouping.Aggregation{"age": {grouping.AggMax}},
	}

	res := New(nil).Compute(in)

	require.NotNil(t, res.Groups)
	assert.Empty(t, res.Rows)
	require.Len(t, res.Groups.Children, 2)
	// Groups partition the already-sorted sequence: HR (Eve, 22) first.
	assert.Equal(t, "HR", res.Groups.Children[0].Key)
	maxAge, ok := res.Groups.Children[0].Aggregate("age", grouping.AggMax)
	require.True(t, ok)
	assert.Equal(t, 25.0, maxAge)
}

func TestComputeBadRegexFailsOpen(t *testing.T) {
	in := baseInput()
	in.Filters = map[string]filter.Descriptor{
		"name": {ColumnID: "name", Op: filter.OpRegex, Operand: "(unclosed"},
	}

	res := New(nil).Compute(in)

	require.Len(t, res.Errors, 1)
	assert.Equal(t, "name", res.Errors[0].ColumnID)
	assert.Len(t, res.Rows, 5)
}

func TestComputeErrorOrderDeterministic(t *testing.T) {
	in := baseInput()
	in.Filters = map[string]filter.Descriptor{
		"name": {ColumnID: "name", Op: filter.OpRegex, Operand: "(unclosed"},
		"dept": {ColumnID: "dept", Op: filter.OpRegex, Operand: "[bad"},
	}

	for i := 0; i < 5; i++ {
		res := New(nil).Compute(in)
		require.Len(t, res.Errors, 2)
		assert.Equal(t, "dept", res.Errors[0].ColumnID)
		assert.Equal(t, "name", res.Errors[1].ColumnID)
	}
}

func TestComputeMemoization(t *testing.T) {
	eng := New(nil)
	in := baseInput()
	in.RowsVersion = 1

	first := eng.Compute(in)
	second := eng.Compute(in)
	assert.Same(t, first, second)

	in.RowsVersion = 2
	third := eng.Compute(in)
	assert.NotSame(t, first, third)

	in.Filters = map[string]filter.Descriptor{"dept": {ColumnID: "dept", Operand: "hr"}}
	fourth := eng.Compute(in)
	assert.NotSame(t, third, fourth)
	assert.Len(t, fourth.Rows, 2)
}

func TestComputeDeterministic(t *testing.T) {
	in := baseInput()
	in.Filters = map[string]filter.Descriptor{"dept": {ColumnID: "dept", Operand: "eng"}}
	in.Sorts = []sorting.Key{{ColumnID: "age", Direction: sorting.Descending}}

	a := New(nil).Compute(in)
	b := New(nil).Compute(in)
	assert.Equal(t, visibleNames(a), visibleNames(b))
	assert.Equal(t, a.TotalItems, b.TotalItems)
}
