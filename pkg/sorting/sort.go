// SPDX-License-Identifier: GPL-3.0-or-later

package sorting

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/gridcore/gridcore/pkg/column"
	"github.com/gridcore/gridcore/pkg/gridvalue"
)

// Direction orders a sort key ascending or descending.
type Direction uint8

const (
	// Ascending orders values from low to high.
	Ascending Direction = iota
	// Descending orders values from high to low.
	Descending
)

// String returns the keyword used for this direction.
func (d Direction) String() string {
	if d == Descending {
		return "desc"
	}
	return "asc"
}

// MarshalJSON encodes the direction as its keyword.
func (d Direction) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// ParseDirection maps a keyword to its direction.
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "asc", "ascending", "":
		return Ascending, nil
	case "desc", "descending":
		return Descending, nil
	default:
		return Ascending, fmt.Errorf("unknown sort direction %q", s)
	}
}

// Key is one column's contribution to the sort order. Keys are
// evaluated in Priority order; priorities are unique and contiguous
// from 0.
type Key struct {
	ColumnID  string    `yaml:"column" json:"column"`
	Direction Direction `yaml:"-" json:"direction"`
	Priority  int       `yaml:"priority" json:"priority"`
}

// Comparator compares two rows under an ordered key list. It returns
// a negative, zero or positive value like strings.Compare.
type Comparator struct {
	keys []Key
	cols map[string]column.Column
	coll *collate.Collator
}

// NewComparator builds a comparator over normalized keys. Column ids
// without a matching column are skipped.
func NewComparator(keys []Key, cols []column.Column) *Comparator {
	byID := make(map[string]column.Column, len(cols))
	for _, c := range cols {
		byID[c.ID] = c
	}
	return &Comparator{
		keys: Normalize(keys),
		cols: byID,
		coll: collate.New(language.English),
	}
}

// Compare evaluates the keys in priority order; the first non-zero
// comparison decides.
func (c *Comparator) Compare(a, b gridvalue.Row) int {
	for _, key := range c.keys {
		col, ok := c.cols[key.ColumnID]
		if !ok {
			continue
		}
		r := c.compareValues(a.Field(col.Field), b.Field(col.Field), col.Type)
		if r == 0 {
			continue
		}
		if key.Direction == Descending {
			r = -r
		}
		return r
	}
	return 0
}

// Missing and null values compare as zero, the empty string, false,
// and the epoch respectively.
func (c *Comparator) compareValues(a, b gridvalue.Value, dt column.DataType) int {
	switch dt {
	case column.TypeNumber:
		return compareFloat(a.NumberOr(0), b.NumberOr(0))
	case column.TypeDate:
		epoch := time.UnixMilli(0)
		am, bm := a.TimeOr(epoch).UnixMilli(), b.TimeOr(epoch).UnixMilli()
		return compareFloat(float64(am), float64(bm))
	case column.TypeBoolean:
		return compareBool(a.Bool(), b.Bool())
	default:
		return c.coll.CompareString(a.AsString(), b.AsString())
	}
}

// Sort returns a stably-sorted copy of rows. Rows tying on every key
// keep their relative input order.
func Sort(rows []gridvalue.Row, keys []Key, cols []column.Column) []gridvalue.Row {
	out := make([]gridvalue.Row, len(rows))
	copy(out, rows)
	if len(keys) == 0 {
		return out
	}
	cmp := NewComparator(keys, cols)
	sort.SliceStable(out, func(i, j int) bool { return cmp.Compare(out[i], out[j]) < 0 })
	return out
}

// Normalize orders keys by priority and renumbers them to unique,
// contiguous priorities starting at 0.
func Normalize(keys []Key) []Key {
	out := make([]Key, len(keys))
	copy(out, keys)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Priority < out[j].Priority })
	for i := range out {
		out[i].Priority = i
	}
	return out
}

// Cycle applies a header interaction to the key list. Without multi
// the column cycles none -> asc -> desc -> none and replaces the whole
// sort state; with multi the column's key is appended or advanced in
// place, leaving other keys untouched.
func Cycle(keys []Key, columnID string, multi bool) []Key {
	keys = Normalize(keys)
	idx := -1
	for i, k := range keys {
		if k.ColumnID == columnID {
			idx = i
			break
		}
	}

	if !multi {
		if idx < 0 {
			return []Key{{ColumnID: columnID, Direction: Ascending}}
		}
		if keys[idx].Direction == Ascending {
			return []Key{{ColumnID: columnID, Direction: Descending}}
		}
		return nil
	}

	switch {
	case idx < 0:
		keys = append(keys, Key{ColumnID: columnID, Direction: Ascending, Priority: len(keys)})
	case keys[idx].Direction == Ascending:
		keys[idx].Direction = Descending
	default:
		keys = append(keys[:idx], keys[idx+1:]...)
	}
	return Normalize(keys)
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func compareBool(a, b bool) int {
	switch {
	case a == b:
		return 0
	case !a:
		return -1
	default:
		return 1
	}
}
