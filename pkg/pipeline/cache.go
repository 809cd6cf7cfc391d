// SPDX-License-Identifier: GPL-3.0-or-later

package pipeline

import (
	"github.com/gohugoio/hashstructure"

	"github.com/gridcore/gridcore/pkg/grouping"
	"github.com/gridcore/gridcore/pkg/paging"
	"github.com/gridcore/gridcore/pkg/sorting"
)

// memoKey is what the memoization hash covers: the control state plus
// version counters standing in for the row and column data.
type memoKey struct {
	RowsVersion    uint64
	ColumnsVersion uint64
	Filters        map[string]filterKey
	Sorts          []sorting.Key
	Group          grouping.Spec
	Page           paging.State
}

// filterKey flattens a descriptor for hashing; the operator is hashed
// by its numeric value.
type filterKey struct {
	Op          uint8
	Operand     string
	Operand2    string
	Threshold   float64
	RegexFlags  string
	CompareTime bool
}

func (e *Engine) hashInput(in Input) (uint64, bool) {
	key := memoKey{
		RowsVersion:    in.RowsVersion,
		ColumnsVersion: in.ColumnsVersion,
		Sorts:          in.Sorts,
		Group:          in.Group,
		Page:           in.Page,
	}
	if len(in.Filters) > 0 {
		key.Filters = make(map[string]filterKey, len(in.Filters))
		for id, d := range in.Filters {
			key.Filters[id] = filterKey{
				Op:          uint8(d.Op),
				Operand:     d.Operand,
				Operand2:    d.Operand2,
				Threshold:   d.Threshold,
				RegexFlags:  d.RegexFlags,
				CompareTime: d.CompareTime,
			}
		}
	}

	hash, err := hashstructure.Hash(key, nil)
	if err != nil {
		e.log.Debug("memo hash failed, recomputing", "err", err)
		return 0, false
	}
	return hash, true
}
