// SPDX-License-Identifier: GPL-3.0-or-later

package grouping

import (
	"fmt"

	"github.com/gridcore/gridcore/pkg/column"
	"github.com/gridcore/gridcore/pkg/gridvalue"
)

// Aggregation defines the per-group aggregate applied to a column.
type Aggregation uint8

const (
	// AggCount counts the rows in each group.
	AggCount Aggregation = iota
	// AggSum sums numeric values in each group.
	AggSum
	// AggAvg averages numeric values in each group.
	AggAvg
	// AggMin takes the minimum numeric value in each group.
	AggMin
	// AggMax takes the maximum numeric value in each group.
	AggMax
)

// String returns the keyword used for this aggregation.
func (a Aggregation) String() string {
	switch a {
	case AggSum:
		return "sum"
	case AggAvg:
		return "avg"
	case AggMin:
		return "min"
	case AggMax:
		return "max"
	default:
		return "count"
	}
}

// MarshalText encodes the aggregation as its keyword, also when used
// as a map key.
func (a Aggregation) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// ParseAggregation maps a keyword to its aggregation.
func ParseAggregation(s string) (Aggregation, error) {
	switch s {
	case "count":
		return AggCount, nil
	case "sum":
		return AggSum, nil
	case "avg", "mean":
		return AggAvg, nil
	case "min":
		return AggMin, nil
	case "max":
		return AggMax, nil
	default:
		return AggCount, fmt.Errorf("unknown aggregation %q", s)
	}
}

// Spec describes how rows are partitioned and aggregated.
type Spec struct {
	// Columns is the ordered group-by column id list; the first id is
	// the top level of the tree.
	Columns []string `yaml:"columns" json:"columns"`
	// Aggregations maps column ids to the aggregates computed for
	// every group.
	Aggregations map[string][]Aggregation `yaml:"-" json:"aggregations"`
}

// IsActive reports whether any grouping is requested.
func (s Spec) IsActive() bool { return len(s.Columns) > 0 }

// Node is one node of the group tree. Internal nodes carry Children;
// the deepest level carries Rows. Path uniquely identifies the node
// for expand/collapse tracking.
type Node struct {
	Path     string `json:"path"`
	ColumnID string `json:"column,omitempty"`
	Key      string `json:"key"`
	Children []*Node          `json:"children,omitempty"`
	Rows     []gridvalue.Row  `json:"rows,omitempty"`
	// Aggregates is keyed by column id, then by aggregation.
	Aggregates map[string]map[Aggregation]float64 `json:"aggregates,omitempty"`
	// RowCount is the number of descendant rows.
	RowCount int `json:"row_count"`
}

// Group partitions rows by the spec's column list, preserving the
// incoming row order inside every partition, and computes aggregates
// on every node except the root's synthetic parent. The returned root
// has an empty path and holds the top-level groups as children.
func Group(rows []gridvalue.Row, spec Spec, cols []column.Column) *Node {
	fields := make(map[string]string, len(cols))
	for _, c := range cols {
		fields[c.ID] = c.Field
	}

	root := &Node{RowCount: len(rows)}
	partition(root, rows, spec, fields, 0)
	return root
}

func partition(parent *Node, rows []gridvalue.Row, spec Spec, fields map[string]string, depth int) {
	if depth >= len(spec.Columns) {
		parent.Rows = rows
		return
	}

	colID := spec.Columns[depth]
	field, ok := fields[colID]
	if !ok {
		field = colID
	}

	var order []string
	buckets := make(map[string][]gridvalue.Row)
	for _, row := range rows {
		key := row.Field(field).AsString()
		if _, seen := buckets[key]; !seen {
			order = append(order, key)
		}
		buckets[key] = append(buckets[key], row)
	}

	for _, key := range order {
		child := &Node{
			Path:     joinPath(parent.Path, key),
			ColumnID: colID,
			Key:      key,
			RowCount: len(buckets[key]),
		}
		child.Aggregates = aggregate(buckets[key], spec.Aggregations, fields)
		partition(child, buckets[key], spec, fields, depth+1)
		parent.Children = append(parent.Children, child)
	}
}

// aggregate computes the requested aggregates over the rows. Count
// counts every row; the numeric aggregates skip non-numeric values.
func aggregate(rows []gridvalue.Row, aggs map[string][]Aggregation, fields map[string]string) map[string]map[Aggregation]float64 {
	if len(aggs) == 0 {
		return nil
	}

	out := make(map[string]map[Aggregation]float64, len(aggs))
	for colID, wanted := range aggs {
		field, ok := fields[colID]
		if !ok {
			field = colID
		}

		var sum, lo, hi float64
		var count int
		for _, row := range rows {
			n, ok := row.Field(field).Number()
			if !ok {
				continue
			}
			if count == 0 || n < lo {
				lo = n
			}
			if count == 0 || n > hi {
				hi = n
			}
			sum += n
			count++
		}

		vals := make(map[Aggregation]float64, len(wanted))
		for _, agg := range wanted {
			switch agg {
			case AggCount:
				vals[agg] = float64(len(rows))
			case AggSum:
				vals[agg] = sum
			case AggAvg:
				if count > 0 {
					vals[agg] = sum / float64(count)
				}
			case AggMin:
				vals[agg] = lo
			case AggMax:
				vals[agg] = hi
			}
		}
		out[colID] = vals
	}
	return out
}

func joinPath(parent, key string) string {
	if parent == "" {
		return key
	}
	return parent + "/" + key
}

// Walk visits every group node below root depth-first.
func Walk(root *Node, visit func(*Node)) {
	for _, child := range root.Children {
		visit(child)
		Walk(child, visit)
	}
}

// Aggregate returns one aggregate value from a node, with ok=false
// when it was not computed.
func (n *Node) Aggregate(colID string, agg Aggregation) (float64, bool) {
	vals, ok := n.Aggregates[colID]
	if !ok {
		return 0, false
	}
	v, ok := vals[agg]
	return v, ok
}

// Find returns the node with the given path, or nil.
func Find(root *Node, path string) *Node {
	if path == "" {
		return root
	}
	var found *Node
	Walk(root, func(n *Node) {
		if n.Path == path {
			found = n
		}
	})
	return found
}
