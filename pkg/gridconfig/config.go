// SPDX-License-Identifier: GPL-3.0-or-later

// Package gridconfig loads declarative grid definitions: columns with
// their types and flags, plus default sort, grouping and pagination
// state.
package gridconfig

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v2"

	"github.com/gridcore/gridcore/pkg/column"
	"github.com/gridcore/gridcore/pkg/grouping"
	"github.com/gridcore/gridcore/pkg/sorting"
)

// Config is a YAML grid definition.
type Config struct {
	Columns       []ColumnConfig      `yaml:"columns"`
	PageSize      int                 `yaml:"page_size,omitempty"`
	Sort          []SortConfig        `yaml:"sort,omitempty"`
	GroupBy       []string            `yaml:"group_by,omitempty"`
	Aggregations  map[string][]string `yaml:"aggregations,omitempty"`
	SelectionMode string              `yaml:"selection_mode,omitempty"`
}

// ColumnConfig declares one column. Type is a keyword: string,
// number, boolean or date.
type ColumnConfig struct {
	ID         string  `yaml:"id"`
	Field      string  `yaml:"field,omitempty"`
	Type       string  `yaml:"type,omitempty"`
	Sortable   bool    `yaml:"sortable,omitempty"`
	Filterable bool    `yaml:"filterable,omitempty"`
	Resizable  bool    `yaml:"resizable,omitempty"`
	Editable   bool    `yaml:"editable,omitempty"`
	Hidden     bool    `yaml:"hidden,omitempty"`
	Width      float64 `yaml:"width,omitempty"`
}

// SortConfig declares one default sort key.
type SortConfig struct {
	Column    string `yaml:"column"`
	Direction string `yaml:"direction,omitempty"`
}

// Load parses and validates a YAML grid definition.
func Load(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.UnmarshalStrict(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse grid config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid grid config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if len(c.Columns) == 0 {
		return errors.New("no columns defined")
	}

	seen := make(map[string]bool, len(c.Columns))
	for _, cc := range c.Columns {
		if cc.ID == "" {
			return errors.New("column with empty id")
		}
		if seen[cc.ID] {
			return fmt.Errorf("duplicate column id %q", cc.ID)
		}
		seen[cc.ID] = true
		if _, err := column.ParseDataType(cc.Type); err != nil {
			return fmt.Errorf("column %q: %w", cc.ID, err)
		}
	}

	for _, sc := range c.Sort {
		if !seen[sc.Column] {
			return fmt.Errorf("sort references unknown column %q", sc.Column)
		}
		if _, err := sorting.ParseDirection(sc.Direction); err != nil {
			return fmt.Errorf("sort on %q: %w", sc.Column, err)
		}
	}

	for _, id := range c.GroupBy {
		if !seen[id] {
			return fmt.Errorf("group_by references unknown column %q", id)
		}
	}

	for id, aggs := range c.Aggregations {
		if !seen[id] {
			return fmt.Errorf("aggregations reference unknown column %q", id)
		}
		for _, a := range aggs {
			if _, err := grouping.ParseAggregation(a); err != nil {
				return fmt.Errorf("column %q: %w", id, err)
			}
		}
	}

	return nil
}

// GridColumns materializes the column definitions. Field defaults to
// the column id; hidden columns start invisible.
func (c *Config) GridColumns() []column.Column {
	cols := make([]column.Column, 0, len(c.Columns))
	for i, cc := range c.Columns {
		dt, _ := column.ParseDataType(cc.Type)
		field := cc.Field
		if field == "" {
			field = cc.ID
		}
		width := cc.Width
		if width == 0 {
			width = 100
		}
		cols = append(cols, column.Column{
			ID:         cc.ID,
			Field:      field,
			Type:       dt,
			Sortable:   cc.Sortable,
			Filterable: cc.Filterable,
			Resizable:  cc.Resizable,
			Editable:   cc.Editable,
			Visible:    !cc.Hidden,
			Width:      width,
			Order:      i,
		})
	}
	return cols
}

// SortKeys materializes the default sort state.
func (c *Config) SortKeys() []sorting.Key {
	keys := make([]sorting.Key, 0, len(c.Sort))
	for i, sc := range c.Sort {
		dir, _ := sorting.ParseDirection(sc.Direction)
		keys = append(keys, sorting.Key{ColumnID: sc.Column, Direction: dir, Priority: i})
	}
	return keys
}

// GroupSpec materializes the default grouping.
func (c *Config) GroupSpec() grouping.Spec {
	spec := grouping.Spec{Columns: c.GroupBy}
	if len(c.Aggregations) > 0 {
		spec.Aggregations = make(map[string][]grouping.Aggregation, len(c.Aggregations))
		for id, aggs := range c.Aggregations {
			for _, a := range aggs {
				agg, _ := grouping.ParseAggregation(a)
				spec.Aggregations[id] = append(spec.Aggregations[id], agg)
			}
		}
	}
	return spec
}
