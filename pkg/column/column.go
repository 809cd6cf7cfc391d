// SPDX-License-Identifier: GPL-3.0-or-later

package column

import (
	"encoding/json"
	"fmt"

	"github.com/gridcore/gridcore/pkg/gridvalue"
)

// DataType defines the column data type used for filtering, sorting
// and edit coercion.
type DataType uint8

const (
	// TypeString is for text and categorical values.
	TypeString DataType = iota
	// TypeNumber is for numeric values.
	TypeNumber
	// TypeBoolean is for true/false values.
	TypeBoolean
	// TypeDate is for calendar timestamps.
	TypeDate
)

// String returns the keyword used for this data type.
func (t DataType) String() string {
	switch t {
	case TypeNumber:
		return "number"
	case TypeBoolean:
		return "boolean"
	case TypeDate:
		return "date"
	default:
		return "string"
	}
}

// MarshalJSON encodes the data type as its keyword.
func (t DataType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// Kind returns the cell value kind this data type selects.
func (t DataType) Kind() gridvalue.Kind {
	switch t {
	case TypeNumber:
		return gridvalue.KindNumber
	case TypeBoolean:
		return gridvalue.KindBool
	case TypeDate:
		return gridvalue.KindDate
	default:
		return gridvalue.KindString
	}
}

// ParseDataType maps a keyword to its data type.
func ParseDataType(s string) (DataType, error) {
	switch s {
	case "string", "text", "":
		return TypeString, nil
	case "number", "integer", "float":
		return TypeNumber, nil
	case "boolean", "bool":
		return TypeBoolean, nil
	case "date", "datetime", "timestamp":
		return TypeDate, nil
	default:
		return TypeString, fmt.Errorf("unknown column data type %q", s)
	}
}

// Column describes one grid column.
type Column struct {
	ID         string   `yaml:"id" json:"id"`
	Field      string   `yaml:"field" json:"field"`
	Type       DataType `yaml:"-" json:"type"`
	Sortable   bool     `yaml:"sortable,omitempty" json:"sortable"`
	Filterable bool     `yaml:"filterable,omitempty" json:"filterable"`
	Resizable  bool     `yaml:"resizable,omitempty" json:"resizable"`
	Editable   bool     `yaml:"editable,omitempty" json:"editable"`
	Visible    bool     `yaml:"visible,omitempty" json:"visible"`
	Width      float64  `yaml:"width,omitempty" json:"width"`
	Order      int      `yaml:"order,omitempty" json:"order"`
}
