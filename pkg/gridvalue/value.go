// SPDX-License-Identifier: GPL-3.0-or-later

package gridvalue

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/araddon/dateparse"
)

// Kind identifies the active variant of a cell Value.
type Kind uint8

const (
	// KindNull is the absent value.
	KindNull Kind = iota
	// KindString is a text value.
	KindString
	// KindNumber is a float64 value.
	KindNumber
	// KindBool is a true/false value.
	KindBool
	// KindDate is a calendar timestamp.
	KindDate
)

// String returns the keyword used for this kind.
func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "boolean"
	case KindDate:
		return "date"
	default:
		return "null"
	}
}

// MarshalJSON encodes the kind as its keyword.
func (k Kind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

// Value is a dynamically-typed cell value. The zero Value is null.
type Value struct {
	kind Kind
	str  string
	num  float64
	b    bool
	t    time.Time
}

// Null returns the null value.
func Null() Value { return Value{} }

// String returns a string value.
func String(s string) Value { return Value{kind: KindString, str: s} }

// Number returns a numeric value.
func Number(f float64) Value { return Value{kind: KindNumber, num: f} }

// Bool returns a boolean value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Date returns a date value.
func Date(t time.Time) Value { return Value{kind: KindDate, t: t} }

// Kind returns the active variant.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether the value is null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// AsString stringifies the value for display and loose matching.
func (v Value) AsString() string {
	switch v.kind {
	case KindString:
		return v.str
	case KindNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindDate:
		return v.t.Format("2006-01-02")
	default:
		return ""
	}
}

// Number returns the numeric value and whether the variant is numeric.
func (v Value) Number() (float64, bool) {
	if v.kind != KindNumber {
		return 0, false
	}
	return v.num, true
}

// NumberOr returns the numeric value, or def for non-numeric variants.
func (v Value) NumberOr(def float64) float64 {
	if v.kind != KindNumber {
		return def
	}
	return v.num
}

// Bool returns the boolean value; null and non-boolean variants are false.
func (v Value) Bool() bool {
	return v.kind == KindBool && v.b
}

// Time returns the date value and whether the variant is a date.
func (v Value) Time() (time.Time, bool) {
	if v.kind != KindDate {
		return time.Time{}, false
	}
	return v.t, true
}

// TimeOr returns the date value, or def for non-date variants.
func (v Value) TimeOr(def time.Time) time.Time {
	if v.kind != KindDate {
		return def
	}
	return v.t
}

// Equal reports deep equality of two values.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindString:
		return v.str == o.str
	case KindNumber:
		return v.num == o.num
	case KindBool:
		return v.b == o.b
	case KindDate:
		return v.t.Equal(o.t)
	default:
		return true
	}
}

// MarshalJSON encodes the value as its native JSON scalar.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindString:
		return json.Marshal(v.str)
	case KindNumber:
		return json.Marshal(v.num)
	case KindBool:
		return json.Marshal(v.b)
	case KindDate:
		return json.Marshal(v.t.Format(time.RFC3339))
	default:
		return []byte("null"), nil
	}
}

// Coerce converts a value to the given kind where a sensible conversion
// exists, returning the value unchanged otherwise. Used when ingesting
// loosely-typed rows against a typed column.
func Coerce(v Value, kind Kind) Value {
	if v.kind == kind || v.kind == KindNull {
		return v
	}
	switch kind {
	case KindString:
		return String(v.AsString())
	case KindNumber:
		if v.kind == KindString {
			if f, err := strconv.ParseFloat(v.str, 64); err == nil {
				return Number(f)
			}
		}
	case KindBool:
		if v.kind == KindString {
			if b, err := strconv.ParseBool(v.str); err == nil {
				return Bool(b)
			}
		}
	case KindDate:
		if v.kind == KindString {
			if t, err := dateparse.ParseAny(v.str); err == nil {
				return Date(t)
			}
		}
	}
	return v
}

// Row is a mapping from field name to cell value.
type Row map[string]Value

// Field returns the value for the given field; missing fields are null.
func (r Row) Field(name string) Value {
	return r[name]
}

// Clone returns a copy of the row.
func (r Row) Clone() Row {
	out := make(Row, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}
