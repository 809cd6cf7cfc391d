// SPDX-License-Identifier: GPL-3.0-or-later

package filter

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/gridcore/gridcore/pkg/column"
	"github.com/gridcore/gridcore/pkg/gridvalue"
)

// Operator selects the filter dialect applied to a column.
type Operator uint8

const (
	// OpDefault applies the per-type default dialect: substring
	// containment for strings, equality/prefix-comparison for numbers,
	// token matching for booleans, calendar equality for dates.
	OpDefault Operator = iota

	// Text dialect.
	OpEquals
	OpNotEquals
	OpStartsWith
	OpEndsWith
	OpContains
	OpIsEmpty
	OpIsNotEmpty
	OpRegex
	OpFuzzy

	// Numeric dialect.
	OpEq
	OpNe
	OpLt
	OpLe
	OpGt
	OpGe
	OpBetween
	OpIsEven
	OpIsOdd
	OpIsPrime
	OpIsPositive
	OpIsNegative
	OpIsInteger

	// Date dialect.
	OpBefore
	OpAfter
	OpIsToday
	OpIsYesterday
	OpIsTomorrow
	OpIsThisWeek
	OpIsThisMonth
	OpIsThisYear
	OpIsLastWeek
	OpIsLastMonth
	OpIsLastYear
	OpIsNextWeek
	OpIsNextMonth
	OpIsNextYear
	OpIsWeekend
	OpIsWeekday
	OpRelativeRange
	OpQuarter
	OpSeason
)

var operatorNames = map[Operator]string{
	OpDefault:       "default",
	OpEquals:        "equals",
	OpNotEquals:     "notEquals",
	OpStartsWith:    "startsWith",
	OpEndsWith:      "endsWith",
	OpContains:      "contains",
	OpIsEmpty:       "isEmpty",
	OpIsNotEmpty:    "isNotEmpty",
	OpRegex:         "regex",
	OpFuzzy:         "fuzzyMatch",
	OpEq:            "eq",
	OpNe:            "ne",
	OpLt:            "lt",
	OpLe:            "le",
	OpGt:            "gt",
	OpGe:            "ge",
	OpBetween:       "between",
	OpIsEven:        "isEven",
	OpIsOdd:         "isOdd",
	OpIsPrime:       "isPrime",
	OpIsPositive:    "isPositive",
	OpIsNegative:    "isNegative",
	OpIsInteger:     "isInteger",
	OpBefore:        "before",
	OpAfter:         "after",
	OpIsToday:       "isToday",
	OpIsYesterday:   "isYesterday",
	OpIsTomorrow:    "isTomorrow",
	OpIsThisWeek:    "isThisWeek",
	OpIsThisMonth:   "isThisMonth",
	OpIsThisYear:    "isThisYear",
	OpIsLastWeek:    "isLastWeek",
	OpIsLastMonth:   "isLastMonth",
	OpIsLastYear:    "isLastYear",
	OpIsNextWeek:    "isNextWeek",
	OpIsNextMonth:   "isNextMonth",
	OpIsNextYear:    "isNextYear",
	OpIsWeekend:     "isWeekend",
	OpIsWeekday:     "isWeekday",
	OpRelativeRange: "relativeDateRange",
	OpQuarter:       "isQuarter",
	OpSeason:        "isSeason",
}

// String returns the keyword used for this operator.
func (op Operator) String() string {
	if s, ok := operatorNames[op]; ok {
		return s
	}
	return "default"
}

// MarshalJSON encodes the operator as its keyword.
func (op Operator) MarshalJSON() ([]byte, error) {
	return json.Marshal(op.String())
}

// ParseOperator maps a keyword to its operator.
func ParseOperator(s string) (Operator, error) {
	for op, name := range operatorNames {
		if name == s {
			return op, nil
		}
	}
	return OpDefault, fmt.Errorf("unknown filter operator %q", s)
}

// predicate operators match on the value alone and ignore the operand.
func (op Operator) isPredicate() bool {
	switch op {
	case OpIsEmpty, OpIsNotEmpty,
		OpIsEven, OpIsOdd, OpIsPrime, OpIsPositive, OpIsNegative, OpIsInteger,
		OpIsToday, OpIsYesterday, OpIsTomorrow,
		OpIsThisWeek, OpIsThisMonth, OpIsThisYear,
		OpIsLastWeek, OpIsLastMonth, OpIsLastYear,
		OpIsNextWeek, OpIsNextMonth, OpIsNextYear,
		OpIsWeekend, OpIsWeekday:
		return true
	default:
		return false
	}
}

// Descriptor is one column's filter constraint. Descriptors for
// different columns combine with logical AND.
type Descriptor struct {
	ColumnID string   `yaml:"column" json:"column"`
	Op       Operator `yaml:"-" json:"op"`
	Operand  string   `yaml:"operand,omitempty" json:"operand"`
	// Operand2 is the upper bound for between, or the unit
	// (days/weeks/months/years) for relativeDateRange.
	Operand2 string `yaml:"operand2,omitempty" json:"operand2"`
	// Threshold is the minimum similarity for fuzzyMatch, in [0,1].
	Threshold float64 `yaml:"threshold,omitempty" json:"threshold"`
	// RegexFlags holds any of "i", "m" for the regex operator.
	RegexFlags string `yaml:"regex_flags,omitempty" json:"regex_flags"`
	// CompareTime opts date equality into time-of-day comparison.
	CompareTime bool `yaml:"compare_time,omitempty" json:"compare_time"`
}

// IsActive reports whether the descriptor constrains anything. A
// missing or empty operand means no constraint unless the operator
// matches on the value alone.
func (d Descriptor) IsActive() bool {
	return d.Op.isPredicate() || strings.TrimSpace(d.Operand) != ""
}

// Filter is a compiled, reusable predicate over cell values.
type Filter struct {
	match func(gridvalue.Value) bool
	now   func() time.Time
}

// Match reports whether the value passes the filter.
func (f *Filter) Match(v gridvalue.Value) bool {
	return f.match(v)
}

// True returns a filter that matches every value. Inactive and
// invalid descriptors compile to it (fail-open).
func True() *Filter {
	return &Filter{match: func(gridvalue.Value) bool { return true }}
}

// New compiles a descriptor against its column's data type. A
// non-nil error is a validation error (currently only an unparsable
// regex); the returned filter is still usable and matches everything.
func New(d Descriptor, dt column.DataType) (*Filter, error) {
	if !d.IsActive() {
		return True(), nil
	}

	f := &Filter{now: time.Now}
	var err error
	switch dt {
	case column.TypeNumber:
		f.match = compileNumeric(d)
	case column.TypeBoolean:
		f.match = compileBoolean(d)
	case column.TypeDate:
		f.match, err = compileDate(d, f)
	default:
		f.match, err = compileText(d)
	}
	if err != nil {
		return True(), err
	}
	if d.Op == OpRegex || d.Op == OpFuzzy {
		return withCache(f), nil
	}
	return f, nil
}

// ValidationError reports a descriptor the grid accepted but could not
// compile. The associated filter is fail-open.
type ValidationError struct {
	ColumnID string
	Err      error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("filter on column %q: %v", e.ColumnID, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
