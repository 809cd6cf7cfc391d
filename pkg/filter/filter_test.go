// SPDX-License-Identifier: GPL-3.0-or-later

package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridcore/gridcore/pkg/column"
	"github.com/gridcore/gridcore/pkg/gridvalue"
)

func mustFilter(t *testing.T, d Descriptor, dt column.DataType) *Filter {
	t.Helper()
	f, err := New(d, dt)
	require.NoError(t, err)
	return f
}

func TestInactiveDescriptorMatchesEverything(t *testing.T) {
	values := []gridvalue.Value{
		gridvalue.String("anything"),
		gridvalue.Number(42),
		gridvalue.Bool(false),
		gridvalue.Null(),
	}

	for _, dt := range []column.DataType{column.TypeString, column.TypeNumber, column.TypeBoolean, column.TypeDate} {
		f := mustFilter(t, Descriptor{Operand: "   "}, dt)
		for _, v := range values {
			assert.True(t, f.Match(v), "type %s value %s", dt, v.AsString())
		}
	}
}

func TestStringDefaultDialect(t *testing.T) {
	tests := map[string]struct {
		operand string
		value   string
		want    bool
	}{
		"substring":          {operand: "ohn", value: "John", want: true},
		"case insensitive":   {operand: "JOHN", value: "johnson", want: true},
		"operand trimmed":    {operand: "  john  ", value: "John", want: true},
		"no match":           {operand: "smith", value: "John", want: false},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			f := mustFilter(t, Descriptor{Operand: test.operand}, column.TypeString)
			assert.Equal(t, test.want, f.Match(gridvalue.String(test.value)))
		})
	}
}

func TestEnhancedTextOperators(t *testing.T) {
	tests := map[string]struct {
		desc  Descriptor
		value gridvalue.Value
		want  bool
	}{
		"equals":              {desc: Descriptor{Op: OpEquals, Operand: "john"}, value: gridvalue.String("John"), want: true},
		"equals mismatch":     {desc: Descriptor{Op: OpEquals, Operand: "john"}, value: gridvalue.String("Johnny"), want: false},
		"notEquals":           {desc: Descriptor{Op: OpNotEquals, Operand: "john"}, value: gridvalue.String("Jane"), want: true},
		"startsWith":          {desc: Descriptor{Op: OpStartsWith, Operand: "jo"}, value: gridvalue.String("John"), want: true},
		"endsWith":            {desc: Descriptor{Op: OpEndsWith, Operand: "hn"}, value: gridvalue.String("John"), want: true},
		"isEmpty null":        {desc: Descriptor{Op: OpIsEmpty}, value: gridvalue.Null(), want: true},
		"isEmpty blank":       {desc: Descriptor{Op: OpIsEmpty}, value: gridvalue.String("  "), want: true},
		"isNotEmpty":          {desc: Descriptor{Op: OpIsNotEmpty}, value: gridvalue.String("x"), want: true},
		"regex":               {desc: Descriptor{Op: OpRegex, Operand: "^Jo.n$"}, value: gridvalue.String("John"), want: true},
		"regex i flag":        {desc: Descriptor{Op: OpRegex, Operand: "^john$", RegexFlags: "i"}, value: gridvalue.String("John"), want: true},
		"regex no flag":       {desc: Descriptor{Op: OpRegex, Operand: "^john$"}, value: gridvalue.String("John"), want: false},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			f := mustFilter(t, test.desc, column.TypeString)
			assert.Equal(t, test.want, f.Match(test.value))
		})
	}
}

func TestRegexValidationFailsOpen(t *testing.T) {
	f, err := New(Descriptor{Op: OpRegex, Operand: "(unclosed"}, column.TypeString)
	require.Error(t, err)
	assert.True(t, f.Match(gridvalue.String("anything")))
}

func TestFuzzyMatchBoundaries(t *testing.T) {
	tests := map[string]struct {
		value     string
		operand   string
		threshold float64
		want      bool
	}{
		"identical at 1.0":    {value: "John", operand: "John", threshold: 1.0, want: true},
		"close rounds to 0.8": {value: "Jon", operand: "John", threshold: 0.8, want: true},
		"close at 0.7":        {value: "Jon", operand: "John", threshold: 0.7, want: true},
		"close rejects 0.9":   {value: "Jon", operand: "John", threshold: 0.9, want: false},
		"dissimilar at 0.8":   {value: "Smith", operand: "John", threshold: 0.8, want: false},
		"empty value":         {value: "", operand: "x", threshold: 0.5, want: false},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			d := Descriptor{Op: OpFuzzy, Operand: test.operand, Threshold: test.threshold}
			f := mustFilter(t, d, column.TypeString)
			assert.Equal(t, test.want, f.Match(gridvalue.String(test.value)))
		})
	}
}

func TestFuzzySimilarity(t *testing.T) {
	assert.Equal(t, 1.0, fuzzySimilarity("john", "john"))
	assert.InDelta(t, 0.75, fuzzySimilarity("jon", "john"), 0.001)
	assert.Equal(t, 1.0, fuzzySimilarity("", ""))
	assert.Equal(t, 0.0, fuzzySimilarity("ab", "xy"))
}

func TestNumericDefaultDialect(t *testing.T) {
	ages := []float64{25, 30, 28, 35, 22}

	run := func(operand string) []float64 {
		f := mustFilter(t, Descriptor{Operand: operand}, column.TypeNumber)
		var out []float64
		for _, n := range ages {
			if f.Match(gridvalue.Number(n)) {
				out = append(out, n)
			}
		}
		return out
	}

	assert.Equal(t, []float64{30, 28, 35}, run(">=28"))
	assert.Equal(t, []float64{25, 22}, run("<28"))
	assert.Equal(t, []float64{28}, run("28"))
}

func TestNumericFallbackToSubstring(t *testing.T) {
	// An operand that is neither a number nor a prefixed comparison
	// degrades to substring matching on the stringified value.
	f := mustFilter(t, Descriptor{Operand: ".5"}, column.TypeNumber)
	assert.True(t, f.Match(gridvalue.Number(2.5)))
	assert.False(t, f.Match(gridvalue.Number(25)))
}

func TestNumericExplicitOperators(t *testing.T) {
	tests := map[string]struct {
		desc  Descriptor
		value float64
		want  bool
	}{
		"eq":              {desc: Descriptor{Op: OpEq, Operand: "5"}, value: 5, want: true},
		"ne":              {desc: Descriptor{Op: OpNe, Operand: "5"}, value: 6, want: true},
		"lt":              {desc: Descriptor{Op: OpLt, Operand: "5"}, value: 4, want: true},
		"le boundary":     {desc: Descriptor{Op: OpLe, Operand: "5"}, value: 5, want: true},
		"gt":              {desc: Descriptor{Op: OpGt, Operand: "5"}, value: 6, want: true},
		"ge boundary":     {desc: Descriptor{Op: OpGe, Operand: "5"}, value: 5, want: true},
		"between inside":  {desc: Descriptor{Op: OpBetween, Operand: "10", Operand2: "20"}, value: 15, want: true},
		"between edge":    {desc: Descriptor{Op: OpBetween, Operand: "10", Operand2: "20"}, value: 20, want: true},
		"between outside": {desc: Descriptor{Op: OpBetween, Operand: "10", Operand2: "20"}, value: 21, want: false},
		"between swapped": {desc: Descriptor{Op: OpBetween, Operand: "20", Operand2: "10"}, value: 15, want: true},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			f := mustFilter(t, test.desc, column.TypeNumber)
			assert.Equal(t, test.want, f.Match(gridvalue.Number(test.value)))
		})
	}
}

func TestNumericPredicates(t *testing.T) {
	tests := map[string]struct {
		op    Operator
		value gridvalue.Value
		want  bool
	}{
		"even":               {op: OpIsEven, value: gridvalue.Number(4), want: true},
		"even rejects odd":   {op: OpIsEven, value: gridvalue.Number(5), want: false},
		"even rejects frac":  {op: OpIsEven, value: gridvalue.Number(4.5), want: false},
		"odd":                {op: OpIsOdd, value: gridvalue.Number(7), want: true},
		"prime":              {op: OpIsPrime, value: gridvalue.Number(13), want: true},
		"prime rejects 1":    {op: OpIsPrime, value: gridvalue.Number(1), want: false},
		"prime rejects 9":    {op: OpIsPrime, value: gridvalue.Number(9), want: false},
		"positive":           {op: OpIsPositive, value: gridvalue.Number(0.1), want: true},
		"negative":           {op: OpIsNegative, value: gridvalue.Number(-3), want: true},
		"integer":            {op: OpIsInteger, value: gridvalue.Number(3), want: true},
		"integer rejects":    {op: OpIsInteger, value: gridvalue.Number(3.5), want: false},
		"non-number":         {op: OpIsEven, value: gridvalue.String("4"), want: false},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			f := mustFilter(t, Descriptor{Op: test.op}, column.TypeNumber)
			assert.Equal(t, test.want, f.Match(test.value))
		})
	}
}

func TestBooleanFilter(t *testing.T) {
	tests := map[string]struct {
		operand string
		value   gridvalue.Value
		want    bool
	}{
		"yes matches true":   {operand: "yes", value: gridvalue.Bool(true), want: true},
		"yes rejects false":  {operand: "yes", value: gridvalue.Bool(false), want: false},
		"true matches true":  {operand: "true", value: gridvalue.Bool(true), want: true},
		"1 matches true":     {operand: "1", value: gridvalue.Bool(true), want: true},
		"no matches false":   {operand: "no", value: gridvalue.Bool(false), want: true},
		"null is false":      {operand: "no", value: gridvalue.Null(), want: true},
		"yes rejects null":   {operand: "yes", value: gridvalue.Null(), want: false},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			f := mustFilter(t, Descriptor{Operand: test.operand}, column.TypeBoolean)
			assert.Equal(t, test.want, f.Match(test.value))
		})
	}
}

func TestParseOperatorRoundTrip(t *testing.T) {
	for op, name := range operatorNames {
		got, err := ParseOperator(name)
		require.NoError(t, err, name)
		assert.Equal(t, op, got, name)
	}

	_, err := ParseOperator("bogus")
	assert.Error(t, err)
}

func TestCachedMatchEvaluatesOncePerValue(t *testing.T) {
	calls := 0
	f := withCache(&Filter{match: func(v gridvalue.Value) bool {
		calls++
		return v.AsString() == "hit"
	}})

	for i := 0; i < 3; i++ {
		assert.True(t, f.Match(gridvalue.String("hit")))
		assert.False(t, f.Match(gridvalue.String("miss")))
	}
	assert.Equal(t, 2, calls)
}
