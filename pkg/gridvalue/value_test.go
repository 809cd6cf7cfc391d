// SPDX-License-Identifier: GPL-3.0-or-later

package gridvalue

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValueAsString(t *testing.T) {
	tests := map[string]struct {
		value Value
		want  string
	}{
		"string":       {value: String("hello"), want: "hello"},
		"whole number": {value: Number(42), want: "42"},
		"fraction":     {value: Number(3.5), want: "3.5"},
		"bool true":    {value: Bool(true), want: "true"},
		"date":         {value: Date(time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)), want: "2024-03-15"},
		"null":         {value: Null(), want: ""},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, test.want, test.value.AsString())
		})
	}
}

func TestValueAccessors(t *testing.T) {
	n, ok := Number(7).Number()
	require.True(t, ok)
	assert.Equal(t, 7.0, n)

	_, ok = String("7").Number()
	assert.False(t, ok)
	assert.Equal(t, 0.0, Null().NumberOr(0))

	assert.True(t, Bool(true).Bool())
	assert.False(t, Null().Bool())
	assert.False(t, String("true").Bool())

	day := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	got, ok := Date(day).Time()
	require.True(t, ok)
	assert.True(t, got.Equal(day))
}

func TestValueEqual(t *testing.T) {
	day := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)

	assert.True(t, String("a").Equal(String("a")))
	assert.False(t, String("a").Equal(String("b")))
	assert.True(t, Null().Equal(Null()))
	assert.False(t, Number(1).Equal(String("1")))
	assert.True(t, Date(day).Equal(Date(day.In(time.FixedZone("x", 3600)))))
}

func TestCoerce(t *testing.T) {
	tests := map[string]struct {
		value Value
		kind  Kind
		want  Value
	}{
		"string to number":     {value: String("12.5"), kind: KindNumber, want: Number(12.5)},
		"bad number unchanged": {value: String("abc"), kind: KindNumber, want: String("abc")},
		"string to bool":       {value: String("true"), kind: KindBool, want: Bool(true)},
		"number to string":     {value: Number(5), kind: KindString, want: String("5")},
		"null untouched":       {value: Null(), kind: KindNumber, want: Null()},
		"string to date": {
			value: String("2024-03-15"),
			kind:  KindDate,
			want:  Date(time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)),
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert.True(t, test.want.Equal(Coerce(test.value, test.kind)))
		})
	}
}

func TestRowsFromJSON(t *testing.T) {
	data := []byte(`[
		{"name":"Alice","age":30,"active":true,"joined":"2023-06-01"},
		{"name":"Bob","age":25,"active":false,"joined":null}
	]`)
	kinds := map[string]Kind{"joined": KindDate, "age": KindNumber}

	rows, err := RowsFromJSON(data, kinds)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "Alice", rows[0].Field("name").AsString())
	assert.Equal(t, 30.0, rows[0].Field("age").NumberOr(0))
	assert.True(t, rows[0].Field("active").Bool())
	assert.Equal(t, KindDate, rows[0].Field("joined").Kind())
	assert.True(t, rows[1].Field("joined").IsNull())
	assert.True(t, rows[1].Field("missing").IsNull())
}

func TestRowsFromJSONNotArray(t *testing.T) {
	_, err := RowsFromJSON([]byte(`{"a":1}`), nil)
	assert.Error(t, err)
}
