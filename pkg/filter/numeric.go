// SPDX-License-Identifier: GPL-3.0-or-later

package filter

import (
	"math"
	"strconv"
	"strings"

	"github.com/gridcore/gridcore/pkg/gridvalue"
)

func compileNumeric(d Descriptor) func(gridvalue.Value) bool {
	operand := strings.TrimSpace(d.Operand)

	switch d.Op {
	case OpEq, OpNe, OpLt, OpLe, OpGt, OpGe:
		bound, err := strconv.ParseFloat(operand, 64)
		if err != nil {
			return substringNumeric(operand)
		}
		return compareNumeric(d.Op, bound)
	case OpBetween:
		lo, err1 := strconv.ParseFloat(operand, 64)
		hi, err2 := strconv.ParseFloat(strings.TrimSpace(d.Operand2), 64)
		if err1 != nil || err2 != nil {
			return substringNumeric(operand)
		}
		if lo > hi {
			lo, hi = hi, lo
		}
		return func(v gridvalue.Value) bool {
			n, ok := v.Number()
			return ok && n >= lo && n <= hi
		}
	case OpIsEven:
		return wholePredicate(func(n int64) bool { return n%2 == 0 })
	case OpIsOdd:
		return wholePredicate(func(n int64) bool { return n%2 != 0 })
	case OpIsPrime:
		return wholePredicate(isPrime)
	case OpIsPositive:
		return numericPredicate(func(n float64) bool { return n > 0 })
	case OpIsNegative:
		return numericPredicate(func(n float64) bool { return n < 0 })
	case OpIsInteger:
		return numericPredicate(func(n float64) bool { return n == math.Trunc(n) })
	default:
		return defaultNumeric(operand)
	}
}

// defaultNumeric implements the loose dialect: a numeric operand means
// exact equality, a ">=…"/"<=…"/">…"/"<…" operand means comparison,
// anything else falls back to substring match on the stringified value.
func defaultNumeric(operand string) func(gridvalue.Value) bool {
	if n, err := strconv.ParseFloat(operand, 64); err == nil {
		return compareNumeric(OpEq, n)
	}

	for _, pfx := range []struct {
		token string
		op    Operator
	}{
		{">=", OpGe}, {"<=", OpLe}, {">", OpGt}, {"<", OpLt},
	} {
		if !strings.HasPrefix(operand, pfx.token) {
			continue
		}
		rest := strings.TrimSpace(strings.TrimPrefix(operand, pfx.token))
		if bound, err := strconv.ParseFloat(rest, 64); err == nil {
			return compareNumeric(pfx.op, bound)
		}
	}

	return substringNumeric(operand)
}

func compareNumeric(op Operator, bound float64) func(gridvalue.Value) bool {
	return func(v gridvalue.Value) bool {
		n, ok := v.Number()
		if !ok {
			return false
		}
		switch op {
		case OpNe:
			return n != bound
		case OpLt:
			return n < bound
		case OpLe:
			return n <= bound
		case OpGt:
			return n > bound
		case OpGe:
			return n >= bound
		default:
			return n == bound
		}
	}
}

func substringNumeric(operand string) func(gridvalue.Value) bool {
	operand = strings.ToLower(operand)
	return func(v gridvalue.Value) bool {
		return strings.Contains(strings.ToLower(v.AsString()), operand)
	}
}

func numericPredicate(pred func(float64) bool) func(gridvalue.Value) bool {
	return func(v gridvalue.Value) bool {
		n, ok := v.Number()
		return ok && pred(n)
	}
}

func wholePredicate(pred func(int64) bool) func(gridvalue.Value) bool {
	return func(v gridvalue.Value) bool {
		n, ok := v.Number()
		if !ok || n != math.Trunc(n) {
			return false
		}
		return pred(int64(n))
	}
}

func isPrime(n int64) bool {
	if n < 2 {
		return false
	}
	for i := int64(2); i*i <= n; i++ {
		if n%i == 0 {
			return false
		}
	}
	return true
}
