// SPDX-License-Identifier: GPL-3.0-or-later

package filter

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/agext/levenshtein"

	"github.com/gridcore/gridcore/pkg/gridvalue"
)

func compileText(d Descriptor) (func(gridvalue.Value) bool, error) {
	operand := normalize(d.Operand)

	switch d.Op {
	case OpEquals:
		return func(v gridvalue.Value) bool { return normalize(v.AsString()) == operand }, nil
	case OpNotEquals:
		return func(v gridvalue.Value) bool { return normalize(v.AsString()) != operand }, nil
	case OpStartsWith:
		return func(v gridvalue.Value) bool { return strings.HasPrefix(normalize(v.AsString()), operand) }, nil
	case OpEndsWith:
		return func(v gridvalue.Value) bool { return strings.HasSuffix(normalize(v.AsString()), operand) }, nil
	case OpIsEmpty:
		return func(v gridvalue.Value) bool { return v.IsNull() || strings.TrimSpace(v.AsString()) == "" }, nil
	case OpIsNotEmpty:
		return func(v gridvalue.Value) bool { return !v.IsNull() && strings.TrimSpace(v.AsString()) != "" }, nil
	case OpRegex:
		re, err := compileRegex(d.Operand, d.RegexFlags)
		if err != nil {
			return nil, err
		}
		return func(v gridvalue.Value) bool { return re.MatchString(v.AsString()) }, nil
	case OpFuzzy:
		threshold := d.Threshold
		return func(v gridvalue.Value) bool {
			// Similarity rounds to one decimal before the threshold
			// compare, so near misses like 0.75 against 0.8 pass.
			sim := fuzzySimilarity(normalize(v.AsString()), operand)
			return math.Round(sim*10)/10 >= threshold
		}, nil
	default:
		// Substring containment is the default string dialect.
		return func(v gridvalue.Value) bool { return strings.Contains(normalize(v.AsString()), operand) }, nil
	}
}

// compileRegex translates the i/m matching flags into Go regexp group
// flags. The "global" flag only changes replace-all semantics in the
// source dialect and has no meaning for matching.
func compileRegex(expr, flags string) (*regexp.Regexp, error) {
	var prefix string
	if strings.ContainsRune(flags, 'i') {
		prefix += "i"
	}
	if strings.ContainsRune(flags, 'm') {
		prefix += "m"
	}
	if prefix != "" {
		expr = fmt.Sprintf("(?%s)%s", prefix, expr)
	}
	return regexp.Compile(expr)
}

// fuzzySimilarity is 1 - distance/maxLen, so identical strings score 1
// and fully dissimilar strings score 0.
func fuzzySimilarity(a, b string) float64 {
	if a == b {
		return 1
	}
	maxLen := len(a)
	if len(b) > maxLen {
		maxLen = len(b)
	}
	if maxLen == 0 {
		return 1
	}
	dist := levenshtein.Distance(a, b, nil)
	return 1 - float64(dist)/float64(maxLen)
}
