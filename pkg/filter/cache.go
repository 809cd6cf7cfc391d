// SPDX-License-Identifier: GPL-3.0-or-later

package filter

import "github.com/gridcore/gridcore/pkg/gridvalue"

// withCache adds a match-result cache keyed by the value's string
// form. The expensive matchers (regex, fuzzy) are evaluated over
// every row on every recomputation, and column values repeat.
func withCache(f *Filter) *Filter {
	cache := make(map[string]bool)
	inner := f.match
	f.match = func(v gridvalue.Value) bool {
		key := v.AsString()
		if result, ok := cache[key]; ok {
			return result
		}
		result := inner(v)
		cache[key] = result
		return result
	}
	return f
}
