// SPDX-License-Identifier: GPL-3.0-or-later

package filter

import "github.com/gridcore/gridcore/pkg/gridvalue"

// trueTokens are the operand spellings that mean true; anything else
// means false.
var trueTokens = map[string]bool{"true": true, "yes": true, "1": true}

func compileBoolean(d Descriptor) func(gridvalue.Value) bool {
	want := trueTokens[normalize(d.Operand)]
	return func(v gridvalue.Value) bool {
		return v.Bool() == want
	}
}
