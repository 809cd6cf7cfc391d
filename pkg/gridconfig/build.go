// SPDX-License-Identifier: GPL-3.0-or-later

package gridconfig

import "github.com/gridcore/gridcore/grid"

// Build constructs a grid from the definition. Extra options override
// the definition's defaults.
func (c *Config) Build(opts ...grid.Option) *grid.Grid {
	base := []grid.Option{
		grid.WithSortKeys(c.SortKeys()),
		grid.WithGrouping(c.GroupSpec()),
	}
	if c.PageSize > 0 {
		base = append(base, grid.WithPageSize(c.PageSize))
	}
	if c.SelectionMode == "single" {
		base = append(base, grid.WithSelectionMode(grid.SelectSingle))
	}
	return grid.New(c.GridColumns(), append(base, opts...)...)
}
