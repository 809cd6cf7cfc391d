// SPDX-License-Identifier: GPL-3.0-or-later

package gridvalue

import (
	"errors"

	"github.com/tidwall/gjson"
)

var errNotArray = errors.New("rows document is not a JSON array")

// RowsFromJSON ingests a JSON array of flat objects into typed rows.
// kinds maps field names to their column kind; fields present in kinds
// are coerced to that kind (string dates parsed, numeric strings
// parsed), unknown fields keep their native JSON type.
func RowsFromJSON(data []byte, kinds map[string]Kind) ([]Row, error) {
	doc := gjson.ParseBytes(data)
	if !doc.IsArray() {
		return nil, errNotArray
	}

	var rows []Row
	doc.ForEach(func(_, obj gjson.Result) bool {
		row := make(Row)
		obj.ForEach(func(key, val gjson.Result) bool {
			v := fromResult(val)
			if kind, ok := kinds[key.String()]; ok {
				v = Coerce(v, kind)
			}
			row[key.String()] = v
			return true
		})
		rows = append(rows, row)
		return true
	})
	return rows, nil
}

func fromResult(res gjson.Result) Value {
	switch res.Type {
	case gjson.String:
		return String(res.String())
	case gjson.Number:
		return Number(res.Float())
	case gjson.True:
		return Bool(true)
	case gjson.False:
		return Bool(false)
	default:
		return Null()
	}
}
