// Package csvutil renders record sets as CSV with a caller-supplied
// column mapping. Headers are written bare; every value is quoted with
// embedded quotes doubled, so commas and newlines inside values survive.
package csvutil

import (
	"strings"
)

// Column maps a record key to its CSV header.
type Column struct {
	Key    string
	Header string
}

// Marshal renders rows as CSV text. Column order follows the mapping.
// An empty row set still yields the header line. Lines are joined with
// '\n' and the output carries no trailing newline.
func Marshal(rows []map[string]string, columns []Column) string {
	var sb strings.Builder

	for i, col := range columns {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(col.Header)
	}

	for _, row := range rows {
		sb.WriteByte('\n')
		for i, col := range columns {
			if i > 0 {
				sb.WriteByte(',')
			}
			sb.WriteString(quote(row[col.Key]))
		}
	}
	return sb.String()
}

func quote(val string) string {
	return `"` + strings.ReplaceAll(val, `"`, `""`) + `"`
}
