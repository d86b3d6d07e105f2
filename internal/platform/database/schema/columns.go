package schema

import (
	"strconv"
	"strings"

	"github.com/mrfuxi/gae-blog/pkg/slice"
)

// List joins column names into a SQL column list.
func List(columns []string) string {
	return strings.Join(columns, ", ")
}

// Placeholders returns the positional parameters "$1, ..., $n".
func Placeholders(n int) string {
	params := make([]string, n)
	for i := range params {
		params[i] = "$" + strconv.Itoa(i+1)
	}
	return strings.Join(params, ", ")
}

// AsText casts the given uuid column to text so it scans into a string.
func AsText(columns []string, column string) []string {
	return slice.Map(columns, func(name string) string {
		if name == column {
			return name + "::text"
		}
		return name
	})
}
