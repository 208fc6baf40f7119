package attendance

import (
	"strings"

	"golang.org/x/text/cases"
)

// Filter returns the records whose member name or member ID contains query,
// ignoring case. Input order is preserved and an empty query returns records as is.
func Filter(records []Record, query string) []Record {
	if query == "" {
		return records
	}

	// A Caser is stateful, so each call gets its own.
	fold := cases.Fold()
	q := fold.String(query)

	out := make([]Record, 0, len(records))
	for _, r := range records {
		if strings.Contains(fold.String(r.MemberName), q) || strings.Contains(fold.String(r.MemberID), q) {
			out = append(out, r)
		}
	}
	return out
}
