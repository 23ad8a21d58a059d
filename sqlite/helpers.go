package sqlite

import (
	"fmt"
	"strings"
	"time"
)

// parseExtractedAt reads the stored extraction time of article id.
func parseExtractedAt(id, value string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("article %s: bad extracted_at %q: %w", id, value, err)
	}
	return t, nil
}

// appendPagination adds the LIMIT and OFFSET of an article filter. SQLite
// only accepts OFFSET after LIMIT, so an offset alone gets LIMIT -1.
func appendPagination(query *strings.Builder, args *[]any, limit, offset int) {
	switch {
	case limit > 0:
		query.WriteString(" LIMIT ?")
		*args = append(*args, limit)
	case offset > 0:
		query.WriteString(" LIMIT -1")
	}
	if offset > 0 {
		query.WriteString(" OFFSET ?")
		*args = append(*args, offset)
	}
}
