package clean

import (
	"strings"

	"goprep/domain/table"
)

// Deduplicate removes rows that are exact duplicates across all
// columns, keeping the first occurrence. Running it twice yields the
// same row count as running it once.
func Deduplicate(t *table.Table) (*table.Table, int) {
	seen := make(map[string]struct{}, len(t.Rows))
	out := table.New(t.Columns...)
	var b strings.Builder
	for _, r := range t.Rows {
		b.Reset()
		for _, col := range t.Columns {
			b.WriteString(r[col].CSVString())
			b.WriteByte(0x1f) // unit separator, cannot appear in cells
		}
		key := b.String()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out.Append(r)
	}
	return out, t.NumRows() - out.NumRows()
}
