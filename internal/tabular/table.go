// internal/tabular/table.go
package tabular

import (
	"strconv"
	"strings"

	"github.com/floritflats/opsboard/internal/textnorm"
)

// Table is an immutable in-memory table: a header row plus data rows.
// Rows may be ragged; cell access goes through Cell which pads with "".
type Table struct {
	Header []string
	Rows   [][]string
}

// Cell returns the value at (row, col), or "" when the row is shorter
// than the header.
func (t Table) Cell(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[col])
}

// Empty reports whether the table has no data rows.
func (t Table) Empty() bool {
	return len(t.Rows) == 0
}

// ColumnIndex returns the index of the first header cell satisfying pred,
// or -1.
func (t Table) ColumnIndex(pred func(normalized string) bool) int {
	for i, h := range t.Header {
		if pred(textnorm.Normalize(h)) {
			return i
		}
	}
	return -1
}

// ColumnByKeys returns the index of the first header whose normalized key
// form equals one of the given keys, or -1. Mirrors flexible header
// matching on exports whose headers drift in spacing and punctuation.
func (t Table) ColumnByKeys(keys ...string) int {
	targets := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		targets[textnorm.NormalizeKey(k)] = struct{}{}
	}
	for i, h := range t.Header {
		if _, ok := targets[textnorm.NormalizeKey(h)]; ok {
			return i
		}
	}
	return -1
}

// ParseFloat coerces a cell to a number. Any unparseable value becomes 0;
// this lenient policy is deliberate, not an error path.
func ParseFloat(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	// tolerate thousand separators and European decimal commas
	if strings.Contains(s, ",") && !strings.Contains(s, ".") {
		s = strings.ReplaceAll(s, ",", ".")
	} else {
		s = strings.ReplaceAll(s, ",", "")
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}

// dropEmptyRows removes rows whose every cell is blank.
func dropEmptyRows(rows [][]string) [][]string {
	out := rows[:0:0]
	for _, r := range rows {
		blank := true
		for _, c := range r {
			if strings.TrimSpace(c) != "" {
				blank = false
				break
			}
		}
		if !blank {
			out = append(out, r)
		}
	}
	return out
}
