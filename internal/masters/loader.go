// internal/masters/loader.go
package masters

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/floritflats/opsboard/internal/amenity"
	"github.com/floritflats/opsboard/internal/domain"
	"github.com/floritflats/opsboard/internal/tabular"
	"github.com/floritflats/opsboard/internal/textnorm"
)

// Masters holds the reference data a pipeline run joins against.
type Masters struct {
	Apartments []domain.Apartment
	Thresholds []domain.Threshold
}

// tableRef is one candidate table found in the data directory.
type tableRef struct {
	file    string
	sheet   string
	table   tabular.Table
	colKeys map[string]bool
}

type want string

const (
	wantAptAlmacen want = "apt_almacen"
	wantZonas      want = "zonas"
	wantCafe       want = "cafe"
	wantThresholds want = "thresholds"
)

// acceptScore: a candidate below this is not a credible master table.
const acceptScore = 80

// Load discovers the four master tables in dir by scoring each readable
// table's header set, then builds the deduplicated apartment list and the
// threshold table. The thresholds master is optional (built-in defaults
// apply); the other three are required and an error names any that could
// not be detected.
func Load(dir string) (*Masters, error) {
	refs, err := indexTables(dir)
	if err != nil {
		return nil, err
	}
	if len(refs) == 0 {
		return nil, fmt.Errorf("no readable master tables in %s", dir)
	}

	refZonas := pick(refs, wantZonas)
	refApt := pick(refs, wantAptAlmacen)
	refCafe := pick(refs, wantCafe)
	refThr := pick(refs, wantThresholds)

	var missing []string
	for _, c := range []struct {
		name string
		ref  *tableRef
	}{
		{"zonas", refZonas},
		{"apt_almacen", refApt},
		{"cafe", refCafe},
	} {
		if c.ref == nil {
			missing = append(missing, c.name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("could not detect master tables %v in %s", missing, dir)
	}

	apartments := buildApartments(refZonas.table, refApt.table, refCafe.table)

	thresholds := amenity.DefaultThresholds()
	if refThr != nil {
		if loaded := loadThresholds(refThr.table); len(loaded) > 0 {
			thresholds = loaded
		}
	}

	return &Masters{Apartments: apartments, Thresholds: thresholds}, nil
}

func indexTables(dir string) ([]tableRef, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read masters dir %s: %w", dir, err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".csv", ".xlsx", ".xls":
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	var refs []tableRef
	for _, name := range names {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			continue
		}
		if strings.EqualFold(filepath.Ext(name), ".csv") {
			t, err := tabular.ReadCSV(data)
			if err != nil {
				continue
			}
			refs = append(refs, newRef(name, "", t))
			continue
		}
		sheets, err := tabular.ReadXLSXSheets(data)
		if err != nil {
			continue
		}
		for _, s := range sheets {
			refs = append(refs, newRef(name, s.Sheet, s.Table))
		}
	}
	return refs, nil
}

func newRef(file, sheet string, t tabular.Table) tableRef {
	cols := make(map[string]bool, len(t.Header))
	for _, h := range t.Header {
		cols[textnorm.NormalizeKey(h)] = true
	}
	return tableRef{file: file, sheet: sheet, table: t, colKeys: cols}
}

func (r tableRef) hasAny(keys ...string) bool {
	for _, k := range keys {
		if r.colKeys[k] {
			return true
		}
	}
	return false
}

// score mirrors a simple header/filename classifier: matching column sets
// dominate, filename and sheet hints only break ties.
func score(r tableRef, w want) int {
	fn := strings.ToLower(r.file)
	sh := strings.ToLower(r.sheet)

	hasApt := r.colKeys["apartamento"]
	s := 0
	switch w {
	case wantAptAlmacen:
		if hasApt && r.colKeys["almacen"] {
			s += 100
		}
		if strings.Contains(fn, "invent") || strings.Contains(fn, "apart") || strings.Contains(fn, "almacen") {
			s += 10
		}
		if strings.Contains(sh, "almacen") || strings.Contains(sh, "apart") || strings.Contains(sh, "invent") {
			s += 5
		}
	case wantZonas:
		if hasApt && r.colKeys["zona"] {
			s += 100
		} else if !hasApt && strings.Contains(fn+sh, "zona") && len(r.table.Header) > 0 {
			// wide layout: one column per zone, no APARTAMENTO column
			s += 90
		}
		if strings.Contains(fn, "zona") {
			s += 10
		}
		if strings.Contains(sh, "zona") {
			s += 5
		}
	case wantCafe:
		if hasApt && r.hasAny("cafetipo", "cafe", "tipocafe") {
			s += 100
		}
		if strings.Contains(fn, "cafe") {
			s += 10
		}
		if strings.Contains(sh, "cafe") {
			s += 5
		}
	case wantThresholds:
		if r.colKeys["amenity"] && (r.hasAny("min", "minimo", "stockmin", "stockminimo") || r.hasAny("max", "maximo", "stockmax", "stockmaximo")) {
			s += 100
		}
		if strings.Contains(fn, "threshold") || strings.Contains(fn, "stock") || strings.Contains(fn, "min") || strings.Contains(fn, "max") {
			s += 10
		}
		if strings.Contains(sh, "threshold") || strings.Contains(sh, "stock") || strings.Contains(sh, "min") || strings.Contains(sh, "max") {
			s += 5
		}
	}
	return s
}

func pick(refs []tableRef, w want) *tableRef {
	var best *tableRef
	bestScore := -1
	for i := range refs {
		if s := score(refs[i], w); s > bestScore {
			best, bestScore = &refs[i], s
		}
	}
	if bestScore < acceptScore {
		return nil
	}
	return best
}
