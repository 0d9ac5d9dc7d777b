// internal/cleaning/lastreport.go
package cleaning

import (
	"sort"
	"strings"

	"github.com/floritflats/opsboard/internal/domain"
	"github.com/floritflats/opsboard/internal/ingest"
	"github.com/floritflats/opsboard/internal/tabular"
	"github.com/floritflats/opsboard/internal/textnorm"
)

// noneSynonyms are form answers that mean "nothing to report".
var noneSynonyms = map[string]bool{
	"":                true,
	"n/a":             true,
	"na":              true,
	"-":               true,
	"no es necesario": true,
}

func hasContent(v string) bool {
	return !noneSynonyms[strings.ToLower(strings.TrimSpace(v))]
}

func colContains(subs ...string) func(string) bool {
	return func(c string) bool {
		for _, sub := range subs {
			if strings.Contains(c, sub) {
				return true
			}
		}
		return false
	}
}

// LastReportView reduces raw cleaning-form responses to one row per
// apartment: the chronologically last submission, with textual apartment
// variants collapsed onto one canonical key. Rows whose timestamp cannot
// be parsed are dropped (they cannot be ordered); timestamp ties resolve
// to the later input row.
func LastReportView(t tabular.Table) ([]domain.LastCleaningReport, error) {
	idxTS := t.ColumnIndex(colContains("marca temporal"))
	idxApt := t.ColumnByKeys("Apartamento")
	idxAlt := t.ColumnIndex(colContains("otro piso", "indicar aqui"))
	idxLlaves := t.ColumnByKeys("LLAVES")
	idxOtras := t.ColumnIndex(colContains("otras reposiciones"))
	idxIncid := t.ColumnIndex(colContains("incidencias", "tareas a realizar"))

	var missing []string
	for _, c := range []struct {
		name string
		idx  int
	}{
		{"Marca temporal", idxTS},
		{"Apartamento", idxApt},
		{"LLAVES", idxLlaves},
		{"OTRAS REPOSICIONES", idxOtras},
		{"INCIDENCIAS/TAREAS A REALIZAR", idxIncid},
	} {
		if c.idx < 0 {
			missing = append(missing, c.name)
		}
	}
	if len(missing) > 0 {
		return nil, &ingest.MissingColumnsError{Input: "cleaning report", Missing: missing, Seen: t.Header}
	}

	type entry struct {
		report domain.LastCleaningReport
		order  int
	}
	latest := make(map[string]entry)

	for i, row := range t.Rows {
		ts := ingest.ParseDate(t.Cell(row, idxTS))
		if ts.IsZero() {
			continue
		}

		apt := t.Cell(row, idxApt)
		// the form's "Otro" picker defers to a free-text column
		if idxAlt >= 0 && strings.EqualFold(apt, "otro") {
			if alt := t.Cell(row, idxAlt); alt != "" {
				apt = alt
			}
		}
		key := textnorm.CanonicalApartment(apt)
		if key == "" {
			continue
		}

		llaves := t.Cell(row, idxLlaves)
		otras := t.Cell(row, idxOtras)
		incid := t.Cell(row, idxIncid)

		prev, seen := latest[key]
		if seen && prev.report.LastReport.After(ts) {
			continue
		}
		// equal timestamps: later input row wins (stable-sort tail semantics)
		latest[key] = entry{
			order: i,
			report: domain.LastCleaningReport{
				Apartamento:       key,
				LastReport:        ts,
				Llaves:            llaves,
				OtrasReposiciones: otras,
				Incidencias:       incid,
				HasLlaves:         hasContent(llaves),
				HasOtrasRepos:     hasContent(otras),
				HasIncidencias:    hasContent(incid),
			},
		}
	}

	out := make([]domain.LastCleaningReport, 0, len(latest))
	for _, e := range latest {
		out = append(out, e.report)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Apartamento < out[j].Apartamento })
	return out, nil
}
