// internal/tabular/header.go
package tabular

import (
	"strings"

	"github.com/floritflats/opsboard/internal/textnorm"
)

const (
	// DefaultHeaderScanRows bounds how deep PromoteHeader looks for the
	// real header row.
	DefaultHeaderScanRows = 15

	// headerScoreThreshold is the minimum score for a row to be promoted.
	headerScoreThreshold = 3

	// MinUsefulColumns: tables at or below this width are export noise
	// (title banners, pagination footers) and are never scored or
	// selected as a reservation table.
	MinUsefulColumns = 3
)

// scoreHeaderRow scores a candidate header row by the presence of the
// domain keywords the reservation exports carry. Weights are fixed:
// lodging-unit label, fecha+entrada pair and fecha+salida pair weigh 3
// each; check-in/check-out literals and the client column weigh 1 each.
func scoreHeaderRow(cells []string) int {
	var hasLodging, hasEntrada, hasSalida, hasCheckIn, hasCheckOut, hasCliente bool
	for _, raw := range cells {
		c := textnorm.Normalize(raw)
		if c == "" {
			continue
		}
		if strings.Contains(c, "alojamiento") || strings.Contains(c, "apartamento") {
			hasLodging = true
		}
		if strings.Contains(c, "fecha") && strings.Contains(c, "entrada") {
			hasEntrada = true
		}
		if strings.Contains(c, "fecha") && strings.Contains(c, "salida") {
			hasSalida = true
		}
		if strings.Contains(c, "check-in") || strings.Contains(c, "checkin") {
			hasCheckIn = true
		}
		if strings.Contains(c, "check-out") || strings.Contains(c, "checkout") {
			hasCheckOut = true
		}
		if strings.Contains(c, "cliente") {
			hasCliente = true
		}
	}

	score := 0
	if hasLodging {
		score += 3
	}
	if hasEntrada {
		score += 3
	}
	if hasSalida {
		score += 3
	}
	if hasCheckIn {
		score++
	}
	if hasCheckOut {
		score++
	}
	if hasCliente {
		score++
	}
	return score
}

// hasRealHeader reports whether the existing column labels already look
// like a reservation header (lodging unit plus an entrada column), in
// which case scanning is skipped.
func hasRealHeader(header []string) bool {
	var lodging, entrada bool
	for _, raw := range header {
		c := textnorm.Normalize(raw)
		if strings.Contains(c, "alojamiento") || strings.Contains(c, "apartamento") {
			lodging = true
		}
		if strings.Contains(c, "entrada") {
			entrada = true
		}
	}
	return lodging && entrada
}

// PromoteHeader finds the true header row in a raw export whose first
// rows may be title banners. It scans the provisional header plus up to
// maxScanRows data rows, scores each candidate, and promotes the best one:
// that row's cells become the header and everything above it is discarded.
// Promotion is refused (table returned unchanged) when the best score is
// below the acceptance threshold; callers treat that as a parse failure
// downstream.
func PromoteHeader(t Table, maxScanRows int) Table {
	if len(t.Header) <= MinUsefulColumns {
		return t
	}
	if hasRealHeader(t.Header) {
		return t
	}
	if maxScanRows <= 0 {
		maxScanRows = DefaultHeaderScanRows
	}

	// candidate 0 is the provisional header itself
	bestIdx, bestScore := -1, 0
	if s := scoreHeaderRow(t.Header); s > bestScore {
		bestIdx, bestScore = 0, s
	}
	limit := min(maxScanRows-1, len(t.Rows))
	for i := 0; i < limit; i++ {
		if s := scoreHeaderRow(t.Rows[i]); s > bestScore {
			bestIdx, bestScore = i+1, s
		}
	}

	if bestScore < headerScoreThreshold {
		return t
	}
	if bestIdx == 0 {
		return t
	}
	return Table{
		Header: trimAll(t.Rows[bestIdx-1]),
		Rows:   t.Rows[bestIdx:],
	}
}

// ScoreAsReservationHeader exposes the header score of a table's current
// header row, used to pick the best table out of a multi-table export.
func ScoreAsReservationHeader(t Table) int {
	return scoreHeaderRow(t.Header)
}
