// internal/ingest/reservations.go
package ingest

import (
	"fmt"
	"strings"

	"github.com/floritflats/opsboard/internal/domain"
	"github.com/floritflats/opsboard/internal/tabular"
)

// Logical column names used in MissingColumnsError reporting.
const (
	colAlojamiento  = "Alojamiento"
	colFechaEntrada = "Fecha entrada"
	colFechaSalida  = "Fecha salida"
)

func isLodgingCol(c string) bool {
	return strings.Contains(c, "alojamiento") || strings.Contains(c, "apartamento")
}

func isCheckInCol(c string) bool {
	return strings.Contains(c, "fecha") && strings.Contains(c, "entrada")
}

func isCheckOutCol(c string) bool {
	return strings.Contains(c, "fecha") && strings.Contains(c, "salida")
}

// ParseReservations converts a raw reservation export (CSV, XLSX, or the
// legacy HTML dump disguised as .xls) into canonical reservation records.
// Unparseable dates become the zero-time sentinel rather than failing the
// parse; a required column that cannot be located is a MissingColumnsError.
func ParseReservations(filename string, data []byte) ([]domain.Reservation, error) {
	t, err := loadReservationTable(filename, data)
	if err != nil {
		return nil, err
	}
	if t.Empty() {
		return nil, &EmptyInputError{Input: "reservations", Reason: "no data rows after table extraction"}
	}

	idxApt := t.ColumnIndex(isLodgingCol)
	idxIn := t.ColumnIndex(isCheckInCol)
	idxOut := t.ColumnIndex(isCheckOutCol)

	var missing []string
	if idxApt < 0 {
		missing = append(missing, colAlojamiento)
	}
	if idxIn < 0 {
		missing = append(missing, colFechaEntrada)
	}
	if idxOut < 0 {
		missing = append(missing, colFechaSalida)
	}
	if len(missing) > 0 {
		return nil, &MissingColumnsError{Input: "reservations", Missing: missing, Seen: t.Header}
	}

	var out []domain.Reservation
	for _, row := range t.Rows {
		apt := t.Cell(row, idxApt)
		if apt == "" {
			continue // separator rows in the HTML exports
		}
		out = append(out, domain.Reservation{
			Apartamento: apt,
			CheckIn:     ParseDate(t.Cell(row, idxIn)),
			CheckOut:    ParseDate(t.Cell(row, idxOut)),
		})
	}
	if len(out) == 0 {
		return nil, &EmptyInputError{Input: "reservations", Reason: "no rows with a lodging unit"}
	}
	return out, nil
}

// loadReservationTable sniffs the payload format and returns the single
// table carrying the reservation columns, with its header promoted.
func loadReservationTable(filename string, data []byte) (tabular.Table, error) {
	switch {
	case strings.HasSuffix(strings.ToLower(filename), ".csv"):
		return tabular.ReadCSV(data)
	case tabular.IsHTML(data):
		return bestHTMLTable(data)
	default:
		t, err := tabular.ReadXLSX(data)
		if err != nil {
			return tabular.Table{}, err
		}
		return tabular.PromoteHeader(t, tabular.DefaultHeaderScanRows), nil
	}
}

// bestHTMLTable extracts all embedded tables, promotes headers for each
// independently, and selects the one whose header scores highest against
// the reservation column detectors. Ties break on first occurrence.
// Narrow tables (title banners, pagination footers) are never candidates.
func bestHTMLTable(data []byte) (tabular.Table, error) {
	tables, err := tabular.ExtractHTMLTables(data)
	if err != nil {
		return tabular.Table{}, fmt.Errorf("failed to parse html export: %w", err)
	}

	best := tabular.Table{}
	bestScore := -1
	for _, raw := range tables {
		if len(raw.Header) <= tabular.MinUsefulColumns {
			continue
		}
		t := tabular.PromoteHeader(raw, tabular.DefaultHeaderScanRows)
		if s := tabular.ScoreAsReservationHeader(t); s > bestScore {
			best, bestScore = t, s
		}
	}
	if bestScore < 0 {
		return tabular.Table{}, &EmptyInputError{Input: "reservations", Reason: "html export contains no usable tables"}
	}
	return best, nil
}
