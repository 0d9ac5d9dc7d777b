// internal/cleaning/lastreport_test.go
package cleaning

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/floritflats/opsboard/internal/ingest"
	"github.com/floritflats/opsboard/internal/tabular"
)

func formTable(rows [][]string) tabular.Table {
	return tabular.Table{
		Header: []string{
			"Marca temporal",
			"Apartamento",
			"Si es otro piso, indicar aquí",
			"LLAVES",
			"OTRAS REPOSICIONES",
			"INCIDENCIAS/TAREAS A REALIZAR",
		},
		Rows: rows,
	}
}

func TestLastReportViewCollapsesVariants(t *testing.T) {
	tab := formTable([][]string{
		{"10/06/2026 09:00:00", "Apolo 29", "", "2 juegos", "", "Nada"},
		{"12/06/2026 10:30:00", "APOLO029", "", "1 juego", "Gel de ducha", "Grifo gotea"},
		{"11/06/2026 08:00:00", "ATICO MAR", "", "OK", "No es necesario", "n/a"},
	})

	got, err := LastReportView(tab)
	require.NoError(t, err)
	require.Len(t, got, 2)

	// sorted by apartment, both spellings collapsed onto one canonical key
	apolo := got[0]
	assert.Equal(t, "APOLO 29", apolo.Apartamento)
	assert.Equal(t, time.Date(2026, 6, 12, 10, 30, 0, 0, time.UTC), apolo.LastReport)
	assert.Equal(t, "1 juego", apolo.Llaves)
	assert.Equal(t, "Gel de ducha", apolo.OtrasReposiciones)
	assert.True(t, apolo.HasOtrasRepos)
	assert.True(t, apolo.HasIncidencias)

	atico := got[1]
	assert.Equal(t, "ATICO MAR", atico.Apartamento)
	assert.True(t, atico.HasLlaves)
	// "No es necesario" and "n/a" mean nothing to report
	assert.False(t, atico.HasOtrasRepos)
	assert.False(t, atico.HasIncidencias)
}

func TestLastReportViewOtroIndirection(t *testing.T) {
	tab := formTable([][]string{
		{"10/06/2026 09:00:00", "Otro", "Mediterraneo 3", "OK", "", ""},
	})

	got, err := LastReportView(tab)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "MEDITERRANEO 3", got[0].Apartamento)
}

func TestLastReportViewDropsUnparseableTimestamps(t *testing.T) {
	tab := formTable([][]string{
		{"ayer", "APOLO 29", "", "OK", "", ""},
		{"10/06/2026 09:00:00", "ATICO MAR", "", "OK", "", ""},
	})

	got, err := LastReportView(tab)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "ATICO MAR", got[0].Apartamento)
}

func TestLastReportViewTimestampTieTakesLaterRow(t *testing.T) {
	tab := formTable([][]string{
		{"10/06/2026 09:00:00", "APOLO 29", "", "primera", "", ""},
		{"10/06/2026 09:00:00", "APOLO 29", "", "segunda", "", ""},
	})

	got, err := LastReportView(tab)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "segunda", got[0].Llaves)
}

func TestLastReportViewMissingColumns(t *testing.T) {
	tab := tabular.Table{
		Header: []string{"Marca temporal", "Apartamento"},
		Rows:   [][]string{{"10/06/2026 09:00:00", "APOLO 29"}},
	}

	_, err := LastReportView(tab)
	var missing *ingest.MissingColumnsError
	require.ErrorAs(t, err, &missing)
	assert.Contains(t, missing.Missing, "LLAVES")
	assert.Contains(t, missing.Missing, "OTRAS REPOSICIONES")
}
