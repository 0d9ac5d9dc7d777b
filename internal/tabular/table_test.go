// internal/tabular/table_test.go
package tabular

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFloat(t *testing.T) {
	tests := []struct {
		input string
		want  float64
	}{
		{"7", 7},
		{"3.5", 3.5},
		{"3,5", 3.5},       // European decimal comma
		{"1,234.5", 1234.5}, // thousand separator
		{" 12 ", 12},
		{"", 0},
		{"n/a", 0},
		{"abc", 0},
		{"-2", -2},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseFloat(tt.input), "input %q", tt.input)
	}
}

func TestColumnByKeys(t *testing.T) {
	tab := Table{Header: []string{"ID", "Fecha_entrada ", "APARTAMENTO", "Stock Min."}}

	assert.Equal(t, 1, tab.ColumnByKeys("fechaentrada"))
	assert.Equal(t, 2, tab.ColumnByKeys("apartamento"))
	assert.Equal(t, 3, tab.ColumnByKeys("stockmin"))
	assert.Equal(t, -1, tab.ColumnByKeys("zona"))
	// first matching key wins
	assert.Equal(t, 0, tab.ColumnByKeys("id", "apartamento"))
}

func TestColumnIndex(t *testing.T) {
	tab := Table{Header: []string{"Nº", "Alojamiento", "Fecha entrada"}}
	idx := tab.ColumnIndex(func(c string) bool { return strings.Contains(c, "alojamiento") })
	assert.Equal(t, 1, idx)

	idx = tab.ColumnIndex(func(c string) bool { return strings.Contains(c, "salida") })
	assert.Equal(t, -1, idx)
}

func TestCellPadsShortRows(t *testing.T) {
	tab := Table{Header: []string{"a", "b", "c"}}
	row := []string{"only", " two "}

	assert.Equal(t, "only", tab.Cell(row, 0))
	assert.Equal(t, "two", tab.Cell(row, 1))
	assert.Equal(t, "", tab.Cell(row, 2))
	assert.Equal(t, "", tab.Cell(row, -1))
}

func TestReadCSV(t *testing.T) {
	data := []byte("Producto,Cantidad\nGel de ducha,3\n,\nChampú,5\n")
	tab, err := ReadCSV(data)
	require.NoError(t, err)

	assert.Equal(t, []string{"Producto", "Cantidad"}, tab.Header)
	// the all-blank row is dropped
	require.Len(t, tab.Rows, 2)
	assert.Equal(t, "Champú", tab.Cell(tab.Rows[1], 0))
}
