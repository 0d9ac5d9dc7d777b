// internal/tabular/html_test.go
package tabular

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const legacyExport = `<html xmlns:x="urn:schemas-microsoft-com:office:excel">
<body>
<table border="1">
<tr><td colspan="2">Resumen</td></tr>
<tr><td>Total</td><td>2</td></tr>
</table>
<table border="1">
<tr><th>Alojamiento</th><th>Fecha entrada</th><th>Fecha salida</th><th>Cliente</th></tr>
<tr><td>APOLO 29</td><td>10/06/2026 14:00</td><td>12/06/2026 10:00</td><td>Ana</td></tr>
<tr><td>ATICO MAR</td><td>11/06/2026 15:00</td><td>13/06/2026 11:00</td><td>Luis</td></tr>
</table>
</body>
</html>`

func TestExtractHTMLTables(t *testing.T) {
	tables, err := ExtractHTMLTables([]byte(legacyExport))
	require.NoError(t, err)
	require.Len(t, tables, 2)

	// colspan is replicated so the column count stays stable
	assert.Equal(t, []string{"Resumen", "Resumen"}, tables[0].Header)

	reservations := tables[1]
	assert.Equal(t, []string{"Alojamiento", "Fecha entrada", "Fecha salida", "Cliente"}, reservations.Header)
	require.Len(t, reservations.Rows, 2)
	assert.Equal(t, "APOLO 29", reservations.Rows[0][0])
	assert.Equal(t, "10/06/2026 14:00", reservations.Rows[0][1])
}

func TestExtractHTMLTablesEmptyDocument(t *testing.T) {
	tables, err := ExtractHTMLTables([]byte("<html><body><p>nothing here</p></body></html>"))
	require.NoError(t, err)
	assert.Empty(t, tables)
}

func TestIsHTML(t *testing.T) {
	assert.True(t, IsHTML([]byte(legacyExport)))
	assert.True(t, IsHTML([]byte(`<TABLE><tr><td>x</td></tr></TABLE>`)))
	assert.True(t, IsHTML([]byte(`content="text/html; charset=utf-8" rec-html40`)))
	assert.False(t, IsHTML([]byte("Producto,Cantidad\nGel,3\n")))
	assert.False(t, IsHTML([]byte{0x50, 0x4b, 0x03, 0x04})) // zip magic, real xlsx
	assert.False(t, IsHTML(nil))
}
