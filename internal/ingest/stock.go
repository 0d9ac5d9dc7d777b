// internal/ingest/stock.go
package ingest

import (
	"strings"

	"github.com/floritflats/opsboard/internal/amenity"
	"github.com/floritflats/opsboard/internal/tabular"
)

const (
	colUbicacion = "Ubicación"
	colProducto  = "Producto"
	colCantidad  = "Cantidad"
)

func isLocationCol(c string) bool {
	switch c {
	case "ubicacion", "location", "almacen", "ubicacion/stock":
		return true
	}
	return strings.Contains(c, "ubic")
}

func isProductCol(c string) bool {
	switch c {
	case "producto", "product", "nombre producto", "product name":
		return true
	}
	return strings.Contains(c, "product") || strings.Contains(c, "producto")
}

func isQuantityCol(c string) bool {
	switch c {
	case "cantidad", "quantity", "qty", "on hand", "disponible":
		return true
	}
	return strings.Contains(c, "cant") || strings.Contains(c, "quant") || strings.Contains(c, "qty")
}

// ParseStock converts a stock export (CSV or XLSX) into raw stock lines.
// Header matching accepts English and Spanish synonyms; quantities are
// leniently coerced (anything non-numeric becomes 0). Rows without a
// product name are stripped; an input left empty by that cleaning is an
// EmptyInputError.
func ParseStock(filename string, data []byte) ([]amenity.StockLine, error) {
	var t tabular.Table
	var err error
	if strings.HasSuffix(strings.ToLower(filename), ".csv") {
		t, err = tabular.ReadCSV(data)
	} else {
		t, err = tabular.ReadXLSX(data)
	}
	if err != nil {
		return nil, err
	}
	if t.Empty() {
		return nil, &EmptyInputError{Input: "stock"}
	}

	idxLoc := t.ColumnIndex(isLocationCol)
	idxProd := t.ColumnIndex(isProductCol)
	idxQty := t.ColumnIndex(isQuantityCol)

	var missing []string
	if idxLoc < 0 {
		missing = append(missing, colUbicacion)
	}
	if idxProd < 0 {
		missing = append(missing, colProducto)
	}
	if idxQty < 0 {
		missing = append(missing, colCantidad)
	}
	if len(missing) > 0 {
		return nil, &MissingColumnsError{Input: "stock", Missing: missing, Seen: t.Header}
	}

	var lines []amenity.StockLine
	for _, row := range t.Rows {
		producto := t.Cell(row, idxProd)
		if producto == "" {
			continue
		}
		lines = append(lines, amenity.StockLine{
			Almacen:  t.Cell(row, idxLoc),
			Producto: producto,
			Cantidad: tabular.ParseFloat(t.Cell(row, idxQty)),
		})
	}
	if len(lines) == 0 {
		return nil, &EmptyInputError{Input: "stock", Reason: "no rows with a product name"}
	}
	return lines, nil
}
