// internal/report/excel.go
package report

import (
	"bytes"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/floritflats/opsboard/internal/domain"
)

const dayFormat = "2006-01-02"

// WorkbookName encodes the run's window into the artifact filename.
func WorkbookName(start, end time.Time) string {
	return fmt.Sprintf("operativa_%s_%s.xlsx", start.Format("20060102"), end.Format("20060102"))
}

// WriteWorkbook renders the report as a multi-sheet XLSX workbook. Sheet
// order is Operativa, Reposicion_por_almacen, Sin_clasificar, Carrito;
// empty optional sheets are omitted entirely. Every sheet gets its header
// row frozen.
func WriteWorkbook(r *domain.Report) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const mainSheet = "Operativa"
	if err := f.SetSheetName("Sheet1", mainSheet); err != nil {
		return nil, err
	}
	if err := writeOperativaSheet(f, mainSheet, r.Operativa); err != nil {
		return nil, err
	}

	if len(r.Grid) > 0 {
		if err := writeGridSheet(f, "Reposicion_por_almacen", r.Grid); err != nil {
			return nil, err
		}
	}
	if len(r.Unclassified) > 0 {
		if err := writeUnclassifiedSheet(f, "Sin_clasificar", r.Unclassified); err != nil {
			return nil, err
		}
	}
	if len(r.CartItems) > 0 {
		if err := writeCartSheet(f, "Carrito", r.CartItems, r.CartTotals); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func newSheet(f *excelize.File, name string) error {
	if _, err := f.NewSheet(name); err != nil {
		return err
	}
	return nil
}

func freezeHeader(f *excelize.File, sheet string) error {
	return f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}

func writeRow(f *excelize.File, sheet string, rowIdx int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, rowIdx)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &values)
}

func writeOperativaSheet(f *excelize.File, sheet string, rows []domain.OperativaRow) error {
	header := []interface{}{"Día", "ZONA", "APARTAMENTO", "Estado", "Próxima Entrada", "Lista_reponer", "Bajo_minimo", "CAFE_TIPO"}
	if err := writeRow(f, sheet, 1, header); err != nil {
		return err
	}
	for i, r := range rows {
		next := ""
		if r.NextCheckIn != nil {
			next = r.NextCheckIn.Format(dayFormat)
		}
		values := []interface{}{
			r.Day.Format(dayFormat), r.Zona, r.Apartamento, r.Estado,
			next, r.ListaReponer, r.BajoMinimo, r.CafeTipo,
		}
		if err := writeRow(f, sheet, i+2, values); err != nil {
			return err
		}
	}
	return freezeHeader(f, sheet)
}

func writeGridSheet(f *excelize.File, sheet string, grid []domain.ReplenishmentRow) error {
	if err := newSheet(f, sheet); err != nil {
		return err
	}
	header := []interface{}{"ALMACEN", "Amenity", "Cantidad", "Minimo", "Maximo", "Faltan_para_min", "A_reponer", "Bajo_minimo"}
	if err := writeRow(f, sheet, 1, header); err != nil {
		return err
	}
	for i, r := range grid {
		values := []interface{}{
			r.Almacen, r.Amenity, r.Cantidad, r.Minimo, r.Maximo,
			r.FaltanParaMin, r.AReponer, r.BajoMinimo,
		}
		if err := writeRow(f, sheet, i+2, values); err != nil {
			return err
		}
	}
	return freezeHeader(f, sheet)
}

func writeUnclassifiedSheet(f *excelize.File, sheet string, rows []domain.UnclassifiedProduct) error {
	if err := newSheet(f, sheet); err != nil {
		return err
	}
	if err := writeRow(f, sheet, 1, []interface{}{"ALMACEN", "Producto", "Cantidad"}); err != nil {
		return err
	}
	for i, r := range rows {
		if err := writeRow(f, sheet, i+2, []interface{}{r.Almacen, r.Producto, r.Cantidad}); err != nil {
			return err
		}
	}
	return freezeHeader(f, sheet)
}

func writeCartSheet(f *excelize.File, sheet string, items []domain.CartItem, totals []domain.CartTotal) error {
	if err := newSheet(f, sheet); err != nil {
		return err
	}
	if err := writeRow(f, sheet, 1, []interface{}{"Producto", "Total"}); err != nil {
		return err
	}
	row := 2
	for _, t := range totals {
		if err := writeRow(f, sheet, row, []interface{}{t.Producto, t.Total}); err != nil {
			return err
		}
		row++
	}

	row++ // blank separator before the drop list
	if err := writeRow(f, sheet, row, []interface{}{"Día", "ZONA", "APARTAMENTO", "Producto", "Cantidad"}); err != nil {
		return err
	}
	row++
	for _, it := range items {
		values := []interface{}{it.Day.Format(dayFormat), it.Zona, it.Apartamento, it.Producto, it.Cantidad}
		if err := writeRow(f, sheet, row, values); err != nil {
			return err
		}
		row++
	}
	return freezeHeader(f, sheet)
}
