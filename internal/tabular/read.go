// internal/tabular/read.go
package tabular

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ReadCSV parses CSV bytes into a Table. The first row becomes the header;
// ragged rows are accepted.
func ReadCSV(data []byte) (Table, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return Table{}, nil
	}
	if err != nil {
		return Table{}, fmt.Errorf("failed to read csv header: %w", err)
	}

	var rows [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Table{}, fmt.Errorf("failed to read csv row: %w", err)
		}
		rows = append(rows, record)
	}

	return Table{Header: trimAll(header), Rows: dropEmptyRows(rows)}, nil
}

// ReadXLSX parses the first sheet of an XLSX workbook into a Table.
func ReadXLSX(data []byte) (Table, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return Table{}, fmt.Errorf("failed to open xlsx: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return Table{}, fmt.Errorf("xlsx has no sheets")
	}

	it, err := f.Rows(sheets[0])
	if err != nil {
		return Table{}, fmt.Errorf("failed to read rows from sheet %s: %w", sheets[0], err)
	}
	defer it.Close()

	var all [][]string
	for it.Next() {
		record, err := it.Columns()
		if err != nil {
			return Table{}, fmt.Errorf("failed to read xlsx row: %w", err)
		}
		all = append(all, record)
	}
	if err := it.Error(); err != nil {
		return Table{}, fmt.Errorf("error iterating xlsx rows: %w", err)
	}

	all = dropEmptyRows(all)
	if len(all) == 0 {
		return Table{}, nil
	}
	return Table{Header: trimAll(all[0]), Rows: all[1:]}, nil
}

// SheetTable is a Table plus the workbook sheet it came from.
type SheetTable struct {
	Sheet string
	Table Table
}

// ReadXLSXSheets parses every sheet of an XLSX workbook. Sheets that are
// empty or unreadable are skipped rather than failing the whole file.
func ReadXLSXSheets(data []byte) ([]SheetTable, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to open xlsx: %w", err)
	}
	defer f.Close()

	var out []SheetTable
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			continue
		}
		rows = dropEmptyRows(rows)
		if len(rows) == 0 {
			continue
		}
		out = append(out, SheetTable{
			Sheet: sheet,
			Table: Table{Header: trimAll(rows[0]), Rows: rows[1:]},
		})
	}
	return out, nil
}

// IsHTML sniffs whether a byte payload is an HTML document pretending to
// be a spreadsheet (the legacy ".xls" reservation dump).
func IsHTML(data []byte) bool {
	head := bytes.ToLower(data[:min(len(data), 2000)])
	return bytes.Contains(head, []byte("<html")) ||
		bytes.Contains(head, []byte("<table")) ||
		bytes.Contains(head, []byte("rec-html40"))
}

func trimAll(cells []string) []string {
	out := make([]string, len(cells))
	for i, c := range cells {
		out[i] = strings.TrimSpace(c)
	}
	return out
}
