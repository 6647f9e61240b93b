// Package excel writes overview workbooks: the per-motif site overview and
// the global differential table.
package excel

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	dstats "gobind/domain/stats"
	"gobind/internal/errors"
)

const sheet = "Sheet1"

// Writer implements the overview output port with xlsx workbooks.
type Writer struct{}

// NewWriter creates a workbook writer.
func NewWriter() *Writer {
	return &Writer{}
}

// WriteOverview writes the global overview table, one row per motif.
func (w *Writer) WriteOverview(path string, conditions []string, comparisons []dstats.Comparison, rows []*dstats.MotifOverview) error {
	data := make([][]string, 0, len(rows))
	for _, row := range rows {
		data = append(data, row.Strings(conditions, comparisons))
	}
	return WriteWorkbook(path, dstats.Header(conditions, comparisons), data)
}

// WriteTable writes one generic table as a workbook.
func (w *Writer) WriteTable(path string, header []string, rows [][]string) error {
	return WriteWorkbook(path, header, rows)
}

// WriteWorkbook writes a single-sheet workbook with an autofilter over the
// header row.
func WriteWorkbook(path string, header []string, rows [][]string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := setRow(f, 1, header); err != nil {
		return errors.OutputWrite(path, err)
	}
	for i, row := range rows {
		if err := setRow(f, i+2, row); err != nil {
			return errors.OutputWrite(path, err)
		}
	}

	last, err := excelize.CoordinatesToCellName(len(header), len(rows)+1)
	if err != nil {
		return errors.OutputWrite(path, err)
	}
	if err := f.AutoFilter(sheet, fmt.Sprintf("A1:%s", last), nil); err != nil {
		return errors.OutputWrite(path, err)
	}

	if err := f.SaveAs(path); err != nil {
		return errors.OutputWrite(path, err)
	}
	return nil
}

func setRow(f *excelize.File, rowNum int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return err
	}
	row := make([]interface{}, len(values))
	for i, v := range values {
		row[i] = v
	}
	return f.SetSheetRow(sheet, cell, &row)
}
