package loader

import (
	"errors"
	"fmt"
	"io"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"

	"github.com/spendscope-dev/spendscope/internal/model"
)

// WorkbookReader reads modern OOXML workbooks (.xlsx, .xlsm).
type WorkbookReader struct{}

// Format returns the reader name.
func (w *WorkbookReader) Format() string { return "xlsx" }

// Read returns the rows of the requested sheet, or of the first sheet.
func (w *WorkbookReader) Read(r io.ReadSeeker, opts Options) (*model.RawTable, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrEmptySource
	}
	sheet := sheets[0]
	if opts.Sheet != "" {
		sheet = ""
		for _, name := range sheets {
			if name == opts.Sheet {
				sheet = name
				break
			}
		}
		if sheet == "" {
			return nil, fmt.Errorf("%w: %q (have %v)", ErrUnknownSheet, opts.Sheet, sheets)
		}
	}

	cells, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", sheet, err)
	}
	raw, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", sheet, err)
	}

	rows := make([]model.RawRecord, 0, len(cells))
	for i, values := range cells {
		rec := model.RawRecord{Row: i + 1, Values: values}
		if i < len(raw) {
			rec.Numbers = numericCells(f, sheet, i+1, raw[i])
		}
		rows = append(rows, rec)
	}

	table, err := buildTable(rows)
	if err != nil {
		return nil, err
	}
	table.Sheet = sheet
	return table, nil
}

// numericCells returns the unformatted values of the typed numeric cells in a
// sheet row, or nil when the row has none. Cells without an explicit type are
// numbers in OOXML.
func numericCells(f *excelize.File, sheet string, row int, raw []string) []string {
	var out []string
	for j, v := range raw {
		if v == "" {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(j+1, row)
		if err != nil {
			continue
		}
		typ, err := f.GetCellType(sheet, cell)
		if err != nil || (typ != excelize.CellTypeUnset && typ != excelize.CellTypeNumber) {
			continue
		}
		if out == nil {
			out = make([]string, len(raw))
		}
		out[j] = v
	}
	return out
}

// LegacyWorkbookReader reads BIFF8 workbooks (.xls).
type LegacyWorkbookReader struct{}

// Format returns the reader name.
func (w *LegacyWorkbookReader) Format() string { return "xls" }

// Read returns the rows of the requested sheet, or of the first sheet.
func (w *LegacyWorkbookReader) Read(r io.ReadSeeker, opts Options) (*model.RawTable, error) {
	wb, err := xls.OpenReader(r, "utf-8")
	if err != nil {
		return nil, fmt.Errorf("opening legacy workbook: %w", err)
	}
	if wb == nil {
		return nil, errors.New("opening legacy workbook: no workbook stream")
	}
	if wb.NumSheets() == 0 {
		return nil, ErrEmptySource
	}

	ws := wb.GetSheet(0)
	if opts.Sheet != "" {
		ws = nil
		var names []string
		for i := 0; i < wb.NumSheets(); i++ {
			s := wb.GetSheet(i)
			if s == nil {
				continue
			}
			names = append(names, s.Name)
			if s.Name == opts.Sheet {
				ws = s
				break
			}
		}
		if ws == nil {
			return nil, fmt.Errorf("%w: %q (have %v)", ErrUnknownSheet, opts.Sheet, names)
		}
	}
	if ws == nil {
		return nil, ErrEmptySource
	}

	var rows []model.RawRecord
	for i := 0; i <= int(ws.MaxRow); i++ {
		row := legacyRow(ws, i)
		if row == nil {
			continue
		}
		// Rows stored without a ROW record report no column range.
		width := row.LastCol()
		if width == 0 {
			width = legacyMaxCols
		}
		values := make([]string, width)
		for j := row.FirstCol(); j < width; j++ {
			values[j] = row.Col(j)
		}
		rows = append(rows, model.RawRecord{Row: i + 1, Values: values})
	}

	table, err := buildTable(rows)
	if err != nil {
		return nil, err
	}
	table.Sheet = ws.Name
	return table, nil
}

// legacyMaxCols is the BIFF8 column limit.
const legacyMaxCols = 256

// legacyRow returns nil for rows the sheet does not store. WorkSheet.Row
// dereferences the missing row instead of returning nil.
func legacyRow(ws *xls.WorkSheet, i int) (row *xls.Row) {
	defer func() {
		if recover() != nil {
			row = nil
		}
	}()
	return ws.Row(i)
}
