package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/gocarina/gocsv"
	"github.com/xuri/excelize/v2"

	"github.com/spendscope-dev/spendscope/internal/config"
	"github.com/spendscope-dev/spendscope/internal/model"
)

// ExportSheet is the worksheet name of spreadsheet exports.
const ExportSheet = "Cleaned Data"

// exportRow is the on-disk shape of a clean record. Spend keeps two decimals
// so re-importing the file yields the same values.
type exportRow struct {
	Supplier string `csv:"supplier"`
	Spend    string `csv:"spend"`
	Category string `csv:"category"`
	Year     string `csv:"year"`
}

func toExportRow(r model.CleanRecord) exportRow {
	row := exportRow{
		Supplier: r.Supplier,
		Spend:    r.Spend.StringFixed(2),
		Category: r.Category,
	}
	if r.Year != 0 {
		row.Year = strconv.Itoa(r.Year)
	}
	return row
}

// Export writes the clean records to path in the chosen format.
func Export(path string, format config.Format, sep rune, records []model.CleanRecord) error {
	var write func(io.Writer) error
	switch format {
	case config.FormatCSV:
		write = func(w io.Writer) error { return writeCSV(w, sep, records) }
	case config.FormatXLSX:
		write = func(w io.Writer) error { return writeXLSX(w, records) }
	default:
		return fmt.Errorf("unknown export format %q", format)
	}
	if err := writeAtomic(path, write); err != nil {
		return fmt.Errorf("exporting %s: %w", format, err)
	}
	return nil
}

func writeCSV(w io.Writer, sep rune, records []model.CleanRecord) error {
	rows := make([]exportRow, 0, len(records))
	for _, r := range records {
		rows = append(rows, toExportRow(r))
	}

	cw := csv.NewWriter(w)
	if sep != 0 {
		cw.Comma = sep
	}
	if err := gocsv.MarshalCSV(&rows, gocsv.NewSafeCSVWriter(cw)); err != nil {
		return fmt.Errorf("writing CSV: %w", err)
	}
	cw.Flush()
	return cw.Error()
}

func writeXLSX(w io.Writer, records []model.CleanRecord) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), ExportSheet); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}

	header := make([]any, 0, len(model.Fields))
	for _, field := range model.Fields {
		header = append(header, string(field))
	}
	if err := f.SetSheetRow(ExportSheet, "A1", &header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("creating header style: %w", err)
	}
	if err := f.SetCellStyle(ExportSheet, "A1", "D1", bold); err != nil {
		return fmt.Errorf("styling header: %w", err)
	}

	for i, r := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		var year any = ""
		if r.Year != 0 {
			year = r.Year
		}
		values := []any{r.Supplier, r.Spend.Round(2).InexactFloat64(), r.Category, year}
		if err := f.SetSheetRow(ExportSheet, cell, &values); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}

	if len(records) > 0 {
		// Built-in number format 4 is "#,##0.00".
		money, err := f.NewStyle(&excelize.Style{NumFmt: 4})
		if err != nil {
			return fmt.Errorf("creating amount style: %w", err)
		}
		last := fmt.Sprintf("B%d", len(records)+1)
		if err := f.SetCellStyle(ExportSheet, "B2", last, money); err != nil {
			return fmt.Errorf("styling amounts: %w", err)
		}
	}
	if err := f.SetColWidth(ExportSheet, "A", "A", 32); err != nil {
		return fmt.Errorf("sizing columns: %w", err)
	}
	if err := f.SetColWidth(ExportSheet, "B", "D", 16); err != nil {
		return fmt.Errorf("sizing columns: %w", err)
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}
