package loader

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/spendscope-dev/spendscope/internal/model"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// DelimitedReader reads separator-delimited text exports.
type DelimitedReader struct {
	Name             string
	DefaultSeparator rune
}

// Format returns the reader name.
func (d *DelimitedReader) Format() string { return d.Name }

// Read parses delimited text. Input that is not valid UTF-8 is decoded as
// Windows-1252, which is what spreadsheet tools emit for "CSV" on Windows.
func (d *DelimitedReader) Read(r io.ReadSeeker, opts Options) (*model.RawTable, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading delimited source: %w", err)
	}
	data = bytes.TrimPrefix(data, utf8BOM)

	var src io.Reader = bytes.NewReader(data)
	if !utf8.Valid(data) {
		slog.Debug("source is not valid UTF-8, decoding as Windows-1252")
		src = transform.NewReader(src, charmap.Windows1252.NewDecoder())
	}

	sep := opts.Separator
	if sep == 0 {
		sep = d.DefaultSeparator
	}

	cr := csv.NewReader(src)
	cr.Comma = sep
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = sep != ' ' && sep != '\t'

	var rows []model.RawRecord
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading delimited source: %w", err)
		}
		line, _ := cr.FieldPos(0)
		rows = append(rows, model.RawRecord{Row: line, Values: rec})
	}
	return buildTable(rows)
}
