package loader

import (
	"strings"

	"github.com/spendscope-dev/spendscope/internal/model"
)

// buildTable turns positional rows into a RawTable. Blank rows are skipped,
// the first non-blank row becomes the header and short rows are padded.
func buildTable(rows []model.RawRecord) (*model.RawTable, error) {
	table := &model.RawTable{}
	for _, rec := range rows {
		if isBlank(rec.Values) {
			continue
		}
		if table.Headers == nil {
			table.Headers = trimTrailingEmpty(rec.Values)
			continue
		}
		out := model.RawRecord{
			Row:    rec.Row,
			Values: fit(rec.Values, len(table.Headers)),
		}
		if rec.Numbers != nil {
			out.Numbers = fit(rec.Numbers, len(table.Headers))
		}
		table.Records = append(table.Records, out)
	}
	if len(table.Headers) == 0 {
		return nil, ErrEmptySource
	}
	return table, nil
}

func isBlank(values []string) bool {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

func trimTrailingEmpty(values []string) []string {
	n := len(values)
	for n > 0 && strings.TrimSpace(values[n-1]) == "" {
		n--
	}
	out := make([]string, n)
	copy(out, values[:n])
	return out
}

// fit pads or truncates values to width.
func fit(values []string, width int) []string {
	out := make([]string, width)
	copy(out, values)
	return out
}
