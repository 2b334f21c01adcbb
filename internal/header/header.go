// Package header resolves heterogeneous column labels to canonical fields.
package header

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spendscope-dev/spendscope/internal/model"
)

type synonym struct {
	text  string
	field model.Field
}

// synonyms is ordered: on substring matches the first entry wins, so longer
// and more specific labels come before the generic ones they contain.
var synonyms = []synonym{
	{"supplier name", model.FieldSupplier},
	{"vendor name", model.FieldSupplier},
	{"supplier", model.FieldSupplier},
	{"vendor", model.FieldSupplier},
	{"counterparty", model.FieldSupplier},
	{"counterpart", model.FieldSupplier},
	{"creditor", model.FieldSupplier},
	{"payee", model.FieldSupplier},
	{"merchant", model.FieldSupplier},
	{"lieferant", model.FieldSupplier},
	{"fournisseur", model.FieldSupplier},
	{"proveedor", model.FieldSupplier},

	{"spend amount", model.FieldSpend},
	{"net amount", model.FieldSpend},
	{"invoice amount", model.FieldSpend},
	{"spend", model.FieldSpend},
	{"amount", model.FieldSpend},
	{"cost", model.FieldSpend},
	{"value", model.FieldSpend},
	{"total", model.FieldSpend},
	{"betrag", model.FieldSpend},
	{"montant", model.FieldSpend},
	{"importe", model.FieldSpend},

	{"spend category", model.FieldCategory},
	{"category", model.FieldCategory},
	{"commodity", model.FieldCategory},
	{"segment", model.FieldCategory},
	{"kategorie", model.FieldCategory},
	{"categorie", model.FieldCategory},

	{"fiscal year", model.FieldYear},
	{"invoice date", model.FieldYear},
	{"posting date", model.FieldYear},
	{"year", model.FieldYear},
	{"date", model.FieldYear},
	{"jahr", model.FieldYear},
	{"année", model.FieldYear},
}

// ignored labels contain a synonym but never carry a canonical value.
var ignored = []string{
	"cost center", "cost centre", "value date",
	"supplier id", "vendor id", "supplier number", "vendor number",
	"unit cost", "unit price", "quantity",
}

var exact = func() map[string]model.Field {
	m := make(map[string]model.Field, len(synonyms))
	for _, s := range synonyms {
		if _, ok := m[s.text]; !ok {
			m[s.text] = s.field
		}
	}
	return m
}()

// MissingFieldError reports a required canonical field no header mapped to.
type MissingFieldError struct {
	Field   model.Field
	Headers []string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("no column maps to required field %q (headers: %s)", e.Field, strings.Join(e.Headers, ", "))
}

// Duplicate records a column ignored because an earlier column already mapped
// to the same field.
type Duplicate struct {
	Header string
	Index  int
	Field  model.Field
}

// Mapping is the resolved header layout of a source.
type Mapping struct {
	Columns    map[model.Field]int // field -> column index
	Headers    map[model.Field]string
	Duplicates []Duplicate
	Unmapped   []string
}

// Has reports whether the source carries a column for f.
func (m Mapping) Has(f model.Field) bool {
	_, ok := m.Columns[f]
	return ok
}

// Clean lowercases a label and collapses whitespace.
func Clean(label string) string {
	return strings.Join(strings.Fields(strings.ToLower(label)), " ")
}

// Lookup maps a single header label to a canonical field.
func Lookup(label string) (model.Field, bool) {
	h := Clean(label)
	if h == "" {
		return "", false
	}
	if f, ok := exact[h]; ok {
		return f, true
	}
	for _, ig := range ignored {
		if strings.Contains(h, ig) {
			return "", false
		}
	}
	for _, s := range synonyms {
		if strings.Contains(h, s.text) {
			return s.field, true
		}
	}
	return "", false
}

// Resolve maps headers to canonical fields. The leftmost column wins when two
// headers map to the same field.
func Resolve(headers []string) (Mapping, error) {
	m := Mapping{
		Columns: make(map[model.Field]int),
		Headers: make(map[model.Field]string),
	}
	for i, h := range headers {
		f, ok := Lookup(h)
		if !ok {
			m.Unmapped = append(m.Unmapped, h)
			continue
		}
		if first, taken := m.Columns[f]; taken {
			slog.Warn("ignoring duplicate column",
				slog.String("header", h),
				slog.String("field", string(f)),
				slog.String("kept", headers[first]))
			m.Duplicates = append(m.Duplicates, Duplicate{Header: h, Index: i, Field: f})
			continue
		}
		m.Columns[f] = i
		m.Headers[f] = h
	}

	for _, f := range model.Fields {
		if f.Required() && !m.Has(f) {
			return m, &MissingFieldError{Field: f, Headers: headers}
		}
	}
	return m, nil
}

// Apply projects raw records onto canonical fields.
func Apply(table *model.RawTable, m Mapping) []model.CanonicalRecord {
	get := func(values []string, f model.Field) string {
		i, ok := m.Columns[f]
		if !ok || i >= len(values) {
			return ""
		}
		return values[i]
	}

	out := make([]model.CanonicalRecord, 0, len(table.Records))
	for _, rec := range table.Records {
		out = append(out, model.CanonicalRecord{
			Row:         rec.Row,
			Supplier:    get(rec.Values, model.FieldSupplier),
			Spend:       get(rec.Values, model.FieldSpend),
			SpendNumber: get(rec.Numbers, model.FieldSpend),
			Category:    get(rec.Values, model.FieldCategory),
			Year:        get(rec.Values, model.FieldYear),
			HasCategory: m.Has(model.FieldCategory),
			HasYear:     m.Has(model.FieldYear),
		})
	}
	return out
}
