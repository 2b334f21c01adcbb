package header

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spendscope-dev/spendscope/internal/model"
)

func TestLookup(t *testing.T) {
	tests := []struct {
		label string
		want  model.Field
		ok    bool
	}{
		{"Vendor Name", model.FieldSupplier, true},
		{"  SUPPLIER  ", model.FieldSupplier, true},
		{"Counterpart", model.FieldSupplier, true},
		{"Supplier  Name", model.FieldSupplier, true},
		{"Amount (EUR)", model.FieldSpend, true},
		{"Total Spend", model.FieldSpend, true},
		{"Net Amount", model.FieldSpend, true},
		{"Spend Category", model.FieldCategory, true},
		{"Commodity", model.FieldCategory, true},
		{"Fiscal Year", model.FieldYear, true},
		{"Invoice Date", model.FieldYear, true},
		{"Cost Center", "", false},
		{"Vendor ID", "", false},
		{"PO Number", "", false},
		{"Unit Cost", "", false},
		{"Unit Price (EUR)", "", false},
		{"Quantity", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := Lookup(tt.label)
		assert.Equal(t, tt.ok, ok, "Lookup(%q) ok", tt.label)
		assert.Equal(t, tt.want, got, "Lookup(%q)", tt.label)
	}
}

func TestClean(t *testing.T) {
	assert.Equal(t, "vendor name", Clean("  Vendor \t Name "))
}

func TestResolve(t *testing.T) {
	m, err := Resolve([]string{"PO Number", "Vendor Name", "Amount (EUR)", "Category", "Year"})
	require.NoError(t, err)

	assert.Equal(t, 1, m.Columns[model.FieldSupplier])
	assert.Equal(t, 2, m.Columns[model.FieldSpend])
	assert.Equal(t, 3, m.Columns[model.FieldCategory])
	assert.Equal(t, 4, m.Columns[model.FieldYear])
	assert.Equal(t, "Amount (EUR)", m.Headers[model.FieldSpend])
	assert.Equal(t, []string{"PO Number"}, m.Unmapped)
	assert.Empty(t, m.Duplicates)
}

func TestResolve_UnitCostIsNotSpend(t *testing.T) {
	m, err := Resolve([]string{"Supplier", "Quantity", "Unit Cost", "Total Amount"})
	require.NoError(t, err)

	assert.Equal(t, 3, m.Columns[model.FieldSpend])
	assert.Equal(t, []string{"Quantity", "Unit Cost"}, m.Unmapped)
	assert.Empty(t, m.Duplicates)
}

func TestResolve_DuplicateLeftmostWins(t *testing.T) {
	m, err := Resolve([]string{"Supplier", "Net Amount", "Gross Amount"})
	require.NoError(t, err)

	assert.Equal(t, 1, m.Columns[model.FieldSpend])
	require.Len(t, m.Duplicates, 1)
	assert.Equal(t, Duplicate{Header: "Gross Amount", Index: 2, Field: model.FieldSpend}, m.Duplicates[0])
}

func TestResolve_OptionalFieldsAbsent(t *testing.T) {
	m, err := Resolve([]string{"vendor", "spend"})
	require.NoError(t, err)
	assert.False(t, m.Has(model.FieldCategory))
	assert.False(t, m.Has(model.FieldYear))
}

func TestResolve_MissingRequired(t *testing.T) {
	_, err := Resolve([]string{"Vendor", "Category"})
	require.Error(t, err)

	var missing *MissingFieldError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, model.FieldSpend, missing.Field)
	assert.Contains(t, err.Error(), `"spend"`)
}

func TestApply(t *testing.T) {
	table := &model.RawTable{
		Headers: []string{"Amount", "Vendor"},
		Records: []model.RawRecord{
			{Row: 2, Values: []string{"10", "Acme"}},
			{Row: 3, Values: []string{"20"}},
		},
	}
	m, err := Resolve(table.Headers)
	require.NoError(t, err)

	got := Apply(table, m)
	require.Len(t, got, 2)
	assert.Equal(t, model.CanonicalRecord{Row: 2, Supplier: "Acme", Spend: "10"}, got[0])
	assert.Equal(t, "", got[1].Supplier)
	assert.False(t, got[0].HasYear)
}

func TestApply_CarriesTypedSpend(t *testing.T) {
	table := &model.RawTable{
		Headers: []string{"Vendor", "Amount"},
		Records: []model.RawRecord{
			{Row: 2, Values: []string{"Acme", "1234.567"}, Numbers: []string{"", "1234.567"}},
			{Row: 3, Values: []string{"Beta", "1.234,56"}},
		},
	}
	m, err := Resolve(table.Headers)
	require.NoError(t, err)

	got := Apply(table, m)
	require.Len(t, got, 2)
	assert.Equal(t, "1234.567", got[0].SpendNumber)
	assert.Empty(t, got[1].SpendNumber)
}
