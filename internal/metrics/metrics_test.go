package metrics

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spendscope-dev/spendscope/internal/model"
)

func rec(supplier, spend, category string, year int) model.CleanRecord {
	return model.CleanRecord{
		Supplier: supplier,
		Spend:    decimal.RequireFromString(spend),
		Category: category,
		Year:     year,
	}
}

func names(r []Ranked) []string {
	out := make([]string, 0, len(r))
	for _, x := range r {
		out = append(out, x.Name)
	}
	return out
}

func TestCompute_Scenario(t *testing.T) {
	snap := Compute([]model.CleanRecord{
		rec("Acme", "1234.56", "", 2023),
		rec("Beta", "200", "", 2024),
	}, 0)

	assert.Equal(t, "1434.56", snap.TotalSpend.StringFixed(2))
	assert.Equal(t, "717.28", snap.AverageSpend.StringFixed(2))
	assert.Equal(t, 2, snap.RecordCount)
	assert.Equal(t, 2, snap.SupplierCount)
	assert.Equal(t, []string{"Acme", "Beta"}, names(snap.TopSuppliers))
	assert.Empty(t, snap.Categories)

	require.Len(t, snap.YearTotals, 2)
	assert.Equal(t, 2023, snap.YearTotals[0].Year)

	latest, ok := snap.LatestChange()
	require.True(t, ok)
	assert.Equal(t, 2023, latest.From)
	assert.Equal(t, 2024, latest.To)
	assert.True(t, latest.Defined)
	assert.InDelta(t, -83.8, latest.Percent, 0.05)
}

func TestCompute_Rankings(t *testing.T) {
	snap := Compute([]model.CleanRecord{
		rec("Acme", "10", "Steel", 0),
		rec("Beta", "50", "Freight", 0),
		rec("Acme", "45", "Steel", 0),
		rec("Gamma", "5", "", 0),
	}, 2)

	assert.Equal(t, []string{"Acme", "Beta"}, names(snap.TopSuppliers))
	assert.Equal(t, "55", snap.TopSuppliers[0].Spend.String())
	assert.Equal(t, 3, snap.SupplierCount)
	assert.Equal(t, []string{"Steel", "Freight"}, names(snap.TopCategories))
	assert.Len(t, snap.Categories, 2)
	assert.Empty(t, snap.YearTotals)
	_, ok := snap.LatestChange()
	assert.False(t, ok)
}

func TestCompute_TiesKeepFirstAppearance(t *testing.T) {
	in := []model.CleanRecord{
		rec("Zeta", "100", "B", 0),
		rec("Alpha", "100", "A", 0),
		rec("Mid", "300", "C", 0),
		rec("Beta", "100", "A", 0),
	}

	snap := Compute(in, 0)
	assert.Equal(t, []string{"Mid", "Zeta", "Alpha", "Beta"}, names(snap.TopSuppliers))
	assert.Equal(t, []string{"C", "A", "B"}, names(snap.TopCategories))

	// Repeated runs on the same input give the same ranking.
	for i := 0; i < 20; i++ {
		assert.Equal(t, names(snap.TopSuppliers), names(Compute(in, 0).TopSuppliers))
	}
}

func TestCompute_YearChanges(t *testing.T) {
	snap := Compute([]model.CleanRecord{
		rec("A", "0", "", 2021),
		rec("A", "100", "", 2022),
		rec("A", "150", "", 2024),
	}, 0)

	require.Len(t, snap.Changes, 2)
	assert.Equal(t, YearChange{From: 2021, To: 2022}, snap.Changes[0])
	assert.False(t, snap.Changes[0].Defined)
	assert.Equal(t, 2022, snap.Changes[1].From)
	assert.Equal(t, 2024, snap.Changes[1].To)
	assert.InDelta(t, 50.0, snap.Changes[1].Percent, 1e-9)
}

func TestCompute_SingleYearHasNoChange(t *testing.T) {
	snap := Compute([]model.CleanRecord{rec("A", "1", "", 2024), rec("B", "2", "", 2024)}, 0)
	assert.Len(t, snap.YearTotals, 1)
	assert.Nil(t, snap.Changes)
}

func TestCompute_NegativeInclusion(t *testing.T) {
	withNeg := Compute([]model.CleanRecord{rec("A", "100", "", 0), rec("A", "-40", "", 0)}, 0)
	assert.Equal(t, "60", withNeg.TotalSpend.String())
	assert.Equal(t, "30", withNeg.AverageSpend.String())
}

func TestCompute_Empty(t *testing.T) {
	snap := Compute(nil, 0)
	assert.True(t, snap.TotalSpend.IsZero())
	assert.True(t, snap.AverageSpend.IsZero())
	assert.Empty(t, snap.TopSuppliers)
}
