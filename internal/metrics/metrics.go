// Package metrics aggregates clean records into a read-only snapshot.
package metrics

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/spendscope-dev/spendscope/internal/model"
)

// DefaultTopN is the ranking length used when the caller does not choose one.
const DefaultTopN = 10

var hundred = decimal.NewFromInt(100)

// Ranked is one entry of a spend ranking.
type Ranked struct {
	Name  string          `yaml:"name"`
	Spend decimal.Decimal `yaml:"spend"`
}

// YearTotal is the summed spend of a single year.
type YearTotal struct {
	Year  int             `yaml:"year"`
	Spend decimal.Decimal `yaml:"spend"`
}

// YearChange is the change between two consecutive years present in the data.
// Defined is false when the earlier total is zero.
type YearChange struct {
	From    int     `yaml:"from"`
	To      int     `yaml:"to"`
	Percent float64 `yaml:"percent"`
	Defined bool    `yaml:"defined"`
}

// Snapshot is computed once per run and never mutated.
type Snapshot struct {
	TotalSpend    decimal.Decimal `yaml:"total_spend"`
	AverageSpend  decimal.Decimal `yaml:"average_spend"`
	RecordCount   int             `yaml:"record_count"`
	SupplierCount int             `yaml:"supplier_count"`
	TopSuppliers  []Ranked        `yaml:"top_suppliers"`
	TopCategories []Ranked        `yaml:"top_categories,omitempty"`
	Categories    []Ranked        `yaml:"categories,omitempty"`
	YearTotals    []YearTotal     `yaml:"year_totals,omitempty"`
	Changes       []YearChange    `yaml:"year_over_year,omitempty"`
}

// LatestChange returns the change between the two most recent years.
func (s Snapshot) LatestChange() (YearChange, bool) {
	if len(s.Changes) == 0 {
		return YearChange{}, false
	}
	return s.Changes[len(s.Changes)-1], true
}

// Compute builds a Snapshot. topN <= 0 selects DefaultTopN.
func Compute(records []model.CleanRecord, topN int) Snapshot {
	if topN <= 0 {
		topN = DefaultTopN
	}

	snap := Snapshot{
		TotalSpend:   decimal.Zero,
		AverageSpend: decimal.Zero,
		RecordCount:  len(records),
	}

	suppliers := newAccumulator()
	categories := newAccumulator()
	years := make(map[int]decimal.Decimal)

	for _, r := range records {
		snap.TotalSpend = snap.TotalSpend.Add(r.Spend)
		suppliers.add(r.Supplier, r.Spend)
		if r.Category != "" {
			categories.add(r.Category, r.Spend)
		}
		if r.Year != 0 {
			years[r.Year] = years[r.Year].Add(r.Spend)
		}
	}

	if len(records) > 0 {
		snap.AverageSpend = snap.TotalSpend.Div(decimal.NewFromInt(int64(len(records))))
	}
	snap.SupplierCount = len(suppliers.order)

	snap.TopSuppliers = truncate(suppliers.ranked(), topN)
	snap.Categories = categories.ranked()
	snap.TopCategories = truncate(snap.Categories, topN)

	snap.YearTotals = yearTotals(years)
	snap.Changes = yearChanges(snap.YearTotals)
	return snap
}

// accumulator sums spend per name and remembers first-appearance order.
type accumulator struct {
	sums  map[string]decimal.Decimal
	order []string
}

func newAccumulator() *accumulator {
	return &accumulator{sums: make(map[string]decimal.Decimal)}
}

func (a *accumulator) add(name string, spend decimal.Decimal) {
	sum, seen := a.sums[name]
	if !seen {
		a.order = append(a.order, name)
	}
	a.sums[name] = sum.Add(spend)
}

// ranked sorts by spend descending. Ties keep first-appearance order.
func (a *accumulator) ranked() []Ranked {
	out := make([]Ranked, 0, len(a.order))
	for _, name := range a.order {
		out = append(out, Ranked{Name: name, Spend: a.sums[name]})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Spend.GreaterThan(out[j].Spend)
	})
	return out
}

func truncate(r []Ranked, n int) []Ranked {
	if len(r) > n {
		return r[:n]
	}
	return r
}

func yearTotals(years map[int]decimal.Decimal) []YearTotal {
	out := make([]YearTotal, 0, len(years))
	for y, spend := range years {
		out = append(out, YearTotal{Year: y, Spend: spend})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Year < out[j].Year })
	return out
}

func yearChanges(totals []YearTotal) []YearChange {
	if len(totals) < 2 {
		return nil
	}
	changes := make([]YearChange, 0, len(totals)-1)
	for i := 1; i < len(totals); i++ {
		prev, cur := totals[i-1], totals[i]
		c := YearChange{From: prev.Year, To: cur.Year}
		if !prev.Spend.IsZero() {
			c.Percent = cur.Spend.Sub(prev.Spend).Div(prev.Spend).Mul(hundred).InexactFloat64()
			c.Defined = true
		}
		changes = append(changes, c)
	}
	return changes
}
