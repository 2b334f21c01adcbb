// Package clean turns canonical string records into typed, validated records.
//
// Two failure tiers apply. A malformed year anywhere in the batch aborts the
// run with a *YearFormatError. Bad spend values, empty suppliers, negative
// spend (unless KeepNegative) and blank years only drop the affected row.
package clean

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/spendscope-dev/spendscope/internal/model"
)

// ErrNoRecords is returned when no row survives cleaning.
var ErrNoRecords = errors.New("no valid rows remain after cleaning")

// Options controls caller-configurable cleaning behaviour.
type Options struct {
	KeepNegative bool
	OnRow        func() // called once per processed row
}

// DropCounts tallies excluded rows per reason.
type DropCounts map[model.DropReason]int

// Total returns the number of dropped rows.
func (d DropCounts) Total() int {
	n := 0
	for _, c := range d {
		n += c
	}
	return n
}

// Result is the outcome of a cleaning pass.
type Result struct {
	Records []model.CleanRecord
	Drops   DropCounts
	Input   int
}

// Clean validates and converts records. Year cells are checked for the whole
// batch before any row is converted.
func Clean(records []model.CanonicalRecord, opts Options) (*Result, error) {
	if err := validateYears(records); err != nil {
		return nil, err
	}

	res := &Result{Drops: DropCounts{}, Input: len(records)}
	for _, rec := range records {
		if opts.OnRow != nil {
			opts.OnRow()
		}
		clean, reason, ok := cleanRecord(rec, opts)
		if !ok {
			res.Drops[reason]++
			slog.Debug("dropped row", slog.Int("row", rec.Row), slog.String("reason", string(reason)))
			continue
		}
		res.Records = append(res.Records, clean)
	}

	slog.Info("cleaned records",
		slog.Int("input", res.Input),
		slog.Int("kept", len(res.Records)),
		slog.Int("dropped", res.Drops.Total()))

	if len(res.Records) == 0 {
		return res, ErrNoRecords
	}
	return res, nil
}

func validateYears(records []model.CanonicalRecord) error {
	for _, rec := range records {
		if !rec.HasYear {
			continue
		}
		v := strings.TrimSpace(rec.Year)
		if v == "" {
			continue
		}
		if _, err := ParseYear(v); err != nil {
			var yerr *YearFormatError
			if errors.As(err, &yerr) {
				yerr.Row = rec.Row
			}
			return err
		}
	}
	return nil
}

func cleanRecord(rec model.CanonicalRecord, opts Options) (model.CleanRecord, model.DropReason, bool) {
	supplier := strings.Join(strings.Fields(rec.Supplier), " ")
	if supplier == "" {
		return model.CleanRecord{}, model.DropEmptySupplier, false
	}

	spend, err := parseSpendCell(rec)
	if err != nil {
		return model.CleanRecord{}, model.DropInvalidSpend, false
	}
	if spend.IsNegative() && !opts.KeepNegative {
		return model.CleanRecord{}, model.DropNegativeSpend, false
	}

	var year int
	if rec.HasYear {
		v := strings.TrimSpace(rec.Year)
		if v == "" {
			return model.CleanRecord{}, model.DropMissingYear, false
		}
		// Already validated for the whole batch.
		year, _ = ParseYear(v)
	}

	return model.CleanRecord{
		Row:      rec.Row,
		Supplier: supplier,
		Spend:    spend.Round(2),
		Category: strings.TrimSpace(rec.Category),
		Year:     year,
	}, "", true
}

// parseSpendCell prefers the typed value of a spreadsheet number cell over its
// display text.
func parseSpendCell(rec model.CanonicalRecord) (decimal.Decimal, error) {
	if rec.SpendNumber != "" {
		return ParseNumber(rec.SpendNumber)
	}
	return ParseSpend(rec.Spend)
}
