// Package pipeline runs loader, header normalizer, cleaner and metrics in
// order and hands the result to reporters.
package pipeline

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/schollz/progressbar/v3"

	"github.com/spendscope-dev/spendscope/internal/clean"
	"github.com/spendscope-dev/spendscope/internal/header"
	"github.com/spendscope-dev/spendscope/internal/loader"
	"github.com/spendscope-dev/spendscope/internal/metrics"
	"github.com/spendscope-dev/spendscope/internal/model"
)

// Config is the subset of run options the pipeline needs.
type Config struct {
	Source       string
	Loader       loader.Options
	KeepNegative bool
	TopN         int
	Progress     io.Writer // nil disables the progress bar
}

// Outcome is everything reporters may read. It must not be modified.
type Outcome struct {
	Source   string
	Sheet    string
	Mapping  header.Mapping
	Records  []model.CleanRecord
	Drops    clean.DropCounts
	Input    int
	Snapshot metrics.Snapshot
}

// Run loads the source and executes every stage.
func Run(cfg Config) (*Outcome, error) {
	table, err := loader.Open(cfg.Source, cfg.Loader)
	if err != nil {
		return nil, err
	}
	return RunTable(table, cfg)
}

// RunTable executes the stages after loading.
func RunTable(table *model.RawTable, cfg Config) (*Outcome, error) {
	mapping, err := header.Resolve(table.Headers)
	if err != nil {
		return nil, fmt.Errorf("mapping headers: %w", err)
	}
	slog.Debug("resolved headers",
		slog.Any("columns", mapping.Headers),
		slog.Any("unmapped", mapping.Unmapped))

	canonical := header.Apply(table, mapping)

	opts := clean.Options{KeepNegative: cfg.KeepNegative}
	var bar *progressbar.ProgressBar
	if cfg.Progress != nil {
		bar = newProgressBar(cfg.Progress, len(canonical))
		opts.OnRow = func() { _ = bar.Add(1) }
	}

	res, err := clean.Clean(canonical, opts)
	if bar != nil {
		_ = bar.Finish()
	}
	if errors.Is(err, clean.ErrNoRecords) && res != nil && res.Drops.Total() > 0 {
		err = fmt.Errorf("%w (%s)", err, dropSummary(res.Drops))
	}
	if err != nil {
		return nil, fmt.Errorf("cleaning %s: %w", table.Source, err)
	}

	return &Outcome{
		Source:   table.Source,
		Sheet:    table.Sheet,
		Mapping:  mapping,
		Records:  res.Records,
		Drops:    res.Drops,
		Input:    res.Input,
		Snapshot: metrics.Compute(res.Records, cfg.TopN),
	}, nil
}

// dropSummary lists the non-zero drop counts in reporting order.
func dropSummary(drops clean.DropCounts) string {
	var parts []string
	for _, reason := range model.DropReasons {
		if n := drops[reason]; n > 0 {
			parts = append(parts, fmt.Sprintf("%s: %d", reason, n))
		}
	}
	return strings.Join(parts, ", ")
}

func newProgressBar(w io.Writer, total int) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("[cyan]Cleaning rows[reset]"),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionClearOnFinish(),
	)
}
