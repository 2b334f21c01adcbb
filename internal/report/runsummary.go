package report

import (
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/spendscope-dev/spendscope/internal/metrics"
	"github.com/spendscope-dev/spendscope/internal/model"
	"github.com/spendscope-dev/spendscope/internal/pipeline"
)

// RunSummary is the machine-readable record of one run.
type RunSummary struct {
	RunID       string            `yaml:"run_id"`
	GeneratedAt time.Time         `yaml:"generated_at"`
	Source      string            `yaml:"source"`
	Sheet       string            `yaml:"sheet,omitempty"`
	Columns     map[string]string `yaml:"columns"`
	Rows        RowSummary        `yaml:"rows"`
	Metrics     metrics.Snapshot  `yaml:"metrics"`
}

// RowSummary counts rows through the cleaner.
type RowSummary struct {
	Read    int            `yaml:"read"`
	Kept    int            `yaml:"kept"`
	Dropped int            `yaml:"dropped"`
	Reasons map[string]int `yaml:"drop_reasons,omitempty"`
}

// NewRunSummary builds the summary for an outcome.
func NewRunSummary(out *pipeline.Outcome, now time.Time) RunSummary {
	s := RunSummary{
		RunID:       uuid.NewString(),
		GeneratedAt: now.UTC().Truncate(time.Second),
		Source:      out.Source,
		Sheet:       out.Sheet,
		Columns:     make(map[string]string, len(out.Mapping.Headers)),
		Rows: RowSummary{
			Read:    out.Input,
			Kept:    len(out.Records),
			Dropped: out.Drops.Total(),
		},
		Metrics: out.Snapshot,
	}
	for field, h := range out.Mapping.Headers {
		s.Columns[string(field)] = h
	}
	for _, reason := range model.DropReasons {
		if n := out.Drops[reason]; n > 0 {
			if s.Rows.Reasons == nil {
				s.Rows.Reasons = make(map[string]int)
			}
			s.Rows.Reasons[string(reason)] = n
		}
	}
	return s
}

// WriteRunSummary writes the YAML run summary to path.
func WriteRunSummary(path string, out *pipeline.Outcome) error {
	summary := NewRunSummary(out, time.Now())
	err := writeAtomic(path, func(w io.Writer) error {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(summary); err != nil {
			return fmt.Errorf("encoding summary: %w", err)
		}
		return enc.Close()
	})
	if err != nil {
		return fmt.Errorf("writing run summary: %w", err)
	}
	return nil
}
