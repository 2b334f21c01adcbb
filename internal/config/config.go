package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"github.com/spendscope-dev/spendscope/internal/loader"
	"github.com/spendscope-dev/spendscope/internal/metrics"
)

// Format selects the cleaned-dataset export container.
type Format string

const (
	FormatXLSX Format = "xlsx"
	FormatCSV  Format = "csv"
)

// Extension returns the file extension written for the format.
func (f Format) Extension() string { return "." + string(f) }

// DefaultChartPath is where the dashboard image goes unless overridden.
const DefaultChartPath = "spend_analysis.png"

// Options is the full caller-supplied configuration of one run.
type Options struct {
	Source       string
	Separator    rune
	Format       Format `validate:"oneof=xlsx csv"`
	KeepNegative bool
	Output       string
	ChartPath    string `validate:"required"`
	SummaryPath  string
	Sheet        string
	Pattern      string `validate:"required"`
	TopN         int    `validate:"min=1,max=1000"`
	Progress     bool
}

// Default returns Options with the documented defaults.
func Default() *Options {
	return &Options{
		Format:    FormatXLSX,
		ChartPath: DefaultChartPath,
		Pattern:   loader.DefaultPattern,
		TopN:      metrics.DefaultTopN,
	}
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks option values and cross-field constraints.
func (o *Options) Validate() error {
	if err := validate.Struct(o); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("invalid option %s=%v (%s %s)", strings.ToLower(fe.Field()), fe.Value(), fe.Tag(), fe.Param())
		}
		return fmt.Errorf("validating options: %w", err)
	}
	switch o.Separator {
	case '"', '\r', '\n', utf8.RuneError:
		return fmt.Errorf("invalid option separator=%q", o.Separator)
	}
	return nil
}

// OutputPath returns the export path, deriving "<stem>_cleaned.<ext>" beside
// the source when none was given.
func (o *Options) OutputPath() string {
	if o.Output != "" {
		return o.Output
	}
	dir := filepath.Dir(o.Source)
	stem := strings.TrimSuffix(filepath.Base(o.Source), filepath.Ext(o.Source))
	return filepath.Join(dir, stem+"_cleaned"+o.Format.Extension())
}

// ExportSeparator is the separator used for CSV export.
func (o *Options) ExportSeparator() rune {
	if o.Separator == 0 {
		return ','
	}
	return o.Separator
}

// NormalizeFormat coerces user-facing format names into a Format.
func NormalizeFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "xlsx", "excel", "spreadsheet":
		return FormatXLSX, nil
	case "csv", "delimited", "text", "txt":
		return FormatCSV, nil
	default:
		return "", fmt.Errorf("unknown export format %q (want xlsx or csv)", s)
	}
}

// ParseSeparator reads a separator flag. It accepts a single character or the
// names "tab", "semicolon", "comma", "pipe" and the escape "\t".
func ParseSeparator(s string) (rune, error) {
	switch strings.ToLower(s) {
	case "":
		return 0, nil
	case `\t`, "tab":
		return '\t', nil
	case "semicolon":
		return ';', nil
	case "comma":
		return ',', nil
	case "pipe":
		return '|', nil
	}
	if utf8.RuneCountInString(s) != 1 {
		return 0, fmt.Errorf("separator must be a single character, got %q", s)
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r, nil
}
