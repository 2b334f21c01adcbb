package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	o := Default()

	assert.Equal(t, FormatXLSX, o.Format)
	assert.Equal(t, "spend_analysis.png", o.ChartPath)
	assert.Equal(t, "*spend*", o.Pattern)
	assert.Equal(t, 10, o.TopN)
	assert.False(t, o.KeepNegative)
	assert.Zero(t, o.Separator)
	require.NoError(t, o.Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(o *Options)
		errMsg string
	}{
		{"bad format", func(o *Options) { o.Format = "ods" }, "format"},
		{"zero top", func(o *Options) { o.TopN = 0 }, "topn"},
		{"no chart", func(o *Options) { o.ChartPath = "" }, "chartpath"},
		{"quote separator", func(o *Options) { o.Separator = '"' }, "separator"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := Default()
			tt.mutate(o)
			err := o.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestOutputPath(t *testing.T) {
	o := Default()
	o.Source = filepath.Join("data", "q1_spend.csv")
	assert.Equal(t, filepath.Join("data", "q1_spend_cleaned.xlsx"), o.OutputPath())

	o.Format = FormatCSV
	assert.Equal(t, filepath.Join("data", "q1_spend_cleaned.csv"), o.OutputPath())

	o.Output = "out.csv"
	assert.Equal(t, "out.csv", o.OutputPath())
}

func TestExportSeparator(t *testing.T) {
	o := Default()
	assert.Equal(t, ',', o.ExportSeparator())
	o.Separator = ';'
	assert.Equal(t, ';', o.ExportSeparator())
}

func TestNormalizeFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
	}{
		{"", FormatXLSX},
		{"XLSX", FormatXLSX},
		{"excel", FormatXLSX},
		{"spreadsheet", FormatXLSX},
		{"csv", FormatCSV},
		{" Delimited ", FormatCSV},
		{"text", FormatCSV},
	}
	for _, tt := range tests {
		got, err := NormalizeFormat(tt.in)
		require.NoError(t, err, "NormalizeFormat(%q)", tt.in)
		assert.Equal(t, tt.want, got)
	}

	_, err := NormalizeFormat("parquet")
	assert.Error(t, err)
}

func TestParseSeparator(t *testing.T) {
	tests := []struct {
		in   string
		want rune
	}{
		{"", 0},
		{",", ','},
		{";", ';'},
		{`\t`, '\t'},
		{"TAB", '\t'},
		{"pipe", '|'},
		{"semicolon", ';'},
	}
	for _, tt := range tests {
		got, err := ParseSeparator(tt.in)
		require.NoError(t, err, "ParseSeparator(%q)", tt.in)
		assert.Equal(t, tt.want, got)
	}

	_, err := ParseSeparator(";;")
	assert.Error(t, err)
}
