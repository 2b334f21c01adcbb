package clean

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseYear(t *testing.T) {
	tests := []struct {
		raw  string
		want int
	}{
		{"2023", 2023},
		{"1999", 1999},
		{"2024-02-29", 2024},
		{"2023-12-31", 2023},
	}
	for _, tt := range tests {
		got, err := ParseYear(tt.raw)
		require.NoError(t, err, "ParseYear(%q)", tt.raw)
		assert.Equal(t, tt.want, got)
	}
}

func TestParseYear_Rejects(t *testing.T) {
	tests := []struct {
		raw   string
		cause string
	}{
		{"03/15/2023", "does not match YYYY or YYYY-MM-DD"},
		{"15.03.2023", "does not match YYYY or YYYY-MM-DD"},
		{"FY2023", "does not match YYYY or YYYY-MM-DD"},
		{"23", "does not match YYYY or YYYY-MM-DD"},
		{"2023-3-1", "does not match YYYY or YYYY-MM-DD"},
		{"2023-01-01T00:00:00", "does not match YYYY or YYYY-MM-DD"},
		{"2023.0", "does not match YYYY or YYYY-MM-DD"},
		{"2023-02-30", "is not a valid calendar date"},
		{"2023-13-01", "is not a valid calendar date"},
		{"0000", "is out of range"},
	}
	for _, tt := range tests {
		_, err := ParseYear(tt.raw)
		var yerr *YearFormatError
		require.ErrorAs(t, err, &yerr, "ParseYear(%q)", tt.raw)
		assert.Equal(t, tt.raw, yerr.Value)
		assert.Contains(t, err.Error(), tt.cause)
	}
}

func TestYearFormatError_IncludesRow(t *testing.T) {
	err := &YearFormatError{Row: 4, Value: "03/15/2023", Cause: "does not match YYYY or YYYY-MM-DD"}
	assert.Equal(t, `row 4: year "03/15/2023" does not match YYYY or YYYY-MM-DD`, err.Error())
}
