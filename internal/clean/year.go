package clean

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

var (
	yearOnly = regexp.MustCompile(`^\d{4}$`)
	isoDate  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

// YearFormatError reports a year cell that is neither YYYY nor YYYY-MM-DD.
type YearFormatError struct {
	Row   int
	Value string
	Cause string
}

func (e *YearFormatError) Error() string {
	msg := fmt.Sprintf("year %q %s", e.Value, e.Cause)
	if e.Row > 0 {
		return fmt.Sprintf("row %d: %s", e.Row, msg)
	}
	return msg
}

// ParseYear accepts only "YYYY" or a real calendar date "YYYY-MM-DD".
func ParseYear(raw string) (int, error) {
	switch {
	case yearOnly.MatchString(raw):
		y, _ := strconv.Atoi(raw)
		if y < 1 {
			return 0, &YearFormatError{Value: raw, Cause: "is out of range"}
		}
		return y, nil
	case isoDate.MatchString(raw):
		t, err := time.Parse(time.DateOnly, raw)
		if err != nil {
			return 0, &YearFormatError{Value: raw, Cause: "is not a valid calendar date"}
		}
		if t.Year() < 1 {
			return 0, &YearFormatError{Value: raw, Cause: "is out of range"}
		}
		return t.Year(), nil
	}
	return 0, &YearFormatError{Value: raw, Cause: "does not match YYYY or YYYY-MM-DD"}
}
