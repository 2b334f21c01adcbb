package clean

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

// ErrInvalidSpend marks a spend value that cannot be read as a number.
var ErrInvalidSpend = errors.New("invalid spend value")

var currencyCodes = []string{"EUR", "USD", "GBP", "CHF", "CZK", "PLN", "SEK", "NOK", "DKK", "HUF", "JPY", "CAD", "AUD"}

var numericResidue = regexp.MustCompile(`^(\d+|\d*\.\d+)$`)

// ParseSpend reads an amount written in EU (1.234,56), US (1,234.56) or
// space-grouped (1 234,56) notation. When both ',' and '.' appear the
// rightmost is the decimal separator. A lone separator is decimal only when
// followed by one or two digits.
func ParseSpend(raw string) (decimal.Decimal, error) {
	invalid := func() (decimal.Decimal, error) {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidSpend, raw)
	}

	s := stripCurrency(strings.TrimSpace(raw))
	s, negative, ok := extractSign(s)
	if !ok {
		return invalid()
	}
	s, ok = stripGrouping(s)
	if !ok || s == "" {
		return invalid()
	}

	s, ok = normalizeSeparators(s)
	if !ok || !numericResidue.MatchString(s) {
		return invalid()
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return invalid()
	}
	if negative {
		d = d.Neg()
	}
	return d, nil
}

func stripCurrency(s string) string {
	s = strings.Map(func(r rune) rune {
		if unicode.Is(unicode.Sc, r) {
			return -1
		}
		return r
	}, s)
	s = strings.TrimSpace(s)

	upper := strings.ToUpper(s)
	for _, code := range currencyCodes {
		switch {
		case strings.HasPrefix(upper, code):
			s, upper = s[len(code):], upper[len(code):]
		case strings.HasSuffix(upper, code):
			s, upper = s[:len(s)-len(code)], upper[:len(upper)-len(code)]
		}
	}
	return strings.TrimSpace(s)
}

// extractSign handles -x, +x, x-, (x) and the Unicode minus sign. More than
// one sign marker is rejected.
func extractSign(s string) (string, bool, bool) {
	s = strings.ReplaceAll(s, "\u2212", "-")
	negative, markers := false, 0
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		s = strings.TrimSpace(s[1 : len(s)-1])
		negative = true
		markers++
	}
	switch {
	case strings.HasPrefix(s, "-"):
		s, negative = s[1:], true
		markers++
	case strings.HasPrefix(s, "+"):
		s = s[1:]
		markers++
	}
	if strings.HasSuffix(s, "-") {
		s, negative = s[:len(s)-1], true
		markers++
	}
	return strings.TrimSpace(s), negative, markers <= 1
}

func isGroupSeparator(r rune) bool {
	switch r {
	case ' ', '\u00a0', '\u202f', '\u2009', '\'', '\u2019':
		return true
	}
	return false
}

// stripGrouping removes space and apostrophe grouping. The leading group has
// one to three digits and every later group starts with exactly three.
func stripGrouping(s string) (string, bool) {
	parts := strings.FieldsFunc(s, isGroupSeparator)
	if len(parts) <= 1 {
		return strings.Join(parts, ""), true
	}
	if len(parts[0]) > 3 || !isDigits(parts[0]) {
		return "", false
	}
	for _, p := range parts[1:] {
		if len(p) < 3 || !isDigits(p[:3]) || (len(p) > 3 && p[3] >= '0' && p[3] <= '9') {
			return "", false
		}
	}
	return strings.Join(parts, ""), true
}

func normalizeSeparators(s string) (string, bool) {
	commas := strings.Count(s, ",")
	dots := strings.Count(s, ".")

	switch {
	case commas > 0 && dots > 0:
		dec, thou := ".", ","
		if strings.LastIndex(s, ",") > strings.LastIndex(s, ".") {
			dec, thou = ",", "."
		}
		if strings.Count(s, dec) != 1 {
			return "", false
		}
		s = strings.ReplaceAll(s, thou, "")
		return strings.Replace(s, dec, ".", 1), true

	case commas > 1:
		return strings.ReplaceAll(s, ",", ""), true
	case dots > 1:
		return strings.ReplaceAll(s, ".", ""), true

	case commas == 1 || dots == 1:
		sep := ","
		if dots == 1 {
			sep = "."
		}
		i := strings.Index(s, sep)
		if tail := s[i+1:]; (len(tail) == 1 || len(tail) == 2) && isDigits(tail) {
			return strings.Replace(s, sep, ".", 1), true
		}
		return strings.Replace(s, sep, "", 1), true
	}
	return s, true
}

// ParseNumber reads the unformatted literal of a typed spreadsheet number.
// No locale rules apply.
func ParseNumber(raw string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidSpend, raw)
	}
	return d, nil
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
