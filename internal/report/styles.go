// Package report renders a pipeline outcome for people and downstream tools.
// Reporters only read the outcome.
package report

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

var (
	primaryColor = lipgloss.Color("#4682B4")
	successColor = lipgloss.Color("#4ECDC4")
	warningColor = lipgloss.Color("#FFE66D")
	errorColor   = lipgloss.Color("#FF6B6B")
	subtleColor  = lipgloss.Color("#666666")
)

// Icons.
const (
	SuccessIcon = "✓"
	ErrorIcon   = "✗"
	WarningIcon = "!"
	BulletIcon  = "•"
)

type styles struct {
	title   lipgloss.Style
	label   lipgloss.Style
	value   lipgloss.Style
	section lipgloss.Style
	success lipgloss.Style
	warning lipgloss.Style
	err     lipgloss.Style
	subtle  lipgloss.Style
	box     lipgloss.Style
}

// newStyles binds styles to w so colour is only emitted on terminals.
func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	return styles{
		title:   r.NewStyle().Bold(true).Foreground(primaryColor),
		label:   r.NewStyle().Width(22),
		value:   r.NewStyle().Bold(true),
		section: r.NewStyle().Bold(true).Foreground(primaryColor).MarginTop(1),
		success: r.NewStyle().Foreground(successColor),
		warning: r.NewStyle().Foreground(warningColor),
		err:     r.NewStyle().Foreground(errorColor),
		subtle:  r.NewStyle().Foreground(subtleColor),
		box: r.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(subtleColor).
			Padding(0, 2),
	}
}

// FormatSuccess formats a success line for w.
func FormatSuccess(w io.Writer, message string) string {
	return newStyles(w).success.Render(SuccessIcon + " " + message)
}

// FormatWarning formats a warning line for w.
func FormatWarning(w io.Writer, message string) string {
	return newStyles(w).warning.Render(WarningIcon + " " + message)
}

// FormatError formats an error line for w.
func FormatError(w io.Writer, message string) string {
	return newStyles(w).err.Render(ErrorIcon + " " + message)
}

// FormatMoney renders an amount as "€1,234.56".
func FormatMoney(d decimal.Decimal) string {
	s := d.Abs().StringFixed(2)
	intPart, frac, _ := strings.Cut(s, ".")

	var b strings.Builder
	if d.IsNegative() && !d.Round(2).IsZero() {
		b.WriteByte('-')
	}
	b.WriteString("€")
	for i, c := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}
	b.WriteByte('.')
	b.WriteString(frac)
	return b.String()
}
