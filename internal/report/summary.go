package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/spendscope-dev/spendscope/internal/metrics"
	"github.com/spendscope-dev/spendscope/internal/model"
	"github.com/spendscope-dev/spendscope/internal/pipeline"
)

// consoleTopN is how many suppliers and categories the console lists.
const consoleTopN = 3

// WriteSummary prints the text report. Dropped rows are summarized by reason,
// never listed individually.
func WriteSummary(w io.Writer, out *pipeline.Outcome) error {
	st := newStyles(w)
	snap := out.Snapshot

	var b strings.Builder
	line := func(label, value string) {
		b.WriteString(st.label.Render(label) + st.value.Render(value) + "\n")
	}

	b.WriteString(st.title.Render("PROCUREMENT SPEND ANALYSIS REPORT") + "\n")
	b.WriteString(st.subtle.Render(sourceLabel(out)) + "\n\n")

	line("Total Spend:", FormatMoney(snap.TotalSpend))
	line("Average Transaction:", FormatMoney(snap.AverageSpend))
	line("Number of Suppliers:", fmt.Sprintf("%d", snap.SupplierCount))

	writeRanking(&b, st, fmt.Sprintf("Top %d Suppliers:", consoleTopN), snap.TopSuppliers)
	if out.Mapping.Has(model.FieldCategory) {
		writeRanking(&b, st, fmt.Sprintf("Top %d Categories:", consoleTopN), snap.TopCategories)
	}

	if c, ok := snap.LatestChange(); ok {
		b.WriteString(st.section.Render(fmt.Sprintf("YoY Growth (%d → %d): %s", c.From, c.To, FormatChange(c))) + "\n")
	}

	b.WriteString(st.section.Render("Rows") + "\n")
	b.WriteString(fmt.Sprintf("  %d read, %d kept, %d dropped\n", out.Input, len(out.Records), out.Drops.Total()))
	for _, reason := range model.DropReasons {
		if n := out.Drops[reason]; n > 0 {
			b.WriteString(st.warning.Render(fmt.Sprintf("  %s %s: %d", WarningIcon, reason, n)) + "\n")
		}
	}
	for _, d := range out.Mapping.Duplicates {
		b.WriteString(st.subtle.Render(fmt.Sprintf("  ignored duplicate %s column %q", d.Field, d.Header)) + "\n")
	}

	if _, err := fmt.Fprintln(w, st.box.Render(strings.TrimRight(b.String(), "\n"))); err != nil {
		return fmt.Errorf("writing summary: %w", err)
	}
	return nil
}

// FormatChange renders a YoY change as "+12.3%" or "undefined".
func FormatChange(c metrics.YearChange) string {
	if !c.Defined {
		return "undefined"
	}
	return fmt.Sprintf("%+.1f%%", c.Percent)
}

func writeRanking(b *strings.Builder, st styles, title string, ranked []metrics.Ranked) {
	b.WriteString(st.section.Render(title) + "\n")
	if len(ranked) == 0 {
		b.WriteString(st.subtle.Render("  (none)") + "\n")
		return
	}
	for i, r := range ranked {
		if i == consoleTopN {
			break
		}
		b.WriteString(fmt.Sprintf("  %s %s: %s\n", BulletIcon, r.Name, FormatMoney(r.Spend)))
	}
}

func sourceLabel(out *pipeline.Outcome) string {
	if out.Sheet != "" {
		return fmt.Sprintf("%s [%s]", out.Source, out.Sheet)
	}
	return out.Source
}
