package report

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"io"
	"math"
	"strconv"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/spendscope-dev/spendscope/internal/metrics"
)

const (
	panelWidth  = 640
	panelHeight = 480
	labelLimit  = 12
)

var (
	supplierColor = drawing.ColorFromHex("4682B4")
	categoryColor = drawing.ColorFromHex("FF7F50")
	trendColor    = drawing.ColorFromHex("2E8B57")
)

type panel func(w io.Writer) error

// RenderChart writes a three-panel PNG dashboard: top suppliers, spend by
// category and the yearly spend trend.
func RenderChart(path string, snap metrics.Snapshot) error {
	panels := []panel{
		barPanel("Top Suppliers by Spend", toBars(snap.TopSuppliers), supplierColor),
		barPanel("Spend by Category", toBars(snap.Categories), categoryColor),
		trendPanel(snap.YearTotals),
	}

	canvas := image.NewRGBA(image.Rect(0, 0, panelWidth*len(panels), panelHeight))
	draw.Draw(canvas, canvas.Bounds(), image.White, image.Point{}, draw.Src)

	for i, render := range panels {
		var buf bytes.Buffer
		if err := render(&buf); err != nil {
			return fmt.Errorf("rendering chart panel %d: %w", i+1, err)
		}
		img, err := png.Decode(&buf)
		if err != nil {
			return fmt.Errorf("decoding chart panel %d: %w", i+1, err)
		}
		dst := image.Rect(i*panelWidth, 0, (i+1)*panelWidth, panelHeight)
		draw.Draw(canvas, dst, img, img.Bounds().Min, draw.Over)
	}

	if err := writeAtomic(path, func(w io.Writer) error { return png.Encode(w, canvas) }); err != nil {
		return fmt.Errorf("writing chart: %w", err)
	}
	return nil
}

type bar struct {
	label string
	value float64
}

func toBars(ranked []metrics.Ranked) []bar {
	out := make([]bar, 0, len(ranked))
	for _, r := range ranked {
		out = append(out, bar{label: shorten(r.Name), value: r.Spend.InexactFloat64()})
	}
	return out
}

func barPanel(title string, bars []bar, color drawing.Color) panel {
	return func(w io.Writer) error {
		if len(bars) == 0 {
			bars = []bar{{label: "no data"}}
		}
		values := make([]chart.Value, 0, len(bars))
		raw := make([]float64, 0, len(bars))
		for _, b := range bars {
			values = append(values, chart.Value{
				Label: b.label,
				Value: b.value,
				Style: chart.Style{FillColor: color, StrokeColor: color},
			})
			raw = append(raw, b.value)
		}

		graph := chart.BarChart{
			Title:      title,
			Width:      panelWidth,
			Height:     panelHeight,
			BarWidth:   barWidth(len(values)),
			Background: chart.Style{Padding: chart.Box{Top: 50, Left: 10, Right: 10, Bottom: 10}},
			YAxis: chart.YAxis{
				Range:          valueRange(raw),
				ValueFormatter: amountTick,
			},
			Bars: values,
		}
		return graph.Render(chart.PNG, w)
	}
}

func trendPanel(totals []metrics.YearTotal) panel {
	if len(totals) < 2 {
		bars := make([]bar, 0, len(totals))
		for _, t := range totals {
			bars = append(bars, bar{label: strconv.Itoa(t.Year), value: t.Spend.InexactFloat64()})
		}
		return barPanel("Year-over-Year Spend Trend", bars, trendColor)
	}

	return func(w io.Writer) error {
		xs := make([]float64, 0, len(totals))
		ys := make([]float64, 0, len(totals))
		ticks := make([]chart.Tick, 0, len(totals))
		for _, t := range totals {
			xs = append(xs, float64(t.Year))
			ys = append(ys, t.Spend.InexactFloat64())
			ticks = append(ticks, chart.Tick{Value: float64(t.Year), Label: strconv.Itoa(t.Year)})
		}

		graph := chart.Chart{
			Title:      "Year-over-Year Spend Trend",
			Width:      panelWidth,
			Height:     panelHeight,
			Background: chart.Style{Padding: chart.Box{Top: 50, Left: 10, Right: 20, Bottom: 10}},
			XAxis:      chart.XAxis{Name: "Year", Ticks: ticks},
			YAxis: chart.YAxis{
				Name:           "Total Spend",
				Range:          valueRange(ys),
				ValueFormatter: amountTick,
			},
			Series: []chart.Series{
				chart.ContinuousSeries{
					Name: "Total Spend",
					Style: chart.Style{
						StrokeColor: trendColor,
						StrokeWidth: 2,
						DotColor:    trendColor,
						DotWidth:    4,
					},
					XValues: xs,
					YValues: ys,
				},
			},
		}
		return graph.Render(chart.PNG, w)
	}
}

// valueRange always spans zero and is never empty; go-chart rejects zero ranges.
func valueRange(values []float64) *chart.ContinuousRange {
	lo, hi := 0.0, 0.0
	for _, v := range values {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	lo *= 1.1
	hi *= 1.1
	if hi == lo {
		hi = lo + 1
	}
	return &chart.ContinuousRange{Min: lo, Max: hi}
}

func barWidth(n int) int {
	w := (panelWidth - 120) / (n * 2)
	return max(8, min(w, 60))
}

func amountTick(v any) string {
	f, ok := v.(float64)
	if !ok {
		return ""
	}
	abs := math.Abs(f)
	switch {
	case abs >= 1e6:
		return strconv.FormatFloat(f/1e6, 'f', 1, 64) + "M"
	case abs >= 1e3:
		return strconv.FormatFloat(f/1e3, 'f', 1, 64) + "k"
	default:
		return strconv.FormatFloat(f, 'f', 0, 64)
	}
}

func shorten(s string) string {
	r := []rune(s)
	if len(r) <= labelLimit {
		return s
	}
	return string(r[:labelLimit-1]) + "…"
}
