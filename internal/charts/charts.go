// Package charts renders PNG charts from derived tables. Every renderer is a
// pure function of its input table and display parameters; nothing is kept
// across renders.
package charts

import (
	"fmt"
	"io"
	"math"

	chart "github.com/wcharczuk/go-chart/v2"

	"soldash/internal/dataset"
	"soldash/internal/observability"
)

// Kind names a supported chart type.
type Kind string

const (
	KindBar       Kind = "bar"
	KindPie       Kind = "pie"
	KindScatter   Kind = "scatter"
	KindHistogram Kind = "histogram"
)

// Params carries the display inputs of one chart.
type Params struct {
	Title       string
	LabelColumn string
	ValueColumn string
	XColumn     string
	YColumn     string
	GroupColumn string
	Width       int
	Height      int
	Bins        int
}

// Render dispatches on kind and writes a PNG.
func Render(kind Kind, t dataset.Table, p Params, w io.Writer) error {
	var err error
	switch kind {
	case KindPie:
		err = Pie(t, p, w)
	case KindScatter:
		err = Scatter(t, p, w)
	case KindHistogram:
		err = Histogram(t, p, w)
	case KindBar:
		err = Bar(t, p, w)
	default:
		err = fmt.Errorf("unknown chart kind %q", kind)
	}

	status := "ok"
	if err != nil {
		status = "error"
	}
	observability.ChartsRenderedTotal.WithLabelValues(string(kind), status).Inc()
	return err
}

// Bar draws one bar per row: LabelColumn on the x axis, ValueColumn as height.
func Bar(t dataset.Table, p Params, w io.Writer) error {
	values := labelValues(t, p.LabelColumn, p.ValueColumn)
	if len(values) == 0 {
		return renderPlaceholder(p, w)
	}

	graph := chart.BarChart{
		Title:    p.Title,
		Width:    p.Width,
		Height:   p.Height,
		BarWidth: barWidth(p.Width, len(values)),
		Bars:     values,
		YAxis: chart.YAxis{
			ValueFormatter: func(v interface{}) string {
				return chart.FloatValueFormatterWithFormat(v, "%.2f")
			},
		},
	}
	return graph.Render(chart.PNG, w)
}

// Pie draws one slice per row with a positive value.
func Pie(t dataset.Table, p Params, w io.Writer) error {
	all := labelValues(t, p.LabelColumn, p.ValueColumn)
	values := make([]chart.Value, 0, len(all))
	for _, v := range all {
		if v.Value > 0 {
			values = append(values, v)
		}
	}
	if len(values) == 0 {
		return renderPlaceholder(p, w)
	}

	graph := chart.PieChart{
		Title:  p.Title,
		Width:  p.Width,
		Height: p.Height,
		Values: values,
	}
	return graph.Render(chart.PNG, w)
}

// Scatter plots XColumn against YColumn, one dot series per GroupColumn value
// when a group column is set.
func Scatter(t dataset.Table, p Params, w io.Writer) error {
	groups := map[string][2][]float64{}
	var order []string

	for i := range t.Rows {
		x, okX := t.Float(i, p.XColumn)
		y, okY := t.Float(i, p.YColumn)
		if !okX || !okY || !finite(x) || !finite(y) {
			continue
		}
		name := ""
		if p.GroupColumn != "" {
			name = t.String(i, p.GroupColumn)
		}
		pair, seen := groups[name]
		if !seen {
			order = append(order, name)
		}
		pair[0] = append(pair[0], x)
		pair[1] = append(pair[1], y)
		groups[name] = pair
	}
	if len(order) == 0 {
		return renderPlaceholder(p, w)
	}

	series := make([]chart.Series, 0, len(order))
	for _, name := range order {
		pair := groups[name]
		series = append(series, chart.ContinuousSeries{
			Name:    name,
			XValues: pair[0],
			YValues: pair[1],
			Style: chart.Style{
				StrokeWidth: chart.Disabled,
				DotWidth:    4,
			},
		})
	}

	graph := chart.Chart{
		Title:  p.Title,
		Width:  p.Width,
		Height: p.Height,
		XAxis: chart.XAxis{
			Name: p.XColumn,
		},
		YAxis: chart.YAxis{
			Name: p.YColumn,
		},
		Series: series,
	}
	if p.GroupColumn != "" {
		graph.Elements = []chart.Renderable{chart.Legend(&graph)}
	}
	return graph.Render(chart.PNG, w)
}

// Histogram buckets ValueColumn into Bins equal-width bars.
func Histogram(t dataset.Table, p Params, w io.Writer) error {
	var values []float64
	for i := range t.Rows {
		if v, ok := t.Float(i, p.ValueColumn); ok && finite(v) {
			values = append(values, v)
		}
	}
	if len(values) == 0 {
		return renderPlaceholder(p, w)
	}

	bins := p.Bins
	if bins <= 0 {
		bins = 10
	}

	lo, hi := values[0], values[0]
	for _, v := range values {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if hi == lo {
		// Degenerate distribution: a single bar carries everything.
		bins = 1
		hi = lo + 1
	}

	width := (hi - lo) / float64(bins)
	counts := make([]int, bins)
	for _, v := range values {
		idx := int((v - lo) / width)
		if idx >= bins {
			idx = bins - 1
		}
		counts[idx]++
	}

	bars := make([]chart.Value, 0, bins)
	for i, c := range counts {
		bars = append(bars, chart.Value{
			Label: fmt.Sprintf("%.2f", lo+width*float64(i)),
			Value: float64(c),
		})
	}

	graph := chart.BarChart{
		Title:    p.Title,
		Width:    p.Width,
		Height:   p.Height,
		BarWidth: barWidth(p.Width, bins),
		Bars:     bars,
		YAxis: chart.YAxis{
			ValueFormatter: func(v interface{}) string {
				return chart.FloatValueFormatterWithFormat(v, "%.0f")
			},
		},
	}
	return graph.Render(chart.PNG, w)
}

// renderPlaceholder draws an empty frame so degraded tabs still get an image
// instead of a broken <img>.
func renderPlaceholder(p Params, w io.Writer) error {
	graph := chart.Chart{
		Title:  p.Title + " (no data)",
		Width:  p.Width,
		Height: p.Height,
		Series: []chart.Series{
			chart.ContinuousSeries{
				XValues: []float64{0, 1},
				YValues: []float64{0, 0},
			},
		},
	}
	return graph.Render(chart.PNG, w)
}

func labelValues(t dataset.Table, labelCol, valueCol string) []chart.Value {
	values := make([]chart.Value, 0, t.Len())
	for i := range t.Rows {
		label := t.String(i, labelCol)
		v, ok := t.Float(i, valueCol)
		if label == "" || !ok || !finite(v) {
			continue
		}
		values = append(values, chart.Value{Label: label, Value: v})
	}
	return values
}

func barWidth(chartWidth, bars int) int {
	if bars <= 0 {
		return 20
	}
	w := chartWidth / (bars * 2)
	if w < 8 {
		return 8
	}
	if w > 60 {
		return 60
	}
	return w
}

// finite reports whether v is a usable number (not NaN or infinite).
func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
