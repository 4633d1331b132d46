package engine

import (
	"bytes"
	"fmt"
	"time"

	"github.com/wcharczuk/go-chart/v2"
)

// RenderEquityChart renders a PNG line chart of every portfolio's equity
// curve, one series per portfolio in ranking order. Returns raw PNG bytes.
func RenderEquityChart(result *Result) ([]byte, error) {
	if len(result.Stats) == 0 {
		return nil, fmt.Errorf("no portfolios to chart")
	}
	index := result.Curves[result.Stats[0].Name]
	if len(index) < 2 {
		return nil, fmt.Errorf("need at least 2 data points, got %d", len(index))
	}

	xValues := make([]time.Time, len(index))
	for i, pt := range index {
		xValues[i] = pt.Date
	}

	series := make([]chart.Series, 0, len(result.Stats))
	for i, row := range result.Stats {
		yValues := make([]float64, len(index))
		for j, pt := range result.Curves[row.Name] {
			yValues[j] = pt.Value.InexactFloat64()
		}
		series = append(series, chart.TimeSeries{
			Name: row.Name,
			Style: chart.Style{
				StrokeColor: chart.GetDefaultColor(i),
				StrokeWidth: 2.0,
			},
			XValues: xValues,
			YValues: yValues,
		})
	}

	graph := chart.Chart{
		Title:  "Portfolio Equity Curves",
		Width:  900,
		Height: 400,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 10, Right: 20, Bottom: 10},
		},
		XAxis: chart.XAxis{
			TickPosition: chart.TickPositionBetweenTicks,
			ValueFormatter: func(v interface{}) string {
				if t, ok := v.(float64); ok {
					return chart.TimeFromFloat64(t).Format("Jan 06")
				}
				return ""
			},
		},
		YAxis: chart.YAxis{
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("%.0f", f)
				}
				return ""
			},
		},
		Series: series,
	}

	graph.Elements = []chart.Renderable{
		chart.LegendLeft(&graph),
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("chart render failed: %w", err)
	}
	return buf.Bytes(), nil
}
