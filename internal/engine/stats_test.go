package engine

import (
	"math"
	"testing"
	"time"

	"rebalancer/types"

	"github.com/shopspring/decimal"
)

func series(start time.Time, values ...string) types.DailyValueSeries {
	out := make(types.DailyValueSeries, 0, len(values))
	for i, v := range values {
		out = append(out, types.DailyValue{
			Date:  start.AddDate(0, 0, i),
			Value: decimal.RequireFromString(v),
		})
	}
	return out
}

func TestTotalReturn(t *testing.T) {
	capital := decimal.RequireFromString("10000")
	tests := []struct {
		name   string
		series types.DailyValueSeries
		want   string
	}{
		{"gain", series(day(2024, 1, 1), "10000", "11000", "12600"), "0.26"},
		{"loss", series(day(2024, 1, 1), "10000", "7500"), "-0.25"},
		{"flat", series(day(2024, 1, 1), "10000", "10000"), "0"},
		{"empty series", nil, "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := totalReturn(tt.series, capital)
			if !got.Equal(decimal.RequireFromString(tt.want)) {
				t.Errorf("totalReturn() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestMaxDrawdown(t *testing.T) {
	tests := []struct {
		name   string
		series types.DailyValueSeries
		want   string
	}{
		{"single dip", series(day(2024, 1, 1), "100", "120", "90", "105"), "-0.25"},
		{"later shallower dip keeps first", series(day(2024, 1, 1), "100", "120", "90", "150", "120"), "-0.25"},
		{"monotonic rise has zero drawdown", series(day(2024, 1, 1), "100", "110", "120"), "0"},
		{"drawdown from first point", series(day(2024, 1, 1), "100", "50"), "-0.5"},
		{"empty series", nil, "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := maxDrawdown(tt.series)
			if !got.Equal(decimal.RequireFromString(tt.want)) {
				t.Errorf("maxDrawdown() = %s, want %s", got, tt.want)
			}
			if got.GreaterThan(decimal.Zero) {
				t.Errorf("maxDrawdown() = %s, must never be positive", got)
			}
		})
	}
}

func TestSharpeRatio_ZeroStdDev(t *testing.T) {
	// Constant curve and perfectly steady growth both have zero variance in
	// returns; the ratio must degrade to 0, not NaN.
	constant := series(day(2024, 1, 1), "10000", "10000", "10000")
	if got := sharpeRatio(constant); !got.Equal(decimal.Zero) {
		t.Errorf("sharpeRatio(constant) = %s, want 0", got)
	}
	steady := series(day(2024, 1, 1), "100", "110", "121", "133.1")
	if got := sharpeRatio(steady); !got.Equal(decimal.Zero) {
		t.Errorf("sharpeRatio(steady growth) = %s, want 0", got)
	}
}

func TestSharpeRatio(t *testing.T) {
	// Returns are 0.2 and 0.05: mean 0.125, sample variance 0.01125.
	curve := series(day(2024, 1, 1), "100", "120", "126")
	want := 0.125 / math.Sqrt(0.01125) * math.Sqrt(252)

	got := sharpeRatio(curve).InexactFloat64()
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("sharpeRatio() = %v, want %v", got, want)
	}
}

func TestSharpeRatio_ShortSeries(t *testing.T) {
	if got := sharpeRatio(series(day(2024, 1, 1), "10000")); !got.Equal(decimal.Zero) {
		t.Errorf("sharpeRatio(single point) = %s, want 0", got)
	}
	if got := sharpeRatio(nil); !got.Equal(decimal.Zero) {
		t.Errorf("sharpeRatio(nil) = %s, want 0", got)
	}
}
