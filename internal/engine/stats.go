package engine

import (
	"math"

	"rebalancer/types"

	"github.com/shopspring/decimal"
)

const tradingDaysPerYear = 252

// totalReturn is the final value of the curve over the initial capital, minus one.
func totalReturn(series types.DailyValueSeries, initialCapital decimal.Decimal) decimal.Decimal {
	if len(series) == 0 || initialCapital.Sign() <= 0 {
		return decimal.Zero
	}
	return series.Final().Div(initialCapital).Sub(one)
}

// maxDrawdown is the largest decline from a running peak, as a fraction of
// that peak. The peak includes the current point, so the result is at most 0.
func maxDrawdown(series types.DailyValueSeries) decimal.Decimal {
	peak := decimal.Zero
	maxDD := decimal.Zero
	for i, pt := range series {
		if i == 0 || pt.Value.GreaterThan(peak) {
			peak = pt.Value
		}
		if peak.Sign() > 0 {
			dd := pt.Value.Sub(peak).Div(peak)
			if dd.LessThan(maxDD) {
				maxDD = dd
			}
		}
	}
	return maxDD
}

// sharpeRatio is the mean of day-over-day returns divided by their sample
// standard deviation, annualized by sqrt(252). A constant curve (zero
// standard deviation) yields 0 rather than an undefined value.
func sharpeRatio(series types.DailyValueSeries) decimal.Decimal {
	if len(series) < 2 {
		return decimal.Zero
	}
	returns := make([]float64, 0, len(series)-1)
	prev := series[0].Value
	for _, pt := range series[1:] {
		if prev.Sign() != 0 {
			returns = append(returns, pt.Value.Sub(prev).Div(prev).InexactFloat64())
		}
		prev = pt.Value
	}
	if len(returns) < 2 {
		return decimal.Zero
	}

	var sum float64
	for _, r := range returns {
		sum += r
	}
	mean := sum / float64(len(returns))

	var varianceSum float64
	for _, r := range returns {
		diff := r - mean
		varianceSum += diff * diff
	}
	std := math.Sqrt(varianceSum / float64(len(returns)-1))
	if std == 0 {
		return decimal.Zero
	}

	return decimal.NewFromFloat(mean / std * math.Sqrt(tradingDaysPerYear))
}
