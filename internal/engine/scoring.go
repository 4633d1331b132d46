package engine

import (
	"time"

	"rebalancer/types"

	"github.com/shopspring/decimal"
)

// MonthScore holds the points awarded per portfolio for one calendar month:
// +1 for the best since-start total return as of the month's last trading
// date, +1 for the least-negative since-start max drawdown. Ties all score.
type MonthScore struct {
	Year   int
	Month  time.Month
	Scores map[string]int
}

type monthKey struct {
	year  int
	month time.Month
}

// monthlyScores walks the shared date index of the equity curves month by
// month and awards points per MonthScore. The month containing asOf is
// skipped: it is not finished, so scoring it would be premature.
func monthlyScores(names []string, curves map[string]types.DailyValueSeries, asOf time.Time) []MonthScore {
	if len(names) == 0 {
		return nil
	}
	index := curves[names[0]]
	if len(index) == 0 {
		return nil
	}
	current := monthKey{asOf.UTC().Year(), asOf.UTC().Month()}

	var out []MonthScore
	for start := 0; start < len(index); {
		key := monthKey{index[start].Date.Year(), index[start].Date.Month()}
		end := start
		for end < len(index) && index[end].Date.Year() == key.year && index[end].Date.Month() == key.month {
			end++
		}
		if key != current {
			out = append(out, scoreMonth(names, curves, key, end))
		}
		start = end
	}
	return out
}

// scoreMonth awards the two points for one month, judged over each curve from
// its start through the month's last trading date (index upto, exclusive).
func scoreMonth(names []string, curves map[string]types.DailyValueSeries, key monthKey, upto int) MonthScore {
	score := MonthScore{Year: key.year, Month: key.month, Scores: make(map[string]int, len(names))}
	for _, name := range names {
		score.Scores[name] = 0
	}

	returns := make(map[string]decimal.Decimal, len(names))
	drawdowns := make(map[string]decimal.Decimal, len(names))
	for _, name := range names {
		curve := curves[name]
		start := curve[0].Value
		ret := decimal.Zero
		if start.Sign() > 0 {
			ret = curve[upto-1].Value.Div(start).Sub(one)
		}
		returns[name] = ret
		drawdowns[name] = maxDrawdown(curve[:upto])
	}

	bestReturn := returns[names[0]]
	bestDrawdown := drawdowns[names[0]]
	for _, name := range names[1:] {
		if returns[name].GreaterThan(bestReturn) {
			bestReturn = returns[name]
		}
		// The least negative drawdown is the largest one.
		if drawdowns[name].GreaterThan(bestDrawdown) {
			bestDrawdown = drawdowns[name]
		}
	}
	for _, name := range names {
		if returns[name].Equal(bestReturn) {
			score.Scores[name]++
		}
		if drawdowns[name].Equal(bestDrawdown) {
			score.Scores[name]++
		}
	}
	return score
}

func totalScores(months []MonthScore) map[string]int {
	totals := make(map[string]int)
	for _, m := range months {
		for name, s := range m.Scores {
			totals[name] += s
		}
	}
	return totals
}
