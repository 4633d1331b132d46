package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// DailyValue is one point of a portfolio equity curve.
type DailyValue struct {
	Date  time.Time
	Value decimal.Decimal
}

// DailyValueSeries is a portfolio equity curve, one entry per trading date of
// the backtest, in date order.
type DailyValueSeries []DailyValue

// Final returns the last value of the curve, or zero for an empty series.
func (s DailyValueSeries) Final() decimal.Decimal {
	if len(s) == 0 {
		return decimal.Zero
	}
	return s[len(s)-1].Value
}
