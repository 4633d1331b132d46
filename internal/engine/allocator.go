package engine

import (
	"github.com/shopspring/decimal"
)

// allocate converts a total value into whole-share holdings at today's prices.
// Every tracked ticker gets an entry, so a rebalance fully replaces the
// previous holdings set. Each weighted ticker with a usable price receives
// floor(value*weight/price) shares; the remainder, and the full allocation of
// any ticker without a usable price, stays as cash. With weights summing to at
// most 1.0 and positive prices the returned cash is never negative.
func allocate(totalValue decimal.Decimal, prices map[string]decimal.Decimal, weights map[string]decimal.Decimal, tracked []string) (map[string]decimal.Decimal, decimal.Decimal) {
	cash := totalValue
	holdings := make(map[string]decimal.Decimal, len(tracked))
	for _, ticker := range tracked {
		holdings[ticker] = decimal.Zero
	}
	for ticker, weight := range weights {
		if _, ok := holdings[ticker]; !ok {
			continue
		}
		px, ok := prices[ticker]
		if !ok || px.Sign() <= 0 {
			// Missing price data: zero shares, the weight's allocation stays as cash.
			continue
		}
		shares := totalValue.Mul(weight).Div(px).Floor()
		holdings[ticker] = shares
		cash = cash.Sub(shares.Mul(px))
	}
	return holdings, cash
}
