package engine

import (
	"time"

	"rebalancer/types"

	"github.com/schollz/progressbar/v3"
	"github.com/shopspring/decimal"
)

// trigger names the rebalance transition taken on a simulated day. Forced and
// auto triggers can coincide; the forced one wins and the counter moves once.
type trigger int

const (
	noTrigger trigger = iota
	autoTrigger
	forcedTrigger
)

// portfolioState is the mutable per-day state of one simulated portfolio.
type portfolioState struct {
	cash     decimal.Decimal
	holdings map[string]decimal.Decimal

	frequency types.Frequency
	nextAuto  time.Time
	hasNext   bool

	lastApplied time.Time
	hasApplied  bool
}

type backtester struct {
	name           string
	history        *types.SettingsHistory
	matrix         *types.PriceMatrix
	initialCapital decimal.Decimal
	bar            *progressbar.ProgressBar

	state      portfolioState
	series     types.DailyValueSeries
	rebalances int
}

func newBacktester(name string, history *types.SettingsHistory, matrix *types.PriceMatrix, initialCapital decimal.Decimal, bar *progressbar.ProgressBar) *backtester {
	return &backtester{
		name:           name,
		history:        history,
		matrix:         matrix,
		initialCapital: initialCapital,
		bar:            bar,
	}
}

// activeFrequency maps an unset cadence to FrequencyNone.
func activeFrequency(f types.Frequency) types.Frequency {
	if f == "" {
		return types.FrequencyNone
	}
	return f
}

// run simulates the portfolio over every trading date of the matrix. The
// initial allocation happens on the first date and counts as one rebalance
// even when no setting applies (full cash, zero holdings).
func (b *backtester) run() error {
	dates := b.matrix.Dates()
	b.state = portfolioState{
		cash:      b.initialCapital,
		holdings:  zeroHoldings(b.matrix.Tickers()),
		frequency: types.FrequencyNone,
	}
	b.series = make(types.DailyValueSeries, 0, len(dates))
	if len(dates) == 0 {
		return nil
	}

	first := dates[0]
	if setting, ok := b.history.EffectiveAsOf(first); ok {
		b.state.frequency = activeFrequency(setting.Rebalance)
		weights, err := validateWeights(setting, b.name, first)
		if err != nil {
			return err
		}
		b.state.holdings, b.state.cash = allocate(b.initialCapital, b.matrix.Row(0), weights, b.matrix.Tickers())
		b.state.nextAuto, b.state.hasNext = NextRebalanceDate(first, b.state.frequency)
	}
	b.rebalances = 1
	// A setting dated exactly on the first day is consumed by the initial
	// allocation and must not force a second rebalance in the day loop.
	if _, ok := b.history.At(first); ok {
		b.state.lastApplied = first
		b.state.hasApplied = true
	}

	for i, day := range dates {
		if err := b.step(i, day); err != nil {
			return err
		}
		if b.bar != nil {
			b.bar.Add(1)
		}
	}
	return nil
}

// step advances the state machine by one trading date: trigger detection,
// valuation, rebalance execution, rescheduling.
func (b *backtester) step(i int, day time.Time) error {
	tr := noTrigger
	var forcedSetting types.WeightSetting

	if setting, ok := b.history.At(day); ok && !(b.state.hasApplied && b.state.lastApplied.Equal(day)) {
		tr = forcedTrigger
		forcedSetting = setting
		b.state.lastApplied = day
		b.state.hasApplied = true
		if newFreq := activeFrequency(setting.Rebalance); newFreq != b.state.frequency {
			b.state.frequency = newFreq
			// Invalidate the schedule so it is recomputed from today after
			// the rebalance executes.
			b.state.hasNext = false
		}
	}
	if tr == noTrigger && b.state.hasNext && !day.Before(b.state.nextAuto) {
		tr = autoTrigger
	}

	// Valuation always uses pre-rebalance holdings. Tickers with no price
	// today contribute nothing.
	value := b.state.cash
	for ticker, shares := range b.state.holdings {
		if shares.IsZero() {
			continue
		}
		if px, ok := b.matrix.Price(i, ticker); ok {
			value = value.Add(shares.Mul(px))
		}
	}
	b.series = append(b.series, types.DailyValue{Date: day, Value: value})

	if tr == noTrigger {
		return nil
	}

	var weights map[string]decimal.Decimal
	switch tr {
	case forcedTrigger:
		w, err := validateWeights(forcedSetting, b.name, day)
		if err != nil {
			return err
		}
		weights = w
	case autoTrigger:
		if setting, ok := b.history.EffectiveAsOf(day); ok {
			w, err := validateWeights(setting, b.name, day)
			if err != nil {
				return err
			}
			weights = w
		}
	}

	b.state.holdings, b.state.cash = allocate(value, b.matrix.Row(i), weights, b.matrix.Tickers())
	b.rebalances++

	if b.state.frequency != types.FrequencyNone {
		b.state.nextAuto, b.state.hasNext = NextRebalanceDate(day, b.state.frequency)
	} else {
		b.state.hasNext = false
	}
	return nil
}

func zeroHoldings(tickers []string) map[string]decimal.Decimal {
	holdings := make(map[string]decimal.Decimal, len(tickers))
	for _, ticker := range tickers {
		holdings[ticker] = decimal.Zero
	}
	return holdings
}
