package types

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

var ErrDateOrder = errors.New("price dates must be strictly increasing")

// ClosePrice is one daily close of a single ticker, as exchanged between the
// market-data fetcher and the price cache.
type ClosePrice struct {
	Date  time.Time
	Close decimal.Decimal
}

// Day truncates a timestamp to its calendar day at midnight UTC. All dates in
// a backtest are normalized this way so date comparisons ignore time of day.
func Day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// PriceMatrix holds daily closing prices per ticker over an ascending,
// deduplicated sequence of trading dates. A ticker may have no price on a
// given date. Built once per run, read-only during simulation.
type PriceMatrix struct {
	tickers []string
	dates   []time.Time
	rows    []map[string]decimal.Decimal
}

func NewPriceMatrix(tickers []string) *PriceMatrix {
	return &PriceMatrix{tickers: append([]string(nil), tickers...)}
}

// AddRow appends one trading date with its closing prices. Tickers absent from
// closes have no price that day. Dates must arrive strictly increasing.
func (m *PriceMatrix) AddRow(date time.Time, closes map[string]decimal.Decimal) error {
	date = Day(date)
	if n := len(m.dates); n > 0 && !m.dates[n-1].Before(date) {
		return fmt.Errorf("row %s after %s: %w", date.Format(time.DateOnly), m.dates[n-1].Format(time.DateOnly), ErrDateOrder)
	}
	row := make(map[string]decimal.Decimal, len(closes))
	for ticker, px := range closes {
		row[ticker] = px
	}
	m.dates = append(m.dates, date)
	m.rows = append(m.rows, row)
	return nil
}

func (m *PriceMatrix) Len() int {
	return len(m.dates)
}

func (m *PriceMatrix) Tickers() []string {
	return m.tickers
}

// Dates returns the trading date sequence. Callers must not mutate it.
func (m *PriceMatrix) Dates() []time.Time {
	return m.dates
}

// Price returns the close for a ticker on the i-th trading date. The second
// return is false when the ticker has no price that day.
func (m *PriceMatrix) Price(i int, ticker string) (decimal.Decimal, bool) {
	px, ok := m.rows[i][ticker]
	return px, ok
}

// Row returns the closing prices of the i-th trading date keyed by ticker.
// Tickers with no price that day are absent. Callers must not mutate the
// returned map.
func (m *PriceMatrix) Row(i int) map[string]decimal.Decimal {
	return m.rows[i]
}
