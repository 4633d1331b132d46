package types

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// WeightSetting is one dated configuration of a portfolio: target weights per
// ticker plus the auto-rebalance cadence active from that date on.
type WeightSetting struct {
	Rebalance Frequency
	Weights   map[string]decimal.Decimal
}

type SettingEntry struct {
	Date    time.Time
	Setting WeightSetting
}

// SettingsHistory holds the dated weight settings of a portfolio, ascending by
// effective date. It is immutable during a backtest run.
type SettingsHistory struct {
	entries []SettingEntry
}

// Add inserts a setting effective from the given date, keeping entries sorted.
// A second entry on the same date replaces the first, so the last one added wins.
func (h *SettingsHistory) Add(date time.Time, setting WeightSetting) {
	i := sort.Search(len(h.entries), func(i int) bool {
		return !h.entries[i].Date.Before(date)
	})
	if i < len(h.entries) && h.entries[i].Date.Equal(date) {
		h.entries[i].Setting = setting
		return
	}
	h.entries = append(h.entries, SettingEntry{})
	copy(h.entries[i+1:], h.entries[i:])
	h.entries[i] = SettingEntry{Date: date, Setting: setting}
}

func (h *SettingsHistory) Len() int {
	return len(h.entries)
}

// EffectiveAsOf returns the setting with the latest effective date that is on
// or before asOf. The second return is false when no entry qualifies.
func (h *SettingsHistory) EffectiveAsOf(asOf time.Time) (WeightSetting, bool) {
	i := sort.Search(len(h.entries), func(i int) bool {
		return h.entries[i].Date.After(asOf)
	})
	if i == 0 {
		return WeightSetting{}, false
	}
	return h.entries[i-1].Setting, true
}

// At returns the entry effective exactly on the given date, if any.
func (h *SettingsHistory) At(date time.Time) (WeightSetting, bool) {
	i := sort.Search(len(h.entries), func(i int) bool {
		return !h.entries[i].Date.Before(date)
	})
	if i < len(h.entries) && h.entries[i].Date.Equal(date) {
		return h.entries[i].Setting, true
	}
	return WeightSetting{}, false
}

// Tickers returns the sorted set of tickers referenced anywhere in the history.
func (h *SettingsHistory) Tickers() []string {
	seen := make(map[string]struct{})
	for _, e := range h.entries {
		for t := range e.Setting.Weights {
			seen[t] = struct{}{}
		}
	}
	tickers := make([]string, 0, len(seen))
	for t := range seen {
		tickers = append(tickers, t)
	}
	sort.Strings(tickers)
	return tickers
}
