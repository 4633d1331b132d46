package engine

import (
	"time"

	"rebalancer/types"

	"github.com/shopspring/decimal"
)

// PortfolioConfig names one portfolio and carries its dated weight settings.
type PortfolioConfig struct {
	name    string
	history *types.SettingsHistory
}

func NewPortfolioConfig(name string, history *types.SettingsHistory) *PortfolioConfig {
	return &PortfolioConfig{
		name:    name,
		history: history,
	}
}

func (c *PortfolioConfig) Name() string {
	return c.name
}

// BacktestConfig is the full input of a run: the shared capital and date
// range plus every portfolio to simulate over them.
type BacktestConfig struct {
	initialCapital decimal.Decimal
	start          time.Time
	end            time.Time
	portfolios     []*PortfolioConfig
}

func NewBacktestConfig(initialCapital decimal.Decimal, start, end time.Time, portfolios ...*PortfolioConfig) *BacktestConfig {
	return &BacktestConfig{
		initialCapital: initialCapital,
		start:          types.Day(start),
		end:            types.Day(end),
		portfolios:     portfolios,
	}
}
