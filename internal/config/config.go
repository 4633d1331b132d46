// Package config loads the TOML run configuration and converts it into the
// engine's backtest configuration.
package config

import (
	"fmt"
	"os"
	"time"

	"rebalancer/internal/engine"
	"rebalancer/types"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/shopspring/decimal"
)

// Config holds one backtest run as read from TOML.
type Config struct {
	InitialCapital float64           `toml:"initial_capital"`
	StartDate      string            `toml:"start_date"`
	EndDate        string            `toml:"end_date"` // empty means today
	Database       DatabaseConfig    `toml:"database"`
	Output         OutputConfig      `toml:"output"`
	Portfolios     []PortfolioConfig `toml:"portfolios"`
}

// DatabaseConfig holds the price cache connection string.
type DatabaseConfig struct {
	URL string `toml:"url"`
}

// OutputConfig holds optional report artifact paths.
type OutputConfig struct {
	CurvesCSV string `toml:"curves_csv"`
	ChartPNG  string `toml:"chart_png"`
}

type PortfolioConfig struct {
	Name     string          `toml:"name"`
	Settings []SettingConfig `toml:"settings"`
}

// SettingConfig is one dated weight setting of a portfolio.
type SettingConfig struct {
	Date      string             `toml:"date"`
	Rebalance string             `toml:"rebalance"` // empty means none
	Weights   map[string]float64 `toml:"weights"`
}

// Load reads and parses the TOML configuration at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return &cfg, nil
}

// BacktestConfig converts the file configuration into the engine's input.
// An empty end date defaults to today, and an end date in the future is
// clamped to today.
func (c *Config) BacktestConfig() (*engine.BacktestConfig, error) {
	if c.StartDate == "" {
		return nil, fmt.Errorf("start_date is required: %w", engine.ErrInvalidConfig)
	}
	start, err := time.Parse(time.DateOnly, c.StartDate)
	if err != nil {
		return nil, fmt.Errorf("start_date: %w", err)
	}

	today := types.Day(time.Now())
	end := today
	if c.EndDate != "" {
		end, err = time.Parse(time.DateOnly, c.EndDate)
		if err != nil {
			return nil, fmt.Errorf("end_date: %w", err)
		}
		if end.After(today) {
			end = today
		}
	}

	portfolios := make([]*engine.PortfolioConfig, 0, len(c.Portfolios))
	for _, pf := range c.Portfolios {
		history, err := pf.history()
		if err != nil {
			return nil, err
		}
		portfolios = append(portfolios, engine.NewPortfolioConfig(pf.Name, history))
	}

	return engine.NewBacktestConfig(decimal.NewFromFloat(c.InitialCapital), start, end, portfolios...), nil
}

func (pf *PortfolioConfig) history() (*types.SettingsHistory, error) {
	history := &types.SettingsHistory{}
	for _, sc := range pf.Settings {
		date, err := time.Parse(time.DateOnly, sc.Date)
		if err != nil {
			return nil, fmt.Errorf("portfolio %q setting date: %w", pf.Name, err)
		}
		frequency := types.FrequencyNone
		if sc.Rebalance != "" {
			var ok bool
			frequency, ok = types.ConvertFrequency[sc.Rebalance]
			if !ok {
				return nil, fmt.Errorf("portfolio %q on %s: unknown rebalance frequency %q", pf.Name, sc.Date, sc.Rebalance)
			}
		}
		weights := make(map[string]decimal.Decimal, len(sc.Weights))
		for ticker, w := range sc.Weights {
			weights[ticker] = decimal.NewFromFloat(w)
		}
		history.Add(types.Day(date), types.WeightSetting{Rebalance: frequency, Weights: weights})
	}
	return history, nil
}
