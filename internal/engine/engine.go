package engine

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"rebalancer/types"

	"github.com/schollz/progressbar/v3"
	"github.com/shopspring/decimal"
)

// Global error declarations.
var (
	ErrInvalidConfig = errors.New("invalid backtest configuration")
	ErrNoTickers     = errors.New("no tickers found in portfolios")
	ErrNoTradingDays = errors.New("no trading days in range")
)

type priceProvider interface {
	GetPrices(tickers []string, start, end time.Time, ctx context.Context) (*types.PriceMatrix, error)
}

// PortfolioStats is the comparative summary of one simulated portfolio.
type PortfolioStats struct {
	Name        string
	TotalReturn decimal.Decimal
	MaxDrawdown decimal.Decimal
	Sharpe      decimal.Decimal
	Rebalances  int
	Score       int
}

// Result is the outcome of a full run: one equity curve and stats row per
// portfolio, the monthly score breakdown, and the winner of the ranking.
type Result struct {
	Stats         []PortfolioStats
	MonthlyScores []MonthScore
	Curves        map[string]types.DailyValueSeries
	Winner        string
}

type Engine struct {
	config       *BacktestConfig
	provider     priceProvider
	showProgress bool
	now          func() time.Time
}

func NewEngine(config *BacktestConfig, provider priceProvider, showProgress bool) *Engine {
	return &Engine{
		config:       config,
		provider:     provider,
		showProgress: showProgress,
		now:          time.Now,
	}
}

// Run loads prices for every ticker referenced by the portfolios, simulates
// each portfolio over the shared trading calendar, and derives the
// comparative statistics and ranking.
func (e *Engine) Run(ctx context.Context) (*Result, error) {
	if err := e.validate(); err != nil {
		return nil, err
	}

	tickers := e.allTickers()
	if len(tickers) == 0 {
		return nil, ErrNoTickers
	}

	matrix, err := e.provider.GetPrices(tickers, e.config.start, e.config.end, ctx)
	if err != nil {
		return nil, fmt.Errorf("load prices: %w", err)
	}
	if matrix.Len() == 0 {
		return nil, fmt.Errorf("%s to %s: %w",
			e.config.start.Format(time.DateOnly), e.config.end.Format(time.DateOnly), ErrNoTradingDays)
	}

	var bar *progressbar.ProgressBar
	if e.showProgress {
		bar = initProgressBar(matrix.Len() * len(e.config.portfolios))
	}

	result := &Result{Curves: make(map[string]types.DailyValueSeries, len(e.config.portfolios))}
	names := make([]string, 0, len(e.config.portfolios))
	rebalances := make(map[string]int, len(e.config.portfolios))
	for _, pf := range e.config.portfolios {
		bt := newBacktester(pf.name, pf.history, matrix, e.config.initialCapital, bar)
		if err := bt.run(); err != nil {
			return nil, err
		}
		names = append(names, pf.name)
		result.Curves[pf.name] = bt.series
		rebalances[pf.name] = bt.rebalances
	}

	result.MonthlyScores = monthlyScores(names, result.Curves, e.now())
	totals := totalScores(result.MonthlyScores)

	for _, name := range names {
		curve := result.Curves[name]
		result.Stats = append(result.Stats, PortfolioStats{
			Name:        name,
			TotalReturn: totalReturn(curve, e.config.initialCapital),
			MaxDrawdown: maxDrawdown(curve),
			Sharpe:      sharpeRatio(curve),
			Rebalances:  rebalances[name],
			Score:       totals[name],
		})
	}
	// Rank by score, ties broken by fewer rebalances.
	sort.SliceStable(result.Stats, func(i, j int) bool {
		if result.Stats[i].Score != result.Stats[j].Score {
			return result.Stats[i].Score > result.Stats[j].Score
		}
		return result.Stats[i].Rebalances < result.Stats[j].Rebalances
	})
	result.Winner = result.Stats[0].Name

	return result, nil
}

func (e *Engine) validate() error {
	if len(e.config.portfolios) == 0 {
		return fmt.Errorf("no portfolios: %w", ErrInvalidConfig)
	}
	if e.config.start.IsZero() || e.config.end.IsZero() {
		return fmt.Errorf("start and end dates are required: %w", ErrInvalidConfig)
	}
	if !e.config.start.Before(e.config.end) {
		return fmt.Errorf("start date %s must be before end date %s: %w",
			e.config.start.Format(time.DateOnly), e.config.end.Format(time.DateOnly), ErrInvalidConfig)
	}
	if e.config.initialCapital.Sign() <= 0 {
		return fmt.Errorf("initial capital must be positive: %w", ErrInvalidConfig)
	}
	return nil
}

// allTickers returns the sorted union of tickers across every portfolio's
// settings history.
func (e *Engine) allTickers() []string {
	seen := make(map[string]struct{})
	var tickers []string
	for _, pf := range e.config.portfolios {
		for _, ticker := range pf.history.Tickers() {
			if _, ok := seen[ticker]; ok {
				continue
			}
			seen[ticker] = struct{}{}
			tickers = append(tickers, ticker)
		}
	}
	sort.Strings(tickers)
	return tickers
}

func initProgressBar(maxTicks int) *progressbar.ProgressBar {
	return progressbar.NewOptions(maxTicks,
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetElapsedTime(true),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetDescription("Backtesting in progress..."),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}))
}
