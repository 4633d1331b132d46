package marketdata

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"rebalancer/internal/repository"
	"rebalancer/types"

	"github.com/shopspring/decimal"
)

// PriceStore is the cache the provider consults before fetching. A covering
// fetch means the store is authoritative for the range.
type PriceStore interface {
	HasFullRange(ticker string, start, end time.Time, ctx context.Context) (bool, error)
	GetCloses(ticker string, start, end time.Time, ctx context.Context) ([]types.ClosePrice, error)
	StoreFetch(ticker string, start, end time.Time, closes []types.ClosePrice, ctx context.Context) error
}

// Fetcher retrieves daily closes from the external market-data source.
type Fetcher interface {
	DailyCloses(ticker string, start, end time.Time, ctx context.Context) ([]types.ClosePrice, error)
}

// CachedProvider assembles a PriceMatrix for a set of tickers, serving each
// ticker from the store when a recorded fetch covers the range and fetching
// (then caching) otherwise.
type CachedProvider struct {
	store   PriceStore
	fetcher Fetcher
	now     func() time.Time
}

func NewCachedProvider(store PriceStore, fetcher Fetcher) *CachedProvider {
	return &CachedProvider{
		store:   store,
		fetcher: fetcher,
		now:     time.Now,
	}
}

// GetPrices returns the forward-filled price matrix for the tickers over
// [start, end). The end date is clamped to yesterday; today's close is not
// final yet.
func (p *CachedProvider) GetPrices(tickers []string, start, end time.Time, ctx context.Context) (*types.PriceMatrix, error) {
	start = types.Day(start)
	end = types.Day(end)
	yesterday := types.Day(p.now()).AddDate(0, 0, -1)
	if end.After(yesterday) {
		end = yesterday
	}

	perTicker := make(map[string][]types.ClosePrice, len(tickers))
	for _, ticker := range tickers {
		closes, err := p.load(ticker, start, end, ctx)
		if err != nil {
			return nil, err
		}
		perTicker[ticker] = closes
	}
	return buildMatrix(tickers, perTicker)
}

func (p *CachedProvider) load(ticker string, start, end time.Time, ctx context.Context) ([]types.ClosePrice, error) {
	covered, err := p.store.HasFullRange(ticker, start, end, ctx)
	if err != nil {
		return nil, err
	}
	if covered {
		closes, err := p.store.GetCloses(ticker, start, end, ctx)
		if err == nil {
			return closes, nil
		}
		// A covering fetch with no rows means the cache never saw data for
		// the range; fall through and fetch again.
		if !errors.Is(err, repository.ErrNoPrices) {
			return nil, err
		}
	}

	fetched, err := p.fetcher.DailyCloses(ticker, start, end, ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", ticker, err)
	}
	if len(fetched) > 0 {
		if err := p.store.StoreFetch(ticker, start, end, fetched, ctx); err != nil {
			return nil, err
		}
	}
	return fetched, nil
}

// buildMatrix merges the per-ticker closes over the union of their dates,
// forward-filling each ticker from its first close on. A ticker has no price
// before its first close.
func buildMatrix(tickers []string, perTicker map[string][]types.ClosePrice) (*types.PriceMatrix, error) {
	dateSet := make(map[time.Time]struct{})
	for _, closes := range perTicker {
		for _, c := range closes {
			dateSet[c.Date] = struct{}{}
		}
	}
	dates := make([]time.Time, 0, len(dateSet))
	for d := range dateSet {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	matrix := types.NewPriceMatrix(tickers)
	cursor := make(map[string]int, len(tickers))
	last := make(map[string]decimal.Decimal, len(tickers))
	for _, d := range dates {
		row := make(map[string]decimal.Decimal, len(tickers))
		for _, ticker := range tickers {
			closes := perTicker[ticker]
			for cursor[ticker] < len(closes) && !closes[cursor[ticker]].Date.After(d) {
				last[ticker] = closes[cursor[ticker]].Close
				cursor[ticker]++
			}
			if px, ok := last[ticker]; ok {
				row[ticker] = px
			}
		}
		if err := matrix.AddRow(d, row); err != nil {
			return nil, err
		}
	}
	return matrix, nil
}
