package repository

import (
	"context"
	"fmt"
	"time"

	"rebalancer/types"
)

// HasFullRange reports whether a recorded fetch fully covers the requested
// range for the ticker, meaning the cached prices are authoritative for it.
func (db *Database) HasFullRange(ticker string, start, end time.Time, ctx context.Context) (bool, error) {
	ok, err := db.prices.SelectCoveringFetch(ctx, ticker, types.Day(start), types.Day(end))
	if err != nil {
		return false, fmt.Errorf("ticker %s: %w", ticker, err)
	}
	return ok, nil
}

// GetCloses returns the cached daily closes for the ticker within
// [start, end), ascending. Returns ErrNoPrices when the cache has nothing.
func (db *Database) GetCloses(ticker string, start, end time.Time, ctx context.Context) ([]types.ClosePrice, error) {
	closes, err := db.prices.SelectCloses(ctx, ticker, types.Day(start), types.Day(end))
	if err != nil {
		return nil, fmt.Errorf("ticker %s: %w", ticker, err)
	}
	if len(closes) == 0 {
		return nil, fmt.Errorf("ticker %s: %w", ticker, ErrNoPrices)
	}
	return closes, nil
}

// StoreFetch records that the range was fetched for the ticker and caches its
// closes. Existing rows are left untouched.
func (db *Database) StoreFetch(ticker string, start, end time.Time, closes []types.ClosePrice, ctx context.Context) error {
	if err := db.prices.InsertFetch(ctx, ticker, types.Day(start), types.Day(end)); err != nil {
		return fmt.Errorf("record fetch for %s: %w", ticker, err)
	}
	for _, close := range closes {
		if err := db.prices.InsertClose(ctx, ticker, close); err != nil {
			return fmt.Errorf("cache price for %s on %s: %w", ticker, close.Date.Format(time.DateOnly), err)
		}
	}
	return nil
}
