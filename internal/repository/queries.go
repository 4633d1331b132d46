package repository

import (
	"context"
	"errors"
	"time"

	"rebalancer/types"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// pgxQueries implements priceQueries against a pgx connection pool.
type pgxQueries struct {
	pool *pgxpool.Pool
}

func (q *pgxQueries) SelectCoveringFetch(ctx context.Context, ticker string, start, end time.Time) (bool, error) {
	var exists int
	err := q.pool.QueryRow(ctx,
		`SELECT 1 FROM fetches WHERE ticker=$1 AND start_date<=$2 AND end_date>=$3 LIMIT 1`,
		ticker, start, end).Scan(&exists)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (q *pgxQueries) InsertFetch(ctx context.Context, ticker string, start, end time.Time) error {
	_, err := q.pool.Exec(ctx,
		`INSERT INTO fetches (ticker, start_date, end_date) VALUES ($1, $2, $3)
		 ON CONFLICT (ticker, start_date, end_date) DO NOTHING`,
		ticker, start, end)
	return err
}

func (q *pgxQueries) SelectCloses(ctx context.Context, ticker string, start, end time.Time) ([]types.ClosePrice, error) {
	rows, err := q.pool.Query(ctx,
		`SELECT date, close FROM prices WHERE ticker=$1 AND date >= $2 AND date < $3 ORDER BY date ASC`,
		ticker, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var closes []types.ClosePrice
	for rows.Next() {
		var date time.Time
		var close decimal.Decimal
		if err := rows.Scan(&date, &close); err != nil {
			return nil, err
		}
		closes = append(closes, types.ClosePrice{Date: types.Day(date), Close: close})
	}
	return closes, rows.Err()
}

func (q *pgxQueries) InsertClose(ctx context.Context, ticker string, close types.ClosePrice) error {
	_, err := q.pool.Exec(ctx,
		`INSERT INTO prices (ticker, date, close) VALUES ($1, $2, $3)
		 ON CONFLICT (ticker, date) DO NOTHING`,
		ticker, close.Date, close.Close)
	return err
}
