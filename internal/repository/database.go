package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"rebalancer/types"

	pgxdecimal "github.com/jackc/pgx-shopspring-decimal"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Global error declarations.
var (
	ErrNoPrices = errors.New("no cached prices found in datasource")
)

// priceQueries is the seam between the Database methods and the actual SQL,
// so tests can swap in a mock.
type priceQueries interface {
	SelectCoveringFetch(ctx context.Context, ticker string, start, end time.Time) (bool, error)
	InsertFetch(ctx context.Context, ticker string, start, end time.Time) error
	SelectCloses(ctx context.Context, ticker string, start, end time.Time) ([]types.ClosePrice, error)
	InsertClose(ctx context.Context, ticker string, close types.ClosePrice) error
}

// Database is the Postgres-backed price cache.
type Database struct {
	prices priceQueries
	conn   *pgxpool.Pool
}

// NewDatabase creates a new Database instance and verifies connectivity.
func NewDatabase(dbURL string) (Database, error) {
	config, err := pgxpool.ParseConfig(dbURL)
	if err != nil {
		return Database{}, fmt.Errorf("parse config: %w", err)
	}
	// Register shopspring decimal
	config.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		pgxdecimal.Register(conn.TypeMap())
		return nil
	}

	conn, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		return Database{}, err
	}
	// Ensure the connection is established.
	if err := conn.Ping(context.Background()); err != nil {
		return Database{}, err
	}

	return Database{
		prices: &pgxQueries{pool: conn},
		conn:   conn,
	}, nil
}

func (db *Database) Close() {
	if db.conn != nil {
		db.conn.Close()
	}
}
