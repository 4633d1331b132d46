package marketdata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"rebalancer/types"

	"github.com/shopspring/decimal"
)

const defaultYahooBaseURL = "https://query1.finance.yahoo.com"

var (
	ErrNoChartData = errors.New("no chart data returned")
)

// YahooClient fetches daily closing prices from the Yahoo Finance chart API.
type YahooClient struct {
	baseURL string
	client  *http.Client
}

func NewYahooClient() *YahooClient {
	return &YahooClient{
		baseURL: defaultYahooBaseURL,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

type yahooChartResp struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Close []*float64 `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error any `json:"error"`
	} `json:"chart"`
}

// DailyCloses returns the ticker's daily closes within [start, end),
// ascending by date. Bars Yahoo reports without a close are skipped.
func (c *YahooClient) DailyCloses(ticker string, start, end time.Time, ctx context.Context) ([]types.ClosePrice, error) {
	url := fmt.Sprintf("%s/v8/finance/chart/%s?period1=%d&period2=%d&interval=1d",
		c.baseURL, ticker, start.Unix(), end.Unix())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "curl/8")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ticker %s: yahoo status %d", ticker, resp.StatusCode)
	}

	var yc yahooChartResp
	if err := json.NewDecoder(resp.Body).Decode(&yc); err != nil {
		return nil, err
	}
	if len(yc.Chart.Result) == 0 || len(yc.Chart.Result[0].Indicators.Quote) == 0 {
		return nil, fmt.Errorf("ticker %s: %w", ticker, ErrNoChartData)
	}

	timestamps := yc.Chart.Result[0].Timestamp
	closes := yc.Chart.Result[0].Indicators.Quote[0].Close

	var out []types.ClosePrice
	for i, ts := range timestamps {
		if i >= len(closes) || closes[i] == nil {
			continue
		}
		day := types.Day(time.Unix(ts, 0))
		if n := len(out); n > 0 && !out[n-1].Date.Before(day) {
			continue
		}
		out = append(out, types.ClosePrice{Date: day, Close: decimal.NewFromFloat(*closes[i])})
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("ticker %s: %w", ticker, ErrNoChartData)
	}
	return out, nil
}
