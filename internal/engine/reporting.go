package engine

import (
	"fmt"
	"io"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// WriteReport prints the comparative backtest report: one row per portfolio
// in ranking order, the monthly score breakdown, and the winner.
func WriteReport(w io.Writer, result *Result) {
	fmt.Fprintln(w, "===== Backtest Report =====")
	fmt.Fprintf(w, "%-20s %12s %12s %8s %12s %6s\n",
		"Portfolio", "Return", "Max DD", "Sharpe", "Rebalances", "Score")
	for _, row := range result.Stats {
		fmt.Fprintf(w, "%-20s %11s%% %11s%% %8s %12d %6d\n",
			row.Name,
			row.TotalReturn.Mul(hundred).StringFixed(2),
			row.MaxDrawdown.Mul(hundred).StringFixed(2),
			row.Sharpe.StringFixed(2),
			row.Rebalances,
			row.Score)
	}

	if len(result.MonthlyScores) > 0 {
		fmt.Fprintln(w, "\n-- Monthly Scores --")
		for _, month := range result.MonthlyScores {
			fmt.Fprintf(w, "%d-%02d:", month.Year, month.Month)
			for _, row := range result.Stats {
				fmt.Fprintf(w, "  %s=%d", row.Name, month.Scores[row.Name])
			}
			fmt.Fprintln(w)
		}
	}

	fmt.Fprintf(w, "\nWinner: %s\n", result.Winner)
	fmt.Fprintln(w, "===========================")
}
