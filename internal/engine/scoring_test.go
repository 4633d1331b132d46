package engine

import (
	"testing"
	"time"

	"rebalancer/types"

	"github.com/shopspring/decimal"
)

func curveAt(dates []time.Time, values ...string) types.DailyValueSeries {
	out := make(types.DailyValueSeries, 0, len(values))
	for i, v := range values {
		out = append(out, types.DailyValue{Date: dates[i], Value: decimal.RequireFromString(v)})
	}
	return out
}

func TestMonthlyScores(t *testing.T) {
	dates := []time.Time{
		day(2024, 1, 1), day(2024, 1, 15), day(2024, 1, 31),
		day(2024, 2, 15), day(2024, 2, 29),
	}
	names := []string{"A", "B"}
	curves := map[string]types.DailyValueSeries{
		"A": curveAt(dates, "100", "110", "120", "130", "140"),
		"B": curveAt(dates, "100", "90", "105", "100", "150"),
	}

	months := monthlyScores(names, curves, day(2024, 3, 10))
	if len(months) != 2 {
		t.Fatalf("got %d scored months, want 2", len(months))
	}

	// January: A has the better since-start return (0.20 vs 0.05) and the
	// better drawdown (0 vs -0.10).
	jan := months[0]
	if jan.Year != 2024 || jan.Month != time.January {
		t.Fatalf("first month = %d-%02d, want 2024-01", jan.Year, jan.Month)
	}
	if jan.Scores["A"] != 2 || jan.Scores["B"] != 0 {
		t.Errorf("January scores = %v, want A=2 B=0", jan.Scores)
	}

	// February: B has the better since-start return (0.50 vs 0.40) but A
	// still has the better drawdown.
	feb := months[1]
	if feb.Scores["A"] != 1 || feb.Scores["B"] != 1 {
		t.Errorf("February scores = %v, want A=1 B=1", feb.Scores)
	}

	totals := totalScores(months)
	if totals["A"] != 3 || totals["B"] != 1 {
		t.Errorf("totals = %v, want A=3 B=1", totals)
	}
}

func TestMonthlyScores_TiesAllScore(t *testing.T) {
	dates := []time.Time{day(2024, 1, 1), day(2024, 1, 31)}
	names := []string{"A", "B"}
	curves := map[string]types.DailyValueSeries{
		"A": curveAt(dates, "100", "110"),
		"B": curveAt(dates, "100", "110"),
	}
	months := monthlyScores(names, curves, day(2024, 6, 1))
	if len(months) != 1 {
		t.Fatalf("got %d scored months, want 1", len(months))
	}
	if months[0].Scores["A"] != 2 || months[0].Scores["B"] != 2 {
		t.Errorf("tied scores = %v, want both 2", months[0].Scores)
	}
}

func TestMonthlyScores_SkipsUnfinishedMonth(t *testing.T) {
	dates := []time.Time{day(2024, 1, 1), day(2024, 1, 31), day(2024, 2, 10)}
	names := []string{"A"}
	curves := map[string]types.DailyValueSeries{
		"A": curveAt(dates, "100", "110", "120"),
	}

	months := monthlyScores(names, curves, day(2024, 2, 15))
	if len(months) != 1 {
		t.Fatalf("got %d scored months, want only the finished January", len(months))
	}
	if months[0].Month != time.January {
		t.Errorf("scored month = %s, want January", months[0].Month)
	}
}

func TestMonthlyScores_EmptyInputs(t *testing.T) {
	if got := monthlyScores(nil, nil, day(2024, 1, 1)); got != nil {
		t.Errorf("monthlyScores(no portfolios) = %v, want nil", got)
	}
	curves := map[string]types.DailyValueSeries{"A": nil}
	if got := monthlyScores([]string{"A"}, curves, day(2024, 1, 1)); got != nil {
		t.Errorf("monthlyScores(empty curve) = %v, want nil", got)
	}
}
