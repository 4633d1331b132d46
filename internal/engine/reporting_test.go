package engine

import (
	"strings"
	"testing"

	"rebalancer/types"

	"github.com/shopspring/decimal"
)

func reportResult() *Result {
	curveA := series(day(2024, 1, 2), "10000", "11000", "12600")
	curveB := series(day(2024, 1, 2), "10000", "10000", "10000")
	return &Result{
		Stats: []PortfolioStats{
			{Name: "Growth", TotalReturn: decimal.RequireFromString("0.26"), MaxDrawdown: decimal.Zero, Sharpe: decimal.RequireFromString("1.5"), Rebalances: 1, Score: 4},
			{Name: "Idle", TotalReturn: decimal.Zero, MaxDrawdown: decimal.Zero, Sharpe: decimal.Zero, Rebalances: 3, Score: 2},
		},
		MonthlyScores: []MonthScore{
			{Year: 2024, Month: 1, Scores: map[string]int{"Growth": 2, "Idle": 1}},
		},
		Curves: map[string]types.DailyValueSeries{"Growth": curveA, "Idle": curveB},
		Winner: "Growth",
	}
}

func TestWriteReport(t *testing.T) {
	var sb strings.Builder
	WriteReport(&sb, reportResult())
	out := sb.String()

	for _, want := range []string{
		"Growth", "Idle",
		"26.00%",
		"Winner: Growth",
		"2024-01:", "Growth=2", "Idle=1",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q:\n%s", want, out)
		}
	}

	growthLine := ""
	idleLine := ""
	for _, line := range strings.Split(out, "\n") {
		if strings.HasPrefix(line, "Growth") && growthLine == "" {
			growthLine = line
		}
		if strings.HasPrefix(line, "Idle") && idleLine == "" {
			idleLine = line
		}
	}
	if growthLine == "" || idleLine == "" {
		t.Fatalf("report missing stat rows:\n%s", out)
	}
	if strings.Index(out, growthLine) > strings.Index(out, idleLine) {
		t.Error("rows must appear in ranking order, Growth first")
	}
}

func TestWriteCurvesCSV(t *testing.T) {
	var sb strings.Builder
	if err := WriteCurvesCSV(&sb, reportResult()); err != nil {
		t.Fatalf("WriteCurvesCSV(): %v", err)
	}

	lines := strings.Split(strings.TrimSpace(sb.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("csv has %d lines, want header plus 3 rows:\n%s", len(lines), sb.String())
	}
	if lines[0] != "date,Growth,Idle" {
		t.Errorf("header = %q, want ranking order columns", lines[0])
	}
	if lines[1] != "2024-01-02,10000,10000" {
		t.Errorf("first row = %q", lines[1])
	}
	if lines[3] != "2024-01-04,12600,10000" {
		t.Errorf("last row = %q", lines[3])
	}
}

func TestWriteCurvesCSV_NoPortfolios(t *testing.T) {
	var sb strings.Builder
	if err := WriteCurvesCSV(&sb, &Result{Curves: map[string]types.DailyValueSeries{}}); err != nil {
		t.Fatalf("WriteCurvesCSV(): %v", err)
	}
	if got := strings.TrimSpace(sb.String()); got != "date" {
		t.Errorf("csv = %q, want bare header", got)
	}
}
