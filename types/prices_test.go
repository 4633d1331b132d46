package types

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestDay(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}

	tests := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{
			name: "already midnight UTC",
			in:   date(2024, 3, 15),
			want: date(2024, 3, 15),
		},
		{
			name: "afternoon truncated",
			in:   time.Date(2024, 3, 15, 16, 30, 45, 123, time.UTC),
			want: date(2024, 3, 15),
		},
		{
			name: "non-UTC evening crosses the date line",
			in:   time.Date(2024, 3, 15, 21, 0, 0, 0, ny),
			want: date(2024, 3, 16),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Day(tt.in); !got.Equal(tt.want) {
				t.Errorf("Day(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestPriceMatrixAddRow(t *testing.T) {
	m := NewPriceMatrix([]string{"AAPL", "TLT"})
	if err := m.AddRow(date(2024, 1, 2), weightsOf(map[string]string{"AAPL": "100"})); err != nil {
		t.Fatalf("AddRow(Jan 2): %v", err)
	}
	if err := m.AddRow(date(2024, 1, 3), weightsOf(map[string]string{"AAPL": "101", "TLT": "50"})); err != nil {
		t.Fatalf("AddRow(Jan 3): %v", err)
	}

	if m.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", m.Len())
	}

	px, ok := m.Price(0, "AAPL")
	if !ok || !px.Equal(decimal.RequireFromString("100")) {
		t.Errorf("Price(0, AAPL) = %s, %v, want 100", px, ok)
	}
	if _, ok := m.Price(0, "TLT"); ok {
		t.Error("Price(0, TLT) found a price, want absent")
	}
	if row := m.Row(1); len(row) != 2 {
		t.Errorf("Row(1) has %d prices, want 2", len(row))
	}
}

func TestPriceMatrixAddRow_RejectsOutOfOrder(t *testing.T) {
	m := NewPriceMatrix([]string{"AAPL"})
	if err := m.AddRow(date(2024, 1, 3), nil); err != nil {
		t.Fatalf("AddRow(Jan 3): %v", err)
	}

	if err := m.AddRow(date(2024, 1, 2), nil); !errors.Is(err, ErrDateOrder) {
		t.Errorf("AddRow(earlier date) error = %v, want ErrDateOrder", err)
	}
	if err := m.AddRow(date(2024, 1, 3), nil); !errors.Is(err, ErrDateOrder) {
		t.Errorf("AddRow(duplicate date) error = %v, want ErrDateOrder", err)
	}
}

func TestPriceMatrixAddRow_NormalizesDates(t *testing.T) {
	m := NewPriceMatrix([]string{"AAPL"})
	if err := m.AddRow(time.Date(2024, 1, 2, 15, 30, 0, 0, time.UTC), nil); err != nil {
		t.Fatalf("AddRow: %v", err)
	}
	if got := m.Dates()[0]; !got.Equal(date(2024, 1, 2)) {
		t.Errorf("stored date = %v, want midnight UTC", got)
	}
}

func TestPriceMatrixAddRow_CopiesCloses(t *testing.T) {
	m := NewPriceMatrix([]string{"AAPL"})
	closes := weightsOf(map[string]string{"AAPL": "100"})
	if err := m.AddRow(date(2024, 1, 2), closes); err != nil {
		t.Fatalf("AddRow: %v", err)
	}

	closes["AAPL"] = decimal.RequireFromString("999")
	px, _ := m.Price(0, "AAPL")
	if !px.Equal(decimal.RequireFromString("100")) {
		t.Errorf("Price(0, AAPL) = %s after caller mutation, want 100", px)
	}
}
