package engine

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"time"
)

// WriteCurvesCSVFile writes the equity curves to a CSV file at the given path.
func WriteCurvesCSVFile(path string, result *Result) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create curves file: %w", err)
	}
	defer f.Close()

	return WriteCurvesCSV(f, result)
}

// WriteCurvesCSV writes the equity curves to any io.Writer as CSV, one date
// per row and one column per portfolio in ranking order.
// You can pass os.Stdout for debugging, or a file.
func WriteCurvesCSV(w io.Writer, result *Result) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	header := []string{"date"}
	for _, row := range result.Stats {
		header = append(header, row.Name)
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	if len(result.Stats) == 0 {
		return cw.Error()
	}
	index := result.Curves[result.Stats[0].Name]
	for i, pt := range index {
		record := []string{pt.Date.Format(time.DateOnly)}
		for _, row := range result.Stats {
			record = append(record, result.Curves[row.Name][i].Value.String())
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write record: %w", err)
		}
	}

	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}
