package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"

	"github.com/tosih/flightlog-tool/pkg/figure"
	"github.com/tosih/flightlog-tool/pkg/logdata"
)

// ExportCSV writes the axis column and the selected parameters to a CSV
// file, metadata comments first.
func ExportCSV(log *logdata.Log, xParam string, params []string, path string) error {
	cols := make([]*logdata.Column, 0, len(params)+1)
	for _, abbr := range append([]string{xParam}, params...) {
		col, ok := log.Column(abbr)
		if !ok {
			return fmt.Errorf("unknown parameter %q", abbr)
		}
		cols = append(cols, col)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create export file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	// Metadata as comment rows
	writer.Write([]string{fmt.Sprintf("# Source: %s", log.FileName())})
	writer.Write([]string{fmt.Sprintf("# Parameters: %d", len(params))})
	writer.Write([]string{""})

	header := make([]string, len(cols))
	for i, col := range cols {
		header[i] = col.Full
	}
	writer.Write(header)

	for n := 0; n < log.Rows(); n++ {
		row := make([]string, len(cols))
		for i, col := range cols {
			row[i] = col.Raw[n]
		}
		writer.Write(row)
	}

	return writer.Error()
}

// ExportFigureJSON writes a composed figure description as indented JSON.
func ExportFigureJSON(fig *figure.Figure, path string) error {
	data, err := json.MarshalIndent(fig, "", "  ")
	if err != nil {
		return fmt.Errorf("encode figure: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write figure: %w", err)
	}
	return nil
}
