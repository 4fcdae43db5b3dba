package logdata

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Column holds one parameter from a flight log.
type Column struct {
	Abbr    string
	Full    string
	Raw     []string
	Values  []float64 // NaN where the cell was empty; nil for non-numeric columns
	Numeric bool
}

// Log is one loaded flight log file.
type Log struct {
	Path       string
	Columns    []Column
	AbbrToFull map[string]string
	FullToAbbr map[string]string

	byAbbr map[string]int
}

// DisplayName pairs a human-readable column label with its abbreviated name.
type DisplayName struct {
	Display string
	Abbr    string
}

// Load reads a flight log CSV with the recorder's three-line preamble:
// a title line (ignored), a full-name header with embedded units, and an
// abbreviated-name header. Columns with an empty abbreviated name carry no
// data and are dropped everywhere.
func Load(path string) (*Log, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	r.TrimLeadingSpace = true

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	if len(records) < 3 {
		return nil, fmt.Errorf("parse %s: missing three-line header", filepath.Base(path))
	}

	// records[0] is the airframe info line and is ignored.
	fullNames := records[1]
	abbrNames := records[2]

	log := &Log{
		Path:       path,
		AbbrToFull: make(map[string]string),
		FullToAbbr: make(map[string]string),
		byAbbr:     make(map[string]int),
	}

	rows := records[3:]
	for i, rawAbbr := range abbrNames {
		abbr := strings.TrimSpace(rawAbbr)
		if abbr == "" {
			continue
		}

		full := ""
		if i < len(fullNames) {
			full = strings.TrimSpace(fullNames[i])
		}
		if full == "" {
			full = abbr
		}

		col := Column{
			Abbr: abbr,
			Full: full,
			Raw:  make([]string, len(rows)),
		}
		for n, row := range rows {
			if i < len(row) {
				col.Raw[n] = strings.TrimSpace(row[i])
			}
		}
		classify(&col)

		// First occurrence wins for duplicate abbreviated names so the
		// mapping and column lookup stay in agreement.
		if _, dup := log.byAbbr[abbr]; !dup {
			log.byAbbr[abbr] = len(log.Columns)
			log.AbbrToFull[abbr] = full
		}
		log.FullToAbbr[full] = abbr
		log.Columns = append(log.Columns, col)
	}

	if len(log.Columns) == 0 {
		return nil, fmt.Errorf("parse %s: no named columns", filepath.Base(path))
	}

	return log, nil
}

// classify marks a column numeric when every non-empty cell parses as a
// float and at least one cell is non-empty. Empty cells become NaN so rows
// stay aligned across columns.
func classify(col *Column) {
	values := make([]float64, len(col.Raw))
	seen := false
	for i, cell := range col.Raw {
		if cell == "" {
			values[i] = math.NaN()
			continue
		}
		v, err := strconv.ParseFloat(cell, 64)
		if err != nil {
			return
		}
		values[i] = v
		seen = true
	}
	if !seen {
		return
	}
	col.Values = values
	col.Numeric = true
}

// Column returns the column with the given abbreviated name.
func (l *Log) Column(abbr string) (*Column, bool) {
	idx, ok := l.byAbbr[abbr]
	if !ok {
		return nil, false
	}
	return &l.Columns[idx], true
}

// IsNumeric reports whether the named column holds numeric data.
func (l *Log) IsNumeric(abbr string) bool {
	col, ok := l.Column(abbr)
	return ok && col.Numeric
}

// AllColumns returns the abbreviated names of every valid column in file order.
func (l *Log) AllColumns() []string {
	names := make([]string, len(l.Columns))
	for i, col := range l.Columns {
		names[i] = col.Abbr
	}
	return names
}

// NumericColumns returns the abbreviated names of all numeric columns.
func (l *Log) NumericColumns() []string {
	var names []string
	for _, col := range l.Columns {
		if col.Numeric {
			names = append(names, col.Abbr)
		}
	}
	return names
}

// DisplayNames returns full-name/abbreviation pairs for every column.
func (l *Log) DisplayNames() []DisplayName {
	names := make([]DisplayName, len(l.Columns))
	for i, col := range l.Columns {
		names[i] = DisplayName{Display: col.Full, Abbr: col.Abbr}
	}
	return names
}

// Rows returns the number of data rows in the log.
func (l *Log) Rows() int {
	if len(l.Columns) == 0 {
		return 0
	}
	return len(l.Columns[0].Raw)
}

// FileName returns the base name of the loaded file.
func (l *Log) FileName() string {
	return filepath.Base(l.Path)
}
