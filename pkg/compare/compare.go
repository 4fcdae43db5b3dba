package compare

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/tosih/flightlog-tool/pkg/logdata"
)

// ParamDiff holds the statistics delta for one shared parameter.
type ParamDiff struct {
	Abbr      string
	Full      string
	Stats1    logdata.Stats
	Stats2    logdata.Stats
	MeanDelta float64
}

// SharedNumeric returns abbreviated names of numeric columns present in
// both logs, in the first log's column order.
func SharedNumeric(log1, log2 *logdata.Log) []string {
	var shared []string
	for _, abbr := range log1.NumericColumns() {
		if log2.IsNumeric(abbr) {
			shared = append(shared, abbr)
		}
	}
	return shared
}

// Diff computes per-parameter statistic deltas between two logs. With an
// empty params list every shared numeric parameter is compared.
func Diff(log1, log2 *logdata.Log, params []string) ([]ParamDiff, error) {
	if len(params) == 0 {
		params = SharedNumeric(log1, log2)
	}
	if len(params) == 0 {
		return nil, fmt.Errorf("no shared numeric parameters")
	}

	diffs := make([]ParamDiff, 0, len(params))
	for _, abbr := range params {
		col1, ok1 := log1.Column(abbr)
		col2, ok2 := log2.Column(abbr)
		if !ok1 || !ok2 || !col1.Numeric || !col2.Numeric {
			return nil, fmt.Errorf("parameter %q is not numeric in both logs", abbr)
		}
		d := ParamDiff{
			Abbr:   abbr,
			Full:   col1.Full,
			Stats1: logdata.ColumnStats(col1.Values),
			Stats2: logdata.ColumnStats(col2.Values),
		}
		d.MeanDelta = d.Stats2.Mean - d.Stats1.Mean
		diffs = append(diffs, d)
	}
	return diffs, nil
}

// CompareFiles loads two logs and displays per-parameter stat deltas.
func CompareFiles(file1, file2 string, params []string) error {
	pterm.DefaultHeader.WithFullWidth().Println("Flight Log Comparison")

	log1, err := logdata.Load(file1)
	if err != nil {
		return err
	}
	log2, err := logdata.Load(file2)
	if err != nil {
		return err
	}

	pterm.Info.Printf("File 1: %s (%d rows)\n", log1.FileName(), log1.Rows())
	pterm.Info.Printf("File 2: %s (%d rows)\n", log2.FileName(), log2.Rows())
	pterm.Println()

	diffs, err := Diff(log1, log2, params)
	if err != nil {
		return err
	}

	data := pterm.TableData{
		{"Parameter", "Mean 1", "Mean 2", "Δ Mean", "Δ Min", "Δ Max", ""},
	}
	changed := 0
	for _, d := range diffs {
		if d.MeanDelta != 0 {
			changed++
		}
		data = append(data, []string{
			d.Full,
			fmt.Sprintf("%.2f", d.Stats1.Mean),
			fmt.Sprintf("%.2f", d.Stats2.Mean),
			fmt.Sprintf("%+.2f", d.MeanDelta),
			fmt.Sprintf("%+.2f", d.Stats2.Min-d.Stats1.Min),
			fmt.Sprintf("%+.2f", d.Stats2.Max-d.Stats1.Max),
			deltaSymbol(d),
		})
	}

	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	pterm.Println()
	pterm.Info.Printf("Changed parameters: %d / %d\n", changed, len(diffs))

	return nil
}

func deltaSymbol(d ParamDiff) string {
	span := d.Stats1.Max - d.Stats1.Min
	if span == 0 {
		span = 1
	}
	normalized := d.MeanDelta / span

	switch {
	case normalized < -0.1:
		return pterm.FgBlue.Sprint("▼▼")
	case normalized < 0:
		return pterm.FgCyan.Sprint("▼")
	case normalized == 0:
		return pterm.FgGray.Sprint("··")
	case normalized > 0.1:
		return pterm.FgRed.Sprint("▲▲")
	default:
		return pterm.FgYellow.Sprint("▲")
	}
}
