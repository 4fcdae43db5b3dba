package renderer

import (
	"fmt"
	"math"
	"strings"

	"github.com/pterm/pterm"
	"github.com/tosih/flightlog-tool/pkg/figure"
	"github.com/tosih/flightlog-tool/pkg/logdata"
	"github.com/tosih/flightlog-tool/pkg/units"
)

// ListParameters displays every valid column of a log in a table.
func ListParameters(log *logdata.Log) {
	pterm.DefaultHeader.WithFullWidth().Printf("Parameters in %s", log.FileName())

	data := pterm.TableData{
		{"Abbr", "Name", "Unit", "Type", "Samples"},
	}
	for _, col := range log.Columns {
		kind := "text"
		samples := fmt.Sprintf("%d", len(col.Raw))
		if col.Numeric {
			kind = "numeric"
			samples = fmt.Sprintf("%d", logdata.ColumnStats(col.Values).Count)
		}
		data = append(data, []string{
			col.Abbr,
			col.Full,
			units.Extract(col.Full),
			kind,
			samples,
		})
	}

	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	pterm.Info.Printf("%d parameters, %d rows\n", len(log.Columns), log.Rows())
}

// Summary renders a composed figure in the terminal: one box per unit panel
// with per-trace statistics and a sparkline.
func Summary(fig *figure.Figure) {
	pterm.DefaultHeader.WithFullWidth().
		WithBackgroundStyle(pterm.NewStyle(pterm.BgDarkGray)).
		WithTextStyle(pterm.NewStyle(pterm.FgLightWhite)).
		Println(fig.Title)
	pterm.Info.Printf("X axis: %s\n", fig.XLabel)

	for _, panel := range fig.Panels {
		pterm.Println()
		pterm.DefaultBox.
			WithTitle(fmt.Sprintf("Unit: %s", panel.Unit)).
			WithTitleTopLeft().
			Println(buildPanelString(panel))
	}
}

func buildPanelString(panel figure.Panel) string {
	var result strings.Builder

	nameWidth := 0
	for _, tr := range panel.Traces {
		if len(tr.Name) > nameWidth {
			nameWidth = len(tr.Name)
		}
	}

	for i, tr := range panel.Traces {
		if i > 0 {
			result.WriteString("\n")
		}
		s := logdata.ColumnStats(tr.Y)
		result.WriteString(fmt.Sprintf("%-*s  min %8.2f  max %8.2f  avg %8.2f  ",
			nameWidth, tr.Name, s.Min, s.Max, s.Mean))
		result.WriteString(buildSparkline(tr.Y, 48))
	}

	return result.String()
}

// buildSparkline renders values as a fixed-width colored bar strip. Values
// are sampled evenly and bucketed against the trace's own range.
func buildSparkline(values []float64, width int) string {
	s := logdata.ColumnStats(values)
	if s.Count == 0 || width <= 0 {
		return pterm.FgGray.Sprint(strings.Repeat("·", max(width, 0)))
	}

	var result strings.Builder
	for i := 0; i < width; i++ {
		idx := i * len(values) / width
		v := values[idx]
		if math.IsNaN(v) {
			result.WriteString(pterm.FgGray.Sprint("·"))
			continue
		}
		result.WriteString(sparkGlyph(v, s.Min, s.Max))
	}
	return result.String()
}

func sparkGlyph(value, min, max float64) string {
	if max == min {
		return pterm.FgGray.Sprint("·")
	}

	normalized := (value - min) / (max - min)

	switch {
	case normalized < 0.25:
		return pterm.FgCyan.Sprint("░")
	case normalized < 0.5:
		return pterm.FgGreen.Sprint("▒")
	case normalized < 0.75:
		return pterm.FgYellow.Sprint("▓")
	default:
		return pterm.FgRed.Sprint("█")
	}
}
