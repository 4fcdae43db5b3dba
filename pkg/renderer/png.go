package renderer

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	chart "github.com/wcharczuk/go-chart/v2"

	"github.com/tosih/flightlog-tool/pkg/figure"
)

// chartSize applies the width/height clamp rules used for PNG panels.
func chartSize(rawW int) (int, int) {
	w := rawW
	if w < 800 {
		w = 800
	}
	h := int(float64(w) * 0.33)
	if h < 280 {
		h = 280
	}
	if h > 520 {
		h = 520
	}
	return w, h
}

// RenderPNGs writes one PNG file per figure panel into dir and returns the
// written paths. Panels whose traces carry fewer than two drawable points
// are skipped.
func RenderPNGs(fig *figure.Figure, dir string, width int) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	w, h := chartSize(width)

	var written []string
	for _, panel := range fig.Panels {
		series := []chart.Series{}
		for i, tr := range panel.Traces {
			xs, ys := dropNaN(traceXs(tr), tr.Y)
			if len(xs) < 2 {
				continue
			}
			series = append(series, chart.ContinuousSeries{
				Name:    tr.Name,
				XValues: xs,
				YValues: ys,
				Style: chart.Style{
					StrokeWidth: 1.5,
					StrokeColor: chart.GetDefaultColor(i),
				},
			})
		}
		if len(series) == 0 {
			continue
		}

		ch := chart.Chart{
			Title:      fig.Title,
			Width:      w,
			Height:     h,
			Background: chart.Style{Padding: chart.Box{Top: 14, Left: 16, Right: 12, Bottom: 24}},
			XAxis:      chart.XAxis{Name: fig.XLabel},
			YAxis:      chart.YAxis{Name: panel.Unit},
			Series:     series,
		}
		ch.Elements = []chart.Renderable{chart.Legend(&ch)}

		path := filepath.Join(dir, "panel_"+sanitizeName(panel.Unit)+".png")
		f, err := os.Create(path)
		if err != nil {
			return written, fmt.Errorf("create %s: %w", path, err)
		}
		if err := ch.Render(chart.PNG, f); err != nil {
			f.Close()
			return written, fmt.Errorf("render %s: %w", path, err)
		}
		if err := f.Close(); err != nil {
			return written, err
		}
		written = append(written, path)
	}

	if len(written) == 0 {
		return nil, fmt.Errorf("no panels with drawable data")
	}
	return written, nil
}

// traceXs returns the numeric axis of a trace. Label axes (timestamps)
// plot against row position.
func traceXs(tr figure.Trace) []float64 {
	if len(tr.X) > 0 || len(tr.XLabels) == 0 {
		return tr.X
	}
	xs := make([]float64, len(tr.XLabels))
	for i := range xs {
		xs[i] = float64(i)
	}
	return xs
}

// dropNaN filters point pairs where either coordinate is NaN; go-chart does
// not tolerate NaN inputs.
func dropNaN(xs, ys []float64) ([]float64, []float64) {
	n := len(xs)
	if len(ys) < n {
		n = len(ys)
	}
	outX := make([]float64, 0, n)
	outY := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		if math.IsNaN(xs[i]) || math.IsNaN(ys[i]) {
			continue
		}
		outX = append(outX, xs[i])
		outY = append(outY, ys[i])
	}
	return outX, outY
}

func sanitizeName(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}
