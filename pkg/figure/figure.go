package figure

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"github.com/tosih/flightlog-tool/pkg/logdata"
	"github.com/tosih/flightlog-tool/pkg/units"
)

// Series is a value sequence that marshals NaN samples as JSON null, so
// browser-side chart libraries render them as gaps.
type Series []float64

// MarshalJSON implements json.Marshaler.
func (s Series) MarshalJSON() ([]byte, error) {
	var b bytes.Buffer
	b.WriteByte('[')
	for i, v := range s {
		if i > 0 {
			b.WriteByte(',')
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			b.WriteString("null")
		} else {
			b.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
		}
	}
	b.WriteByte(']')
	return b.Bytes(), nil
}

// UnmarshalJSON implements json.Unmarshaler; null becomes NaN.
func (s *Series) UnmarshalJSON(data []byte) error {
	var raw []*float64
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make(Series, len(raw))
	for i, p := range raw {
		if p == nil {
			out[i] = math.NaN()
		} else {
			out[i] = *p
		}
	}
	*s = out
	return nil
}

// Trace is one plotted parameter. X carries a numeric axis; XLabels carries
// a label axis (timestamps and other non-numeric columns). Exactly one of
// the two is set.
type Trace struct {
	Name    string   `json:"name"`
	X       Series   `json:"x,omitempty"`
	XLabels []string `json:"xLabels,omitempty"`
	Y       Series   `json:"y"`
}

// Panel groups traces that share a physical unit. Each panel gets its own
// Y scale; the X axis is shared across all panels of a figure.
type Panel struct {
	Unit   string  `json:"unit"`
	Traces []Trace `json:"traces"`
}

// Figure is a chart description handed to a renderer. It carries no
// rendering state of its own.
type Figure struct {
	Title  string  `json:"title"`
	XLabel string  `json:"xLabel"`
	Panels []Panel `json:"panels"`
}

// Compose builds a unit-grouped figure from selected parameters. Parameters
// sharing a unit land in the same panel, in selection order. When celsius is
// set, values in "deg F" units are converted and the unit labels rewritten.
func Compose(log *logdata.Log, selected []string, xParam string, celsius bool) (*Figure, error) {
	if len(selected) == 0 {
		return nil, fmt.Errorf("no parameters selected")
	}

	xCol, ok := log.Column(xParam)
	if !ok {
		return nil, fmt.Errorf("unknown axis parameter %q", xParam)
	}

	// Non-numeric axis columns (timestamps, mostly) become a label axis.
	xDisplay := xCol.Full
	var xValues Series
	var xLabels []string
	if xCol.Numeric {
		xValues = xCol.Values
		if celsius && units.IsFahrenheit(units.Extract(xDisplay)) {
			xValues = toCelsius(xValues)
			xDisplay = units.ToCelsiusLabel(xDisplay)
		}
	} else {
		xLabels = xCol.Raw
	}

	// Group selections by unit, preserving first-encounter order.
	var order []string
	grouped := make(map[string][]*logdata.Column)
	for _, abbr := range selected {
		col, ok := log.Column(abbr)
		if !ok {
			return nil, fmt.Errorf("unknown parameter %q", abbr)
		}
		if !col.Numeric {
			return nil, fmt.Errorf("parameter %q is not numeric", abbr)
		}
		unit := units.Extract(col.Full)
		if _, seen := grouped[unit]; !seen {
			order = append(order, unit)
		}
		grouped[unit] = append(grouped[unit], col)
	}

	fig := &Figure{
		Title:  "Engine Data Log: " + log.FileName(),
		XLabel: xDisplay,
	}

	for _, unit := range order {
		label := unit
		convert := celsius && units.IsFahrenheit(unit)
		if convert {
			label = units.ToCelsiusLabel(unit)
		}

		panel := Panel{Unit: label}
		for _, col := range grouped[unit] {
			y := col.Values
			if convert {
				y = toCelsius(y)
			}
			panel.Traces = append(panel.Traces, Trace{
				Name:    col.Full,
				X:       xValues,
				XLabels: xLabels,
				Y:       y,
			})
		}
		fig.Panels = append(fig.Panels, panel)
	}

	return fig, nil
}

func toCelsius(values []float64) Series {
	out := make(Series, len(values))
	for i, v := range values {
		out[i] = units.FahrenheitToCelsius(v)
	}
	return out
}
