package figure

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tosih/flightlog-tool/pkg/logdata"
)

const sampleLog = `#airframe_info log_version="1.0"
,Local Time,Oil Temp (deg F),CHT1 (deg F),Engine Speed (rpm),Volts (volts),GPS Fix
,Lcl Time,E1 OilT,E1 CHT1,E1 RPM,Volts1,GPSfix
,10:00:00,212,310,2400,13.8,3D
,10:00:01,213,311,2410,13.7,3D
,10:00:02,32,312,2405,13.9,3D
`

func loadSample(t *testing.T) *logdata.Log {
	t.Helper()
	path := filepath.Join(t.TempDir(), "flight.csv")
	require.NoError(t, os.WriteFile(path, []byte(sampleLog), 0644))
	log, err := logdata.Load(path)
	require.NoError(t, err)
	return log
}

func TestComposeGroupsByUnit(t *testing.T) {
	log := loadSample(t)

	fig, err := Compose(log, []string{"E1 OilT", "Volts1", "E1 CHT1", "E1 RPM"}, "Lcl Time", false)
	require.NoError(t, err)

	require.Equal(t, "Engine Data Log: flight.csv", fig.Title)
	require.Equal(t, "Local Time", fig.XLabel)

	// Units in first-encounter order; both deg F traces share a panel.
	require.Len(t, fig.Panels, 3)
	require.Equal(t, "deg F", fig.Panels[0].Unit)
	require.Equal(t, "volts", fig.Panels[1].Unit)
	require.Equal(t, "rpm", fig.Panels[2].Unit)

	require.Len(t, fig.Panels[0].Traces, 2)
	require.Equal(t, "Oil Temp (deg F)", fig.Panels[0].Traces[0].Name)
	require.Equal(t, "CHT1 (deg F)", fig.Panels[0].Traces[1].Name)
}

func TestComposeLabelAxis(t *testing.T) {
	log := loadSample(t)

	fig, err := Compose(log, []string{"E1 RPM"}, "Lcl Time", false)
	require.NoError(t, err)

	tr := fig.Panels[0].Traces[0]
	require.Empty(t, tr.X)
	require.Equal(t, []string{"10:00:00", "10:00:01", "10:00:02"}, tr.XLabels)
	require.Equal(t, Series{2400, 2410, 2405}, tr.Y)
}

func TestComposeNumericAxis(t *testing.T) {
	log := loadSample(t)

	fig, err := Compose(log, []string{"Volts1"}, "E1 RPM", false)
	require.NoError(t, err)

	tr := fig.Panels[0].Traces[0]
	require.Empty(t, tr.XLabels)
	require.Equal(t, Series{2400, 2410, 2405}, tr.X)
	require.Equal(t, "Engine Speed (rpm)", fig.XLabel)
}

func TestComposeCelsiusConversion(t *testing.T) {
	log := loadSample(t)

	fig, err := Compose(log, []string{"E1 OilT", "Volts1"}, "Lcl Time", true)
	require.NoError(t, err)

	require.Equal(t, "deg C", fig.Panels[0].Unit)
	require.InDelta(t, 100, fig.Panels[0].Traces[0].Y[0], 1e-9)
	require.InDelta(t, 0, fig.Panels[0].Traces[0].Y[2], 1e-9)

	// Non-temperature panels stay untouched.
	require.Equal(t, "volts", fig.Panels[1].Unit)
	require.InDelta(t, 13.8, fig.Panels[1].Traces[0].Y[0], 1e-9)
}

func TestComposeCelsiusAxisConversion(t *testing.T) {
	log := loadSample(t)

	fig, err := Compose(log, []string{"E1 RPM"}, "E1 OilT", true)
	require.NoError(t, err)

	require.Equal(t, "Oil Temp (deg C)", fig.XLabel)
	require.InDelta(t, 100, fig.Panels[0].Traces[0].X[0], 1e-9)
}

func TestComposeErrors(t *testing.T) {
	log := loadSample(t)

	_, err := Compose(log, nil, "Lcl Time", false)
	require.Error(t, err)

	_, err = Compose(log, []string{"bogus"}, "Lcl Time", false)
	require.Error(t, err)

	_, err = Compose(log, []string{"GPSfix"}, "Lcl Time", false)
	require.Error(t, err)

	_, err = Compose(log, []string{"E1 RPM"}, "bogus", false)
	require.Error(t, err)
}

func TestSeriesJSONNaNRoundTrip(t *testing.T) {
	in := Series{1.5, math.NaN(), 3}
	data, err := json.Marshal(in)
	require.NoError(t, err)
	require.Equal(t, "[1.5,null,3]", string(data))

	var out Series
	require.NoError(t, json.Unmarshal(data, &out))
	require.Len(t, out, 3)
	require.Equal(t, 1.5, out[0])
	require.True(t, math.IsNaN(out[1]))
	require.Equal(t, float64(3), out[2])
}
