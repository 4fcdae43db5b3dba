package web

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/tosih/flightlog-tool/pkg/figure"
)

const sampleLog = `#airframe_info log_version="1.0"
,Local Time,Oil Temp (deg F),Engine Speed (rpm)
,Lcl Time,E1 OilT,E1 RPM
,10:00:00,212,2400
,10:00:01,213,2410
`

func newTestServer(t *testing.T) *Server {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "flight.csv"), []byte(sampleLog), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0644))
	return NewServer(dir, 0)
}

func TestWatchRefreshesFileList(t *testing.T) {
	s := newTestServer(t)
	watcher, err := s.watch()
	require.NoError(t, err)
	defer watcher.Close()

	second := filepath.Join(s.logFolder, "second.csv")
	require.NoError(t, os.WriteFile(second, []byte(sampleLog), 0644))
	require.Eventually(t, func() bool {
		return len(s.files()) == 2
	}, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, os.Remove(second))
	require.Eventually(t, func() bool {
		return len(s.files()) == 1
	}, 2*time.Second, 10*time.Millisecond)
}

func TestNewServerDiscoversLogs(t *testing.T) {
	s := newTestServer(t)
	files := s.files()
	require.Len(t, files, 1)
	require.Equal(t, "flight.csv", filepath.Base(files[0]))
}

func TestHandleFileList(t *testing.T) {
	s := newTestServer(t)

	rec := httptest.NewRecorder()
	s.handleFileList(rec, httptest.NewRequest(http.MethodGet, "/api/files", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var files []map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &files))
	require.Len(t, files, 1)
	require.Equal(t, "flight.csv", files[0]["name"])
}

func TestHandleParams(t *testing.T) {
	s := newTestServer(t)

	rec := httptest.NewRecorder()
	s.handleParams(rec, httptest.NewRequest(http.MethodGet, "/api/params?file=flight.csv", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Filename string          `json:"filename"`
		Rows     int             `json:"rows"`
		Params   []ParamResponse `json:"params"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "flight.csv", resp.Filename)
	require.Equal(t, 2, resp.Rows)
	require.Len(t, resp.Params, 3)
	require.Equal(t, ParamResponse{Abbr: "E1 OilT", Full: "Oil Temp (deg F)", Unit: "deg F", Numeric: true}, resp.Params[1])
	require.False(t, resp.Params[0].Numeric)
}

func TestHandleParamsUnknownFile(t *testing.T) {
	s := newTestServer(t)

	rec := httptest.NewRecorder()
	s.handleParams(rec, httptest.NewRequest(http.MethodGet, "/api/params?file=../etc/passwd", nil))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleFigure(t *testing.T) {
	s := newTestServer(t)

	rec := httptest.NewRecorder()
	s.handleFigure(rec, httptest.NewRequest(http.MethodGet,
		"/api/figure?file=flight.csv&params=E1+OilT,E1+RPM&x=Lcl+Time&celsius=true", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var fig figure.Figure
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &fig))
	require.Len(t, fig.Panels, 2)
	require.Equal(t, "deg C", fig.Panels[0].Unit)
	require.InDelta(t, 100, fig.Panels[0].Traces[0].Y[0], 1e-9)
	require.Equal(t, []string{"10:00:00", "10:00:01"}, fig.Panels[0].Traces[0].XLabels)
}

func TestHandleFigureDefaultAxis(t *testing.T) {
	s := newTestServer(t)

	rec := httptest.NewRecorder()
	s.handleFigure(rec, httptest.NewRequest(http.MethodGet, "/api/figure?params=E1+RPM", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var fig figure.Figure
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &fig))
	require.Equal(t, "Local Time", fig.XLabel)
}

func TestHandleFigureErrors(t *testing.T) {
	s := newTestServer(t)

	rec := httptest.NewRecorder()
	s.handleFigure(rec, httptest.NewRequest(http.MethodGet, "/api/figure?file=flight.csv", nil))
	require.Equal(t, http.StatusBadRequest, rec.Code, "missing params")

	rec = httptest.NewRecorder()
	s.handleFigure(rec, httptest.NewRequest(http.MethodGet, "/api/figure?file=flight.csv&params=bogus", nil))
	require.Equal(t, http.StatusBadRequest, rec.Code, "unknown parameter")
}

func TestHandleIndex(t *testing.T) {
	s := newTestServer(t)

	rec := httptest.NewRecorder()
	s.handleIndex(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "Flight Log Viewer")

	rec = httptest.NewRecorder()
	s.handleIndex(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleMode(t *testing.T) {
	s := newTestServer(t)

	rec := httptest.NewRecorder()
	s.handleMode(rec, httptest.NewRequest(http.MethodGet, "/api/mode", nil))

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "viewer", resp["mode"])
	require.Equal(t, float64(1), resp["fileCount"])
}

func TestWriteHTML(t *testing.T) {
	fig := &figure.Figure{
		Title:  "Engine Data Log: flight.csv",
		XLabel: "Local Time",
		Panels: []figure.Panel{
			{Unit: "deg F", Traces: []figure.Trace{
				{Name: "Oil Temp (deg F)", XLabels: []string{"10:00:00"}, Y: figure.Series{212}},
			}},
		},
	}

	out := filepath.Join(t.TempDir(), "chart.html")
	require.NoError(t, WriteHTML(fig, out))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	content := string(data)
	require.NotContains(t, content, figureMarker)
	require.Contains(t, content, `"Engine Data Log: flight.csv"`)
	require.True(t, strings.Contains(content, "Plotly.newPlot"))
}
