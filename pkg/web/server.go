package web

import (
	"embed"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/pterm/pterm"
	"github.com/tosih/flightlog-tool/pkg/figure"
	"github.com/tosih/flightlog-tool/pkg/logdata"
	"github.com/tosih/flightlog-tool/pkg/models"
	"github.com/tosih/flightlog-tool/pkg/units"
)

//go:embed templates/*
var templates embed.FS

// ParamResponse describes one column of a loaded log.
type ParamResponse struct {
	Abbr    string `json:"abbr"`
	Full    string `json:"full"`
	Unit    string `json:"unit"`
	Numeric bool   `json:"numeric"`
}

type Server struct {
	logFolder string
	port      int

	mu       sync.Mutex
	logFiles []string
}

// NewServer discovers log files next to the given path. A directory is
// used as-is; a file contributes its parent directory.
func NewServer(filename string, port int) *Server {
	var logFolder string
	fileInfo, err := os.Stat(filename)
	if err == nil && fileInfo.IsDir() {
		logFolder = filename
	} else {
		logFolder = filepath.Dir(filename)
	}

	logFiles, err := findLogFiles(logFolder)
	if err != nil {
		pterm.Warning.Printf("Error scanning for log files: %v\n", err)
		logFiles = []string{}
		if fileInfo != nil && !fileInfo.IsDir() {
			logFiles = append(logFiles, filename)
		}
	}

	if len(logFiles) == 0 {
		pterm.Warning.Println("No .csv files found in directory")
	} else {
		pterm.Info.Printf("Found %d log file(s) in %s\n", len(logFiles), logFolder)
	}

	return &Server{
		logFolder: logFolder,
		logFiles:  logFiles,
		port:      port,
	}
}

func findLogFiles(dir string) ([]string, error) {
	var logFiles []string

	files, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	for _, file := range files {
		if !file.IsDir() && strings.HasSuffix(strings.ToLower(file.Name()), ".csv") {
			logFiles = append(logFiles, filepath.Join(dir, file.Name()))
		}
	}

	return logFiles, nil
}

// Start serves the viewer and blocks until the server stops.
func (s *Server) Start() error {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/api/files", s.handleFileList)
	mux.HandleFunc("/api/params", s.handleParams)
	mux.HandleFunc("/api/categories", s.handleCategories)
	mux.HandleFunc("/api/figure", s.handleFigure)
	mux.HandleFunc("/api/mode", s.handleMode)

	addr := fmt.Sprintf(":%d", s.port)
	url := fmt.Sprintf("http://localhost%s", addr)

	pterm.DefaultHeader.WithFullWidth().
		WithBackgroundStyle(pterm.NewStyle(pterm.BgCyan)).
		WithTextStyle(pterm.NewStyle(pterm.FgBlack)).
		Println("Flight Log Viewer Started")

	pterm.Info.Printf("Opening web interface at %s\n", url)
	pterm.Info.Println("Press Ctrl+C to stop the server")
	pterm.Println()

	watcher, err := s.watch()
	if err != nil {
		pterm.Warning.Printf("Folder watching disabled: %v\n", err)
	} else {
		defer watcher.Close()
	}

	OpenBrowser(url)

	server := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	return server.ListenAndServe()
}

// watch refreshes the discovered-file list when logs appear, change, or
// disappear in the folder. The caller owns the returned watcher; closing
// it stops the refresh goroutine.
func (s *Server) watch() (*fsnotify.Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := watcher.Add(s.logFolder); err != nil {
		watcher.Close()
		return nil, err
	}

	go func() {
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Op&(fsnotify.Create|fsnotify.Remove|fsnotify.Rename|fsnotify.Write) == 0 {
					continue
				}
				logFiles, err := findLogFiles(s.logFolder)
				if err != nil {
					continue
				}
				s.mu.Lock()
				s.logFiles = logFiles
				s.mu.Unlock()
			case _, ok := <-watcher.Errors:
				if !ok {
					return
				}
			}
		}
	}()

	return watcher, nil
}

func (s *Server) files() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.logFiles...)
}

// resolveFile maps the file query parameter to a discovered log, falling
// back to the first one. Only discovered paths are served.
func (s *Server) resolveFile(r *http.Request) (string, error) {
	files := s.files()
	if len(files) == 0 {
		return "", fmt.Errorf("no log files available")
	}

	requested := r.URL.Query().Get("file")
	if requested == "" {
		return files[0], nil
	}
	for _, f := range files {
		if f == requested || filepath.Base(f) == requested {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown log file %q", requested)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	content, err := templates.ReadFile("templates/index.html")
	if err != nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(content)
}

func (s *Server) handleFileList(w http.ResponseWriter, r *http.Request) {
	files := s.files()
	fileList := make([]map[string]string, len(files))
	for i, fullPath := range files {
		fileList[i] = map[string]string{
			"path": fullPath,
			"name": filepath.Base(fullPath),
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(fileList)
}

func (s *Server) handleParams(w http.ResponseWriter, r *http.Request) {
	filename, err := s.resolveFile(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	log, err := logdata.Load(filename)
	if err != nil {
		http.Error(w, fmt.Sprintf("Error loading log: %v", err), http.StatusInternalServerError)
		return
	}

	params := make([]ParamResponse, len(log.Columns))
	for i, col := range log.Columns {
		params[i] = ParamResponse{
			Abbr:    col.Abbr,
			Full:    col.Full,
			Unit:    units.Extract(col.Full),
			Numeric: col.Numeric,
		}
	}

	response := map[string]interface{}{
		"filename": log.FileName(),
		"rows":     log.Rows(),
		"params":   params,
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(models.Categories)
}

func (s *Server) handleFigure(w http.ResponseWriter, r *http.Request) {
	filename, err := s.resolveFile(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	q := r.URL.Query()
	var params []string
	for _, p := range strings.Split(q.Get("params"), ",") {
		if p = strings.TrimSpace(p); p != "" {
			params = append(params, p)
		}
	}
	if len(params) == 0 {
		http.Error(w, "params query parameter required", http.StatusBadRequest)
		return
	}

	log, err := logdata.Load(filename)
	if err != nil {
		http.Error(w, fmt.Sprintf("Error loading log: %v", err), http.StatusInternalServerError)
		return
	}

	xParam := q.Get("x")
	if xParam == "" {
		xParam = models.DefaultXParam
		if _, ok := log.Column(xParam); !ok {
			xParam = log.AllColumns()[0]
		}
	}
	celsius := q.Get("celsius") == "true"

	fig, err := figure.Compose(log, params, xParam, celsius)
	if err != nil {
		http.Error(w, fmt.Sprintf("Error composing figure: %v", err), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(fig)
}

func (s *Server) handleMode(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"mode":      "viewer",
		"logFolder": s.logFolder,
		"fileCount": len(s.files()),
	})
}
