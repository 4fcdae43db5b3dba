package web

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/tosih/flightlog-tool/pkg/figure"
)

// figureMarker is replaced with the figure JSON in templates/view.html.
const figureMarker = "__FIGURE_JSON__"

// WriteHTML writes a standalone chart page embedding the figure description,
// suitable for handing to any browser.
func WriteHTML(fig *figure.Figure, path string) error {
	tmpl, err := templates.ReadFile("templates/view.html")
	if err != nil {
		return fmt.Errorf("read template: %w", err)
	}

	data, err := json.Marshal(fig)
	if err != nil {
		return fmt.Errorf("encode figure: %w", err)
	}

	page := strings.Replace(string(tmpl), figureMarker, string(data), 1)
	if err := os.WriteFile(path, []byte(page), 0644); err != nil {
		return fmt.Errorf("write chart page: %w", err)
	}
	return nil
}
