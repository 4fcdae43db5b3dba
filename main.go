package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/pterm/pterm"
	"github.com/tosih/flightlog-tool/pkg/compare"
	"github.com/tosih/flightlog-tool/pkg/export"
	"github.com/tosih/flightlog-tool/pkg/figure"
	"github.com/tosih/flightlog-tool/pkg/logdata"
	"github.com/tosih/flightlog-tool/pkg/models"
	"github.com/tosih/flightlog-tool/pkg/picker"
	"github.com/tosih/flightlog-tool/pkg/renderer"
	"github.com/tosih/flightlog-tool/pkg/web"
)

func main() {
	filename := flag.String("file", "", "Flight log CSV file (or a directory in web mode)")
	paramList := flag.String("params", "", "Comma-separated abbreviated parameter names")
	category := flag.String("category", "", "Plot a predefined category (GPS, Altitude, Attitude, Engine, Temperature, Electrical)")
	xParam := flag.String("x", "", "X-axis parameter (default: Lcl Time when present)")
	celsius := flag.Bool("celsius", false, "Show deg F values as deg C")
	list := flag.Bool("list", false, "List the log's parameters and exit")
	interactive := flag.Bool("interactive", false, "Pick parameters and axis interactively")
	pngDir := flag.String("png", "", "Render chart panels as PNG files into this directory")
	htmlOut := flag.String("html", "", "Write a standalone HTML chart and open it in the browser")
	webMode := flag.Bool("web", false, "Start the browser viewer")
	port := flag.Int("port", 0, "Web viewer port")
	exportPath := flag.String("export", "", "Export the axis and selected parameters to a CSV file")
	figureJSON := flag.String("figure-json", "", "Write the composed figure description as JSON")
	compareFile := flag.String("compare", "", "Second log file to compare against")
	configPath := flag.String("config", "", "YAML config file with viewer preferences")
	flag.Parse()

	if *filename == "" {
		fmt.Println("Usage: flightlog-tool -file <log.csv> [-params a,b|-category name|-interactive] [-x axis] [-celsius] [-list|-web|-png dir|-html out|-export out|-compare log2.csv]")
		os.Exit(1)
	}

	cfg, err := models.LoadConfig(*configPath)
	if err != nil {
		pterm.Error.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	set := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })
	if !set["celsius"] {
		*celsius = cfg.Celsius
	}
	if !set["x"] {
		*xParam = cfg.XParam
	}
	if !set["port"] {
		*port = cfg.Port
	}

	if *webMode {
		server := web.NewServer(*filename, *port)
		if err := server.Start(); err != nil {
			pterm.Error.Printf("Web viewer failed: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if *compareFile != "" {
		if err := compare.CompareFiles(*filename, *compareFile, splitParams(*paramList)); err != nil {
			pterm.Error.Printf("Comparison failed: %v\n", err)
			os.Exit(1)
		}
		return
	}

	log, err := logdata.Load(*filename)
	if err != nil {
		pterm.Error.Printf("Data load failed: %v\n", err)
		os.Exit(1)
	}

	if *list {
		renderer.ListParameters(log)
		return
	}

	params, err := resolveParams(log, *paramList, *category, *interactive)
	if err != nil {
		pterm.Error.Printf("Parameter selection failed: %v\n", err)
		os.Exit(1)
	}
	if len(params) == 0 {
		renderer.ListParameters(log)
		pterm.Info.Println("Pass -params, -category or -interactive to plot parameters.")
		return
	}

	axis, err := resolveAxis(log, *xParam, *interactive)
	if err != nil {
		pterm.Error.Printf("Axis selection failed: %v\n", err)
		os.Exit(1)
	}
	if *interactive && !set["celsius"] {
		*celsius = picker.ConfirmCelsius()
	}

	fig, err := figure.Compose(log, params, axis, *celsius)
	if err != nil {
		pterm.Error.Printf("Plot composition failed: %v\n", err)
		os.Exit(1)
	}

	renderer.Summary(fig)

	if *pngDir != "" {
		spinner, _ := pterm.DefaultSpinner.Start("Rendering PNG panels...")
		written, err := renderer.RenderPNGs(fig, *pngDir, 1200)
		if err != nil {
			spinner.Fail(fmt.Sprintf("PNG rendering failed: %v", err))
			os.Exit(1)
		}
		spinner.Success(fmt.Sprintf("Wrote %d panel(s) to %s", len(written), *pngDir))
	}

	if *htmlOut != "" {
		if err := web.WriteHTML(fig, *htmlOut); err != nil {
			pterm.Error.Printf("HTML chart failed: %v\n", err)
			os.Exit(1)
		}
		pterm.Success.Printf("Chart written to %s\n", *htmlOut)
		web.OpenBrowser(*htmlOut)
	}

	if *exportPath != "" {
		if err := export.ExportCSV(log, axis, params, *exportPath); err != nil {
			pterm.Error.Printf("Export failed: %v\n", err)
			os.Exit(1)
		}
		pterm.Success.Printf("Parameters exported to %s\n", *exportPath)
	}

	if *figureJSON != "" {
		if err := export.ExportFigureJSON(fig, *figureJSON); err != nil {
			pterm.Error.Printf("Figure export failed: %v\n", err)
			os.Exit(1)
		}
		pterm.Success.Printf("Figure description written to %s\n", *figureJSON)
	}
}

func splitParams(list string) []string {
	var params []string
	for _, p := range strings.Split(list, ",") {
		if p = strings.TrimSpace(p); p != "" {
			params = append(params, p)
		}
	}
	return params
}

// resolveParams turns the selection flags into abbreviated parameter names.
// Explicit -params wins, then -category, then the interactive picker.
func resolveParams(log *logdata.Log, paramList, category string, interactive bool) ([]string, error) {
	if params := splitParams(paramList); len(params) > 0 {
		return params, nil
	}

	if category != "" {
		all := models.CategoryParams(category)
		if all == nil {
			return nil, fmt.Errorf("unknown category %q (available: %s)",
				category, strings.Join(models.CategoryNames(), ", "))
		}
		var params []string
		for _, abbr := range all {
			if log.IsNumeric(abbr) {
				params = append(params, abbr)
			}
		}
		if len(params) == 0 {
			return nil, fmt.Errorf("log has no numeric parameters in category %s", category)
		}
		return params, nil
	}

	if interactive {
		return picker.PickParameters(log)
	}

	return nil, nil
}

func resolveAxis(log *logdata.Log, xParam string, interactive bool) (string, error) {
	if interactive {
		return picker.PickAxis(log, xParam)
	}

	if _, ok := log.Column(xParam); ok {
		return xParam, nil
	}
	if xParam != models.DefaultXParam {
		return "", fmt.Errorf("unknown axis parameter %q", xParam)
	}

	// The default axis is missing from this log; fall back to the first column.
	fallback := log.AllColumns()[0]
	pterm.Warning.Printf("Axis %q not in log, using %q\n", xParam, fallback)
	return fallback, nil
}
