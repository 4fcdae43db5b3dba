package picker

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/tosih/flightlog-tool/pkg/logdata"
	"github.com/tosih/flightlog-tool/pkg/models"
)

// PickParameters prompts for the parameters to plot, showing full display
// names and returning abbreviated names.
func PickParameters(log *logdata.Log) ([]string, error) {
	options := []string{}
	for _, abbr := range log.NumericColumns() {
		options = append(options, log.AbbrToFull[abbr])
	}
	if len(options) == 0 {
		return nil, fmt.Errorf("log has no numeric parameters")
	}

	selected, err := pterm.DefaultInteractiveMultiselect.
		WithOptions(options).
		WithMaxHeight(15).
		Show("Select parameters to plot")
	if err != nil {
		return nil, err
	}
	if len(selected) == 0 {
		return nil, fmt.Errorf("no parameters selected")
	}

	params := make([]string, len(selected))
	for i, display := range selected {
		params[i] = log.FullToAbbr[display]
	}
	return params, nil
}

// PickAxis prompts for the X-axis parameter. Non-numeric columns are
// offered too since timestamps make a valid label axis. The default is
// preselected when the log contains it.
func PickAxis(log *logdata.Log, def string) (string, error) {
	options := []string{}
	defDisplay := ""
	for _, dn := range log.DisplayNames() {
		options = append(options, dn.Display)
		if dn.Abbr == def {
			defDisplay = dn.Display
		}
	}
	if len(options) == 0 {
		return "", fmt.Errorf("log has no parameters")
	}

	sel := pterm.DefaultInteractiveSelect.
		WithOptions(options).
		WithMaxHeight(15)
	if defDisplay != "" {
		sel = sel.WithDefaultOption(defDisplay)
	}

	display, err := sel.Show("Select X-axis parameter")
	if err != nil {
		return "", err
	}
	return log.FullToAbbr[display], nil
}

// PickCategory prompts for one of the predefined parameter categories and
// returns its parameters that exist in the log.
func PickCategory(log *logdata.Log) ([]string, error) {
	name, err := pterm.DefaultInteractiveSelect.
		WithOptions(models.CategoryNames()).
		Show("Select a parameter category")
	if err != nil {
		return nil, err
	}

	var params []string
	for _, abbr := range models.CategoryParams(name) {
		if log.IsNumeric(abbr) {
			params = append(params, abbr)
		}
	}
	if len(params) == 0 {
		return nil, fmt.Errorf("log has no numeric parameters in category %s", name)
	}
	return params, nil
}

// ConfirmCelsius asks whether Fahrenheit values should be shown in Celsius.
func ConfirmCelsius() bool {
	result, _ := pterm.DefaultInteractiveConfirm.
		Show("Convert temperatures to Celsius?")
	return result
}
