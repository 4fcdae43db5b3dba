package models

// Category groups related parameters under a name shown in pickers and the
// web viewer. Parameters are abbreviated names; logs that lack some of them
// simply show a shorter list.
type Category struct {
	Name   string
	Params []string
}

// Common parameter categories for G1000/EIS-style flight logs.
var Categories = []Category{
	{
		Name:   "GPS",
		Params: []string{"Latitude", "Longitude", "AltGPS", "GndSpd", "TRK"},
	},
	{
		Name:   "Altitude",
		Params: []string{"AltP", "AltInd", "VSpd", "AGL"},
	},
	{
		Name:   "Attitude",
		Params: []string{"Pitch", "Roll", "HDG"},
	},
	{
		Name:   "Engine",
		Params: []string{"E1 RPM", "E1 MAP", "E1 %Pwr", "E1 FFlow", "E1 OilT", "E1 OilP"},
	},
	{
		Name: "Temperature",
		Params: []string{
			"E1 CHT1", "E1 CHT2", "E1 CHT3", "E1 CHT4", "E1 CHT5", "E1 CHT6",
			"E1 EGT1", "E1 EGT2", "E1 EGT3", "E1 EGT4", "E1 EGT5", "E1 EGT6",
		},
	},
	{
		Name:   "Electrical",
		Params: []string{"Volts1", "Volts2", "Amps1"},
	},
}

// CategoryParams returns the parameters of the named category, or nil when
// the category does not exist.
func CategoryParams(name string) []string {
	for _, c := range Categories {
		if c.Name == name {
			return c.Params
		}
	}
	return nil
}

// CategoryNames returns all category names in display order.
func CategoryNames() []string {
	names := make([]string, len(Categories))
	for i, c := range Categories {
		names[i] = c.Name
	}
	return names
}
