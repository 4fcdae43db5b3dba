package models

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds viewer preferences. Flags override whatever the config file
// sets; the file itself is optional.
type Config struct {
	Celsius bool   `yaml:"celsius"`
	XParam  string `yaml:"x_param"`
	Port    int    `yaml:"port"`
	Theme   string `yaml:"theme"`
}

// DefaultXParam is the axis used when a log contains it and the user picked
// nothing else.
const DefaultXParam = "Lcl Time"

// DefaultConfig returns the built-in viewer preferences.
func DefaultConfig() Config {
	return Config{
		XParam: DefaultXParam,
		Port:   8080,
		Theme:  "dark",
	}
}

// LoadConfig overlays a YAML config file on the defaults. An empty path
// returns the defaults unchanged.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	if cfg.Port <= 0 {
		cfg.Port = DefaultConfig().Port
	}
	if cfg.XParam == "" {
		cfg.XParam = DefaultXParam
	}
	return cfg, nil
}
