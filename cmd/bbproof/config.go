package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// cliConfig holds CLI defaults optionally loaded from a YAML file via
// -config, overridden by any flag the user passes explicitly.
type cliConfig struct {
	MaxSteps int  `yaml:"max_steps,omitempty"`
	NoColor  bool `yaml:"no_color,omitempty"`
	JSON     bool `yaml:"json,omitempty"`
}

// loadCLIConfig reads and parses a YAML config file.
func loadCLIConfig(path string) (*cliConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	var cfg cliConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &cfg, nil
}
