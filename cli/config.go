package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// Config holds run defaults read from an optional YAML file.
// Flags and environment variables take precedence over these values.
type Config struct {
	Hash            string   `yaml:"hash"`
	ExcludeBasename []string `yaml:"exclude-basename"`
	Capacity        int      `yaml:"capacity"`
}

// loadConfig reads the YAML file at path.
// An empty path yields an empty configuration.
func loadConfig(path string) (*Config, error) {
	cfg := new(Config)
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf(`could not read config file '%s': %s`, path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf(`could not parse config file '%s': %s`, path, err)
	}
	if cfg.Capacity < 0 {
		return nil, fmt.Errorf(`config file '%s': capacity must not be negative`, path)
	}
	return cfg, nil
}
