// Package hostconfig loads the YAML configuration a host process starts
// from: log level, heap budget, and the set of source files to load
// (spec.md §2.8's host façade, generalized to file-based config).
package hostconfig

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the on-disk shape of an ivm host configuration file.
type Config struct {
	LogLevel string   `yaml:"log_level"`
	HeapSize int      `yaml:"heap_size"`
	Files    []string `yaml:"files"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{LogLevel: "info", HeapSize: 0}
}

// Load reads and validates the YAML configuration at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("hostconfig: read %s: %w", path, err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("hostconfig: parse %s: %w", path, err)
	}
	if cfg.HeapSize < 0 {
		return nil, fmt.Errorf("hostconfig: %s: heap_size must be >= 0", path)
	}
	return cfg, nil
}
