package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Log struct {
		Path        string `yaml:"path"`        // empty disables logging
		Development bool   `yaml:"development"` // readable encoder instead of production JSON
	} `yaml:"log"`

	Output struct {
		Color string `yaml:"color"` // "auto", "always", "never"
		Diff  bool   `yaml:"diff"`  // include unified diff in results
	} `yaml:"output"`

	Engine struct {
		MaxChunks int `yaml:"max_chunks"` // reject requests with more chunks (0 = unlimited)
	} `yaml:"engine"`
}

// Default returns the configuration used when no config file is present.
// The tool must run with zero setup.
func Default() *Config {
	cfg := &Config{}
	cfg.Output.Color = "auto"
	cfg.Output.Diff = true
	cfg.Engine.MaxChunks = 256
	return cfg
}

// Load reads a YAML config file. A missing file is not an error; defaults
// apply and flags can override the rest.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks field values after load or flag overrides.
func (c *Config) Validate() error {
	switch c.Output.Color {
	case "auto", "always", "never":
	default:
		return fmt.Errorf("output.color must be auto, always, or never (got %q)", c.Output.Color)
	}
	if c.Engine.MaxChunks < 0 {
		return fmt.Errorf("engine.max_chunks must be >= 0 (got %d)", c.Engine.MaxChunks)
	}
	return nil
}
