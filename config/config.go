// Package config loads tool configuration from YAML with sensible
// defaults and environment overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds all tool settings.
type Config struct {
	Export struct {
		Dir       string `yaml:"dir"`
		Prefix    string `yaml:"prefix"`
		SheetName string `yaml:"sheet_name"`
		Format    string `yaml:"format"` // csv, xlsx, or both
	} `yaml:"export"`

	Batch struct {
		DeckExtension string `yaml:"deck_extension"`
	} `yaml:"batch"`

	Verbose bool `yaml:"verbose"`
}

// Load reads configuration from the given path. If path is empty,
// default locations are probed; if none exist, defaults are returned.
func Load(path string) (*Config, error) {
	if path == "" {
		locations := []string{
			"slidekpi.yaml",
			"slidekpi.yml",
			filepath.Join(os.Getenv("HOME"), ".config/slidekpi/config.yaml"),
		}
		for _, loc := range locations {
			if _, err := os.Stat(loc); err == nil {
				path = loc
				break
			}
		}
	}

	config := &Config{}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	mergeWithEnv(config)
	applyDefaults(config)

	if err := validate(config); err != nil {
		return nil, err
	}
	return config, nil
}

// mergeWithEnv overrides file values with environment variables.
func mergeWithEnv(c *Config) {
	if dir := os.Getenv("SLIDEKPI_EXPORT_DIR"); dir != "" {
		c.Export.Dir = dir
	}
	if prefix := os.Getenv("SLIDEKPI_EXPORT_PREFIX"); prefix != "" {
		c.Export.Prefix = prefix
	}
}

// applyDefaults fills unset values.
func applyDefaults(c *Config) {
	if c.Export.Dir == "" {
		c.Export.Dir = "."
	}
	if c.Export.Prefix == "" {
		c.Export.Prefix = "managers_kpi"
	}
	if c.Export.SheetName == "" {
		c.Export.SheetName = "KPIs"
	}
	if c.Export.Format == "" {
		c.Export.Format = "both"
	}
	if c.Batch.DeckExtension == "" {
		c.Batch.DeckExtension = ".pptx"
	}
}

func validate(c *Config) error {
	switch c.Export.Format {
	case "csv", "xlsx", "both":
		return nil
	default:
		return fmt.Errorf("invalid export format %q: must be csv, xlsx, or both", c.Export.Format)
	}
}
