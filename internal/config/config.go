package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/civicledger/munibudget/internal/aggregate"
)

// FileName is the config file at the data directory root.
const FileName = "munibudget.yaml"

// Config represents the top-level munibudget.yaml configuration.
type Config struct {
	Organization OrganizationConfig `yaml:"organization"`
	Fiscal       FiscalConfig       `yaml:"fiscal"`
	Rollup       RollupConfig       `yaml:"rollup"`
	LogLevel     string             `yaml:"log_level,omitempty"`
}

// OrganizationConfig identifies the municipality.
type OrganizationConfig struct {
	Name  string `yaml:"name"`
	State string `yaml:"state,omitempty"`
}

// FiscalConfig defines the current fiscal period label, e.g. "FY2026".
type FiscalConfig struct {
	YearLabel string `yaml:"year_label"`
}

// RollupConfig selects the default rollup convention. Verify which
// convention the source spreadsheets follow before trusting totals: if
// parent rows already store subtotals of their children, additive
// double-counts.
type RollupConfig struct {
	Mode string `yaml:"mode"` // "leaf-only" or "additive"
}

// Load reads a munibudget.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new data
// directory. Leaf-only is the default rollup because municipal sheets
// commonly store parent rows as subtotals.
func Default(orgName, yearLabel string) *Config {
	return &Config{
		Organization: OrganizationConfig{Name: orgName},
		Fiscal:       FiscalConfig{YearLabel: yearLabel},
		Rollup:       RollupConfig{Mode: string(aggregate.RollupLeafOnly)},
		LogLevel:     "info",
	}
}

// RollupMode parses the configured rollup mode.
func (c *Config) RollupMode() (aggregate.RollupMode, error) {
	return aggregate.ParseRollupMode(c.Rollup.Mode)
}
