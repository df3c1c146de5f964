// Package config holds the renderer settings that can live in a YAML file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/fernandezpablo85/indec-income/src/charts"
	"github.com/fernandezpablo85/indec-income/src/dataset"
)

// Config is the full renderer configuration. Command-line flags override it.
type Config struct {
	Data     string   `yaml:"data"`
	Out      string   `yaml:"out"`
	Format   string   `yaml:"format"`
	Backend  string   `yaml:"backend"`
	Figures  []string `yaml:"figures,omitempty"`
	Width    int      `yaml:"width"`
	Height   int      `yaml:"height"`
	Note     string   `yaml:"note,omitempty"`
	LogLevel string   `yaml:"log_level"`

	References ReferencesConfig `yaml:"references"`
	Columns    ColumnsConfig    `yaml:"columns"`
}

// ReferencesConfig mirrors charts.References.
type ReferencesConfig struct {
	MinimumWage float64 `yaml:"minimum_wage"`
	Inflation   float64 `yaml:"inflation"`
}

// ColumnsConfig mirrors dataset.Columns.
type ColumnsConfig struct {
	Quarter string `yaml:"quarter"`
	Decile  string `yaml:"decile"`
	Income  string `yaml:"income"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Data:     "./data/eph_2016.csv",
		Out:      "./figures",
		Format:   string(charts.DefaultOptions.Format),
		Backend:  "auto",
		Width:    charts.DefaultOptions.Width,
		Height:   charts.DefaultOptions.Height,
		LogLevel: "info",
		References: ReferencesConfig{
			MinimumWage: charts.DefaultReferences.MinimumWage,
			Inflation:   charts.DefaultReferences.Inflation,
		},
		Columns: ColumnsConfig{
			Quarter: dataset.DefaultColumns.Quarter,
			Decile:  dataset.DefaultColumns.Decile,
			Income:  dataset.DefaultColumns.Income,
		},
	}
}

// Load reads path over the defaults. An empty path or a missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg, _, err := LoadFile(path)
	return cfg, err
}

// LoadFile is Load that also reports whether path was found and read.
func LoadFile(path string) (*Config, bool, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, false, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, false, nil
		}
		return nil, false, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, false, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, true, nil
}

// Save writes the configuration as YAML, creating the parent directory.
func (c *Config) Save(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// Validate checks the values that cannot be defaulted later on.
func (c *Config) Validate() error {
	if _, err := charts.ParseFormat(c.Format); err != nil {
		return err
	}
	if _, err := charts.ParseBackend(c.Backend); err != nil {
		return err
	}
	if c.Width < 0 || c.Height < 0 {
		return fmt.Errorf("invalid size %dx%d", c.Width, c.Height)
	}
	return nil
}

// ChartReferences returns the reference values for charts.Catalog.
func (c *Config) ChartReferences() charts.References {
	return charts.References{MinimumWage: c.References.MinimumWage, Inflation: c.References.Inflation}
}

// DatasetColumns returns the column names for dataset.Load.
func (c *Config) DatasetColumns() dataset.Columns {
	return dataset.Columns{Quarter: c.Columns.Quarter, Decile: c.Columns.Decile, Income: c.Columns.Income}
}

// RenderOptions returns the size part of charts.Options; format and backend are parsed by the caller.
func (c *Config) RenderOptions() charts.Options {
	return charts.Options{Width: c.Width, Height: c.Height}
}
