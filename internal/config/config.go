package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/caarlos0/env/v11"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/signalnine/compactsim/internal/compaction"
	"github.com/signalnine/compactsim/internal/input"
	"github.com/signalnine/compactsim/internal/logging"
)

// DefaultPath is the config file read when --config is not given.
const DefaultPath = "compactsim.yaml"

type Config struct {
	LogLevel  string     `yaml:"log_level"`
	Locale    string     `yaml:"locale"`
	MaxCount  int        `yaml:"max_count"`
	Density   Density    `yaml:"density"`
	Defaults  Defaults   `yaml:"defaults"`
	Cylinders []Cylinder `yaml:"cylinders"`
}

// Density bounds the plausible maximum dry density, in g/cm³.
type Density struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// Defaults fill generate flags the user leaves empty.
type Defaults struct {
	Type        string `yaml:"type"`
	Count       int    `yaml:"count"`
	DensityUnit string `yaml:"density_unit"`
}

// Cylinder is a calibrated compaction mould kept in the lab.
type Cylinder struct {
	Name         string  `yaml:"name"`
	WeightGrams  float64 `yaml:"weight_grams"`
	VolumeLiters float64 `yaml:"volume_liters"`
}

type envOverrides struct {
	LogLevel string `env:"COMPACTSIM_LOG_LEVEL"`
	Locale   string `env:"COMPACTSIM_LOCALE"`
	MaxCount int    `env:"COMPACTSIM_MAX_COUNT"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	cfg := &Config{}
	if err := validate(cfg); err != nil {
		panic(fmt.Sprintf("default config is invalid: %v", err))
	}
	return cfg
}

// Load reads the YAML file at path, applies environment overrides and
// validates the result. A missing file is an error.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := applyEnv(&cfg); err != nil {
		return nil, err
	}
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return &cfg, nil
}

// LoadOrDefault behaves like Load but falls back to Default (plus
// environment overrides) when path does not exist.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if err == nil {
		return cfg, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}
	cfg = Default()
	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid environment config: %w", err)
	}
	return cfg, nil
}

// Cylinder looks up a configured cylinder by name.
func (c *Config) Cylinder(name string) (Cylinder, bool) {
	for _, cyl := range c.Cylinders {
		if cyl.Name == name {
			return cyl, true
		}
	}
	return Cylinder{}, false
}

func applyEnv(cfg *Config) error {
	var o envOverrides
	if err := env.Parse(&o); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	if o.LogLevel != "" {
		cfg.LogLevel = o.LogLevel
	}
	if o.Locale != "" {
		cfg.Locale = o.Locale
	}
	if o.MaxCount != 0 {
		cfg.MaxCount = o.MaxCount
	}
	return nil
}

func validate(cfg *Config) error {
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if !logging.ValidLevel(cfg.LogLevel) {
		return fmt.Errorf("invalid log_level %q (valid: error, warn, info, debug, trace)", cfg.LogLevel)
	}
	if cfg.Locale == "" {
		cfg.Locale = "en-US"
	}
	if _, err := language.Parse(cfg.Locale); err != nil {
		return fmt.Errorf("invalid locale %q: %w", cfg.Locale, err)
	}

	if cfg.MaxCount == 0 {
		cfg.MaxCount = compaction.DefaultMaxCount
	}
	if cfg.MaxCount < 1 {
		return fmt.Errorf("max_count must be at least 1")
	}

	if cfg.Density.Min == 0 && cfg.Density.Max == 0 {
		cfg.Density = Density{Min: 1.0, Max: 3.0}
	}
	if cfg.Density.Min < 0 || cfg.Density.Max < 0 {
		return fmt.Errorf("density bounds must be non-negative")
	}
	if cfg.Density.Max > 0 && cfg.Density.Min >= cfg.Density.Max {
		return fmt.Errorf("density.min (%v) must be below density.max (%v)", cfg.Density.Min, cfg.Density.Max)
	}

	if cfg.Defaults.Type == "" {
		cfg.Defaults.Type = compaction.Embankment1.String()
	}
	if _, err := compaction.ParseTrialType(cfg.Defaults.Type); err != nil {
		return fmt.Errorf("defaults.type: %w", err)
	}
	if cfg.Defaults.Count == 0 {
		cfg.Defaults.Count = 1
	}
	if cfg.Defaults.Count < 1 || cfg.Defaults.Count > cfg.MaxCount {
		return fmt.Errorf("defaults.count must be between 1 and %d", cfg.MaxCount)
	}
	if cfg.Defaults.DensityUnit == "" {
		cfg.Defaults.DensityUnit = string(input.GramsPerCm3)
	}
	if _, err := input.ParseDensityUnit(cfg.Defaults.DensityUnit); err != nil {
		return fmt.Errorf("defaults.density_unit: %w", err)
	}

	seen := make(map[string]bool, len(cfg.Cylinders))
	for i, c := range cfg.Cylinders {
		if c.Name == "" {
			return fmt.Errorf("cylinder %d: name is required", i)
		}
		if seen[c.Name] {
			return fmt.Errorf("cylinder %q: duplicate name", c.Name)
		}
		seen[c.Name] = true
		if c.WeightGrams <= 0 {
			return fmt.Errorf("cylinder %q: weight_grams must be positive", c.Name)
		}
		if c.VolumeLiters <= 0 {
			return fmt.Errorf("cylinder %q: volume_liters must be positive", c.Name)
		}
	}
	return nil
}
