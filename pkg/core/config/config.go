// ============================================================================
// puntofijo - Iteración de punto fijo
// ============================================================================
//
// Package:     config
// Description: Application configuration loaded from TOML or YAML
// Author:      Mike Stoffels
// Created:     2026-10-19
// License:     MIT
// ============================================================================

package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	mdwerror "github.com/msto63/puntofijo/foundation/core/error"
)

// EnvConfigPath names the environment variable holding the config path
const EnvConfigPath = "PUNTOFIJO_CONFIG"

// Config holds the complete application configuration
type Config struct {
	General  GeneralConfig  `toml:"general" yaml:"general"`
	Defaults DefaultsConfig `toml:"defaults" yaml:"defaults"`
	Display  DisplayConfig  `toml:"display" yaml:"display"`
	Plot     PlotConfig     `toml:"plot" yaml:"plot"`
	Batch    BatchConfig    `toml:"batch" yaml:"batch"`
}

// GeneralConfig holds general application settings
type GeneralConfig struct {
	Name      string `toml:"name" yaml:"name"`
	LogLevel  string `toml:"log_level" yaml:"log_level"`
	LogFormat string `toml:"log_format" yaml:"log_format"`
}

// DefaultsConfig holds the iteration parameters used when a flag or a
// problem does not set them
type DefaultsConfig struct {
	Tolerance          float64 `toml:"tolerance" yaml:"tolerance"`
	MaxIterations      int     `toml:"max_iterations" yaml:"max_iterations"`
	StopCriterion      string  `toml:"stop_criterion" yaml:"stop_criterion"`
	ErrorType          string  `toml:"error_type" yaml:"error_type"`
	SignificantFigures int     `toml:"significant_figures" yaml:"significant_figures"`
	AngleUnit          string  `toml:"angle_unit" yaml:"angle_unit"`
	UseAcceleration    bool    `toml:"use_acceleration" yaml:"use_acceleration"`
}

// DisplayConfig holds number formatting settings
type DisplayConfig struct {
	PrecisionMode      string `toml:"precision_mode" yaml:"precision_mode"`
	Decimals           int    `toml:"decimals" yaml:"decimals"`
	SignificantFigures int    `toml:"significant_figures" yaml:"significant_figures"`
}

// PlotConfig holds cobweb diagram settings
type PlotConfig struct {
	WidthCM   float64 `toml:"width_cm" yaml:"width_cm"`
	HeightCM  float64 `toml:"height_cm" yaml:"height_cm"`
	Format    string  `toml:"format" yaml:"format"`
	Samples   int     `toml:"samples" yaml:"samples"`
	OutputDir string  `toml:"output_dir" yaml:"output_dir"`
}

// BatchConfig holds problem set settings
type BatchConfig struct {
	Timeout Duration `toml:"timeout" yaml:"timeout"`
}

// Duration wraps time.Duration for TOML and YAML parsing
type Duration struct {
	time.Duration
}

// UnmarshalText parses a duration string
func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// MarshalText formats the duration as a string
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the built-in configuration
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load loads configuration from a file. The extension selects the
// decoder: .yaml and .yml use YAML, everything else TOML.
func Load(path string) (*Config, error) {
	// Expand environment variables in path
	path = os.ExpandEnv(path)

	data, err := os.ReadFile(path)
	if err != nil {
		code := mdwerror.CodeConfigError
		if os.IsNotExist(err) {
			code = mdwerror.CodeNotFound
		}
		return nil, mdwerror.Wrap(err, "config file not readable").
			WithCode(code).
			WithOperation("config.Load").
			WithDetail("path", path)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	default:
		_, err = toml.Decode(string(data), &cfg)
	}
	if err != nil {
		return nil, mdwerror.Wrap(err, "failed to parse config").
			WithCode(mdwerror.CodeInvalidConfig).
			WithOperation("config.Load").
			WithDetail("path", path)
	}

	// Apply defaults
	cfg.applyDefaults()

	cfg.expandEnvVars()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// DefaultPaths lists the locations searched by LoadFromEnv
func DefaultPaths() []string {
	paths := []string{
		"./puntofijo.toml",
		"./puntofijo.yaml",
		"./configs/puntofijo.toml",
	}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths,
			filepath.Join(home, ".config", "puntofijo", "config.toml"),
			filepath.Join(home, ".config", "puntofijo", "config.yaml"),
		)
	}
	return paths
}

// LoadFromEnv loads configuration from the PUNTOFIJO_CONFIG environment
// variable or the first existing default path. Without any file the
// built-in defaults are returned.
func LoadFromEnv() (*Config, error) {
	if path := os.Getenv(EnvConfigPath); path != "" {
		return Load(path)
	}

	for _, p := range DefaultPaths() {
		if _, err := os.Stat(p); err == nil {
			return Load(p)
		}
	}

	return Default(), nil
}

// Validate checks ranges and enumerations
func (c *Config) Validate() error {
	switch {
	case !(c.Defaults.Tolerance > 0):
		return invalid("defaults.tolerance", "must be positive")
	case c.Defaults.MaxIterations < 1:
		return invalid("defaults.max_iterations", "must be at least 1")
	case !oneOf(c.Defaults.StopCriterion, "delta", "residual"):
		return invalid("defaults.stop_criterion", "must be delta or residual")
	case !oneOf(c.Defaults.ErrorType, "absolute", "relative"):
		return invalid("defaults.error_type", "must be absolute or relative")
	case c.Defaults.SignificantFigures < 1:
		return invalid("defaults.significant_figures", "must be at least 1")
	case !oneOf(c.Defaults.AngleUnit, "radians", "degrees"):
		return invalid("defaults.angle_unit", "must be radians or degrees")
	case !oneOf(c.Display.PrecisionMode, "decimals", "significant"):
		return invalid("display.precision_mode", "must be decimals or significant")
	case c.Display.Decimals < 0 || c.Display.Decimals > 20:
		return invalid("display.decimals", "must be between 0 and 20")
	case c.Display.SignificantFigures < 1 || c.Display.SignificantFigures > 17:
		return invalid("display.significant_figures", "must be between 1 and 17")
	case c.Plot.WidthCM <= 0 || c.Plot.HeightCM <= 0:
		return invalid("plot", "width_cm and height_cm must be positive")
	case c.Plot.Samples < 2:
		return invalid("plot.samples", "must be at least 2")
	case c.Batch.Timeout.Duration < 0:
		return invalid("batch.timeout", "must not be negative")
	}
	return nil
}

func invalid(field, message string) error {
	return mdwerror.Newf("invalid configuration: %s %s", field, message).
		WithCode(mdwerror.CodeInvalidConfig).
		WithOperation("config.Validate").
		WithDetail("field", field)
}

func oneOf(v string, allowed ...string) bool {
	for _, a := range allowed {
		if v == a {
			return true
		}
	}
	return false
}

// applyDefaults sets default values for missing configuration
func (c *Config) applyDefaults() {
	// General
	if c.General.Name == "" {
		c.General.Name = "puntofijo"
	}
	if c.General.LogLevel == "" {
		c.General.LogLevel = "warn"
	}
	if c.General.LogFormat == "" {
		c.General.LogFormat = "text"
	}

	// Defaults
	if c.Defaults.Tolerance == 0 {
		c.Defaults.Tolerance = 1e-6
	}
	if c.Defaults.MaxIterations == 0 {
		c.Defaults.MaxIterations = 100
	}
	if c.Defaults.StopCriterion == "" {
		c.Defaults.StopCriterion = "delta"
	}
	if c.Defaults.ErrorType == "" {
		c.Defaults.ErrorType = "absolute"
	}
	if c.Defaults.SignificantFigures == 0 {
		c.Defaults.SignificantFigures = 6
	}
	if c.Defaults.AngleUnit == "" {
		c.Defaults.AngleUnit = "radians"
	}

	// Display
	if c.Display.PrecisionMode == "" {
		c.Display.PrecisionMode = "decimals"
	}
	if c.Display.Decimals == 0 {
		c.Display.Decimals = 6
	}
	if c.Display.SignificantFigures == 0 {
		c.Display.SignificantFigures = 6
	}

	// Plot
	if c.Plot.WidthCM == 0 {
		c.Plot.WidthCM = 16
	}
	if c.Plot.HeightCM == 0 {
		c.Plot.HeightCM = 16
	}
	if c.Plot.Format == "" {
		c.Plot.Format = "png"
	}
	if c.Plot.Samples == 0 {
		c.Plot.Samples = 200
	}

	// Batch
	if c.Batch.Timeout.Duration == 0 {
		c.Batch.Timeout.Duration = 30 * time.Second
	}
}

// expandEnvVars expands environment variables in path values
func (c *Config) expandEnvVars() {
	c.Plot.OutputDir = os.ExpandEnv(c.Plot.OutputDir)
}
