package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	mdwerror "github.com/msto63/puntofijo/foundation/core/error"
)

func TestDuration_UnmarshalText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected time.Duration
		wantErr  bool
	}{
		{"seconds", "30s", 30 * time.Second, false},
		{"minutes", "5m", 5 * time.Minute, false},
		{"complex", "1h30m", 90 * time.Minute, false},
		{"milliseconds", "100ms", 100 * time.Millisecond, false},
		{"invalid", "invalid", 0, true},
		{"empty", "", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Duration
			err := d.UnmarshalText([]byte(tt.input))

			if (err != nil) != tt.wantErr {
				t.Errorf("UnmarshalText() error = %v, wantErr %v", err, tt.wantErr)
				return
			}

			if !tt.wantErr && d.Duration != tt.expected {
				t.Errorf("UnmarshalText() = %v, want %v", d.Duration, tt.expected)
			}
		})
	}
}

func TestDuration_MarshalText(t *testing.T) {
	d := Duration{5 * time.Minute}
	result, err := d.MarshalText()
	if err != nil {
		t.Fatalf("MarshalText() error = %v", err)
	}
	if string(result) != "5m0s" {
		t.Errorf("MarshalText() = %v, want 5m0s", string(result))
	}
}

func TestConfig_applyDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.applyDefaults()

	if cfg.General.Name != "puntofijo" {
		t.Errorf("General.Name = %v, want puntofijo", cfg.General.Name)
	}
	if cfg.General.LogLevel != "warn" {
		t.Errorf("General.LogLevel = %v, want warn", cfg.General.LogLevel)
	}
	if cfg.Defaults.Tolerance != 1e-6 {
		t.Errorf("Defaults.Tolerance = %v, want 1e-6", cfg.Defaults.Tolerance)
	}
	if cfg.Defaults.MaxIterations != 100 {
		t.Errorf("Defaults.MaxIterations = %v, want 100", cfg.Defaults.MaxIterations)
	}
	if cfg.Defaults.StopCriterion != "delta" || cfg.Defaults.ErrorType != "absolute" {
		t.Errorf("Defaults criterion = %v/%v, want delta/absolute", cfg.Defaults.StopCriterion, cfg.Defaults.ErrorType)
	}
	if cfg.Defaults.AngleUnit != "radians" {
		t.Errorf("Defaults.AngleUnit = %v, want radians", cfg.Defaults.AngleUnit)
	}
	if cfg.Display.PrecisionMode != "decimals" || cfg.Display.Decimals != 6 {
		t.Errorf("Display = %+v", cfg.Display)
	}
	if cfg.Plot.Samples != 200 || cfg.Plot.Format != "png" {
		t.Errorf("Plot = %+v", cfg.Plot)
	}
	if cfg.Batch.Timeout.Duration != 30*time.Second {
		t.Errorf("Batch.Timeout = %v, want 30s", cfg.Batch.Timeout.Duration)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults must validate: %v", err)
	}
}

func TestLoad_FileNotFound(t *testing.T) {
	_, err := Load("/nonexistent/path/config.toml")
	if !mdwerror.HasCode(err, mdwerror.CodeNotFound) {
		t.Errorf("Load() error = %v, want NOT_FOUND", err)
	}
}

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}
	return path
}

func TestLoad_TOML(t *testing.T) {
	path := writeConfig(t, "config.toml", `
[general]
log_level = "debug"

[defaults]
tolerance = 1e-8
angle_unit = "degrees"
use_acceleration = true

[display]
precision_mode = "significant"

[batch]
timeout = "5s"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.General.LogLevel != "debug" {
		t.Errorf("General.LogLevel = %v, want debug", cfg.General.LogLevel)
	}
	if cfg.Defaults.Tolerance != 1e-8 {
		t.Errorf("Defaults.Tolerance = %v, want 1e-8", cfg.Defaults.Tolerance)
	}
	if cfg.Defaults.AngleUnit != "degrees" || !cfg.Defaults.UseAcceleration {
		t.Errorf("Defaults = %+v", cfg.Defaults)
	}
	if cfg.Display.PrecisionMode != "significant" {
		t.Errorf("Display.PrecisionMode = %v", cfg.Display.PrecisionMode)
	}
	if cfg.Batch.Timeout.Duration != 5*time.Second {
		t.Errorf("Batch.Timeout = %v, want 5s", cfg.Batch.Timeout.Duration)
	}
	// Defaults should still be applied for unset values
	if cfg.Defaults.MaxIterations != 100 {
		t.Errorf("Defaults.MaxIterations = %v, want 100 (default)", cfg.Defaults.MaxIterations)
	}
}

func TestLoad_YAML(t *testing.T) {
	path := writeConfig(t, "config.yaml", `
defaults:
  max_iterations: 250
  stop_criterion: residual
plot:
  format: svg
  width_cm: 10
batch:
  timeout: 2m
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Defaults.MaxIterations != 250 || cfg.Defaults.StopCriterion != "residual" {
		t.Errorf("Defaults = %+v", cfg.Defaults)
	}
	if cfg.Plot.Format != "svg" || cfg.Plot.WidthCM != 10 || cfg.Plot.HeightCM != 16 {
		t.Errorf("Plot = %+v", cfg.Plot)
	}
	if cfg.Batch.Timeout.Duration != 2*time.Minute {
		t.Errorf("Batch.Timeout = %v, want 2m", cfg.Batch.Timeout.Duration)
	}
}

func TestLoad_InvalidContent(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"broken toml", "config.toml", "[general\nname ="},
		{"broken yaml", "config.yml", "defaults: [unclosed"},
		{"invalid unit", "config.toml", "[defaults]\nangle_unit = \"gradians\""},
		{"negative tolerance", "config.toml", "[defaults]\ntolerance = -1.0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.file, tt.content))
			if !mdwerror.HasCode(err, mdwerror.CodeInvalidConfig) {
				t.Errorf("Load() error = %v, want INVALID_CONFIG", err)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		field  string
	}{
		{"max iterations", func(c *Config) { c.Defaults.MaxIterations = -1 }, "defaults.max_iterations"},
		{"criterion", func(c *Config) { c.Defaults.StopCriterion = "step" }, "defaults.stop_criterion"},
		{"error type", func(c *Config) { c.Defaults.ErrorType = "percent" }, "defaults.error_type"},
		{"precision mode", func(c *Config) { c.Display.PrecisionMode = "fixed" }, "display.precision_mode"},
		{"significant figures", func(c *Config) { c.Display.SignificantFigures = 30 }, "display.significant_figures"},
		{"samples", func(c *Config) { c.Plot.Samples = 1 }, "plot.samples"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)

			err := cfg.Validate()
			if err == nil {
				t.Fatal("Validate() expected an error")
			}
			structured, ok := err.(*mdwerror.Error)
			if !ok {
				t.Fatalf("error type = %T", err)
			}
			if structured.Details()["field"] != tt.field {
				t.Errorf("field = %v, want %v", structured.Details()["field"], tt.field)
			}
		})
	}
}

func TestLoadFromEnv(t *testing.T) {
	path := writeConfig(t, "env.toml", "[defaults]\nmax_iterations = 42\n")
	t.Setenv(EnvConfigPath, path)

	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv() error = %v", err)
	}
	if cfg.Defaults.MaxIterations != 42 {
		t.Errorf("Defaults.MaxIterations = %v, want 42", cfg.Defaults.MaxIterations)
	}

	t.Setenv(EnvConfigPath, filepath.Join(t.TempDir(), "missing.toml"))
	if _, err := LoadFromEnv(); err == nil {
		t.Error("LoadFromEnv() expected error for a missing explicit path")
	}
}

func TestLoadFromEnv_FallsBackToDefaults(t *testing.T) {
	t.Setenv(EnvConfigPath, "")
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())

	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv() error = %v", err)
	}
	if cfg.General.Name != "puntofijo" {
		t.Errorf("General.Name = %v, want puntofijo", cfg.General.Name)
	}
}
