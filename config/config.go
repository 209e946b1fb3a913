package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v2"

	"dcon/internal/radix"
)

// MaxTapeSize bounds how many committed values the calculator keeps.
const MaxTapeSize = 1024

// Config holds settings shared by the dcon and dcalc binaries.
// Values come from built-in defaults, then the file named by DCON_CONFIG
// (YAML, or TOML when the name ends in .toml), then individual
// environment variables.
type Config struct {
	Width       int    `yaml:"width"`
	DefaultBase string `yaml:"default_base"`
	Prefix      bool   `yaml:"prefix"`
	LogLevel    string `yaml:"log_level"`
	LogFormat   string `yaml:"log_format"`
	LogFile     string `yaml:"log_file"`
	MetricsFile string `yaml:"metrics_file"`
	TapeSize    int    `yaml:"tape_size"`
	Jobs        int    `yaml:"jobs"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Width:       int(radix.DefaultWidth),
		DefaultBase: "dec",
		Prefix:      true,
		LogLevel:    "warn",
		LogFormat:   "text",
		TapeSize:    16,
		Jobs:        1,
	}
}

// Load reads configuration from the file named by DCON_CONFIG (if any)
// and environment variables.
func Load() (*Config, error) {
	return LoadFile(getEnv("DCON_CONFIG", ""))
}

// LoadFile layers path (skipped when empty) and environment overrides on
// top of the defaults and validates the result.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
		if strings.EqualFold(filepath.Ext(path), ".toml") {
			err = decodeTOML(data, cfg)
		} else {
			err = yaml.UnmarshalStrict(data, cfg)
		}
		if err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := getEnv("DCON_WIDTH", ""); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Width = n
		} else {
			slog.Warn("[config] skipping invalid DCON_WIDTH", "value", v)
		}
	}
	if v := getEnv("DCON_PREFIX", ""); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Prefix = b
		} else {
			slog.Warn("[config] skipping invalid DCON_PREFIX", "value", v)
		}
	}
	if v := getEnv("DCON_TAPE_SIZE", ""); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.TapeSize = n
		} else {
			slog.Warn("[config] skipping invalid DCON_TAPE_SIZE", "value", v)
		}
	}
	if v := getEnv("DCON_JOBS", ""); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Jobs = n
		} else {
			slog.Warn("[config] skipping invalid DCON_JOBS", "value", v)
		}
	}
	cfg.DefaultBase = getEnv("DCON_DEFAULT_BASE", cfg.DefaultBase)
	cfg.LogLevel = getEnv("DCON_LOG_LEVEL", cfg.LogLevel)
	cfg.LogFormat = getEnv("DCON_LOG_FORMAT", cfg.LogFormat)
	cfg.LogFile = getEnv("DCON_LOG_FILE", cfg.LogFile)
	cfg.MetricsFile = getEnv("DCON_METRICS_FILE", cfg.MetricsFile)
}

// Validate checks that every field holds a usable value.
func (c *Config) Validate() error {
	if c.Width < 0 || !radix.Width(c.Width).Valid() {
		return fmt.Errorf("invalid width %d, must be one of 8, 16, 32, 64", c.Width)
	}
	if _, err := radix.ParseBase(c.DefaultBase); err != nil {
		return fmt.Errorf("invalid default_base: %w", err)
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return fmt.Errorf("invalid log_level %q", c.LogLevel)
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("invalid log_format %q, must be text or json", c.LogFormat)
	}
	if c.TapeSize <= 0 || c.TapeSize > MaxTapeSize {
		return fmt.Errorf("tape_size %d is outside range [1, %d]", c.TapeSize, MaxTapeSize)
	}
	if c.Jobs <= 0 || c.Jobs > 256 {
		return fmt.Errorf("jobs %d is outside range [1, 256]", c.Jobs)
	}
	return nil
}

// RadixWidth returns the configured width. Call after Validate.
func (c *Config) RadixWidth() radix.Width {
	return radix.Width(c.Width)
}

// Base returns the configured default target base, falling back to
// decimal when the name is not recognised.
func (c *Config) Base() radix.Base {
	b, err := radix.ParseBase(c.DefaultBase)
	if err != nil {
		return radix.Decimal
	}
	return b
}

func getEnv(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}
