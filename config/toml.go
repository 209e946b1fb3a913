package config

import (
	"bytes"

	"github.com/pelletier/go-toml"
)

// tomlFile mirrors Config with pointer fields so keys missing from the
// file leave the current value alone.
type tomlFile struct {
	Width       *int    `toml:"width"`
	DefaultBase *string `toml:"default_base"`
	Prefix      *bool   `toml:"prefix"`
	LogLevel    *string `toml:"log_level"`
	LogFormat   *string `toml:"log_format"`
	LogFile     *string `toml:"log_file"`
	MetricsFile *string `toml:"metrics_file"`
	TapeSize    *int    `toml:"tape_size"`
	Jobs        *int    `toml:"jobs"`
}

func decodeTOML(data []byte, cfg *Config) error {
	var f tomlFile
	if err := toml.NewDecoder(bytes.NewReader(data)).Strict(true).Decode(&f); err != nil {
		return err
	}
	setIf(&cfg.Width, f.Width)
	setIf(&cfg.DefaultBase, f.DefaultBase)
	setIf(&cfg.Prefix, f.Prefix)
	setIf(&cfg.LogLevel, f.LogLevel)
	setIf(&cfg.LogFormat, f.LogFormat)
	setIf(&cfg.LogFile, f.LogFile)
	setIf(&cfg.MetricsFile, f.MetricsFile)
	setIf(&cfg.TapeSize, f.TapeSize)
	setIf(&cfg.Jobs, f.Jobs)
	return nil
}

func setIf[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}
