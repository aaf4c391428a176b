// Package config loads the per-crate configuration from
// .unsafemeter/config.json, falling back to defaults when the file is
// absent.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"unsafemeter/internal/walker"
)

// Config is the complete tool configuration.
type Config struct {
	// Excludes lists directory names skipped while walking the crate.
	Excludes []string `json:"excludes" mapstructure:"excludes"`
	// Format is the default report format when --format is not given.
	Format string `json:"format" mapstructure:"format"`
	// StateDir holds the run history database, relative to the crate root.
	StateDir string `json:"stateDir" mapstructure:"stateDir"`

	Logging LoggingConfig `json:"logging" mapstructure:"logging"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Format string `json:"format" mapstructure:"format"`
	Level  string `json:"level" mapstructure:"level"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Excludes: append([]string(nil), walker.DefaultExcludes...),
		Format:   "markdown",
		StateDir: ".unsafemeter",
		Logging: LoggingConfig{
			Format: "human",
			Level:  "info",
		},
	}
}

// LoadConfig loads configuration from <crateRoot>/.unsafemeter/config.json.
func LoadConfig(crateRoot string) (*Config, error) {
	v := viper.New()

	def := DefaultConfig()
	v.SetDefault("excludes", def.Excludes)
	v.SetDefault("format", def.Format)
	v.SetDefault("stateDir", def.StateDir)
	v.SetDefault("logging.format", def.Logging.Format)
	v.SetDefault("logging.level", def.Logging.Level)

	v.SetConfigName("config")
	v.SetConfigType("json")
	v.AddConfigPath(filepath.Join(crateRoot, ".unsafemeter"))

	if err := v.ReadInConfig(); err != nil {
		// A missing config file means defaults.
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return def, nil
		}
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Save writes the configuration to <crateRoot>/.unsafemeter/config.json.
func (c *Config) Save(crateRoot string) error {
	dir := filepath.Join(crateRoot, ".unsafemeter")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(dir, "config.json"), data, 0644)
}
