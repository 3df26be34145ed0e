// Package config provides configuration management for tsfix using Viper.
package config

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/thoreinstein/tsfix/internal/paths"
)

// AppName is the application name used for config file naming.
const AppName = "tsfix"

// Config represents the top-level global configuration structure.
type Config struct {
	Version int           `mapstructure:"version" yaml:"version"`
	Checker CheckerConfig `mapstructure:"checker" yaml:"checker"`
	Rules   RulesConfig   `mapstructure:"rules" yaml:"rules"`
	Top     int           `mapstructure:"top" yaml:"top"`
}

// CheckerConfig selects the type checker invocation.
type CheckerConfig struct {
	Command string   `mapstructure:"command" yaml:"command" toml:"command"`
	Args    []string `mapstructure:"args" yaml:"args" toml:"args"`
}

// RulesConfig tunes the pattern rule set.
type RulesConfig struct {
	Disabled        []string `mapstructure:"disabled" yaml:"disabled" toml:"disabled"`
	Entrypoint      string   `mapstructure:"entrypoint" yaml:"entrypoint" toml:"entrypoint"`
	MutationMethods []string `mapstructure:"mutation_methods" yaml:"mutation_methods" toml:"mutation_methods"`
}

// Init initializes Viper with default configuration.
// Call this once at application startup before accessing config values.
func Init() {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	// Search paths (in order of precedence)
	viper.AddConfigPath(".")
	viper.AddConfigPath(paths.ConfigDir())

	viper.SetEnvPrefix("TSFIX")
	viper.AutomaticEnv()

	viper.SetDefault("version", 1)
	viper.SetDefault("checker.command", "npx")
	viper.SetDefault("checker.args", []string{"tsc", "--noEmit"})
	viper.SetDefault("top", 10)
}

// Load reads the configuration file.
// If path is provided, it reads from that specific file.
// If path is empty, it searches in the default locations.
// Returns the loaded configuration or default values if no file is found (when path is empty).
func Load(path string) (*Config, error) {
	if path != "" {
		viper.SetConfigFile(path)
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			if path != "" {
				return nil, fmt.Errorf("config file not found at %s: %w", path, err)
			}
			// Implicit load falls back to defaults.
		} else {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}

// Default returns a configuration with the built-in defaults, without
// touching the filesystem.
func Default() *Config {
	return &Config{
		Version: 1,
		Checker: CheckerConfig{Command: "npx", Args: []string{"tsc", "--noEmit"}},
		Top:     10,
	}
}

// Merge overlays the project manifest onto the global config. Project
// values win wherever they are set.
func (c *Config) Merge(p *Project) {
	if p == nil {
		return
	}
	if p.Checker.Command != "" {
		c.Checker.Command = p.Checker.Command
		c.Checker.Args = p.Checker.Args
	}
	if p.Rules.Entrypoint != "" {
		c.Rules.Entrypoint = p.Rules.Entrypoint
	}
	if len(p.Rules.MutationMethods) > 0 {
		c.Rules.MutationMethods = p.Rules.MutationMethods
	}
	if len(p.Rules.Disabled) > 0 {
		c.Rules.Disabled = p.Rules.Disabled
	}
}
