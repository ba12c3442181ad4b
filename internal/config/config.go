package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config represents the complete zrc2021 configuration
type Config struct {
	Output  OutputConfig  `mapstructure:"output"`
	Tracks  TracksConfig  `mapstructure:"tracks"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// OutputConfig controls where score files are written
type OutputConfig struct {
	// Directory receives one score file per (track, split, stratification).
	// It is created if absent and never read back.
	Directory string `mapstructure:"directory"`
}

// TracksConfig carries default skip flags for the four evaluation tracks.
// A track marked true here is skipped unless re-enabled on the command line.
type TracksConfig struct {
	NoPhonetic  bool `mapstructure:"no_phonetic"`
	NoLexical   bool `mapstructure:"no_lexical"`
	NoSyntactic bool `mapstructure:"no_syntactic"`
	NoSemantic  bool `mapstructure:"no_semantic"`
}

// LoggingConfig controls evaluation-run logging
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn or error
	Level string `mapstructure:"level"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Output: OutputConfig{
			Directory: ".",
		},
		Tracks: TracksConfig{
			NoPhonetic:  false,
			NoLexical:   false,
			NoSyntactic: false,
			NoSemantic:  false,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// SetDefaults registers default values with viper
func SetDefaults() {
	defaults := Default()

	viper.SetDefault("output.directory", defaults.Output.Directory)

	viper.SetDefault("tracks.no_phonetic", defaults.Tracks.NoPhonetic)
	viper.SetDefault("tracks.no_lexical", defaults.Tracks.NoLexical)
	viper.SetDefault("tracks.no_syntactic", defaults.Tracks.NoSyntactic)
	viper.SetDefault("tracks.no_semantic", defaults.Tracks.NoSemantic)

	viper.SetDefault("logging.level", defaults.Logging.Level)
}

// Load reads the configuration from viper into a Config struct and validates it
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	return &cfg, nil
}

// Get returns the current configuration (convenience function)
func Get() *Config {
	cfg, err := Load()
	if err != nil {
		// Fall back to defaults if unmarshaling fails
		return Default()
	}
	return cfg
}

// ConfigDir returns the path to the user's config directory
func ConfigDir() string {
	// Check XDG_CONFIG_HOME first
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "zrc2021")
	}
	// Fall back to ~/.config/zrc2021
	home, err := os.UserHomeDir()
	if err != nil {
		return ".zrc2021"
	}
	return filepath.Join(home, ".config", "zrc2021")
}

// ConfigFile returns the path to the config file
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}
