package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config represents the fitscore configuration
type Config struct {
	Root      string  `mapstructure:"root"`      // batch-mode root directory
	Pattern   string  `mapstructure:"pattern"`   // glob for assessment files under Root
	Ruleset   string  `mapstructure:"ruleset"`   // ruleset file; empty uses the embedded default
	Bank      string  `mapstructure:"bank"`      // question bank file (json or csv)
	Format    string  `mapstructure:"format"`    // console | json | markdown
	Output    string  `mapstructure:"output"`    // report output file
	Quiet     bool    `mapstructure:"quiet"`
	Verbose   bool    `mapstructure:"verbose"`
	FailBelow float64 `mapstructure:"failBelow"` // batch exits nonzero below this comprehensive score
}

// LoadConfig loads configuration from defaults, config file, environment,
// and bound flags.
func LoadConfig(rootPath string) (*Config, error) {
	viper.SetDefault("root", ".")
	viper.SetDefault("pattern", "**/*.assessment.json")
	viper.SetDefault("ruleset", "")
	viper.SetDefault("bank", "")
	viper.SetDefault("format", "console")
	viper.SetDefault("output", "")
	viper.SetDefault("quiet", false)
	viper.SetDefault("verbose", false)
	viper.SetDefault("failBelow", 0)

	// Config file locations
	configPaths := []string{".fitscorerc.json", ".fitscorerc.yaml", ".fitscorerc.yml"}
	for _, path := range configPaths {
		viper.SetConfigFile(path)
		if err := viper.ReadInConfig(); err == nil {
			break
		}
	}

	// Environment variables
	viper.SetEnvPrefix("FITSCORE")
	viper.AutomaticEnv()

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	// Override root if provided
	if rootPath != "" {
		config.Root = rootPath
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// validateConfig validates the configuration
func validateConfig(config *Config) error {
	if config.Format != "console" && config.Format != "json" && config.Format != "markdown" {
		return fmt.Errorf("invalid format: %s. Must be 'console', 'json', or 'markdown'", config.Format)
	}

	if config.FailBelow < 0 || config.FailBelow > 100 {
		return fmt.Errorf("fail-below must be between 0 and 100, got %g", config.FailBelow)
	}

	if config.Pattern == "" {
		return fmt.Errorf("pattern must not be empty")
	}

	return nil
}

// SaveConfig saves the current configuration to a file
func SaveConfig(config *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("error creating directory: %w", err)
	}

	jsonData, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("error marshaling config: %w", err)
	}

	if err := os.WriteFile(path, jsonData, 0644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}

	return nil
}
