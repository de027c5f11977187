package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration
type Config struct {
	Logging LoggingConfig `yaml:"logging" envconfig:"LOGGING"`
	Stats   StatsConfig   `yaml:"stats" envconfig:"STATS"`
	Paths   PathsConfig   `yaml:"paths" envconfig:"PATHS"`
	Aliases AliasConfig   `yaml:"aliases" envconfig:"ALIASES"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn warning error"`
	Format   string `yaml:"format" envconfig:"FORMAT" validate:"oneof=json text"`
	Output   string `yaml:"output" envconfig:"OUTPUT" validate:"oneof=console file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH"`
}

// StatsConfig contains the knobs of the statistical tables.
type StatsConfig struct {
	// TopK is how many countries per year the ranking tables keep.
	TopK int `yaml:"top_k" envconfig:"TOP_K" validate:"min=1"`
	// DecadeOffset is the exact number of years between the trend
	// reference year and its comparison year.
	DecadeOffset int `yaml:"decade_offset" envconfig:"DECADE_OFFSET" validate:"min=1"`
}

// PathsConfig contains file system paths configuration
type PathsConfig struct {
	ReportsDir string `yaml:"reports_dir" envconfig:"REPORTS_DIR"`
	LogsDir    string `yaml:"logs_dir" envconfig:"LOGS_DIR"`
}

// AliasConfig points at an optional YAML file extending the built-in
// country-name alias table and non-country exclusion list.
type AliasConfig struct {
	File string `yaml:"file" envconfig:"FILE"`
}

// Load loads configuration from the config file and environment
// variables. File values override struct defaults; CARBON_* environment
// variables override both.
func Load() (*Config, error) {
	var cfg Config

	if configFile := getConfigFilePath(); configFile != "" {
		fileConfig, err := loadFromFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
		cfg = *fileConfig
	}

	// set CARBON_* variables override file values; validate fills the
	// remaining zero fields with defaults
	if err := envconfig.Process("CARBON", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// loadFromFile loads configuration from YAML file
func loadFromFile(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// validate fills defaults for unset fields, then validates the
// configuration using struct tags.
func (c *Config) validate() error {
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "json"
	}
	if c.Logging.Output == "" {
		c.Logging.Output = "console"
	}
	if c.Logging.FilePath == "" {
		c.Logging.FilePath = "logs/carboncli.log"
	}
	if c.Stats.TopK == 0 {
		c.Stats.TopK = 5
	}
	if c.Stats.DecadeOffset == 0 {
		c.Stats.DecadeOffset = 10
	}
	if c.Paths.ReportsDir == "" {
		c.Paths.ReportsDir = "reports"
	}
	if c.Paths.LogsDir == "" {
		c.Paths.LogsDir = "logs"
	}

	v := validator.New()
	if err := v.Struct(c); err != nil {
		return err
	}
	return nil
}

// getConfigFilePath returns the path to the config file
func getConfigFilePath() string {
	// Check for config file in common locations
	locations := []string{
		"config.yaml",
		"configs/config.yaml",
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}

	return "" // No config file found, use env vars only
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:    "info",
			Format:   "json",
			Output:   "console",
			FilePath: "logs/carboncli.log",
		},
		Stats: StatsConfig{
			TopK:         5,
			DecadeOffset: 10,
		},
		Paths: PathsConfig{
			ReportsDir: "reports",
			LogsDir:    "logs",
		},
	}
}
