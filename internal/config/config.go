package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration.
type Config struct {
	Logging LoggingConfig `yaml:"logging" envconfig:"LOGGING"`
	Paths   PathsConfig   `yaml:"paths" envconfig:"PATHS"`
	Indices []IndexSource `yaml:"indices" envconfig:"-" validate:"dive"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Level       string `yaml:"level" envconfig:"LEVEL" validate:"omitempty,oneof=debug info warn warning error"`
	Format      string `yaml:"format" envconfig:"FORMAT" validate:"omitempty,oneof=json text"`
	Output      string `yaml:"output" envconfig:"OUTPUT" validate:"omitempty,oneof=console file both"`
	FilePath    string `yaml:"file_path" envconfig:"FILE_PATH"`
	Development bool   `yaml:"development" envconfig:"DEVELOPMENT"`
}

// PathsConfig contains file system paths configuration.
type PathsConfig struct {
	DataDir      string `yaml:"data_dir" envconfig:"DATA_DIR"`
	ProcessedDir string `yaml:"processed_dir" envconfig:"PROCESSED_DIR"`
	LogsDir      string `yaml:"logs_dir" envconfig:"LOGS_DIR"`
}

// IndexSource describes one index to normalize: where its raw file lives,
// what the normalized file is called, and which source format to expect.
type IndexSource struct {
	ID     string `yaml:"id" validate:"required"`
	Name   string `yaml:"name"`
	File   string `yaml:"file" validate:"required"`
	Output string `yaml:"output"`
	Format string `yaml:"format" validate:"omitempty,oneof=auto yfinance csi normalized"`
}

// OutputName returns the normalized file name, defaulting to
// "<id>_normalized.csv".
func (s IndexSource) OutputName() string {
	if s.Output != "" {
		return s.Output
	}
	return s.ID + "_normalized.csv"
}

// DisplayName returns the human-readable index name, falling back to the ID.
func (s IndexSource) DisplayName() string {
	if s.Name != "" {
		return s.Name
	}
	return s.ID
}

var validate = validator.New()

// Load loads configuration from an optional YAML file and environment
// variables. Environment variables (IDX_* prefix) take precedence over the
// file; the file takes precedence over defaults.
func Load(configFile string) (*Config, error) {
	cfg := Default()

	if configFile == "" {
		configFile = findConfigFile()
	}
	if configFile != "" {
		data, err := os.ReadFile(configFile)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
			}
		} else if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", configFile, err)
		}
	}

	// Environment overrides anything the file set.
	if err := envconfig.Process("IDX", cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if len(cfg.Indices) == 0 {
		cfg.Indices = DefaultIndices()
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks the configuration against its struct tags and fills in
// logging defaults for fields left empty.
func (c *Config) Validate() error {
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
		c.Logging.FilePath = "logs/normalize.log"
	}

	if err := validate.Struct(c); err != nil {
		return err
	}

	seen := make(map[string]bool, len(c.Indices))
	for _, idx := range c.Indices {
		if seen[idx.ID] {
			return fmt.Errorf("duplicate index id %q", idx.ID)
		}
		seen[idx.ID] = true
	}
	return nil
}

// findConfigFile returns the first config file found in common locations,
// or "" to use defaults and env vars only.
func findConfigFile() string {
	locations := []string{
		"config.yaml",
		"configs/config.yaml",
	}
	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}
	return ""
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:    "info",
			Format:   "json",
			Output:   "console",
			FilePath: "logs/normalize.log",
		},
		Paths: PathsConfig{
			DataDir: "data",
			LogsDir: "logs",
		},
		Indices: DefaultIndices(),
	}
}

// DefaultIndices returns the built-in index list: two U.S. indices in
// yfinance export format and three CSI indices in the official download
// format.
func DefaultIndices() []IndexSource {
	return []IndexSource{
		{
			ID:     "sp500",
			Name:   "S&P 500",
			File:   "sp500_daily_data.csv",
			Output: "sp500_normalized.csv",
			Format: "yfinance",
		},
		{
			ID:     "nasdaq100",
			Name:   "NASDAQ 100",
			File:   "nasdaq100_daily_data.csv",
			Output: "nasdaq100_normalized.csv",
			Format: "yfinance",
		},
		{
			ID:     "930955",
			Name:   "CSI Dividend Low Volatility 100",
			File:   "930955perf.csvx",
			Output: "930955_normalized.csv",
			Format: "csi",
		},
		{
			ID:     "980092",
			Name:   "CSI 980092",
			File:   "980092_perf_20121231-20251029.csv",
			Output: "980092_normalized.csv",
			Format: "csi",
		},
		{
			ID:     "CNB00003",
			Name:   "CNB00003 Bond Index",
			File:   "CNB00003_perf_20111230-20251029.csv",
			Output: "CNB00003_normalized.csv",
			Format: "csi",
		},
	}
}
