// Package config loads and validates the application configuration from
// defaults, an optional YAML file and SALES_-prefixed environment
// variables, in ascending precedence.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration.
type Config struct {
	Logging   LoggingConfig   `yaml:"logging" envconfig:"LOGGING"`
	Paths     PathsConfig     `yaml:"paths" envconfig:"PATHS"`
	Analytics AnalyticsConfig `yaml:"analytics" envconfig:"ANALYTICS"`
	Catalog   CatalogConfig   `yaml:"catalog" envconfig:"CATALOG"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn error"`
	Format   string `yaml:"format" envconfig:"FORMAT" validate:"oneof=text json"`
	Output   string `yaml:"output" envconfig:"OUTPUT" validate:"oneof=console file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH"`
}

// PathsConfig contains file system paths configuration
type PathsConfig struct {
	DataDir      string `yaml:"data_dir" envconfig:"DATA_DIR" validate:"required"`
	OutputDir    string `yaml:"output_dir" envconfig:"OUTPUT_DIR" validate:"required"`
	SalesFile    string `yaml:"sales_file" envconfig:"SALES_FILE" validate:"required"`
	EnrichedFile string `yaml:"enriched_file" envconfig:"ENRICHED_FILE" validate:"required"`
	ReportFile   string `yaml:"report_file" envconfig:"REPORT_FILE" validate:"required"`
}

// AnalyticsConfig contains the tunable aggregation parameters
type AnalyticsConfig struct {
	TopProducts     int `yaml:"top_products" envconfig:"TOP_PRODUCTS" validate:"min=1"`
	TopCustomers    int `yaml:"top_customers" envconfig:"TOP_CUSTOMERS" validate:"min=1"`
	LowQtyThreshold int `yaml:"low_qty_threshold" envconfig:"LOW_QTY_THRESHOLD" validate:"min=0"`
	TrendDays       int `yaml:"trend_days" envconfig:"TREND_DAYS" validate:"min=1"`
}

// CatalogConfig contains the external product catalog client configuration
type CatalogConfig struct {
	BaseURL        string `yaml:"base_url" envconfig:"BASE_URL" validate:"required,url"`
	Limit          int    `yaml:"limit" envconfig:"LIMIT" validate:"min=1,max=1000"`
	TimeoutSeconds int    `yaml:"timeout_seconds" envconfig:"TIMEOUT_SECONDS" validate:"min=1"`
}

// Default returns the built-in configuration. Defaults live here rather
// than in envconfig tags so that file values are not clobbered when no
// environment variable is set.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:    "info",
			Format:   "text",
			Output:   "console",
			FilePath: filepath.Join("logs", "analyzer.log"),
		},
		Paths: PathsConfig{
			DataDir:      "data",
			OutputDir:    "output",
			SalesFile:    "sales_data.txt",
			EnrichedFile: "enriched_sales_data.txt",
			ReportFile:   "sales_report.txt",
		},
		Analytics: AnalyticsConfig{
			TopProducts:     5,
			TopCustomers:    5,
			LowQtyThreshold: 10,
			TrendDays:       10,
		},
		Catalog: CatalogConfig{
			BaseURL:        "https://dummyjson.com",
			Limit:          100,
			TimeoutSeconds: 10,
		},
	}
}

// Load builds the configuration: defaults, then the optional YAML file,
// then environment variables, then validation.
func Load() (*Config, error) {
	cfg := Default()

	configFile := getConfigFilePath()
	if _, err := os.Stat(configFile); err == nil {
		data, err := os.ReadFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	if err := envconfig.Process("SALES", cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks the configuration against its struct tags.
func (c *Config) Validate() error {
	return validator.New().Struct(c)
}

// SalesPath returns the full path of the input sales file.
func (c *Config) SalesPath() string {
	return filepath.Join(c.Paths.DataDir, c.Paths.SalesFile)
}

// EnrichedPath returns the full path of the enriched output file.
func (c *Config) EnrichedPath() string {
	return filepath.Join(c.Paths.DataDir, c.Paths.EnrichedFile)
}

// ReportPath returns the full path of the text report.
func (c *Config) ReportPath() string {
	return filepath.Join(c.Paths.OutputDir, c.Paths.ReportFile)
}

// EnsureDirectories creates the data, output and log directories.
func (c *Config) EnsureDirectories() error {
	dirs := []string{c.Paths.DataDir, c.Paths.OutputDir}
	if c.Logging.Output != "console" {
		dirs = append(dirs, filepath.Dir(c.Logging.FilePath))
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

func getConfigFilePath() string {
	if path := os.Getenv("SALES_CONFIG_FILE"); path != "" {
		return path
	}
	return "config.yaml"
}
