package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	apperrors "wranglecli/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Logging LoggingConfig `yaml:"logging" envconfig:"LOGGING"`
	Output  OutputConfig  `yaml:"output" envconfig:"OUTPUT"`
	Sample  SampleConfig  `yaml:"sample" envconfig:"SAMPLE"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn warning error"`
	Format   string `yaml:"format" envconfig:"FORMAT" validate:"oneof=json text"`
	Output   string `yaml:"output" envconfig:"OUTPUT" validate:"oneof=stdout file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH"`
}

// OutputConfig names the files the cleaned table is persisted to.
// An empty path disables that format.
type OutputConfig struct {
	CSVPath     string `yaml:"csv_path" envconfig:"CSV_PATH"`
	ArrowPath   string `yaml:"arrow_path" envconfig:"ARROW_PATH"`
	ExcelPath   string `yaml:"excel_path" envconfig:"EXCEL_PATH"`
	SQLitePath  string `yaml:"sqlite_path" envconfig:"SQLITE_PATH"`
	SQLiteTable string `yaml:"sqlite_table" envconfig:"SQLITE_TABLE" validate:"required_with=SQLitePath"`
}

// SampleConfig controls the seeded preview sample drawn at the end of a run
type SampleConfig struct {
	Size int   `yaml:"size" envconfig:"SIZE" validate:"min=1"`
	Seed int64 `yaml:"seed" envconfig:"SEED"`
}

// Load loads configuration from defaults, an optional YAML file, and
// environment variables, in that order of precedence (environment wins).
func Load() (*Config, error) {
	cfg := Default()

	if configFile := getConfigFilePath(); configFile != "" {
		if err := loadFromFile(cfg, configFile); err != nil {
			return nil, apperrors.NewConfigError(fmt.Sprintf("load config file %s", configFile), err)
		}
	}

	if err := envconfig.Process("WRANGLE", cfg); err != nil {
		return nil, apperrors.NewConfigError("read environment", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadFromFile overlays configuration from a YAML file onto cfg.
// Keys absent from the file keep their current values.
func loadFromFile(cfg *Config, filePath string) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// getConfigFilePath returns the path to the config file
func getConfigFilePath() string {
	locations := []string{
		"wrangle.yaml",
		"configs/wrangle.yaml",
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}

	return "" // No config file found, use defaults and env vars only
}

// Validate applies fallbacks for underspecified logging output, then checks
// the configuration against its struct rules.
func (c *Config) Validate() error {
	if (c.Logging.Output == "file" || c.Logging.Output == "both") && c.Logging.FilePath == "" {
		c.Logging.FilePath = "logs/wrangle.log"
	}

	if err := validator.New().Struct(c); err != nil {
		return apperrors.NewConfigError("invalid configuration", err)
	}

	return nil
}

// Default returns the default configuration. Running with defaults writes
// cleaned_data.csv and cleaned_data.arrow to the working directory; the
// Excel and SQLite outputs stay disabled until given a path.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:    "info",
			Format:   "json",
			Output:   "file",
			FilePath: "logs/wrangle.log",
		},
		Output: OutputConfig{
			CSVPath:     "cleaned_data.csv",
			ArrowPath:   "cleaned_data.arrow",
			SQLiteTable: "cleaned_data",
		},
		Sample: SampleConfig{
			Size: 2,
			Seed: 42,
		},
	}
}
