// Package config provides centralized configuration management for the
// wrangle pipeline. It handles loading configuration from multiple sources,
// validation, and provides a type-safe API for accessing configuration values
// throughout the application.
//
// # Configuration Sources
//
// Configuration is loaded from the following sources in order of precedence:
//
//	1. Environment variables (highest priority)
//	2. wrangle.yaml or configs/wrangle.yaml, if present
//	3. Default values (lowest priority)
//
// # Environment Variables
//
// All environment variables follow the pattern WRANGLE_* for namespacing:
//
//	WRANGLE_LOGGING_LEVEL=debug
//	WRANGLE_OUTPUT_CSV_PATH=out/cleaned_data.csv
//	WRANGLE_OUTPUT_SQLITE_PATH=out/cleaned_data.db
//	WRANGLE_SAMPLE_SIZE=3
//	WRANGLE_SAMPLE_SEED=7
//
// # Defaults
//
// The defaults reproduce the flagless run: the cleaned table is written to
// cleaned_data.csv and cleaned_data.arrow in the working directory, the Excel
// and SQLite outputs are disabled (empty path), and the preview sample draws
// two rows with seed 42.
//
// # Validation
//
// All configuration is validated at load time with struct rules: log level,
// format and output mode come from fixed sets, the sample size must be
// positive, and a SQLite path requires a table name. Failures surface as
// CONFIG errors.
//
// # Usage
//
// Load configuration at application startup:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
package config
