package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"wranglecli/internal/config"
	"wranglecli/internal/infrastructure"
	"wranglecli/internal/pipeline"
)

func main() {
	csvPath := flag.String("csv", "", "cleaned CSV output path (defaults to config, cleaned_data.csv)")
	arrowPath := flag.String("arrow", "", "cleaned Arrow IPC output path (defaults to config, cleaned_data.arrow)")
	excelPath := flag.String("xlsx", "", "optional Excel output path (defaults to config, disabled)")
	sqlitePath := flag.String("sqlite", "", "optional SQLite database output path (defaults to config, disabled)")
	sqliteTable := flag.String("sqlite-table", "", "SQLite table name (defaults to config, cleaned_data)")
	sampleSize := flag.Int("sample-size", 0, "preview sample row count, 0 uses config")
	sampleSeed := flag.Int64("seed", -1, "preview sample seed, negative uses config")
	logLevel := flag.String("log-level", "", "log level: debug | info | warn | error (defaults to config)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Warn("Failed to load config, using defaults", "error", err)
		cfg = config.Default()
	}

	// Flags override the loaded configuration when set.
	if *csvPath != "" {
		cfg.Output.CSVPath = *csvPath
	}
	if *arrowPath != "" {
		cfg.Output.ArrowPath = *arrowPath
	}
	if *excelPath != "" {
		cfg.Output.ExcelPath = *excelPath
	}
	if *sqlitePath != "" {
		cfg.Output.SQLitePath = *sqlitePath
	}
	if *sqliteTable != "" {
		cfg.Output.SQLiteTable = *sqliteTable
	}
	if *sampleSize > 0 {
		cfg.Sample.Size = *sampleSize
	}
	if *sampleSeed >= 0 {
		cfg.Sample.Seed = *sampleSeed
	}
	if *logLevel != "" {
		cfg.Logging.Level = *logLevel
	}

	if err := cfg.Validate(); err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}

	ctx := infrastructure.EnsureRunID(context.Background())

	logger.InfoContext(ctx, "Starting wrangle run",
		slog.String("csv_output", cfg.Output.CSVPath),
		slog.String("arrow_output", cfg.Output.ArrowPath),
		slog.String("excel_output", cfg.Output.ExcelPath),
		slog.String("sqlite_output", cfg.Output.SQLitePath),
		slog.Int("sample_size", cfg.Sample.Size),
		slog.Int64("sample_seed", cfg.Sample.Seed))

	runner := pipeline.NewRunner(logger, buildStages(cfg)...)
	if _, err := runner.Execute(ctx); err != nil {
		infrastructure.ErrorContext(ctx, "Wrangle run failed", "error", err)
		fmt.Fprintf(os.Stderr, "wrangle: %v\n", err)
		os.Exit(1)
	}

	logger.InfoContext(ctx, "Wrangle run finished")
}
