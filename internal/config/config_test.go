package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "wranglecli/internal/errors"
)

// chdir switches the working directory for one test so Load's config file
// probing cannot pick up files from the repository.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}

// clearWrangleEnv unsets every WRANGLE_* variable for the duration of a test.
func clearWrangleEnv(t *testing.T) {
	t.Helper()
	for _, kv := range os.Environ() {
		if !strings.HasPrefix(kv, "WRANGLE_") {
			continue
		}
		k := strings.SplitN(kv, "=", 2)[0]
		v := os.Getenv(k)
		os.Unsetenv(k)
		t.Cleanup(func() { os.Setenv(k, v) })
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "file", cfg.Logging.Output)
	assert.Equal(t, "logs/wrangle.log", cfg.Logging.FilePath)

	assert.Equal(t, "cleaned_data.csv", cfg.Output.CSVPath)
	assert.Equal(t, "cleaned_data.arrow", cfg.Output.ArrowPath)
	assert.Empty(t, cfg.Output.ExcelPath, "Excel output is disabled by default")
	assert.Empty(t, cfg.Output.SQLitePath, "SQLite output is disabled by default")
	assert.Equal(t, "cleaned_data", cfg.Output.SQLiteTable)

	assert.Equal(t, 2, cfg.Sample.Size)
	assert.Equal(t, int64(42), cfg.Sample.Seed)
}

func TestLoad(t *testing.T) {
	t.Run("defaults with no file and no env", func(t *testing.T) {
		clearWrangleEnv(t)
		chdir(t, t.TempDir())

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, Default(), cfg)
	})

	t.Run("yaml file overlays defaults", func(t *testing.T) {
		clearWrangleEnv(t)
		dir := t.TempDir()
		yamlContent := `logging:
  level: debug
output:
  excel_path: out/cleaned_data.xlsx
sample:
  size: 5
`
		require.NoError(t, os.WriteFile(filepath.Join(dir, "wrangle.yaml"), []byte(yamlContent), 0644))
		chdir(t, dir)

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "debug", cfg.Logging.Level)
		assert.Equal(t, "out/cleaned_data.xlsx", cfg.Output.ExcelPath)
		assert.Equal(t, 5, cfg.Sample.Size)

		// Keys absent from the file keep their defaults.
		assert.Equal(t, "cleaned_data.csv", cfg.Output.CSVPath)
		assert.Equal(t, int64(42), cfg.Sample.Seed)
	})

	t.Run("environment overrides yaml", func(t *testing.T) {
		clearWrangleEnv(t)
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "wrangle.yaml"), []byte("sample:\n  size: 5\n"), 0644))
		chdir(t, dir)
		t.Setenv("WRANGLE_SAMPLE_SIZE", "3")
		t.Setenv("WRANGLE_SAMPLE_SEED", "7")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, 3, cfg.Sample.Size)
		assert.Equal(t, int64(7), cfg.Sample.Seed)
	})

	t.Run("empty env path disables an output", func(t *testing.T) {
		clearWrangleEnv(t)
		chdir(t, t.TempDir())
		t.Setenv("WRANGLE_OUTPUT_CSV_PATH", "")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Empty(t, cfg.Output.CSVPath)
		assert.Equal(t, "cleaned_data.arrow", cfg.Output.ArrowPath)
	})

	t.Run("invalid log level fails validation", func(t *testing.T) {
		clearWrangleEnv(t)
		chdir(t, t.TempDir())
		t.Setenv("WRANGLE_LOGGING_LEVEL", "loud")

		_, err := Load()
		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrTypeConfig), "want CONFIG error, got %v", err)
	})

	t.Run("malformed yaml fails", func(t *testing.T) {
		clearWrangleEnv(t)
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "wrangle.yaml"), []byte("logging: [not a map"), 0644))
		chdir(t, dir)

		_, err := Load()
		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrTypeConfig), "want CONFIG error, got %v", err)
	})
}

func TestValidate(t *testing.T) {
	t.Run("sqlite path requires a table name", func(t *testing.T) {
		cfg := Default()
		cfg.Output.SQLitePath = "cleaned_data.db"
		cfg.Output.SQLiteTable = ""

		err := cfg.Validate()
		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrTypeConfig))
	})

	t.Run("missing log file path falls back", func(t *testing.T) {
		cfg := Default()
		cfg.Logging.Output = "both"
		cfg.Logging.FilePath = ""

		require.NoError(t, cfg.Validate())
		assert.Equal(t, "logs/wrangle.log", cfg.Logging.FilePath)
	})

	t.Run("sample size must be positive", func(t *testing.T) {
		cfg := Default()
		cfg.Sample.Size = 0

		err := cfg.Validate()
		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrTypeConfig))
	})
}
