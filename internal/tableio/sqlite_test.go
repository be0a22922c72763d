package tableio

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wranglecli/internal/dataframe"
	apperrors "wranglecli/internal/errors"
)

func TestSQLite_RoundTripIsExact(t *testing.T) {
	ctx := context.Background()
	df := wrangledFrame(t)
	path := filepath.Join(t.TempDir(), "cleaned_data.db")

	require.NoError(t, WriteSQLite(ctx, df, path, "cleaned_data"))
	loaded, err := ReadSQLite(ctx, path, "cleaned_data")
	require.NoError(t, err)

	// Declared types restore the dtypes, NULLs restore the missing cells.
	assert.True(t, df.Equal(loaded), "wrote:\n%s\nread:\n%s", df, loaded)
}

func TestWriteSQLite_ReplacesTable(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "replace.db")

	first, err := dataframe.New(dataframe.NewInts("N", []int64{1, 2, 3}))
	require.NoError(t, err)
	require.NoError(t, WriteSQLite(ctx, first, path, "t"))

	second, err := dataframe.New(dataframe.NewStrings("Name", []string{"Alice"}))
	require.NoError(t, err)
	require.NoError(t, WriteSQLite(ctx, second, path, "t"))

	loaded, err := ReadSQLite(ctx, path, "t")
	require.NoError(t, err)
	assert.True(t, second.Equal(loaded), "a rewrite must fully replace the table")
}

func TestSQLite_Errors(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	t.Run("empty table name", func(t *testing.T) {
		df, err := dataframe.New(dataframe.NewInts("N", []int64{1}))
		require.NoError(t, err)
		requireErrType(t, WriteSQLite(ctx, df, filepath.Join(dir, "x.db"), "  "), apperrors.ErrTypeSchema)
	})

	t.Run("no columns", func(t *testing.T) {
		df, err := dataframe.New()
		require.NoError(t, err)
		requireErrType(t, WriteSQLite(ctx, df, filepath.Join(dir, "x.db"), "t"), apperrors.ErrTypeSchema)
	})

	t.Run("unknown table", func(t *testing.T) {
		df, err := dataframe.New(dataframe.NewInts("N", []int64{1}))
		require.NoError(t, err)
		path := filepath.Join(dir, "known.db")
		require.NoError(t, WriteSQLite(ctx, df, path, "t"))

		_, err = ReadSQLite(ctx, path, "missing")
		requireErrType(t, err, apperrors.ErrTypeStorage)
	})
}
