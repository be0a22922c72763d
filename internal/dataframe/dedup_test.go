package dataframe

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDuplicated(t *testing.T) {
	df := demoFrame(t)

	t.Run("clean frame has none", func(t *testing.T) {
		assert.Empty(t, df.Duplicated())
	})

	t.Run("appended copy flags only the later row", func(t *testing.T) {
		row, err := df.Row(1)
		require.NoError(t, err)
		withDup, err := df.AppendRow(row)
		require.NoError(t, err)

		assert.Equal(t, []int{5}, withDup.Duplicated())
	})

	t.Run("rows equal only on missing cells are duplicates", func(t *testing.T) {
		frame, err := New(
			NewStrings("Name", []string{"Bob", "Bob"}),
			NewFloats("Age", []float64{math.NaN(), math.NaN()}),
		)
		require.NoError(t, err)

		assert.Equal(t, []int{1}, frame.Duplicated())
	})

	t.Run("missing does not equal zero", func(t *testing.T) {
		frame, err := New(
			NewStrings("Name", []string{"Bob", "Bob"}),
			NewFloats("Age", []float64{math.NaN(), 0}),
		)
		require.NoError(t, err)

		assert.Empty(t, frame.Duplicated())
	})

	t.Run("one differing cell is no duplicate", func(t *testing.T) {
		frame, err := New(
			NewStrings("Name", []string{"Bob", "Bob"}),
			NewFloats("Age", []float64{30, 31}),
		)
		require.NoError(t, err)

		assert.Empty(t, frame.Duplicated())
	})
}

func TestDropDuplicates(t *testing.T) {
	df := demoFrame(t)
	row, err := df.Row(1)
	require.NoError(t, err)
	withDup, err := df.AppendRow(row)
	require.NoError(t, err)

	deduped := withDup.DropDuplicates()

	assert.Equal(t, 5, deduped.NumRows())
	assert.True(t, deduped.Equal(df), "first occurrences survive in original order")
	assert.Equal(t, 6, withDup.NumRows(), "source frame is untouched")

	t.Run("idempotent", func(t *testing.T) {
		assert.True(t, deduped.DropDuplicates().Equal(deduped))
	})
}

func TestDropDuplicates_RepeatedValueRuns(t *testing.T) {
	frame, err := New(
		NewStrings("City", []string{"Chicago", "Chicago", "New York", "Chicago"}),
		NewInts("Count", []int64{1, 1, 1, 1}),
	)
	require.NoError(t, err)

	deduped := frame.DropDuplicates()

	require.Equal(t, 2, deduped.NumRows())
	city, err := deduped.Column("City")
	require.NoError(t, err)
	first, ok := city.StringAt(0)
	require.True(t, ok)
	second, ok := city.StringAt(1)
	require.True(t, ok)
	assert.Equal(t, "Chicago", first)
	assert.Equal(t, "New York", second)
}
