package dataframe

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "wranglecli/internal/errors"
)

func TestNewFloats_NaNBecomesMissing(t *testing.T) {
	s := NewFloats("Age", []float64{25, math.NaN(), 35})

	assert.Equal(t, 3, s.Len())
	assert.Equal(t, DTypeFloat, s.DType())
	assert.False(t, s.IsNull(0))
	assert.True(t, s.IsNull(1))
	assert.Equal(t, 1, s.NullCount())

	_, ok := s.FloatAt(1)
	assert.False(t, ok)
	v, ok := s.FloatAt(2)
	require.True(t, ok)
	assert.Equal(t, 35.0, v)
}

func TestNullableConstructors(t *testing.T) {
	t.Run("mask marks missing cells", func(t *testing.T) {
		s, err := NewNullableInts("Count", []int64{1, 0, 3}, []bool{true, false, true})
		require.NoError(t, err)

		assert.True(t, s.IsNull(1))
		v, ok := s.IntAt(0)
		require.True(t, ok)
		assert.Equal(t, int64(1), v)
	})

	t.Run("nil mask means all valid", func(t *testing.T) {
		s, err := NewNullableStrings("City", []string{"Oslo", ""}, nil)
		require.NoError(t, err)
		assert.Equal(t, 0, s.NullCount())

		// An empty string is a value, not a missing cell.
		v, ok := s.StringAt(1)
		require.True(t, ok)
		assert.Equal(t, "", v)
	})

	t.Run("mask length mismatch", func(t *testing.T) {
		_, err := NewNullableInts("Count", []int64{1, 2}, []bool{true})
		requireErrType(t, err, apperrors.ErrTypeSchema)
	})
}

func TestNewDatesFromStrings(t *testing.T) {
	t.Run("parses ISO dates", func(t *testing.T) {
		s, err := NewDatesFromStrings("Join Date", []string{"2023-01-15", "2019-07-10"})
		require.NoError(t, err)

		d, ok := s.DateAt(0)
		require.True(t, ok)
		assert.Equal(t, time.Date(2023, time.January, 15, 0, 0, 0, 0, time.UTC), d)
	})

	t.Run("malformed date names the value", func(t *testing.T) {
		_, err := NewDatesFromStrings("Join Date", []string{"2023-01-15", "15/01/2023"})
		requireErrType(t, err, apperrors.ErrTypeParse)
		assert.Contains(t, err.Error(), "15/01/2023")
	})
}

func TestNewDates_TruncatesToDay(t *testing.T) {
	stamp := time.Date(2023, time.March, 5, 17, 45, 12, 999, time.FixedZone("X", 3600))
	s := NewDates("Join Date", []time.Time{stamp})

	d, ok := s.DateAt(0)
	require.True(t, ok)
	assert.Equal(t, time.Date(2023, time.March, 5, 0, 0, 0, 0, time.UTC), d)
}

func TestSeries_TypedAccessors(t *testing.T) {
	s := NewInts("Age", []int64{25, 30})

	// Accessing with the wrong type reads as not-ok, never as a zero value.
	_, ok := s.FloatAt(0)
	assert.False(t, ok)
	_, ok = s.StringAt(0)
	assert.False(t, ok)

	v, ok := s.IntAt(1)
	require.True(t, ok)
	assert.Equal(t, int64(30), v)
}

func TestSeries_Value(t *testing.T) {
	s := NewFloats("Salary", []float64{50000, math.NaN()})

	assert.Equal(t, 50000.0, s.Value(0))
	assert.Nil(t, s.Value(1))
}

func TestSeries_CloneIsIndependent(t *testing.T) {
	s := NewInts("Age", []int64{25, 30})
	c := s.Clone()
	c.setInt(0, 99)
	c.setNull(1)

	v, ok := s.IntAt(0)
	require.True(t, ok)
	assert.Equal(t, int64(25), v)
	assert.False(t, s.IsNull(1))
}

func TestSeries_Rename(t *testing.T) {
	s := NewStrings("Name", []string{"Alice"})
	r := s.Rename("Employee Name")

	assert.Equal(t, "Name", s.Name())
	assert.Equal(t, "Employee Name", r.Name())
	v, ok := r.StringAt(0)
	require.True(t, ok)
	assert.Equal(t, "Alice", v)
}

func TestSeries_Equal(t *testing.T) {
	tests := []struct {
		name string
		a, b *Series
		want bool
	}{
		{
			name: "equal with matching missing cells",
			a:    NewFloats("Age", []float64{25, math.NaN()}),
			b:    NewFloats("Age", []float64{25, math.NaN()}),
			want: true,
		},
		{
			name: "missing is not zero",
			a:    NewFloats("Age", []float64{25, math.NaN()}),
			b:    NewFloats("Age", []float64{25, 0}),
			want: false,
		},
		{
			name: "different name",
			a:    NewFloats("Age", []float64{25}),
			b:    NewFloats("Years", []float64{25}),
			want: false,
		},
		{
			name: "different dtype",
			a:    NewInts("Age", []int64{25}),
			b:    NewFloats("Age", []float64{25}),
			want: false,
		},
		{
			name: "different length",
			a:    NewInts("Age", []int64{25}),
			b:    NewInts("Age", []int64{25, 30}),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Equal(tt.b))
		})
	}
}

func TestSeries_FormatCell(t *testing.T) {
	dates, err := NewDatesFromStrings("Join Date", []string{"2023-01-15"})
	require.NoError(t, err)

	tests := []struct {
		name   string
		series *Series
		row    int
		want   string
		wantOK bool
	}{
		{
			name:   "float uses shortest round-trip form",
			series: NewFloats("Salary", []float64{50000}),
			row:    0,
			want:   "50000",
			wantOK: true,
		},
		{
			name:   "float keeps fractional digits",
			series: NewFloats("Rate", []float64{0.125}),
			row:    0,
			want:   "0.125",
			wantOK: true,
		},
		{
			name:   "int renders decimal",
			series: NewInts("Age", []int64{-3}),
			row:    0,
			want:   "-3",
			wantOK: true,
		},
		{
			name:   "date renders ISO",
			series: dates,
			row:    0,
			want:   "2023-01-15",
			wantOK: true,
		},
		{
			name:   "missing renders not-ok",
			series: NewFloats("Salary", []float64{math.NaN()}),
			row:    0,
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.series.FormatCell(tt.row)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}
