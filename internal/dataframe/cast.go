package dataframe

import (
	"fmt"

	"wranglecli/internal/errors"
)

// int64 cannot hold magnitudes at or beyond 2^63.
const maxExactInt64 = 9.223372036854775808e18

// Cast coerces a column to the target dtype in place. Float to Int truncates
// toward zero and requires every cell present: a missing cell fails the whole
// cast with a ConversionError before anything is mutated. Int to Float
// widens. A same-type cast is a no-op; every other pair is a ConversionError.
func (df *DataFrame) Cast(name string, target DType) error {
	col, err := df.Column(name)
	if err != nil {
		return err
	}
	if col.dtype == target {
		return nil
	}

	switch {
	case col.dtype == DTypeFloat && target == DTypeInt:
		return df.castFloatToInt(col)
	case col.dtype == DTypeInt && target == DTypeFloat:
		return df.castIntToFloat(col)
	default:
		return errors.NewConversionError(
			fmt.Sprintf("cannot cast column %s from %s to %s", name, col.dtype, target), nil).
			WithContext("column", name)
	}
}

func (df *DataFrame) castFloatToInt(col *Series) error {
	for i := 0; i < col.Len(); i++ {
		if !col.valid[i] {
			return errors.NewConversionError(
				fmt.Sprintf("cannot cast column %s to %s, row %d is missing", col.name, DTypeInt, i), nil).
				WithContext("column", col.name).
				WithContext("row", i)
		}
		if v := col.floats[i]; v >= maxExactInt64 || v < -maxExactInt64 {
			return errors.NewConversionError(
				fmt.Sprintf("value %g in column %s overflows %s", v, col.name, DTypeInt), nil).
				WithContext("column", col.name).
				WithContext("row", i)
		}
	}

	ints := make([]int64, col.Len())
	for i, v := range col.floats {
		ints[i] = int64(v)
	}
	replacement := NewInts(col.name, ints)
	df.replaceColumn(col.name, replacement)
	return nil
}

func (df *DataFrame) castIntToFloat(col *Series) error {
	floats := make([]float64, col.Len())
	valid := append([]bool(nil), col.valid...)
	for i, v := range col.ints {
		if valid[i] {
			floats[i] = float64(v)
		}
	}
	replacement := NewFloats(col.name, floats)
	replacement.valid = valid
	df.replaceColumn(col.name, replacement)
	return nil
}
