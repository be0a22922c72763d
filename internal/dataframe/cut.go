package dataframe

import (
	"fmt"
	"sort"

	"wranglecli/internal/errors"
)

// Cut adds a String column dst binning a numeric column into labeled
// intervals. bounds must be strictly increasing and carry exactly
// len(labels)+1 entries (RangeError otherwise). A value v maps to labels[i]
// iff bounds[i] <= v < bounds[i+1]; values outside every interval, and
// missing inputs, yield missing cells. dst must be a fresh name, or equal src
// to replace it.
func (df *DataFrame) Cut(dst, src string, bounds []float64, labels []string) error {
	col, err := df.Column(src)
	if err != nil {
		return err
	}
	if !col.IsNumeric() {
		return errors.NewSchemaError(
			fmt.Sprintf("binning requires a numeric column, %s is %s", src, col.dtype), nil).
			WithContext("column", src)
	}
	if len(bounds) != len(labels)+1 {
		return errors.NewRangeError(
			fmt.Sprintf("%d bin bounds require %d labels, got %d", len(bounds), len(bounds)-1, len(labels)), nil).
			WithContext("column", src)
	}
	for i := 1; i < len(bounds); i++ {
		if bounds[i] <= bounds[i-1] {
			return errors.NewRangeError(
				fmt.Sprintf("bin bounds must be strictly increasing, bounds[%d]=%g does not exceed bounds[%d]=%g",
					i, bounds[i], i-1, bounds[i-1]), nil).
				WithContext("column", src)
		}
	}

	out := &Series{name: dst, dtype: DTypeString, strs: make([]string, col.Len()), valid: make([]bool, col.Len())}
	for i := 0; i < col.Len(); i++ {
		v, ok := col.numericAt(i)
		if !ok {
			continue
		}
		if bin := binIndex(bounds, v); bin >= 0 {
			out.setString(i, labels[bin])
		}
	}
	return df.attachDerived(src, out)
}

// binIndex returns the half-open interval [bounds[i], bounds[i+1]) holding v,
// or -1 when v lies outside every interval. Intervals are lower-inclusive, so
// a value on an interior bound belongs to the interval it opens.
func binIndex(bounds []float64, v float64) int {
	idx := sort.SearchFloat64s(bounds, v)
	if idx < len(bounds) && bounds[idx] == v {
		if idx == len(bounds)-1 {
			return -1 // the final bound is exclusive
		}
		return idx
	}
	if idx == 0 || idx == len(bounds) {
		return -1
	}
	return idx - 1
}
