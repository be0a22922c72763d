package dataframe

import (
	"fmt"
	"math"
	"sort"

	"wranglecli/internal/errors"
)

// attachDerived installs a derived column named dst. When dst names the
// source column the derived column replaces it in position; otherwise dst
// must be a fresh name and the column is appended.
func (df *DataFrame) attachDerived(src string, col *Series) error {
	if col.name == src {
		df.replaceColumn(src, col)
		return nil
	}
	return df.AddColumn(col)
}

// ApplyFloat adds a Float column dst where dst[i] = fn(src[i]) over a numeric
// source column, preserving row order and count. Missing cells map to missing
// without invoking fn; a NaN result is stored as missing. dst must be a fresh
// name, or equal src to replace it in place.
func (df *DataFrame) ApplyFloat(dst, src string, fn func(float64) float64) error {
	col, err := df.Column(src)
	if err != nil {
		return err
	}
	if !col.IsNumeric() {
		return errors.NewSchemaError(
			fmt.Sprintf("apply requires a numeric column, %s is %s", src, col.dtype), nil).
			WithContext("column", src)
	}

	out := &Series{name: dst, dtype: DTypeFloat, floats: make([]float64, col.Len()), valid: make([]bool, col.Len())}
	for i := 0; i < col.Len(); i++ {
		v, ok := col.numericAt(i)
		if !ok {
			continue
		}
		if r := fn(v); !math.IsNaN(r) {
			out.setFloat(i, r)
		}
	}
	return df.attachDerived(src, out)
}

// EncodeCategorical adds an Int column dst assigning codes 0..k-1 to the
// distinct values of a String column in lexicographic order. Missing cells
// encode as missing. dst must be a fresh name, or equal src to replace it.
func (df *DataFrame) EncodeCategorical(dst, src string) error {
	col, err := df.Column(src)
	if err != nil {
		return err
	}
	if col.dtype != DTypeString {
		return errors.NewSchemaError(
			fmt.Sprintf("categorical encoding requires a string column, %s is %s", src, col.dtype), nil).
			WithContext("column", src)
	}

	distinct := make(map[string]struct{}, col.Len())
	for i := 0; i < col.Len(); i++ {
		if v, ok := col.StringAt(i); ok {
			distinct[v] = struct{}{}
		}
	}
	ordered := make([]string, 0, len(distinct))
	for v := range distinct {
		ordered = append(ordered, v)
	}
	sort.Strings(ordered)
	codes := make(map[string]int64, len(ordered))
	for code, v := range ordered {
		codes[v] = int64(code)
	}

	out := &Series{name: dst, dtype: DTypeInt, ints: make([]int64, col.Len()), valid: make([]bool, col.Len())}
	for i := 0; i < col.Len(); i++ {
		if v, ok := col.StringAt(i); ok {
			out.setInt(i, codes[v])
		}
	}
	return df.attachDerived(src, out)
}
