package dataframe

import (
	"fmt"

	"wranglecli/internal/errors"
)

// Merge left-joins right onto the receiver over the named key column. For
// each left row in order it emits one output row per matching right row,
// right order preserved; a left row with no match keeps its cells and gets
// the right-hand columns as missing. Right-only keys are dropped. Missing
// keys match nothing on either side.
//
// The key column must exist in both frames with the same dtype, and no
// non-key right column may collide with a left column name; either case is a
// SchemaError.
func (df *DataFrame) Merge(right *DataFrame, on string) (*DataFrame, error) {
	leftKey, err := df.Column(on)
	if err != nil {
		return nil, err
	}
	rightKey, err := right.Column(on)
	if err != nil {
		return nil, err
	}
	if leftKey.dtype != rightKey.dtype {
		return nil, errors.NewSchemaError(
			fmt.Sprintf("join key %s is %s on the left and %s on the right", on, leftKey.dtype, rightKey.dtype), nil).
			WithContext("column", on)
	}
	for _, col := range right.cols {
		if col.name != on && df.HasColumn(col.name) {
			return nil, errors.NewSchemaError(
				fmt.Sprintf("column %s exists in both frames", col.name), nil).
				WithContext("column", col.name)
		}
	}

	// Index right rows by key. FormatCell is injective within a dtype, so
	// the textual key cannot conflate distinct values.
	matches := make(map[string][]int, right.NumRows())
	for j := 0; j < right.NumRows(); j++ {
		if key, ok := rightKey.FormatCell(j); ok {
			matches[key] = append(matches[key], j)
		}
	}

	var leftIdx, rightIdx []int
	for i := 0; i < df.NumRows(); i++ {
		key, ok := leftKey.FormatCell(i)
		if !ok {
			leftIdx = append(leftIdx, i)
			rightIdx = append(rightIdx, -1)
			continue
		}
		found := matches[key]
		if len(found) == 0 {
			leftIdx = append(leftIdx, i)
			rightIdx = append(rightIdx, -1)
			continue
		}
		for _, j := range found {
			leftIdx = append(leftIdx, i)
			rightIdx = append(rightIdx, j)
		}
	}

	cols := make([]*Series, 0, df.NumCols()+right.NumCols()-1)
	for _, col := range df.cols {
		cols = append(cols, col.takeRows(leftIdx))
	}
	for _, col := range right.cols {
		if col.name == on {
			continue
		}
		cols = append(cols, col.takeRows(rightIdx))
	}
	return New(cols...)
}
