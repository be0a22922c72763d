package dataframe

import (
	"fmt"
	"time"

	"wranglecli/internal/errors"
)

// FillStrategy selects the statistic used to impute missing numeric cells.
type FillStrategy string

const (
	FillMean   FillStrategy = "mean"
	FillMedian FillStrategy = "median"
)

// NullCount pairs a column name with its number of missing cells.
type NullCount struct {
	Column string
	Nulls  int
}

// NullCounts returns the missing-cell count of every column, in column order.
func (df *DataFrame) NullCounts() []NullCount {
	counts := make([]NullCount, len(df.cols))
	for i, col := range df.cols {
		counts[i] = NullCount{Column: col.name, Nulls: col.NullCount()}
	}
	return counts
}

// FillNA replaces the missing cells of a numeric column in place with the
// chosen statistic over the non-missing values at call time. A non-numeric
// column is a SchemaError; a column with no non-missing values leaves the
// statistic undefined and fails with a ComputationError.
func (df *DataFrame) FillNA(name string, strategy FillStrategy) error {
	col, err := df.Column(name)
	if err != nil {
		return err
	}
	if !col.IsNumeric() {
		return errors.NewSchemaError(
			fmt.Sprintf("fill requires a numeric column, %s is %s", name, col.dtype), nil).
			WithContext("column", name)
	}

	values := col.nonMissing()
	if len(values) == 0 {
		return errors.NewComputationError(
			fmt.Sprintf("%s of column %s is undefined, every value is missing", strategy, name), nil).
			WithContext("column", name)
	}

	var fill float64
	switch strategy {
	case FillMean:
		fill = calculateMean(values)
	case FillMedian:
		fill = calculateMedian(values)
	default:
		return errors.NewRangeError(
			fmt.Sprintf("unknown fill strategy %q", strategy), nil)
	}

	for i := 0; i < col.Len(); i++ {
		if !col.valid[i] {
			col.setNumeric(i, fill)
		}
	}
	return nil
}

// FillNAValue replaces the missing cells of a column in place with a literal
// value, which must match the column dtype: string, int64, float64 or
// time.Time. A mismatch is a ConversionError.
func (df *DataFrame) FillNAValue(name string, value interface{}) error {
	col, err := df.Column(name)
	if err != nil {
		return err
	}

	set, err := fillSetter(col, value)
	if err != nil {
		return err
	}
	for i := 0; i < col.Len(); i++ {
		if !col.valid[i] {
			set(i)
		}
	}
	return nil
}

func fillSetter(col *Series, value interface{}) (func(int), error) {
	switch v := value.(type) {
	case string:
		if col.dtype == DTypeString {
			return func(i int) { col.setString(i, v) }, nil
		}
	case int64:
		if col.dtype == DTypeInt {
			return func(i int) { col.setInt(i, v) }, nil
		}
	case float64:
		if col.dtype == DTypeFloat {
			return func(i int) { col.setFloat(i, v) }, nil
		}
	case time.Time:
		if col.dtype == DTypeDate {
			return func(i int) { col.setDate(i, v) }, nil
		}
	}
	return nil, errors.NewConversionError(
		fmt.Sprintf("fill value %v (%T) does not match column %s (%s)", value, value, col.name, col.dtype), nil).
		WithContext("column", col.name)
}

// DropNA returns a new frame without any row that has a missing cell, order
// preserved. The receiver is untouched.
func (df *DataFrame) DropNA() *DataFrame {
	indices := make([]int, 0, df.NumRows())
	for i := 0; i < df.NumRows(); i++ {
		if df.rowComplete(i) {
			indices = append(indices, i)
		}
	}
	return df.selectRows(indices)
}

func (df *DataFrame) rowComplete(i int) bool {
	for _, col := range df.cols {
		if !col.valid[i] {
			return false
		}
	}
	return true
}
