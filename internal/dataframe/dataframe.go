package dataframe

import (
	"fmt"
	"time"

	"wranglecli/internal/errors"
)

// DataFrame is an ordered collection of equal-length, uniquely named Series.
// Rows are implicitly indexed 0..NumRows-1. The container invariants (unique
// names, equal lengths) hold after construction and every operation.
type DataFrame struct {
	cols   []*Series
	byName map[string]int
}

// New creates a frame from the given columns. Column order is preserved.
// A nil column, a duplicate name, or a length mismatch is a SchemaError.
func New(cols ...*Series) (*DataFrame, error) {
	df := &DataFrame{
		cols:   make([]*Series, 0, len(cols)),
		byName: make(map[string]int, len(cols)),
	}
	for _, col := range cols {
		if col == nil {
			return nil, errors.NewSchemaError("nil column", nil)
		}
		if err := df.addColumn(col); err != nil {
			return nil, err
		}
	}
	return df, nil
}

func (df *DataFrame) addColumn(col *Series) error {
	if _, exists := df.byName[col.name]; exists {
		return errors.NewSchemaError(
			fmt.Sprintf("duplicate column name %s", col.name), nil).
			WithContext("column", col.name)
	}
	if len(df.cols) > 0 && col.Len() != df.NumRows() {
		return errors.NewSchemaError(
			fmt.Sprintf("column %s has %d rows, frame has %d", col.name, col.Len(), df.NumRows()), nil).
			WithContext("column", col.name)
	}
	df.byName[col.name] = len(df.cols)
	df.cols = append(df.cols, col)
	return nil
}

// NumRows returns the row count. A frame with no columns has zero rows.
func (df *DataFrame) NumRows() int {
	if len(df.cols) == 0 {
		return 0
	}
	return df.cols[0].Len()
}

// NumCols returns the column count.
func (df *DataFrame) NumCols() int { return len(df.cols) }

// ColumnNames returns the column names in column order.
func (df *DataFrame) ColumnNames() []string {
	names := make([]string, len(df.cols))
	for i, col := range df.cols {
		names[i] = col.name
	}
	return names
}

// Columns returns the underlying series in column order. The slice is a copy;
// the series are not.
func (df *DataFrame) Columns() []*Series {
	return append([]*Series(nil), df.cols...)
}

// Column returns the named series, or a SchemaError if it does not exist.
func (df *DataFrame) Column(name string) (*Series, error) {
	i, ok := df.byName[name]
	if !ok {
		return nil, errors.NewSchemaError(
			fmt.Sprintf("column %s not found", name), nil).
			WithContext("column", name)
	}
	return df.cols[i], nil
}

// HasColumn reports whether the named column exists.
func (df *DataFrame) HasColumn(name string) bool {
	_, ok := df.byName[name]
	return ok
}

// AddColumn appends a column to the frame. The usual invariants apply.
func (df *DataFrame) AddColumn(col *Series) error {
	if col == nil {
		return errors.NewSchemaError("nil column", nil)
	}
	return df.addColumn(col)
}

// replaceColumn swaps the column at the position of name, keeping column
// order. The replacement may carry a different name.
func (df *DataFrame) replaceColumn(name string, col *Series) {
	i := df.byName[name]
	delete(df.byName, name)
	df.cols[i] = col
	df.byName[col.name] = i
}

// Rename renames columns in place, keeping column order. Every key must be an
// existing column and no new name may collide with another column.
func (df *DataFrame) Rename(renames map[string]string) error {
	for old, next := range renames {
		if _, ok := df.byName[old]; !ok {
			return errors.NewSchemaError(
				fmt.Sprintf("column %s not found", old), nil).
				WithContext("column", old)
		}
		if other, exists := df.byName[next]; exists && df.cols[other].name != old {
			return errors.NewSchemaError(
				fmt.Sprintf("rename %s to %s collides with an existing column", old, next), nil).
				WithContext("column", next)
		}
	}
	for old, next := range renames {
		if old == next {
			continue
		}
		df.replaceColumn(old, df.cols[df.byName[old]].Rename(next))
	}
	return nil
}

// Row returns the cells of row i in column order: string, int64, float64 or
// time.Time values, nil for missing cells.
func (df *DataFrame) Row(i int) ([]interface{}, error) {
	if i < 0 || i >= df.NumRows() {
		return nil, errors.NewRangeError(
			fmt.Sprintf("row %d out of range, frame has %d rows", i, df.NumRows()), nil).
			WithContext("row", i)
	}
	cells := make([]interface{}, len(df.cols))
	for c, col := range df.cols {
		cells[c] = col.Value(i)
	}
	return cells, nil
}

// AppendRow returns a new frame with one row appended. Cells follow column
// order; nil marks a missing cell and every other cell must match its
// column's dtype.
func (df *DataFrame) AppendRow(cells []interface{}) (*DataFrame, error) {
	if len(cells) != df.NumCols() {
		return nil, errors.NewSchemaError(
			fmt.Sprintf("row has %d cells, frame has %d columns", len(cells), df.NumCols()), nil)
	}
	out := df.Clone()
	for c, col := range out.cols {
		col.valid = append(col.valid, false)
		switch col.dtype {
		case DTypeString:
			col.strs = append(col.strs, "")
		case DTypeInt:
			col.ints = append(col.ints, 0)
		case DTypeFloat:
			col.floats = append(col.floats, 0)
		default:
			col.dates = append(col.dates, time.Time{})
		}
		i := col.Len() - 1
		if cells[c] == nil {
			continue
		}
		if err := setCell(col, i, cells[c]); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func setCell(col *Series, i int, cell interface{}) error {
	switch v := cell.(type) {
	case string:
		if col.dtype != DTypeString {
			return cellTypeError(col, cell)
		}
		col.setString(i, v)
	case int64:
		if col.dtype != DTypeInt {
			return cellTypeError(col, cell)
		}
		col.setInt(i, v)
	case float64:
		if col.dtype != DTypeFloat {
			return cellTypeError(col, cell)
		}
		col.setFloat(i, v)
	case time.Time:
		if col.dtype != DTypeDate {
			return cellTypeError(col, cell)
		}
		col.setDate(i, v)
	default:
		return cellTypeError(col, cell)
	}
	return nil
}

func cellTypeError(col *Series, cell interface{}) error {
	return errors.NewSchemaError(
		fmt.Sprintf("cell %v (%T) does not match column %s (%s)", cell, cell, col.name, col.dtype), nil).
		WithContext("column", col.name)
}

// Head returns a new frame holding the first n rows. n larger than the row
// count yields the whole frame; n below zero yields an empty one.
func (df *DataFrame) Head(n int) *DataFrame {
	if n < 0 {
		n = 0
	}
	if n > df.NumRows() {
		n = df.NumRows()
	}
	indices := make([]int, n)
	for i := range indices {
		indices[i] = i
	}
	return df.selectRows(indices)
}

// selectRows builds a new frame from the rows at the given indices, in index
// order. Indices may repeat; -1 yields an all-missing row.
func (df *DataFrame) selectRows(indices []int) *DataFrame {
	cols := make([]*Series, len(df.cols))
	for c, col := range df.cols {
		cols[c] = col.takeRows(indices)
	}
	out, _ := New(cols...)
	return out
}

// Clone returns a deep copy sharing no storage with the receiver.
func (df *DataFrame) Clone() *DataFrame {
	cols := make([]*Series, len(df.cols))
	for i, col := range df.cols {
		cols[i] = col.Clone()
	}
	out, _ := New(cols...)
	return out
}

// Equal reports whether two frames have the same columns, in order, with
// equal names, dtypes and cells. Missing cells compare equal only to missing.
func (df *DataFrame) Equal(other *DataFrame) bool {
	if df.NumCols() != other.NumCols() {
		return false
	}
	for i, col := range df.cols {
		if !col.Equal(other.cols[i]) {
			return false
		}
	}
	return true
}
