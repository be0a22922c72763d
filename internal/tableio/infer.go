package tableio

import (
	"fmt"
	"strconv"
	"time"

	"wranglecli/internal/dataframe"
	"wranglecli/internal/errors"
)

// ReadOptions adjusts how the text readers type their columns.
type ReadOptions struct {
	// DTypes pins the dtype of the named columns. Columns not listed are
	// inferred from their cell text. A cell that does not parse under a
	// pinned dtype is a ParseError.
	DTypes map[string]dataframe.DType
}

// buildFrame assembles a frame from a header row and text cells. Rows shorter
// than the header are padded with missing cells; longer rows are a
// ParseError. Empty cells are missing.
//
// Inference looks at the non-empty cells of a column: if all parse as
// integers the column is Int, else if all parse as floats it is Float, else
// if all parse as ISO dates it is Date, else String. A column with no
// non-empty cells is String. The consequence for round-trips is a widening
// rule: a float-formatted integer such as "32.0" reads back as Float unless
// the caller pins or recasts the column.
func buildFrame(header []string, rows [][]string, opts ReadOptions) (*dataframe.DataFrame, error) {
	columns := make([][]string, len(header))
	for c := range columns {
		columns[c] = make([]string, len(rows))
	}
	for i, row := range rows {
		if len(row) > len(header) {
			return nil, errors.NewParseError(
				fmt.Sprintf("row %d has %d fields, header has %d", i, len(row), len(header)), nil).
				WithContext("row", i)
		}
		for c, cell := range row {
			columns[c][i] = cell
		}
	}

	series := make([]*dataframe.Series, len(header))
	for c, name := range header {
		dtype, pinned := opts.DTypes[name]
		if !pinned {
			dtype = inferDType(columns[c])
		}
		col, err := buildSeries(name, dtype, columns[c])
		if err != nil {
			return nil, err
		}
		series[c] = col
	}
	return dataframe.New(series...)
}

// inferDType picks the narrowest dtype every non-empty cell parses under.
func inferDType(cells []string) dataframe.DType {
	sawValue := false
	isInt, isFloat, isDate := true, true, true
	for _, cell := range cells {
		if cell == "" {
			continue
		}
		sawValue = true
		if isInt {
			if _, err := strconv.ParseInt(cell, 10, 64); err != nil {
				isInt = false
			}
		}
		if isFloat {
			if _, err := strconv.ParseFloat(cell, 64); err != nil {
				isFloat = false
			}
		}
		if isDate {
			if _, err := time.Parse(dataframe.DateLayout, cell); err != nil {
				isDate = false
			}
		}
	}
	switch {
	case !sawValue:
		return dataframe.DTypeString
	case isInt:
		return dataframe.DTypeInt
	case isFloat:
		return dataframe.DTypeFloat
	case isDate:
		return dataframe.DTypeDate
	default:
		return dataframe.DTypeString
	}
}

// buildSeries parses the text cells of one column under a known dtype. Empty
// cells become missing; anything unparseable is a ParseError naming the cell.
func buildSeries(name string, dtype dataframe.DType, cells []string) (*dataframe.Series, error) {
	valid := make([]bool, len(cells))
	for i, cell := range cells {
		valid[i] = cell != ""
	}

	switch dtype {
	case dataframe.DTypeString:
		return dataframe.NewNullableStrings(name, cells, valid)
	case dataframe.DTypeInt:
		values := make([]int64, len(cells))
		for i, cell := range cells {
			if !valid[i] {
				continue
			}
			v, err := strconv.ParseInt(cell, 10, 64)
			if err != nil {
				return nil, cellParseError(name, i, cell, dtype, err)
			}
			values[i] = v
		}
		return dataframe.NewNullableInts(name, values, valid)
	case dataframe.DTypeFloat:
		values := make([]float64, len(cells))
		for i, cell := range cells {
			if !valid[i] {
				continue
			}
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, cellParseError(name, i, cell, dtype, err)
			}
			values[i] = v
		}
		return dataframe.NewNullableFloats(name, values, valid)
	case dataframe.DTypeDate:
		values := make([]time.Time, len(cells))
		for i, cell := range cells {
			if !valid[i] {
				continue
			}
			v, err := time.Parse(dataframe.DateLayout, cell)
			if err != nil {
				return nil, cellParseError(name, i, cell, dtype, err)
			}
			values[i] = v
		}
		return dataframe.NewNullableDates(name, values, valid)
	default:
		return nil, errors.NewConversionError(
			fmt.Sprintf("unsupported dtype %s for column %s", dtype, name), nil).
			WithContext("column", name)
	}
}

func cellParseError(column string, row int, cell string, dtype dataframe.DType, cause error) error {
	return errors.NewParseError(
		fmt.Sprintf("parse %q in column %s as %s", cell, column, dtype), cause).
		WithContext("column", column).
		WithContext("row", row).
		WithContext("value", cell)
}
