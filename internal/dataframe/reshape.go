package dataframe

import (
	"wranglecli/internal/errors"
)

// PivotTable groups by the index column and aggregates the values column per
// group: one output row per distinct key, keys sorted ascending. It is the
// spreadsheet-style spelling of GroupBy(index).Aggregate(values, agg).
func (df *DataFrame) PivotTable(index, values string, agg Aggregation) (*DataFrame, error) {
	return df.GroupBy(index).Aggregate(values, agg)
}

// Melt unpivots value columns into (variable, value) pairs. The output is
// variable-major: for each value column in order, every input row contributes
// one output row carrying the id columns, the value column's name under
// "variable", and its cell under "value". The output has exactly
// len(valueVars) * NumRows rows. The value column is Float when every value
// column is numeric, otherwise values are rendered as strings; missing cells
// stay missing either way.
func (df *DataFrame) Melt(idVars, valueVars []string) (*DataFrame, error) {
	if len(valueVars) == 0 {
		return nil, errors.NewSchemaError("melt requires at least one value column", nil)
	}
	idCols := make([]*Series, len(idVars))
	for i, name := range idVars {
		col, err := df.Column(name)
		if err != nil {
			return nil, err
		}
		idCols[i] = col
	}
	valCols := make([]*Series, len(valueVars))
	allNumeric := true
	for i, name := range valueVars {
		col, err := df.Column(name)
		if err != nil {
			return nil, err
		}
		valCols[i] = col
		if !col.IsNumeric() {
			allNumeric = false
		}
	}

	n := df.NumRows()
	total := n * len(valCols)

	// Tile the id columns once per value column.
	tiled := make([]int, 0, total)
	for range valCols {
		for i := 0; i < n; i++ {
			tiled = append(tiled, i)
		}
	}

	out := make([]*Series, 0, len(idCols)+2)
	for _, col := range idCols {
		out = append(out, col.takeRows(tiled))
	}

	variable := make([]string, 0, total)
	for _, col := range valCols {
		for i := 0; i < n; i++ {
			variable = append(variable, col.name)
		}
	}
	out = append(out, NewStrings("variable", variable))

	if allNumeric {
		value := &Series{name: "value", dtype: DTypeFloat, floats: make([]float64, total), valid: make([]bool, total)}
		at := 0
		for _, col := range valCols {
			for i := 0; i < n; i++ {
				if v, ok := col.numericAt(i); ok {
					value.setFloat(at, v)
				}
				at++
			}
		}
		out = append(out, value)
	} else {
		value := &Series{name: "value", dtype: DTypeString, strs: make([]string, total), valid: make([]bool, total)}
		at := 0
		for _, col := range valCols {
			for i := 0; i < n; i++ {
				if v, ok := col.FormatCell(i); ok {
					value.setString(at, v)
				}
				at++
			}
		}
		out = append(out, value)
	}

	return New(out...)
}
