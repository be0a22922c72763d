package dataframe

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// missingCell is the rendering of a missing value in text output.
const missingCell = "<NA>"

// String renders the frame as an aligned text table with a leading row-index
// column. Missing cells render as <NA>.
func (df *DataFrame) String() string {
	rows := df.NumRows()

	cells := make([][]string, len(df.cols))
	widths := make([]int, len(df.cols))
	for c, col := range df.cols {
		cells[c] = make([]string, rows)
		widths[c] = len(col.name)
		for i := 0; i < rows; i++ {
			text, ok := col.FormatCell(i)
			if !ok {
				text = missingCell
			}
			cells[c][i] = text
			if len(text) > widths[c] {
				widths[c] = len(text)
			}
		}
	}

	idxWidth := len(strconv.Itoa(maxInt(rows-1, 0)))

	var b strings.Builder
	b.WriteString(strings.Repeat(" ", idxWidth))
	for c, col := range df.cols {
		fmt.Fprintf(&b, "  %*s", widths[c], col.name)
	}
	b.WriteByte('\n')
	for i := 0; i < rows; i++ {
		fmt.Fprintf(&b, "%*d", idxWidth, i)
		for c := range df.cols {
			fmt.Fprintf(&b, "  %*s", widths[c], cells[c][i])
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// Info writes a structural summary: shape, then per-column position, name,
// non-null count and dtype.
func (df *DataFrame) Info(w io.Writer) {
	fmt.Fprintf(w, "DataFrame: %d rows, %d columns\n", df.NumRows(), df.NumCols())

	nameWidth := len("Column")
	for _, col := range df.cols {
		if len(col.name) > nameWidth {
			nameWidth = len(col.name)
		}
	}

	fmt.Fprintf(w, " #  %-*s  Non-Null  DType\n", nameWidth, "Column")
	for i, col := range df.cols {
		fmt.Fprintf(w, "%2d  %-*s  %8d  %s\n", i, nameWidth, col.name, col.Len()-col.NullCount(), col.dtype)
	}
}
