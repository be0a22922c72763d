package tableio

import (
	"fmt"
	"log/slog"

	"github.com/xuri/excelize/v2"

	"wranglecli/internal/dataframe"
	"wranglecli/internal/errors"
)

// excelSheet is the sheet both the writer and the reader use.
const excelSheet = "Sheet1"

// WriteExcel serializes the frame to a single-sheet XLSX workbook: a header
// row, then one spreadsheet row per frame row. String, Int and Float cells
// are typed; dates are written as ISO strings; missing cells stay empty.
func WriteExcel(df *dataframe.DataFrame, path string) error {
	if err := checkWritable(df); err != nil {
		return err
	}

	slog.Info("writing Excel file",
		slog.String("path", path),
		slog.Int("rows", df.NumRows()),
		slog.Int("columns", df.NumCols()))

	file := excelize.NewFile()
	defer file.Close()

	header := make([]interface{}, df.NumCols())
	for c, name := range df.ColumnNames() {
		header[c] = name
	}
	if err := file.SetSheetRow(excelSheet, "A1", &header); err != nil {
		return errors.NewStorageError(fmt.Sprintf("write header to %s", path), err).
			WithContext("path", path)
	}

	cols := df.Columns()
	for i := 0; i < df.NumRows(); i++ {
		row := make([]interface{}, len(cols))
		for c, col := range cols {
			row[c] = excelCell(col, i)
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return errors.NewStorageError(fmt.Sprintf("address row %d of %s", i, path), err).
				WithContext("path", path).
				WithContext("row", i)
		}
		if err := file.SetSheetRow(excelSheet, cell, &row); err != nil {
			return errors.NewStorageError(fmt.Sprintf("write row %d to %s", i, path), err).
				WithContext("path", path).
				WithContext("row", i)
		}
	}

	if err := file.SaveAs(path); err != nil {
		return errors.NewStorageError(fmt.Sprintf("save %s", path), err).
			WithContext("path", path)
	}
	return nil
}

// excelCell returns the typed value for one cell, nil for missing.
func excelCell(col *dataframe.Series, i int) interface{} {
	if col.IsNull(i) {
		return nil
	}
	switch col.DType() {
	case dataframe.DTypeString:
		v, _ := col.StringAt(i)
		return v
	case dataframe.DTypeInt:
		v, _ := col.IntAt(i)
		return v
	case dataframe.DTypeFloat:
		v, _ := col.FloatAt(i)
		return v
	default:
		v, _ := col.DateAt(i)
		return v.Format(dataframe.DateLayout)
	}
}

// ReadExcel loads a frame from the first sheet of an XLSX workbook written
// the WriteExcel way. Cell text goes through the same dtype inference as the
// CSV reader, with the same widening caveats; opts.DTypes pins columns.
func ReadExcel(path string, opts ReadOptions) (*dataframe.DataFrame, error) {
	file, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.NewStorageError(fmt.Sprintf("open %s", path), err).
			WithContext("path", path)
	}
	defer file.Close()

	sheets := file.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.NewParseError(fmt.Sprintf("%s has no sheets", path), nil).
			WithContext("path", path)
	}
	rows, err := file.GetRows(sheets[0])
	if err != nil {
		return nil, errors.NewParseError(
			fmt.Sprintf("read sheet %s of %s", sheets[0], path), err).
			WithContext("path", path)
	}
	if len(rows) == 0 {
		return nil, errors.NewParseError(fmt.Sprintf("%s has no header row", path), nil).
			WithContext("path", path)
	}

	df, err := buildFrame(rows[0], rows[1:], opts)
	if err != nil {
		return nil, err
	}

	slog.Debug("read Excel file",
		slog.String("path", path),
		slog.String("sheet", sheets[0]),
		slog.Int("rows", df.NumRows()),
		slog.Int("columns", df.NumCols()))
	return df, nil
}
