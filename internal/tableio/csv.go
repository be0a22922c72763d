package tableio

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"

	"wranglecli/internal/dataframe"
	"wranglecli/internal/errors"
)

// WriteCSV serializes the frame to a comma-separated text file: a header row
// of column names, then one row per frame row, no index column. Missing cells
// become empty fields; floats use the shortest text that parses back to the
// same value; dates use the ISO layout.
func WriteCSV(df *dataframe.DataFrame, path string) error {
	if err := checkWritable(df); err != nil {
		return err
	}

	slog.Info("writing CSV file",
		slog.String("path", path),
		slog.Int("rows", df.NumRows()),
		slog.Int("columns", df.NumCols()))

	file, err := os.Create(path)
	if err != nil {
		return errors.NewStorageError(fmt.Sprintf("create %s", path), err).
			WithContext("path", path)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(df.ColumnNames()); err != nil {
		return errors.NewStorageError(fmt.Sprintf("write header to %s", path), err).
			WithContext("path", path)
	}

	cols := df.Columns()
	record := make([]string, len(cols))
	for i := 0; i < df.NumRows(); i++ {
		for c, col := range cols {
			text, ok := col.FormatCell(i)
			if !ok {
				text = ""
			}
			record[c] = text
		}
		if err := writer.Write(record); err != nil {
			return errors.NewStorageError(fmt.Sprintf("write row %d to %s", i, path), err).
				WithContext("path", path).
				WithContext("row", i)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return errors.NewStorageError(fmt.Sprintf("flush %s", path), err).
			WithContext("path", path)
	}
	return file.Close()
}

// ReadCSV loads a frame from a comma-separated text file written the WriteCSV
// way: first row column names, empty fields missing. Column dtypes come from
// opts.DTypes where given and are inferred from the cell text otherwise.
func ReadCSV(path string, opts ReadOptions) (*dataframe.DataFrame, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.NewStorageError(fmt.Sprintf("open %s", path), err).
			WithContext("path", path)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, errors.NewParseError(fmt.Sprintf("read %s as CSV", path), err).
			WithContext("path", path)
	}
	if len(records) == 0 {
		return nil, errors.NewParseError(fmt.Sprintf("%s has no header row", path), nil).
			WithContext("path", path)
	}

	df, err := buildFrame(records[0], records[1:], opts)
	if err != nil {
		return nil, err
	}

	slog.Debug("read CSV file",
		slog.String("path", path),
		slog.Int("rows", df.NumRows()),
		slog.Int("columns", df.NumCols()))
	return df, nil
}

// checkWritable rejects frames no on-disk format can represent.
func checkWritable(df *dataframe.DataFrame) error {
	if df.NumCols() == 0 {
		return errors.NewSchemaError("cannot serialize a frame with no columns", nil)
	}
	return nil
}
