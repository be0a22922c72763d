// Package tableio persists dataframes to disk and loads them back.
//
// Four formats are supported, each with a writer and a reader:
//
// CSV: comma-separated text with a header row and no index column. Missing
// cells are empty fields. The reader infers column dtypes from the cell text,
// or takes an explicit schema via ReadOptions.
//
// Arrow: the Arrow IPC file format, the native binary serialization. Column
// dtypes, values and missing cells round-trip exactly.
//
// Excel: a single-sheet XLSX workbook with a header row and typed cells.
// Reading goes through the same dtype inference as CSV.
//
// SQLite: one database table with declared column types, written in a single
// transaction. Reading restores dtypes from the declared types, so values and
// missing cells round-trip exactly.
//
// # Round-trip guarantees
//
// Arrow and SQLite reproduce the frame exactly: dtypes, values, and missing
// cells. The text formats (CSV, Excel) reproduce values subject to a
// documented widening rule: without an explicit schema, a column whose cells
// all render as integers reads back as Int, while float-formatted integers
// such as "32.0" read back as Float unless the caller retypes the column. A
// valid empty string is indistinguishable from a missing cell in text output,
// so it reads back as missing.
//
// Example round-trip:
//
//	if err := tableio.WriteCSV(df, "cleaned_data.csv"); err != nil {
//		return err
//	}
//	loaded, err := tableio.ReadCSV("cleaned_data.csv", tableio.ReadOptions{})
//
// Failures carry the application error taxonomy: file and database problems
// are STORAGE errors, unreadable content is a PARSE error, and unsupported
// type mappings are CONVERSION errors.
package tableio
