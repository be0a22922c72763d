package tableio

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"wranglecli/internal/dataframe"
	"wranglecli/internal/errors"
)

// declaredType maps a dtype onto the SQLite column declaration the reader
// later restores it from.
func declaredType(dtype dataframe.DType) string {
	switch dtype {
	case dataframe.DTypeString:
		return "TEXT"
	case dataframe.DTypeInt:
		return "INTEGER"
	case dataframe.DTypeFloat:
		return "REAL"
	default:
		return "DATE"
	}
}

// quoteIdent quotes a SQLite identifier, doubling embedded quotes. Column
// names like "Employee Name" need this.
func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// WriteSQLite serializes the frame into one table of a SQLite database,
// replacing any previous table of that name. Columns keep their declared
// types (TEXT, INTEGER, REAL, DATE), missing cells are NULL, dates are ISO
// text. All inserts run in a single transaction.
func WriteSQLite(ctx context.Context, df *dataframe.DataFrame, path, table string) error {
	if err := checkWritable(df); err != nil {
		return err
	}
	if strings.TrimSpace(table) == "" {
		return errors.NewSchemaError("table name must not be empty", nil)
	}

	slog.Info("writing SQLite table",
		slog.String("path", path),
		slog.String("table", table),
		slog.Int("rows", df.NumRows()),
		slog.Int("columns", df.NumCols()))

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return errors.NewStorageError(fmt.Sprintf("open %s", path), err).
			WithContext("path", path)
	}
	defer db.Close()

	cols := df.Columns()
	decls := make([]string, len(cols))
	names := make([]string, len(cols))
	placeholders := make([]string, len(cols))
	for c, col := range cols {
		decls[c] = quoteIdent(col.Name()) + " " + declaredType(col.DType())
		names[c] = quoteIdent(col.Name())
		placeholders[c] = "?"
	}

	if _, err := db.ExecContext(ctx, fmt.Sprintf("DROP TABLE IF EXISTS %s", quoteIdent(table))); err != nil {
		return errors.NewStorageError(fmt.Sprintf("drop table %s", table), err).
			WithContext("table", table)
	}
	createSQL := fmt.Sprintf("CREATE TABLE %s (%s)", quoteIdent(table), strings.Join(decls, ", "))
	if _, err := db.ExecContext(ctx, createSQL); err != nil {
		return errors.NewStorageError(fmt.Sprintf("create table %s", table), err).
			WithContext("table", table)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return errors.NewStorageError("begin transaction", err).
			WithContext("table", table)
	}
	insertSQL := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		quoteIdent(table), strings.Join(names, ", "), strings.Join(placeholders, ", "))
	stmt, err := tx.PrepareContext(ctx, insertSQL)
	if err != nil {
		tx.Rollback()
		return errors.NewStorageError("prepare insert", err).
			WithContext("table", table)
	}
	defer stmt.Close()

	args := make([]interface{}, len(cols))
	for i := 0; i < df.NumRows(); i++ {
		for c, col := range cols {
			args[c] = sqliteValue(col, i)
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			tx.Rollback()
			return errors.NewStorageError(fmt.Sprintf("insert row %d", i), err).
				WithContext("table", table).
				WithContext("row", i)
		}
	}
	if err := tx.Commit(); err != nil {
		return errors.NewStorageError("commit transaction", err).
			WithContext("table", table)
	}
	return nil
}

// sqliteValue returns the driver value for one cell, nil for missing.
func sqliteValue(col *dataframe.Series, i int) interface{} {
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

// ReadSQLite loads a table written by WriteSQLite back into a frame. Column
// dtypes come from the declared types reported by PRAGMA table_info; rows
// come back in insertion order. A declared type outside the writer's mapping
// is a ConversionError.
func ReadSQLite(ctx context.Context, path, table string) (*dataframe.DataFrame, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.NewStorageError(fmt.Sprintf("open %s", path), err).
			WithContext("path", path)
	}
	defer db.Close()

	names, dtypes, err := tableSchema(ctx, db, table)
	if err != nil {
		return nil, err
	}

	quoted := make([]string, len(names))
	for c, name := range names {
		quoted[c] = quoteIdent(name)
	}
	selectSQL := fmt.Sprintf("SELECT %s FROM %s ORDER BY rowid",
		strings.Join(quoted, ", "), quoteIdent(table))
	rows, err := db.QueryContext(ctx, selectSQL)
	if err != nil {
		return nil, errors.NewStorageError(fmt.Sprintf("select from table %s", table), err).
			WithContext("table", table)
	}
	defer rows.Close()

	collectors := make([]*columnCollector, len(names))
	for c, name := range names {
		collectors[c] = &columnCollector{name: name, dtype: dtypes[c]}
	}
	holders := make([]interface{}, len(names))
	for rowNum := 0; rows.Next(); rowNum++ {
		for c, dtype := range dtypes {
			switch dtype {
			case dataframe.DTypeInt:
				holders[c] = new(sql.NullInt64)
			case dataframe.DTypeFloat:
				holders[c] = new(sql.NullFloat64)
			default:
				holders[c] = new(sql.NullString)
			}
		}
		if err := rows.Scan(holders...); err != nil {
			return nil, errors.NewStorageError(fmt.Sprintf("scan row of table %s", table), err).
				WithContext("table", table)
		}
		for c, collector := range collectors {
			if err := collector.collectSQL(holders[c], rowNum); err != nil {
				return nil, err
			}
		}
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewStorageError(fmt.Sprintf("iterate table %s", table), err).
			WithContext("table", table)
	}

	series := make([]*dataframe.Series, len(collectors))
	for c, collector := range collectors {
		col, err := collector.series()
		if err != nil {
			return nil, err
		}
		series[c] = col
	}

	df, err := dataframe.New(series...)
	if err != nil {
		return nil, err
	}
	slog.Debug("read SQLite table",
		slog.String("path", path),
		slog.String("table", table),
		slog.Int("rows", df.NumRows()))
	return df, nil
}

// tableSchema restores column names and dtypes from the declared types.
func tableSchema(ctx context.Context, db *sql.DB, table string) ([]string, []dataframe.DType, error) {
	rows, err := db.QueryContext(ctx, fmt.Sprintf("PRAGMA table_info(%s)", quoteIdent(table)))
	if err != nil {
		return nil, nil, errors.NewStorageError(fmt.Sprintf("inspect table %s", table), err).
			WithContext("table", table)
	}
	defer rows.Close()

	var names []string
	var dtypes []dataframe.DType
	for rows.Next() {
		var (
			cid      int
			name     string
			declared string
			notNull  int
			dflt     sql.NullString
			pk       int
		)
		if err := rows.Scan(&cid, &name, &declared, &notNull, &dflt, &pk); err != nil {
			return nil, nil, errors.NewStorageError(fmt.Sprintf("inspect table %s", table), err).
				WithContext("table", table)
		}
		var dtype dataframe.DType
		switch strings.ToUpper(declared) {
		case "TEXT":
			dtype = dataframe.DTypeString
		case "INTEGER":
			dtype = dataframe.DTypeInt
		case "REAL":
			dtype = dataframe.DTypeFloat
		case "DATE":
			dtype = dataframe.DTypeDate
		default:
			return nil, nil, errors.NewConversionError(
				fmt.Sprintf("column %s of table %s has unsupported declared type %q", name, table, declared), nil).
				WithContext("table", table).
				WithContext("column", name)
		}
		names = append(names, name)
		dtypes = append(dtypes, dtype)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, errors.NewStorageError(fmt.Sprintf("inspect table %s", table), err).
			WithContext("table", table)
	}
	if len(names) == 0 {
		return nil, nil, errors.NewStorageError(fmt.Sprintf("table %s does not exist", table), nil).
			WithContext("table", table)
	}
	return names, dtypes, nil
}

// collectSQL appends one scanned database value onto the collector.
func (c *columnCollector) collectSQL(holder interface{}, row int) error {
	switch c.dtype {
	case dataframe.DTypeString:
		v := holder.(*sql.NullString)
		c.valid = append(c.valid, v.Valid)
		c.strs = append(c.strs, v.String)
	case dataframe.DTypeInt:
		v := holder.(*sql.NullInt64)
		c.valid = append(c.valid, v.Valid)
		c.ints = append(c.ints, v.Int64)
	case dataframe.DTypeFloat:
		v := holder.(*sql.NullFloat64)
		c.valid = append(c.valid, v.Valid)
		c.floats = append(c.floats, v.Float64)
	default:
		v := holder.(*sql.NullString)
		if !v.Valid {
			c.valid = append(c.valid, false)
			c.dates = append(c.dates, time.Time{})
			return nil
		}
		d, err := time.Parse(dataframe.DateLayout, v.String)
		if err != nil {
			return errors.NewParseError(
				fmt.Sprintf("parse date %q in column %s", v.String, c.name), err).
				WithContext("column", c.name).
				WithContext("row", row).
				WithContext("value", v.String)
		}
		c.valid = append(c.valid, true)
		c.dates = append(c.dates, d)
	}
	return nil
}
