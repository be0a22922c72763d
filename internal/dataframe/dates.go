package dataframe

import (
	"fmt"
	"time"

	"wranglecli/internal/errors"
)

// ParseDates adds a Date column dst by parsing a String column as ISO 8601
// dates (layout 2006-01-02). A malformed value fails the whole operation with
// a ParseError naming the value; missing cells propagate. dst must be a fresh
// name, or equal src to replace the text column with its parsed form.
func (df *DataFrame) ParseDates(dst, src string) error {
	col, err := df.Column(src)
	if err != nil {
		return err
	}
	if col.dtype != DTypeString {
		return errors.NewSchemaError(
			fmt.Sprintf("date parsing requires a string column, %s is %s", src, col.dtype), nil).
			WithContext("column", src)
	}

	out := &Series{name: dst, dtype: DTypeDate, dates: make([]time.Time, col.Len()), valid: make([]bool, col.Len())}
	for i := 0; i < col.Len(); i++ {
		v, ok := col.StringAt(i)
		if !ok {
			continue
		}
		d, err := time.Parse(DateLayout, v)
		if err != nil {
			return errors.NewParseError(
				fmt.Sprintf("parse date %q in column %s", v, src), err).
				WithContext("column", src).
				WithContext("row", i).
				WithContext("value", v)
		}
		out.setDate(i, d)
	}
	return df.attachDerived(src, out)
}

// ExtractYear adds an Int column dst holding the calendar year of a Date
// column. Missing cells propagate. dst must be a fresh name, or equal src to
// replace it.
func (df *DataFrame) ExtractYear(dst, src string) error {
	col, err := df.Column(src)
	if err != nil {
		return err
	}
	if col.dtype != DTypeDate {
		return errors.NewSchemaError(
			fmt.Sprintf("year extraction requires a date column, %s is %s", src, col.dtype), nil).
			WithContext("column", src)
	}

	out := &Series{name: dst, dtype: DTypeInt, ints: make([]int64, col.Len()), valid: make([]bool, col.Len())}
	for i := 0; i < col.Len(); i++ {
		if d, ok := col.DateAt(i); ok {
			out.setInt(i, int64(d.Year()))
		}
	}
	return df.attachDerived(src, out)
}
