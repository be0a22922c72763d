package tableio

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/apache/arrow/go/v15/arrow"
	"github.com/apache/arrow/go/v15/arrow/array"
	"github.com/apache/arrow/go/v15/arrow/ipc"
	"github.com/apache/arrow/go/v15/arrow/memory"

	"wranglecli/internal/dataframe"
	"wranglecli/internal/errors"
)

// arrowSchema maps the frame's columns onto an Arrow schema: String to utf8,
// Int to int64, Float to float64, Date to date32, every field nullable.
func arrowSchema(df *dataframe.DataFrame) *arrow.Schema {
	fields := make([]arrow.Field, 0, df.NumCols())
	for _, col := range df.Columns() {
		var dtype arrow.DataType
		switch col.DType() {
		case dataframe.DTypeString:
			dtype = arrow.BinaryTypes.String
		case dataframe.DTypeInt:
			dtype = arrow.PrimitiveTypes.Int64
		case dataframe.DTypeFloat:
			dtype = arrow.PrimitiveTypes.Float64
		default:
			dtype = arrow.FixedWidthTypes.Date32
		}
		fields = append(fields, arrow.Field{
			Name:     col.Name(),
			Type:     dtype,
			Nullable: true,
		})
	}
	return arrow.NewSchema(fields, nil)
}

// WriteArrow serializes the frame to path as an Arrow IPC file holding one
// record batch. Dtypes, values and missing cells round-trip exactly; this is
// the native binary format.
func WriteArrow(df *dataframe.DataFrame, path string) error {
	if err := checkWritable(df); err != nil {
		return err
	}

	slog.Info("writing Arrow file",
		slog.String("path", path),
		slog.Int("rows", df.NumRows()),
		slog.Int("columns", df.NumCols()))

	schema := arrowSchema(df)
	builder := array.NewRecordBuilder(memory.DefaultAllocator, schema)
	defer builder.Release()

	for c, col := range df.Columns() {
		appendColumn(builder.Field(c), col)
	}
	record := builder.NewRecord()
	defer record.Release()

	file, err := os.Create(path)
	if err != nil {
		return errors.NewStorageError(fmt.Sprintf("create %s", path), err).
			WithContext("path", path)
	}

	writer, err := ipc.NewFileWriter(file, ipc.WithSchema(schema), ipc.WithAllocator(memory.DefaultAllocator))
	if err != nil {
		file.Close()
		return errors.NewStorageError(fmt.Sprintf("open Arrow writer on %s", path), err).
			WithContext("path", path)
	}
	if err := writer.Write(record); err != nil {
		writer.Close()
		file.Close()
		return errors.NewStorageError(fmt.Sprintf("write record batch to %s", path), err).
			WithContext("path", path)
	}
	if err := writer.Close(); err != nil {
		file.Close()
		return errors.NewStorageError(fmt.Sprintf("finalize Arrow file %s", path), err).
			WithContext("path", path)
	}
	return file.Close()
}

// appendColumn feeds one series into the matching record-builder field,
// missing cells as nulls.
func appendColumn(fb array.Builder, col *dataframe.Series) {
	for i := 0; i < col.Len(); i++ {
		if col.IsNull(i) {
			fb.AppendNull()
			continue
		}
		switch b := fb.(type) {
		case *array.StringBuilder:
			v, _ := col.StringAt(i)
			b.Append(v)
		case *array.Int64Builder:
			v, _ := col.IntAt(i)
			b.Append(v)
		case *array.Float64Builder:
			v, _ := col.FloatAt(i)
			b.Append(v)
		case *array.Date32Builder:
			v, _ := col.DateAt(i)
			b.Append(arrow.Date32FromTime(v))
		}
	}
}

// ReadArrow loads a frame from an Arrow IPC file. Every record batch in the
// file contributes rows in batch order. Fields outside the engine's type
// mapping (utf8, int64, float64, date32) are a ConversionError.
func ReadArrow(path string) (*dataframe.DataFrame, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.NewStorageError(fmt.Sprintf("open %s", path), err).
			WithContext("path", path)
	}
	defer file.Close()

	reader, err := ipc.NewFileReader(file, ipc.WithAllocator(memory.DefaultAllocator))
	if err != nil {
		return nil, errors.NewParseError(fmt.Sprintf("read %s as Arrow", path), err).
			WithContext("path", path)
	}
	defer reader.Close()

	schema := reader.Schema()
	collectors := make([]*columnCollector, len(schema.Fields()))
	for c, field := range schema.Fields() {
		collector, err := newColumnCollector(field)
		if err != nil {
			return nil, err
		}
		collectors[c] = collector
	}

	for r := 0; r < reader.NumRecords(); r++ {
		record, err := reader.RecordAt(r)
		if err != nil {
			return nil, errors.NewParseError(
				fmt.Sprintf("read record batch %d of %s", r, path), err).
				WithContext("path", path)
		}
		for c, collector := range collectors {
			collector.collect(record.Column(c))
		}
		record.Release()
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
	slog.Debug("read Arrow file",
		slog.String("path", path),
		slog.Int("rows", df.NumRows()),
		slog.Int("columns", df.NumCols()))
	return df, nil
}

// columnCollector accumulates one column's cells across record batches.
type columnCollector struct {
	name   string
	dtype  dataframe.DType
	strs   []string
	ints   []int64
	floats []float64
	dates  []time.Time
	valid  []bool
}

func newColumnCollector(field arrow.Field) (*columnCollector, error) {
	collector := &columnCollector{name: field.Name}
	switch field.Type.ID() {
	case arrow.STRING:
		collector.dtype = dataframe.DTypeString
	case arrow.INT64:
		collector.dtype = dataframe.DTypeInt
	case arrow.FLOAT64:
		collector.dtype = dataframe.DTypeFloat
	case arrow.DATE32:
		collector.dtype = dataframe.DTypeDate
	default:
		return nil, errors.NewConversionError(
			fmt.Sprintf("Arrow field %s has unsupported type %s", field.Name, field.Type), nil).
			WithContext("column", field.Name)
	}
	return collector, nil
}

func (c *columnCollector) collect(arr arrow.Array) {
	for i := 0; i < arr.Len(); i++ {
		c.valid = append(c.valid, !arr.IsNull(i))
	}
	switch a := arr.(type) {
	case *array.String:
		for i := 0; i < a.Len(); i++ {
			if a.IsNull(i) {
				c.strs = append(c.strs, "")
				continue
			}
			c.strs = append(c.strs, a.Value(i))
		}
	case *array.Int64:
		for i := 0; i < a.Len(); i++ {
			if a.IsNull(i) {
				c.ints = append(c.ints, 0)
				continue
			}
			c.ints = append(c.ints, a.Value(i))
		}
	case *array.Float64:
		for i := 0; i < a.Len(); i++ {
			if a.IsNull(i) {
				c.floats = append(c.floats, 0)
				continue
			}
			c.floats = append(c.floats, a.Value(i))
		}
	case *array.Date32:
		for i := 0; i < a.Len(); i++ {
			if a.IsNull(i) {
				c.dates = append(c.dates, time.Time{})
				continue
			}
			c.dates = append(c.dates, a.Value(i).ToTime())
		}
	}
}

func (c *columnCollector) series() (*dataframe.Series, error) {
	switch c.dtype {
	case dataframe.DTypeString:
		return dataframe.NewNullableStrings(c.name, c.strs, c.valid)
	case dataframe.DTypeInt:
		return dataframe.NewNullableInts(c.name, c.ints, c.valid)
	case dataframe.DTypeFloat:
		return dataframe.NewNullableFloats(c.name, c.floats, c.valid)
	default:
		return dataframe.NewNullableDates(c.name, c.dates, c.valid)
	}
}
