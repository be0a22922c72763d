package dataframe

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"wranglecli/internal/errors"
)

// DType identifies the element type of a Series.
type DType string

const (
	DTypeString DType = "string"
	DTypeInt    DType = "int64"
	DTypeFloat  DType = "float64"
	DTypeDate   DType = "date"
)

// DateLayout is the fixed layout for date parsing and rendering (ISO 8601,
// day precision).
const DateLayout = "2006-01-02"

// Series is a named, typed column. Exactly one backing slice is populated,
// selected by dtype; valid marks which cells hold a value. A cell with
// valid[i] == false is missing, which is distinct from any valid value.
type Series struct {
	name   string
	dtype  DType
	strs   []string
	ints   []int64
	floats []float64
	dates  []time.Time
	valid  []bool
}

// NewStrings creates a String series with every cell valid.
func NewStrings(name string, values []string) *Series {
	s := &Series{name: name, dtype: DTypeString}
	s.strs = append([]string(nil), values...)
	s.valid = allValid(len(values))
	return s
}

// NewInts creates an Int series with every cell valid.
func NewInts(name string, values []int64) *Series {
	s := &Series{name: name, dtype: DTypeInt}
	s.ints = append([]int64(nil), values...)
	s.valid = allValid(len(values))
	return s
}

// NewFloats creates a Float series. NaN inputs are stored as missing cells so
// literal tables can mark gaps the conventional way.
func NewFloats(name string, values []float64) *Series {
	s := &Series{name: name, dtype: DTypeFloat}
	s.floats = make([]float64, len(values))
	s.valid = make([]bool, len(values))
	for i, v := range values {
		if math.IsNaN(v) {
			continue
		}
		s.floats[i] = v
		s.valid[i] = true
	}
	return s
}

// NewDates creates a Date series with every cell valid. Values are truncated
// to day precision in UTC.
func NewDates(name string, values []time.Time) *Series {
	s := &Series{name: name, dtype: DTypeDate}
	s.dates = make([]time.Time, len(values))
	for i, v := range values {
		s.dates[i] = truncateToDay(v)
	}
	s.valid = allValid(len(values))
	return s
}

// NewDatesFromStrings creates a Date series by parsing ISO 8601 dates
// (layout 2006-01-02). A malformed value fails the whole construction with a
// ParseError naming the value.
func NewDatesFromStrings(name string, values []string) (*Series, error) {
	dates := make([]time.Time, len(values))
	for i, v := range values {
		d, err := time.Parse(DateLayout, v)
		if err != nil {
			return nil, errors.NewParseError(
				fmt.Sprintf("parse date %q in column %s", v, name), err).
				WithContext("column", name).
				WithContext("row", i).
				WithContext("value", v)
		}
		dates[i] = d
	}
	return NewDates(name, dates), nil
}

// NewNullableStrings creates a String series with explicit validity. A nil
// mask means every cell is valid; otherwise the mask length must match.
func NewNullableStrings(name string, values []string, valid []bool) (*Series, error) {
	if err := checkMask(name, len(values), valid); err != nil {
		return nil, err
	}
	s := NewStrings(name, values)
	applyMask(s, valid)
	return s, nil
}

// NewNullableInts creates an Int series with explicit validity.
func NewNullableInts(name string, values []int64, valid []bool) (*Series, error) {
	if err := checkMask(name, len(values), valid); err != nil {
		return nil, err
	}
	s := NewInts(name, values)
	applyMask(s, valid)
	return s, nil
}

// NewNullableFloats creates a Float series with explicit validity. NaN inputs
// are missing regardless of the mask.
func NewNullableFloats(name string, values []float64, valid []bool) (*Series, error) {
	if err := checkMask(name, len(values), valid); err != nil {
		return nil, err
	}
	s := NewFloats(name, values)
	applyMask(s, valid)
	return s, nil
}

// NewNullableDates creates a Date series with explicit validity.
func NewNullableDates(name string, values []time.Time, valid []bool) (*Series, error) {
	if err := checkMask(name, len(values), valid); err != nil {
		return nil, err
	}
	s := NewDates(name, values)
	applyMask(s, valid)
	return s, nil
}

func checkMask(name string, n int, valid []bool) error {
	if valid != nil && len(valid) != n {
		return errors.NewSchemaError(
			fmt.Sprintf("validity mask length %d does not match %d values in column %s", len(valid), n, name), nil).
			WithContext("column", name)
	}
	return nil
}

func applyMask(s *Series, valid []bool) {
	if valid == nil {
		return
	}
	for i, ok := range valid {
		if !ok {
			s.setNull(i)
		}
	}
}

func allValid(n int) []bool {
	valid := make([]bool, n)
	for i := range valid {
		valid[i] = true
	}
	return valid
}

func truncateToDay(v time.Time) time.Time {
	y, m, d := v.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Name returns the column name.
func (s *Series) Name() string { return s.name }

// DType returns the element type.
func (s *Series) DType() DType { return s.dtype }

// Len returns the number of cells, missing included.
func (s *Series) Len() int { return len(s.valid) }

// IsNull reports whether cell i is missing.
func (s *Series) IsNull(i int) bool { return !s.valid[i] }

// IsNumeric reports whether the series holds Int or Float values.
func (s *Series) IsNumeric() bool { return s.dtype == DTypeInt || s.dtype == DTypeFloat }

// NullCount returns the number of missing cells.
func (s *Series) NullCount() int {
	count := 0
	for _, ok := range s.valid {
		if !ok {
			count++
		}
	}
	return count
}

// StringAt returns the value of cell i. ok is false when the cell is missing
// or the series is not a String series.
func (s *Series) StringAt(i int) (string, bool) {
	if s.dtype != DTypeString || !s.valid[i] {
		return "", false
	}
	return s.strs[i], true
}

// IntAt returns the value of cell i. ok is false when the cell is missing or
// the series is not an Int series.
func (s *Series) IntAt(i int) (int64, bool) {
	if s.dtype != DTypeInt || !s.valid[i] {
		return 0, false
	}
	return s.ints[i], true
}

// FloatAt returns the value of cell i. ok is false when the cell is missing
// or the series is not a Float series.
func (s *Series) FloatAt(i int) (float64, bool) {
	if s.dtype != DTypeFloat || !s.valid[i] {
		return 0, false
	}
	return s.floats[i], true
}

// DateAt returns the value of cell i. ok is false when the cell is missing or
// the series is not a Date series.
func (s *Series) DateAt(i int) (time.Time, bool) {
	if s.dtype != DTypeDate || !s.valid[i] {
		return time.Time{}, false
	}
	return s.dates[i], true
}

// Value returns cell i as an untyped value: string, int64, float64 or
// time.Time, or nil when the cell is missing.
func (s *Series) Value(i int) interface{} {
	if !s.valid[i] {
		return nil
	}
	switch s.dtype {
	case DTypeString:
		return s.strs[i]
	case DTypeInt:
		return s.ints[i]
	case DTypeFloat:
		return s.floats[i]
	default:
		return s.dates[i]
	}
}

// numericAt widens Int cells so numeric operations treat Int and Float
// columns uniformly. ok is false for missing cells and non-numeric series.
func (s *Series) numericAt(i int) (float64, bool) {
	if !s.valid[i] {
		return 0, false
	}
	switch s.dtype {
	case DTypeInt:
		return float64(s.ints[i]), true
	case DTypeFloat:
		return s.floats[i], true
	default:
		return 0, false
	}
}

// nonMissing returns the valid numeric values in row order.
func (s *Series) nonMissing() []float64 {
	values := make([]float64, 0, s.Len())
	for i := 0; i < s.Len(); i++ {
		if v, ok := s.numericAt(i); ok {
			values = append(values, v)
		}
	}
	return values
}

func (s *Series) setNull(i int) {
	s.valid[i] = false
	switch s.dtype {
	case DTypeString:
		s.strs[i] = ""
	case DTypeInt:
		s.ints[i] = 0
	case DTypeFloat:
		s.floats[i] = 0
	case DTypeDate:
		s.dates[i] = time.Time{}
	}
}

func (s *Series) setString(i int, v string) {
	s.strs[i] = v
	s.valid[i] = true
}

func (s *Series) setInt(i int, v int64) {
	s.ints[i] = v
	s.valid[i] = true
}

func (s *Series) setFloat(i int, v float64) {
	s.floats[i] = v
	s.valid[i] = true
}

func (s *Series) setDate(i int, v time.Time) {
	s.dates[i] = truncateToDay(v)
	s.valid[i] = true
}

// setNumeric stores v into an Int or Float cell. Int cells truncate toward
// zero, matching the Cast rule.
func (s *Series) setNumeric(i int, v float64) {
	if s.dtype == DTypeInt {
		s.setInt(i, int64(v))
		return
	}
	s.setFloat(i, v)
}

// Clone returns a deep copy sharing no storage with the receiver.
func (s *Series) Clone() *Series {
	c := &Series{name: s.name, dtype: s.dtype}
	c.strs = append([]string(nil), s.strs...)
	c.ints = append([]int64(nil), s.ints...)
	c.floats = append([]float64(nil), s.floats...)
	c.dates = append([]time.Time(nil), s.dates...)
	c.valid = append([]bool(nil), s.valid...)
	return c
}

// Rename returns a clone of the series under a new name.
func (s *Series) Rename(name string) *Series {
	c := s.Clone()
	c.name = name
	return c
}

// Equal reports whether two series have the same name, dtype, length and
// cells. Missing cells compare equal only to missing cells.
func (s *Series) Equal(other *Series) bool {
	if s.name != other.name || s.dtype != other.dtype || s.Len() != other.Len() {
		return false
	}
	for i := 0; i < s.Len(); i++ {
		if !cellsEqual(s, other, i, i) {
			return false
		}
	}
	return true
}

// cellsEqual compares cell i of a with cell j of b. The series must share a
// dtype; missing equals only missing.
func cellsEqual(a, b *Series, i, j int) bool {
	if a.valid[i] != b.valid[j] {
		return false
	}
	if !a.valid[i] {
		return true
	}
	switch a.dtype {
	case DTypeString:
		return a.strs[i] == b.strs[j]
	case DTypeInt:
		return a.ints[i] == b.ints[j]
	case DTypeFloat:
		return a.floats[i] == b.floats[j]
	default:
		return a.dates[i].Equal(b.dates[j])
	}
}

// FormatCell renders cell i as text. ok is false for missing cells. Floats
// use the shortest representation that round-trips; dates use the ISO layout.
func (s *Series) FormatCell(i int) (string, bool) {
	if !s.valid[i] {
		return "", false
	}
	switch s.dtype {
	case DTypeString:
		return s.strs[i], true
	case DTypeInt:
		return strconv.FormatInt(s.ints[i], 10), true
	case DTypeFloat:
		return strconv.FormatFloat(s.floats[i], 'g', -1, 64), true
	default:
		return s.dates[i].Format(DateLayout), true
	}
}

// takeRows builds a new series from the cells at the given row indices, in
// index order. An index of -1 yields a missing cell; joins use it to attach
// unmatched rows.
func (s *Series) takeRows(indices []int) *Series {
	out := emptyLike(s, len(indices))
	for outRow, i := range indices {
		if i < 0 || !s.valid[i] {
			continue
		}
		switch s.dtype {
		case DTypeString:
			out.setString(outRow, s.strs[i])
		case DTypeInt:
			out.setInt(outRow, s.ints[i])
		case DTypeFloat:
			out.setFloat(outRow, s.floats[i])
		default:
			out.setDate(outRow, s.dates[i])
		}
	}
	return out
}

// emptyLike builds an all-missing series with the name and dtype of the
// model and the given length.
func emptyLike(model *Series, n int) *Series {
	s := &Series{name: model.name, dtype: model.dtype, valid: make([]bool, n)}
	switch model.dtype {
	case DTypeString:
		s.strs = make([]string, n)
	case DTypeInt:
		s.ints = make([]int64, n)
	case DTypeFloat:
		s.floats = make([]float64, n)
	default:
		s.dates = make([]time.Time, n)
	}
	return s
}
