package dataframe

import (
	"fmt"

	"wranglecli/internal/errors"
)

type predicateKind int

const (
	predGreaterThan predicateKind = iota
	predLessThan
	predEqualTo
	predEqualToString
)

// Predicate is a row condition over a single column. Numeric predicates apply
// to Int and Float columns, EqualToString to String columns; a missing cell
// never satisfies a predicate.
type Predicate struct {
	kind predicateKind
	num  float64
	str  string
}

// GreaterThan matches numeric cells strictly above v.
func GreaterThan(v float64) Predicate { return Predicate{kind: predGreaterThan, num: v} }

// LessThan matches numeric cells strictly below v.
func LessThan(v float64) Predicate { return Predicate{kind: predLessThan, num: v} }

// EqualTo matches numeric cells equal to v.
func EqualTo(v float64) Predicate { return Predicate{kind: predEqualTo, num: v} }

// EqualToString matches string cells equal to v.
func EqualToString(v string) Predicate { return Predicate{kind: predEqualToString, str: v} }

func (p Predicate) String() string {
	switch p.kind {
	case predGreaterThan:
		return fmt.Sprintf("> %g", p.num)
	case predLessThan:
		return fmt.Sprintf("< %g", p.num)
	case predEqualTo:
		return fmt.Sprintf("== %g", p.num)
	default:
		return fmt.Sprintf("== %q", p.str)
	}
}

func (p Predicate) matches(col *Series, i int) bool {
	if p.kind == predEqualToString {
		v, ok := col.StringAt(i)
		return ok && v == p.str
	}
	v, ok := col.numericAt(i)
	if !ok {
		return false
	}
	switch p.kind {
	case predGreaterThan:
		return v > p.num
	case predLessThan:
		return v < p.num
	default:
		return v == p.num
	}
}

func (p Predicate) compatible(col *Series) bool {
	if p.kind == predEqualToString {
		return col.dtype == DTypeString
	}
	return col.IsNumeric()
}

// Filter returns a new frame with the rows whose cell in the named column
// satisfies the predicate, order preserved. Missing cells never match. An
// empty result is a valid frame. Applying a predicate to a column of the
// wrong dtype is a SchemaError.
func (df *DataFrame) Filter(name string, pred Predicate) (*DataFrame, error) {
	col, err := df.Column(name)
	if err != nil {
		return nil, err
	}
	if !pred.compatible(col) {
		return nil, errors.NewSchemaError(
			fmt.Sprintf("predicate %s does not apply to column %s (%s)", pred, name, col.dtype), nil).
			WithContext("column", name)
	}

	indices := make([]int, 0, df.NumRows())
	for i := 0; i < df.NumRows(); i++ {
		if pred.matches(col, i) {
			indices = append(indices, i)
		}
	}
	return df.selectRows(indices), nil
}
