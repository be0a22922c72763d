// Package dataframe provides a typed, columnar table engine for data wrangling.
// It implements the complete cleaning lifecycle: missing-value handling,
// deduplication, type coercion, filtering, derived columns, categorical
// encoding, binning, joins, reshaping, grouping, outlier treatment, date
// handling, and sampling.
//
// # Data Model
//
// A Series is a named, typed column backed by one slice per dtype plus a
// validity mask. A cell with valid[i] == false is missing; missing is a state
// distinct from every valid value, including zero. A DataFrame is an ordered
// collection of equal-length, uniquely named Series; rows are implicitly
// indexed 0..NumRows-1.
//
// # Usage
//
// Building a frame from literal columns:
//
//	age := dataframe.NewFloats("Age", []float64{25, math.NaN(), 35, 40, 28})
//	name := dataframe.NewStrings("Name", []string{"Alice", "Bob", "Charlie", "David", "Emma"})
//	df, err := dataframe.New(name, age)
//
// Cleaning:
//
//	err = df.FillNA("Age", dataframe.FillMean)
//	deduped := df.DropDuplicates()
//	adults, err := df.Filter("Age", dataframe.GreaterThan(30))
//
// # Mutation vs Derivation
//
// Operations that correspond to in-place column edits (FillNA, Cast, Rename,
// ApplyFloat, EncodeCategorical, Cut, ParseDates, ExtractYear,
// ReplaceOutliers) mutate the receiver. Operations that produce a different
// row set (DropNA, DropDuplicates, Filter, Merge, PivotTable, Melt, Sample,
// Head, AppendRow) return a new frame and leave the receiver untouched.
//
// # Error Handling
//
// Failures use the application error taxonomy: undefined statistics are
// COMPUTATION errors, impossible coercions are CONVERSION errors, malformed
// text is a PARSE error, out-of-range arguments are RANGE errors, and
// structural misuse (unknown or colliding columns, dtype mismatches) is a
// SCHEMA error. Errors carry the offending column, and where relevant the row
// and value, in their context.
package dataframe
