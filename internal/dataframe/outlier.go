package dataframe

import (
	"fmt"

	"wranglecli/internal/errors"
)

// OutlierBounds holds the quartiles and the 1.5*IQR fences of a numeric
// column. Values outside (Lower, Upper) are outliers.
type OutlierBounds struct {
	Q1    float64
	Q3    float64
	IQR   float64
	Lower float64
	Upper float64
}

// Outlier is one flagged cell: its row index and the value it held when
// flagged.
type Outlier struct {
	Row   int
	Value float64
}

// OutlierReport describes one detection pass: the fences used, the flagged
// cells, and the replacement value a replace pass writes over them.
type OutlierReport struct {
	Column      string
	Bounds      OutlierBounds
	Outliers    []Outlier
	Replacement float64
}

// OutlierBounds computes quartiles over the non-missing values of a numeric
// column using linear interpolation between order statistics, and the fences
// Q1 - 1.5*IQR and Q3 + 1.5*IQR. A non-numeric column is a SchemaError; a
// column with no non-missing values is a ComputationError.
func (df *DataFrame) OutlierBounds(name string) (OutlierBounds, error) {
	col, err := df.numericColumn(name, "outlier detection")
	if err != nil {
		return OutlierBounds{}, err
	}
	values := col.nonMissing()
	if len(values) == 0 {
		return OutlierBounds{}, errors.NewComputationError(
			fmt.Sprintf("quartiles of column %s are undefined, every value is missing", name), nil).
			WithContext("column", name)
	}

	q1 := calculateQuantile(values, 0.25)
	q3 := calculateQuantile(values, 0.75)
	iqr := q3 - q1
	return OutlierBounds{
		Q1:    q1,
		Q3:    q3,
		IQR:   iqr,
		Lower: q1 - 1.5*iqr,
		Upper: q3 + 1.5*iqr,
	}, nil
}

// DetectOutliers flags the cells of a numeric column outside the 1.5*IQR
// fences without mutating anything. The report's Replacement is the median of
// the current values, the value ReplaceOutliers would write.
func (df *DataFrame) DetectOutliers(name string) (*OutlierReport, error) {
	col, err := df.numericColumn(name, "outlier detection")
	if err != nil {
		return nil, err
	}
	bounds, err := df.OutlierBounds(name)
	if err != nil {
		return nil, err
	}

	report := &OutlierReport{
		Column:      name,
		Bounds:      bounds,
		Replacement: calculateMedian(col.nonMissing()),
	}
	for i := 0; i < col.Len(); i++ {
		v, ok := col.numericAt(i)
		if !ok {
			continue
		}
		if v < bounds.Lower || v > bounds.Upper {
			report.Outliers = append(report.Outliers, Outlier{Row: i, Value: v})
		}
	}
	return report, nil
}

// ReplaceOutliers overwrites the cells flagged by DetectOutliers in place
// with the median of the original, pre-replacement values, and returns the
// detection report. The replacement lies inside the original fences, so for
// non-degenerate distributions a second detection over the treated column
// flags nothing. For Int columns the replacement is truncated toward zero,
// the Cast rule.
func (df *DataFrame) ReplaceOutliers(name string) (*OutlierReport, error) {
	report, err := df.DetectOutliers(name)
	if err != nil {
		return nil, err
	}
	col, _ := df.Column(name)
	for _, outlier := range report.Outliers {
		col.setNumeric(outlier.Row, report.Replacement)
	}
	return report, nil
}

func (df *DataFrame) numericColumn(name, operation string) (*Series, error) {
	col, err := df.Column(name)
	if err != nil {
		return nil, err
	}
	if !col.IsNumeric() {
		return nil, errors.NewSchemaError(
			fmt.Sprintf("%s requires a numeric column, %s is %s", operation, name, col.dtype), nil).
			WithContext("column", name)
	}
	return col, nil
}
