package dataframe

import (
	"fmt"
	"sort"

	"wranglecli/internal/errors"
)

// Aggregation names a statistic applied per group over non-missing values.
type Aggregation string

const (
	AggMean   Aggregation = "mean"
	AggMedian Aggregation = "median"
	AggSum    Aggregation = "sum"
	AggMin    Aggregation = "min"
	AggMax    Aggregation = "max"
	AggCount  Aggregation = "count"
)

// GroupBy is a deferred grouping over one key column. It holds no state
// beyond the key; validation happens when an aggregation is requested.
type GroupBy struct {
	df  *DataFrame
	key string
}

// GroupBy groups rows by the distinct values of the named column.
func (df *DataFrame) GroupBy(key string) *GroupBy {
	return &GroupBy{df: df, key: key}
}

// group is one distinct key with the rows carrying it. first is the row index
// of the key's first occurrence, used for ordering and key output.
type group struct {
	first int
	rows  []int
}

// Aggregate returns one row per distinct key: the key column, then the named
// value column aggregated per group. Keys are sorted ascending; rows with a
// missing key belong to no group. Count works on any column; the other
// aggregations require a numeric one (SchemaError otherwise). A group with no
// non-missing values aggregates to a missing cell (Count: 0).
func (g *GroupBy) Aggregate(col string, agg Aggregation) (*DataFrame, error) {
	keyCol, err := g.df.Column(g.key)
	if err != nil {
		return nil, err
	}
	valCol, err := g.df.Column(col)
	if err != nil {
		return nil, err
	}
	if agg != AggCount && !valCol.IsNumeric() {
		return nil, errors.NewSchemaError(
			fmt.Sprintf("aggregation %s requires a numeric column, %s is %s", agg, col, valCol.dtype), nil).
			WithContext("column", col)
	}
	if !validAggregation(agg) {
		return nil, errors.NewRangeError(
			fmt.Sprintf("unknown aggregation %q", agg), nil)
	}

	groups := g.collect(keyCol)

	firstRows := make([]int, len(groups))
	for i, grp := range groups {
		firstRows[i] = grp.first
	}
	outKey := keyCol.takeRows(firstRows)

	var outVal *Series
	if agg == AggCount {
		counts := make([]int64, len(groups))
		for i, grp := range groups {
			for _, row := range grp.rows {
				if !valCol.IsNull(row) {
					counts[i]++
				}
			}
		}
		outVal = NewInts(col, counts)
	} else {
		outVal = &Series{name: col, dtype: DTypeFloat, floats: make([]float64, len(groups)), valid: make([]bool, len(groups))}
		for i, grp := range groups {
			values := make([]float64, 0, len(grp.rows))
			for _, row := range grp.rows {
				if v, ok := valCol.numericAt(row); ok {
					values = append(values, v)
				}
			}
			if len(values) > 0 {
				outVal.setFloat(i, aggregateValues(values, agg))
			}
		}
	}

	return New(outKey, outVal)
}

// collect builds the groups in ascending key order.
func (g *GroupBy) collect(keyCol *Series) []group {
	indexOf := make(map[string]int)
	var groups []group
	for i := 0; i < keyCol.Len(); i++ {
		key, ok := keyCol.FormatCell(i)
		if !ok {
			continue
		}
		if at, seen := indexOf[key]; seen {
			groups[at].rows = append(groups[at].rows, i)
			continue
		}
		indexOf[key] = len(groups)
		groups = append(groups, group{first: i, rows: []int{i}})
	}
	sort.SliceStable(groups, func(a, b int) bool {
		return cellLess(keyCol, groups[a].first, groups[b].first)
	})
	return groups
}

// cellLess orders two valid cells of one series by dtype.
func cellLess(col *Series, i, j int) bool {
	switch col.dtype {
	case DTypeString:
		return col.strs[i] < col.strs[j]
	case DTypeInt:
		return col.ints[i] < col.ints[j]
	case DTypeFloat:
		return col.floats[i] < col.floats[j]
	default:
		return col.dates[i].Before(col.dates[j])
	}
}

func validAggregation(agg Aggregation) bool {
	switch agg {
	case AggMean, AggMedian, AggSum, AggMin, AggMax, AggCount:
		return true
	}
	return false
}

// aggregateValues applies the statistic to a non-empty value slice.
func aggregateValues(values []float64, agg Aggregation) float64 {
	switch agg {
	case AggMean:
		return calculateMean(values)
	case AggMedian:
		return calculateMedian(values)
	case AggSum:
		sum := 0.0
		for _, v := range values {
			sum += v
		}
		return sum
	case AggMin:
		min := values[0]
		for _, v := range values[1:] {
			if v < min {
				min = v
			}
		}
		return min
	default:
		max := values[0]
		for _, v := range values[1:] {
			if v > max {
				max = v
			}
		}
		return max
	}
}
