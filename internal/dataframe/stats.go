package dataframe

import (
	"math"
	"sort"
)

// calculateMean returns the arithmetic mean. The caller guarantees a
// non-empty slice of finite values.
func calculateMean(values []float64) float64 {
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// calculateMedian returns the median, averaging the two middle order
// statistics for even lengths. The caller guarantees a non-empty slice.
func calculateMedian(values []float64) float64 {
	sortedValues := make([]float64, len(values))
	copy(sortedValues, values)
	sort.Float64s(sortedValues)

	n := len(sortedValues)
	if n%2 == 0 {
		return (sortedValues[n/2-1] + sortedValues[n/2]) / 2
	}
	return sortedValues[n/2]
}

// calculateQuantile estimates the p-quantile (0 <= p <= 1) by linear
// interpolation between order statistics: for h = p*(n-1),
// Q(p) = x[floor(h)] + (h-floor(h)) * (x[floor(h)+1] - x[floor(h)]).
// The caller guarantees a non-empty slice.
func calculateQuantile(values []float64, p float64) float64 {
	sortedValues := make([]float64, len(values))
	copy(sortedValues, values)
	sort.Float64s(sortedValues)

	n := len(sortedValues)
	if n == 1 {
		return sortedValues[0]
	}

	h := p * float64(n-1)
	lo := int(math.Floor(h))
	if lo >= n-1 {
		return sortedValues[n-1]
	}
	frac := h - float64(lo)
	return sortedValues[lo] + frac*(sortedValues[lo+1]-sortedValues[lo])
}
