package dataframe

import (
	"fmt"
	"math/rand"

	"wranglecli/internal/errors"
)

// Sample returns a new frame of n distinct rows drawn uniformly without
// replacement, in draw order. The source is seeded math/rand, so a given seed
// always draws the same rows. n below zero or above the row count is a
// RangeError.
func (df *DataFrame) Sample(n int, seed int64) (*DataFrame, error) {
	if n < 0 || n > df.NumRows() {
		return nil, errors.NewRangeError(
			fmt.Sprintf("sample size %d out of range, frame has %d rows", n, df.NumRows()), nil).
			WithContext("rows", df.NumRows())
	}
	rng := rand.New(rand.NewSource(seed))
	return df.selectRows(rng.Perm(df.NumRows())[:n]), nil
}
