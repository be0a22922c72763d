package dataframe

import (
	"encoding/binary"
	"math"

	"github.com/zeebo/xxh3"
)

// rowHash hashes a canonical encoding of row i: per column a validity byte,
// then the value bytes (length-prefixed for strings, fixed 8 bytes for the
// rest). buf is reused across rows to avoid per-row allocations.
func (df *DataFrame) rowHash(buf []byte, i int) (uint64, []byte) {
	buf = buf[:0]
	for _, col := range df.cols {
		if !col.valid[i] {
			buf = append(buf, 0)
			continue
		}
		buf = append(buf, 1)
		switch col.dtype {
		case DTypeString:
			buf = binary.AppendUvarint(buf, uint64(len(col.strs[i])))
			buf = append(buf, col.strs[i]...)
		case DTypeInt:
			buf = binary.LittleEndian.AppendUint64(buf, uint64(col.ints[i]))
		case DTypeFloat:
			bits := math.Float64bits(col.floats[i])
			if col.floats[i] == 0 {
				bits = 0 // -0 and +0 hash alike
			}
			buf = binary.LittleEndian.AppendUint64(buf, bits)
		default:
			buf = binary.LittleEndian.AppendUint64(buf, uint64(col.dates[i].Unix()))
		}
	}
	return xxh3.Hash(buf), buf
}

// rowsEqual compares rows i and j element-wise per dtype. Missing cells are
// equal only to missing cells.
func (df *DataFrame) rowsEqual(i, j int) bool {
	for _, col := range df.cols {
		if !cellsEqual(col, col, i, j) {
			return false
		}
	}
	return true
}

// Duplicated returns the indices of rows whose full value tuple equals an
// earlier row; first occurrences are not flagged. Candidate matches found by
// hash are confirmed element-wise, so hash collisions cannot conflate
// distinct rows.
func (df *DataFrame) Duplicated() []int {
	var duplicates []int
	df.scanDuplicates(func(i int) {
		duplicates = append(duplicates, i)
	}, nil)
	return duplicates
}

// DropDuplicates returns a new frame keeping the first occurrence of every
// row, in original order. Applying it twice yields the same frame.
func (df *DataFrame) DropDuplicates() *DataFrame {
	keep := make([]int, 0, df.NumRows())
	df.scanDuplicates(nil, func(i int) {
		keep = append(keep, i)
	})
	return df.selectRows(keep)
}

// scanDuplicates walks the rows once, invoking onDuplicate for repeated rows
// and onFirst for first occurrences. Either callback may be nil.
func (df *DataFrame) scanDuplicates(onDuplicate, onFirst func(int)) {
	seen := make(map[uint64][]int, df.NumRows())
	var buf []byte
	for i := 0; i < df.NumRows(); i++ {
		var h uint64
		h, buf = df.rowHash(buf, i)

		duplicate := false
		for _, j := range seen[h] {
			if df.rowsEqual(i, j) {
				duplicate = true
				break
			}
		}
		if duplicate {
			if onDuplicate != nil {
				onDuplicate(i)
			}
			continue
		}
		seen[h] = append(seen[h], i)
		if onFirst != nil {
			onFirst(i)
		}
	}
}
