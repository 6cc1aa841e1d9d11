package postgres

import (
	"database/sql"
	"errors"
)

// maxRowsPerInsert keeps multi-row inserts below the 65535 bind parameter
// limit for the widest model (pitch rows, 36 columns).
const maxRowsPerInsert = 1000

func isNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

func chunks[T any](items []T, size int) [][]T {
	if size <= 0 {
		size = maxRowsPerInsert
	}
	out := make([][]T, 0, (len(items)+size-1)/size)
	for start := 0; start < len(items); start += size {
		end := min(start+size, len(items))
		out = append(out, items[start:end])
	}
	return out
}
