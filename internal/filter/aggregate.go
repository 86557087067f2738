package filter

import (
	"math"

	"soldash/internal/dataset"
)

// Sum adds every numeric cell of a column. ok is false when the column is
// absent or no cell contributed a finite number.
func Sum(t dataset.Table, column string) (float64, bool) {
	if !t.HasColumn(column) {
		return 0, false
	}

	var total float64
	counted := 0
	for i := range t.Rows {
		v, ok := t.Float(i, column)
		if !ok || math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		total += v
		counted++
	}
	return total, counted > 0
}

// Mean averages every numeric cell of a column with the same degradation
// rules as Sum.
func Mean(t dataset.Table, column string) (float64, bool) {
	if !t.HasColumn(column) {
		return 0, false
	}

	var total float64
	counted := 0
	for i := range t.Rows {
		v, ok := t.Float(i, column)
		if !ok || math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		total += v
		counted++
	}
	if counted == 0 {
		return 0, false
	}
	return total / float64(counted), true
}

// Count returns the number of rows carrying a finite numeric value in column.
func Count(t dataset.Table, column string) int {
	if !t.HasColumn(column) {
		return 0
	}
	counted := 0
	for i := range t.Rows {
		if v, ok := t.Float(i, column); ok && !math.IsNaN(v) && !math.IsInf(v, 0) {
			counted++
		}
	}
	return counted
}
