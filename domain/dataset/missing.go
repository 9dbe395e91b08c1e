package dataset

import "math"

// DropMissing returns the non-NaN entries of values as a new slice
func DropMissing(values []float64) []float64 {
	out := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			out = append(out, v)
		}
	}
	return out
}
