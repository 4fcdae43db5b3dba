package logdata

import "math"

// Stats summarizes one column's numeric values.
type Stats struct {
	Count    int // non-NaN samples
	Min      float64
	Max      float64
	Mean     float64
	Variance float64
}

// ColumnStats computes NaN-aware summary statistics over a value slice.
func ColumnStats(values []float64) Stats {
	var s Stats
	sum := 0.0
	for _, v := range values {
		if math.IsNaN(v) {
			continue
		}
		if s.Count == 0 {
			s.Min = v
			s.Max = v
		}
		if v < s.Min {
			s.Min = v
		}
		if v > s.Max {
			s.Max = v
		}
		sum += v
		s.Count++
	}
	if s.Count == 0 {
		return s
	}
	s.Mean = sum / float64(s.Count)

	variance := 0.0
	for _, v := range values {
		if math.IsNaN(v) {
			continue
		}
		diff := v - s.Mean
		variance += diff * diff
	}
	s.Variance = variance / float64(s.Count)

	return s
}
