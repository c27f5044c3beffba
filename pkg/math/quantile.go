package math

import gomath "math"

// SortedQuantile returns the t-quantile of ascending values, interpolating
// linearly between the two nearest ranks at t*(n-1).
func SortedQuantile(sorted []float64, t float64) float64 {
	switch len(sorted) {
	case 0:
		return 0
	case 1:
		return sorted[0]
	}
	t = gomath.Max(0, gomath.Min(1, t))

	idx := t * float64(len(sorted)-1)
	lo := int(gomath.Floor(idx))
	hi := int(gomath.Ceil(idx))
	blend := idx - float64(lo)
	return sorted[lo] + (sorted[hi]-sorted[lo])*blend
}
