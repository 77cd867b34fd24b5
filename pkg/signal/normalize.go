package signal

import "math"

// Clamp01 clamps v to [0,1]. NaN clamps to 0.
func Clamp01(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Clamp clamps v to [lo,hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// NormalizeL2 returns a copy of v scaled to unit L2 norm.
// An all-zero (or empty) vector is returned as an equal-length zero vector,
// never NaN. Non-finite components are treated as zero.
func NormalizeL2(v []float64) []float64 {
	out := make([]float64, len(v))
	var sumSq float64
	for i, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			x = 0
		}
		out[i] = x
		sumSq += x * x
	}
	if sumSq == 0 {
		return out
	}
	norm := math.Sqrt(sumSq)
	for i := range out {
		out[i] /= norm
	}
	return out
}
