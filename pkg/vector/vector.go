// Package vector holds the dense float64 helpers shared by the trait and
// text vectorizers and the similarity engine.
package vector

import "gonum.org/v1/gonum/floats"

// Dot returns the dot product of a and b over their common length.
func Dot(a, b []float64) float64 {
	n := min(len(a), len(b))
	return floats.Dot(a[:n], b[:n])
}

// Norm returns the Euclidean (L2) norm of v.
func Norm(v []float64) float64 {
	if len(v) == 0 {
		return 0
	}
	return floats.Norm(v, 2)
}

// Unit returns a copy of v scaled to unit length.
// A vector whose norm is exactly zero is returned unchanged (as a copy).
func Unit(v []float64) []float64 {
	out := make([]float64, len(v))
	copy(out, v)

	n := Norm(out)
	if n == 0 {
		return out
	}
	for i := range out {
		out[i] /= n
	}
	return out
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// IsZero reports whether every component of v is exactly zero.
func IsZero(v []float64) bool {
	for _, x := range v {
		if x != 0 {
			return false
		}
	}
	return true
}
