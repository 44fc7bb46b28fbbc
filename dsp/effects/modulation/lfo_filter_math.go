//go:build !fastmath

package modulation

import "math"

// octavesToRatio computes 2^x using the standard library.
func octavesToRatio(x float64) float64 {
	return math.Exp2(x)
}
