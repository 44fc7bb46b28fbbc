package core

import "math"

// Clamp limits value to the inclusive range [min, max].
func Clamp(value, min, max float64) float64 {
	if min > max {
		min, max = max, min
	}

	if value < min {
		return min
	}

	if value > max {
		return max
	}

	return value
}

// Wrap01 maps x into [0, 1) using floored modulo, so negative inputs wrap
// from the top of the range.
func Wrap01(x float64) float64 {
	if x >= 0 && x < 1 {
		return x
	}

	x -= math.Floor(x)
	if x >= 1 {
		// -tiny - floor(-tiny) rounds to exactly 1.
		return 0
	}

	return x
}

// FlushDenormals converts tiny denormal-like values to exact zero.
// Recursive filter taps decay towards zero and would otherwise sit in the
// denormal range for a long time after the input goes silent.
func FlushDenormals(x float64) float64 {
	const epsilon = 1e-30
	if x > -epsilon && x < epsilon {
		return 0
	}

	return x
}

// LinearToDB converts linear amplitude to dB (20*log10 convention).
// Returns -Inf for zero and NaN for negative values.
func LinearToDB(linear float64) float64 {
	if linear < 0 {
		return math.NaN()
	}

	if linear == 0 {
		return math.Inf(-1)
	}

	return 20 * math.Log10(linear)
}

// LinearPowerToDB converts linear power to dB (10*log10 convention).
// Returns -Inf for zero and NaN for negative values.
func LinearPowerToDB(power float64) float64 {
	if power < 0 {
		return math.NaN()
	}

	if power == 0 {
		return math.Inf(-1)
	}

	return 10 * math.Log10(power)
}
