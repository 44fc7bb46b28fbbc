package lfo

import (
	"math"
	"math/rand/v2"
)

// displayScale leaves a margin above and below the curve.
const displayScale = 0.8

// DisplayValue is the waveform preview used by editors. It matches Shape for
// the periodic waveforms. For WaveformRandom it returns a deterministic,
// phase-seeded approximation so repeated repaints draw the same curve; it
// must not be used on the audio path.
func DisplayValue(w Waveform, phase float64) float64 {
	if w != WaveformRandom {
		return Shape(w, phase)
	}

	r := rand.New(rand.NewPCG(uint64(phase*1e6), 0)).Float64()

	return math.Sin(2*math.Pi*8*phase) * (r*0.3 + 0.7)
}

// DisplayCurve fills dst with one preview value per column, with column x
// sampling phase x/len(dst).
func DisplayCurve(dst []float64, w Waveform) []float64 {
	n := len(dst)
	for x := range dst {
		dst[x] = DisplayValue(w, float64(x)/float64(n))
	}

	return dst
}

// DisplayY converts a preview value to a vertical pixel coordinate in a view
// of the given height, with +1 near the top.
func DisplayY(value, height float64) float64 {
	return height * 0.5 * (1 - value*displayScale)
}
