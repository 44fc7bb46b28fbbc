package lfo

import "math/rand/v2"

// RandomHold is the state behind the random waveform: a pair of uniformly
// drawn targets and an interpolation fraction that glides from the previous
// target to the next one.
type RandomHold struct {
	last   float64
	next   float64
	interp float64

	rng *rand.Rand
}

// NewRandomHold creates a random-hold state drawing from a PCG stream
// seeded with seed.
func NewRandomHold(seed uint64) *RandomHold {
	return &RandomHold{
		rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

// Reseed draws a new target in [-1, 1], demotes the previous target and
// restarts the glide.
func (h *RandomHold) Reseed() {
	h.last = h.next
	h.next = h.rng.Float64()*2 - 1
	h.interp = 0
}

// Advance moves the interpolation fraction forward by step, saturating at 1.
func (h *RandomHold) Advance(step float64) {
	h.interp += step

	if h.interp > 1 {
		h.interp = 1
	} else if h.interp < 0 {
		h.interp = 0
	}
}

// Step runs one sample of the glide at phase: a cycle start reseeds, then the
// fraction advances by phase/period. It returns the new Value.
func (h *RandomHold) Step(phase, increment, period float64) float64 {
	if CycleStart(phase, increment) {
		h.Reseed()
	}

	if period > 0 {
		h.Advance(phase / period)
	}

	return h.Value()
}

// Value returns last + (next-last)*interpolation.
func (h *RandomHold) Value() float64 {
	return h.last + (h.next-h.last)*h.interp
}

// State returns the previous target, the next target and the interpolation
// fraction.
func (h *RandomHold) State() (last, next, interp float64) {
	return h.last, h.next, h.interp
}

// Reset zeroes the targets and the fraction. The random stream continues.
func (h *RandomHold) Reset() {
	h.last = 0
	h.next = 0
	h.interp = 0
}
