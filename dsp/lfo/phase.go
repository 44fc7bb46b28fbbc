package lfo

import "github.com/cwbudde/algo-lfofilter/dsp/core"

// Accumulator is a normalized oscillator phase in [0, 1).
type Accumulator struct {
	phase float64
}

// Phase returns the current phase.
func (a *Accumulator) Phase() float64 { return a.phase }

// SetPhase sets the phase, wrapping it into [0, 1).
func (a *Accumulator) SetPhase(phase float64) {
	a.phase = core.Wrap01(phase)
}

// Advance adds increment to the phase, wraps, and returns the new phase.
func (a *Accumulator) Advance(increment float64) float64 {
	a.phase += increment

	if a.phase >= 1 {
		a.phase -= 1

		if a.phase >= 1 {
			a.phase = core.Wrap01(a.phase)
		}
	}

	return a.phase
}

// AdvanceBlock moves the phase forward by n samples worth of increment.
func (a *Accumulator) AdvanceBlock(increment float64, n int) float64 {
	return a.Advance(increment * float64(n))
}

// Reset returns the phase to zero.
func (a *Accumulator) Reset() { a.phase = 0 }

// Increment returns the per-sample phase step for rateHz at sampleRate.
func Increment(rateHz, sampleRate float64) float64 {
	if sampleRate <= 0 {
		return 0
	}

	return rateHz / sampleRate
}

// PeriodSamples returns the LFO period length in samples. A non-positive
// rate yields 0.
func PeriodSamples(rateHz, sampleRate float64) float64 {
	if rateHz <= 0 {
		return 0
	}

	return sampleRate / rateHz
}

// StereoOffset returns the phase for the second channel of a stereo pair.
// A width of 1 leaves the channels in phase, 0 puts them half a cycle apart
// and 2 puts them half a cycle apart in the other direction.
func StereoOffset(phase, width float64) float64 {
	return core.Wrap01(phase + (1-width)*0.5)
}

// CycleStart reports whether phase lies within one increment after a cycle
// boundary.
func CycleStart(phase, increment float64) bool {
	return phase < increment
}
