package lfo

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// Waveform identifies an LFO shape.
type Waveform int

const (
	WaveformSine Waveform = iota
	WaveformTriangle
	WaveformSquare
	WaveformSaw
	WaveformRandom
)

// ErrUnknownWaveform is returned by ParseWaveform for unrecognized names.
var ErrUnknownWaveform = errors.New("lfo: unknown waveform")

var waveformNames = [...]string{
	WaveformSine:     "Sine",
	WaveformTriangle: "Triangle",
	WaveformSquare:   "Square",
	WaveformSaw:      "Saw",
	WaveformRandom:   "Random",
}

// Waveforms returns all supported shapes in parameter-choice order.
func Waveforms() []Waveform {
	return []Waveform{WaveformSine, WaveformTriangle, WaveformSquare, WaveformSaw, WaveformRandom}
}

// Valid reports whether w is one of the defined shapes.
func (w Waveform) Valid() bool {
	return w >= WaveformSine && w <= WaveformRandom
}

func (w Waveform) String() string {
	if !w.Valid() {
		return fmt.Sprintf("Waveform(%d)", int(w))
	}

	return waveformNames[w]
}

// ParseWaveform resolves a case-insensitive shape name.
func ParseWaveform(name string) (Waveform, error) {
	for _, w := range Waveforms() {
		if strings.EqualFold(name, waveformNames[w]) {
			return w, nil
		}
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownWaveform, name)
}

// Shape evaluates a periodic waveform at phase in [0, 1) and returns a value
// in [-1, 1]. WaveformRandom is not a function of phase and yields 0 here;
// use Value with a RandomHold for it.
func Shape(w Waveform, phase float64) float64 {
	switch w {
	case WaveformSine:
		return math.Sin(2 * math.Pi * phase)
	case WaveformTriangle:
		t := 4 * phase
		if t < 1 {
			return t
		}

		if t < 3 {
			return 2 - t
		}

		return t - 4
	case WaveformSquare:
		if phase < 0.5 {
			return 1
		}

		return -1
	case WaveformSaw:
		return 2*phase - 1
	default:
		return 0
	}
}

// Value evaluates w at phase. For WaveformRandom the interpolated output of
// hold is returned; a nil hold yields 0.
func Value(w Waveform, phase float64, hold *RandomHold) float64 {
	if w == WaveformRandom {
		if hold == nil {
			return 0
		}

		return hold.Value()
	}

	return Shape(w, phase)
}
