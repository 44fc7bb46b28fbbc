package signal

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"strings"

	"github.com/cwbudde/algo-lfofilter/dsp/core"
)

// Kind selects the waveform of an Oscillator.
type Kind int

const (
	KindSine Kind = iota
	KindSaw
	KindNoise
)

// ErrUnknownKind is returned by ParseKind for unrecognized names.
var ErrUnknownKind = errors.New("signal: unknown oscillator kind")

var kindNames = [...]string{
	KindSine:  "sine",
	KindSaw:   "saw",
	KindNoise: "noise",
}

// String returns the lower-case name of k.
func (k Kind) String() string {
	if k < KindSine || k > KindNoise {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// ParseKind resolves an oscillator kind by name, case-insensitively.
func ParseKind(name string) (Kind, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	for i, n := range kindNames {
		if n == key {
			return Kind(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, name)
}

// Oscillator is a continuous block source, used as test input for the
// real-time player and the offline renderer when no file is given.
type Oscillator struct {
	kind      Kind
	amplitude float64
	inc       float64
	phase     float64
	rng       *rand.Rand
}

// NewOscillator creates an oscillator at freqHz for the given sample rate.
func NewOscillator(kind Kind, freqHz, amplitude, sampleRate float64, seed int64) (*Oscillator, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("oscillator sample rate must be > 0 and finite: %f", sampleRate)
	}
	if kind != KindNoise && (freqHz <= 0 || freqHz >= sampleRate/2) {
		return nil, fmt.Errorf("oscillator frequency must be in (0, %f): %f", sampleRate/2, freqHz)
	}
	if kind < KindSine || kind > KindNoise {
		return nil, fmt.Errorf("%w: %d", ErrUnknownKind, int(kind))
	}
	return &Oscillator{
		kind:      kind,
		amplitude: amplitude,
		inc:       freqHz / sampleRate,
		rng:       rand.New(rand.NewPCG(uint64(seed), 0)),
	}, nil
}

// Fill writes the next len(dst) samples.
func (o *Oscillator) Fill(dst []float64) {
	for i := range dst {
		var v float64
		switch o.kind {
		case KindSine:
			v = math.Sin(2 * math.Pi * o.phase)
		case KindSaw:
			v = 2*o.phase - 1
		case KindNoise:
			v = o.rng.Float64()*2 - 1
		}
		dst[i] = o.amplitude * v
		o.phase = core.Wrap01(o.phase + o.inc)
	}
}
