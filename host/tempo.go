package host

import (
	"math"
	"sync/atomic"
)

// FixedTempo reports a constant tempo. A non-positive BPM means no tempo.
type FixedTempo struct {
	BPM float64
}

// TempoBPM implements lfo.TempoSource.
func (f FixedTempo) TempoBPM() (float64, bool) {
	if f.BPM <= 0 || math.IsNaN(f.BPM) || math.IsInf(f.BPM, 0) {
		return 0, false
	}

	return f.BPM, true
}

// Transport is a tempo the host thread may change while the audio thread
// reads it. The zero value has no tempo.
type Transport struct {
	bits atomic.Uint64
}

// SetTempo publishes bpm. Non-positive or non-finite values clear the tempo.
func (t *Transport) SetTempo(bpm float64) {
	if bpm <= 0 || math.IsNaN(bpm) || math.IsInf(bpm, 0) {
		t.bits.Store(0)
		return
	}

	t.bits.Store(math.Float64bits(bpm))
}

// Clear removes the tempo, as when the host stops reporting one.
func (t *Transport) Clear() {
	t.bits.Store(0)
}

// TempoBPM implements lfo.TempoSource.
func (t *Transport) TempoBPM() (float64, bool) {
	b := t.bits.Load()
	if b == 0 {
		return 0, false
	}

	return math.Float64frombits(b), true
}
