package lfo

import "math"

// TempoSource supplies the host tempo. ok is false when the host does not
// report one (stopped transport, offline render without tempo map, ...).
type TempoSource interface {
	TempoBPM() (bpm float64, ok bool)
}

// Division maps the raw rate control onto a power-of-two beat division,
// 2^floor(rate*4 - 8). Sweeping rate over [0, 5] walks through 2^-8 .. 2^12
// in whole steps.
func Division(rate float64) float64 {
	return math.Exp2(math.Floor(rate*4 - 8))
}

// SyncedRate returns the LFO frequency in Hz for rate locked to bpm.
func SyncedRate(rate, bpm float64) float64 {
	return bpm / 60 * Division(rate)
}

// ResolveRate returns the effective LFO frequency in Hz. Without tempo sync,
// or when tempo is nil or reports no usable tempo, the raw rate is returned
// unchanged.
func ResolveRate(rate float64, tempoSync bool, tempo TempoSource) float64 {
	if !tempoSync || tempo == nil {
		return rate
	}

	bpm, ok := tempo.TempoBPM()
	if !ok || bpm <= 0 || math.IsNaN(bpm) || math.IsInf(bpm, 0) {
		return rate
	}

	return SyncedRate(rate, bpm)
}
