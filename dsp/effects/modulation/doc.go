// Package modulation provides LFO-driven filter effects.
//
// LFOFilter sweeps the cutoff of a biquad filter with a low-frequency
// oscillator:
//   - five LFO waveforms, including a smoothed random walk
//   - optional tempo sync against a host transport
//   - per-channel phase offset for stereo width
//   - one-pole smoothing of the modulated cutoff
//   - output feedback and a dry/wet mix
//
// Parameters are read once per block from a params.Source, so a control
// thread may change them while audio is running. Process must be called
// from a single goroutine.
package modulation
