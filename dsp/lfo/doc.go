// Package lfo provides the low-frequency oscillator building blocks used to
// modulate filter cutoff: waveform shapes, phase accumulation, random
// sample-and-glide state, and tempo-synchronized rate resolution.
//
// Everything here is allocation-free on the per-sample path. The display
// helpers in display.go are the only exception and are meant for UI code.
package lfo
