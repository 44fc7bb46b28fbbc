// Package params holds the control-plane side of the LFO filter: the
// parameter layout, normalized/plain value mapping and a Store that the UI
// or automation thread writes while the audio thread reads a lock-free
// snapshot once per block.
//
// Persisted state is a flat map keyed by parameter ID. Restoring ignores
// unknown keys and resets missing ones to their defaults.
package params
