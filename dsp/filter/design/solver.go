package design

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-lfofilter/dsp/filter/biquad"
)

// SolverOption mutates solver construction parameters.
type SolverOption func(*solverConfig) error

type solverConfig struct {
	toleranceHz float64
}

// WithToleranceHz sets how far the cutoff may drift from the last solved
// value before the coefficients are recomputed. Zero re-solves on any change.
func WithToleranceHz(hz float64) SolverOption {
	return func(cfg *solverConfig) error {
		if hz < 0 || math.IsNaN(hz) || math.IsInf(hz, 0) {
			return fmt.Errorf("solver tolerance must be >= 0 and finite: %f", hz)
		}

		cfg.toleranceHz = hz

		return nil
	}
}

// Solver caches the most recent Solve result. It is meant to be called once
// per sample from the audio thread and never allocates.
type Solver struct {
	toleranceHz float64

	valid      bool
	filterType FilterType
	freq       float64
	q          float64
	sampleRate float64
	coeffs     biquad.Coefficients

	solves int
}

// NewSolver creates a solver with the given options.
func NewSolver(opts ...SolverOption) (*Solver, error) {
	cfg := solverConfig{}
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	return &Solver{toleranceHz: cfg.toleranceHz}, nil
}

// ToleranceHz returns the configured cutoff tolerance.
func (s *Solver) ToleranceHz() float64 {
	return s.toleranceHz
}

// Solve returns coefficients for the given inputs, reusing the cached result
// when type, Q and sample rate are unchanged and the cutoff is within the
// tolerance of the last solved cutoff.
func (s *Solver) Solve(t FilterType, freq, q, sampleRate float64) biquad.Coefficients {
	if s.valid && t == s.filterType && q == s.q && sampleRate == s.sampleRate &&
		math.Abs(freq-s.freq) <= s.toleranceHz {
		return s.coeffs
	}

	s.coeffs = Solve(t, freq, q, sampleRate)
	s.filterType = t
	s.freq = freq
	s.q = q
	s.sampleRate = sampleRate
	s.valid = true
	s.solves++

	return s.coeffs
}

// Solves returns how many times the coefficients were recomputed since the
// last Reset.
func (s *Solver) Solves() int {
	return s.solves
}

// Reset drops the cached coefficients.
func (s *Solver) Reset() {
	s.valid = false
	s.coeffs = biquad.Coefficients{}
	s.solves = 0
}
