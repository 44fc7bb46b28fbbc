package modulation

import (
	"errors"
	"fmt"
	"math"

	vecmath "github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-lfofilter/dsp/core"
	"github.com/cwbudde/algo-lfofilter/dsp/filter/biquad"
	"github.com/cwbudde/algo-lfofilter/dsp/filter/design"
	"github.com/cwbudde/algo-lfofilter/dsp/lfo"
	"github.com/cwbudde/algo-lfofilter/params"
)

const (
	lfoFilterMinCutoffHz        = 20.0
	lfoFilterMaxCutoffHz        = 20000.0
	lfoFilterNyquistSafetyRatio = 0.49
	lfoFilterDepthOctaves       = 4.0
	lfoFilterSmoothingPole      = 0.95
	lfoFilterMaxFeedback        = 0.95
)

var (
	// ErrNotPrepared is returned when Process is called before Prepare.
	ErrNotPrepared = errors.New("lfo filter: not prepared")
	// ErrTooManyChannels is returned for buffers with more than core.MaxChannels channels.
	ErrTooManyChannels = errors.New("lfo filter: too many channels")
	// ErrBlockTooLarge is returned for blocks longer than the prepared block size.
	ErrBlockTooLarge = errors.New("lfo filter: block exceeds prepared size")
	// ErrRaggedChannels is returned when channel slices differ in length.
	ErrRaggedChannels = errors.New("lfo filter: channel lengths differ")
)

// LFOFilterOption mutates LFO filter construction parameters.
type LFOFilterOption func(*lfoFilterConfig) error

type lfoFilterConfig struct {
	transport           lfo.TempoSource
	seed                uint64
	perChannelSmoothing bool
	toleranceHz         float64
}

func defaultLFOFilterConfig() lfoFilterConfig {
	return lfoFilterConfig{seed: 1}
}

// WithLFOFilterTransport sets the tempo source used when tempo sync is on.
func WithLFOFilterTransport(transport lfo.TempoSource) LFOFilterOption {
	return func(cfg *lfoFilterConfig) error {
		cfg.transport = transport
		return nil
	}
}

// WithLFOFilterRandomSeed seeds the random waveform's generator.
func WithLFOFilterRandomSeed(seed uint64) LFOFilterOption {
	return func(cfg *lfoFilterConfig) error {
		cfg.seed = seed
		return nil
	}
}

// WithLFOFilterPerChannelSmoothing gives every channel its own cutoff
// smoother. By default one smoother is shared and runs through the channels
// in order, which couples the stereo pair.
func WithLFOFilterPerChannelSmoothing(enabled bool) LFOFilterOption {
	return func(cfg *lfoFilterConfig) error {
		cfg.perChannelSmoothing = enabled
		return nil
	}
}

// WithLFOFilterCoefficientToleranceHz lets the per-sample coefficient solve
// be skipped while the smoothed cutoff stays within hz of the last solve.
func WithLFOFilterCoefficientToleranceHz(hz float64) LFOFilterOption {
	return func(cfg *lfoFilterConfig) error {
		if hz < 0 || math.IsNaN(hz) || math.IsInf(hz, 0) {
			return fmt.Errorf("lfo filter coefficient tolerance must be >= 0 and finite: %f", hz)
		}

		cfg.toleranceHz = hz

		return nil
	}
}

// LFOFilter sweeps the cutoff of a biquad with a low-frequency oscillator.
//
// Parameters are read from the source once per block. Process must be
// driven by a single goroutine; it does not allocate once prepared.
type LFOFilter struct {
	source              params.Source
	transport           lfo.TempoSource
	perChannelSmoothing bool

	cfg      core.ProcessorConfig
	prepared bool

	phase lfo.Accumulator
	// One hold for all channels; each channel steps it along its own phase.
	hold *lfo.RandomHold

	smoothed    [core.MaxChannels]float64
	smoothedSet bool

	solvers [core.MaxChannels]*design.Solver
	filters [core.MaxChannels]biquad.State

	dry [][]float64
}

// NewLFOFilter creates an engine reading parameters from source. Call
// Prepare before the first Process.
func NewLFOFilter(source params.Source, opts ...LFOFilterOption) (*LFOFilter, error) {
	if source == nil {
		return nil, errors.New("lfo filter parameter source must not be nil")
	}

	cfg := defaultLFOFilterConfig()

	for _, opt := range opts {
		if opt == nil {
			continue
		}

		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	f := &LFOFilter{
		source:              source,
		transport:           cfg.transport,
		perChannelSmoothing: cfg.perChannelSmoothing,
		hold:                lfo.NewRandomHold(cfg.seed),
	}

	for i := range f.solvers {
		s, err := design.NewSolver(design.WithToleranceHz(cfg.toleranceHz))
		if err != nil {
			return nil, err
		}

		f.solvers[i] = s
	}

	return f, nil
}

// Prepare starts a stream: it records the sample rate, sizes the scratch
// buffers for cfg.BlockSize and resets all oscillator and filter state.
func (f *LFOFilter) Prepare(cfg core.ProcessorConfig) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("lfo filter prepare: %w", err)
	}

	f.cfg = cfg
	f.dry = core.EnsurePlanar(f.dry, core.MaxChannels, cfg.BlockSize)
	f.prepared = true
	f.Reset()

	return nil
}

// Reset clears the oscillator phase, the random-hold pair, the cutoff
// smoother, the coefficient caches and every filter's taps.
func (f *LFOFilter) Reset() {
	f.phase.Reset()
	f.hold.Reset()

	f.smoothed = [core.MaxChannels]float64{}
	f.smoothedSet = false

	for ch := range f.filters {
		f.filters[ch].Reset()
		f.solvers[ch].Reset()
	}
}

// SampleRate returns the sample rate of the prepared stream, or 0.
func (f *LFOFilter) SampleRate() float64 {
	if !f.prepared {
		return 0
	}

	return f.cfg.SampleRate
}

// Config returns the prepared stream configuration.
func (f *LFOFilter) Config() core.ProcessorConfig {
	return f.cfg
}

// Phase returns the global LFO phase in [0, 1).
func (f *LFOFilter) Phase() float64 {
	return f.phase.Phase()
}

// SmoothedCutoffHz returns the current smoothed cutoff of channel ch. With
// shared smoothing every channel reports the same value.
func (f *LFOFilter) SmoothedCutoffHz(ch int) float64 {
	if ch < 0 || ch >= core.MaxChannels {
		return 0
	}

	if !f.perChannelSmoothing {
		ch = 0
	}

	return f.smoothed[ch]
}

// FilterState returns the taps {x1, x2, y1, y2} of channel ch.
func (f *LFOFilter) FilterState(ch int) [4]float64 {
	if ch < 0 || ch >= core.MaxChannels {
		return [4]float64{}
	}

	return f.filters[ch].Taps()
}

// TailLengthSeconds reports the tail the host should keep rendering after
// input stops. The filter's decay is not reported.
func (f *LFOFilter) TailLengthSeconds() float64 {
	return 0
}

// Process filters buf in place. buf holds one slice per channel, all of the
// same length. On error the buffer is left untouched.
func (f *LFOFilter) Process(buf [][]float64) error {
	n, err := f.checkBlock(buf)
	if err != nil || n == 0 {
		return err
	}

	p := f.source.Snapshot()
	sr := f.cfg.SampleRate

	depth := sanitize(p.Depth, 0, 1)
	mix := sanitize(p.Mix, 0, 1)
	feedback := sanitize(p.Feedback, 0, lfoFilterMaxFeedback)
	width := sanitize(p.StereoWidth, 0, 2)
	baseHz := f.clampCutoff(p.CutoffHz)

	rate := lfo.ResolveRate(p.RateHz, p.TempoSync, f.transport)
	inc := lfo.Increment(rate, sr)
	period := lfo.PeriodSamples(rate, sr)

	for ch := range buf {
		copy(f.dry[ch][:n], buf[ch])
	}

	if !f.smoothedSet {
		for ch := range f.smoothed {
			f.smoothed[ch] = baseHz
		}

		f.smoothedSet = true
	}

	random := p.Waveform == lfo.WaveformRandom

	for ch, out := range buf {
		var local lfo.Accumulator

		local.SetPhase(f.phase.Phase())
		if ch == 1 && len(buf) == 2 {
			local.SetPhase(lfo.StereoOffset(f.phase.Phase(), width))
		}

		sm := 0
		if f.perChannelSmoothing {
			sm = ch
		}

		solver := f.solvers[ch]
		state := &f.filters[ch]

		for i, x := range out {
			if random {
				f.hold.Step(local.Phase(), inc, period)
			}

			mod := lfo.Value(p.Waveform, local.Phase(), f.hold)

			target := f.clampCutoff(baseHz * octavesToRatio(mod*depth*lfoFilterDepthOctaves))
			f.smoothed[sm] = f.smoothed[sm]*lfoFilterSmoothingPole + target*(1-lfoFilterSmoothingPole)

			c := solver.Solve(p.FilterType, f.smoothed[sm], p.Q, sr)
			y := state.ProcessSample(&c, x)

			if feedback > 0 && i > 0 {
				y += feedback * out[i-1]
			}

			out[i] = y

			local.Advance(inc)
		}
	}

	f.phase.AdvanceBlock(inc, n)

	for ch, out := range buf {
		dry := f.dry[ch][:n]
		vecmath.ScaleBlockInPlace(out, mix)
		vecmath.ScaleBlockInPlace(dry, 1-mix)
		vecmath.AddBlockInPlace(out, dry)
	}

	return nil
}

func (f *LFOFilter) checkBlock(buf [][]float64) (int, error) {
	if !f.prepared {
		return 0, ErrNotPrepared
	}

	if len(buf) > core.MaxChannels {
		return 0, fmt.Errorf("process %d channels (max %d): %w", len(buf), core.MaxChannels, ErrTooManyChannels)
	}

	if len(buf) == 0 {
		return 0, nil
	}

	n := len(buf[0])
	for ch := 1; ch < len(buf); ch++ {
		if len(buf[ch]) != n {
			return 0, fmt.Errorf("channel %d has %d samples, channel 0 has %d: %w", ch, len(buf[ch]), n, ErrRaggedChannels)
		}
	}

	if n > f.cfg.BlockSize {
		return 0, fmt.Errorf("process %d samples (prepared %d): %w", n, f.cfg.BlockSize, ErrBlockTooLarge)
	}

	return n, nil
}

func (f *LFOFilter) clampCutoff(hz float64) float64 {
	hi := math.Min(lfoFilterMaxCutoffHz, f.cfg.SampleRate*lfoFilterNyquistSafetyRatio)
	if math.IsNaN(hz) {
		return lfoFilterMinCutoffHz
	}

	return core.Clamp(hz, lfoFilterMinCutoffHz, hi)
}

func sanitize(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}

	return core.Clamp(v, lo, hi)
}
