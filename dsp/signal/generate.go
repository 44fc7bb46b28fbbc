package signal

import (
	"fmt"
	"math"

	vecmath "github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-lfofilter/dsp/core"
)

// Generator renders planar test material for a fixed stream layout.
type Generator struct {
	cfg  core.ProcessorConfig
	seed int64
}

// Option configures a Generator.
type Option func(*Generator)

// WithSeed sets the seed used by noise sources.
func WithSeed(seed int64) Option {
	return func(g *Generator) {
		g.seed = seed
	}
}

// NewGenerator creates a generator for the given stream layout.
func NewGenerator(opts ...core.ProcessorOption) *Generator {
	return NewGeneratorWithOptions(opts)
}

// NewGeneratorWithOptions creates a generator with signal-specific options.
func NewGeneratorWithOptions(coreOpts []core.ProcessorOption, opts ...Option) *Generator {
	g := &Generator{
		cfg:  core.ApplyProcessorOptions(coreOpts...),
		seed: 1,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}
	return g
}

// Config returns the stream layout the generator renders for.
func (g *Generator) Config() core.ProcessorConfig {
	return g.cfg
}

// Render produces frames samples of an oscillator, identical on every channel.
func (g *Generator) Render(kind Kind, freqHz, amplitude float64, frames int) ([][]float64, error) {
	if frames <= 0 {
		return nil, fmt.Errorf("render frames must be > 0: %d", frames)
	}
	osc, err := NewOscillator(kind, freqHz, amplitude, g.cfg.SampleRate, g.seed)
	if err != nil {
		return nil, err
	}

	out := core.EnsurePlanar(nil, g.cfg.Channels, frames)
	osc.Fill(out[0])
	for ch := 1; ch < len(out); ch++ {
		copy(out[ch], out[0])
	}
	return out, nil
}

// Impulse produces a planar buffer holding a single sample of amplitude at
// pos on every channel.
func (g *Generator) Impulse(amplitude float64, frames, pos int) ([][]float64, error) {
	if frames <= 0 {
		return nil, fmt.Errorf("impulse frames must be > 0: %d", frames)
	}
	if pos < 0 || pos >= frames {
		return nil, fmt.Errorf("impulse position must be in [0, %d): %d", frames, pos)
	}
	out := core.EnsurePlanar(nil, g.cfg.Channels, frames)
	for ch := range out {
		out[ch][pos] = amplitude
	}
	return out, nil
}

// Normalize scales data to target peak amplitude and returns a new slice.
func Normalize(data []float64, targetPeak float64) ([]float64, error) {
	if targetPeak < 0 {
		return nil, fmt.Errorf("normalize target peak must be >= 0: %f", targetPeak)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("normalize input must not be empty")
	}

	out := make([]float64, len(data))
	peak := vecmath.MaxAbs(data)
	if peak == 0 || targetPeak == 0 {
		return out, nil
	}

	vecmath.ScaleBlock(out, data, targetPeak/peak)
	return out, nil
}

// NormalizePlanar scales every channel of buf in place by one common gain
// so the loudest sample reaches targetPeak. Silent input is left unchanged.
func NormalizePlanar(buf [][]float64, targetPeak float64) error {
	if targetPeak < 0 {
		return fmt.Errorf("normalize target peak must be >= 0: %f", targetPeak)
	}

	var peak float64
	for _, ch := range buf {
		peak = math.Max(peak, vecmath.MaxAbs(ch))
	}
	if peak == 0 {
		return nil
	}

	gain := targetPeak / peak
	for _, ch := range buf {
		vecmath.ScaleBlockInPlace(ch, gain)
	}
	return nil
}
