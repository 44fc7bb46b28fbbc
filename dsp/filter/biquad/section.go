package biquad

import "github.com/cwbudde/algo-lfofilter/dsp/core"

// Coefficients holds the transfer function coefficients for a single
// second-order section (biquad). a0 is normalized to 1 and not stored.
//
//	H(z) = (B0 + B1 z^-1 + B2 z^-2) / (1 + A1 z^-1 + A2 z^-2)
type Coefficients struct {
	B0, B1, B2 float64 // feedforward (numerator)
	A1, A2     float64 // feedback (denominator)
}

// Identity returns unity-gain bypass coefficients.
func Identity() Coefficients {
	return Coefficients{B0: 1}
}

// State is the Direct Form I memory of one channel: the two previous inputs
// and the two previous outputs.
type State struct {
	X1, X2 float64
	Y1, Y2 float64
}

// ProcessSample filters x with c and advances the taps:
//
//	y = B0*x + B1*x1 + B2*x2 - A1*y1 - A2*y2
func (s *State) ProcessSample(c *Coefficients, x float64) float64 {
	y := c.B0*x + c.B1*s.X1 + c.B2*s.X2 - c.A1*s.Y1 - c.A2*s.Y2

	s.X2 = s.X1
	s.X1 = x
	s.Y2 = s.Y1
	s.Y1 = core.FlushDenormals(y)

	return y
}

// Reset clears all four taps.
func (s *State) Reset() {
	*s = State{}
}

// Taps returns {x1, x2, y1, y2}.
func (s *State) Taps() [4]float64 {
	return [4]float64{s.X1, s.X2, s.Y1, s.Y2}
}

// SetTaps restores a previously saved tap vector.
func (s *State) SetTaps(taps [4]float64) {
	s.X1, s.X2, s.Y1, s.Y2 = taps[0], taps[1], taps[2], taps[3]
}

// Section is a biquad with fixed coefficients and its own state.
type Section struct {
	Coefficients

	state State
}

// NewSection returns a Section initialized with the given coefficients
// and zero state.
func NewSection(c Coefficients) *Section {
	return &Section{Coefficients: c}
}

// ProcessSample filters one input sample and returns the output.
func (s *Section) ProcessSample(x float64) float64 {
	return s.state.ProcessSample(&s.Coefficients, x)
}

// ProcessBlock filters a block of samples in-place. Zero-alloc.
func (s *Section) ProcessBlock(buf []float64) {
	for i, x := range buf {
		buf[i] = s.state.ProcessSample(&s.Coefficients, x)
	}
}

// ProcessBlockTo filters src into dst. Both slices must have the same length.
// Zero-alloc.
func (s *Section) ProcessBlockTo(dst, src []float64) {
	if len(src) == 0 {
		return
	}
	_ = dst[len(src)-1] // bounds check hint
	for i, x := range src {
		dst[i] = s.state.ProcessSample(&s.Coefficients, x)
	}
}

// Reset clears the filter memory.
func (s *Section) Reset() {
	s.state.Reset()
}

// State returns the current tap vector {x1, x2, y1, y2}.
func (s *Section) State() [4]float64 {
	return s.state.Taps()
}

// SetState restores a previously saved tap vector.
func (s *Section) SetState(taps [4]float64) {
	s.state.SetTaps(taps)
}
